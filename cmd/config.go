package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zjrosen/vimline/internal/config"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [PATH]",
	Short: "Write the default config file",
	Long: `Write the commented default config file.

PATH defaults to --config, or ~/.config/vimline/config.yaml. An existing file
is left alone unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	// Skip loading, which would create the file first.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configTarget(args)
		if path == "" {
			return fmt.Errorf("no config path: home directory unavailable")
		}
		if _, err := os.Stat(path); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return err
	},
}

var configVimCmd = &cobra.Command{
	Use:   "vim",
	Short: "Update editing preferences",
	Long: `Update the vim section of the config file. Only the flags given are
changed; comments in the rest of the file are kept.

Examples:
  vimline config vim --tab-width 4 --expand-tab=false
  vimline config vim --lang de`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configUsed
		if cfgFile != "" {
			path = cfgFile
		}
		if path == "" {
			return fmt.Errorf("no config file loaded")
		}

		v := cfg.Vim
		flags := cmd.Flags()
		if flags.Changed("tab-width") {
			v.TabWidth, _ = flags.GetInt("tab-width")
		}
		if flags.Changed("expand-tab") {
			v.ExpandTab, _ = flags.GetBool("expand-tab")
		}
		if flags.Changed("auto-indent") {
			v.AutoIndent, _ = flags.GetBool("auto-indent")
		}
		if flags.Changed("lang") {
			v.Lang, _ = flags.GetString("lang")
		}
		if flags.Changed("idle-timeout") {
			v.IdleTimeout, _ = flags.GetDuration("idle-timeout")
		}
		if flags.Changed("clipboard") {
			v.Clipboard, _ = flags.GetBool("clipboard")
		}
		if flags.Changed("enabled") {
			v.Enabled, _ = flags.GetBool("enabled")
		}

		if err := config.SaveVim(path, v); err != nil {
			return err
		}
		cfg.Vim = v
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", path)
		return err
	},
}

// configTarget resolves where config init writes.
func configTarget(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfgFile != "" {
		return cfgFile
	}
	if dir := config.DefaultConfigDir(); dir != "" {
		return filepath.Join(dir, "config.yaml")
	}
	return ""
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")

	d := config.DefaultVim()
	f := configVimCmd.Flags()
	f.Int("tab-width", d.TabWidth, "columns per indent level")
	f.Bool("expand-tab", d.ExpandTab, "indent with spaces")
	f.Bool("auto-indent", d.AutoIndent, "copy indent on new lines")
	f.String("lang", d.Lang, "mode indicator language (en, es, de, zh)")
	f.Duration("idle-timeout", d.IdleTimeout, "clear a half-typed command after this long")
	f.Bool("clipboard", d.Clipboard, "back the + register with the system clipboard")
	f.Bool("enabled", d.Enabled, "enable vim keybindings")

	configCmd.AddCommand(configInitCmd, configVimCmd)
	rootCmd.AddCommand(configCmd)
}
