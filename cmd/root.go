package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/vimline/internal/config"
	"github.com/zjrosen/vimline/internal/keys"
	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const localConfigPath = ".vimline/config.yaml"

var (
	version    = "dev"
	cfgFile    string
	debugFlag  bool
	cfg        config.Config
	configUsed string

	tracer   *tracing.Provider
	cleanups []func()
)

var rootCmd = &cobra.Command{
	Use:   "vimline",
	Short: "A vim-style line editor",
	Long: `A vim-style line editing engine with an interactive playground.

Run without arguments to open the playground on a scratch buffer, or pass
--session to edit a saved session. Use "vimline eval" to apply keys to a
buffer from a script.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runPlayground,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/vimline/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write debug logs to log_path")
	rootCmd.Flags().StringVarP(&playgroundSession, "session", "s", "",
		"saved session to edit")
}

// initConfig loads cfg from the first config file found, creating the
// default one when there is none.
func initConfig() error {
	v := viper.New()
	config.SetDefaults(v)
	v.SetEnvPrefix("vimline")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .vimline/config.yaml (current directory)
		// 2. ~/.config/vimline/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
		} else if dir := config.DefaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading config: %w", err)
		}
		// No config file found, create the default where we looked.
		if path := configTarget(nil); path != "" {
			if writeErr := config.WriteDefaultConfig(path); writeErr == nil {
				v.SetConfigFile(path)
				_ = v.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}
	configUsed = v.ConfigFileUsed()

	var err error
	cfg, err = config.Decode(v)
	return err
}

// setup loads the config and turns on logging and tracing.
func setup(cmd *cobra.Command, _ []string) error {
	if err := initConfig(); err != nil {
		return err
	}

	if debugFlag || cfg.Debug {
		closeLog, err := log.Init(cfg.LogPath)
		if err != nil {
			return fmt.Errorf("enabling debug log: %w", err)
		}
		cleanups = append(cleanups, closeLog)
		log.Info(log.CatConfig, "Starting", "version", version, "config", configUsed, "command", cmd.Name())
	}

	p, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	tracer = p
	cleanups = append(cleanups, func() {
		if err := p.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
		}
	})

	keys.ApplyConfig(cfg.Keys.Quit, cfg.Keys.Save, cfg.Keys.Help)
	return nil
}

// teardown runs cleanups in reverse order.
func teardown() {
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
	cleanups = nil
	tracer = nil
}

// Execute runs the root command
func Execute() error {
	defer teardown()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
