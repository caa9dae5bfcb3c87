package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/presentation"
	"github.com/zjrosen/vimline/internal/textdiff"
)

var (
	evalFile    string
	evalSession string
	evalDiff    bool
	evalJSON    bool
	evalWrite   bool
)

var evalCmd = &cobra.Command{
	Use:   "eval KEYS",
	Short: "Apply vim keys to a buffer and print the result",
	Long: `Apply a sequence of vim keys to a buffer and print the resulting lines.

The buffer is read from --file, from the saved session when --session names
one with a buffer, or from stdin. Special keys are written in angle brackets:
<esc>, <cr>, <bs>, <tab>, <left>, <right>, <up>, <down>.

Examples:
  # Delete the first word
  echo "hello world" | vimline eval dw

  # Change a word, then show what changed
  vimline eval 'ciwbye<esc>' --file notes.txt --diff

  # Yank into register a and keep it for the next run
  vimline eval '"ayiw' --session work --file notes.txt

  # Machine-readable output with the final cursor and mode
  echo "a b c" | vimline eval 2w --json`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&evalFile, "file", "f", "", "read the buffer from this file")
	evalCmd.Flags().StringVarP(&evalSession, "session", "s", "", "load registers and marks from this session and save them afterwards")
	evalCmd.Flags().BoolVarP(&evalDiff, "diff", "d", false, "print a line diff instead of the buffer")
	evalCmd.Flags().BoolVar(&evalJSON, "json", false, "print the buffer, cursor and mode as JSON")
	evalCmd.Flags().BoolVarP(&evalWrite, "write", "w", false, "write the result back to --file")
	evalCmd.MarkFlagsMutuallyExclusive("diff", "json")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	if evalWrite && evalFile == "" {
		return fmt.Errorf("--write requires --file")
	}

	ls, err := loadSession(evalSession)
	if err != nil {
		return err
	}
	defer ls.close()

	before, err := evalInput(cmd.InOrStdin(), ls.lines)
	if err != nil {
		return err
	}

	ed := newEditor(before, ls, evalSession)
	defer ed.Close()
	ed.Feed(cmd.Context(), args[0])
	after := ed.Lines()
	log.Debug(log.CatEditor, "Evaluated keys", "keys", args[0], "lines", len(after), "pending", ed.Pending())

	if err := ls.save(after); err != nil {
		return err
	}
	if evalWrite {
		if err := os.WriteFile(evalFile, []byte(joinLines(after)), 0o600); err != nil {
			return fmt.Errorf("writing %s: %w", evalFile, err)
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case evalJSON:
		dto := presentation.NewEvalDTO(after, ed.Cursor(), ed.Mode(), ed.Pending())
		return presentation.NewFormatter(out).FormatEval(dto)
	case evalDiff:
		_, err = io.WriteString(out, textdiff.Format(textdiff.Lines(before, after)))
	default:
		_, err = io.WriteString(out, joinLines(after))
	}
	return err
}

// evalInput picks the starting buffer: --file, then the session's saved
// lines, then stdin.
func evalInput(stdin io.Reader, saved []string) ([]string, error) {
	if evalFile != "" {
		data, err := os.ReadFile(evalFile)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", evalFile, err)
		}
		return splitLines(string(data)), nil
	}
	if saved != nil {
		return saved, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	return splitLines(string(data)), nil
}

// splitLines splits text on newlines, dropping the final terminator.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n") + "\n"
}
