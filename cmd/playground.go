package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/vimline/internal/editor"
	"github.com/zjrosen/vimline/internal/log"
	"github.com/zjrosen/vimline/internal/mode/playground"
)

var playgroundSession string

func runPlayground(cmd *cobra.Command, args []string) error {
	ls, err := loadSession(playgroundSession)
	if err != nil {
		return err
	}
	defer ls.close()

	ed := newEditor(ls.lines, ls, playgroundSession)
	defer ed.Close()

	pcfg := playground.Config{
		Vim:        cfg.Vim,
		ConfigPath: configUsed,
		Session:    playgroundSession,
	}
	if playgroundSession != "" {
		pcfg.Save = func(ed *editor.Editor) error {
			return ls.save(ed.Lines())
		}
	}

	model := playground.New(ed, pcfg)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err = p.Run()

	// Clean up watcher resources
	model.Close()

	if err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	log.Debug(log.CatUI, "Playground closed", "session", playgroundSession)
	return nil
}
