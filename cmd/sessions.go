package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/vimline/internal/presentation"
	"github.com/zjrosen/vimline/internal/sessions/domain"
)

var (
	sessionsAll   bool
	sessionsLimit int
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sessions as JSON",
	Long: `List saved sessions as JSON, most recently updated first.

Examples:
  vimline sessions list
  vimline sessions list --all --limit 5
  vimline sessions list | jq '.[].name'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, svc, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		list, err := svc.List(domain.ListFilter{Limit: sessionsLimit, IncludeDeleted: sessionsAll})
		if err != nil {
			return err
		}
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatSessions(presentation.FromDomainSessions(list))
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete NAME",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, svc, err := openStore()
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := svc.Delete(args[0]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %q\n", args[0])
		return err
	},
}

func init() {
	sessionsListCmd.Flags().BoolVarP(&sessionsAll, "all", "a", false, "include deleted sessions")
	sessionsListCmd.Flags().IntVarP(&sessionsLimit, "limit", "n", 0, "maximum number of sessions (0 for no limit)")
	sessionsCmd.AddCommand(sessionsListCmd, sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}
