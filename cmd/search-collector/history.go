package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/search-collector/internal/history"
	"github.com/pdiddy/search-collector/internal/search"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List and inspect recorded runs",
	Long: `History reads the SQLite database that collect writes to when history.db
(or --history) is set.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := store.List(cmd.Context(), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, "No runs recorded.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTIMESTAMP\tRESULTS\tQUERY\tLOCATION")
		for _, r := range runs {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.ID, r.Timestamp, r.Total, r.Query, r.Location)
		}
		return tw.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		run, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return search.FormatJSON(run, cmd.OutOrStdout())
		}
		search.FormatRun(run, cmd.OutOrStdout())
		return nil
	},
}

func openHistory() (*history.Store, error) {
	path := viper.GetString("history.db")
	if path == "" {
		return nil, fmt.Errorf("history database not configured: set history.db or pass --history")
	}
	return history.Open(path)
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyShowCmd.Flags().Bool("json", false, "print the run as JSON")

	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
