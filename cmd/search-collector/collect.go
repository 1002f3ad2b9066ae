package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/search-collector/internal/google"
	"github.com/pdiddy/search-collector/internal/history"
	"github.com/pdiddy/search-collector/internal/httputil"
	"github.com/pdiddy/search-collector/internal/search"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect search results and save them to a file",
	Long: `Collect requests pages of 10 results from the Google Custom Search API,
one at a time with a one second pause between requests, until the target
count is reached or the API has no more results. The ranked results are
printed and written to the output file.

Any failed request aborts the run and nothing is saved.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadCollectConfig(viper.GetViper(), loadedSecrets)
		out := cmd.OutOrStdout()
		errOut := cmd.ErrOrStderr()
		asJSON, _ := cmd.Flags().GetBool("json")

		// Keep stdout a clean JSON document when --json is set.
		progress := out
		if asJSON {
			progress = errOut
		}
		c := search.NewCollector(google.NewClient(cfg), progress)
		c.Delay = cfg.PageDelay

		run, err := c.Collect(cmd.Context(), cfg.Query, cfg.Location, cfg.TargetCount)
		if err != nil {
			reportFailure(errOut, err)
			return reportedError{err}
		}

		if asJSON {
			if err := search.FormatJSON(run, out); err != nil {
				return err
			}
		} else {
			search.FormatRun(run, out)
		}

		if err := search.WriteRun(cfg.OutputPath, run); err != nil {
			reportFailure(errOut, err)
			return reportedError{err}
		}
		fmt.Fprintf(progress, "\n\nResults saved to: %s\n", cfg.OutputPath)

		if cfg.HistoryDB != "" {
			store, err := history.Open(cfg.HistoryDB)
			if err != nil {
				return err
			}
			defer store.Close()
			id, err := store.Record(cmd.Context(), run, cfg.OutputPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(progress, "Recorded run %s in %s\n", id, cfg.HistoryDB)
		}

		fmt.Fprintln(progress, "\nSearch completed successfully!")
		return nil
	},
}

// reportFailure prints the failure diagnostics: status, API message and
// troubleshooting tips for HTTP errors, the plain error text otherwise.
func reportFailure(w io.Writer, err error) {
	fmt.Fprintln(w, "Error fetching search results:")
	if se, ok := httputil.AsStatusError(err); ok {
		msg := se.Message
		if msg == "" {
			msg = "Unknown error"
		}
		fmt.Fprintf(w, "Status: %d\n", se.StatusCode)
		fmt.Fprintf(w, "Message: %s\n", msg)

		switch hints := se.Hint(); len(hints) {
		case 0:
		case 1:
			fmt.Fprintf(w, "\n%s\n", hints[0])
		default:
			fmt.Fprintln(w, "\nTips:")
			for _, h := range hints {
				fmt.Fprintf(w, "- %s\n", h)
			}
		}
	} else {
		fmt.Fprintln(w, err)
	}
	fmt.Fprintln(w, "\nSearch failed")
}

func init() {
	collectCmd.Flags().String("query", "", "search phrase (default from config: \"Interior Design Company\")")
	collectCmd.Flags().String("location", "", "location appended to the query (default from config: \"Hong Kong\")")
	collectCmd.Flags().Int("count", 0, "number of results to collect (default 30)")
	collectCmd.Flags().String("out", "", "output file; .yaml/.yml writes YAML (default search-results.json)")
	collectCmd.Flags().Bool("json", false, "print results as JSON instead of the text listing")

	viper.BindPFlag("search.query", collectCmd.Flags().Lookup("query"))
	viper.BindPFlag("search.location", collectCmd.Flags().Lookup("location"))
	viper.BindPFlag("search.target_count", collectCmd.Flags().Lookup("count"))
	viper.BindPFlag("output.path", collectCmd.Flags().Lookup("out"))

	rootCmd.AddCommand(collectCmd)
}
