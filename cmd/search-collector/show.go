package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/search-collector/internal/search"
)

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Print a previously saved results file",
	Long: `Show reads a results file written by collect (JSON or YAML) and prints it
without querying the search API. The file defaults to the configured output path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := viper.GetString("output.path")
		if len(args) == 1 {
			path = args[0]
		}

		run, err := search.ReadRun(path)
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

func init() {
	showCmd.Flags().Bool("json", false, "print the run as JSON")

	rootCmd.AddCommand(showCmd)
}
