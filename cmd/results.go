package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/fmfcore/tmtmeta/internal/results"
	"github.com/fmfcore/tmtmeta/internal/schema"
)

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Merge and summarize results documents",
	}
	cmd.AddCommand(newResultsMergeCmd())
	cmd.AddCommand(newResultsShowCmd())
	return cmd
}

func newResultsMergeCmd() *cobra.Command {
	var parentName, dataDir, resultsDir string
	cmd := &cobra.Command{
		Use:   "merge <custom-result-file>",
		Short: "Merge a test's custom result file into final records (runner-observed fields are left empty)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return newCLIError(ExitError, err)
			}
			custom, err := results.LoadCustomFile(data)
			if err != nil {
				return newCLIError(ExitError, err)
			}

			merged, err := results.MergeCustomFile(parentName, custom, results.Observation{}, dataDir, resultsDir)
			if err != nil {
				return newCLIError(ExitError, err)
			}

			out, err := results.MarshalDocument(merged)
			if err != nil {
				return newCLIError(ExitError, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&parentName, "parent", "/", "the parent test's identifier path")
	cmd.Flags().StringVar(&dataDir, "data-dir", ".", "the test's data directory, for resolving relative log paths")
	cmd.Flags().StringVar(&resultsDir, "results-dir", ".", "the plan's results-file directory")
	return cmd
}

func newResultsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <results-file>",
		Short: "Summarize a results document and report the run's exit code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return newCLIError(ExitError, err)
			}
			records, err := results.LoadCustomFile(data)
			if err != nil {
				return newCLIError(ExitError, err)
			}

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"name", "result"})

			outcomes := make([]schema.Outcome, len(records))
			for i, r := range records {
				tw.AppendRow(table.Row{r.Name, r.Result})
				outcomes[i] = results.CheckAugmentedOutcome(r)
			}
			tw.Render()

			code := results.ExitCode(outcomes)
			fmt.Fprintf(cmd.OutOrStdout(), "overall: %s (exit %d)\n", results.Reduce(outcomes), code)
			if code != ExitPass {
				return newCLIError(code, fmt.Errorf("run did not pass cleanly"))
			}
			return nil
		},
	}
	return cmd
}
