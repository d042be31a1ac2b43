package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fmfcore/tmtmeta/internal/hardware"
)

func newHardwareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hardware",
		Short: "Parse, simplify, and canonicalize hardware constraint documents",
	}
	cmd.AddCommand(newHardwareParseCmd())
	cmd.AddCommand(newHardwareCheckCmd())
	return cmd
}

func newHardwareParseCmd() *cobra.Command {
	var simplify bool
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a hardware constraint document and print its canonical form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return newCLIError(ExitError, err)
			}
			tree, err := hardware.ParseDocument(data)
			if err != nil {
				return newCLIError(ExitError, err)
			}
			if simplify {
				tree = hardware.Simplify(tree)
			}
			out, err := hardware.Serialize(tree)
			if err != nil {
				return newCLIError(ExitError, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().BoolVar(&simplify, "simplify", false, "flatten trivially-nested and/or before serializing")
	return cmd
}

func newHardwareCheckCmd() *cobra.Command {
	var hardwareFile string
	cmd := &cobra.Command{
		Use:   "check <constraint-file>",
		Short: "Evaluate satisfies(constraint, hardware) with three-valued output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			constraintData, err := os.ReadFile(args[0])
			if err != nil {
				return newCLIError(ExitError, err)
			}
			tree, err := hardware.ParseDocument(constraintData)
			if err != nil {
				return newCLIError(ExitError, err)
			}

			h := map[string]interface{}{}
			if hardwareFile != "" {
				hwData, err := os.ReadFile(hardwareFile)
				if err != nil {
					return newCLIError(ExitError, err)
				}
				if err := yaml.Unmarshal(hwData, &h); err != nil {
					return newCLIError(ExitError, err)
				}
			}

			result := hardware.Satisfies(tree, h)

			tw := table.NewWriter()
			tw.SetOutputMirror(cmd.OutOrStdout())
			tw.AppendHeader(table.Row{"constraint", "satisfies"})
			tw.AppendRow(table.Row{args[0], result.String()})
			tw.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&hardwareFile, "hardware", "", "hardware description document (dotted-path -> value)")
	return cmd
}
