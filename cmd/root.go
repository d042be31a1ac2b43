package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fmfcore/tmtmeta/pkg/logging"
)

var logLevelFlag string

// Exit codes for the whole run, per spec §6.
const (
	// ExitPass indicates at least one pass, no fail/warn/error.
	ExitPass = 0
	// ExitFail indicates a fail or warn occurred, but no error.
	ExitFail = 1
	// ExitError indicates at least one error occurred.
	ExitError = 2
	// ExitNoResults indicates the run produced no results at all.
	ExitNoResults = 3
	// ExitAllSkipped indicates every result was skip.
	ExitAllSkipped = 4
)

// rootCmd is the base command for the tmtmeta CLI.
var rootCmd = &cobra.Command{
	Use:   "tmtmeta",
	Short: "Materialize fmf test metadata through adjustment, normalization, and policy",
	Long: `tmtmeta loads a tree of fmf test/plan definitions, applies context-conditional
adjust rules, normalizes the result into typed test objects, rewrites them through a
policy document, and evaluates hardware-requirement constraints and result files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.InitForCLI(parseLogLevel(logLevelFlag), cmd.ErrOrStderr())
		return nil
	},
}

func parseLogLevel(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// SetVersion injects the build version into the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute runs the CLI and exits the process with the exit code the
// failing subcommand reports.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "tmtmeta version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor unwraps a *cliError for its recorded exit code, defaulting
// to ExitError for anything else (malformed flags, I/O failures).
func exitCodeFor(err error) int {
	var ce *cliError
	if ok := asCLIError(err, &ce); ok {
		return ce.code
	}
	return ExitError
}

// cliError lets a subcommand report a specific exit code from §6 instead
// of the generic ExitError cobra would otherwise produce.
type cliError struct {
	code int
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func newCLIError(code int, err error) *cliError {
	return &cliError{code: code, err: err}
}

func asCLIError(err error, target **cliError) bool {
	for err != nil {
		if ce, ok := err.(*cliError); ok {
			*target = ce
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "info", "debug, info, warn, or error")
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newMaterializeCmd())
	rootCmd.AddCommand(newHardwareCmd())
	rootCmd.AddCommand(newResultsCmd())
}
