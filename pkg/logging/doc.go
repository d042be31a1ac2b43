// Package logging provides a structured logging system for the metadata
// core with unified log handling and flexible output formatting.
//
// This package implements a logging system built on Go's standard slog
// package, providing consistent logging behavior with structured output
// and level filtering.
//
// # Architecture
//
// The logging system is built around these core concepts:
//
// ## Log Levels
//   - **Debug**: Detailed information for debugging and development
//   - **Info**: General informational messages about application operation
//   - **Warn**: Warning messages that indicate potential issues (spec §7
//     "warnings" — impossible hardware constraints, unknown leaf paths,
//     unused adjust rules)
//   - **Error**: Error messages for failures and exceptional conditions
//
// ## Structured Logging
// All log entries include:
//   - Timestamp with millisecond precision
//   - Log level (Debug, Info, Warn, Error)
//   - Subsystem identifier for categorization
//   - Message content with optional formatting
//   - Optional error information
//
// # Usage Examples
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Loader", "discovered %d tests under %s", n, root)
//	logging.Debug("Adjust", "rule %q matched for %s", because, testName)
//	logging.Warn("Hardware", "leaf %q is not known to this core", path)
//	logging.Error("Policy", err, "failed to render rule for key %q", key)
//
// # Subsystem Organization
//
// Logs are organized by subsystem to enable filtering and categorization:
//
//   - **Loader**: fmf tree discovery and YAML decoding
//   - **Adjust**: when-expression evaluation and rule application
//   - **Normalize**: schema typing and source-tag assignment
//   - **Policy**: template rendering and re-parsing
//   - **Hardware**: constraint parsing, simplification, satisfaction
//   - **Results**: custom result merging and outcome reduction
//   - **CLI**: command-line entry points
//
// # Thread Safety
//
// The logging system is safe for concurrent use from multiple goroutines;
// configuration is only mutated during Init.
package logging
