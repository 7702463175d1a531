package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtpp/internal/cli"
	"gtpp/internal/cli/commands"
	"gtpp/internal/config"
	"gtpp/internal/execution"
)

var version = "dev"

const (
	exitTestsFailed = 1
	exitStartFailed = 2
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "gtpp",
		Short:   "Google Test output pretty-printer",
		Long:    `Reformats the textual output of a Google Test binary into a compact live report: one line per test suite, full detail for failures, and a final failure summary. Works on a spawned binary (run) or piped output (pipe).`,
		Version: version,
		// Errors are reported in main with the right exit code.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create initial config with defaults and environment overrides
	cfg := config.New()
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitTestsFailed)
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if errors.Is(err, execution.ErrTestsFailed) {
		// The renderer already reported the failures.
		os.Exit(exitTestsFailed)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var startErr *execution.StartError
	if errors.As(err, &startErr) {
		os.Exit(exitStartFailed)
	}
	os.Exit(exitTestsFailed)
}
