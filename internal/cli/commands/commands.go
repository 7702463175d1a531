package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gtpp/internal/cli"
	"gtpp/internal/config"
	"gtpp/internal/execution"
	"gtpp/internal/parser"
	"gtpp/internal/pipeline"
	"gtpp/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run  *RunCommand
	Pipe *PipeCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	runner := execution.NewRunner()
	viewer := ui.NewViewer()

	return &Commands{
		Run:  NewRunCommand(cfg, runner, viewer),
		Pipe: NewPipeCommand(cfg, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		if err := flags.Apply(cfg); err != nil {
			return err
		}
		if cfg.NoColor {
			color.NoColor = true
		}
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [flags] -- <test-binary> [binary-args...]",
		Short:   "Run a Google Test binary and pretty-print its output",
		Long:    "Spawn the given test binary, reformat its output live, and mirror its outcome in the exit code",
		Args:    cobra.MinimumNArgs(1),
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	addOutputFlags(runCmd, flags)
	rootCmd.AddCommand(runCmd)

	// Pipe command
	pipeCmd := &cobra.Command{
		Use:     "pipe [flags]",
		Short:   "Pretty-print Google Test output from stdin",
		Long:    "Read already-produced test output from stdin (e.g. `./tests | gtpp pipe`) and reformat it",
		Args:    cobra.NoArgs,
		RunE:    c.Pipe.Execute,
		PreRunE: applyFlags,
	}
	addOutputFlags(pipeCmd, flags)
	rootCmd.AddCommand(pipeCmd)
}

func addOutputFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", "", "Verbosity mode: normal, failures or verbose")
	cmd.Flags().IntVarP(&flags.ThresholdMs, "threshold", "t", -1, "Print durations above this many milliseconds (default 50, or GTPP_THRESHOLD_MS)")
	cmd.Flags().BoolVar(&flags.ASCII, "ascii", false, "Use PASS/FAIL marks instead of unicode check/cross")
	cmd.Flags().BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&flags.Interactive, "interactive", "i", false, "Open the failure viewer when the run finishes with failures")
	cmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr (failures mode)")
	cmd.Flags().StringVar(&flags.Patterns, "patterns", "", "YAML file overriding the line classification patterns")
	cmd.Flags().StringVar(&flags.JSONOut, "json-out", "", "Write the finished run as a JSON report to this file")
}

// newClassifier builds the line classifier, honoring a patterns
// override file when configured.
func newClassifier(cfg *config.Config) (*parser.Classifier, error) {
	if cfg.PatternsFile == "" {
		return parser.NewClassifier(), nil
	}
	patterns, err := parser.LoadPatterns(cfg.PatternsFile)
	if err != nil {
		return nil, err
	}
	return parser.NewClassifierWithPatterns(patterns)
}

// newConsumers wires the event consumers in dependency order: the
// collector must see events before the renderer, which triggers the
// collector's final report.
func newConsumers(cfg *config.Config, collector *ui.Collector, renderer *ui.Renderer) []pipeline.Consumer {
	consumers := []pipeline.Consumer{collector}
	if cfg.Progress && cfg.EffectiveMode() == config.ModeFailuresOnly {
		consumers = append(consumers, ui.NewProgress())
	}
	return append(consumers, renderer)
}
