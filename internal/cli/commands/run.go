package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gtpp/internal/config"
	"gtpp/internal/execution"
	"gtpp/internal/pipeline"
	"gtpp/internal/storage"
	"gtpp/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config *config.Config
	runner *execution.Runner
	viewer *ui.Viewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, runner *execution.Runner, viewer *ui.Viewer) *RunCommand {
	return &RunCommand{
		config: cfg,
		runner: runner,
		viewer: viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	// A filtered run shows few tests, so show them all.
	rc.config.FilterActive = execution.DetectFilter(args[1:])

	classifier, err := newClassifier(rc.config)
	if err != nil {
		return err
	}

	collector := ui.NewCollector(rc.config.ASCII)
	renderer := ui.NewRenderer(rc.config, cmd.OutOrStdout(), collector)
	p := pipeline.New(classifier, newConsumers(rc.config, collector, renderer)...)

	exitCode, err := rc.runner.Run(cmd.Context(), args, p)
	if err != nil {
		return err
	}

	summary := p.Summary()

	if rc.config.JSONOut != "" {
		st := storage.NewJSONStorage(rc.config.JSONOut)
		if err := st.Save(summary, collector.Failures()); err != nil {
			return fmt.Errorf("save JSON report: %w", err)
		}
	}

	if rc.config.Interactive && len(collector.Failures()) > 0 {
		if err := rc.viewer.View(collector.Failures()); err != nil {
			fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		}
	}

	if summary.Failed > 0 || exitCode != 0 {
		return execution.ErrTestsFailed
	}
	return nil
}
