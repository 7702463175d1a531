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

// PipeCommand handles the pipe command
type PipeCommand struct {
	config *config.Config
	viewer *ui.Viewer
}

// NewPipeCommand creates a new PipeCommand
func NewPipeCommand(cfg *config.Config, viewer *ui.Viewer) *PipeCommand {
	return &PipeCommand{
		config: cfg,
		viewer: viewer,
	}
}

// Execute runs the command
func (pc *PipeCommand) Execute(cmd *cobra.Command, args []string) error {
	classifier, err := newClassifier(pc.config)
	if err != nil {
		return err
	}

	collector := ui.NewCollector(pc.config.ASCII)
	renderer := ui.NewRenderer(pc.config, cmd.OutOrStdout(), collector)
	p := pipeline.New(classifier, newConsumers(pc.config, collector, renderer)...)

	if err := p.Run(cmd.InOrStdin()); err != nil {
		return err
	}

	summary := p.Summary()

	if pc.config.JSONOut != "" {
		st := storage.NewJSONStorage(pc.config.JSONOut)
		if err := st.Save(summary, collector.Failures()); err != nil {
			return fmt.Errorf("save JSON report: %w", err)
		}
	}

	if pc.config.Interactive && len(collector.Failures()) > 0 {
		if err := pc.viewer.View(collector.Failures()); err != nil {
			fmt.Fprintf(os.Stderr, "viewer: %v\n", err)
		}
	}

	if summary.Failed > 0 {
		return execution.ErrTestsFailed
	}
	return nil
}
