package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"

	"gtpp/internal/pipeline"
)

// ErrTestsFailed signals that the run completed but tests failed.
// The caller maps it to the "tests failed" exit code; the report has
// already been printed by then.
var ErrTestsFailed = errors.New("tests failed")

// StartError means the test binary could not be started at all,
// which is distinct from the binary running and reporting failures.
type StartError struct {
	Path string
	Err  error
}

func (e *StartError) Error() string {
	return fmt.Sprintf("failed to start %s: %v", e.Path, e.Err)
}

func (e *StartError) Unwrap() error { return e.Err }

// Runner spawns the test binary and streams its combined output
// through the pipeline.
type Runner struct{}

// NewRunner creates a Runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes argv[0] with the remaining args and feeds its stdout
// and stderr, line-buffered and in arrival order, into the pipeline.
// Returns the subprocess exit code. The pipeline is always finished,
// even when the subprocess dies mid-stream.
func (r *Runner) Run(ctx context.Context, argv []string, p *pipeline.Pipeline) (int, error) {
	if len(argv) == 0 {
		return 0, &StartError{Path: "", Err: errors.New("no test binary given")}
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin

	// One pipe for both streams keeps the interleaving the binary
	// produced.
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		return 0, &StartError{Path: argv[0], Err: err}
	}

	var waitErr error
	g := new(errgroup.Group)
	g.Go(func() error {
		defer pr.Close()
		return p.Run(pr)
	})
	g.Go(func() error {
		waitErr = cmd.Wait()
		pw.Close()
		return nil
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("wait for %s: %w", argv[0], waitErr)
	}
	return 0, nil
}

// DetectFilter reports whether the test run is filtered to a subset
// of tests, via the --gtest_filter argument or the GTEST_FILTER
// environment variable.
func DetectFilter(argv []string) bool {
	for _, arg := range argv {
		if strings.HasPrefix(arg, "--gtest_filter=") || arg == "--gtest_filter" {
			return true
		}
	}
	return os.Getenv("GTEST_FILTER") != ""
}
