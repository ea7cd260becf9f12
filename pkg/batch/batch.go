package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/ajxudir/pkgsync/pkg/errors"
	"github.com/ajxudir/pkgsync/pkg/packages"
	"github.com/ajxudir/pkgsync/pkg/verbose"
	"golang.org/x/sync/errgroup"
)

// Installer installs or upgrades a single package.
//
// Implementations must be safe to call concurrently with distinct packages.
// The returned text is the captured output of a successful install.
type Installer interface {
	Install(ctx context.Context, p packages.Package) (string, error)
}

// InstallerFunc adapts a function to the Installer interface.
type InstallerFunc func(ctx context.Context, p packages.Package) (string, error)

// Install calls f(ctx, p).
func (f InstallerFunc) Install(ctx context.Context, p packages.Package) (string, error) {
	return f(ctx, p)
}

// Outcome is the result of one install action.
//
// Fields:
//   - Package: The package the action ran for
//   - Output: Captured text on success
//   - Err: *errors.ActionFailure on failure, nil on success
//   - Duration: Wall time spent inside the Installer
type Outcome struct {
	Package  packages.Package
	Output   string
	Err      error
	Duration time.Duration
}

// Succeeded reports whether the install action succeeded.
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Option configures Run.
type Option func(*options)

type options struct {
	observer func(Outcome)
}

// WithObserver registers fn to be called once per outcome as it is
// collected. fn runs on the goroutine that called Run, one call at a time.
func WithObserver(fn func(Outcome)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// Run installs every package with at most limit concurrent Install calls.
//
// It performs the following operations:
//   - Step 1: Rejects limit < 1 before any Install call
//   - Step 2: Fills a closed, buffered queue with every package
//   - Step 3: Starts min(limit, len(pkgs)) workers that drain the queue
//   - Step 4: Collects outcomes from the results channel until all arrived
//
// Parameters:
//   - ctx: Passed to every Install call; Run itself does not watch it
//   - pkgs: Packages to install, typically the reconciler output
//   - limit: Maximum number of concurrent Install calls; must be >= 1
//   - inst: The install action
//   - opts: Optional settings such as WithObserver
//
// Returns:
//   - []Outcome: Exactly one outcome per package, in completion order (never nil)
//   - error: *errors.InvalidConcurrencyError when limit < 1; nil otherwise,
//     even when every install failed
func Run(ctx context.Context, pkgs []packages.Package, limit int, inst Installer, opts ...Option) ([]Outcome, error) {
	if limit < 1 {
		return nil, errors.NewInvalidConcurrencyError(limit)
	}

	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}

	outcomes := make([]Outcome, 0, len(pkgs))
	if len(pkgs) == 0 {
		return outcomes, nil
	}

	queue := make(chan packages.Package, len(pkgs))
	for _, p := range pkgs {
		queue <- p
	}
	close(queue)

	workers := limit
	if len(pkgs) < workers {
		workers = len(pkgs)
	}
	verbose.Printf("Installing %d package(s) with %d worker(s)", len(pkgs), workers)

	results := make(chan Outcome, workers)

	// Workers never return an error; the group is only the join point.
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for p := range queue {
				results <- invoke(ctx, inst, p)
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()

	for outcome := range results {
		outcomes = append(outcomes, outcome)
		if cfg.observer != nil {
			cfg.observer(outcome)
		}
	}

	return outcomes, nil
}

// invoke runs a single install and converts errors and panics into an
// ActionFailure for that package.
func invoke(ctx context.Context, inst Installer, p packages.Package) (outcome Outcome) {
	start := time.Now()
	outcome.Package = p

	defer func() {
		if r := recover(); r != nil {
			outcome.Output = ""
			outcome.Err = errors.NewActionFailure(p.String(), fmt.Errorf("panic: %v", r))
		}
		outcome.Duration = time.Since(start)
		if outcome.Err != nil {
			verbose.Printf("Install %s failed after %s: %v", p, outcome.Duration.Round(time.Millisecond), outcome.Err)
		} else {
			verbose.Printf("Install %s succeeded after %s", p, outcome.Duration.Round(time.Millisecond))
		}
	}()

	output, err := inst.Install(ctx, p)
	if err != nil {
		outcome.Err = errors.NewActionFailure(p.String(), err)
		return outcome
	}
	outcome.Output = output
	return outcome
}
