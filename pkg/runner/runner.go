package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/spf13/afero"

	"github.com/yaklabco/saeval/internal/logging"
	"github.com/yaklabco/saeval/pkg/aggregate"
	"github.com/yaklabco/saeval/pkg/config"
	"github.com/yaklabco/saeval/pkg/extract"
	"github.com/yaklabco/saeval/pkg/match"
	"github.com/yaklabco/saeval/pkg/report"
)

// Runner fans the per-project pipeline out across a bounded worker pool.
// Projects are independent; the only join point is the final summary.
type Runner struct {
	aggregator *aggregate.Aggregator
}

// New creates a Runner. A nil matcher selects exact (checker, line) matching.
func New(matcher *match.Matcher) *Runner {
	return &Runner{aggregator: aggregate.New(matcher)}
}

// projectOutcome carries one worker's result back to the collector.
type projectOutcome struct {
	project string
	row     aggregate.Row
	err     error
}

// Run extracts (when pointed at raw reports) and compares every enabled
// project, then summarizes. A project failure is recorded on the Result and
// does not abort the remaining projects.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	enabled := make([]config.Project, 0, len(opts.Projects))
	for _, p := range opts.Projects {
		if p.Disabled {
			logging.FromContext(ctx).Debug("skipping disabled project",
				logging.FieldProject, p.Name)
			continue
		}
		enabled = append(enabled, p)
	}

	result := &Result{}
	if len(enabled) == 0 {
		result.Summary = aggregate.Summarize(nil)
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(enabled) {
		jobs = len(enabled)
	}

	workCh := make(chan config.Project)
	outCh := make(chan projectOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, opts, workCh, outCh)
		}()
	}

	go func() {
		defer close(workCh)
		for _, p := range enabled {
			select {
			case <-ctx.Done():
				return
			case workCh <- p:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]projectOutcome, len(enabled))
	for outcome := range outCh {
		outcomes[outcome.project] = outcome
	}

	// Deterministic order regardless of worker completion order.
	for _, p := range enabled {
		outcome, ok := outcomes[p.Name]
		if !ok {
			continue
		}
		if outcome.err != nil {
			result.Errors = append(result.Errors, ProjectError{Project: p.Name, Err: outcome.err})
			continue
		}
		result.Rows = append(result.Rows, outcome.row)
	}
	result.Summary = aggregate.Summarize(result.Rows)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, opts Options, workCh <-chan config.Project, outCh chan<- projectOutcome) {
	for p := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		row, err := r.compareProject(ctx, opts, p.Name)

		select {
		case <-ctx.Done():
			return
		case outCh <- projectOutcome{project: p.Name, row: row, err: err}:
		}
	}
}

// compareProject resolves both sides for one project and aggregates them.
func (r *Runner) compareProject(ctx context.Context, opts Options, project string) (aggregate.Row, error) {
	groundTruth, err := resolveSide(ctx, opts.Fs, opts.GroundTruth, project)
	if err != nil {
		return aggregate.Row{}, fmt.Errorf("ground truth: %w", err)
	}

	candidate, err := resolveSide(ctx, opts.Fs, opts.Candidate, project)
	if err != nil {
		return aggregate.Row{}, fmt.Errorf("candidate: %w", err)
	}

	return r.aggregator.Aggregate(project, groundTruth, candidate)
}

// resolveSide produces the ProjectResult for one side: fresh extraction when
// a raw reports root is configured, otherwise a load of the stored artifact.
func resolveSide(ctx context.Context, fs afero.Fs, src Source, project string) (*report.ProjectResult, error) {
	if src.ReportsRoot != "" {
		result, _, err := extract.ExtractToFile(ctx, fs, extract.Options{
			ReportsDir:  src.reportsDir(project),
			Project:     project,
			ProjectRoot: src.projectRoot(project),
		}, src.IntermediatesDir)
		return result, err
	}
	return report.Load(fs, src.intermediatePath(project))
}
