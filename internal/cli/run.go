package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/saeval/internal/logging"
	"github.com/yaklabco/saeval/pkg/match"
	"github.com/yaklabco/saeval/pkg/report"
	"github.com/yaklabco/saeval/pkg/reporter"
	"github.com/yaklabco/saeval/pkg/runner"
	"github.com/yaklabco/saeval/pkg/workspace"
)

func newRunCommand() *cobra.Command {
	var modeName string
	var jobs int
	var fromReports bool
	var outDir string
	var lineBucket int

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compare every configured project and write the results table",
		Long: `Run compares the configured candidate run (baseline or method) against
the ground truth for every enabled project, prints the results table,
and writes the dated CSV artifact into the workspace results directory.

By default both sides are read from stored intermediate artifacts.
With --from-reports, raw SARIF reports are extracted first and the
intermediate artifacts are refreshed as a side effect.

A failing project is reported and skipped; the remaining projects are
still compared. The exit code is non-zero when any project failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return &configError{err}
			}

			mode := cfg.Mode
			if modeName != "" {
				mode = report.Kind(modeName)
			}
			if !mode.IsValid() {
				return &usageError{fmt.Sprintf("invalid mode %q (expected one of %v)", modeName, report.Kinds())}
			}
			if jobs == 0 {
				jobs = cfg.Jobs
			}

			fs := afero.NewOsFs()
			layout := workspace.NewLayout(cfg.Workspace)

			groundTruth := runner.Source{
				IntermediatesDir: layout.IntermediatesDir(report.KindGroundTruth),
			}
			candidate := runner.Source{
				IntermediatesDir: layout.IntermediatesDir(mode),
			}
			if fromReports {
				groundTruth.ReportsRoot = layout.ReportsDir(report.KindGroundTruth)
				groundTruth.ProjectRootBase = layout.ProjectsDir(report.KindGroundTruth)
				candidate.ReportsRoot = layout.ReportsDir(mode)
				candidate.ProjectRootBase = layout.ProjectsDir(mode)
			}

			var matcher *match.Matcher
			if lineBucket > 1 {
				matcher = match.New()
				matcher.Key = match.BucketedLineKey(lineBucket)
			}

			logger := logging.Default()
			logger.Debug("starting run",
				logging.FieldMode, string(mode),
				logging.FieldSummary, string(cfg.Summary),
				logging.FieldProjects, len(cfg.Enabled()),
				logging.FieldJobs, jobs,
			)

			start := time.Now()
			result, err := runner.New(matcher).Run(cmd.Context(), runner.Options{
				Fs:          fs,
				Projects:    cfg.Projects,
				GroundTruth: groundTruth,
				Candidate:   candidate,
				Jobs:        jobs,
			})
			if err != nil {
				return err
			}

			reporter.RenderTableWidth(os.Stdout, result.Rows, terminalWidth(os.Stdout))

			bundle := stylesFor(cmd)
			fmt.Fprint(os.Stdout, bundle.Styles.FormatRunSummary(result))
			fmt.Fprint(os.Stderr, bundle.Styles.FormatFailures(result))

			if outDir == "" {
				outDir = layout.ResultsDir()
			}
			csvPath, err := reporter.WriteCSV(cmd.Context(), fs, outDir, result.Rows, time.Now())
			if err != nil {
				return err
			}
			logger.Info("wrote results",
				logging.FieldPath, csvPath,
				logging.FieldRows, len(result.Rows),
				logging.FieldDuration, time.Since(start).Seconds(),
			)

			if result.Failed() {
				return errProjectsFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&modeName, "mode", "", "candidate run kind: baseline or method (default from config)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "number of projects compared in parallel (default from config, then NumCPU)")
	cmd.Flags().BoolVar(&fromReports, "from-reports", false, "extract raw reports before comparing")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "results directory (default <workspace>/results)")
	cmd.Flags().IntVar(&lineBucket, "line-bucket", 1,
		"match findings whose lines fall in the same bucket of this width")

	return cmd
}
