package cli

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/saeval/internal/logging"
	"github.com/yaklabco/saeval/pkg/aggregate"
	"github.com/yaklabco/saeval/pkg/match"
	"github.com/yaklabco/saeval/pkg/report"
	"github.com/yaklabco/saeval/pkg/reporter"
)

func newCompareCommand() *cobra.Command {
	var outDir string
	var lineBucket int

	cmd := &cobra.Command{
		Use:   "compare GROUNDTRUTH CANDIDATE",
		Short: "Compare one candidate artifact against its ground truth",
		Long: `Compare matches a candidate intermediate artifact against the ground
truth artifact of the same project and prints the resulting confusion
counts with precision and recall.

With --out, the per-checker detail JSON is also written next to the
run's CSV results.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()
			logger := logging.Default()

			groundTruth, err := report.Load(fs, args[0])
			if err != nil {
				return err
			}
			candidate, err := report.Load(fs, args[1])
			if err != nil {
				return err
			}

			matcher := match.New()
			if lineBucket > 1 {
				matcher.Key = match.BucketedLineKey(lineBucket)
			}

			aggregator := aggregate.New(matcher)
			row, err := aggregator.Aggregate(groundTruth.Project, groundTruth, candidate)
			if err != nil {
				return err
			}

			reporter.RenderTableWidth(os.Stdout, []aggregate.Row{row}, terminalWidth(os.Stdout))

			if outDir != "" {
				detail := reporter.BuildDetail(matcher, groundTruth, candidate)
				detailPath, err := reporter.WriteDetailJSON(cmd.Context(), fs, outDir, detail)
				if err != nil {
					return err
				}
				logger.Info("wrote comparison detail",
					logging.FieldProject, groundTruth.Project,
					logging.FieldPath, detailPath,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to write the per-checker detail JSON")
	cmd.Flags().IntVar(&lineBucket, "line-bucket", 1,
		"match findings whose lines fall in the same bucket of this width")

	return cmd
}
