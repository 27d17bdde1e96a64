package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/saeval/internal/logging"
	"github.com/yaklabco/saeval/pkg/extract"
	"github.com/yaklabco/saeval/pkg/report"
	"github.com/yaklabco/saeval/pkg/workspace"
)

func newExtractCommand() *cobra.Command {
	var reportsDir string
	var projectRoot string
	var kindName string
	var outDir string

	cmd := &cobra.Command{
		Use:   "extract PROJECT",
		Short: "Extract raw analyzer reports into an intermediate artifact",
		Long: `Extract parses the raw SARIF reports of one project and writes the
canonical intermediate JSON artifact for it.

By default the reports directory, project source root, and output
directory are resolved from the workspace layout in the experiment
config. Each can be overridden explicitly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project := args[0]

			kind := report.Kind(kindName)
			if !kind.IsValid() {
				return &usageError{fmt.Sprintf("invalid run kind %q (expected one of %v)", kindName, report.Kinds())}
			}

			fs := afero.NewOsFs()

			if reportsDir == "" || outDir == "" || projectRoot == "" {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return &configError{err}
				}
				layout := workspace.NewLayout(cfg.Workspace)
				if reportsDir == "" {
					reportsDir = filepath.Join(layout.ReportsDir(kind), project)
				}
				if outDir == "" {
					outDir = layout.IntermediatesDir(kind)
				}
				if projectRoot == "" {
					projectRoot = layout.ProjectDir(kind, project)
				}
			}

			logger := logging.Default()
			logger.Debug("extracting reports",
				logging.FieldProject, project,
				logging.FieldKind, string(kind),
				logging.FieldInput, reportsDir,
				logging.FieldOutput, outDir,
			)

			result, outPath, err := extract.ExtractToFile(cmd.Context(), fs, extract.Options{
				ReportsDir:  reportsDir,
				Project:     project,
				ProjectRoot: projectRoot,
			}, outDir)
			if err != nil {
				return err
			}

			logger.Info("wrote intermediate artifact",
				logging.FieldProject, project,
				logging.FieldFindings, result.FindingCount(),
				logging.FieldPath, outPath,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&reportsDir, "reports", "", "directory containing raw SARIF reports")
	cmd.Flags().StringVar(&projectRoot, "project-root", "", "project source root for path relativization")
	cmd.Flags().StringVar(&kindName, "kind", string(report.KindBaseline), "run kind: groundtruth, baseline, or method")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory for the intermediate artifact")

	return cmd
}
