package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/yaklabco/saeval/internal/logging"
	"github.com/yaklabco/saeval/pkg/config"
	"github.com/yaklabco/saeval/pkg/report"
	"github.com/yaklabco/saeval/pkg/workspace"
)

func newEnvCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the experiment workspace",
		Long: `Env manages the on-disk experiment environment: the workspace
directory skeleton, source archive unpacking, and the filename-based
mutation that comments a project file out of the build.`,
	}

	cmd.AddCommand(newEnvInitCommand())
	cmd.AddCommand(newEnvUnpackCommand())
	cmd.AddCommand(newEnvMutateCommand())
	cmd.AddCommand(newEnvRestoreCommand())

	return cmd
}

func newEnvInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the workspace directory skeleton",
		Long: `Init creates the workspace directory skeleton: per-kind project,
report, and intermediate directories plus the summaries and results
trees. Existing directories are left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return &configError{err}
			}

			layout := workspace.NewLayout(cfg.Workspace)
			if err := layout.Build(afero.NewOsFs()); err != nil {
				return err
			}

			logging.Default().Info("workspace initialized", logging.FieldPath, layout.Base)
			return nil
		},
	}
}

func newEnvUnpackCommand() *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "unpack ARCHIVE PROJECT",
		Short: "Unpack a project source archive into the workspace",
		Long: `Unpack extracts a project source archive (.zip, .tar.gz, .tgz) into
the workspace sources directory for the given run kind.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			archivePath, project := args[0], args[1]

			kind := report.Kind(kindName)
			if !kind.IsValid() {
				return &usageError{fmt.Sprintf("invalid run kind %q (expected one of %v)", kindName, report.Kinds())}
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return &configError{err}
			}

			layout := workspace.NewLayout(cfg.Workspace)
			destDir := layout.ProjectDir(kind, project)

			if err := workspace.ExtractArchive(afero.NewOsFs(), archivePath, destDir); err != nil {
				return err
			}

			logging.Default().Info("unpacked sources",
				logging.FieldProject, project,
				logging.FieldKind, string(kind),
				logging.FieldInput, archivePath,
				logging.FieldOutput, destDir,
			)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", string(report.KindBaseline), "run kind: groundtruth, baseline, or method")

	return cmd
}

func newEnvMutateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mutate [PROJECT...]",
		Short: "Comment the configured mutation file out of each project build",
		Long: `Mutate renames the configured mutation file of each named project in
the baseline sources so the build no longer sees it. Without arguments
every enabled project with a mutation file is mutated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return &configError{err}
			}

			projects, err := selectProjects(cfg, args)
			if err != nil {
				return err
			}

			fs := afero.NewOsFs()
			layout := workspace.NewLayout(cfg.Workspace)
			logger := logging.Default()

			for _, p := range projects {
				if p.MutationFile == "" {
					logger.Warn("no mutation file configured", logging.FieldProject, p.Name)
					continue
				}
				projectDir := layout.ProjectDir(report.KindBaseline, p.Name)
				if err := workspace.Mutate(fs, projectDir, p.MutationFile); err != nil {
					return err
				}
				logger.Info("mutated",
					logging.FieldProject, p.Name,
					logging.FieldPath, p.MutationFile,
				)
			}
			return nil
		},
	}
}

func newEnvRestoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore [PROJECT...]",
		Short: "Undo mutations in each project's baseline sources",
		Long: `Restore strips the mutation prefix from every file carrying it in
each named project's baseline sources. Without arguments every enabled
project is restored.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return &configError{err}
			}

			projects, err := selectProjects(cfg, args)
			if err != nil {
				return err
			}

			fs := afero.NewOsFs()
			layout := workspace.NewLayout(cfg.Workspace)
			logger := logging.Default()

			for _, p := range projects {
				projectDir := layout.ProjectDir(report.KindBaseline, p.Name)
				restored, err := workspace.Restore(fs, projectDir)
				if err != nil {
					return err
				}
				logger.Info("restored",
					logging.FieldProject, p.Name,
					logging.FieldFiles, restored,
				)
			}
			return nil
		},
	}
}

// selectProjects resolves positional project names against the config, or
// returns every enabled project when none are named.
func selectProjects(cfg *config.Config, names []string) ([]config.Project, error) {
	if len(names) == 0 {
		return cfg.Enabled(), nil
	}

	projects := make([]config.Project, 0, len(names))
	for _, name := range names {
		p, ok := cfg.ProjectByName(name)
		if !ok {
			return nil, &usageError{fmt.Sprintf("unknown project %q", name)}
		}
		projects = append(projects, p)
	}
	return projects, nil
}
