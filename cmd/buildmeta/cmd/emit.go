package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"template-go/internal/client/command"
	"template-go/internal/client/git"
	"template-go/internal/client/gotool"
	"template-go/internal/config"
	"template-go/internal/model"
	"template-go/internal/report"
	"template-go/internal/service"
	"template-go/internal/stamp"
)

// Command flags
var (
	emitFormat string // Output format
	emitOutput string // Output file, stdout when empty
	emitStamp  string // Stamp file used to skip unchanged inspections
	emitDir    string // Repository directory, overrides build.dir
)

// Process collaborators, replaced in tests.
var (
	newRunner = func() command.Runner { return command.NewExecRunner() }
	environ   = service.EnvironFromOS
	clock     service.Clock
)

// emitCmd represents the emit command.
var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Emit build metadata",
	Long: `Inspect the repository, the toolchain and the build environment and
write the build metadata in the requested format:

  env      KEY=VALUE lines
  ldflags  -X flags setting the variables of the buildinfo package
  tags     comma-separated build tags (nightly, beta, stable, msrv)
  json     full metadata document
  yaml     full metadata document

With --stamp, the metadata is recorded together with a fingerprint of the
watched files and reused as long as none of them changes.`,
	Args: cobra.NoArgs,
	RunE: runEmit,
}

func init() {
	emitCmd.Flags().StringVarP(&emitFormat, "format", "f", "env", "output format (env, ldflags, tags, json, yaml)")
	emitCmd.Flags().StringVarP(&emitOutput, "output", "o", "", "output file (default stdout)")
	emitCmd.Flags().StringVar(&emitStamp, "stamp", "", "stamp file recording the metadata and its watched files")
	emitCmd.Flags().StringVar(&emitDir, "dir", "", "repository directory (overrides build.dir)")

	rootCmd.AddCommand(emitCmd)
}

func runEmit(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Reject unknown formats before any inspection happens.
	writer, err := report.NewRegistry(cfg.Build.Package, logger).Get(emitFormat)
	if err != nil {
		return err
	}

	dir := cfg.Build.Dir
	if emitDir != "" {
		dir = emitDir
	}

	meta := collect(cmd.Context(), cfg, dir, logger)

	var out io.Writer = cmd.OutOrStdout()
	if emitOutput != "" {
		f, err := os.Create(emitOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := writer.Write(meta, out); err != nil {
		return fmt.Errorf("failed to write %s output: %w", writer.Format(), err)
	}

	logger.Debug().Str("format", writer.Format()).Str("output", emitOutput).Msg("build metadata written")
	return nil
}

// collect returns the recorded metadata when the stamp is still fresh and
// runs the inspectors otherwise. Stamp problems never fail the build.
func collect(ctx context.Context, cfg *config.Config, dir string, logger zerolog.Logger) *model.Metadata {
	inputs := stampInputs(cfg, dir)

	if emitStamp != "" {
		meta, ok, err := stamp.Load(emitStamp, inputs)
		if err != nil {
			logger.Debug().Err(err).Str("stamp", emitStamp).Msg("ignoring unusable stamp")
		}
		if ok {
			logger.Info().Str("stamp", emitStamp).Msg("watched files unchanged, reusing recorded build metadata")
			return meta
		}
	}

	meta := newEmitter(cfg, dir, logger).Emit(ctx)

	if emitStamp != "" {
		if err := stamp.Save(emitStamp, inputs, meta); err != nil {
			logger.Warn().Err(err).Str("stamp", emitStamp).Msg("failed to save stamp")
		}
	}
	return meta
}

// stampInputs identifies the effective build settings and directory, so a
// stamp recorded under other settings is not reused.
func stampInputs(cfg *config.Config, dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	data, err := json.Marshal(struct {
		Dir   string             `json:"dir"`
		Build config.BuildConfig `json:"build"`
	}{dir, cfg.Build})
	if err != nil {
		return dir
	}
	return string(data)
}

// newEmitter wires the inspectors for dir from the configuration.
func newEmitter(cfg *config.Config, dir string, logger zerolog.Logger) *service.Emitter {
	runner := newRunner()
	env := environ()

	var fallback service.IdentityResolver
	if cfg.Build.IdentityCommand != "" {
		fallback = service.NewCommandIdentity(cfg.Build.IdentityCommand, runner, logger)
	}

	repository := service.NewRepositoryInspector(git.NewClient(dir, cfg.Build.GitBinary, runner, logger), logger)
	toolchain := service.NewToolchainInspector(gotool.NewClient(dir, cfg.Build.GoBinary, runner, logger), env, logger)
	environment := service.NewEnvironmentInspector(clock, service.DefaultIdentityResolvers(env, fallback), logger)

	return service.NewEmitter(repository, toolchain, environment, service.NewTargetAdvisor(runner), logger,
		service.WithPackageVersion(cfg.Build.PackageVersion),
		service.WithDescribeTags(cfg.Build.DescribeTags),
		service.WithDriverFiles(driverFiles(cfg, dir)...),
	)
}

// driverFiles lists the configuration file and the configured watch list.
// Relative watch entries are resolved against dir.
func driverFiles(cfg *config.Config, dir string) []string {
	var files []string
	if cfg.File != "" {
		files = append(files, cfg.File)
	}
	for _, w := range cfg.Build.Watch {
		w = strings.TrimSpace(w)
		if !filepath.IsAbs(w) {
			w = filepath.Join(dir, w)
		}
		files = append(files, w)
	}
	return files
}
