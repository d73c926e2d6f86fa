package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kapok-dev/kapok"
	"github.com/kapok-dev/kapok/compiler/gen"
	"github.com/kapok-dev/kapok/compiler/load"
)

// GenerateCmd generates fakes from a declaration manifest.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate fakes from a declaration manifest",
	Long: `Generate fake implementations for every marked contract in the
manifest, once per requested target. Targets share one generation cache,
so a contract unchanged between targets is generated only once.

Examples:
  kapok generate --manifest fakes.yaml --out build/generated
  kapok generate --manifest fakes.yaml --out build/generated --target jvm --target js
  kapok generate --manifest fakes.yaml --out build/generated --feature calltracking --prefix stub`,
	RunE: runGenerate,
}

var (
	manifestPath string
	outDir       string
	targets      []string
	features     []string
	ctorPrefix   string
	workers      int
	verbose      bool
)

func init() {
	addGenerateFlags(GenerateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Path to the declaration manifest (required)")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory receiving generated sources (required)")
	cmd.Flags().StringArrayVar(&targets, "target", []string{"default"}, "Target compilation to generate for (repeatable)")
	cmd.Flags().StringArrayVar(&features, "feature", nil, "Optional feature to enable (repeatable)")
	cmd.Flags().StringVar(&ctorPrefix, "prefix", "", "Construction-function naming prefix")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel generation bound per target (0 = GOMAXPROCS)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	cobra.CheckErr(cmd.MarkFlagRequired("manifest"))
	cobra.CheckErr(cmd.MarkFlagRequired("out"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	return generateOnce(cmd.Context(), log)
}

// generateOnce runs one full build: every target against one shared store.
func generateOnce(ctx context.Context, log *zap.Logger) error {
	manifest, err := readManifest(manifestPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	opts := []gen.Option{
		gen.WithRegistry(manifest.Registry()),
		gen.WithWriter(dirWriter(outDir)),
		gen.WithSink(printSink()),
		gen.WithStore(gen.NewBuildStore()),
		gen.WithLogger(log),
	}
	if len(features) > 0 {
		opts = append(opts, gen.WithFeatureNames(features...))
	}
	if ctorPrefix != "" {
		opts = append(opts, gen.WithConstructorPrefix(ctorPrefix))
	}
	if workers > 0 {
		opts = append(opts, gen.WithWorkers(workers))
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return err
	}
	g, err := gen.NewGenerator(cfg)
	if err != nil {
		return err
	}

	failed := 0
	for _, target := range targets {
		res, err := g.Generate(ctx, &gen.Request{
			Target:       target,
			Declarations: manifest.Declarations,
		})
		if err != nil {
			return fmt.Errorf("target %s: %w", target, err)
		}
		failed += res.Failed
		fmt.Printf("target %s: %d generated, %d reused, %d failed\n",
			res.Target, res.Generated, res.Skipped, res.Failed)
	}
	if failed > 0 {
		return fmt.Errorf("%d contract(s) skipped with errors", failed)
	}
	return nil
}

func readManifest(path string) (*load.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return load.ParseManifest(data)
}

// dirWriter lands every generated unit in the output directory.
func dirWriter(dir string) kapok.FileWriter {
	return kapok.FileWriterFunc(func(name string, content []byte) error {
		return os.WriteFile(filepath.Join(dir, name), content, 0o644)
	})
}

// printSink forwards diagnostics to stderr as they are reported.
func printSink() kapok.Sink {
	return kapok.SinkFunc(func(d kapok.Diagnostic) {
		fmt.Fprintln(os.Stderr, d)
	})
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}
