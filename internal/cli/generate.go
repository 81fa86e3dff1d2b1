package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"libwebdoc/internal/config"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/ui"
	"libwebdoc/internal/watch"
)

const logFileName = "libwebdoc.log"

type generateOptions struct {
	watch      bool
	noProgress bool
}

func newGenerateCommand(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the API reference",
		Long: `Discover the API classes, extract their documented methods and write
the reference in every configured format.

With --watch the reference is regenerated whenever a PHP file changes.`,
		Example: `  libwebdoc generate
  libwebdoc generate --namespace 'App\Api' --format markdown,openapi
  libwebdoc generate -c docs/libwebdoc.yaml --watch`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, root)
			if err != nil {
				return err
			}

			logPath := filepath.Join(cfg.Output.Dir, logFileName)
			if err := logger.Init(cmd.OutOrStdout(), logPath, root.verbose); err != nil {
				return err
			}
			defer logger.Close()

			printBanner(cmd.OutOrStdout())
			if root.verbose {
				cfg.Print()
			}

			if err := runGenerate(cmd.Context(), cfg, opts, cmd); err != nil {
				logger.Error("Generation failed: %v", err)
				return err
			}
			if !opts.watch {
				return nil
			}
			return runWatch(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringSlice("format", nil, "Output formats (markdown,excel,html,word,openapi,openapi-yaml)")
	cmd.Flags().StringP("output", "o", "", "Override output directory")
	addSourceFlags(cmd)
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Regenerate when PHP sources change")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable progress bars")

	return cmd
}

func runGenerate(ctx context.Context, cfg *config.Config, opts *generateOptions, cmd *cobra.Command) error {
	if !cfg.Enabled() {
		logger.Warn("No API namespace configured (libweb.namespace), nothing to document")
		return nil
	}

	pipeline := ui.NewPipeline(ui.GeneratePhases, cmd.ErrOrStderr())
	if opts.noProgress {
		pipeline.Disable()
	}
	defer pipeline.Finish()

	site, err := buildSite(ctx, cfg, pipeline)
	if err != nil {
		return err
	}
	if err := export(site, cfg, pipeline); err != nil {
		return err
	}
	pipeline.Finish()
	logger.Info("Processed: %s", pipeline.Summary())

	s := site.Summary
	logger.Info("✅ Documented %d methods (%d GET, %d POST) on %d pages. Check [%s] directory.",
		s.TotalMethods, s.TotalGET, s.TotalPOST, s.DocumentedPages, cfg.Output.Dir)
	return nil
}

// runWatch regenerates on every debounced batch of PHP changes until ctx is done
func runWatch(ctx context.Context, cfg *config.Config) error {
	w, err := watch.New([]string{cfg.Project.RootDir}, func(path string) bool {
		if within(cfg.Output.Dir, path) {
			return true
		}
		rel, err := filepath.Rel(cfg.Project.RootDir, path)
		return err == nil && cfg.ShouldExclude(rel)
	}, func(ctx context.Context, changed []string) error {
		site, err := buildSite(ctx, cfg, nil)
		if err != nil {
			return err
		}
		return export(site, cfg, nil)
	})
	if err != nil {
		return err
	}

	logger.Info("👀 Watching %s for changes. Press Ctrl+C to stop.", cfg.Project.RootDir)
	return w.Run(ctx)
}

// within reports whether path is dir or lies below it
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
