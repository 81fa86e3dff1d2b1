package cli

import (
	"context"
	"fmt"

	"libwebdoc/internal/analyzer"
	"libwebdoc/internal/config"
	"libwebdoc/internal/discovery"
	"libwebdoc/internal/exporter"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"
	"libwebdoc/internal/params"
	"libwebdoc/internal/ui"
)

// newWalker configures the parameter walker from the config
func newWalker(cfg *config.Config) *params.Walker {
	w := params.NewWalker()
	if cfg.LibWeb.ValidatorNamespace != "" {
		w.ValidatorNamespace = cfg.LibWeb.ValidatorNamespace
	}
	if len(cfg.LibWeb.WrapCalls) > 0 {
		w.WrapCalls = cfg.LibWeb.WrapCalls
	}
	w.Strict = cfg.LibWeb.StrictDuplicates
	return w
}

// buildSite runs discovery and documentation. pipeline, when non-nil, gets
// the Parsing and Documenting phases.
func buildSite(ctx context.Context, cfg *config.Config, pipeline *ui.Pipeline) (*model.Site, error) {
	var parseBar, docBar *ui.ProgressBar

	logger.Info("Phase 1: Parsing sources...")
	if pipeline != nil {
		parseBar = pipeline.NextPhase(-1)
	}
	res, err := discovery.Discover(ctx, cfg, progressOf(parseBar))
	if err != nil {
		return nil, err
	}
	if len(res.Skipped) > 0 {
		logger.Warn("%d file(s) could not be parsed, see the log for details", len(res.Skipped))
	}

	logger.Info("Phase 2: Documenting API classes...")
	if pipeline != nil {
		docBar = pipeline.NextPhase(len(res.Linker.Classes()))
	}
	site, err := analyzer.Analyze(ctx, analyzer.NewOptions(cfg), newWalker(cfg), res.Linker, progressOf(docBar))
	if err != nil {
		return nil, err
	}

	return site, nil
}

// export writes every configured format. All exporters run even when one fails.
func export(site *model.Site, cfg *config.Config, pipeline *ui.Pipeline) error {
	exporters := exporter.GetExporters(cfg.Output.Formats)
	if len(exporters) == 0 {
		return fmt.Errorf("no valid output format in %v", cfg.Output.Formats)
	}

	logger.Info("Phase 3: Writing %d format(s)...", len(exporters))
	var bar *ui.ProgressBar
	if pipeline != nil {
		bar = pipeline.NextPhase(len(exporters))
	}

	var exportErrors []error
	for _, exp := range exporters {
		if err := exp.Export(site, cfg); err != nil {
			logger.Error("Export failed: %v", err)
			exportErrors = append(exportErrors, err)
		}
		if bar != nil {
			_ = bar.Increment()
		}
	}

	if len(exportErrors) > 0 {
		return fmt.Errorf("one or more exports failed: %d errors", len(exportErrors))
	}
	return nil
}

// progressOf avoids handing a typed nil to an interface
func progressOf(bar *ui.ProgressBar) analyzer.Progress {
	if bar == nil {
		return nil
	}
	return bar
}
