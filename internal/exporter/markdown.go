package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"libwebdoc/internal/config"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"
	"libwebdoc/internal/tree"
)

// MarkdownExporter writes the page tree as one markdown file per page
type MarkdownExporter struct{}

// NewMarkdownExporter creates a new MarkdownExporter
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export writes every page under the output directory
func (e *MarkdownExporter) Export(site *model.Site, cfg *config.Config) error {
	if site == nil || site.Root == nil {
		return fmt.Errorf("nothing to export")
	}

	// pages of classes that no longer exist must not survive a rerun
	if root := cfg.Output.APIRoot; root != "" {
		if err := os.RemoveAll(filepath.Join(cfg.Output.Dir, root)); err != nil {
			return fmt.Errorf("failed to clear previous pages: %w", err)
		}
	}

	written, err := tree.WriteMarkdown(site.Root, cfg.Output.Dir)
	if err != nil {
		return err
	}

	logger.Info("   📄 Markdown pages written: %d (%s)", len(written), cfg.Output.Dir)
	return nil
}
