package exporter

import (
	"libwebdoc/internal/config"
	"libwebdoc/internal/model"
)

// Exporter is the unified interface for all reporting strategies
type Exporter interface {
	Export(site *model.Site, cfg *config.Config) error
}
