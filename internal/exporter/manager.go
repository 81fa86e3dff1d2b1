package exporter

import (
	"strings"

	"libwebdoc/internal/exporter/html"
	"libwebdoc/internal/exporter/openapi"
	"libwebdoc/internal/exporter/word"
)

// Kind normalizes a requested format to its canonical exporter name.
// Unknown formats return "".
func Kind(format string) string {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "markdown", "md":
		return "markdown"
	case "excel", "xlsx":
		return "excel"
	case "html":
		return "html"
	case "word", "docx":
		return "word"
	case "openapi", "swagger", "json":
		return "openapi"
	case "openapi-yaml", "yaml", "yml":
		return "openapi-yaml"
	}
	return ""
}

// GetExporters returns a list of Exporters based on requested formats.
// Aliases of the same format produce a single exporter.
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		kind := Kind(fmtStr)
		if kind == "" || seen[kind] {
			continue
		}
		seen[kind] = true

		switch kind {
		case "markdown":
			exporters = append(exporters, NewMarkdownExporter())
		case "excel":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter())
		case "word":
			exporters = append(exporters, word.NewWordExporter())
		case "openapi":
			exporters = append(exporters, openapi.NewOpenAPIExporter(openapi.FormatJSON))
		case "openapi-yaml":
			exporters = append(exporters, openapi.NewOpenAPIExporter(openapi.FormatYAML))
		}
	}

	return exporters
}
