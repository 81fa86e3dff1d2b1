package word

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"libwebdoc/internal/config"
	"libwebdoc/internal/exporter/common"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:generate go run ../../../cmd/gentemplate -o template.docx

//go:embed template.docx
var templateFS embed.FS

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(site *model.Site, cfg *config.Config) error {
	if site == nil || site.Summary == nil {
		return fmt.Errorf("nothing to export")
	}

	// 1. Extract embedded template to temp file
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "libwebdoc-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	// 2. Replace Summary Placeholders
	s := site.Summary
	doc.Replace("{{Date}}", s.AnalysisDate, -1)
	doc.Replace("{{Namespace}}", s.Namespace, -1)
	doc.Replace("{{TotalPages}}", fmt.Sprintf("%d", s.DocumentedPages), -1)
	doc.Replace("{{TotalMethods}}", fmt.Sprintf("%d", s.TotalMethods), -1)

	// 3. Inject content (the library handles XML encoding)
	doc.Replace("{{Content}}", BuildContent(site), -1)

	outFile := cfg.GetOutputPath("docx")
	if err := doc.WriteToFile(outFile); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}

	logger.Info("   📝 Word report written: %s", filepath.Base(outFile))
	return nil
}

// BuildContent renders the site as plain text for the {{Content}} placeholder
func BuildContent(site *model.Site) string {
	var sb strings.Builder
	s := site.Summary

	sb.WriteString("API REFERENCE\n\n")
	sb.WriteString("Summary Overview:\n")
	sb.WriteString(fmt.Sprintf("  • Pages: %d\n", s.DocumentedPages))
	sb.WriteString(fmt.Sprintf("  • Methods: %d (GET %d, POST %d)\n", s.TotalMethods, s.TotalGET, s.TotalPOST))
	sb.WriteString(fmt.Sprintf("  • Parameters: %d\n\n", s.TotalParams))
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	classes := common.SortClasses(site.Classes)
	for i, doc := range classes {
		if len(doc.Methods) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("PAGE %s (%s)\n\n", doc.PagePath(), doc.Class.Name))

		for _, m := range doc.Methods {
			buildMethodText(&sb, m)
		}

		if i < len(classes)-1 {
			sb.WriteString(strings.Repeat("-", 80) + "\n\n")
		}
	}

	return sb.String()
}

// buildMethodText builds plain text documentation for a single method
func buildMethodText(sb *strings.Builder, m model.MethodRecord) {
	sb.WriteString(fmt.Sprintf("[%s] %s\n", m.Verb, m.Name))
	sb.WriteString(fmt.Sprintf("Method: %s\n", m.Method))
	if desc := strings.TrimSpace(m.Description); desc != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", desc))
	}
	sb.WriteString("\n")

	if len(m.Parameters) > 0 {
		sb.WriteString("PARAMETERS:\n")
		sb.WriteString(fmt.Sprintf("%-30s %s\n", "Name", "Description"))
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, p := range common.FlattenParams(m.Parameters) {
			sb.WriteString(fmt.Sprintf("%-30s %s\n", truncate(p.Label, 30), p.Record.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("SOURCE:\n")
	sb.WriteString(m.Code)
	sb.WriteString("\n\n")
}

// truncate truncates a string to a maximum length in runes
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
