package html

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"libwebdoc/internal/config"
	"libwebdoc/internal/exporter/common"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"
)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

// APIReportData is the root object handed to the template
type APIReportData struct {
	AnalysisDate string
	Namespace    string
	TotalPages   int
	TotalMethods int
	TotalGET     int
	TotalPOST    int
	TotalParams  int
	Pages        []PageData
}

type PageData struct {
	Path    string
	Anchor  string
	Methods []MethodData
}

type MethodData struct {
	Verb        string
	Name        string
	Method      string
	Class       string
	Description string
	Code        string
	Params      []common.FlattenedParam
}

func (e *HTMLExporter) Export(site *model.Site, cfg *config.Config) error {
	if site == nil || site.Summary == nil {
		return fmt.Errorf("nothing to export")
	}

	data := BuildReportData(site)

	outputFile := cfg.GetOutputPath("html")
	f, err := os.Create(outputFile)
	if err != nil {
		return err
	}
	defer f.Close()

	tmpl, err := template.New("api-report").Funcs(template.FuncMap{
		"methodColor": getMethodColor,
		"mul": func(a, b int) int {
			return a * b
		},
		"add": func(a, b int) int {
			return a + b
		},
	}).Parse(APIReportTemplate)
	if err != nil {
		return err
	}

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render html report: %w", err)
	}

	logger.Info("   🌐 HTML report written: %s", filepath.Base(outputFile))
	return nil
}

// BuildReportData flattens the site into template-ready pages.
// Pages without methods are left out.
func BuildReportData(site *model.Site) APIReportData {
	s := site.Summary
	data := APIReportData{
		AnalysisDate: s.AnalysisDate,
		Namespace:    s.Namespace,
		TotalMethods: s.TotalMethods,
		TotalGET:     s.TotalGET,
		TotalPOST:    s.TotalPOST,
		TotalParams:  s.TotalParams,
	}

	for _, doc := range common.SortClasses(site.Classes) {
		if len(doc.Methods) == 0 {
			continue
		}
		page := PageData{
			Path:   doc.PagePath(),
			Anchor: strings.ReplaceAll(doc.PagePath(), "/", "-"),
		}
		for _, m := range doc.Methods {
			page.Methods = append(page.Methods, MethodData{
				Verb:        string(m.Verb),
				Name:        m.Name,
				Method:      m.Method,
				Class:       doc.Class.ShortName(),
				Description: strings.TrimSpace(m.Description),
				Code:        m.Code,
				Params:      common.FlattenParams(m.Parameters),
			})
		}
		data.Pages = append(data.Pages, page)
	}
	data.TotalPages = len(data.Pages)

	return data
}

// getMethodColor returns CSS color class for a verb
func getMethodColor(verb string) string {
	switch strings.ToUpper(verb) {
	case "GET":
		return "method-get"
	case "POST":
		return "method-post"
	default:
		return "method-default"
	}
}
