package exporter

import (
	"fmt"
	"path/filepath"
	"strings"

	"libwebdoc/internal/config"
	"libwebdoc/internal/exporter/common"
	"libwebdoc/internal/logger"
	"libwebdoc/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	SheetOverview = "Overview"
	SheetMethods  = "Methods"
	SheetParams   = "Params"
)

// ExcelExporter handles the Excel generation
type ExcelExporter struct{}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel report
func (e *ExcelExporter) Export(site *model.Site, cfg *config.Config) error {
	if site == nil || site.Summary == nil {
		return fmt.Errorf("nothing to export")
	}

	outputFile := cfg.GetOutputPath("xlsx")
	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeOverview(f, styler, site); err != nil {
		return err
	}
	if err := e.writeMethods(f, styler, site); err != nil {
		return err
	}
	if err := e.writeParams(f, styler, site); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	if err := f.SaveAs(outputFile); err != nil {
		return fmt.Errorf("failed to save excel report: %w", err)
	}

	logger.Info("   📊 Excel report written: %s", filepath.Base(outputFile))
	return nil
}

// --- Overview Sheet Logic ---

func (e *ExcelExporter) writeOverview(f *excelize.File, s *Styler, site *model.Site) error {
	sheet := SheetOverview
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Section A: Run Summary
	row := 1
	e.writeRow(f, sheet, row, []string{"Metric", "Value"}, s.HeaderStyle)
	row++

	summary := site.Summary
	metrics := []struct {
		Key string
		Val interface{}
	}{
		{"Namespace", summary.Namespace},
		{"Analysis Date", summary.AnalysisDate},
		{"Documented Classes", summary.TotalClasses},
		{"Pages", summary.DocumentedPages},
		{"Total Methods", summary.TotalMethods},
		{"GET Methods", summary.TotalGET},
		{"POST Methods", summary.TotalPOST},
		{"Total Params", summary.TotalParams},
	}

	for _, m := range metrics {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Key)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Val)
		row++
	}

	row += 2 // Spacer

	// Section B: Class Complexity
	e.writeRow(f, sheet, row, []string{"No", "Class", "Page", "Methods", "GET", "POST", "Note"}, s.HeaderStyle)
	row++

	listIndex := 1
	for _, doc := range common.SortByComplexity(site.Classes) {
		if len(doc.Methods) == 0 {
			continue
		}
		get, post := common.CountVerbs(doc)

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), listIndex)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), doc.Class.ShortName())
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), doc.PagePath())
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), len(doc.Methods))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), get)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), post)

		if len(doc.Methods) > 20 {
			f.SetCellValue(sheet, fmt.Sprintf("G%d", row), "Complex")
		}

		row++
		listIndex++
	}

	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "C", 30)

	return nil
}

// --- Methods Sheet Logic ---

func (e *ExcelExporter) writeMethods(f *excelize.File, s *Styler, site *model.Site) error {
	sheet := SheetMethods
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Verb", "Name", "Method", "Params", "Description", "Source"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)
	freezeHeader(f, sheet)

	row := 2
	for _, doc := range common.SortClasses(site.Classes) {
		if len(doc.Methods) == 0 {
			continue
		}

		// Class heading row
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "[CLASS]")
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), doc.PagePath())
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), doc.Class.Name)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), s.ClassStyle)
		row++

		for _, m := range doc.Methods {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), string(m.Verb))
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Name)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), m.Method)
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), len(m.Parameters))
			f.SetCellValue(sheet, fmt.Sprintf("E%d", row), strings.TrimSpace(m.Description))
			f.SetCellValue(sheet, fmt.Sprintf("F%d", row), sourceRef(m))
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), s.VerbStyle(string(m.Verb)))
			row++
		}
	}

	f.SetColWidth(sheet, "B", "C", 30)
	f.SetColWidth(sheet, "E", "E", 50)
	f.SetColWidth(sheet, "F", "F", 40)

	return nil
}

// --- Params Sheet Logic ---

func (e *ExcelExporter) writeParams(f *excelize.File, s *Styler, site *model.Site) error {
	sheet := SheetParams
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Page", "Method", "Param", "Key", "Description", "Depth"}
	e.writeRow(f, sheet, 1, headers, s.HeaderStyle)
	freezeHeader(f, sheet)

	row := 2
	for _, doc := range common.SortClasses(site.Classes) {
		for _, m := range doc.Methods {
			for _, p := range common.FlattenParams(m.Parameters) {
				f.SetCellValue(sheet, fmt.Sprintf("A%d", row), doc.PagePath())
				f.SetCellValue(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("%s %s", m.Verb, m.Name))
				f.SetCellValue(sheet, fmt.Sprintf("C%d", row), p.Label)
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), p.Record.Key)
				f.SetCellValue(sheet, fmt.Sprintf("E%d", row), p.Record.Description)
				f.SetCellValue(sheet, fmt.Sprintf("F%d", row), p.Indent)

				style := s.DefaultStyle
				if p.Indent > 0 {
					style = s.ParamStyle
				}
				f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), style)
				row++
			}
		}
	}

	f.SetColWidth(sheet, "A", "B", 30)
	f.SetColWidth(sheet, "C", "D", 30)
	f.SetColWidth(sheet, "E", "E", 50)

	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}

func freezeHeader(f *excelize.File, sheet string) {
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func sourceRef(m model.MethodRecord) string {
	if m.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", filepath.Base(m.File), m.Line)
}
