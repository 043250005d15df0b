package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"kpidash/internal/domain/report"
)

const (
	SheetKPIs   = "KPI Summary"
	SheetTrends = "Monthly Trends"
)

var kpiHeaders = []string{"KPI", "Actual", "Target", "Achievement %", "Status", "Unit"}

// WriteTrendsWorkbook writes the KPI summary and monthly trend sections of doc
// to an XLSX workbook. Sections missing from doc leave their sheet with headers only.
func WriteTrendsWorkbook(w io.Writer, doc report.Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetKPIs); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetTrends); err != nil {
		return err
	}

	boldStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}

	if err := writeSheetHeader(f, SheetKPIs, kpiHeaders, boldStyle); err != nil {
		return err
	}
	if section, ok := doc.Section(report.SectionKPISummary); ok {
		for i, row := range section.KPIs {
			values := []any{row.Name, row.Actual, row.Target, row.Achievement, row.Status, row.Unit}
			if err := writeSheetRow(f, SheetKPIs, i+2, values); err != nil {
				return err
			}
		}
	}
	if err := f.SetColWidth(SheetKPIs, "A", "A", 28); err != nil {
		return err
	}

	trendHeaders := []string{"Month", "Year"}
	section, hasTrends := doc.Section(report.SectionMonthlyTrends)
	if hasTrends && section.Trends != nil {
		for _, col := range section.Trends.Columns {
			trendHeaders = append(trendHeaders, col.Name)
		}
	}
	if err := writeSheetHeader(f, SheetTrends, trendHeaders, boldStyle); err != nil {
		return err
	}
	if hasTrends && section.Trends != nil {
		for i, row := range section.Trends.Rows {
			values := []any{row.Month, row.Year}
			for _, v := range row.Values {
				values = append(values, v)
			}
			if err := writeSheetRow(f, SheetTrends, i+2, values); err != nil {
				return err
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheetHeader(f *excelize.File, sheet string, headers []string, style int) error {
	for i, h := range headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		cell := col + "1"
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
