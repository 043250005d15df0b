package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"kpidash/internal/domain/kpi"
	"kpidash/internal/domain/report"
)

const (
	pdfLineHeight = 6.0
	pdfPageWidth  = 190.0
)

// WritePDF lays the document sections out top to bottom on A4 pages.
func WritePDF(w io.Writer, doc report.Document) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	for _, section := range doc.Sections {
		switch {
		case section.Header != nil:
			writeHeader(pdf, tr, section.Header)
		case section.Summary != nil:
			writeTitle(pdf, tr, section.Title)
			writeExecutive(pdf, section.Summary)
		case section.Kind == report.SectionKPISummary:
			writeTitle(pdf, tr, section.Title)
			writeKPITable(pdf, tr, section.KPIs)
		case section.Goals != nil:
			writeTitle(pdf, tr, section.Title)
			writeGoals(pdf, tr, section.Goals)
		case len(section.Bullets) > 0:
			writeTitle(pdf, tr, section.Title)
			for _, b := range section.Bullets {
				writeParagraph(pdf, tr, b.Title+": "+b.Detail)
			}
		case len(section.Items) > 0:
			writeTitle(pdf, tr, section.Title)
			for i, item := range section.Items {
				writeParagraph(pdf, tr, fmt.Sprintf("%d. %s", i+1, item))
			}
		case section.Trends != nil:
			writeTitle(pdf, tr, section.Title)
			writeTrends(pdf, tr, section.Trends)
		case section.Footer != nil:
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "I", 9)
			writeParagraph(pdf, tr, "Generated: "+section.Footer.GeneratedAt)
			writeParagraph(pdf, tr, section.Footer.Note)
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

func writeHeader(pdf *gofpdf.Fpdf, tr func(string) string, h *report.Header) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(h.Title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, pdfLineHeight, tr(h.MemberName+" | "+h.Designation), "", 1, "L", false, 0, "")
	if h.Email != "" {
		pdf.CellFormat(0, pdfLineHeight, tr(h.Email), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, pdfLineHeight, tr("Generated: "+h.GeneratedAt), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func writeTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(title), "B", 1, "L", false, 0, "")
	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 10)
}

func writeParagraph(pdf *gofpdf.Fpdf, tr func(string) string, text string) {
	pdf.MultiCell(0, pdfLineHeight, tr(text), "", "L", false)
}

func writeExecutive(pdf *gofpdf.Fpdf, s *report.ExecutiveSummary) {
	pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("Overall performance: %d%% (%s)", s.OverallPerformance, s.Grade), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("KPIs on target: %d of %d", s.KPIsOnTarget, s.KPICount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("Months tracked: %d", s.MonthsTracked), "", 1, "L", false, 0, "")
	if s.GoalCompletion != nil && s.TotalGoals != nil {
		pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("Goal completion: %d%% of %d goals", *s.GoalCompletion, *s.TotalGoals), "", 1, "L", false, 0, "")
	}
}

func writeKPITable(pdf *gofpdf.Fpdf, tr func(string) string, rows []report.KPIRow) {
	if len(rows) == 0 {
		writeParagraph(pdf, tr, "No KPI targets apply to this team member.")
		return
	}
	widths := []float64{60, 30, 30, 25, 25, 20}
	writeTableRow(pdf, tr, widths, []string{"KPI", "Actual", "Target", "Achievement", "Status", "Unit"}, true)
	for _, row := range rows {
		writeTableRow(pdf, tr, widths, []string{
			row.Name,
			formatFloat(row.Actual),
			formatFloat(row.Target),
			strconv.Itoa(row.Achievement) + "%",
			row.Status,
			row.Unit,
		}, false)
	}
}

func writeGoals(pdf *gofpdf.Fpdf, tr func(string) string, block *report.GoalsBlock) {
	s := block.Summary
	pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("Total: %d  Completed: %d  In progress: %d", s.Total, s.Completed, s.InProgress), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, pdfLineHeight, fmt.Sprintf("Completion: %d%%  On time: %d%%  Overdue: %d%%  Avg days: %d", s.CompletionPercent, s.OnTimePercent, s.OverduePercent, s.AvgCompletionDays), "", 1, "L", false, 0, "")
	if len(block.Goals) == 0 {
		return
	}
	pdf.Ln(1)
	widths := []float64{70, 25, 30, 35, 30}
	writeTableRow(pdf, tr, widths, []string{"Goal", "Priority", "Status", "Deadline", "Complexity"}, true)
	for _, goal := range block.Goals {
		deadline := "N/A"
		if goal.Deadline != nil {
			deadline = goal.Deadline.Format("2006-01-02")
		}
		writeTableRow(pdf, tr, widths, []string{goal.GoalName, goal.Priority, goal.Status, deadline, goal.Complexity}, false)
	}
}

func writeTrends(pdf *gofpdf.Fpdf, tr func(string) string, table *kpi.TrendTable) {
	if len(table.Columns) == 0 || len(table.Rows) == 0 {
		writeParagraph(pdf, tr, "No monthly data recorded.")
		return
	}
	width := (pdfPageWidth - 35) / float64(len(table.Columns))
	widths := []float64{35}
	header := []string{"Month"}
	for _, col := range table.Columns {
		widths = append(widths, width)
		header = append(header, col.Name)
	}
	writeTableRow(pdf, tr, widths, header, true)
	for _, row := range table.Rows {
		cells := []string{row.Month}
		for _, v := range row.Values {
			cells = append(cells, formatFloat(v))
		}
		writeTableRow(pdf, tr, widths, cells, false)
	}
}

func writeTableRow(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, cells []string, header bool) {
	if header {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(217, 225, 242)
	} else {
		pdf.SetFont("Helvetica", "", 9)
	}
	for i, cell := range cells {
		pdf.CellFormat(widths[i], pdfLineHeight, tr(cell), "1", 0, "L", header, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
