package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"hotelcomp/internal/comparables"
	"hotelcomp/pkg/contracts/domain"
)

// Sheet and column names of the results workbook
const (
	ResultsSheet = "Comparison Results"
	SummarySheet = "Summary"

	StatusHeader   = "Matching Results Count / Status"
	OverpaidHeader = "OverPaid"

	headerFill = "D9E1F2"
)

// PropertyHeaders are the per-property columns, written once for the subject
// and once per result slot with a Result{r}_ prefix
var PropertyHeaders = []string{
	"Property Address",
	"State",
	"Property County",
	"Project / Hotel Name",
	"Owner Name/ LLC Name",
	"No. of Rooms",
	"Market Value-2024",
	"2024 VPR",
	"Hotel Class",
	"Hotel Class Number",
}

// ResultHeaders returns the full header row for a run capped at maxResults
func ResultHeaders(maxResults int) []string {
	headers := make([]string, 0, len(PropertyHeaders)*(maxResults+1)+2)
	headers = append(headers, PropertyHeaders...)
	headers = append(headers, StatusHeader, OverpaidHeader)
	for r := 1; r <= maxResults; r++ {
		for _, h := range PropertyHeaders {
			headers = append(headers, fmt.Sprintf("Result%d_%s", r, h))
		}
	}
	return headers
}

// workbookStyles holds the style IDs registered on a workbook
type workbookStyles struct {
	header    int
	border    int
	currency0 int
	currency2 int
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	currency0 := "$#,##0"
	currency2 := "$#,##0.00"

	var (
		s   workbookStyles
		err error
	)
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: border,
		Fill:   excelize.Fill{Type: "pattern", Color: []string{headerFill}, Pattern: 1},
	}); err != nil {
		return s, err
	}
	if s.border, err = f.NewStyle(&excelize.Style{Border: border}); err != nil {
		return s, err
	}
	if s.currency0, err = f.NewStyle(&excelize.Style{Border: border, CustomNumFmt: &currency0}); err != nil {
		return s, err
	}
	if s.currency2, err = f.NewStyle(&excelize.Style{Border: border, CustomNumFmt: &currency2}); err != nil {
		return s, err
	}
	return s, nil
}

// WorkbookWriter renders comparison runs as xlsx workbooks
type WorkbookWriter struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewWorkbookWriter creates a workbook writer
func NewWorkbookWriter(logger *slog.Logger) *WorkbookWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &WorkbookWriter{
		logger: logger.With(slog.String("component", "exporter")),
		now:    time.Now,
	}
}

// Save writes the workbook for run to path, creating parent directories
func (w *WorkbookWriter) Save(path string, run *comparables.Run) error {
	if err := writeFileAtomic(path, func(out io.Writer) error {
		return w.Write(out, run)
	}); err != nil {
		return err
	}

	w.logger.Info("Workbook saved",
		slog.String("path", path),
		slog.String("run_id", run.Summary.RunID),
		slog.Int("rows", len(run.Results)))
	return nil
}

// Write renders the workbook for run to out.
//
// The results sheet has one row per subject. Result slots beyond a subject's
// selection are left blank, and a subject without an estimate has a blank
// OverPaid cell.
func (w *WorkbookWriter) Write(out io.Writer, run *comparables.Run) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ResultsSheet); err != nil {
		return fmt.Errorf("failed to name results sheet: %w", err)
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return fmt.Errorf("failed to create styles: %w", err)
	}

	if err := w.writeResults(f, styles, run); err != nil {
		return err
	}
	if err := w.writeSummary(f, styles, run); err != nil {
		return err
	}

	if _, err := f.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *WorkbookWriter) writeResults(f *excelize.File, styles workbookStyles, run *comparables.Run) error {
	maxResults := run.Summary.MaxResults
	if maxResults < 0 {
		maxResults = 0
	}

	sw, err := f.NewStreamWriter(ResultsSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}

	if err := sw.SetPanes(&excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	headers := ResultHeaders(maxResults)
	if err := sw.SetColWidth(1, len(headers), 20); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = excelize.Cell{StyleID: styles.header, Value: h}
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, result := range run.Results {
		row := make([]interface{}, 0, len(headers))
		row = append(row, propertyCells(styles, result.Subject)...)
		row = append(row, excelize.Cell{StyleID: styles.border, Value: result.Status})

		var overpaid interface{}
		if result.Estimate != nil {
			overpaid = cellNumber(result.Estimate.Overpaid)
		}
		row = append(row, excelize.Cell{StyleID: styles.currency2, Value: overpaid})

		for slot := 0; slot < maxResults && slot < len(result.Selection); slot++ {
			row = append(row, propertyCells(styles, result.Selection[slot].PropertyRecord)...)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush results sheet: %w", err)
	}
	return nil
}

func propertyCells(styles workbookStyles, p domain.PropertyRecord) []interface{} {
	return []interface{}{
		excelize.Cell{StyleID: styles.border, Value: p.Address},
		excelize.Cell{StyleID: styles.border, Value: p.State},
		excelize.Cell{StyleID: styles.border, Value: p.County},
		excelize.Cell{StyleID: styles.border, Value: p.ProjectName},
		excelize.Cell{StyleID: styles.border, Value: p.OwnerName},
		excelize.Cell{StyleID: styles.border, Value: p.Rooms},
		excelize.Cell{StyleID: styles.currency0, Value: cellNumber(p.MarketValue)},
		excelize.Cell{StyleID: styles.currency0, Value: cellNumber(p.VPR)},
		excelize.Cell{StyleID: styles.border, Value: p.ClassLabel},
		excelize.Cell{StyleID: styles.border, Value: int(p.Class)},
	}
}

func (w *WorkbookWriter) writeSummary(f *excelize.File, styles workbookStyles, run *comparables.Run) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	s := run.Summary
	rows := [][]interface{}{
		{"Run ID", s.RunID},
		{"Generated At", w.now().UTC().Format(time.RFC3339)},
		{"Market Value Tolerance", s.Tolerance},
		{"Max Results", s.MaxResults},
		{"Total Processed", s.TotalProcessed},
		{"Matched", s.MatchedCount},
		{"No Match", s.NoMatchCount},
		{"Duration (ms)", s.Duration.Milliseconds()},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row: %w", err)
		}
	}

	end, err := excelize.CoordinatesToCellName(1, len(rows))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", end, styles.header); err != nil {
		return fmt.Errorf("failed to style summary: %w", err)
	}
	return f.SetColWidth(SummarySheet, "A", "B", 28)
}
