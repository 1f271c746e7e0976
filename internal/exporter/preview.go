package exporter

import (
	"io"
	"strconv"

	"hotelcomp/internal/comparables"
)

// PreviewHeaders are the columns of the results preview
var PreviewHeaders = []string{"Property Address", "Matches Found", "Selected", "Status", "OverPaid"}

// PreviewRow summarizes one subject of a run
type PreviewRow struct {
	Address      string   `json:"address"`
	ProjectName  string   `json:"project_name"`
	MatchesFound int      `json:"matches_found"`
	Selected     int      `json:"selected"`
	Status       string   `json:"status"`
	Overpaid     *float64 `json:"overpaid"`
}

// BuildPreview returns one preview row per result, in result order
func BuildPreview(run *comparables.Run) []PreviewRow {
	rows := make([]PreviewRow, 0, len(run.Results))
	for _, r := range run.Results {
		rows = append(rows, PreviewRow{
			Address:      r.Subject.Address,
			ProjectName:  r.Subject.ProjectName,
			MatchesFound: r.CandidateCount,
			Selected:     len(r.Selection),
			Status:       r.Status,
			Overpaid:     r.Overpaid(),
		})
	}
	return rows
}

func previewRecords(rows []PreviewRow) [][]string {
	records := make([][]string, len(rows))
	for i, row := range rows {
		records[i] = []string{
			row.Address,
			strconv.Itoa(row.MatchesFound),
			strconv.Itoa(row.Selected),
			row.Status,
			formatOptional(row.Overpaid),
		}
	}
	return records
}

// WritePreview writes the preview of a run to a CSV file
func (w *CSVWriter) WritePreview(filePath string, run *comparables.Run) error {
	return w.WriteCSV(filePath, WriteOptions{
		Headers:   PreviewHeaders,
		Records:   previewRecords(BuildPreview(run)),
		BOMPrefix: true,
	})
}

// WritePreviewTo writes the preview of a run as CSV to out
func WritePreviewTo(out io.Writer, run *comparables.Run) error {
	return WriteTo(out, WriteOptions{
		Headers: PreviewHeaders,
		Records: previewRecords(BuildPreview(run)),
	})
}
