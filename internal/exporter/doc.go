// Package exporter renders comparison runs for people.
//
// WorkbookWriter produces the results workbook: a "Comparison Results" sheet
// with one row per subject followed by its selected comparables in
// Result{r}_ column groups, and a "Summary" sheet with the run counters.
//
// CSVWriter writes plain CSV files with an optional UTF-8 BOM for Excel.
// WritePreview uses it for the per-subject results preview.
//
// Example usage:
//
//	wb := exporter.NewWorkbookWriter(logger)
//	if err := wb.Save("report.xlsx", run); err != nil {
//	    return err
//	}
//
//	csvWriter := exporter.NewCSVWriter(paths)
//	err := csvWriter.WritePreview("preview.csv", run)
package exporter
