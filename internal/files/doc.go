// Package files manages the report and dataset files kept on disk.
//
// Catalog lists the workbooks and CSV files in one directory, newest
// first, and resolves client-supplied names without letting them escape
// that directory. ValidateDatasetFile checks an input path before the
// loader opens it.
//
//	catalog := files.NewCatalog(paths.ReportsDir)
//	reports, err := catalog.List()
//	latest, ok := files.GetLatestFile(reports)
package files
