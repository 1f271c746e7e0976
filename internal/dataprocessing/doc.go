// Package dataprocessing turns county hotel exports into normalized property
// records and helps choose the subjects of a comparison run.
//
// # Loading
//
// A Loader reads .xlsx workbooks (first sheet, or a named one) and .csv files.
// The header row is located by flexible header matching, so exports with
// extra columns, a year in the value headers or a few title rows above the
// table still load:
//
//	loader := dataprocessing.NewLoader(logger)
//	ds, err := loader.LoadFile("hotels.xlsx", dataprocessing.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(ds.Report.Loaded, ds.Report.Dropped)
//
// Rows with a missing location, a non-numeric or negative value, a room count
// that is not a positive whole number, or a hotel class outside the fixed
// vocabulary are dropped and counted in the LoadReport.
//
// # Choosing subjects
//
// ScopeByAddress maps a list of property addresses to a comparables.Scope.
// SearchAddresses performs a fuzzy partial-ratio search over addresses for
// interactive selection.
package dataprocessing
