package dataprocessing

import (
	"strings"
)

// Column identifies a logical input column
type Column string

const (
	ColumnAddress     Column = "address"
	ColumnState       Column = "state"
	ColumnCounty      Column = "county"
	ColumnProjectName Column = "project_name"
	ColumnOwnerName   Column = "owner_name"
	ColumnRooms       Column = "rooms"
	ColumnMarketValue Column = "market_value"
	ColumnVPR         Column = "vpr"
	ColumnHotelClass  Column = "hotel_class"
)

// Canonical input headers, as they appear in the county exports
const (
	HeaderAddress     = "Property Address"
	HeaderState       = "State"
	HeaderCounty      = "Property County"
	HeaderProjectName = "Project / Hotel Name"
	HeaderOwnerName   = "Owner Name/ LLC Name"
	HeaderRooms       = "No. of Rooms"
	HeaderMarketValue = "Market Value-2024"
	HeaderVPR         = "2024 VPR"
	HeaderHotelClass  = "Hotel Class"
)

// RequiredColumns must all be located for a header row to be accepted.
// Project and owner names are optional and read as empty when absent.
var RequiredColumns = []Column{
	ColumnAddress,
	ColumnState,
	ColumnCounty,
	ColumnRooms,
	ColumnMarketValue,
	ColumnVPR,
	ColumnHotelClass,
}

// classifyHeader maps a header cell to a logical column.
// Market value and VPR headers carry a year, so they are matched by substring.
func classifyHeader(header string) (Column, bool) {
	h := strings.ToLower(strings.TrimSpace(header))
	if h == "" {
		return "", false
	}

	switch {
	case strings.Contains(h, "address"):
		return ColumnAddress, true
	case h == "state" || h == "property state":
		return ColumnState, true
	case strings.Contains(h, "county"):
		return ColumnCounty, true
	case strings.Contains(h, "project") || strings.Contains(h, "hotel name"):
		return ColumnProjectName, true
	case strings.Contains(h, "owner"):
		return ColumnOwnerName, true
	case strings.Contains(h, "room"):
		return ColumnRooms, true
	case strings.Contains(h, "market value"):
		return ColumnMarketValue, true
	case strings.Contains(h, "vpr"):
		return ColumnVPR, true
	case strings.Contains(h, "class") &&
		!strings.Contains(h, "number") && !strings.Contains(h, "order") && !strings.Contains(h, "rank"):
		return ColumnHotelClass, true
	}
	return "", false
}

// columnMap holds the index of each located column and its header text
type columnMap struct {
	index   map[Column]int
	headers map[Column]string
}

// mapHeaderRow locates columns in a header row. The first header matching a
// column wins. It returns the required columns that could not be found.
func mapHeaderRow(row []string) (columnMap, []Column) {
	cm := columnMap{
		index:   make(map[Column]int),
		headers: make(map[Column]string),
	}
	for i, cell := range row {
		text := strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
		col, ok := classifyHeader(text)
		if !ok {
			continue
		}
		if _, exists := cm.index[col]; exists {
			continue
		}
		cm.index[col] = i
		cm.headers[col] = text
	}

	var missing []Column
	for _, col := range RequiredColumns {
		if _, ok := cm.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return cm, missing
}

// cell returns the trimmed value of a column, or "" when the column is
// absent or the row is short
func (cm columnMap) cell(row []string, col Column) string {
	idx, ok := cm.index[col]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
