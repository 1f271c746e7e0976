package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "hotelcomp/internal/errors"
	"hotelcomp/pkg/contracts/domain"
)

// Format is a supported dataset file format
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// headerSearchRows bounds how far down a sheet the header row may sit
const headerSearchRows = 10

// DropReason explains why an input row was excluded from the dataset
type DropReason string

const (
	DropMissingLocation    DropReason = "missing_location"
	DropInvalidRooms       DropReason = "invalid_rooms"
	DropInvalidMarketValue DropReason = "invalid_market_value"
	DropInvalidVPR         DropReason = "invalid_vpr"
	DropUnknownClass       DropReason = "unknown_class"
)

// LoadReport describes how a file was normalized
type LoadReport struct {
	Source    string             `json:"source"`
	Format    Format             `json:"format"`
	Sheet     string             `json:"sheet,omitempty"`
	HeaderRow int                `json:"header_row"`
	Columns   map[Column]string  `json:"columns"`
	TotalRows int                `json:"total_rows"`
	Loaded    int                `json:"loaded"`
	Dropped   map[DropReason]int `json:"dropped"`
}

// DroppedTotal returns the number of rows excluded for any reason
func (r LoadReport) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// Dataset is a normalized set of property records with its load report
type Dataset struct {
	Records []domain.PropertyRecord `json:"records"`
	Report  LoadReport              `json:"report"`
}

// LoadOptions controls how a file is read
type LoadOptions struct {
	// Sheet names the worksheet to read; the first sheet is used when empty
	Sheet string
}

// Loader reads property datasets from spreadsheets
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a dataset loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger.With(slog.String("component", "dataprocessing"))}
}

// FormatFromName infers the dataset format from a file name extension
func FormatFromName(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", apperrors.NewParsingError(
		fmt.Sprintf("unsupported file type %q, expected .xlsx or .csv", filepath.Ext(name)), nil).
		WithContext("file", name)
}

// LoadFile reads and normalizes a dataset file from disk
func (l *Loader) LoadFile(path string, opts LoadOptions) (*Dataset, error) {
	format, err := FormatFromName(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open dataset", err).WithContext("file", path)
	}
	defer f.Close()

	ds, err := l.Load(f, filepath.Base(path), format, opts)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Load reads and normalizes a dataset from r
func (l *Loader) Load(r io.Reader, source string, format Format, opts LoadOptions) (*Dataset, error) {
	var (
		rows  [][]string
		sheet string
		err   error
	)

	switch format {
	case FormatXLSX:
		rows, sheet, err = readWorkbook(r, opts.Sheet)
	case FormatCSV:
		rows, err = readCSV(r)
	default:
		err = apperrors.NewParsingError(fmt.Sprintf("unsupported format %q", format), nil)
	}
	if err != nil {
		return nil, err
	}

	records, report, err := NormalizeRows(rows)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok {
			appErr.WithContext("source", source)
		}
		return nil, err
	}
	report.Source = source
	report.Format = format
	report.Sheet = sheet

	l.logger.Info("dataset loaded",
		slog.String("source", source),
		slog.String("format", string(format)),
		slog.String("sheet", sheet),
		slog.Int("header_row", report.HeaderRow),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("loaded", report.Loaded),
		slog.Int("dropped", report.DroppedTotal()),
	)
	for reason, n := range report.Dropped {
		l.logger.Debug("rows dropped",
			slog.String("reason", string(reason)),
			slog.Int("count", n),
		)
	}

	return &Dataset{Records: records, Report: report}, nil
}

// readWorkbook returns the raw rows of a worksheet. Cell values are read
// unformatted so that currency-styled numbers parse cleanly.
func readWorkbook(r io.Reader, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", apperrors.NewParsingError("workbook has no sheets", nil)
	}

	if sheet == "" {
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, "", apperrors.NewParsingError(fmt.Sprintf("sheet %q not found", sheet), nil).
			WithContext("sheets", sheets)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", apperrors.NewParsingError("failed to read rows", err).WithContext("sheet", sheet)
	}
	return rows, sheet, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read csv", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse csv", err)
	}
	return rows, nil
}

// NormalizeRows turns raw spreadsheet rows into validated property records.
//
// The header row is the first of the leading rows that names every required
// column. Rows after it are coerced and kept in order; rows that cannot be
// coerced are dropped and counted by reason. Blank rows are skipped without
// being counted.
func NormalizeRows(rows [][]string) ([]domain.PropertyRecord, LoadReport, error) {
	report := LoadReport{
		HeaderRow: -1,
		Dropped:   make(map[DropReason]int),
	}

	var (
		cm          columnMap
		bestMissing []Column
	)
	limit := len(rows)
	if limit > headerSearchRows {
		limit = headerSearchRows
	}
	for i := 0; i < limit; i++ {
		candidate, missing := mapHeaderRow(rows[i])
		if len(missing) == 0 {
			cm = candidate
			report.HeaderRow = i
			break
		}
		if bestMissing == nil || len(missing) < len(bestMissing) {
			bestMissing = missing
		}
	}

	if report.HeaderRow < 0 {
		if bestMissing == nil {
			bestMissing = RequiredColumns
		}
		names := make([]string, len(bestMissing))
		for i, c := range bestMissing {
			names[i] = string(c)
		}
		return nil, report, apperrors.NewParsingError("could not find header row", nil).
			WithContext("missing_columns", names)
	}
	report.Columns = cm.headers

	records := make([]domain.PropertyRecord, 0, len(rows)-report.HeaderRow-1)
	for _, row := range rows[report.HeaderRow+1:] {
		if isBlankRow(row) {
			continue
		}
		report.TotalRows++

		rec, reason, ok := normalizeRow(cm, row)
		if !ok {
			report.Dropped[reason]++
			continue
		}
		records = append(records, rec)
	}
	report.Loaded = len(records)

	return records, report, nil
}

func normalizeRow(cm columnMap, row []string) (domain.PropertyRecord, DropReason, bool) {
	rec := domain.PropertyRecord{
		Address:     cm.cell(row, ColumnAddress),
		State:       cm.cell(row, ColumnState),
		County:      cm.cell(row, ColumnCounty),
		ProjectName: cm.cell(row, ColumnProjectName),
		OwnerName:   cm.cell(row, ColumnOwnerName),
		ClassLabel:  cm.cell(row, ColumnHotelClass),
	}
	if rec.Address == "" || rec.State == "" || rec.County == "" {
		return rec, DropMissingLocation, false
	}

	rooms, err := ParseNumber(cm.cell(row, ColumnRooms))
	if err != nil || rooms <= 0 || rooms != math.Trunc(rooms) || rooms > math.MaxInt32 {
		return rec, DropInvalidRooms, false
	}
	rec.Rooms = int(rooms)

	mv, err := ParseNumber(cm.cell(row, ColumnMarketValue))
	if err != nil || mv < 0 {
		return rec, DropInvalidMarketValue, false
	}
	rec.MarketValue = mv

	vpr, err := ParseNumber(cm.cell(row, ColumnVPR))
	if err != nil || vpr < 0 {
		return rec, DropInvalidVPR, false
	}
	rec.VPR = vpr

	class, ok := domain.ParseHotelClass(rec.ClassLabel)
	if !ok {
		return rec, DropUnknownClass, false
	}
	rec.Class = class

	return rec, "", true
}

// ParseNumber parses a spreadsheet number, accepting currency symbols and
// thousands separators. Empty, NaN and infinite values are rejected.
func ParseNumber(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("parse %q: not a finite number", s)
	}
	return v, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// SortedDropReasons returns the report's drop reasons in a stable order
func (r LoadReport) SortedDropReasons() []DropReason {
	reasons := make([]DropReason, 0, len(r.Dropped))
	for reason := range r.Dropped {
		reasons = append(reasons, reason)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
