package dataprocessing

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "hotelcomp/internal/errors"
	"hotelcomp/pkg/contracts/domain"
)

var canonicalHeader = []string{
	HeaderAddress, HeaderState, HeaderCounty, HeaderProjectName, HeaderOwnerName,
	HeaderRooms, HeaderMarketValue, HeaderVPR, HeaderHotelClass,
}

func newTestLoader() *Loader {
	return NewLoader(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// writeWorkbook builds an xlsx file with the given rows on sheetName
func writeWorkbook(t *testing.T, sheetName string, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName(f.GetSheetName(0), sheetName))

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheetName, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "hotels.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func headerRow() []interface{} {
	out := make([]interface{}, len(canonicalHeader))
	for i, h := range canonicalHeader {
		out[i] = h
	}
	return out
}

func TestLoader_LoadFile_Workbook(t *testing.T) {
	path := writeWorkbook(t, "Hotels", [][]interface{}{
		headerRow(),
		{"1 Main St", "Texas", "Harris", "Subject Inn", "Subject LLC", 200, 5000000, 25000, "Upper Midscale"},
		{"2 Main St", "Texas", "Harris", "A Inn", "A LLC", 150, 5500000.5, 20000, "Upper Midscale"},
		{"3 Main St", "Texas", "Harris", "B Inn", "B LLC", 100, 4200000, 15000, "Upscale"},
	})

	ds, err := newTestLoader().LoadFile(path, LoadOptions{})
	require.NoError(t, err)

	require.Len(t, ds.Records, 3)
	assert.Equal(t, "Hotels", ds.Report.Sheet)
	assert.Equal(t, FormatXLSX, ds.Report.Format)
	assert.Equal(t, "hotels.xlsx", ds.Report.Source)
	assert.Equal(t, 0, ds.Report.HeaderRow)
	assert.Equal(t, 3, ds.Report.Loaded)
	assert.Zero(t, ds.Report.DroppedTotal())

	rec := ds.Records[1]
	assert.Equal(t, "2 Main St", rec.Address)
	assert.Equal(t, "A Inn", rec.ProjectName)
	assert.Equal(t, "A LLC", rec.OwnerName)
	assert.Equal(t, 150, rec.Rooms)
	assert.Equal(t, 5500000.5, rec.MarketValue)
	assert.Equal(t, 20000.0, rec.VPR)
	assert.Equal(t, domain.ClassUpperMidscale, rec.Class)
	assert.Equal(t, "Upper Midscale", rec.ClassLabel)
}

func TestLoader_LoadFile_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Data", [][]interface{}{
		headerRow(),
		{"1 Main St", "Texas", "Harris", "P", "O", 10, 1000, 10, "Midscale"},
	})

	_, err := newTestLoader().LoadFile(path, LoadOptions{Sheet: "Missing"})
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)

	ds, err := newTestLoader().LoadFile(path, LoadOptions{Sheet: "Data"})
	require.NoError(t, err)
	assert.Len(t, ds.Records, 1)
}

func TestLoader_Load_CSV(t *testing.T) {
	input := "\xef\xbb\xbf" + strings.Join(canonicalHeader, ",") + "\n" +
		`1 Main St,Texas,Harris,Subject Inn,Subject LLC,200,"$5,000,000",25000,Upper Midscale` + "\n" +
		"\n" +
		`2 Main St,Texas,Harris,A Inn,A LLC,150,5500000,"20,000",Upper Midscale` + "\n"

	ds, err := newTestLoader().Load(strings.NewReader(input), "hotels.csv", FormatCSV, LoadOptions{})
	require.NoError(t, err)

	require.Len(t, ds.Records, 2)
	assert.Equal(t, 5_000_000.0, ds.Records[0].MarketValue)
	assert.Equal(t, 20_000.0, ds.Records[1].VPR)
	assert.Equal(t, 2, ds.Report.TotalRows)
	assert.Equal(t, HeaderAddress, ds.Report.Columns[ColumnAddress])
}

func TestNormalizeRows_DropsInvalidRows(t *testing.T) {
	rows := [][]string{
		canonicalHeader,
		{"1 Main St", "Texas", "Harris", "Ok", "Ok LLC", "10", "1000", "100", "Midscale"},
		{"", "Texas", "Harris", "NoAddr", "X", "10", "1000", "100", "Midscale"},
		{"2 Main St", "Texas", "", "NoCounty", "X", "10", "1000", "100", "Midscale"},
		{"3 Main St", "Texas", "Harris", "ZeroRooms", "X", "0", "1000", "100", "Midscale"},
		{"4 Main St", "Texas", "Harris", "HalfRooms", "X", "10.5", "1000", "100", "Midscale"},
		{"5 Main St", "Texas", "Harris", "TextRooms", "X", "ten", "1000", "100", "Midscale"},
		{"6 Main St", "Texas", "Harris", "NegMV", "X", "10", "-1", "100", "Midscale"},
		{"7 Main St", "Texas", "Harris", "NoMV", "X", "10", "", "100", "Midscale"},
		{"8 Main St", "Texas", "Harris", "NaNVPR", "X", "10", "1000", "NaN", "Midscale"},
		{"9 Main St", "Texas", "Harris", "BadClass", "X", "10", "1000", "100", "Five Star"},
		{"10 Main St", "Texas", "Harris", "Short"},
	}

	records, report, err := NormalizeRows(rows)
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "Ok", records[0].ProjectName)
	assert.Equal(t, 11, report.TotalRows)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, map[DropReason]int{
		DropMissingLocation:    2,
		DropInvalidRooms:       4,
		DropInvalidMarketValue: 2,
		DropInvalidVPR:         1,
		DropUnknownClass:       1,
	}, report.Dropped)
	assert.Equal(t, 10, report.DroppedTotal())
}

func TestNormalizeRows_FlexibleHeaders(t *testing.T) {
	t.Run("title rows above header and other years", func(t *testing.T) {
		rows := [][]string{
			{"Harris County Hotel Export"},
			{},
			{" Property Address ", "State", "Property County", "Hotel Class Number", "No. of Rooms",
				"Market Value-2025", "2025 VPR", "Hotel Class", "Notes"},
			{"1 Main St", "Texas", "Harris", "4", "120", "2500000", "20833", "Upper Midscale", "n/a"},
		}

		records, report, err := NormalizeRows(rows)
		require.NoError(t, err)
		assert.Equal(t, 2, report.HeaderRow)
		require.Len(t, records, 1)
		assert.Equal(t, domain.ClassUpperMidscale, records[0].Class)
		assert.Empty(t, records[0].ProjectName)
		assert.Equal(t, "Property Address", report.Columns[ColumnAddress])
	})

	t.Run("missing required columns", func(t *testing.T) {
		rows := [][]string{
			{"Property Address", "State", "No. of Rooms"},
			{"1 Main St", "Texas", "10"},
		}

		_, _, err := NormalizeRows(rows)
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
		assert.ElementsMatch(t,
			[]string{"county", "market_value", "vpr", "hotel_class"},
			appErr.Context["missing_columns"])
	})

	t.Run("empty input", func(t *testing.T) {
		_, _, err := NormalizeRows(nil)
		assert.Error(t, err)
	})
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1000", 1000, false},
		{" 1,250.50 ", 1250.5, false},
		{"$5,000,000", 5_000_000, false},
		{"1e3", 1000, false},
		{"", 0, true},
		{"abc", 0, true},
		{"NaN", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromName(t *testing.T) {
	f, err := FormatFromName("report.XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = FormatFromName("data.csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = FormatFromName("data.xls")
	assert.Error(t, err)
}

func TestLoader_LoadFile_NotFound(t *testing.T) {
	_, err := newTestLoader().LoadFile(filepath.Join(t.TempDir(), "missing.xlsx"), LoadOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoader_Load_CorruptWorkbook(t *testing.T) {
	_, err := newTestLoader().Load(bytes.NewReader([]byte("not a zip")), "bad.xlsx", FormatXLSX, LoadOptions{})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}
