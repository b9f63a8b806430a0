package ingestion

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/guttosm/signstats/internal/stats"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var (
	// ErrMissingColumns is returned when the header row lacks required columns.
	ErrMissingColumns = errors.New("missing required columns")
	// ErrUnsupportedFormat is returned for content that is neither xlsx nor csv.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrUnreadable is returned when the content looks right but cannot be decoded.
	ErrUnreadable = errors.New("unreadable file")
	// ErrInvalidDate is returned for a settlement date that is present but not a date.
	ErrInvalidDate = errors.New("invalid settlement date")
)

// Format is the container format of an uploaded table.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimeZIP  = "application/zip"
	mimeText = "text/plain"
)

// DetectFormat sniffs the content to decide how it must be read.
// The file name is not trusted; only the magic bytes are.
func DetectFormat(data []byte) (Format, error) {
	mt := mimetype.Detect(data)
	for m := mt; m != nil; m = m.Parent() {
		switch {
		case m.Is(mimeXLSX), m.Is(mimeZIP):
			return FormatXLSX, nil
		case m.Is(mimeText):
			return FormatCSV, nil
		}
	}
	return "", fmt.Errorf("%w: detected %s", ErrUnsupportedFormat, mt.String())
}

// Parse reads a whole xlsx or csv table and converts it into trade records.
//
// It fails on:
//   - content that is neither xlsx nor csv
//   - a header row missing any of RequiredHeaders (all missing names are reported)
//   - a buy row whose settlement date is present but cannot be read as a date
//
// It tolerates:
//   - extra columns, in any order
//   - malformed amounts/fees (they become null)
//   - null cells anywhere
//   - unreadable dates on non-buy rows (they keep a zero SettlementDate)
func Parse(ctx context.Context, r io.Reader) ([]models.TradeRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	format, err := DetectFormat(data)
	if err != nil {
		return nil, err
	}

	var rows [][]string
	switch format {
	case FormatXLSX:
		rows, err = readWorkbook(data)
	default:
		rows, err = readCSV(data)
	}
	if err != nil {
		return nil, err
	}

	return rowsToRecords(ctx, rows)
}

// readWorkbook returns the raw cell values of the first sheet. Raw values keep
// numbers and date serials free of display formatting.
func readWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", ErrUnreadable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnreadable)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", ErrUnreadable, sheets[0], err)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // short rows are padded with nulls below

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return rows, nil
}

func rowsToRecords(ctx context.Context, rows [][]string) ([]models.TradeRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(RequiredHeaders, ", "))
	}

	idx, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]models.TradeRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lineNumber := i + 2 // 1-based, header is line 1
		rec, err := rowToRecord(row, idx)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		rec.Row = lineNumber
		records = append(records, rec)
	}
	return records, nil
}

// indexHeader maps each required header to its column. The first occurrence of
// a duplicated header wins.
func indexHeader(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	idx := make(map[string]int, len(RequiredHeaders))
	var missing []string
	for _, name := range RequiredHeaders {
		i, ok := pos[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[name] = i
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return idx, nil
}

func rowToRecord(row []string, idx map[string]int) (models.TradeRecord, error) {
	cell := func(name string) string {
		i := idx[name]
		if i >= len(row) || isNull(row[i]) {
			return ""
		}
		return row[i]
	}

	var t models.TradeRecord
	t.Amount = parseNumber(cell(ColAmount))
	t.Fee = parseNumber(cell(ColFee))
	t.ContractMarker = cell(ColContract)
	t.MarginMarker = cell(ColMargin)
	t.Department = cell(ColDepartment)
	t.Direction = cell(ColDirection)
	t.ClientID = cell(ColClientID)

	// Only buy rows are summarized, so only their dates must be readable.
	d, err := parseDate(cell(ColSettlementDate))
	if err != nil && t.Direction == stats.BuyDirection {
		return t, err
	}
	t.SettlementDate = d
	return t, nil
}

// parseNumber coerces a cell into a decimal; anything unparseable is null.
func parseNumber(s string) decimal.NullDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006.01.02",
	"2006年1月2日",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	time.RFC3339,
}

// parseDate reads a settlement date given as an Excel serial, a yyyymmdd
// number or one of dateLayouts. The result carries no time-of-day and is in UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if len(s) == 8 && isDigits(s) {
		if d, err := time.Parse("20060102", s); err == nil {
			return d, nil
		}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		d, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w %q: %v", ErrInvalidDate, s, err)
		}
		return dateOnly(d), nil
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return dateOnly(d), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
