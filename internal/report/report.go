// Package report lays summary rows out for presentation and writes them as an xlsx workbook.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the only sheet of the exported workbook.
	SheetName = "统计结果"
	// FileName is the download name of the exported workbook.
	FileName = "签约服务推荐股票交易统计结果.xlsx"
	// ContentType is the media type of the exported workbook.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	dateLayout = "2006-01-02"
	dateNumFmt = "yyyy-mm-dd"
	colWidth   = 18
)

// Columns are the presentation labels, in output order.
var Columns = []string{
	"日期",
	"团队名称",
	"买入客户数",
	"总成交金额（万）",
	"总佣金收入（元）",
	"其中签约客户数",
	"其中签约成交金额（万）",
	"签约佣金收入（元）",
	"签约客户佣金占比",
	"双融账户买入户数",
	"双融账户买入金额（万）",
	"双融账户佣金收入（元）",
}

// Values returns the cells of one row in Columns order. The date stays a
// time.Time so the sheet stores it as a real date.
func Values(r models.SummaryRow) []any {
	return []any{
		r.Date,
		string(r.Team),
		r.BuyClients,
		r.TotalAmount.InexactFloat64(),
		r.TotalFee.InexactFloat64(),
		r.ContractedClients,
		r.ContractedAmount.InexactFloat64(),
		r.ContractedFee.InexactFloat64(),
		r.ContractedFeeRatio.InexactFloat64(),
		r.MarginAccounts,
		r.MarginAmount.InexactFloat64(),
		r.MarginFee.InexactFloat64(),
	}
}

// Table relabels rows into a header line followed by one line per row.
func Table(rows []models.SummaryRow) [][]any {
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}

	out := make([][]any, 0, len(rows)+1)
	out = append(out, header)
	for _, r := range rows {
		out = append(out, Values(r))
	}
	return out
}

// FormatDate renders a settlement date for the JSON preview.
func FormatDate(d time.Time) string {
	return d.Format(dateLayout)
}

// WriteWorkbook serializes rows into a single-sheet xlsx workbook.
// An empty rows slice still yields a workbook with the header line.
func WriteWorkbook(rows []models.SummaryRow) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for i, line := range Table(rows) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("cell name for line %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &line); err != nil {
			return nil, fmt.Errorf("write line %d: %w", i+1, err)
		}
	}

	if len(rows) > 0 {
		numFmt := dateNumFmt
		dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
		if err != nil {
			return nil, fmt.Errorf("date style: %w", err)
		}
		last := fmt.Sprintf("A%d", len(rows)+1)
		if err := f.SetCellStyle(SheetName, "A2", last, dateStyle); err != nil {
			return nil, fmt.Errorf("apply date style: %w", err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(Columns))
	if err != nil {
		return nil, fmt.Errorf("column name: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, colWidth); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
