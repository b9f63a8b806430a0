package ingestion

// Column headers of the trade-detail export.
const (
	ColAmount         = "成交金额"
	ColFee            = "手续费"
	ColContract       = "是否签约"
	ColMargin         = "双融账户"
	ColDepartment     = "部门"
	ColDirection      = "买卖方向"
	ColClientID       = "客户代码"
	ColSettlementDate = "交收日期"
)

// RequiredHeaders lists every column a file must carry, in the order they are
// reported when missing. Their position in the file does not matter.
var RequiredHeaders = []string{
	ColAmount,
	ColFee,
	ColContract,
	ColMargin,
	ColDepartment,
	ColDirection,
	ColClientID,
	ColSettlementDate,
}

// nullValues are cell texts read as "no value", as spreadsheet tools export them.
// Matching is exact.
var nullValues = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func isNull(s string) bool {
	_, ok := nullValues[s]
	return ok
}
