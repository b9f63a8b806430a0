package dto

import (
	"time"

	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/guttosm/signstats/internal/report"
)

// SummaryRow is the JSON shape of one preview line.
type SummaryRow struct {
	Date               string  `json:"date" example:"2025-06-06"`
	Team               string  `json:"team" example:"投顾团队"`
	BuyClients         int     `json:"buy_clients" example:"2"`
	TotalAmount        float64 `json:"total_amount" example:"3.00"`
	TotalFee           float64 `json:"total_fee" example:"30.00"`
	ContractedClients  int     `json:"contracted_clients" example:"1"`
	ContractedAmount   float64 `json:"contracted_amount" example:"1.00"`
	ContractedFee      float64 `json:"contracted_fee" example:"10.00"`
	ContractedFeeRatio float64 `json:"contracted_fee_ratio" example:"0.33"`
	MarginAccounts     int     `json:"margin_accounts" example:"1"`
	MarginAmount       float64 `json:"margin_amount" example:"2.00"`
	MarginFee          float64 `json:"margin_fee" example:"20.00"`
}

// SummaryResponse is returned by POST /api/v1/summaries.
//
// Columns carries the presentation labels in the order of the exported sheet,
// so a client can render the preview exactly like the workbook.
type SummaryResponse struct {
	ReportID    string       `json:"report_id" example:"6f1c7a8e-3b5d-4c1e-9a55-0d2b1f3e4a77"`
	FileName    string       `json:"file_name" example:"签约服务推荐股票交易统计结果.xlsx"`
	DownloadURL string       `json:"download_url" example:"/api/v1/summaries/6f1c7a8e-3b5d-4c1e-9a55-0d2b1f3e4a77/download"`
	GeneratedAt time.Time    `json:"generated_at"`
	RowsRead    int          `json:"rows_read" example:"1200"`
	BuyRows     int          `json:"buy_rows" example:"640"`
	Columns     []string     `json:"columns"`
	Rows        []SummaryRow `json:"rows"`
}

// NewSummaryResponse maps a report into its preview DTO.
func NewSummaryResponse(rep *models.Report, downloadURL string) SummaryResponse {
	rows := make([]SummaryRow, 0, len(rep.Rows))
	for _, r := range rep.Rows {
		rows = append(rows, SummaryRow{
			Date:               report.FormatDate(r.Date),
			Team:               string(r.Team),
			BuyClients:         r.BuyClients,
			TotalAmount:        r.TotalAmount.InexactFloat64(),
			TotalFee:           r.TotalFee.InexactFloat64(),
			ContractedClients:  r.ContractedClients,
			ContractedAmount:   r.ContractedAmount.InexactFloat64(),
			ContractedFee:      r.ContractedFee.InexactFloat64(),
			ContractedFeeRatio: r.ContractedFeeRatio.InexactFloat64(),
			MarginAccounts:     r.MarginAccounts,
			MarginAmount:       r.MarginAmount.InexactFloat64(),
			MarginFee:          r.MarginFee.InexactFloat64(),
		})
	}
	return SummaryResponse{
		ReportID:    rep.ID,
		FileName:    report.FileName,
		DownloadURL: downloadURL,
		GeneratedAt: rep.GeneratedAt,
		RowsRead:    rep.Stats.RowsRead,
		BuyRows:     rep.Stats.BuyRows,
		Columns:     report.Columns,
		Rows:        rows,
	}
}
