package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/guttosm/signstats/internal/ingestion"
	"github.com/guttosm/signstats/internal/logger"
	"github.com/guttosm/signstats/internal/metrics"
	"github.com/guttosm/signstats/internal/report"
	"github.com/guttosm/signstats/internal/stats"
	"github.com/guttosm/signstats/internal/trace"
)

// SummaryService turns an uploaded trade export into a buy summary and its workbook.
// Each call is independent; implementations hold no per-run state.
type SummaryService interface {
	Summarize(ctx context.Context, r io.Reader, sourceName string) (*models.Report, error)
	Export(ctx context.Context, rep *models.Report) (*bytes.Buffer, error)
}

type summaryService struct {
	parse func(context.Context, io.Reader) ([]models.TradeRecord, error)
	now   func() time.Time
	newID func() string
}

// NewSummaryService returns the default SummaryService.
func NewSummaryService() SummaryService {
	return &summaryService{
		parse: ingestion.Parse,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Summarize parses the table in r and runs the summary pipeline over it.
// Any parse failure aborts the run; no partial summary is returned.
func (s *summaryService) Summarize(ctx context.Context, r io.Reader, sourceName string) (*models.Report, error) {
	start := time.Now()
	defer func() { metrics.SummaryDuration.Observe(time.Since(start).Seconds()) }()

	pctx, span := trace.StartSpan(ctx, "summary.parse", attribute.String("source", sourceName))
	records, err := s.parse(pctx, r)
	span.End()
	if err != nil {
		metrics.SummariesTotal.WithLabelValues(outcomeOf(err)).Inc()
		logger.FromContext(ctx).Warn().Str("source", sourceName).Err(err).Msg("summary input rejected")
		return nil, fmt.Errorf("parse %s: %w", sourceName, err)
	}

	_, span = trace.StartSpan(ctx, "summary.aggregate", attribute.Int("rows", len(records)))
	rows, st := stats.Run(records)
	span.End()

	metrics.ObserveRun(st)
	metrics.SummariesTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	logger.FromContext(ctx).Info().
		Str("source", sourceName).
		Int("rows_read", st.RowsRead).
		Int("buy_rows", st.BuyRows).
		Int("rows_no_date", st.RowsNoDate).
		Int("dates", st.Dates).
		Int("observed_pairs", st.ObservedPairs).
		Dur("elapsed", time.Since(start)).
		Msg("summary done")

	return &models.Report{
		ID:          s.newID(),
		SourceName:  sourceName,
		GeneratedAt: s.now().UTC(),
		Rows:        rows,
		Stats:       st,
	}, nil
}

// Export renders the report as an xlsx workbook.
func (s *summaryService) Export(ctx context.Context, rep *models.Report) (*bytes.Buffer, error) {
	if rep == nil {
		return nil, errors.New("nil report")
	}
	_, span := trace.StartSpan(ctx, "summary.export", attribute.Int("rows", len(rep.Rows)))
	defer span.End()

	buf, err := report.WriteWorkbook(rep.Rows)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", rep.ID, err)
	}
	return buf, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ingestion.ErrMissingColumns):
		return metrics.OutcomeMissingColumns
	case errors.Is(err, ingestion.ErrUnsupportedFormat),
		errors.Is(err, ingestion.ErrUnreadable),
		errors.Is(err, ingestion.ErrInvalidDate):
		return metrics.OutcomeInvalidInput
	default:
		return metrics.OutcomeError
	}
}
