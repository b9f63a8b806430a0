package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/signstats/internal/domain/dto"
	"github.com/guttosm/signstats/internal/domain/models"
	"github.com/guttosm/signstats/internal/ingestion"
	"github.com/guttosm/signstats/internal/middleware"
	"github.com/guttosm/signstats/internal/report"
	"github.com/guttosm/signstats/internal/service"
	"github.com/guttosm/signstats/internal/store"
)

// uploadField is the multipart form field carrying the trade export.
const uploadField = "file"

// Handler provides HTTP handlers for the summary endpoints.
//
// Responsibilities:
//   - Accept the uploaded trade export and hand it to the service layer
//   - Keep the rendered workbook in the report store for a later download
//   - Translate service results and errors into response DTOs and status codes
type Handler struct {
	svc   service.SummaryService
	store store.ReportStore
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.SummaryService): Runs the summary pipeline.
//   - st (store.ReportStore): Holds workbooks between preview and download.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.SummaryService, st store.ReportStore) *Handler {
	return &Handler{svc: svc, store: st}
}

// CreateSummary handles POST /api/v1/summaries.
//
// Responses:
//   - 200 OK: SummaryResponse with the preview rows and a download link.
//   - 400 Bad Request: No file, or a file that cannot be read.
//   - 413 Request Entity Too Large: Upload exceeds MAX_UPLOAD_MB.
//   - 415 Unsupported Media Type: Neither xlsx nor csv.
//   - 422 Unprocessable Entity: Required columns are missing.
//   - 500 Internal Server Error: Anything else.
//
// CreateSummary godoc
// @Summary      Summarize a trade export
// @Description  Classifies buy trades by team, aggregates them per settlement date and keeps the workbook for download
// @Tags         summaries
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Trade export (.xlsx or .csv)"
// @Success      200   {object}  dto.SummaryResponse  "Success"
// @Failure      400   {object}  dto.ErrorResponse    "Bad Request"
// @Failure      413   {object}  dto.ErrorResponse    "Too Large"
// @Failure      415   {object}  dto.ErrorResponse    "Unsupported Format"
// @Failure      422   {object}  dto.ErrorResponse    "Missing Columns"
// @Failure      500   {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/summaries [post]
func (h *Handler) CreateSummary(c *gin.Context) {
	rep, ok := h.summarize(c)
	if !ok {
		return
	}

	buf, err := h.svc.Export(c.Request.Context(), rep)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to render workbook", err)
		return
	}
	h.store.Put(store.Entry{Report: rep, Workbook: buf.Bytes()})

	c.JSON(http.StatusOK, dto.NewSummaryResponse(rep, downloadPath(rep.ID)))
}

// DownloadSummary handles GET /api/v1/summaries/:id/download.
//
// DownloadSummary godoc
// @Summary      Download a summary workbook
// @Description  Returns the workbook produced by a previous upload while it is still held in memory
// @Tags         summaries
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path      string  true  "Report ID"
// @Success      200  {file}    file
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Router       /api/v1/summaries/{id}/download [get]
func (h *Handler) DownloadSummary(c *gin.Context) {
	entry, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("report not found or expired", nil))
		return
	}
	sendWorkbook(c, entry.Workbook)
}

// ExportSummary handles POST /api/v1/summaries/export, returning the workbook
// in the same round trip without storing it.
//
// ExportSummary godoc
// @Summary      Summarize and download in one call
// @Tags         summaries
// @Accept       multipart/form-data
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        file  formData  file  true  "Trade export (.xlsx or .csv)"
// @Success      200   {file}    file
// @Failure      400   {object}  dto.ErrorResponse  "Bad Request"
// @Failure      413   {object}  dto.ErrorResponse  "Too Large"
// @Failure      415   {object}  dto.ErrorResponse  "Unsupported Format"
// @Failure      422   {object}  dto.ErrorResponse  "Missing Columns"
// @Failure      500   {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/summaries/export [post]
func (h *Handler) ExportSummary(c *gin.Context) {
	rep, ok := h.summarize(c)
	if !ok {
		return
	}
	buf, err := h.svc.Export(c.Request.Context(), rep)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to render workbook", err)
		return
	}
	sendWorkbook(c, buf.Bytes())
}

// summarize reads the uploaded file and runs the service. On failure the
// response has already been written and ok is false.
func (h *Handler) summarize(c *gin.Context) (*models.Report, bool) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		if isTooLarge(err) {
			middleware.AbortWithError(c, http.StatusRequestEntityTooLarge, "upload too large", err)
			return nil, false
		}
		middleware.AbortWithError(c, http.StatusBadRequest, fmt.Sprintf("multipart field %q is required", uploadField), err)
		return nil, false
	}

	f, err := fh.Open()
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "cannot open upload", err)
		return nil, false
	}
	defer f.Close()

	rep, err := h.svc.Summarize(c.Request.Context(), f, fh.Filename)
	if err != nil {
		status, msg := classify(err)
		middleware.AbortWithError(c, status, msg, err)
		return nil, false
	}
	return rep, true
}

// classify maps pipeline errors to an HTTP status and a client-facing message.
func classify(err error) (int, string) {
	switch {
	case isTooLarge(err):
		return http.StatusRequestEntityTooLarge, "upload too large"
	case errors.Is(err, ingestion.ErrMissingColumns):
		return http.StatusUnprocessableEntity, "required columns are missing"
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType, "only xlsx and csv files are supported"
	case errors.Is(err, ingestion.ErrUnreadable), errors.Is(err, ingestion.ErrInvalidDate):
		return http.StatusBadRequest, "file could not be read"
	default:
		return http.StatusInternalServerError, "failed to summarize file"
	}
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func sendWorkbook(c *gin.Context, data []byte) {
	c.Header("Content-Disposition", contentDisposition(report.FileName))
	c.Data(http.StatusOK, report.ContentType, data)
}

// contentDisposition builds an attachment header with an ASCII fallback and
// the UTF-8 name in RFC 5987 form.
func contentDisposition(name string) string {
	return fmt.Sprintf(`attachment; filename="summary.xlsx"; filename*=UTF-8''%s`, url.PathEscape(name))
}

func downloadPath(id string) string {
	return "/api/v1/summaries/" + id + "/download"
}
