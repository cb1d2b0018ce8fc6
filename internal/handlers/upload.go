package handlers

import (
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/metrics"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/sheet"
)

// maxUploadBytes bounds a single multipart upload.
const maxUploadBytes = 16 << 20

// UploadHandler processes user-uploaded spreadsheets.
type UploadHandler struct {
	analyzer *Analyzer
	store    Store
	maxRows  int
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(analyzer *Analyzer, store Store, maxRows int) *UploadHandler {
	return &UploadHandler{analyzer: analyzer, store: store, maxRows: maxRows}
}

// Upload accepts a spreadsheet in the "file" multipart field and returns
// the full analysis payload.
func (h *UploadHandler) Upload(c fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "missing file field")
	}
	if fh.Size > maxUploadBytes {
		return jsonError(c, fiber.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "cannot read upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "cannot read upload")
	}

	t, err := sheet.Read(fh.Filename, data, sheet.Options{MaxRows: h.maxRows})
	if err != nil {
		metrics.RecordUpload(models.SourceUpload, "error")
		return jsonError(c, fiber.StatusUnprocessableEntity, "cannot parse spreadsheet: "+err.Error())
	}

	start := time.Now()
	result := h.analyzer.Analyze(c.Context(), t)
	elapsed := time.Since(start)

	metrics.RecordUpload(models.SourceUpload, "ok")
	metrics.RecordAnalysisDuration(models.SourceUpload, elapsed)
	recordRun(c, h.store, fh.Filename, models.SourceUpload, t.RowCount(), elapsed)

	return jsonSuccess(c, result)
}

// recordRun writes the audit entry. Failures are logged, never surfaced;
// the analysis already succeeded.
func recordRun(c fiber.Ctx, store Store, filename, source string, rows int, elapsed time.Duration) {
	if store == nil {
		return
	}
	run := &models.UploadRun{
		Filename:   filename,
		Source:     source,
		RowCount:   rows,
		DurationMS: elapsed.Milliseconds(),
	}
	if user := currentUserID(c); user != nil {
		run.CreatedBy = &user.ID
	}
	if err := store.InsertUploadRun(c.Context(), run); err != nil {
		slog.Error("failed to record upload run", "filename", filename, "source", source, "error", err)
	}
}
