package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/analysis"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/cache"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/config"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/metrics"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/sheet"
)

// Downloader fetches a spreadsheet by Drive file ID. *drive.Client
// satisfies it.
type Downloader interface {
	Download(ctx context.Context, fileID string) (name string, data []byte, err error)
}

// DriveHandler analyzes spreadsheets fetched straight from Google Drive.
type DriveHandler struct {
	analyzer   *Analyzer
	store      Store
	downloader Downloader
	files      cache.Cache // nil disables download caching
	cfg        *config.Config
	sources    *config.SourcesConfig
}

// NewDriveHandler creates a new Drive handler. files and sources may be nil.
func NewDriveHandler(analyzer *Analyzer, store Store, d Downloader, files cache.Cache, cfg *config.Config, sources *config.SourcesConfig) *DriveHandler {
	return &DriveHandler{analyzer: analyzer, store: store, downloader: d, files: files, cfg: cfg, sources: sources}
}

// AutoUpload analyzes the configured lead spreadsheet without an upload.
func (h *DriveHandler) AutoUpload(c fiber.Ctx) error {
	fileID, preferredSheet := h.resolve("leads", h.cfg.DriveFileID, "")
	return h.analyzeDrive(c, models.SourceDrive, fileID, preferredSheet, false)
}

// GoogleAds analyzes the Google Ads control spreadsheet. Ads exports tag
// rows LEAD/MQL instead of carrying count columns, so the table is
// prepared before analysis.
func (h *DriveHandler) GoogleAds(c fiber.Ctx) error {
	fileID, preferredSheet := h.resolve("google_ads", h.cfg.GoogleAdsFileID, h.cfg.GoogleAdsSheet)
	return h.analyzeDrive(c, models.SourceGoogleAds, fileID, preferredSheet, true)
}

func (h *DriveHandler) resolve(sourceName, fallbackID, fallbackSheet string) (string, string) {
	if src, ok := h.sources.Lookup(sourceName); ok {
		sheetName := src.Sheet
		if sheetName == "" {
			sheetName = fallbackSheet
		}
		return src.FileID, sheetName
	}
	return fallbackID, fallbackSheet
}

func (h *DriveHandler) analyzeDrive(c fiber.Ctx, source, fileID, preferredSheet string, adsPrep bool) error {
	if h.downloader == nil {
		return jsonError(c, fiber.StatusServiceUnavailable, "google drive integration not configured")
	}
	if fileID == "" {
		return jsonError(c, fiber.StatusNotFound, "no drive spreadsheet configured")
	}

	name, data, err := h.download(c.Context(), fileID)
	if err != nil {
		metrics.RecordUpload(source, "error")
		return jsonError(c, fiber.StatusBadGateway, "drive download failed: "+err.Error())
	}

	t, err := sheet.Read(name, data, sheet.Options{Sheet: preferredSheet, MaxRows: h.cfg.MaxRows})
	if err != nil {
		metrics.RecordUpload(source, "error")
		return jsonError(c, fiber.StatusUnprocessableEntity, "cannot parse spreadsheet: "+err.Error())
	}

	if adsPrep {
		analysis.DeriveQualificationCounts(t)
		analysis.FillTermColumn(t)
	}

	start := time.Now()
	result := h.analyzer.Analyze(c.Context(), t)
	elapsed := time.Since(start)

	metrics.RecordUpload(source, "ok")
	metrics.RecordAnalysisDuration(source, elapsed)
	recordRun(c, h.store, name, source, t.RowCount(), elapsed)

	return jsonSuccess(c, result)
}

type driveFile struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

// download fetches the spreadsheet, serving the cached copy when one is
// still fresh so repeated dashboard loads do not hammer the Drive API.
func (h *DriveHandler) download(ctx context.Context, fileID string) (string, []byte, error) {
	key := "drive:" + fileID
	if h.files != nil {
		if raw, err := h.files.Get(key); err == nil && len(raw) > 0 {
			var f driveFile
			if err := json.Unmarshal(raw, &f); err == nil {
				return f.Name, f.Data, nil
			}
		}
	}

	name, data, err := h.downloader.Download(ctx, fileID)
	if err != nil {
		return "", nil, err
	}

	if h.files != nil {
		if raw, err := json.Marshal(driveFile{Name: name, Data: data}); err == nil {
			if err := h.files.Set(key, raw, h.cfg.DriveCacheTTL); err != nil {
				slog.Warn("failed to cache drive download", "file_id", fileID, "error", err)
			}
		}
	}
	return name, data, nil
}
