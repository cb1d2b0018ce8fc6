package models

import (
	"time"

	"github.com/google/uuid"
)

// Upload sources.
const (
	SourceUpload    = "upload"
	SourceDrive     = "drive"
	SourceGoogleAds = "google_ads"
)

// UploadRun is one audit-log entry for a processed spreadsheet. It records
// what was analyzed and when, never the reconciliation outcome.
type UploadRun struct {
	ID         uuid.UUID  `json:"id"`
	Filename   string     `json:"filename"`
	Source     string     `json:"source"` // upload, drive, google_ads
	RowCount   int        `json:"row_count"`
	DurationMS int64      `json:"duration_ms"`
	CreatedBy  *uuid.UUID `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
}
