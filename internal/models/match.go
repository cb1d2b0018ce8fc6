package models

// Match tiers, in cascade order. The tier names are part of the API
// payload, so renaming one is a breaking change.
const (
	TierEmail       = "email"
	TierPhone       = "phone"
	TierNameExact   = "name_exact"
	TierNameCompact = "name_compact"
	TierNameTokens  = "name_tokens"
	TierNamePartial = "name_partial"
	TierNone        = "none"
)

// MatchResult records how one spreadsheet row resolved against the CRM.
type MatchResult struct {
	Row         int    `json:"row"`
	ContactID   *int   `json:"contact_id"`
	MatchSource string `json:"match_source"` // tier constant above
	SheetStatus string `json:"sheet_status"` // raw spreadsheet status text
	StatusKey   string `json:"status_key"`   // resolved CRM category
	Divergent   bool   `json:"divergent"`
}

// ReconciliationSummary aggregates the match results of one run.
type ReconciliationSummary struct {
	TotalRows       int            `json:"total_rows"`
	TotalContacts   int            `json:"total_contacts"`
	Matched         int            `json:"matched"`
	UnmatchedSheet  int            `json:"unmatched_planilha"`
	UnmatchedCRM    int            `json:"unmatched_sults"`
	Divergences     int            `json:"divergences"`
	StatusHistogram map[string]int `json:"status_histogram"`
	Sampled         bool           `json:"sampled"`
	SampleSize      int            `json:"sample_size,omitempty"`
}

// Reconciliation is the engine's outward result. Available is false when
// reconciliation was skipped or matched nothing; Reason says why and, for
// the zero-match case, Summary is still attached for diagnostics.
type Reconciliation struct {
	Available bool                   `json:"available"`
	Reason    string                 `json:"reason,omitempty"`
	Summary   *ReconciliationSummary `json:"summary,omitempty"`
	Matches   []MatchResult          `json:"matches,omitempty"`
}
