package analysis

import "github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"

// Params tune the aggregation pass. Zero fields fall back to defaults.
type Params struct {
	TopN        int // full distribution cap
	SummaryTopN int // summary cap before the Others bucket
	PreviewRows int // raw-data preview rows
	Creative    CreativeParams
}

// DefaultParams are the dashboard defaults.
var DefaultParams = Params{TopN: 15, SummaryTopN: 6, PreviewRows: 100}

func (p Params) withDefaults() Params {
	d := DefaultParams
	if p.TopN > 0 {
		d.TopN = p.TopN
	}
	if p.SummaryTopN > 0 {
		d.SummaryTopN = p.SummaryTopN
	}
	if p.PreviewRows > 0 {
		d.PreviewRows = p.PreviewRows
	}
	d.Creative = p.Creative
	return d
}

// AggregateResult is the aggregator's share of the analysis payload.
type AggregateResult struct {
	KPIs          models.KPIs
	Temporal      []models.TemporalPoint
	Trend         *models.MonthlyTrend
	StatusDist    []models.DistEntry
	StatusSummary []models.DistEntry
	SourceDist    []models.DistEntry
	SourceSummary []models.DistEntry
	OwnerDist     []models.DistEntry
	OwnerSummary  []models.DistEntry
	Creatives     *models.CreativeAnalysis
	Preview       []map[string]any
}

// distributions builds the display distribution (capped at TopN) and the
// summary view (capped at SummaryTopN with an Others bucket) from one
// column. The summary folds everything beyond the cutoff, not just what
// the display cap kept.
func distributions(values []string, p Params) (display, summary []models.DistEntry) {
	full := Distribution(values, 0)
	summary = Summarize(full, p.SummaryTopN)
	display = full
	if len(display) > p.TopN {
		display = display[:p.TopN]
	}
	return display, summary
}
