package models

// KPIs is the headline number block for one spreadsheet.
type KPIs struct {
	TotalLeads      int     `json:"total_leads"`
	TotalMQLs       int     `json:"total_mqls"`
	TotalInvestment float64 `json:"investimento_total"`
	CostPerMQL      float64 `json:"custo_por_mql"`
}

// DistEntry is one label of a top-N distribution. The synthetic "Others"
// entry collapses everything past the summary cutoff.
type DistEntry struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// MonthCount is one point of the monthly series, keyed "YYYY-MM".
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// MonthlyTrend compares the two most recent months of the series.
type MonthlyTrend struct {
	Series        []MonthCount `json:"series"`
	CurrentMonth  int          `json:"current_month"`
	PreviousMonth int          `json:"previous_month"`
	GrowthRate    float64      `json:"growth_rate"`
}

// TemporalPoint counts distinct creatives active on one day.
type TemporalPoint struct {
	Date      string `json:"data"`
	Creatives int    `json:"criativos"`
}

// Performance tags for creative rollups.
const (
	PerformanceExcellent = "Excellent"
	PerformanceGood      = "Good"
	PerformanceBad       = "Bad"
)

// CreativeStats is the per-creative rollup row.
type CreativeStats struct {
	Name               string  `json:"name"`
	Leads              int     `json:"leads"`
	Appearances        int     `json:"appearances"`
	MQLs               int     `json:"mqls"`
	Investment         float64 `json:"investimento"`
	LeadsPerAppearance float64 `json:"leads_per_appearance"`
	MQLsPerAppearance  float64 `json:"mqls_per_appearance"`
	ConversionRate     float64 `json:"conversion_rate"`
	CPL                float64 `json:"cpl"`
	CPMQL              float64 `json:"cpmql"`
	Performance        string  `json:"performance_status"`
}

// CreativeAnalysis bundles the rollup with its headline cards.
type CreativeAnalysis struct {
	TopCreatives        map[string]int  `json:"top_creatives"`
	Details             []CreativeStats `json:"creative_details"`
	TopLeadCreative     *CreativeStats  `json:"top_lead_creative"`
	TopMQLCreative      *CreativeStats  `json:"top_mql_creative"`
	TotalCreatives      int             `json:"total_creatives"`
	AvgLeadsPerCreative float64         `json:"avg_leads_per_creative"`
	AvgMQLsPerCreative  float64         `json:"avg_mqls_per_creative"`
}

// AnalysisResult is the full payload returned to the presentation layer.
type AnalysisResult struct {
	Columns        []string          `json:"columns"`
	TotalRows      int               `json:"total_rows"`
	Roles          map[string]string `json:"roles"`
	KPIs           KPIs              `json:"kpis"`
	Temporal       []TemporalPoint   `json:"temporal"`
	Trend          *MonthlyTrend     `json:"trend,omitempty"`
	StatusDist     []DistEntry       `json:"status_distribution,omitempty"`
	SourceDist     []DistEntry       `json:"source_distribution,omitempty"`
	OwnerDist      []DistEntry       `json:"owner_distribution,omitempty"`
	StatusSummary  []DistEntry       `json:"status_summary,omitempty"`
	SourceSummary  []DistEntry       `json:"source_summary,omitempty"`
	OwnerSummary   []DistEntry       `json:"owner_summary,omitempty"`
	Creatives      *CreativeAnalysis `json:"creative_analysis,omitempty"`
	Reconciliation *Reconciliation   `json:"reconciliation,omitempty"`
	RawData        []map[string]any  `json:"raw_data,omitempty"`
}
