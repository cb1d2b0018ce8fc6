package handlers

import (
	"context"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/analysis"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/metrics"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/reconcile"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/schema"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/sults"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// Analyzer runs the full pipeline for one table: role detection,
// aggregation and CRM reconciliation. All spreadsheet entry points share
// one instance so they behave identically.
type Analyzer struct {
	Contacts  sults.Source // nil disables reconciliation
	Params    analysis.Params
	Reconcile reconcile.Params
}

// Analyze processes a loaded table into the full dashboard payload.
// Reconciliation failures degrade the payload, they never fail the
// request.
func (a *Analyzer) Analyze(ctx context.Context, t *table.Table) *models.AnalysisResult {
	roles := schema.Detect(t)
	agg := analysis.Aggregate(t, roles, a.Params)

	res := &models.AnalysisResult{
		Columns:       t.Headers,
		TotalRows:     t.RowCount(),
		Roles:         rolesPayload(roles),
		KPIs:          agg.KPIs,
		Temporal:      agg.Temporal,
		Trend:         agg.Trend,
		StatusDist:    agg.StatusDist,
		SourceDist:    agg.SourceDist,
		OwnerDist:     agg.OwnerDist,
		StatusSummary: agg.StatusSummary,
		SourceSummary: agg.SourceSummary,
		OwnerSummary:  agg.OwnerSummary,
		Creatives:     agg.Creatives,
		RawData:       agg.Preview,
	}
	res.Reconciliation = a.reconcile(ctx, t, roles)
	return res
}

func (a *Analyzer) reconcile(ctx context.Context, t *table.Table, roles schema.RoleMap) *models.Reconciliation {
	if a.Contacts == nil {
		return reconcile.Unavailable("contact source not configured")
	}

	contacts, err := a.Contacts.Contacts(ctx)
	if err != nil {
		metrics.RecordSultsFetch("error")
		return reconcile.Unavailable("contact list unavailable: " + err.Error())
	}
	metrics.RecordSultsFetch("ok")

	rec := reconcile.NewEngine(contacts).Reconcile(t, roles, a.Reconcile)
	if rec.Summary != nil {
		recordTierMetrics(rec)
	}
	return rec
}

func recordTierMetrics(rec *models.Reconciliation) {
	counts := make(map[string]int)
	for _, m := range rec.Matches {
		counts[m.MatchSource]++
	}
	metrics.RecordMatches(counts)
}

func rolesPayload(roles schema.RoleMap) map[string]string {
	out := make(map[string]string, len(roles))
	for r, col := range roles {
		out[string(r)] = col
	}
	return out
}
