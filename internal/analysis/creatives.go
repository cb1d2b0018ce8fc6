package analysis

import (
	"sort"
	"strings"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/schema"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// CreativeParams are the performance-tag thresholds. Zero values are
// replaced with the defaults below.
type CreativeParams struct {
	ExcellentRatio    float64 // CPL/CPMQL at or below ratio×average
	BadRatio          float64 // CPL/CPMQL above ratio×average
	MinLeadsExcellent int     // leads required for Excellent
	MinLeadsBad       int     // below this is Bad outright
	DetailLimit       int     // rollup rows returned
	TopLimit          int     // entries in the top-creatives map
}

// DefaultCreativeParams mirror the tuning the dashboard shipped with.
var DefaultCreativeParams = CreativeParams{
	ExcellentRatio:    0.7,
	BadRatio:          1.5,
	MinLeadsExcellent: 10,
	MinLeadsBad:       5,
	DetailLimit:       20,
	TopLimit:          10,
}

func (p CreativeParams) withDefaults() CreativeParams {
	d := DefaultCreativeParams
	if p.ExcellentRatio > 0 {
		d.ExcellentRatio = p.ExcellentRatio
	}
	if p.BadRatio > 0 {
		d.BadRatio = p.BadRatio
	}
	if p.MinLeadsExcellent > 0 {
		d.MinLeadsExcellent = p.MinLeadsExcellent
	}
	if p.MinLeadsBad > 0 {
		d.MinLeadsBad = p.MinLeadsBad
	}
	if p.DetailLimit > 0 {
		d.DetailLimit = p.DetailLimit
	}
	if p.TopLimit > 0 {
		d.TopLimit = p.TopLimit
	}
	return d
}

// Creatives rolls the table up per creative key. It needs a lead-count
// column and a creative (or campaign) column; otherwise nil is returned
// and the caller omits the section. Rollups are sorted by total leads
// descending, ties keeping first-encounter order.
func Creatives(t *table.Table, roles schema.RoleMap, params CreativeParams) *models.CreativeAnalysis {
	p := params.withDefaults()

	leadCol := roles.Column(schema.RoleLeadCount)
	keyCol := creativeColumn(roles)
	if leadCol == "" || keyCol == "" {
		return nil
	}
	mqlCol := roles.Column(schema.RoleMQLCount)
	costCol := roles.Column(schema.RoleCost)

	// Rows keyed campaign+" | "+creative when both columns exist.
	campaignCol := ""
	if roles.Has(schema.RoleCampaign) && roles.Has(schema.RoleCreative) {
		campaignCol = roles.Column(schema.RoleCampaign)
	}

	byKey := make(map[string]*models.CreativeStats)
	var order []string
	for r := range t.Rows {
		key := strings.TrimSpace(t.Value(r, keyCol))
		if campaignCol != "" {
			key = strings.TrimSpace(t.Value(r, campaignCol)) + " | " + key
		}
		if key == "" || key == "|" {
			continue
		}
		cs, ok := byKey[key]
		if !ok {
			cs = &models.CreativeStats{Name: key}
			byKey[key] = cs
			order = append(order, key)
		}
		cs.Appearances++
		if n, ok := table.ParseNumber(t.Value(r, leadCol)); ok {
			cs.Leads += int(n)
		}
		if mqlCol != "" {
			if n, ok := table.ParseNumber(t.Value(r, mqlCol)); ok {
				cs.MQLs += int(n)
			}
		}
		if costCol != "" {
			if n, ok := table.ParseNumber(t.Value(r, costCol)); ok {
				cs.Investment += n
			}
		}
	}
	if len(order) == 0 {
		return nil
	}

	stats := make([]models.CreativeStats, 0, len(order))
	for _, key := range order {
		cs := byKey[key]
		cs.Investment = round2(cs.Investment)
		cs.LeadsPerAppearance = round2(safeDiv(float64(cs.Leads), float64(cs.Appearances)))
		cs.MQLsPerAppearance = round2(safeDiv(float64(cs.MQLs), float64(cs.Appearances)))
		cs.ConversionRate = round2(safeDiv(float64(cs.MQLs), float64(cs.Leads)) * 100)
		cs.CPL = round2(safeDiv(cs.Investment, float64(cs.Leads)))
		cs.CPMQL = round2(safeDiv(cs.Investment, float64(cs.MQLs)))
		stats = append(stats, *cs)
	}

	var avgCPL, avgCPMQL, avgLeads, avgMQLs float64
	for _, cs := range stats {
		avgCPL += cs.CPL
		avgCPMQL += cs.CPMQL
		avgLeads += float64(cs.Leads)
		avgMQLs += float64(cs.MQLs)
	}
	n := float64(len(stats))
	avgCPL /= n
	avgCPMQL /= n

	for i := range stats {
		stats[i].Performance = performanceTag(stats[i], avgCPL, avgCPMQL, p)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Leads > stats[j].Leads
	})

	top := make(map[string]int)
	for i, cs := range stats {
		if i >= p.TopLimit {
			break
		}
		top[cs.Name] = cs.Leads
	}

	topLead := stats[0]
	topMQL := stats[0]
	for _, cs := range stats[1:] {
		if cs.MQLs > topMQL.MQLs {
			topMQL = cs
		}
	}

	details := stats
	if len(details) > p.DetailLimit {
		details = details[:p.DetailLimit]
	}

	return &models.CreativeAnalysis{
		TopCreatives:        top,
		Details:             details,
		TopLeadCreative:     &topLead,
		TopMQLCreative:      &topMQL,
		TotalCreatives:      len(stats),
		AvgLeadsPerCreative: round2(avgLeads / n),
		AvgMQLsPerCreative:  round2(avgMQLs / n),
	}
}

// performanceTag labels a creative against fleet averages. The Excellent
// and Bad conditions cannot both hold, so evaluation order is free.
func performanceTag(cs models.CreativeStats, avgCPL, avgCPMQL float64, p CreativeParams) string {
	if cs.CPL > p.BadRatio*avgCPL || cs.CPMQL > p.BadRatio*avgCPMQL || cs.Leads < p.MinLeadsBad {
		return models.PerformanceBad
	}
	if cs.CPL <= p.ExcellentRatio*avgCPL && cs.CPMQL <= p.ExcellentRatio*avgCPMQL && cs.Leads >= p.MinLeadsExcellent {
		return models.PerformanceExcellent
	}
	return models.PerformanceGood
}
