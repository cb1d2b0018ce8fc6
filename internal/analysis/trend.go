package analysis

import (
	"sort"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/schema"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// Trend builds the monthly lead series from a date column and compares the
// two most recent months. Unparseable dates are skipped. Growth is
// (current-previous)/previous*100, with 100 when the previous month is
// empty but the current is not, and 0 when both are empty.
func Trend(dates []string) *models.MonthlyTrend {
	counts := make(map[string]int)
	for _, raw := range dates {
		ts, ok := table.ParseDate(raw)
		if !ok {
			continue
		}
		counts[ts.Format("2006-01")]++
	}
	if len(counts) == 0 {
		return nil
	}

	months := make([]string, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Strings(months)

	series := make([]models.MonthCount, len(months))
	for i, m := range months {
		series[i] = models.MonthCount{Month: m, Count: counts[m]}
	}

	current := series[len(series)-1].Count
	previous := 0
	if len(series) > 1 {
		previous = series[len(series)-2].Count
	}

	var growth float64
	switch {
	case previous == 0 && current == 0:
		growth = 0
	case previous == 0:
		growth = 100
	default:
		growth = round1(float64(current-previous) / float64(previous) * 100)
	}

	return &models.MonthlyTrend{
		Series:        series,
		CurrentMonth:  current,
		PreviousMonth: previous,
		GrowthRate:    growth,
	}
}

// Temporal counts, per day, how many distinct creatives were active. When
// the table has no creative key the count falls back to rows per day.
func Temporal(t *table.Table, roles schema.RoleMap) []models.TemporalPoint {
	dateCol := roles.Column(schema.RoleDate)
	if dateCol == "" {
		return nil
	}
	creativeCol := creativeColumn(roles)

	perDay := make(map[string]map[string]bool)
	rowsPerDay := make(map[string]int)
	for r := range t.Rows {
		day := table.FormatBrazilianDate(t.Value(r, dateCol))
		if day == "" {
			continue
		}
		rowsPerDay[day]++
		if creativeCol != "" {
			if perDay[day] == nil {
				perDay[day] = make(map[string]bool)
			}
			perDay[day][t.Value(r, creativeCol)] = true
		}
	}

	days := make([]string, 0, len(rowsPerDay))
	for d := range rowsPerDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return lessBrazilianDate(days[i], days[j]) })

	out := make([]models.TemporalPoint, 0, len(days))
	for _, d := range days {
		n := rowsPerDay[d]
		if creativeCol != "" {
			n = len(perDay[d])
		}
		out = append(out, models.TemporalPoint{Date: d, Creatives: n})
	}
	return out
}

// lessBrazilianDate orders DD/MM/YYYY strings chronologically.
func lessBrazilianDate(a, b string) bool {
	ta, oka := table.ParseDate(a)
	tb, okb := table.ParseDate(b)
	if oka && okb {
		return ta.Before(tb)
	}
	return a < b
}

// creativeColumn picks the column used as the creative grouping key:
// the creative column when present, otherwise the campaign column.
func creativeColumn(roles schema.RoleMap) string {
	if c := roles.Column(schema.RoleCreative); c != "" {
		return c
	}
	return roles.Column(schema.RoleCampaign)
}
