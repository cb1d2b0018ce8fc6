package analysis

import (
	"math"
	"sort"
	"strings"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
)

// OthersLabel is the synthetic bucket collapsing summary overflow.
const OthersLabel = "Others"

// Distribution counts the non-empty values of a column and returns up to
// limit entries sorted by count descending. Ties keep first-seen order
// (stable sort). Percentages are shares of all counted values, rounded to
// one decimal; a zero total yields all-zero percentages.
func Distribution(values []string, limit int) []models.DistEntry {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}
	if len(order) == 0 {
		return nil
	}

	entries := make([]models.DistEntry, 0, len(order))
	total := 0
	for _, label := range order {
		entries = append(entries, models.DistEntry{Label: label, Count: counts[label]})
		total += counts[label]
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	for i := range entries {
		entries[i].Percent = percentage(entries[i].Count, total)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Summarize caps a distribution at limit entries, folding the overflow
// into a single "Others" bucket so the summary percentages still total
// ~100. The bucket never appears when everything fits.
func Summarize(entries []models.DistEntry, limit int) []models.DistEntry {
	if limit <= 0 || len(entries) <= limit {
		return entries
	}
	total := 0
	for _, e := range entries {
		total += e.Count
	}

	out := make([]models.DistEntry, 0, limit+1)
	out = append(out, entries[:limit]...)
	overflow := 0
	for _, e := range entries[limit:] {
		overflow += e.Count
	}
	out = append(out, models.DistEntry{
		Label:   OthersLabel,
		Count:   overflow,
		Percent: percentage(overflow, total),
	})
	return out
}

// percentage is round(part/total*100, 1), with a zero total mapping to 0.
func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// safeDiv divides and maps division by zero, Inf and NaN to 0, matching
// the fill-with-zero policy applied to every derived metric.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	v := num / den
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
