package schema

import (
	"strings"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/normalize"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// sampleSize bounds how many cells the value-shape fallback inspects per
// column.
const sampleSize = 25

// Detect scans the table's headers against the rule table and returns the
// role assignments. For each rule, columns are probed left to right and the
// first unclaimed match wins; columns already claimed by an earlier rule
// are skipped, so a column never carries two roles. Unmatched roles are
// simply absent from the result.
func Detect(t *table.Table) RoleMap {
	roles := make(RoleMap)
	claimed := make(map[string]bool)
	folded := make([]string, len(t.Headers))
	for i, h := range t.Headers {
		folded[i] = normalize.Fold(h)
	}

	for _, r := range rules {
		for i, h := range folded {
			if claimed[t.Headers[i]] {
				continue
			}
			if matchesRule(h, r) {
				roles[r.role] = t.Headers[i]
				claimed[t.Headers[i]] = true
				break
			}
		}
	}

	// The name and creative last-resort fallbacks both want the first free
	// text column. Metrics-shaped sheets (counts or cost present, no
	// identity columns) are campaign exports, so the creative fallback runs
	// first there; everything else is a lead list and name wins.
	metricsShaped := roles.Has(RoleLeadCount) || roles.Has(RoleMQLCount) || roles.Has(RoleCost)
	identityShaped := roles.Has(RoleEmail) || roles.Has(RolePhone) || roles.Has(RoleName)
	if metricsShaped && !identityShaped {
		fallbackCreative(t, folded, roles, claimed)
		fallbackName(t, folded, roles, claimed)
	} else {
		fallbackName(t, folded, roles, claimed)
		fallbackCreative(t, folded, roles, claimed)
	}

	return roles
}

// fallbackName assigns the first unclaimed text column as the lead name
// when no header matched the name keywords. Date-named columns never
// qualify; their cells are text-shaped but would poison the name tiers.
func fallbackName(t *table.Table, folded []string, roles RoleMap, claimed map[string]bool) {
	if roles.Has(RoleName) {
		return
	}
	for i, h := range folded {
		orig := t.Headers[i]
		if claimed[orig] || containsAny(h, []string{"data", "date", "dia"}) {
			continue
		}
		if isTextColumn(t.Column(orig)) {
			roles[RoleName] = orig
			claimed[orig] = true
			return
		}
	}
}

// fallbackCreative accepts any unclaimed non-metric free-text column as a
// creative identifier, guaranteeing the per-creative rollup has a key
// whenever one exists.
func fallbackCreative(t *table.Table, folded []string, roles RoleMap, claimed map[string]bool) {
	if roles.Has(RoleCreative) || roles.Has(RoleCampaign) {
		return
	}
	for i, h := range folded {
		orig := t.Headers[i]
		if claimed[orig] || isMetricHeader(h) || containsAny(h, []string{"data", "date", "dia"}) {
			continue
		}
		if isTextColumn(t.Column(orig)) {
			roles[RoleCreative] = orig
			claimed[orig] = true
			return
		}
	}
}

func matchesRule(header string, r rule) bool {
	if !containsAny(header, r.keywords) {
		return false
	}
	return !containsAny(header, r.exclude)
}

func containsAny(header string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}

func isMetricHeader(header string) bool {
	for _, kw := range metricKeywords {
		if header == kw {
			return true
		}
	}
	return false
}

// isTextColumn samples cell values and reports whether the column holds
// mostly non-numeric text. Empty columns do not qualify.
func isTextColumn(values []string) bool {
	var text, nonEmpty int
	for i, v := range values {
		if i >= sampleSize {
			break
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		nonEmpty++
		if _, ok := table.ParseNumber(v); !ok {
			text++
		}
	}
	return nonEmpty > 0 && text*2 > nonEmpty
}
