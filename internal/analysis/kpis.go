package analysis

import (
	"strings"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/schema"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// KPIs computes the headline block. Count columns are summed numerically;
// when a count column holds no numbers at all (one row per lead exports),
// the non-empty cells are counted instead. Cost per MQL is zero whenever
// either side is missing.
func KPIs(t *table.Table, roles schema.RoleMap) models.KPIs {
	var k models.KPIs

	if col := roles.Column(schema.RoleLeadCount); col != "" {
		k.TotalLeads = sumOrCount(t.Column(col))
	}
	if col := roles.Column(schema.RoleMQLCount); col != "" {
		k.TotalMQLs = sumOrCount(t.Column(col))
	}
	if col := roles.Column(schema.RoleCost); col != "" {
		for _, v := range t.Column(col) {
			if n, ok := table.ParseNumber(v); ok {
				k.TotalInvestment += n
			}
		}
		k.TotalInvestment = round2(k.TotalInvestment)
	}
	if k.TotalMQLs > 0 {
		k.CostPerMQL = round2(safeDiv(k.TotalInvestment, float64(k.TotalMQLs)))
	}
	return k
}

// sumOrCount sums a numeric column, falling back to counting non-empty
// cells only when no cell parses as a number. An all-zero count column
// stays zero.
func sumOrCount(values []string) int {
	var sum float64
	var nonEmpty, numeric int
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			nonEmpty++
		}
		if n, ok := table.ParseNumber(v); ok {
			numeric++
			sum += n
		}
	}
	if numeric > 0 {
		return int(sum)
	}
	return nonEmpty
}
