package analysis

import (
	"strings"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/normalize"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/schema"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// Ads exports tag each row LEAD or MQL in a qualification column instead
// of carrying count columns. DeriveQualificationCounts turns that column
// into two derived 0/1 count columns and returns their names. The tag
// column is renamed Qualificacao so role detection binds the numeric
// derived columns, not the text tags.
func DeriveQualificationCounts(t *table.Table) (leadCol, mqlCol string, ok bool) {
	src := ""
	srcIdx := -1
	for i, h := range t.Headers {
		if strings.Contains(normalize.Fold(h), "mql") && hasQualificationTags(t.Column(h)) {
			src, srcIdx = h, i
			break
		}
	}
	if src == "" {
		return "", "", false
	}

	leads := make([]string, t.RowCount())
	mqls := make([]string, t.RowCount())
	for r := range t.Rows {
		switch strings.ToUpper(strings.TrimSpace(t.Value(r, src))) {
		case "LEAD":
			leads[r] = "1"
			mqls[r] = "0"
		case "MQL":
			leads[r] = "0"
			mqls[r] = "1"
		default:
			leads[r] = "0"
			mqls[r] = "0"
		}
	}
	t.Headers[srcIdx] = "Qualificacao"
	return t.AddColumn("COUNT_LEAD", leads), t.AddColumn("COUNT_MQL", mqls), true
}

// hasQualificationTags samples the column for LEAD/MQL tag values. An MQL
// count column holds numbers and must not be rewritten.
func hasQualificationTags(values []string) bool {
	for i, v := range values {
		if i >= 50 {
			break
		}
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "LEAD", "MQL":
			return true
		}
	}
	return false
}

// FillTermColumn replaces blanks in a "Term" column with "organico",
// so untagged traffic is attributed instead of dropped.
func FillTermColumn(t *table.Table) {
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), "term") {
			for r := range t.Rows {
				if strings.TrimSpace(t.Rows[r][i]) == "" {
					t.Rows[r][i] = "organico"
				}
			}
			return
		}
	}
}

// numericHints mark headers whose blank cells should serialize as 0.0
// rather than null in the raw-data preview.
var numericHints = []string{"cpl", "cpmql", "cpc", "cpm", "ctr", "lead", "mql", "investimento", "cliques", "impressoes", "count_"}

// RawPreview renders up to limit rows as JSON-ready maps. Metric columns
// are coerced to numbers with blanks as 0; other blanks become nil.
func RawPreview(t *table.Table, limit int) []map[string]any {
	n := t.RowCount()
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]map[string]any, 0, n)
	for r := 0; r < n; r++ {
		row := make(map[string]any, len(t.Headers))
		for i, h := range t.Headers {
			raw := strings.TrimSpace(t.Rows[r][i])
			if isNumericHint(h) {
				if v, ok := table.ParseNumber(raw); ok {
					row[h] = v
				} else {
					row[h] = 0.0
				}
				continue
			}
			if raw == "" {
				row[h] = nil
			} else {
				row[h] = raw
			}
		}
		out = append(out, row)
	}
	return out
}

func isNumericHint(header string) bool {
	h := normalize.Fold(header)
	for _, hint := range numericHints {
		if strings.Contains(h, hint) {
			return true
		}
	}
	return false
}

// Aggregate runs the full aggregation pass for a role-mapped table.
func Aggregate(t *table.Table, roles schema.RoleMap, params Params) *AggregateResult {
	p := params.withDefaults()

	res := &AggregateResult{
		KPIs:     KPIs(t, roles),
		Temporal: Temporal(t, roles),
	}
	if col := roles.Column(schema.RoleDate); col != "" {
		res.Trend = Trend(t.Column(col))
	}
	if col := roles.Column(schema.RoleStatus); col != "" {
		res.StatusDist, res.StatusSummary = distributions(t.Column(col), p)
	}
	if col := roles.Column(schema.RoleSource); col != "" {
		res.SourceDist, res.SourceSummary = distributions(t.Column(col), p)
	}
	if col := roles.Column(schema.RoleOwner); col != "" {
		res.OwnerDist, res.OwnerSummary = distributions(t.Column(col), p)
	}
	res.Creatives = Creatives(t, roles, p.Creative)
	res.Preview = RawPreview(t, p.PreviewRows)
	return res
}
