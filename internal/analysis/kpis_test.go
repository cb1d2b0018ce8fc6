package analysis

import (
	"testing"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/schema"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

func TestKPIsNumericColumns(t *testing.T) {
	tbl := table.New([]string{"Leads", "MQLs", "Investimento"})
	tbl.AppendRow([]string{"10", "3", "1.500,00"})
	tbl.AppendRow([]string{"5", "2", "500"})
	roles := schema.RoleMap{
		schema.RoleLeadCount: "Leads",
		schema.RoleMQLCount:  "MQLs",
		schema.RoleCost:      "Investimento",
	}

	got := KPIs(tbl, roles)

	if got.TotalLeads != 15 || got.TotalMQLs != 5 {
		t.Errorf("totals = (%d, %d), want (15, 5)", got.TotalLeads, got.TotalMQLs)
	}
	if got.TotalInvestment != 2000 {
		t.Errorf("investment = %v, want 2000", got.TotalInvestment)
	}
	if got.CostPerMQL != 400 {
		t.Errorf("cost per MQL = %v, want 400", got.CostPerMQL)
	}
}

func TestKPIsCountFallback(t *testing.T) {
	// One row per lead: the lead column holds names, not numbers, so the
	// total falls back to counting non-empty cells.
	tbl := table.New([]string{"Lead"})
	tbl.AppendRow([]string{"Maria"})
	tbl.AppendRow([]string{"João"})
	tbl.AppendRow([]string{""})
	roles := schema.RoleMap{schema.RoleLeadCount: "Lead"}

	got := KPIs(tbl, roles)
	if got.TotalLeads != 2 {
		t.Errorf("TotalLeads = %d, want 2", got.TotalLeads)
	}
}

func TestKPIsAllZeroCountStaysZero(t *testing.T) {
	// A numeric count column of zeros must not fall back to row counting.
	tbl := table.New([]string{"Nome", "MQLs"})
	tbl.AppendRow([]string{"Maria", "0"})
	tbl.AppendRow([]string{"João", "0"})
	tbl.AppendRow([]string{"Lia", "0"})
	roles := schema.RoleMap{schema.RoleMQLCount: "MQLs"}

	got := KPIs(tbl, roles)
	if got.TotalMQLs != 0 {
		t.Errorf("TotalMQLs = %d, want 0", got.TotalMQLs)
	}
}

func TestKPIsNoMQLsNoCostPerMQL(t *testing.T) {
	tbl := table.New([]string{"Leads", "Investimento"})
	tbl.AppendRow([]string{"10", "100"})
	roles := schema.RoleMap{schema.RoleLeadCount: "Leads", schema.RoleCost: "Investimento"}

	got := KPIs(tbl, roles)
	if got.CostPerMQL != 0 {
		t.Errorf("CostPerMQL = %v, want 0 without MQL column", got.CostPerMQL)
	}
}

func TestKPIsMalformedCellsExcluded(t *testing.T) {
	tbl := table.New([]string{"Leads"})
	tbl.AppendRow([]string{"3"})
	tbl.AppendRow([]string{"n/a"})
	tbl.AppendRow([]string{"2"})
	roles := schema.RoleMap{schema.RoleLeadCount: "Leads"}

	got := KPIs(tbl, roles)
	if got.TotalLeads != 5 {
		t.Errorf("TotalLeads = %d, want 5 (malformed cell skipped)", got.TotalLeads)
	}
}
