package analysis

import (
	"testing"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

func TestDeriveQualificationCounts(t *testing.T) {
	tbl := table.New([]string{"Data", "MQL?"})
	tbl.AppendRow([]string{"01/02/2025", "LEAD"})
	tbl.AppendRow([]string{"01/02/2025", " mql "})
	tbl.AppendRow([]string{"02/02/2025", ""})

	leadCol, mqlCol, ok := DeriveQualificationCounts(tbl)
	if !ok {
		t.Fatal("qualification column not found")
	}
	if leadCol != "COUNT_LEAD" || mqlCol != "COUNT_MQL" {
		t.Fatalf("derived columns = (%q, %q)", leadCol, mqlCol)
	}
	if tbl.Index("MQL?") != -1 || tbl.Index("Qualificacao") != 1 {
		t.Errorf("tag column not renamed: headers = %v", tbl.Headers)
	}

	wantLeads := []string{"1", "0", "0"}
	wantMQLs := []string{"0", "1", "0"}
	for r := range tbl.Rows {
		if tbl.Value(r, leadCol) != wantLeads[r] {
			t.Errorf("row %d lead count = %q, want %q", r, tbl.Value(r, leadCol), wantLeads[r])
		}
		if tbl.Value(r, mqlCol) != wantMQLs[r] {
			t.Errorf("row %d mql count = %q, want %q", r, tbl.Value(r, mqlCol), wantMQLs[r])
		}
	}
}

func TestDeriveQualificationCountsAbsent(t *testing.T) {
	tbl := table.New([]string{"Data", "Leads"})
	tbl.AppendRow([]string{"01/02/2025", "3"})

	if _, _, ok := DeriveQualificationCounts(tbl); ok {
		t.Error("expected no qualification column")
	}
}

func TestDeriveQualificationCountsSkipsNumericColumn(t *testing.T) {
	// A numeric MQL count column must not be mistaken for a tag column.
	tbl := table.New([]string{"Data", "MQLs"})
	tbl.AppendRow([]string{"01/02/2025", "0"})
	tbl.AppendRow([]string{"02/02/2025", "3"})

	if _, _, ok := DeriveQualificationCounts(tbl); ok {
		t.Error("numeric column rewritten as qualification tags")
	}
	if tbl.Index("MQLs") != 1 || tbl.Index("Qualificacao") != -1 {
		t.Errorf("headers changed: %v", tbl.Headers)
	}
}

func TestFillTermColumn(t *testing.T) {
	tbl := table.New([]string{"Term", "Leads"})
	tbl.AppendRow([]string{"", "1"})
	tbl.AppendRow([]string{"google", "2"})
	tbl.AppendRow([]string{"  ", "3"})

	FillTermColumn(tbl)

	if tbl.Value(0, "Term") != "organico" || tbl.Value(2, "Term") != "organico" {
		t.Errorf("blank Term cells not filled: %q, %q", tbl.Value(0, "Term"), tbl.Value(2, "Term"))
	}
	if tbl.Value(1, "Term") != "google" {
		t.Errorf("non-blank Term overwritten: %q", tbl.Value(1, "Term"))
	}
}

func TestRawPreview(t *testing.T) {
	tbl := table.New([]string{"Nome", "CPL", "Obs"})
	tbl.AppendRow([]string{"Maria", "1,50", "ok"})
	tbl.AppendRow([]string{"João", "", ""})

	got := RawPreview(tbl, 10)

	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0]["CPL"] != 1.5 {
		t.Errorf("CPL = %v, want 1.5", got[0]["CPL"])
	}
	if got[1]["CPL"] != 0.0 {
		t.Errorf("blank metric cell = %v, want 0.0", got[1]["CPL"])
	}
	if got[1]["Obs"] != nil {
		t.Errorf("blank text cell = %v, want nil", got[1]["Obs"])
	}
	if got[0]["Nome"] != "Maria" {
		t.Errorf("Nome = %v, want Maria", got[0]["Nome"])
	}
}

func TestRawPreviewLimit(t *testing.T) {
	tbl := table.New([]string{"a"})
	for i := 0; i < 5; i++ {
		tbl.AppendRow([]string{"x"})
	}
	if got := RawPreview(tbl, 3); len(got) != 3 {
		t.Errorf("got %d rows, want 3", len(got))
	}
}
