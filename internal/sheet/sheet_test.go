package sheet

import (
	"strings"
	"testing"
)

func TestReadCSVCommaDelimited(t *testing.T) {
	data := []byte("Nome,E-mail\nMaria,maria@x.com\nJoão,joao@x.com\n")

	got, err := ReadCSV(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Headers) != 2 || got.Headers[0] != "Nome" {
		t.Fatalf("headers = %v", got.Headers)
	}
	if got.RowCount() != 2 || got.Value(1, "Nome") != "João" {
		t.Errorf("rows = %v", got.Rows)
	}
}

func TestReadCSVSemicolonDelimited(t *testing.T) {
	data := []byte("Nome;Investimento\nMaria;1.234,56\n")

	got, err := ReadCSV(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Value(0, "Investimento") != "1.234,56" {
		t.Errorf("value = %q, want the raw Brazilian number", got.Value(0, "Investimento"))
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	data := []byte("\xEF\xBB\xBFNome\nMaria\n")

	got, err := ReadCSV(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got.Headers[0] != "Nome" {
		t.Errorf("header = %q, want Nome", got.Headers[0])
	}
}

func TestReadCSVSkipsBlankRowsAndDedupesHeaders(t *testing.T) {
	data := []byte(",,\nNome,Nome,\nMaria,Souza,extra\n,,\n")

	got, err := ReadCSV(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Nome", "Nome_2", "column_3"}
	for i, h := range want {
		if got.Headers[i] != h {
			t.Fatalf("headers = %v, want %v", got.Headers, want)
		}
	}
	if got.RowCount() != 1 {
		t.Errorf("rows = %d, want 1 (blank rows dropped)", got.RowCount())
	}
}

func TestReadCSVPrunesEmptyUnnamedColumns(t *testing.T) {
	data := []byte("Nome,,Leads\nMaria,,3\n")

	got, err := ReadCSV(data, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Headers) != 2 {
		t.Fatalf("headers = %v, want blank column pruned", got.Headers)
	}
	if got.Value(0, "Leads") != "3" {
		t.Errorf("Leads = %q, want 3", got.Value(0, "Leads"))
	}
}

func TestReadCSVMaxRows(t *testing.T) {
	var b strings.Builder
	b.WriteString("Nome\n")
	for i := 0; i < 10; i++ {
		b.WriteString("x\n")
	}

	got, err := ReadCSV([]byte(b.String()), Options{MaxRows: 4})
	if err != nil {
		t.Fatal(err)
	}
	if got.RowCount() != 4 {
		t.Errorf("rows = %d, want 4", got.RowCount())
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV([]byte("\n\n"), Options{}); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestReadUnsupportedExtension(t *testing.T) {
	if _, err := Read("leads.pdf", []byte("x"), Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
