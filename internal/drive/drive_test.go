package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{http: srv.Client(), baseURL: srv.URL}
}

func TestDownloadRegularFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.RawQuery, "fields=name"):
			json.NewEncoder(w).Encode(map[string]string{
				"name":     "leads.xlsx",
				"mimeType": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			})
		case r.URL.Query().Get("alt") == "media":
			w.Write([]byte("file-bytes"))
		default:
			t.Errorf("unexpected request %s", r.URL)
		}
	}))
	defer srv.Close()

	name, data, err := testClient(srv).Download(context.Background(), "abc123")
	if err != nil {
		t.Fatal(err)
	}
	if name != "leads.xlsx" || string(data) != "file-bytes" {
		t.Errorf("got (%q, %q)", name, data)
	}
}

func TestDownloadExportsGoogleSheet(t *testing.T) {
	var exported bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.RawQuery, "fields=name"):
			json.NewEncoder(w).Encode(map[string]string{
				"name":     "Controle Google ADS",
				"mimeType": "application/vnd.google-apps.spreadsheet",
			})
		case strings.Contains(r.URL.Path, "/export"):
			exported = true
			w.Write([]byte("xlsx-bytes"))
		default:
			t.Errorf("unexpected request %s", r.URL)
		}
	}))
	defer srv.Close()

	name, data, err := testClient(srv).Download(context.Background(), "sheet1")
	if err != nil {
		t.Fatal(err)
	}
	if !exported {
		t.Error("native sheet was not exported")
	}
	if name != "Controle Google ADS.xlsx" {
		t.Errorf("name = %q, want .xlsx suffix added", name)
	}
	if string(data) != "xlsx-bytes" {
		t.Errorf("data = %q", data)
	}
}

func TestDownloadMetadataError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, _, err := testClient(srv).Download(context.Background(), "missing"); err == nil {
		t.Error("expected error for missing file")
	}
}
