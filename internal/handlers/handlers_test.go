package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/cache"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/config"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/normalize"
)

type fakeStore struct {
	runs []models.UploadRun
	err  error
}

func (s *fakeStore) InsertUploadRun(ctx context.Context, run *models.UploadRun) error {
	if s.err != nil {
		return s.err
	}
	run.ID = uuid.New()
	s.runs = append(s.runs, *run)
	return nil
}

func (s *fakeStore) ListRecentRuns(ctx context.Context, limit int) ([]models.UploadRun, error) {
	if s.err != nil {
		return nil, s.err
	}
	if limit > len(s.runs) {
		limit = len(s.runs)
	}
	return s.runs[:limit], nil
}

func (s *fakeStore) CountRunsBySource(ctx context.Context) (map[string]int, error) {
	if s.err != nil {
		return nil, s.err
	}
	counts := make(map[string]int)
	for _, r := range s.runs {
		counts[r.Source]++
	}
	return counts, nil
}

type fakeContacts struct {
	contacts []models.Contact
	err      error
}

func (f *fakeContacts) Contacts(ctx context.Context) ([]models.Contact, error) {
	return f.contacts, f.err
}

type fakeDrive struct {
	name  string
	data  []byte
	err   error
	calls int
}

func (f *fakeDrive) Download(ctx context.Context, fileID string) (string, []byte, error) {
	f.calls++
	return f.name, f.data, f.err
}

func crmContact(id int, name, email, status string) models.Contact {
	return models.Contact{
		ID:        id,
		Name:      name,
		Status:    status,
		StatusKey: normalize.ClassifyStatus(status),
		EmailKey:  normalize.Email(email),
		NameSlug:  normalize.NameSlug(name),
	}
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		t.Fatalf("invalid JSON %q: %v", body, err)
	}
	return out
}

func multipartFile(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(content)
	w.Close()
	return &buf, w.FormDataContentType()
}

func TestUploadAnalyzesCSV(t *testing.T) {
	store := &fakeStore{}
	analyzer := &Analyzer{Contacts: &fakeContacts{contacts: []models.Contact{
		crmContact(1, "Maria Souza", "maria@x.com", "Ganho"),
	}}}
	h := NewUploadHandler(analyzer, store, 1000)

	app := fiber.New()
	app.Post("/api/upload", h.Upload)

	csv := []byte("Nome,E-mail,Status,Leads\nMaria Souza,maria@x.com,Em andamento,3\nCarlos,carlos@y.com,Perdido,2\n")
	body, contentType := multipartFile(t, "leads.csv", csv)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	env := decodeEnvelope(t, resp)
	if env["status"] != "ok" {
		t.Fatalf("envelope = %v", env)
	}
	data := env["data"].(map[string]any)
	if data["total_rows"].(float64) != 2 {
		t.Errorf("total_rows = %v", data["total_rows"])
	}

	roles := data["roles"].(map[string]any)
	if roles["email"] != "E-mail" || roles["lead_count"] != "Leads" {
		t.Errorf("roles = %v", roles)
	}

	kpis := data["kpis"].(map[string]any)
	if kpis["total_leads"].(float64) != 5 {
		t.Errorf("total_leads = %v", kpis["total_leads"])
	}

	rec := data["reconciliation"].(map[string]any)
	if rec["available"] != true {
		t.Fatalf("reconciliation = %v", rec)
	}
	summary := rec["summary"].(map[string]any)
	if summary["matched"].(float64) != 1 {
		t.Errorf("matched = %v", summary["matched"])
	}
	// Sheet says open, CRM says won.
	if summary["divergences"].(float64) != 1 {
		t.Errorf("divergences = %v", summary["divergences"])
	}

	if len(store.runs) != 1 || store.runs[0].Source != models.SourceUpload {
		t.Errorf("runs = %+v", store.runs)
	}
	if store.runs[0].Filename != "leads.csv" || store.runs[0].RowCount != 2 {
		t.Errorf("run = %+v", store.runs[0])
	}
}

func TestUploadMissingFile(t *testing.T) {
	h := NewUploadHandler(&Analyzer{}, &fakeStore{}, 1000)
	app := fiber.New()
	app.Post("/api/upload", h.Upload)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUploadDegradesWhenCRMDown(t *testing.T) {
	analyzer := &Analyzer{Contacts: &fakeContacts{err: errors.New("timeout")}}
	h := NewUploadHandler(analyzer, nil, 1000)
	app := fiber.New()
	app.Post("/api/upload", h.Upload)

	body, contentType := multipartFile(t, "leads.csv", []byte("Nome\nMaria\n"))
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 with degraded payload", resp.StatusCode)
	}

	data := decodeEnvelope(t, resp)["data"].(map[string]any)
	rec := data["reconciliation"].(map[string]any)
	if rec["available"] != false {
		t.Errorf("reconciliation = %v, want unavailable", rec)
	}
}

func testDriveHandler(store *fakeStore, d Downloader, cfg *config.Config) *DriveHandler {
	analyzer := &Analyzer{}
	return NewDriveHandler(analyzer, store, d, nil, cfg, nil)
}

func TestGoogleAdsDerivesCounts(t *testing.T) {
	store := &fakeStore{}
	csv := []byte("Data,MQL?,Term,Criativo\n01/02/2025,LEAD,,video\n02/02/2025,MQL,google,video\n")
	d := &fakeDrive{name: "Controle Google ADS.csv", data: csv}
	cfg := &config.Config{GoogleAdsFileID: "ads1", MaxRows: 1000}

	h := testDriveHandler(store, d, cfg)
	app := fiber.New()
	app.Get("/api/google-ads", h.GoogleAds)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/google-ads", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	data := decodeEnvelope(t, resp)["data"].(map[string]any)
	kpis := data["kpis"].(map[string]any)
	if kpis["total_leads"].(float64) != 1 || kpis["total_mqls"].(float64) != 1 {
		t.Errorf("kpis = %v, want 1 lead and 1 mql from the tag column", kpis)
	}

	// Blank Term cells are attributed to organic traffic in the preview.
	raw := data["raw_data"].([]any)
	first := raw[0].(map[string]any)
	if first["Term"] != "organico" {
		t.Errorf("Term = %v, want organico", first["Term"])
	}

	if len(store.runs) != 1 || store.runs[0].Source != models.SourceGoogleAds {
		t.Errorf("runs = %+v", store.runs)
	}
}

func TestDriveNotConfigured(t *testing.T) {
	h := testDriveHandler(&fakeStore{}, &fakeDrive{}, &config.Config{})
	app := fiber.New()
	app.Get("/api/auto-upload", h.AutoUpload)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auto-upload", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDriveDownloadFailure(t *testing.T) {
	d := &fakeDrive{err: errors.New("boom")}
	h := testDriveHandler(&fakeStore{}, d, &config.Config{DriveFileID: "f1"})
	app := fiber.New()
	app.Get("/api/auto-upload", h.AutoUpload)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auto-upload", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestDriveDownloadServedFromCache(t *testing.T) {
	d := &fakeDrive{name: "leads.csv", data: []byte("Nome,E-mail\nMaria,maria@x.com\n")}
	analyzer := &Analyzer{}
	cfg := &config.Config{DriveFileID: "f1", MaxRows: 1000, DriveCacheTTL: time.Minute}
	h := NewDriveHandler(analyzer, &fakeStore{}, d, cache.NewMemory(), cfg, nil)
	app := fiber.New()
	app.Get("/api/auto-upload", h.AutoUpload)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/auto-upload", nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i, resp.StatusCode)
		}
	}
	if d.calls != 1 {
		t.Errorf("downloads = %d, want 1", d.calls)
	}
}

func TestSultsStatus(t *testing.T) {
	src := &fakeContacts{contacts: []models.Contact{
		crmContact(1, "Maria", "maria@x.com", "Ganho"),
		crmContact(2, "Pedro", "pedro@x.com", "Perdido"),
		crmContact(3, "Lia", "lia@x.com", "Em andamento"),
	}}
	h := NewSultsHandler(src)
	app := fiber.New()
	app.Get("/api/sults/status", h.Status)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sults/status", nil))
	if err != nil {
		t.Fatal(err)
	}
	data := decodeEnvelope(t, resp)["data"].(map[string]any)
	if data["total_geral"].(float64) != 3 {
		t.Errorf("total_geral = %v", data["total_geral"])
	}
	ganhos := data["ganhos"].(map[string]any)
	if ganhos["total"].(float64) != 1 {
		t.Errorf("ganhos = %v", ganhos)
	}
}

func TestSultsStatusUpstreamError(t *testing.T) {
	h := NewSultsHandler(&fakeContacts{err: errors.New("boom")})
	app := fiber.New()
	app.Get("/api/sults/status", h.Status)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/sults/status", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestHistoryList(t *testing.T) {
	store := &fakeStore{runs: []models.UploadRun{
		{Filename: "a.csv", Source: models.SourceUpload},
		{Filename: "b.xlsx", Source: models.SourceDrive},
	}}
	h := NewHistoryHandler(store)
	app := fiber.New()
	app.Get("/api/history", h.List)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil))
	if err != nil {
		t.Fatal(err)
	}
	data := decodeEnvelope(t, resp)["data"].(map[string]any)
	if runs := data["runs"].([]any); len(runs) != 1 {
		t.Errorf("runs = %v", runs)
	}
	bySource := data["by_source"].(map[string]any)
	if bySource[models.SourceDrive].(float64) != 1 {
		t.Errorf("by_source = %v", bySource)
	}
}

func TestHistoryInvalidLimit(t *testing.T) {
	h := NewHistoryHandler(&fakeStore{})
	app := fiber.New()
	app.Get("/api/history", h.List)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/history?limit=zero", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProbeLiveness(t *testing.T) {
	h := NewProbeHandler(nil)
	app := fiber.New()
	app.Get("/healthz", h.Liveness)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
