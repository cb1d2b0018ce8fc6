// Package drive downloads spreadsheet files from Google Drive using a
// service account. Native Google Sheets are exported to XLSX so the
// sheet readers can treat every download the same way.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	defaultBaseURL = "https://www.googleapis.com/drive/v3"
	scopeReadonly  = "https://www.googleapis.com/auth/drive.readonly"

	sheetMime  = "application/vnd.google-apps.spreadsheet"
	exportMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// maxDownload bounds a single file download.
	maxDownload = 100 << 20
)

// Client fetches files from the Drive API.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient authenticates with service account credentials JSON.
func NewClient(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, scopeReadonly)
	if err != nil {
		return nil, fmt.Errorf("drive: parse credentials: %w", err)
	}
	c := oauth2.NewClient(ctx, creds.TokenSource)
	c.Timeout = 2 * time.Minute
	return &Client{http: c, baseURL: defaultBaseURL}, nil
}

type fileMeta struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

// Download fetches a file by ID and returns its name and contents.
// Google Sheets are exported as XLSX and get an .xlsx suffix so the
// extension-based reader dispatch works.
func (c *Client) Download(ctx context.Context, fileID string) (string, []byte, error) {
	meta, err := c.metadata(ctx, fileID)
	if err != nil {
		return "", nil, err
	}

	var u string
	name := meta.Name
	if meta.MimeType == sheetMime {
		u = fmt.Sprintf("%s/files/%s/export?mimeType=%s", c.baseURL, fileID, url.QueryEscape(exportMime))
		if !strings.HasSuffix(strings.ToLower(name), ".xlsx") {
			name += ".xlsx"
		}
	} else {
		u = fmt.Sprintf("%s/files/%s?alt=media", c.baseURL, fileID)
	}

	data, err := c.get(ctx, u)
	if err != nil {
		return "", nil, fmt.Errorf("drive: download %s: %w", fileID, err)
	}
	return name, data, nil
}

func (c *Client) metadata(ctx context.Context, fileID string) (*fileMeta, error) {
	data, err := c.get(ctx, fmt.Sprintf("%s/files/%s?fields=name,mimeType", c.baseURL, fileID))
	if err != nil {
		return nil, fmt.Errorf("drive: metadata %s: %w", fileID, err)
	}
	var meta fileMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("drive: decode metadata: %w", err)
	}
	return &meta, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		b = b[:n]
	}
	return string(b)
}
