// Package sults talks to the Sults CRM API and turns its tickets
// ("chamados") into contact snapshots for the reconciliation engine.
package sults

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/normalize"
)

const (
	pageSize = 100
	// maxPages caps runaway pagination against a misbehaving API.
	maxPages = 500
)

// Client is a paginated Sults API client.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client for the given API root, e.g.
// https://app.sults.com.br/api.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// chamado is the subset of the ticket payload the dashboard uses.
type chamado struct {
	ID          int    `json:"id"`
	Nome        string `json:"nome"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`
	Status      string `json:"status"`
	Origem      string `json:"origem"`
	Responsavel struct {
		Nome string `json:"nome"`
	} `json:"responsavel"`
}

// page covers both response shapes the API is known to emit: a bare
// array and an object wrapping it in "data".
type page struct {
	Data []chamado `json:"data"`
}

// Contacts fetches every ticket, following start/limit pagination until a
// short page, and returns them as normalized contacts.
func (c *Client) Contacts(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	for p := 0; p < maxPages; p++ {
		batch, err := c.fetchPage(ctx, p*pageSize)
		if err != nil {
			return nil, err
		}
		for _, ch := range batch {
			out = append(out, toContact(ch))
		}
		if len(batch) < pageSize {
			return out, nil
		}
	}
	return nil, fmt.Errorf("sults: pagination did not terminate after %d pages", maxPages)
}

func (c *Client) fetchPage(ctx context.Context, start int) ([]chamado, error) {
	u, err := url.Parse(c.baseURL + "/chamado")
	if err != nil {
		return nil, fmt.Errorf("sults: bad base url: %w", err)
	}
	q := u.Query()
	q.Set("start", strconv.Itoa(start))
	q.Set("limit", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sults: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("sults: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sults: status %d at start=%d", resp.StatusCode, start)
	}

	var wrapped page
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	var bare []chamado
	if err := json.Unmarshal(body, &bare); err != nil {
		return nil, fmt.Errorf("sults: decode response: %w", err)
	}
	return bare, nil
}

func toContact(ch chamado) models.Contact {
	c := models.Contact{
		ID:     ch.ID,
		Name:   ch.Nome,
		Email:  ch.Email,
		Phone:  ch.Telefone,
		Status: ch.Status,
		Owner:  ch.Responsavel.Nome,
		Origin: ch.Origem,
	}
	computeKeys(&c)
	return c
}

// computeKeys fills the derived match keys. Snapshots loaded from cache
// go through this too, the keys are not serialized.
func computeKeys(c *models.Contact) {
	c.EmailKey = normalize.Email(c.Email)
	c.PhoneKey = normalize.Phone(c.Phone)
	c.NameSlug = normalize.NameSlug(c.Name)
	c.StatusKey = normalize.ClassifyStatus(c.Status)
}

// StatusBuckets groups a snapshot by classified status category, in the
// shape the status endpoint reports.
func StatusBuckets(contacts []models.Contact) map[string][]models.Contact {
	buckets := map[string][]models.Contact{
		normalize.StatusOpen:  {},
		normalize.StatusWon:   {},
		normalize.StatusLost:  {},
		normalize.StatusOther: {},
	}
	for _, c := range contacts {
		buckets[c.StatusKey] = append(buckets[c.StatusKey], c)
	}
	return buckets
}
