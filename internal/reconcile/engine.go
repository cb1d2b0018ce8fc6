// Package reconcile matches spreadsheet rows against a CRM contact
// snapshot through a strict cascade of identity tiers. The engine is
// stateless between runs and deterministic: the same table and the same
// contact snapshot always produce the same results.
package reconcile

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/normalize"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/schema"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/table"
)

// Params bound the engine's work. Zero values take the defaults.
type Params struct {
	SampleThreshold int   // tables larger than this are sampled
	PreviewLimit    int   // match results included in the payload
	Seed            int64 // sampling seed; fixed so runs are reproducible
}

// DefaultParams are the production settings.
var DefaultParams = Params{SampleThreshold: 5000, PreviewLimit: 50, Seed: 1}

func (p Params) withDefaults() Params {
	d := DefaultParams
	if p.SampleThreshold > 0 {
		d.SampleThreshold = p.SampleThreshold
	}
	if p.PreviewLimit > 0 {
		d.PreviewLimit = p.PreviewLimit
	}
	if p.Seed != 0 {
		d.Seed = p.Seed
	}
	return d
}

// Engine holds the contact snapshot and the lookup indexes built over it.
// Indexes are built once and only read afterwards, so row matching can be
// sharded across goroutines by callers if ever needed.
type Engine struct {
	contacts  []models.Contact
	byEmail   map[string][]int
	byPhone   map[string][]int
	bySlug    map[string][]int
	byCompact map[string][]int
	byToken   map[string][]int
}

// NewEngine indexes a contact snapshot.
func NewEngine(contacts []models.Contact) *Engine {
	e := &Engine{
		contacts:  contacts,
		byEmail:   make(map[string][]int),
		byPhone:   make(map[string][]int),
		bySlug:    make(map[string][]int),
		byCompact: make(map[string][]int),
		byToken:   make(map[string][]int),
	}
	for i, c := range contacts {
		if c.EmailKey != "" {
			e.byEmail[c.EmailKey] = append(e.byEmail[c.EmailKey], i)
		}
		if c.PhoneKey != "" {
			e.byPhone[c.PhoneKey] = append(e.byPhone[c.PhoneKey], i)
		}
		if c.NameSlug != "" {
			e.bySlug[c.NameSlug] = append(e.bySlug[c.NameSlug], i)
			compact := normalize.CompactSlug(c.NameSlug)
			e.byCompact[compact] = append(e.byCompact[compact], i)
			for _, tok := range normalize.Tokens(c.NameSlug) {
				e.byToken[tok] = append(e.byToken[tok], i)
			}
		}
	}
	return e
}

// Unavailable builds the result reported when reconciliation could not run
// at all, e.g. the contact fetch failed upstream.
func Unavailable(reason string) *models.Reconciliation {
	return &models.Reconciliation{Available: false, Reason: reason}
}

// Reconcile matches every (possibly sampled) row of the table against the
// snapshot and aggregates the summary. It never returns an error: when
// matching is impossible or fruitless the result says why instead.
func (e *Engine) Reconcile(t *table.Table, roles schema.RoleMap, params Params) *models.Reconciliation {
	p := params.withDefaults()

	if !roles.HasIdentity() {
		return Unavailable("cannot reconcile: no identity columns (email, phone or name)")
	}

	rows := rowIndexes(t.RowCount(), p)
	sampled := len(rows) < t.RowCount()

	emailCol := roles.Column(schema.RoleEmail)
	phoneCol := roles.Column(schema.RolePhone)
	nameCol := roles.Column(schema.RoleName)
	statusCol := roles.Column(schema.RoleStatus)

	summary := &models.ReconciliationSummary{
		TotalRows:       t.RowCount(),
		TotalContacts:   len(e.contacts),
		StatusHistogram: make(map[string]int),
		Sampled:         sampled,
	}
	if sampled {
		summary.SampleSize = len(rows)
		summary.TotalRows = len(rows)
	}

	matches := make([]models.MatchResult, 0, len(rows))
	matchedIDs := make(map[int]bool)
	for _, r := range rows {
		res := models.MatchResult{Row: r, MatchSource: models.TierNone}

		var email, phone, name string
		if emailCol != "" {
			email = normalize.Email(t.Value(r, emailCol))
		}
		if phoneCol != "" {
			phone = normalize.Phone(t.Value(r, phoneCol))
		}
		if nameCol != "" {
			name = normalize.NameSlug(t.Value(r, nameCol))
		}

		if idx, tier, ok := e.match(email, phone, name); ok {
			c := e.contacts[idx]
			res.ContactID = &c.ID
			res.MatchSource = tier
			res.StatusKey = c.StatusKey
			matchedIDs[c.ID] = true
			summary.Matched++
			summary.StatusHistogram[c.StatusKey]++

			if statusCol != "" {
				res.SheetStatus = strings.TrimSpace(t.Value(r, statusCol))
				if res.SheetStatus != "" && strings.TrimSpace(c.Status) != "" &&
					normalize.ClassifyStatus(res.SheetStatus) != c.StatusKey {
					res.Divergent = true
					summary.Divergences++
				}
			}
		}
		matches = append(matches, res)
	}

	summary.UnmatchedSheet = summary.TotalRows - summary.Matched
	summary.UnmatchedCRM = len(e.contacts) - len(matchedIDs)
	if summary.UnmatchedCRM < 0 {
		summary.UnmatchedCRM = 0
	}

	if len(matches) > p.PreviewLimit {
		matches = matches[:p.PreviewLimit]
	}

	if summary.Matched == 0 {
		return &models.Reconciliation{
			Available: false,
			Reason:    "no spreadsheet rows matched any contact",
			Summary:   summary,
			Matches:   matches,
		}
	}
	return &models.Reconciliation{Available: true, Summary: summary, Matches: matches}
}

// match runs the tier cascade for one row and returns the contact index
// and the tier that produced it. A tier is consulted only when every tier
// before it found nothing, and only a single unambiguous candidate wins.
func (e *Engine) match(email, phone, name string) (int, string, bool) {
	if email != "" {
		if ids := e.byEmail[email]; len(ids) == 1 {
			return ids[0], models.TierEmail, true
		}
	}
	if phone != "" {
		if ids := e.byPhone[phone]; len(ids) == 1 {
			return ids[0], models.TierPhone, true
		}
	}
	if name == "" {
		return 0, models.TierNone, false
	}
	if ids := e.bySlug[name]; len(ids) == 1 {
		return ids[0], models.TierNameExact, true
	}
	if ids := e.byCompact[normalize.CompactSlug(name)]; len(ids) == 1 {
		return ids[0], models.TierNameCompact, true
	}
	if idx, ok := e.matchTokens(name); ok {
		return idx, models.TierNameTokens, true
	}
	if idx, ok := e.matchPartial(name); ok {
		return idx, models.TierNamePartial, true
	}
	return 0, models.TierNone, false
}

// matchTokens intersects the contact sets of every token (length >= 3) in
// the row's slug. An intersection of exactly one contact wins. Otherwise
// any token that alone maps to a single contact is accepted as a
// lower-confidence match; with several such tokens the longest wins, ties
// broken by position in the slug, which keeps the choice deterministic.
func (e *Engine) matchTokens(name string) (int, bool) {
	tokens := normalize.Tokens(name)
	if len(tokens) == 0 {
		return 0, false
	}

	var intersection map[int]bool
	for _, tok := range tokens {
		ids := e.byToken[tok]
		if len(ids) == 0 {
			intersection = nil
			break
		}
		set := make(map[int]bool, len(ids))
		for _, id := range ids {
			if intersection == nil || intersection[id] {
				set[id] = true
			}
		}
		if intersection != nil && len(set) == 0 {
			intersection = nil
			break
		}
		intersection = set
	}
	if len(intersection) == 1 {
		for id := range intersection {
			return id, true
		}
	}

	ordered := make([]string, len(tokens))
	copy(ordered, tokens)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i]) > len(ordered[j])
	})
	for _, tok := range ordered {
		if ids := e.byToken[tok]; len(ids) == 1 {
			return ids[0], true
		}
	}
	return 0, false
}

// matchPartial is the last resort: substring containment in either
// direction. Contacts are scanned in snapshot order, so the first hit is
// stable across runs.
func (e *Engine) matchPartial(name string) (int, bool) {
	for i, c := range e.contacts {
		if c.NameSlug == "" {
			continue
		}
		if strings.Contains(c.NameSlug, name) || strings.Contains(name, c.NameSlug) {
			return i, true
		}
	}
	return 0, false
}

// rowIndexes returns the rows to scan. Oversized tables are sampled with
// a fixed-seed shuffle so repeated runs see the same subset; callers must
// present sampled summaries as approximations.
func rowIndexes(n int, p Params) []int {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	if n <= p.SampleThreshold {
		return rows
	}
	rng := rand.New(rand.NewSource(p.Seed))
	rng.Shuffle(n, func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	rows = rows[:p.SampleThreshold]
	sort.Ints(rows)
	return rows
}
