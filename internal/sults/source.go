package sults

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/cache"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/models"
)

// Source yields the current contact snapshot. Handlers depend on this
// interface so tests can substitute a fixed snapshot.
type Source interface {
	Contacts(ctx context.Context) ([]models.Contact, error)
}

const snapshotKey = "sults:contacts"

// CachedSource serves snapshots from the cache and refreshes them from
// the wrapped source when the cached copy is missing or expired. A fetch
// failure with no cached copy is reported to the caller, reconciliation
// then runs in degraded mode.
type CachedSource struct {
	src   Source
	cache cache.Cache
	ttl   time.Duration
	log   *slog.Logger
}

// NewCachedSource wraps src with cache-aside behavior.
func NewCachedSource(src Source, c cache.Cache, ttl time.Duration, log *slog.Logger) *CachedSource {
	return &CachedSource{src: src, cache: c, ttl: ttl, log: log}
}

func (s *CachedSource) Contacts(ctx context.Context) ([]models.Contact, error) {
	if raw, err := s.cache.Get(snapshotKey); err == nil && len(raw) > 0 {
		var contacts []models.Contact
		if err := json.Unmarshal(raw, &contacts); err == nil {
			for i := range contacts {
				computeKeys(&contacts[i])
			}
			return contacts, nil
		}
		s.log.Warn("discarding corrupt contact snapshot in cache")
	}
	return s.Refresh(ctx)
}

// Refresh fetches a fresh snapshot and stores it, bypassing any cached
// copy. The background refresher calls this on its interval.
func (s *CachedSource) Refresh(ctx context.Context) ([]models.Contact, error) {
	contacts, err := s.src.Contacts(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(contacts); err == nil {
		if err := s.cache.Set(snapshotKey, raw, s.ttl); err != nil {
			s.log.Warn("failed to cache contact snapshot", "error", err)
		}
	}
	return contacts, nil
}

// Invalidate drops the cached snapshot.
func (s *CachedSource) Invalidate() {
	if err := s.cache.Delete(snapshotKey); err != nil {
		s.log.Warn("failed to invalidate contact snapshot", "error", err)
	}
}
