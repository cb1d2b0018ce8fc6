// Package jobs holds background loops run next to the HTTP server.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/metrics"
	"github.com/PedroHenriquePimentaVaz/AutomacaoADS/internal/sults"
)

// Refresher keeps the CRM contact snapshot warm so dashboard requests
// never pay the full pagination cost.
type Refresher struct {
	source   *sults.CachedSource
	interval time.Duration
}

// NewRefresher creates a refresher over the cached contact source.
func NewRefresher(source *sults.CachedSource, interval time.Duration) *Refresher {
	return &Refresher{source: source, interval: interval}
}

// Start begins the background refresh loop.
func (r *Refresher) Start(ctx context.Context) {
	log.Printf("Contact refresher started (interval: %v)", r.interval)

	// Run immediately on start
	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Contact refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	contacts, err := r.source.Refresh(refreshCtx)
	if err != nil {
		metrics.RecordSultsFetch("error")
		log.Printf("Contact refresher: fetch failed: %v", err)
		return
	}
	metrics.RecordSultsFetch("ok")
	log.Printf("Contact refresher: cached %d contacts", len(contacts))
}
