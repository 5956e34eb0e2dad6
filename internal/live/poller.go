package live

import (
	"context"
	"time"

	"cargo-inspection-dashboard/internal/backend"
	domainIncident "cargo-inspection-dashboard/internal/domain/incident"
	"cargo-inspection-dashboard/internal/fetch"
	"cargo-inspection-dashboard/internal/logger"

	"go.uber.org/zap"
)

type Backend interface {
	PendingIncidents(ctx context.Context) ([]backend.RawIncident, error)
}

// Snapshot is one broadcast of the pending review queue.
type Snapshot struct {
	PendingCount int                       `json:"pending_count"`
	Incidents    []domainIncident.Incident `json:"incidents"`
	FetchedAt    time.Time                 `json:"fetched_at"`
}

// Poller refreshes the pending queue on an interval and broadcasts a
// snapshot whenever the queue changes. Fetches go through a latest-wins
// slot so a slow superseded poll can never overwrite a fresher one.
type Poller struct {
	backend  Backend
	hub      *Hub
	interval time.Duration
	slot     fetch.Slot
	lastKeys map[domainIncident.Key]bool
}

func NewPoller(b Backend, hub *Hub, interval time.Duration) *Poller {
	return &Poller{
		backend:  b,
		hub:      hub,
		interval: interval,
	}
}

// Run polls until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Live poller stopped")
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	ticket := p.slot.Begin()

	reqCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	raws, err := p.backend.PendingIncidents(reqCtx)
	if err != nil {
		logger.Warn("Live poll failed", zap.Error(err))
		return
	}

	if !p.slot.Commit(ticket) {
		// A newer poll already landed.
		return
	}

	incidents := make([]domainIncident.Incident, 0, len(raws))
	keys := make(map[domainIncident.Key]bool, len(raws))
	for _, raw := range raws {
		inc := domainIncident.Normalize(domainIncident.Raw(raw))
		incidents = append(incidents, inc)
		keys[inc.Key()] = true
	}

	if !p.queueChanged(keys) {
		return
	}
	p.lastKeys = keys

	p.hub.Broadcast(Snapshot{
		PendingCount: len(incidents),
		Incidents:    incidents,
		FetchedAt:    time.Now(),
	})
}

func (p *Poller) queueChanged(keys map[domainIncident.Key]bool) bool {
	if p.lastKeys == nil || len(keys) != len(p.lastKeys) {
		return true
	}
	for k := range keys {
		if !p.lastKeys[k] {
			return true
		}
	}
	return false
}
