package middleware

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"MarketPulse/internal/domain/models"
	domrepo "MarketPulse/internal/domain/repository"
)

// OverviewSource is the minimal surface the broadcaster needs.
type OverviewSource interface {
	Overview(ctx context.Context) (*models.Overview, error)
}

// OverviewBroadcaster periodically snapshots the dashboard and fans the
// encoded frame out to subscribed WebSocket clients. Slow clients get
// frames dropped, never a blocked refresh loop.
type OverviewBroadcaster struct {
	source   OverviewSource
	metrics  domrepo.Metrics
	interval time.Duration
	buf      int

	mu      sync.Mutex
	clients map[chan []byte]struct{}
	last    []byte
	stopCh  chan struct{}
	started bool
}

type BroadcasterOption func(*OverviewBroadcaster)

// WithInterval sets the snapshot cadence.
func WithInterval(d time.Duration) BroadcasterOption {
	return func(b *OverviewBroadcaster) {
		if d > 0 {
			b.interval = d
		}
	}
}

// WithClientBuffer sets the per-client frame buffer.
func WithClientBuffer(n int) BroadcasterOption {
	return func(b *OverviewBroadcaster) {
		if n > 0 {
			b.buf = n
		}
	}
}

func NewOverviewBroadcaster(source OverviewSource, metrics domrepo.Metrics, opts ...BroadcasterOption) *OverviewBroadcaster {
	b := &OverviewBroadcaster{
		source:   source,
		metrics:  metrics,
		interval: 30 * time.Second,
		buf:      8,
		clients:  make(map[chan []byte]struct{}),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Start launches the refresh loop. Idempotent.
func (b *OverviewBroadcaster) Start(ctx context.Context) {
	b.mu.Lock()
	if b.started {
		b.mu.Unlock()
		return
	}
	b.started = true
	b.mu.Unlock()

	go func() {
		ticker := time.NewTicker(b.interval)
		defer ticker.Stop()

		b.refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-b.stopCh:
				return
			case <-ticker.C:
				b.refresh(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (b *OverviewBroadcaster) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		return
	}
	b.started = false
	close(b.stopCh)
}

// Subscribe registers a client. The returned cancel must be called when
// the client disconnects. New subscribers immediately get the last
// frame so they never start with a blank page.
func (b *OverviewBroadcaster) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, b.buf)

	b.mu.Lock()
	b.clients[ch] = struct{}{}
	if b.last != nil {
		ch <- b.last
	}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.clients[ch]; ok {
			delete(b.clients, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// ClientCount reports the current number of subscribers.
func (b *OverviewBroadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

func (b *OverviewBroadcaster) refresh(ctx context.Context) {
	started := time.Now()
	ov, err := b.source.Overview(ctx)
	if err != nil {
		b.metrics.RecordError("stream_refresh")
		return
	}
	frame, err := json.Marshal(ov)
	if err != nil {
		b.metrics.RecordError("stream_encode")
		return
	}
	b.metrics.RecordLatency("stream_refresh", time.Since(started).Seconds())
	b.broadcast(frame)
}

func (b *OverviewBroadcaster) broadcast(frame []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = frame
	for ch := range b.clients {
		select {
		case ch <- frame:
		default:
			b.metrics.RecordError("stream_client_drop")
		}
	}
}
