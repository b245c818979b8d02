package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/domain/models"
)

type stubOverview struct {
	err   error
	calls int
}

func (s *stubOverview) Overview(context.Context) (*models.Overview, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &models.Overview{Timestamp: time.Now()}, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string)                   {}
func (nopMetrics) RecordError(string)                   {}
func (nopMetrics) RecordIndicatorValue(string, float64) {}
func (nopMetrics) RecordLatency(string, float64)        {}

func TestBroadcasterFansOut(t *testing.T) {
	b := NewOverviewBroadcaster(&stubOverview{}, nopMetrics{})

	ch1, cancel1 := b.Subscribe()
	ch2, cancel2 := b.Subscribe()
	defer cancel1()
	defer cancel2()
	require.Equal(t, 2, b.ClientCount())

	b.refresh(context.Background())

	for _, ch := range []<-chan []byte{ch1, ch2} {
		select {
		case frame := <-ch:
			var ov models.Overview
			require.NoError(t, json.Unmarshal(frame, &ov))
		case <-time.After(time.Second):
			t.Fatal("no frame delivered")
		}
	}
}

func TestBroadcasterLateSubscriberGetsLastFrame(t *testing.T) {
	b := NewOverviewBroadcaster(&stubOverview{}, nopMetrics{})
	b.refresh(context.Background())

	ch, cancel := b.Subscribe()
	defer cancel()
	select {
	case frame := <-ch:
		assert.NotEmpty(t, frame)
	case <-time.After(time.Second):
		t.Fatal("late subscriber got no snapshot")
	}
}

func TestBroadcasterSlowClientDropped(t *testing.T) {
	b := NewOverviewBroadcaster(&stubOverview{}, nopMetrics{}, WithClientBuffer(1))
	_, cancel := b.Subscribe()
	defer cancel()

	// second frame overflows the buffer and is dropped, not blocked on
	done := make(chan struct{})
	go func() {
		b.refresh(context.Background())
		b.refresh(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a slow client")
	}
}

func TestBroadcasterSourceErrorKeepsRunning(t *testing.T) {
	src := &stubOverview{err: errors.New("down")}
	b := NewOverviewBroadcaster(src, nopMetrics{})
	ch, cancel := b.Subscribe()
	defer cancel()

	b.refresh(context.Background())
	select {
	case <-ch:
		t.Fatal("unexpected frame after source error")
	default:
	}

	src.err = nil
	b.refresh(context.Background())
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no frame after recovery")
	}
}

func TestBroadcasterStartStop(t *testing.T) {
	src := &stubOverview{}
	b := NewOverviewBroadcaster(src, nopMetrics{}, WithInterval(10*time.Millisecond))
	ctx, cancelCtx := context.WithCancel(context.Background())
	defer cancelCtx()

	b.Start(ctx)
	b.Start(ctx) // idempotent
	time.Sleep(50 * time.Millisecond)
	b.Stop()
	assert.GreaterOrEqual(t, src.calls, 1)
}

func TestSubscribeCancelIdempotent(t *testing.T) {
	b := NewOverviewBroadcaster(&stubOverview{}, nopMetrics{})
	_, cancel := b.Subscribe()
	cancel()
	cancel()
	assert.Equal(t, 0, b.ClientCount())
}
