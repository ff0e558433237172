// Package netmon observes connectivity to the remote store and exposes the
// current reachability to the sync layer.
//
// Reachability is derived from a periodic health probe against the remote
// row-store. Probe latency is logged as a UX hint only; correctness
// decisions never depend on connection quality, only on the boolean
// online/offline state.
package netmon

import (
	"context"
	"sync"
	"time"

	"github.com/fieldline/syncbox/internal/logger"
	"github.com/fieldline/syncbox/internal/remote"
)

//go:generate mockgen -source=monitor.go -destination=../mock/netmon_mock.go -package=mock

// Monitor exposes the current online/offline state and notifies subscribers
// on transitions.
type Monitor interface {
	// Online reports current reachability of the remote store.
	Online() bool

	// Subscribe returns a channel that receives the new state on every
	// online/offline transition. The channel is buffered; a slow consumer
	// misses intermediate transitions but always observes the latest one
	// eventually.
	Subscribe() <-chan bool

	// SetOnline overrides the state manually (airplane mode, tests).
	// The next probe re-evaluates it.
	SetOnline(online bool)

	// Run drives the periodic probe loop until ctx is cancelled.
	Run(ctx context.Context)
}

type probeMonitor struct {
	store    remote.RowStore
	interval time.Duration
	logger   *logger.Logger

	mu          sync.RWMutex
	online      bool
	subscribers []chan bool
}

// NewMonitor constructs a probe-driven [Monitor]. The monitor starts
// optimistically online so that a manual sync triggered before the first
// probe completes is not spuriously rejected; the first probe corrects the
// state.
func NewMonitor(store remote.RowStore, interval time.Duration, logger *logger.Logger) Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	return &probeMonitor{
		store:    store,
		interval: interval,
		logger:   logger,
		online:   true,
	}
}

func (m *probeMonitor) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

func (m *probeMonitor) Subscribe() <-chan bool {
	ch := make(chan bool, 1)

	m.mu.Lock()
	m.subscribers = append(m.subscribers, ch)
	m.mu.Unlock()

	return ch
}

func (m *probeMonitor) SetOnline(online bool) {
	m.transition(online)
}

// Run probes immediately on start, then on every tick, until ctx is
// cancelled.
func (m *probeMonitor) Run(ctx context.Context) {
	m.probe(ctx)

	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.probe(ctx)
		}
	}
}

func (m *probeMonitor) probe(ctx context.Context) {
	start := time.Now()
	err := m.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		m.logger.Debug().
			Str("func", "probeMonitor.probe").
			Err(err).
			Msg("connectivity probe failed")
		m.transition(false)
		return
	}

	m.logger.Debug().
		Str("func", "probeMonitor.probe").
		Dur("latency", latency).
		Msg("connectivity probe succeeded")
	m.transition(true)
}

// transition updates the state and, when it actually changed, notifies all
// subscribers without blocking: a full subscriber buffer is drained first so
// the latest state always wins.
func (m *probeMonitor) transition(online bool) {
	m.mu.Lock()
	changed := m.online != online
	m.online = online
	subscribers := make([]chan bool, len(m.subscribers))
	copy(subscribers, m.subscribers)
	m.mu.Unlock()

	if !changed {
		return
	}

	m.logger.Info().
		Str("func", "probeMonitor.transition").
		Bool("online", online).
		Msg("connectivity state changed")

	for _, ch := range subscribers {
		select {
		case ch <- online:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- online:
			default:
			}
		}
	}
}
