package vectorstore

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// StoreHealthChecker monitors vector store health using the optional
// HealthPinger implemented by the concrete store.
type StoreHealthChecker struct {
	store        Store
	healthy      atomic.Int32
	log          zerolog.Logger
	probeTimeout time.Duration
}

// NewStoreHealthChecker creates a new vector store health checker.
func NewStoreHealthChecker(store Store, log zerolog.Logger, probeTimeout time.Duration) *StoreHealthChecker {
	hc := &StoreHealthChecker{store: store, log: log, probeTimeout: probeTimeout}
	hc.healthy.Store(0) // start unhealthy until first successful probe
	return hc
}

func (hc *StoreHealthChecker) Name() string    { return "vectorstore" }
func (hc *StoreHealthChecker) IsHealthy() bool { return hc.healthy.Load() == 1 }

func (hc *StoreHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	run := func() {
		to := hc.probeTimeout
		if to <= 0 {
			to = 2 * time.Second
		}
		checkCtx, cancel := context.WithTimeout(ctx, to)
		defer cancel()

		// Stores without a specialized ping are assumed reachable; every
		// real store here implements HealthPinger.
		ok := true
		if p, okCast := hc.store.(HealthPinger); okCast {
			if err := p.HealthPing(checkCtx); err != nil {
				ok = false
				hc.log.Error().Stack().Str("checker", hc.Name()).Err(err).Msg("vector store health check failed")
			}
		}
		if ok {
			hc.healthy.Store(1)
		} else {
			hc.healthy.Store(0)
		}
	}

	run()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
