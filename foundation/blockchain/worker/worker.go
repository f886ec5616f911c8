// Package worker seals the pending pool on a background goroutine, either
// when signalled or on a fixed interval.
package worker

import (
	"sync"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/state"
)

// Config represents the optional settings for the worker.
type Config struct {
	// Interval seals whatever is pending on every tick. Zero disables it and
	// the worker only seals when signalled.
	Interval  time.Duration
	EvHandler state.EventHandler
}

// Worker manages the background sealing for the ledger.
type Worker struct {
	state     *state.State
	interval  time.Duration
	evHandler state.EventHandler

	wg       sync.WaitGroup
	shutOnce sync.Once
	shut     chan struct{}
	start    chan struct{}
	cancel   chan struct{}
}

// Run creates a worker, registers it with the ledger and starts the sealing
// goroutine. It returns once the goroutine is running.
func Run(st *state.State, cfg Config) *Worker {
	ev := cfg.EvHandler
	if ev == nil {
		ev = func(v string, args ...any) {}
	}

	w := Worker{
		state:     st,
		interval:  cfg.Interval,
		evHandler: ev,
		shut:      make(chan struct{}),
		start:     make(chan struct{}, 1),
		cancel:    make(chan struct{}, 1),
	}

	st.Worker = &w

	started := make(chan struct{})
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		close(started)
		w.sealOperations()
	}()
	<-started

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown cancels any seal in flight and waits for the goroutine to end.
// Calling it more than once is safe.
func (w *Worker) Shutdown() {
	w.shutOnce.Do(func() {
		w.evHandler("worker: shutdown: started")
		defer w.evHandler("worker: shutdown: completed")

		w.SignalCancelMining()
		close(w.shut)
		w.wg.Wait()
	})
}

// SignalStartMining asks for a seal. Signals collapse into one while a seal
// is already pending.
func (w *Worker) SignalStartMining() {
	select {
	case w.start <- struct{}{}:
		w.evHandler("worker: SignalStartMining: seal signaled")
	default:
	}
}

// SignalCancelMining stops the seal in flight, if any.
func (w *Worker) SignalCancelMining() {
	select {
	case w.cancel <- struct{}{}:
		w.evHandler("worker: SignalCancelMining: MINING: CANCEL: signaled")
	default:
	}
}

// =============================================================================

func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
