package worker

import (
	"context"
	"errors"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/state"
)

// sealOperations waits for signals or ticks and runs one seal at a time.
func (w *Worker) sealOperations() {
	w.evHandler("worker: sealOperations: G started")
	defer w.evHandler("worker: sealOperations: G completed")

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.start:
		case <-tick:
			w.evHandler("worker: sealOperations: interval reached")
		case <-w.shut:
			return
		}

		if w.isShutdown() {
			return
		}

		if w.seal() {
			w.resignal()
		}
	}
}

// seal runs a single seal that a cancel signal or shutdown can stop. It
// reports whether a block was added to the chain.
func (w *Worker) seal() bool {
	if n := w.state.QueryMempoolLength(); n == 0 {
		w.evHandler("worker: seal: MINING: nothing pending")
		return false
	}

	// A cancel that arrived while idle is stale.
	select {
	case <-w.cancel:
	default:
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		select {
		case <-w.cancel:
			w.evHandler("worker: seal: MINING: CANCEL: requested")
			cancel()
		case <-w.shut:
			cancel()
		case <-ctx.Done():
		}
	}()

	t := time.Now()
	block, err := w.state.SealNewBlock(ctx)
	w.evHandler("worker: seal: MINING: duration[%v]", time.Since(t))

	cancel()
	<-stopped

	switch {
	case err == nil:
		w.evHandler("worker: seal: MINING: SEALED: blk[%d]: hash[%s]", block.Header.Number, block.Hash())
		return true
	case errors.Is(err, state.ErrNoTransactions):
		w.evHandler("worker: seal: MINING: nothing pending")
	case errors.Is(err, state.ErrUninitialized):
		w.evHandler("worker: seal: MINING: WARNING: chain not initialized")
	case errors.Is(err, context.Canceled):
		w.evHandler("worker: seal: MINING: CANCEL: complete")
	default:
		w.evHandler("worker: seal: MINING: ERROR: %s", err)
	}

	return false
}

// resignal queues another seal for transactions submitted during the last one.
func (w *Worker) resignal() {
	if w.isShutdown() {
		return
	}

	if n := w.state.QueryMempoolLength(); n > 0 {
		w.evHandler("worker: resignal: MINING: pending[%d]", n)
		w.SignalStartMining()
	}
}
