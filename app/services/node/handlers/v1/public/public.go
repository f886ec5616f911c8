// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// kinds maps the ledger errors to what clients see.
var kinds = []errs.Kind{
	{Err: state.ErrAlreadyInitialized, Status: http.StatusConflict, Code: "already_initialized"},
	{Err: state.ErrUninitialized, Status: http.StatusConflict, Code: "uninitialized"},
	{Err: state.ErrInvalidInput, Status: http.StatusBadRequest, Code: "invalid_input"},
	{Err: state.ErrNoTransactions, Status: http.StatusConflict, Code: "empty_pool"},
	{Err: database.ErrSignatureVerificationFailed, Status: http.StatusUnprocessableEntity, Code: "signature_verification_failed"},
	{Err: database.ErrBlockInvalid, Status: http.StatusUnprocessableEntity, Code: "block_invalid"},
	{Err: database.ErrMaxAttempts, Status: http.StatusServiceUnavailable, Code: "max_attempts"},
	{Err: context.DeadlineExceeded, Status: http.StatusServiceUnavailable, Code: "cancelled"},
	{Err: context.Canceled, Status: http.StatusServiceUnavailable, Code: "cancelled"},
}

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client. The kind query
// parameter limits the events sent.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID, r.URL.Query()["kind"]...)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case evt, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteJSON(evt); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Identity returns the public identity of the node.
func (h Handlers) Identity(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pub := h.State.RetrievePublicKey()

	id := Identity{
		Scheme:     pub.Scheme(),
		Account:    h.State.RetrieveAccount(),
		PublicKey:  pub.String(),
		Difficulty: h.State.RetrieveDifficulty(),
		AutoSeal:   h.State.IsAutoSeal(),
	}

	return web.Respond(ctx, w, id, http.StatusOK)
}

// Genesis creates the genesis block.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.InitGenesis()
	if err != nil {
		return errs.Classify(err, kinds...)
	}

	return web.Respond(ctx, w, toBlock(block), http.StatusCreated)
}

// SubmitTransaction signs a new transaction and adds it to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var ntx NewTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("submit tran", "traceid", web.GetTraceID(ctx), "sender", ntx.Sender, "receiver", ntx.Receiver, "amount", *ntx.Amount)

	tx, err := h.State.SubmitTransaction(ntx.Sender, ntx.Receiver, *ntx.Amount)
	if err != nil {
		return errs.Classify(err, kinds...)
	}

	return web.Respond(ctx, w, toTx(tx), http.StatusCreated)
}

// SealBlock seals the mempool into a new block and waits for the result.
func (h Handlers) SealBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	block, err := h.State.SealNewBlock(ctx)
	if err != nil {
		return errs.Classify(err, kinds...)
	}

	return web.Respond(ctx, w, toBlock(block), http.StatusCreated)
}

// SignalMining signals the worker to seal the mempool in the background.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if h.State.Worker == nil {
		return errs.NewTrusted(errors.New("background sealing is not running"), http.StatusServiceUnavailable)
	}

	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signalled",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// Chain returns every block in the chain.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, err := h.State.RetrieveChain()
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, toBlocks(blocks), http.StatusOK)
}

// VerifyChain walks the chain and validates every block.
func (h Handlers) VerifyChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := h.State.VerifyChain(); err != nil {
		return errs.Classify(err, kinds...)
	}

	blocks, err := h.State.RetrieveChain()
	if err != nil {
		return err
	}

	resp := Verification{
		Status: "ok",
		Blocks: len(blocks),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// BlocksByNumber returns the blocks in the specified range. Use "latest" for
// either end of the range.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, err := blockNumber(web.Param(r, "from"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	to, err := blockNumber(web.Param(r, "to"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if from > to {
		return errs.NewTrusted(errors.New("from is greater than to"), http.StatusBadRequest)
	}

	blocks := h.State.QueryBlocksByNumber(from, to)
	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, toBlocks(blocks), http.StatusOK)
}

// BlocksByName returns the blocks holding transactions for the named party.
func (h Handlers) BlocksByName(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks, err := h.State.QueryBlocksByName(web.Param(r, "name"))
	if err != nil {
		return err
	}

	if len(blocks) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, toBlocks(blocks), http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, toTxs(h.State.RetrieveMempool()), http.StatusOK)
}

// =============================================================================

func blockNumber(s string) (uint64, error) {
	if s == "latest" || s == "" {
		return state.QueryLatest, nil
	}

	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.New("block number must be a number or latest")
	}

	return n, nil
}
