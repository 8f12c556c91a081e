// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/business/web/metrics"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/validate"
	"github.com/ardanlabs/powledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log         *zap.SugaredLogger
	State       *state.State
	WS          websocket.Upgrader
	Evts        *events.Events
	MinerName   string
	MineTimeout time.Duration
}

// Events handles a web socket to provide events to a client. The all=true
// query value streams every engine event instead of the viewer events.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// Dashboards only get the viewer events unless they ask for all of them.
	prefix := events.ViewerPrefix
	if r.URL.Query().Get("all") == "true" {
		prefix = ""
	}

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Acquire(v.TraceID, prefix)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting for events from the ledger or ticker.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app submitTx
	if err := web.Decode(r, &app); err != nil {
		return decodeError(err)
	}

	tx := app.toTx()

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", tx.Sender, "recipient", tx.Recipient, "amount", tx.Amount)
	if err := h.State.SubmitTransaction(tx); err != nil {
		return errs.FromLedger(err)
	}

	resp := submitResp{
		Status:      "ok",
		Transaction: tx,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine drains the pending pool into a new block. The request body is
// optional and names the identity receiving the mining reward.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app mineReq
	if err := web.Decode(r, &app); err != nil && !errors.Is(err, io.EOF) {
		return decodeError(err)
	}

	miner := app.Miner
	if miner == "" {
		miner = h.MinerName
	}

	ctx, cancel := h.withMineTimeout(ctx)
	defer cancel()

	h.Log.Infow("mine block", "traceid", v.TraceID, "miner", miner)
	block, err := h.State.MineNewBlock(ctx, miner)
	if err != nil {
		return errs.FromLedger(err)
	}

	metrics.AddMined(ctx)

	return web.Respond(ctx, w, block, http.StatusOK)
}

// Attack runs the majority attack simulation for the attacker.
func (h Handlers) Attack(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var app attackReq
	if err := web.Decode(r, &app); err != nil {
		return decodeError(err)
	}

	ctx, cancel := h.withMineTimeout(ctx)
	defer cancel()

	h.Log.Infow("simulate attack", "traceid", v.TraceID, "attacker", app.Attacker)
	ok, msg, err := h.State.SimulateAttack(ctx, app.Attacker)
	if err != nil {
		return errs.FromLedger(err)
	}

	resp := attackResp{
		Success: ok,
		Message: msg,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Chain returns every block in the chain.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveChain(), http.StatusOK)
}

// Block returns the block at the specified index.
func (h Handlers) Block(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.ParseUint(web.Param(r, "index"), 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block index: %w", err), http.StatusBadRequest)
	}

	block, err := h.State.QueryBlock(index)
	if err != nil {
		return errs.FromLedger(err)
	}

	return web.Respond(ctx, w, block, http.StatusOK)
}

// Validate recomputes the hashes of the chain and reports the first block
// that doesn't match.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var resp validateResp

	err := h.State.ValidateChain()
	switch ie := database.GetIntegrityError(err); {
	case err == nil:
		resp = validateResp{Valid: true, Message: "chain is valid"}

	case ie != nil:
		resp = validateResp{Message: ie.Error(), Index: &ie.Index, Reason: ie.Reason}

	default:
		return err
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Balances returns the derived balance of every identity. Pending
// transactions are included unless the pending query value is false.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	includePending, err := pendingParam(r)
	if err != nil {
		return err
	}

	return web.Respond(ctx, w, h.State.QueryBalances(includePending), http.StatusOK)
}

// Balance returns the derived balance for the specified identity.
func (h Handlers) Balance(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	includePending, err := pendingParam(r)
	if err != nil {
		return err
	}

	account := web.Param(r, "account")

	resp := balanceResp{
		Account:        account,
		Balance:        h.State.QueryBalance(account, includePending),
		IncludePending: includePending,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Pending returns the pending pool in submission order.
func (h Handlers) Pending(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrievePending(), http.StatusOK)
}

// Proof returns the merkle inclusion proof for a transaction in a block.
func (h Handlers) Proof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.ParseUint(web.Param(r, "index"), 10, 64)
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid block index: %w", err), http.StatusBadRequest)
	}

	txIndex, err := strconv.Atoi(web.Param(r, "tx"))
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid tx index: %w", err), http.StatusBadRequest)
	}

	mp, err := h.State.QueryMerkleProof(index, txIndex)
	if err != nil {
		return errs.FromLedger(err)
	}

	return web.Respond(ctx, w, toProofResp(mp), http.StatusOK)
}

// Genesis returns the chain parameters.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveGenesis(), http.StatusOK)
}

// =============================================================================

// withMineTimeout bounds the time a request can spend mining.
func (h Handlers) withMineTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.MineTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.MineTimeout)
}

// decodeError keeps field errors for the errors middleware and marks every
// other decoding failure as a bad request.
func decodeError(err error) error {
	if validate.IsFieldErrors(err) {
		return err
	}
	return errs.NewTrusted(err, http.StatusBadRequest)
}

// pendingParam reads the pending query value, defaulting to true.
func pendingParam(r *http.Request) (bool, error) {
	p := r.URL.Query().Get("pending")
	if p == "" {
		return true, nil
	}

	includePending, err := strconv.ParseBool(p)
	if err != nil {
		return false, errs.NewTrusted(fmt.Errorf("invalid pending value %q", p), http.StatusBadRequest)
	}

	return includePending, nil
}
