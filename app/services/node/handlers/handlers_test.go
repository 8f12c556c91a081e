package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ardanlabs/powledger/app/services/node/handlers"
	"github.com/ardanlabs/powledger/business/web/errs"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/events"
	"github.com/ardanlabs/powledger/foundation/logger"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	t     *testing.T
	mux   http.Handler
	state *state.State
}

func newNode(t *testing.T, gen genesis.Genesis) *node {
	t.Helper()

	st, err := state.New(state.Config{Genesis: gen})
	require.NoError(t, err)

	mux := handlers.PublicMux(handlers.MuxConfig{
		Log:         logger.NewNop(),
		State:       st,
		Evts:        events.New(),
		MinerName:   "Miner",
		MineTimeout: 5 * time.Second,
	})

	return &node{t: t, mux: mux, state: st}
}

func (n *node) do(method string, path string, body any, resp any) int {
	n.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(n.t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	n.mux.ServeHTTP(w, r)

	if resp != nil && w.Body.Len() > 0 {
		require.NoError(n.t, json.Unmarshal(w.Body.Bytes(), resp), w.Body.String())
	}

	return w.Code
}

func lowDifficulty() genesis.Genesis {
	return genesis.Genesis{Difficulty: 1, MiningReward: 50}
}

// =============================================================================

func TestSubmitAndMine(t *testing.T) {
	n := newNode(t, lowDifficulty())

	tx := map[string]any{"sender": "Alice", "recipient": "Bob", "amount": 10}

	var er errs.Response
	status := n.do(http.MethodPost, "/v1/tx/submit", tx, &er)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "insufficient funds for Alice (has 0)", er.Error)
	assert.Empty(t, n.state.RetrievePending(), "pending pool should be unchanged")

	var block database.Block
	status = n.do(http.MethodPost, "/v1/mine", map[string]string{"miner": "Alice"}, &block)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint64(1), block.Index)
	assert.Equal(t, database.NewCoinbaseTx("Alice", 50), block.Transactions[0])

	var submitted struct {
		Status      string      `json:"status"`
		Transaction database.Tx `json:"transaction"`
	}
	status = n.do(http.MethodPost, "/v1/tx/submit", tx, &submitted)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", submitted.Status)
	assert.Equal(t, database.Tx{Sender: "Alice", Recipient: "Bob", Amount: 10}, submitted.Transaction)

	var pending []database.Tx
	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/tx/pending", nil, &pending))
	assert.Len(t, pending, 1)

	// The body is optional, the configured miner is paid.
	status = n.do(http.MethodPost, "/v1/mine", nil, &block)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Miner", block.Transactions[0].Recipient)
	assert.Len(t, block.Transactions, 2)

	var balances map[string]float64
	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/balances", nil, &balances))
	assert.Equal(t, map[string]float64{"Alice": 40, "Bob": 10, "Miner": 50}, balances)

	var chain []database.Block
	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/chain", nil, &chain))
	assert.Len(t, chain, 3)

	var valid struct {
		Valid   bool   `json:"valid"`
		Message string `json:"message"`
	}
	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/chain/validate", nil, &valid))
	assert.True(t, valid.Valid)
	assert.Equal(t, "chain is valid", valid.Message)
}

func TestBalances(t *testing.T) {
	n := newNode(t, lowDifficulty())

	var block database.Block
	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/mine", map[string]string{"miner": "Alice"}, &block))
	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/tx/submit", map[string]any{"sender": "Alice", "recipient": "Bob", "amount": 5}, nil))

	var balances map[string]float64
	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/balances?pending=false", nil, &balances))
	assert.Equal(t, map[string]float64{"Alice": 50}, balances)

	var balance struct {
		Account        string  `json:"account"`
		Balance        float64 `json:"balance"`
		IncludePending bool    `json:"include_pending"`
	}
	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/balances/Bob", nil, &balance))
	assert.Equal(t, "Bob", balance.Account)
	assert.Equal(t, 5.0, balance.Balance)
	assert.True(t, balance.IncludePending)

	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/balances/Bob?pending=false", nil, &balance))
	assert.Equal(t, 0.0, balance.Balance)

	assert.Equal(t, http.StatusBadRequest, n.do(http.MethodGet, "/v1/balances?pending=maybe", nil, nil))
}

func TestSubmitValidation(t *testing.T) {
	n := newNode(t, lowDifficulty())

	tests := []struct {
		name   string
		body   any
		fields []string
		error  string
	}{
		{name: "missing-recipient", body: map[string]any{"sender": "Alice", "amount": 1}, fields: []string{"recipient"}},
		{name: "zero", body: map[string]any{"sender": "Alice", "recipient": "Bob", "amount": 0}, error: "amount must be positive"},
		{name: "negative", body: map[string]any{"sender": "Alice", "recipient": "Bob", "amount": -1}, error: "amount must be positive"},
		{name: "unknown-field", body: map[string]any{"sender": "Alice", "recipient": "Bob", "amount": 1, "fee": 2}},
	}

	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			var er errs.Response
			status := n.do(http.MethodPost, "/v1/tx/submit", tst.body, &er)
			require.Equal(t, http.StatusBadRequest, status)

			for _, field := range tst.fields {
				assert.Contains(t, er.Fields, field)
			}
			if tst.error != "" {
				assert.Equal(t, tst.error, er.Error)
			}
			assert.Empty(t, n.state.RetrievePending())
		})
	}
}

func TestBlockAndProof(t *testing.T) {
	n := newNode(t, lowDifficulty())

	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/mine", map[string]string{"miner": "Alice"}, nil))
	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/tx/submit", map[string]any{"sender": "Alice", "recipient": "Bob", "amount": 5}, nil))
	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/tx/submit", map[string]any{"sender": "Alice", "recipient": "Carol", "amount": 5}, nil))
	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/mine", nil, nil))

	var block database.Block
	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/chain/2", nil, &block))
	assert.Equal(t, uint64(2), block.Index)
	assert.Len(t, block.Transactions, 3)

	assert.Equal(t, http.StatusNotFound, n.do(http.MethodGet, "/v1/chain/9", nil, nil))
	assert.Equal(t, http.StatusBadRequest, n.do(http.MethodGet, "/v1/chain/abc", nil, nil))

	for i := range block.Transactions {
		var proof struct {
			Transaction database.Tx `json:"transaction"`
			MerkleRoot  string      `json:"merkle_root"`
			Proof       []string    `json:"proof"`
			Order       []int64     `json:"order"`
		}
		require.Equal(t, http.StatusOK, n.do(http.MethodGet, fmt.Sprintf("/v1/tx/proof/2/%d", i), nil, &proof))
		assert.Equal(t, block.MerkleRoot, proof.MerkleRoot)

		hashes := make([][]byte, len(proof.Proof))
		for j, p := range proof.Proof {
			hash, err := hexutil.Decode(p)
			require.NoError(t, err)
			hashes[j] = hash
		}
		assert.NoError(t, database.VerifyMerkleProof(proof.Transaction, hashes, proof.Order, proof.MerkleRoot))
	}

	assert.Equal(t, http.StatusNotFound, n.do(http.MethodGet, "/v1/tx/proof/2/3", nil, nil))
}

func TestAttack(t *testing.T) {
	n := newNode(t, lowDifficulty())

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/attack", map[string]string{"attacker": "Mallory"}, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "not enough blocks to attack", resp.Message)

	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/mine", nil, nil))

	require.Equal(t, http.StatusOK, n.do(http.MethodPost, "/v1/attack", map[string]string{"attacker": "Mallory"}, &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "fork not longer", resp.Message)

	var er errs.Response
	require.Equal(t, http.StatusBadRequest, n.do(http.MethodPost, "/v1/attack", map[string]string{}, &er))
	assert.Contains(t, er.Fields, "attacker")
}

func TestMiningLimit(t *testing.T) {
	n := newNode(t, genesis.Genesis{Difficulty: 64, MiningReward: 50, MaxAttempts: 5})

	var er errs.Response
	require.Equal(t, http.StatusServiceUnavailable, n.do(http.MethodPost, "/v1/mine", nil, &er))
	assert.Contains(t, er.Error, database.ErrMiningLimit.Error())

	var chain []database.Block
	require.Equal(t, http.StatusOK, n.do(http.MethodGet, "/v1/chain", nil, &chain))
	assert.Len(t, chain, 1)
}

func TestCors(t *testing.T) {
	n := newNode(t, lowDifficulty())

	r := httptest.NewRequest(http.MethodGet, "/v1/chain", nil)
	w := httptest.NewRecorder()
	n.mux.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestDebug(t *testing.T) {
	st, err := state.New(state.Config{Genesis: lowDifficulty()})
	require.NoError(t, err)

	mux := handlers.DebugMux("test", logger.NewNop(), st)

	for _, path := range []string{"/debug/readiness", "/debug/liveness"} {
		r := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}
