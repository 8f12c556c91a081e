// Package mempool maintains the pool of pending transactions for the
// blockchain. Transactions are kept in submission order; there is no
// reordering or prioritization.
package mempool

import (
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Mempool represents an ordered cache of transactions waiting to be mined.
type Mempool struct {
	pool []database.Tx
	mu   sync.RWMutex
}

// New constructs a new empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Append adds a transaction to the end of the pool and returns the new
// size of the pool.
func (mp *Mempool) Append(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Copy returns the transactions in submission order. The returned slice
// shares no memory with the pool.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.Tx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}
