// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/powledger/foundation/blockchain/mempool"
)

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	EvHandler EventHandler
}

// State manages the chain and the pending pool. Admission, mining and the
// attack simulation hold the write lock for their whole duration. Queries
// take the read lock.
type State struct {
	evHandler EventHandler
	genesis   genesis.Genesis
	solved    database.Predicate

	mu      sync.RWMutex
	chain   []database.Block
	mempool *mempool.Mempool
}

// New constructs a new ledger holding only the genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	genesisBlock, err := database.NewGenesisBlock()
	if err != nil {
		return nil, err
	}

	ev("state: New: genesis: blk[%s]", genesisBlock.Hash)

	state := State{
		evHandler: ev,
		genesis:   cfg.Genesis,
		solved:    database.LeadingZeros(cfg.Genesis.Difficulty),
		chain:     []database.Block{genesisBlock},
		mempool:   mempool.New(),
	}

	return &state, nil
}

// latestBlock returns the last block of the chain. The caller must hold
// the lock.
func (s *State) latestBlock() database.Block {
	return s.chain[len(s.chain)-1]
}
