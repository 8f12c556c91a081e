package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/genesis"
)

// RetrieveGenesis returns a copy of the chain parameters.
func (s *State) RetrieveGenesis() genesis.Genesis {
	return s.genesis
}

// RetrieveChain returns a copy of every block in the chain, in order.
func (s *State) RetrieveChain() []database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneChain(s.chain)
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.latestBlock().Clone()
}

// RetrievePending returns a copy of the pending pool in submission order.
func (s *State) RetrievePending() []database.Tx {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.mempool.Copy()
}

// =============================================================================

// cloneChain copies the blocks so callers can't change the ledger.
func cloneChain(blocks []database.Block) []database.Block {
	out := make([]database.Block, len(blocks))
	for i, block := range blocks {
		out[i] = block.Clone()
	}
	return out
}
