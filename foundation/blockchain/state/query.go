package state

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/balance"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// ErrNotFound is returned when a block or transaction does not exist.
var ErrNotFound = errors.New("not found")

// MerkleProof represents the information a client needs to prove a
// transaction is committed to by a block.
type MerkleProof struct {
	BlockIndex uint64
	TxIndex    int
	Tx         database.Tx
	MerkleRoot string
	Hashes     [][]byte
	Order      []int64
}

// =============================================================================

// QueryBalances derives the balance of every identity from the chain. When
// includePending is set the pending pool is applied on top of the chain.
func (s *State) QueryBalances(includePending bool) map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.deriveBalances(includePending)
}

// QueryBalance derives the balance for the specified identity.
func (s *State) QueryBalance(account string, includePending bool) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.deriveBalances(includePending).Balance(account)
}

// QueryBlock returns a copy of the block at the specified index.
func (s *State) QueryBlock(index uint64) (database.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index >= uint64(len(s.chain)) {
		return database.Block{}, fmt.Errorf("block %d: %w", index, ErrNotFound)
	}

	return s.chain[index].Clone(), nil
}

// QueryMerkleProof builds the inclusion proof for the transaction at
// txIndex in the block at the specified index.
func (s *State) QueryMerkleProof(index uint64, txIndex int) (MerkleProof, error) {
	block, err := s.QueryBlock(index)
	if err != nil {
		return MerkleProof{}, err
	}

	if txIndex < 0 || txIndex >= len(block.Transactions) {
		return MerkleProof{}, fmt.Errorf("block %d: tx %d: %w", index, txIndex, ErrNotFound)
	}

	tree, err := database.MerkleTree(block.Transactions)
	if err != nil {
		return MerkleProof{}, err
	}

	tx := block.Transactions[txIndex]

	hashes, order, err := tree.Proof(tx)
	if err != nil {
		return MerkleProof{}, err
	}

	mp := MerkleProof{
		BlockIndex: index,
		TxIndex:    txIndex,
		Tx:         tx,
		MerkleRoot: block.MerkleRoot,
		Hashes:     hashes,
		Order:      order,
	}

	return mp, nil
}

// =============================================================================

// deriveBalances folds the chain, and optionally the pending pool, into a
// balance sheet. The caller must hold the lock.
func (s *State) deriveBalances(includePending bool) balance.Sheet {
	var pending []database.Tx
	if includePending {
		pending = s.mempool.Copy()
	}

	return balance.Derive(s.chain, pending)
}
