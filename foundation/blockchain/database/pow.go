package database

import (
	"context"
	"strings"
)

// Predicate reports whether a block hash solves the proof of work puzzle.
type Predicate func(hash string) bool

// LeadingZeros returns the production predicate: the hash needs at least
// difficulty leading hex zero characters.
func LeadingZeros(difficulty uint) Predicate {
	target := strings.Repeat("0", int(difficulty))

	return func(hash string) bool {
		return strings.HasPrefix(hash, target)
	}
}

// POW performs the work of mining to find a nonce that solves the proof of
// work puzzle for the specified block. The block passed in is not changed,
// the sealed copy is returned. A maxAttempts of zero means the search only
// stops when solved or when the context is cancelled.
func POW(ctx context.Context, block Block, solved Predicate, maxAttempts uint64, ev func(v string, args ...any)) (Block, error) {
	ev("database: POW: MINING: blk[%d]: started", block.Index)
	defer ev("database: POW: MINING: blk[%d]: completed", block.Index)

	// Log the transactions that are a part of this potential block.
	for _, tx := range block.Transactions {
		ev("database: POW: MINING: tx[%s]", tx)
	}

	nb := block.Clone()
	nb.Nonce = 0
	nb.Hash = ""

	var attempts uint64
	for {
		// Did we timeout trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: POW: MINING: CANCELLED: attempts[%d]", attempts)
			return Block{}, ctx.Err()
		}

		if maxAttempts > 0 && attempts >= maxAttempts {
			ev("database: POW: MINING: LIMIT: attempts[%d]", attempts)
			return Block{}, ErrMiningLimit
		}

		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: POW: MINING: attempts[%d]", attempts)
		}

		// Hash the block and check if we have solved the puzzle.
		nb.Timestamp = now()
		hash, err := nb.ComputeHash()
		if err != nil {
			return Block{}, err
		}

		if !solved(hash) {
			nb.Nonce++
			continue
		}

		nb.Hash = hash

		ev("database: POW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", nb.PreviousHash, hash)
		ev("database: POW: MINING: attempts[%d]", attempts)

		return nb, nil
	}
}
