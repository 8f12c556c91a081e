package state

import (
	"context"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// MineNewBlock drains the pending pool into a new block paying the mining
// reward to the miner, solves the proof of work and appends the block to
// the chain. When mining fails the chain and the pending pool are left as
// they were.
func (s *State) MineNewBlock(ctx context.Context, miner string) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MineNewBlock: MINING: started: miner[%s]", miner)
	defer s.evHandler("state: MineNewBlock: MINING: completed")

	coinbase := database.NewCoinbaseTx(miner, s.genesis.MiningReward)
	if err := coinbase.Validate(); err != nil {
		return database.Block{}, err
	}

	// The coinbase always leads the block.
	trans := append([]database.Tx{coinbase}, s.mempool.Copy()...)

	block, err := s.mineBlock(ctx, s.latestBlock(), trans)
	if err != nil {
		return database.Block{}, err
	}

	s.evHandler("state: MineNewBlock: MINING: update local state: blk[%d]", block.Index)

	s.chain = append(s.chain, block)
	s.mempool.Truncate()

	s.blockEvent(block)

	return block.Clone(), nil
}

// =============================================================================

// mineBlock constructs the block that follows the previous block and
// performs the proof of work on it. Nothing in the ledger is changed.
func (s *State) mineBlock(ctx context.Context, prevBlock database.Block, trans []database.Tx) (database.Block, error) {
	nb, err := database.NewBlock(prevBlock.Index+1, prevBlock.Hash, trans)
	if err != nil {
		return database.Block{}, fmt.Errorf("new block: %w", err)
	}

	s.evHandler("state: mineBlock: MINING: perform POW: blk[%d]: numTrans[%d]", nb.Index, len(nb.Transactions))

	block, err := database.POW(ctx, nb, s.solved, s.genesis.MaxAttempts, s.evHandler)
	if err != nil {
		return database.Block{}, fmt.Errorf("pow: %w", err)
	}

	return block, nil
}
