package state

import (
	"context"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Set of messages reported by the attack simulation.
const (
	AttackNotEnoughBlocks = "not enough blocks to attack"
	AttackForkNotLonger   = "fork not longer"
	AttackChainReplaced   = "chain replaced"
)

// SimulateAttack plays a majority attacker rewriting the tip of the chain.
// A fork is built from every block but the last, and one block paying the
// mining reward to the attacker is mined on top of it. The fork replaces
// the chain only when it is longer. Dropping one block and adding one keeps
// the lengths equal, so this construction never replaces the chain.
//
// A negative result is not an error. An error is only returned when the
// proof of work fails.
func (s *State) SimulateAttack(ctx context.Context, attacker string) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: SimulateAttack: started: attacker[%s]", attacker)
	defer s.evHandler("state: SimulateAttack: completed")

	if len(s.chain) < 2 {
		s.evHandler("state: SimulateAttack: %s: blocks[%d]", AttackNotEnoughBlocks, len(s.chain))
		return false, AttackNotEnoughBlocks, nil
	}

	fork := cloneChain(s.chain[:len(s.chain)-1])

	coinbase := database.NewCoinbaseTx(attacker, s.genesis.MiningReward)
	if err := coinbase.Validate(); err != nil {
		return false, "", err
	}

	block, err := s.mineBlock(ctx, fork[len(fork)-1], []database.Tx{coinbase})
	if err != nil {
		return false, "", err
	}
	fork = append(fork, block)

	ok, msg := s.replaceChain(fork)
	s.evHandler("state: SimulateAttack: %s: fork[%d]: chain[%d]", msg, len(fork), len(s.chain))

	return ok, msg, nil
}

// =============================================================================

// replaceChain substitutes the fork for the chain when the fork is longer.
// The pending pool is left as is. The caller must hold the lock.
func (s *State) replaceChain(fork []database.Block) (bool, string) {
	if len(fork) <= len(s.chain) {
		return false, AttackForkNotLonger
	}

	s.chain = fork
	s.blockEvent(fork[len(fork)-1])

	return true, AttackChainReplaced
}
