package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/balance"
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// SubmitTransaction accepts a transaction for inclusion in the next mined
// block. The sender must be able to pay for it given the chain and every
// transaction already pending.
func (s *State) SubmitTransaction(tx database.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateTransaction(tx); err != nil {
		s.evHandler("state: SubmitTransaction: REJECTED: tx[%s]: %s", tx, err)
		return err
	}

	n := s.mempool.Append(tx)

	s.evHandler("state: SubmitTransaction: ACCEPTED: tx[%s]: pending[%d]", tx, n)
	s.txEvent(tx)

	return nil
}

// =============================================================================

// validateTransaction checks the transaction is well formed and can be paid
// for. The caller must hold the lock.
func (s *State) validateTransaction(tx database.Tx) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	// The issuance sender is never checked for funds.
	if tx.IsCoinbase() {
		return nil
	}

	sheet := balance.Derive(s.chain, s.mempool.Copy())
	if has := sheet.Balance(tx.Sender); has < tx.Amount {
		return database.NewValidationError(database.ErrInsufficientFunds, "insufficient funds for %s (has %v)", tx.Sender, has)
	}

	return nil
}
