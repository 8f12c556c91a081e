// Package balance derives account balances by replaying transactions. A
// balance sheet is never stored alongside the chain; it is rebuilt on
// demand so it can't drift from the chain it was derived from.
package balance

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// Sheet represents the derived balance of every identity that has taken
// part in a transaction.
type Sheet map[string]float64

// Derive folds every transaction in the blocks, in chain order, followed by
// the pending transactions into a new balance sheet. Pass nil for pending to
// derive the balances of the chain alone.
func Derive(blocks []database.Block, pending []database.Tx) Sheet {
	sheet := make(Sheet)

	for _, block := range blocks {
		for _, tx := range block.Transactions {
			sheet.Apply(tx)
		}
	}

	for _, tx := range pending {
		sheet.Apply(tx)
	}

	// The issuance sender is never debited, it only shows up when value
	// was sent to it.
	if bal, exists := sheet[database.Coinbase]; exists && bal <= 0 {
		delete(sheet, database.Coinbase)
	}

	return sheet
}

// Apply moves the transaction amount from the sender to the recipient.
// Replay is unconditional: no funds check is performed here.
func (s Sheet) Apply(tx database.Tx) {
	if !tx.IsCoinbase() {
		s[tx.Sender] -= tx.Amount
	}
	s[tx.Recipient] += tx.Amount
}

// Balance returns the balance for the specified identity. Identities that
// never transacted have a zero balance.
func (s Sheet) Balance(account string) float64 {
	return s[account]
}

// Copy makes a copy of the balance sheet.
func (s Sheet) Copy() Sheet {
	sheet := make(Sheet, len(s))
	for account, value := range s {
		sheet[account] = value
	}
	return sheet
}
