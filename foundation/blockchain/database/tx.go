package database

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
)

// Coinbase is the reserved sender value marking an issuance transaction.
// Issuance transactions are exempt from balance checks.
const Coinbase = "COINBASE"

// =============================================================================

// Tx is the transactional information between two parties.
type Tx struct {
	Sender    string  `json:"sender"`    // Identity giving up the value.
	Recipient string  `json:"recipient"` // Identity receiving the value.
	Amount    float64 `json:"amount"`    // Value being transferred.
}

// NewTx constructs a new transaction and checks it is well formed.
func NewTx(sender string, recipient string, amount float64) (Tx, error) {
	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	if err := tx.Validate(); err != nil {
		return Tx{}, err
	}

	return tx, nil
}

// NewCoinbaseTx constructs the issuance transaction paying the reward to
// the specified recipient.
func NewCoinbaseTx(recipient string, reward float64) Tx {
	return Tx{
		Sender:    Coinbase,
		Recipient: recipient,
		Amount:    reward,
	}
}

// Validate performs the structural and positivity checks on the
// transaction. Funds are not checked here since that requires the state
// of the chain.
func (tx Tx) Validate() error {
	if tx.Sender == "" || tx.Recipient == "" {
		return NewValidationError(ErrInvalidTransaction, "invalid transaction format: sender and recipient are required")
	}

	if math.IsNaN(tx.Amount) || math.IsInf(tx.Amount, 0) {
		return NewValidationError(ErrInvalidTransaction, "invalid transaction format: amount is not a number")
	}

	if tx.Amount <= 0 {
		return NewValidationError(ErrInvalidAmount, "amount must be positive")
	}

	return nil
}

// IsCoinbase reports whether this is an issuance transaction.
func (tx Tx) IsCoinbase() bool {
	return tx.Sender == Coinbase
}

// Hash implements the merkle Hashable interface for providing a hash
// of a transaction.
func (tx Tx) Hash() ([]byte, error) {
	data, err := json.Marshal(tx.canonical())
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256(data)
	return hash[:], nil
}

// Equals implements the merkle Hashable interface for providing an equality
// check between two transactions.
func (tx Tx) Equals(otherTx Tx) bool {
	return tx == otherTx
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v", tx.Sender, tx.Recipient, tx.Amount)
}

// canonical returns the transaction with its keys in lexicographic order
// so the same transaction always serializes to the same bytes.
func (tx Tx) canonical() canonicalTx {
	return canonicalTx{
		Amount:    tx.Amount,
		Recipient: tx.Recipient,
		Sender:    tx.Sender,
	}
}

// canonicalTx is the hashing form of a transaction.
type canonicalTx struct {
	Amount    float64 `json:"amount"`
	Recipient string  `json:"recipient"`
	Sender    string  `json:"sender"`
}
