package database

import (
	"errors"
	"fmt"
)

// Set of error variables for transaction admission and mining.
var (
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrMiningLimit        = errors.New("mining attempt limit reached")
)

// Set of reasons reported when a block fails chain validation.
const (
	ReasonInvalidHash      = "invalid hash"
	ReasonPrevHashMismatch = "previous hash mismatch"
	ReasonMerkleMismatch   = "merkle root mismatch"
)

// =============================================================================

// ValidationError is returned when a transaction is malformed or can't be
// paid for. The ledger is left untouched when one is returned.
type ValidationError struct {
	Err error
	Msg string
}

// NewValidationError constructs a validation error for the specified
// error kind.
func NewValidationError(err error, format string, args ...any) error {
	return &ValidationError{
		Err: err,
		Msg: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (ve *ValidationError) Error() string {
	return ve.Msg
}

// Unwrap provides access to the error kind for errors.Is.
func (ve *ValidationError) Unwrap() error {
	return ve.Err
}

// IsValidationError checks if an error of type ValidationError exists.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// =============================================================================

// IntegrityError is returned when a block in the chain no longer matches
// its recorded hashes.
type IntegrityError struct {
	Index  uint64
	Reason string
}

// Error implements the error interface.
func (ie *IntegrityError) Error() string {
	return fmt.Sprintf("%s at block %d", ie.Reason, ie.Index)
}

// GetIntegrityError returns a copy of the IntegrityError pointer.
func GetIntegrityError(err error) *IntegrityError {
	var ie *IntegrityError
	if !errors.As(err, &ie) {
		return nil
	}
	return ie
}
