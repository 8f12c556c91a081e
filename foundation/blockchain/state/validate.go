package state

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
)

// ValidateChain walks every block after genesis and recomputes its hashes.
// The first block that fails returns a *database.IntegrityError carrying
// the index and the reason.
func (s *State) ValidateChain() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return validateChain(s.chain, s.evHandler)
}

// ValidateChainStatus provides the result of ValidateChain as a flag and a
// message for display.
func (s *State) ValidateChainStatus() (bool, string) {
	if err := s.ValidateChain(); err != nil {
		return false, err.Error()
	}

	return true, "chain is valid"
}

// =============================================================================

// validateChain checks the hash, link and merkle commitment of every block
// after the first.
func validateChain(chain []database.Block, ev EventHandler) error {
	for i := 1; i < len(chain); i++ {
		if err := chain[i].ValidateBlock(chain[i-1], ev); err != nil {
			return err
		}
	}

	return nil
}
