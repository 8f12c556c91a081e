package state

import (
	"encoding/json"
	"fmt"

	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/events"
)

// blockEvent provides a specific event about a new block in the chain for
// application specific support.
func (s *State) blockEvent(block database.Block) {
	blockJSON, err := json.Marshal(block)
	if err != nil {
		blockJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`%s block: {"hash":%q,"block":%s}`, events.ViewerPrefix, block.Hash, string(blockJSON))
}

// txEvent provides a specific event about a transaction entering the
// pending pool.
func (s *State) txEvent(tx database.Tx) {
	txJSON, err := json.Marshal(tx)
	if err != nil {
		txJSON = []byte(fmt.Sprintf("%q", err.Error()))
	}

	s.evHandler(`%s tx: %s`, events.ViewerPrefix, string(txJSON))
}
