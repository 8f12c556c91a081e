package public

import (
	"github.com/ardanlabs/powledger/foundation/blockchain/database"
	"github.com/ardanlabs/powledger/foundation/blockchain/state"
	"github.com/ardanlabs/powledger/foundation/validate"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type submitTx struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    float64 `json:"amount"`
}

// Validate checks the data in the model is considered clean.
func (tx submitTx) Validate() error {
	return validate.Check(tx)
}

func (tx submitTx) toTx() database.Tx {
	return database.Tx{
		Sender:    tx.Sender,
		Recipient: tx.Recipient,
		Amount:    tx.Amount,
	}
}

type submitResp struct {
	Status      string      `json:"status"`
	Transaction database.Tx `json:"transaction"`
}

type mineReq struct {
	Miner string `json:"miner"`
}

type attackReq struct {
	Attacker string `json:"attacker" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (a attackReq) Validate() error {
	return validate.Check(a)
}

type attackResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validateResp struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Index   *uint64 `json:"index,omitempty"`
	Reason  string  `json:"reason,omitempty"`
}

type balanceResp struct {
	Account        string  `json:"account"`
	Balance        float64 `json:"balance"`
	IncludePending bool    `json:"include_pending"`
}

type proofResp struct {
	BlockIndex  uint64      `json:"block_index"`
	TxIndex     int         `json:"tx_index"`
	Transaction database.Tx `json:"transaction"`
	MerkleRoot  string      `json:"merkle_root"`
	Proof       []string    `json:"proof"`
	Order       []int64     `json:"order"`
}

func toProofResp(mp state.MerkleProof) proofResp {
	hashes := make([]string, len(mp.Hashes))
	for i, hash := range mp.Hashes {
		hashes[i] = hexutil.Encode(hash)
	}

	return proofResp{
		BlockIndex:  mp.BlockIndex,
		TxIndex:     mp.TxIndex,
		Transaction: mp.Tx,
		MerkleRoot:  mp.MerkleRoot,
		Proof:       hashes,
		Order:       mp.Order,
	}
}
