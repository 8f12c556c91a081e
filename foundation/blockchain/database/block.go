// Package database handles the lower level support for the blockchain data
// model: transactions, blocks, their hashes and the proof of work.
package database

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"time"

	"github.com/ardanlabs/powledger/foundation/blockchain/merkle"
	"github.com/ethereum/go-ethereum/common"
)

// ZeroHash represents the previous hash used by the genesis block.
const ZeroHash string = "0000000000000000000000000000000000000000000000000000000000000000"

// =============================================================================

// Block represents a group of transactions batched together. The field
// order is the order used when a block is serialized for clients.
type Block struct {
	Index        uint64  `json:"index"`         // Bitcoin: Height of the block in the chain.
	PreviousHash string  `json:"previous_hash"` // Bitcoin: Hash of the previous block in the chain.
	Transactions []Tx    `json:"transactions"`  // Transactions in the order they are applied.
	Nonce        uint64  `json:"nonce"`         // Bitcoin: Value identified to solve the hash solution.
	Timestamp    float64 `json:"timestamp"`     // Bitcoin: Time the block was mined, in unix seconds.
	MerkleRoot   string  `json:"merkle_root"`   // Bitcoin: Merkle root hash of the transactions.
	Hash         string  `json:"hash"`          // Content hash, empty until the block is sealed.
}

// NewBlock constructs an unsealed block. The merkle root is committed from
// the transactions and the hash is left empty until mining seals it.
func NewBlock(index uint64, previousHash string, trans []Tx) (Block, error) {
	txs := make([]Tx, len(trans))
	copy(txs, trans)

	root, err := MerkleRoot(txs)
	if err != nil {
		return Block{}, err
	}

	nb := Block{
		Index:        index,
		PreviousHash: previousHash,
		Transactions: txs,
		Nonce:        0,
		Timestamp:    now(),
		MerkleRoot:   root,
	}

	return nb, nil
}

// NewGenesisBlock constructs the first block of a chain. The genesis block
// is sealed with its content hash and requires no proof of work.
func NewGenesisBlock() (Block, error) {
	gb, err := NewBlock(0, ZeroHash, nil)
	if err != nil {
		return Block{}, err
	}

	hash, err := gb.ComputeHash()
	if err != nil {
		return Block{}, err
	}
	gb.Hash = hash

	return gb, nil
}

// ComputeHash returns the content hash of every field in the block except
// the hash itself. It has no side effects and is the basis for both sealing
// and verifying a block.
func (b Block) ComputeHash() (string, error) {
	txs := make([]canonicalTx, len(b.Transactions))
	for i, tx := range b.Transactions {
		txs[i] = tx.canonical()
	}

	// Keys are in lexicographic order.
	content := struct {
		Index        uint64        `json:"index"`
		MerkleRoot   string        `json:"merkle_root"`
		Nonce        uint64        `json:"nonce"`
		PreviousHash string        `json:"previous_hash"`
		Timestamp    float64       `json:"timestamp"`
		Transactions []canonicalTx `json:"transactions"`
	}{
		Index:        b.Index,
		MerkleRoot:   b.MerkleRoot,
		Nonce:        b.Nonce,
		PreviousHash: b.PreviousHash,
		Timestamp:    b.Timestamp,
		Transactions: txs,
	}

	data, err := json.Marshal(content)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return common.Bytes2Hex(hash[:]), nil
}

// Clone returns a copy of the block that shares no memory with the original.
func (b Block) Clone() Block {
	txs := make([]Tx, len(b.Transactions))
	copy(txs, b.Transactions)

	b.Transactions = txs
	return b
}

// ValidateBlock takes a block and validates it against the block that
// precedes it in the chain. Stored values are never trusted, the hashes
// are recomputed.
func (b Block) ValidateBlock(previousBlock Block, evHandler func(v string, args ...any)) error {
	evHandler("database: ValidateBlock: validate: blk[%d]: check: block hash matches the content", b.Index)

	hash, err := b.ComputeHash()
	if err != nil || hash != b.Hash {
		return &IntegrityError{Index: b.Index, Reason: ReasonInvalidHash}
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: previous hash does match parent block", b.Index)

	if b.PreviousHash != previousBlock.Hash {
		return &IntegrityError{Index: b.Index, Reason: ReasonPrevHashMismatch}
	}

	evHandler("database: ValidateBlock: validate: blk[%d]: check: merkle root does match transactions", b.Index)

	root, err := MerkleRoot(b.Transactions)
	if err != nil || root != b.MerkleRoot {
		return &IntegrityError{Index: b.Index, Reason: ReasonMerkleMismatch}
	}

	return nil
}

// =============================================================================

// MerkleTree constructs the merkle tree for the specified transactions.
func MerkleTree(trans []Tx) (*merkle.Tree[Tx], error) {
	return merkle.NewTree(trans)
}

// MerkleRoot returns the merkle commitment of the transactions. An empty
// set of transactions commits to the empty string.
func MerkleRoot(trans []Tx) (string, error) {
	if len(trans) == 0 {
		return "", nil
	}

	tree, err := MerkleTree(trans)
	if err != nil {
		return "", err
	}

	return tree.RootHex(), nil
}

// VerifyMerkleProof checks the proof hashes produced for the transaction
// lead to the merkle root. An order of 0 means the proof hash is the left
// operand, 1 means it is the right operand.
func VerifyMerkleProof(tx Tx, hashes [][]byte, order []int64, merkleRoot string) error {
	if len(hashes) != len(order) {
		return errors.New("proof hashes and order don't match")
	}

	hash, err := tx.Hash()
	if err != nil {
		return err
	}

	for i, proof := range hashes {
		var data string
		switch order[i] {
		case 0:
			data = common.Bytes2Hex(proof) + common.Bytes2Hex(hash)
		default:
			data = common.Bytes2Hex(hash) + common.Bytes2Hex(proof)
		}

		sum := sha256.Sum256([]byte(data))
		hash = sum[:]
	}

	if common.Bytes2Hex(hash) != merkleRoot {
		return errors.New("proof does not lead to the merkle root")
	}

	return nil
}

// now returns the current time in unix seconds with microsecond precision.
func now() float64 {
	return float64(time.Now().UTC().UnixMicro()) / 1e6
}
