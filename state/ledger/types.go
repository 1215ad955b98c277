package ledger

import (
	"copt/engine/library"
)

// Transaction is the ledger-facing form of a payment.
type Transaction struct {
	ResidentID library.ResidentID `json:"resident_id"`
	Amount     library.Amount     `json:"amount"`
	Timestamp  uint64             `json:"timestamp"`
	Signature  string             `json:"signature"` // base64, over signing.CanonicalMessage
}

type Block struct {
	Index        uint64         `json:"index"`
	Timestamp    uint64         `json:"timestamp"`
	Transactions []Transaction  `json:"transactions"`
	PreviousHash library.Sha256 `json:"previous_hash"`
	Hash         library.Sha256 `json:"hash"`
}

// Chain is the append-only sequence of blocks. Block 0 is the genesis block.
type Chain struct {
	Blocks []Block `json:"chain"`
	clock  func() uint64
}
