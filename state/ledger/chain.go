// Package ledger holds the hash-linked, append-only block chain that anchors every payment.
package ledger

import (
	"encoding/json"
	"time"

	"copt/engine/actors"
	"copt/engine/library"
)

func unixNow() uint64 {
	return uint64(time.Now().Unix())
}

// NewChain returns a chain holding only the genesis block.
func NewChain() *Chain {
	c := &Chain{clock: unixNow}
	c.Blocks = []Block{newBlock(0, c.now(), []Transaction{}, actors.GenesisPreviousHash)}
	return c
}

func newBlock(index, timestamp uint64, transactions []Transaction, previousHash library.Sha256) Block {
	if transactions == nil {
		transactions = []Transaction{}
	}
	b := Block{
		Index:        index,
		Timestamp:    timestamp,
		Transactions: transactions,
		PreviousHash: previousHash,
	}
	b.Hash = CalculateHash(b)
	return b
}

func (c *Chain) now() uint64 {
	if c.clock == nil {
		return unixNow()
	}
	return c.clock()
}

// Append seals transactions into a new block on top of the tip and returns it. Transactions are
// not checked here; the caller only hands over transactions it has signed itself.
func (c *Chain) Append(transactions []Transaction) Block {
	if len(c.Blocks) == 0 {
		c.Blocks = []Block{newBlock(0, c.now(), []Transaction{}, actors.GenesisPreviousHash)}
	}
	tip := c.Blocks[len(c.Blocks)-1]
	txs := make([]Transaction, len(transactions))
	copy(txs, transactions)
	b := newBlock(tip.Index+1, c.now(), txs, tip.Hash)
	c.Blocks = append(c.Blocks, b)
	return b
}

// Tip returns the most recently appended block.
func (c *Chain) Tip() Block {
	return c.Blocks[len(c.Blocks)-1]
}

func (c *Chain) Len() int {
	return len(c.Blocks)
}

// Block returns the block at index.
func (c *Chain) Block(index uint64) (Block, bool) {
	if index >= uint64(len(c.Blocks)) {
		return Block{}, false
	}
	return c.Blocks[index], true
}

// Copy returns a deep copy of the blocks, safe to hand out while the chain keeps growing.
func (c *Chain) Copy() []Block {
	blocks := make([]Block, len(c.Blocks))
	for i, b := range c.Blocks {
		txs := make([]Transaction, len(b.Transactions))
		copy(txs, b.Transactions)
		b.Transactions = txs
		blocks[i] = b
	}
	return blocks
}

// CalculateHash is the lowercase hex SHA-256 of the JSON array
// [index, timestamp, transactions, previous_hash].
func CalculateHash(b Block) library.Sha256 {
	transactions := b.Transactions
	if transactions == nil {
		transactions = []Transaction{}
	}
	data, _ := json.Marshal([]interface{}{b.Index, b.Timestamp, transactions, b.PreviousHash})
	return library.Sha256Sum(data)
}
