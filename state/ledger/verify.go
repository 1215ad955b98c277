package ledger

import (
	"errors"
	"fmt"

	"copt/engine/actors"
	"copt/engine/library"
	"copt/engine/signing"
)

var ErrIntegrity = errors.New("ledger integrity check failed")

// IntegrityError names the first block at which a check failed.
type IntegrityError struct {
	Index  uint64
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("block %d invalid: %s", e.Index, e.Reason)
}

func (e *IntegrityError) Unwrap() error {
	return ErrIntegrity
}

// Verify walks the chain and checks every stored hash against a fresh one, index continuity and
// previous_hash linkage. It returns an *IntegrityError for the first offending block.
func Verify(c *Chain) error {
	if len(c.Blocks) == 0 {
		return &IntegrityError{Index: 0, Reason: "chain is empty"}
	}
	genesis := c.Blocks[0]
	if genesis.Index != 0 {
		return &IntegrityError{Index: 0, Reason: fmt.Sprintf("genesis index is %d", genesis.Index)}
	}
	if genesis.PreviousHash != actors.GenesisPreviousHash {
		return &IntegrityError{Index: 0, Reason: fmt.Sprintf("genesis previous hash is %q", genesis.PreviousHash)}
	}
	if len(genesis.Transactions) != 0 {
		return &IntegrityError{Index: 0, Reason: "genesis carries transactions"}
	}
	if expected := CalculateHash(genesis); genesis.Hash != expected {
		return &IntegrityError{Index: 0, Reason: fmt.Sprintf("invalid hash: expected %s, got %s", expected, genesis.Hash)}
	}
	for i := 1; i < len(c.Blocks); i++ {
		if err := validateBlock(c.Blocks[i], c.Blocks[i-1]); err != nil {
			return &IntegrityError{Index: uint64(i), Reason: err.Error()}
		}
	}
	return nil
}

func validateBlock(current, previous Block) error {
	if current.Index != previous.Index+1 {
		return fmt.Errorf("invalid index: expected %d, got %d", previous.Index+1, current.Index)
	}
	if current.PreviousHash != previous.Hash {
		return fmt.Errorf("invalid previous hash: expected %s, got %s", previous.Hash, current.PreviousHash)
	}
	if expected := CalculateHash(current); current.Hash != expected {
		return fmt.Errorf("invalid hash: expected %s, got %s", expected, current.Hash)
	}
	return nil
}

// PublicKeyFunc returns the raw public key of a resident.
type PublicKeyFunc func(id library.ResidentID) ([]byte, error)

// VerifySignatures checks every transaction signature against the key publicKey returns for its
// resident. Nothing on the append or read paths calls this; it is an explicit audit.
func VerifySignatures(c *Chain, publicKey PublicKeyFunc) error {
	for _, b := range c.Blocks {
		for i, tx := range b.Transactions {
			pub, err := publicKey(tx.ResidentID)
			if err != nil {
				return &IntegrityError{Index: b.Index, Reason: fmt.Sprintf("transaction %d: resident %d: %s", i, tx.ResidentID, err.Error())}
			}
			sig, err := signing.DecodeSignature(tx.Signature)
			if err != nil {
				return &IntegrityError{Index: b.Index, Reason: fmt.Sprintf("transaction %d: %s", i, err.Error())}
			}
			if !signing.Verify(pub, signing.CanonicalMessage(tx.ResidentID, tx.Amount, tx.Timestamp), sig) {
				return &IntegrityError{Index: b.Index, Reason: fmt.Sprintf("transaction %d: signature does not verify for resident %d", i, tx.ResidentID)}
			}
		}
	}
	return nil
}
