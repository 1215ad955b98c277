package accounts

import (
	"fmt"

	"copt/engine/signing"
	"copt/state/ledger"
)

// NewTransaction signs p with its resident's key and returns the ledger form of it.
func (b *Book) NewTransaction(p Payment) (ledger.Transaction, error) {
	key, err := b.keystore.SigningKey(p.ResidentID)
	if err != nil {
		return ledger.Transaction{}, err
	}
	timestamp := uint64(p.Timestamp.Unix())
	sig, err := signing.Sign(key, signing.CanonicalMessage(p.ResidentID, p.Amount, timestamp))
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("signing payment of resident %d: %w", p.ResidentID, err)
	}
	return ledger.Transaction{
		ResidentID: p.ResidentID,
		Amount:     p.Amount,
		Timestamp:  timestamp,
		Signature:  signing.EncodeSignature(sig),
	}, nil
}
