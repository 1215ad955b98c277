package accounts

import (
	"fmt"

	"copt/engine/library"
	"copt/engine/signing"
)

// Keystore hands out resident key material. The default implementation reads the base64 key
// stored in the resident record.
type Keystore interface {
	SigningKey(id library.ResidentID) ([]byte, error)
	VerifyingKey(id library.ResidentID) ([]byte, error)
}

type recordKeystore struct {
	book *Book
}

func (k *recordKeystore) SigningKey(id library.ResidentID) ([]byte, error) {
	r, ok := k.book.residents[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", library.ErrResidentNotFound, id)
	}
	return signing.DecodeKey(r.PrivateKey)
}

func (k *recordKeystore) VerifyingKey(id library.ResidentID) ([]byte, error) {
	sk, err := k.SigningKey(id)
	if err != nil {
		return nil, err
	}
	return signing.PublicKeyOf(sk)
}

// SetKeystore replaces the source of key material used to sign and verify transactions.
func (b *Book) SetKeystore(k Keystore) {
	b.keystore = k
}

func (b *Book) Keystore() Keystore {
	return b.keystore
}
