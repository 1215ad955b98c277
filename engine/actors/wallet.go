package actors

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"copt/engine/library"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/nbd-wtf/go-nostr/nip06"
)

// NewResidentKey generates a signing key for a new resident. The key is derived from fresh
// BIP-39 seed words so the administrator can hand the words to the resident as a backup.
func NewResidentKey() (library.KeyMaterial, error) {
	seedWords, err := nip06.GenerateSeedWords()
	if err != nil {
		return library.KeyMaterial{}, fmt.Errorf("%w: %s", library.ErrInvalidKey, err.Error())
	}
	return ResidentKeyFromSeedWords(seedWords)
}

// ResidentKeyFromSeedWords rebuilds the key NewResidentKey derived from the same words.
func ResidentKeyFromSeedWords(seedWords string) (library.KeyMaterial, error) {
	seed := nip06.SeedFromWords(seedWords)
	sk, err := nip06.PrivateKeyFromSeed(seed)
	if err != nil {
		return library.KeyMaterial{}, fmt.Errorf("%w: %s", library.ErrInvalidKey, err.Error())
	}
	keyb, err := hex.DecodeString(sk)
	if err != nil {
		return library.KeyMaterial{}, fmt.Errorf("%w: decoding key from hex: %s", library.ErrInvalidKey, err.Error())
	}
	if len(keyb) != btcec.PrivKeyBytesLen {
		return library.KeyMaterial{}, fmt.Errorf("%w: derived key is %d bytes", library.ErrInvalidKey, len(keyb))
	}
	_, pubkey := btcec.PrivKeyFromBytes(keyb)
	return library.KeyMaterial{
		PrivateKey: base64.StdEncoding.EncodeToString(keyb),
		PublicKey:  base64.StdEncoding.EncodeToString(schnorr.SerializePubKey(pubkey)),
		SeedWords:  seedWords,
	}, nil
}
