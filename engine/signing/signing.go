// Package signing signs and verifies the canonical payment message with a resident's key.
//
// Keys are 32-byte secp256k1 scalars and signatures are 64-byte BIP-340 Schnorr signatures over
// the SHA-256 digest of the message. Both travel as standard base64 in persisted documents.
package signing

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"copt/engine/library"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

const (
	PrivateKeySize = btcec.PrivKeyBytesLen
	PublicKeySize  = schnorr.PubKeyBytesLen
	SignatureSize  = schnorr.SignatureSize
)

// CanonicalMessage is the exact payload signed for a payment: "{id}:{amount}:{timestamp}".
func CanonicalMessage(id library.ResidentID, amount library.Amount, timestamp uint64) string {
	return strconv.FormatUint(uint64(id), 10) + ":" +
		strconv.FormatUint(amount, 10) + ":" +
		strconv.FormatUint(timestamp, 10)
}

func parsePrivateKey(privateKey []byte) (*btcec.PrivateKey, error) {
	if len(privateKey) != PrivateKeySize {
		return nil, fmt.Errorf("%w: private key is %d bytes, want %d", library.ErrInvalidKey, len(privateKey), PrivateKeySize)
	}
	// PrivKeyFromBytes reduces modulo the group order, so out of range keys are caught here
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(privateKey); overflow {
		return nil, fmt.Errorf("%w: private key is not below the curve order", library.ErrInvalidKey)
	}
	if scalar.IsZero() {
		return nil, fmt.Errorf("%w: private key is zero", library.ErrInvalidKey)
	}
	sk, _ := btcec.PrivKeyFromBytes(privateKey)
	return sk, nil
}

// Sign returns the 64-byte signature of message under privateKey.
func Sign(privateKey []byte, message string) ([]byte, error) {
	sk, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	sig, err := schnorr.Sign(sk, library.Sha256Digest(message))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", library.ErrSignatureFailure, err.Error())
	}
	return sig.Serialize(), nil
}

// Verify reports whether signature is a valid signature of message under publicKey.
func Verify(publicKey []byte, message string, signature []byte) bool {
	if len(publicKey) != PublicKeySize || len(signature) != SignatureSize {
		return false
	}
	pk, err := schnorr.ParsePubKey(publicKey)
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(library.Sha256Digest(message), pk)
}

// PublicKeyOf derives the 32-byte x-only public key of privateKey.
func PublicKeyOf(privateKey []byte) ([]byte, error) {
	sk, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	return schnorr.SerializePubKey(sk.PubKey()), nil
}

func EncodeKey(key []byte) string {
	return base64.StdEncoding.EncodeToString(key)
}

// DecodeKey decodes a base64 key as stored in a resident record.
func DecodeKey(encoded string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", library.ErrInvalidKey, err.Error())
	}
	return b, nil
}

func EncodeSignature(signature []byte) string {
	return base64.StdEncoding.EncodeToString(signature)
}

func DecodeSignature(encoded string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", library.ErrSignatureFailure, err.Error())
	}
	return b, nil
}
