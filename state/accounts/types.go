package accounts

import (
	"time"

	"copt/engine/library"
)

type Resident struct {
	ID         library.ResidentID `json:"id"`
	Name       string             `json:"name"`
	Wallet     string             `json:"wallet"`
	PrivateKey string             `json:"private_key"` // base64, see Keystore
}

// Payment is a charge accepted from a resident. Timestamp is always UTC.
type Payment struct {
	ResidentID library.ResidentID `json:"resident_id"`
	Amount     library.Amount     `json:"amount"`
	Timestamp  time.Time          `json:"timestamp"`
}

// NewPayment stamps a payment with the current time.
func NewPayment(id library.ResidentID, amount library.Amount) Payment {
	return Payment{
		ResidentID: id,
		Amount:     amount,
		Timestamp:  time.Now().UTC(),
	}
}

type Mapped map[library.ResidentID]Resident
