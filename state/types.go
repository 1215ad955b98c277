package state

import (
	"copt/engine/library"
	"copt/state/accounts"
)

// Caller is the identity an outer layer has already authenticated. State trusts it and only
// applies the domain rules on top.
type Caller struct {
	ID   library.ResidentID
	Name string
	Role string
}

func (c Caller) IsAdmin() bool {
	return c.Role == library.RoleAdmin
}

// Registration is what the administrator gets back after adding a resident. SeedWords are not
// stored anywhere and cannot be retrieved again.
type Registration struct {
	Resident  accounts.Resident
	PublicKey string
	SeedWords string
}

type Report struct {
	ID       library.ResidentID `json:"id"`
	Name     string             `json:"name"`
	Wallet   string             `json:"wallet"`
	PayURL   string             `json:"pay_url,omitempty"`
	LNURL    string             `json:"lnurl,omitempty"`
	Balance  library.Amount     `json:"balance"`
	Payments []accounts.Payment `json:"payments"`
}

type BalanceLine struct {
	ID      library.ResidentID `json:"id"`
	Name    string             `json:"name"`
	Balance library.Amount     `json:"balance"`
}
