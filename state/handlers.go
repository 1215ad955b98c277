package state

import (
	"fmt"

	"copt/engine/actors"
	"copt/engine/library"
	"copt/state/accounts"
	"copt/state/ledger"
)

// AddResident registers a resident with a freshly generated key. Only administrators may do so.
// If only the save fails, the resident stays registered in memory, the Registration is returned
// together with the error and the next successful save persists it.
func (s *State) AddResident(caller Caller, id library.ResidentID, name, wallet string) (Registration, error) {
	if !caller.IsAdmin() {
		return Registration{}, fmt.Errorf("%w: only administrators can add residents", library.ErrUnauthorized)
	}
	wallet, err := actors.NormalizeWalletRef(wallet)
	if err != nil {
		return Registration{}, err
	}
	key, err := actors.NewResidentKey()
	if err != nil {
		return Registration{}, err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	resident := accounts.Resident{
		ID:         id,
		Name:       name,
		Wallet:     wallet,
		PrivateKey: key.PrivateKey,
	}
	if err = s.book.RegisterResident(resident); err != nil {
		return Registration{}, err
	}
	library.LogCLI(fmt.Sprintf("registered resident %d", id), 4)
	resident.PrivateKey = ""
	reg := Registration{
		Resident:  resident,
		PublicKey: key.PublicKey,
		SeedWords: key.SeedWords,
	}
	if err = s.store.Save(s.book); err != nil {
		return reg, err
	}
	return reg, nil
}

// Charge records a payment of amount from resident id, signs it with the resident's key and
// anchors it in a new block. Residents can only charge themselves.
func (s *State) Charge(caller Caller, id library.ResidentID, amount library.Amount) (ledger.Block, error) {
	if caller.ID != id {
		return ledger.Block{}, fmt.Errorf("%w: resident %d cannot record payments for resident %d", library.ErrUnauthorized, caller.ID, id)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.book.HasResident(id) {
		return ledger.Block{}, fmt.Errorf("%w: %d", library.ErrResidentNotFound, id)
	}
	if balance := s.book.BalanceOf(id); balance+amount < balance {
		return ledger.Block{}, fmt.Errorf("%w: %d would overflow the balance of resident %d", library.ErrInvalidAmount, amount, id)
	}
	payment := accounts.NewPayment(id, amount)
	tx, err := s.book.NewTransaction(payment)
	if err != nil {
		return ledger.Block{}, err
	}
	s.book.RecordPayment(payment)
	block := s.book.Blockchain().Append([]ledger.Transaction{tx})
	library.LogCLI(fmt.Sprintf("resident %d paid %d, block %d %s", id, amount, block.Index, block.Hash), 4)
	if err = s.store.Save(s.book); err != nil {
		return block, err
	}
	return block, nil
}

// Authenticate checks a resident login: the name must match the registered one.
func (s *State) Authenticate(id library.ResidentID, name string) (Caller, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	r, ok := s.book.Resident(id)
	if !ok || r.Name != name {
		return Caller{}, fmt.Errorf("%w: invalid credentials", library.ErrUnauthorized)
	}
	return Caller{ID: r.ID, Name: r.Name, Role: library.RoleUser}, nil
}
