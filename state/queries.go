package state

import (
	"fmt"
	"strings"

	"copt/engine/actors"
	"copt/engine/library"
	"copt/state/accounts"
	"copt/state/ledger"
)

// Report is a resident's own balance and payment history.
func (s *State) Report(caller Caller, id library.ResidentID) (Report, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	r, ok := s.book.Resident(id)
	if !ok || id != caller.ID {
		return Report{}, fmt.Errorf("%w: %d", library.ErrResidentNotFound, id)
	}
	report := Report{
		ID:       r.ID,
		Name:     r.Name,
		Wallet:   r.Wallet,
		Balance:  s.book.BalanceOf(id),
		Payments: s.book.ListPayments(&id),
	}
	if url, ok := actors.WalletPayURL(r.Wallet); ok {
		report.PayURL = url
	}
	if strings.Contains(r.Wallet, "@") {
		if lud06, ok := actors.Lud16ToLud06(r.Wallet); ok {
			report.LNURL = lud06
		}
	}
	return report, nil
}

// Summary lists every resident with their balance, ordered by id.
func (s *State) Summary() []BalanceLine {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	lines := []BalanceLine{}
	for _, r := range s.book.ListResidents() {
		lines = append(lines, BalanceLine{ID: r.ID, Name: r.Name, Balance: s.book.BalanceOf(r.ID)})
	}
	return lines
}

// Residents lists the registry without key material.
func (s *State) Residents() []accounts.Resident {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	residents := s.book.ListResidents()
	for i := range residents {
		residents[i].PrivateKey = ""
	}
	return residents
}

// Chain is a snapshot of every block.
func (s *State) Chain() []ledger.Block {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.book.Blockchain().Copy()
}

// VerifyChain checks hash linkage and then every transaction signature. It is never run
// implicitly.
func (s *State) VerifyChain() error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := ledger.Verify(s.book.Blockchain()); err != nil {
		return err
	}
	return ledger.VerifySignatures(s.book.Blockchain(), s.book.Keystore().VerifyingKey)
}
