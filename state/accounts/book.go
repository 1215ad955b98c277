// Package accounts keeps the resident registry and the payment log, and builds the signed
// transactions that go onto the ledger.
package accounts

import (
	"fmt"

	"copt/engine/library"
	"copt/state/ledger"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Book is the account ledger: residents, the flat payment log and the chain anchoring it.
// It is not safe for concurrent use; state.State serialises access to it.
type Book struct {
	residents  Mapped
	payments   []Payment
	totals     map[library.ResidentID]library.Amount
	blockchain *ledger.Chain
	keystore   Keystore
}

func NewBook() *Book {
	return Restore(nil, nil, nil)
}

// Restore builds a Book from recovered state. Nil arguments stand for empty state and a
// genesis-only chain.
func Restore(residents Mapped, payments []Payment, chain *ledger.Chain) *Book {
	if residents == nil {
		residents = make(Mapped)
	}
	if payments == nil {
		payments = []Payment{}
	}
	if chain == nil {
		chain = ledger.NewChain()
	}
	b := &Book{
		residents:  residents,
		payments:   payments,
		totals:     make(map[library.ResidentID]library.Amount),
		blockchain: chain,
	}
	b.keystore = &recordKeystore{book: b}
	for _, p := range payments {
		b.totals[p.ResidentID] += p.Amount
	}
	return b
}

// RegisterResident adds r to the registry. An existing id is never overwritten.
func (b *Book) RegisterResident(r Resident) error {
	if _, exists := b.residents[r.ID]; exists {
		return fmt.Errorf("%w: %d", library.ErrDuplicateResident, r.ID)
	}
	b.residents[r.ID] = r
	return nil
}

// RecordPayment appends p to the payment log. Whether the resident exists is the caller's concern.
func (b *Book) RecordPayment(p Payment) {
	b.payments = append(b.payments, p)
	b.totals[p.ResidentID] += p.Amount
}

// BalanceOf is the sum of every payment recorded for id, kept as a running total.
func (b *Book) BalanceOf(id library.ResidentID) library.Amount {
	return b.totals[id]
}

// ScanBalance recomputes BalanceOf from the payment log.
func (b *Book) ScanBalance(id library.ResidentID) library.Amount {
	var total library.Amount
	for _, p := range b.payments {
		if p.ResidentID == id {
			total += p.Amount
		}
	}
	return total
}

func (b *Book) HasResident(id library.ResidentID) bool {
	_, ok := b.residents[id]
	return ok
}

func (b *Book) Resident(id library.ResidentID) (Resident, bool) {
	r, ok := b.residents[id]
	return r, ok
}

// ListResidents returns every resident ordered by id.
func (b *Book) ListResidents() []Resident {
	ids := maps.Keys(b.residents)
	slices.Sort(ids)
	residents := make([]Resident, 0, len(ids))
	for _, id := range ids {
		residents = append(residents, b.residents[id])
	}
	return residents
}

// ListPayments returns payments in the order they were recorded, optionally only those of one
// resident.
func (b *Book) ListPayments(id *library.ResidentID) []Payment {
	payments := []Payment{}
	for _, p := range b.payments {
		if id == nil || p.ResidentID == *id {
			payments = append(payments, p)
		}
	}
	return payments
}

// Residents is a copy of the registry for persistence.
func (b *Book) Residents() Mapped {
	m := make(Mapped, len(b.residents))
	for id, r := range b.residents {
		m[id] = r
	}
	return m
}

func (b *Book) Blockchain() *ledger.Chain {
	return b.blockchain
}
