// Package persistence writes the account ledger to three JSON artifacts and recovers it,
// falling back to empty state for any artifact that is missing or unreadable.
package persistence

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"copt/engine/actors"
	"copt/engine/library"
	"copt/state/accounts"
	"copt/state/ledger"
)

const (
	ResidentsArtifact = "residents"
	PaymentsArtifact  = "payments"
	LedgerArtifact    = "blockchain"
)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// Save writes residents, payments and the chain. Each artifact is replaced atomically; the three
// together are not. The book is only read.
func (s *Store) Save(book *accounts.Book) error {
	defer library.ValidateSaneExecutionTime()()
	artifacts := []struct {
		name string
		data interface{}
	}{
		{ResidentsArtifact, book.Residents()},
		{PaymentsArtifact, book.ListPayments(nil)},
		{LedgerArtifact, book.Blockchain()},
	}
	for _, a := range artifacts {
		b, err := json.MarshalIndent(a.data, "", "  ")
		if err != nil {
			return fmt.Errorf("%w: encoding %s: %s", library.ErrPersistenceFailure, a.name, err.Error())
		}
		if err = actors.Write(s.dir, a.name, b); err != nil {
			return err
		}
	}
	return nil
}

// LoadOrInitialize recovers the book. It never fails: every artifact that cannot be read is
// replaced by its default and the others are still used.
func (s *Store) LoadOrInitialize() *accounts.Book {
	residents := make(accounts.Mapped)
	if !s.restore(ResidentsArtifact, &residents) || residents == nil {
		residents = make(accounts.Mapped)
	}
	var payments []accounts.Payment
	if !s.restore(PaymentsArtifact, &payments) {
		payments = nil
	}
	chain := &ledger.Chain{}
	ok := s.restore(LedgerArtifact, chain)
	if ok && chain.Len() == 0 {
		library.LogCLI(fmt.Sprintf("%s artifact holds no blocks, starting from genesis", LedgerArtifact), 2)
		ok = false
	}
	if !ok {
		chain = nil
	}
	return accounts.Restore(residents, payments, chain)
}

func (s *Store) restore(db string, into interface{}) bool {
	f, ok := actors.Open(s.dir, db)
	if !ok {
		library.LogCLI(fmt.Sprintf("no %s artifact in %s, starting empty", db, s.dir), 4)
		return false
	}
	defer closeFile(f)
	dec := json.NewDecoder(f)
	if err := dec.Decode(into); err != nil {
		library.LogCLI(fmt.Sprintf("%s artifact is unreadable, starting empty: %s", db, err.Error()), 2)
		return false
	}
	// one document per artifact, anything after it means the file is damaged
	if _, err := dec.Token(); err != io.EOF {
		library.LogCLI(fmt.Sprintf("%s artifact has trailing data, starting empty", db), 2)
		return false
	}
	return true
}

func closeFile(f *os.File) {
	if err := f.Close(); err != nil {
		library.LogCLI(err.Error(), 2)
	}
}
