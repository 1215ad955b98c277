// Package state is the single owner of the account ledger. Every logical operation runs under
// one lock: mutations hold it exclusively through to the save, read projections share it.
package state

import (
	"sync"

	"copt/engine/actors"
	"copt/engine/library"
	"copt/state/accounts"
	"copt/state/persistence"
	"github.com/sasha-s/go-deadlock"
)

type State struct {
	book  *accounts.Book
	store *persistence.Store
	mutex *deadlock.RWMutex
}

// New wraps an existing book. Mutations are persisted through store.
func New(book *accounts.Book, store *persistence.Store) *State {
	return &State{
		book:  book,
		store: store,
		mutex: &deadlock.RWMutex{},
	}
}

// Open recovers the book from store, healing missing or corrupt artifacts to empty state.
func Open(store *persistence.Store) *State {
	return New(store.LoadOrInitialize(), store)
}

// Start runs the ledger mind until terminate is closed, then persists the book one last time
// and marks wg done. It returns once the mind is ready to serve.
func (s *State) Start(terminate <-chan struct{}, wg *sync.WaitGroup) {
	ready := make(chan struct{})
	wg.Add(1)
	go s.run(ready, terminate, wg)
	<-ready
	library.LogCLI("Ledger Mind has started", 4)
}

func (s *State) run(ready chan struct{}, terminate <-chan struct{}, wg *sync.WaitGroup) {
	defer wg.Done()
	close(ready)
	<-terminate
	if err := s.Save(); err != nil {
		library.LogCLI(err.Error(), 1)
	}
	library.LogCLI("Ledger Mind has shut down", 4)
}

// Save persists the current book.
func (s *State) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.store.Save(s.book)
}

// Admin is the caller the local operator acts as.
func Admin() Caller {
	return Caller{
		ID:   actors.AdminID(),
		Name: "admin",
		Role: library.RoleAdmin,
	}
}
