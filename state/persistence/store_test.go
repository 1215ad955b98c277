package persistence

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"copt/engine/library"
	"copt/engine/signing"
	"copt/state/accounts"
	"copt/state/ledger"
)

func populatedBook(t *testing.T) *accounts.Book {
	t.Helper()
	b := accounts.NewBook()
	for i, name := range []string{"Ana", "Beto", "Caro"} {
		key := make([]byte, signing.PrivateKeySize)
		key[31] = byte(i + 1)
		r := accounts.Resident{ID: library.ResidentID(i + 1), Name: name, Wallet: "w" + name, PrivateKey: signing.EncodeKey(key)}
		if err := b.RegisterResident(r); err != nil {
			t.Fatal(err)
		}
	}
	for _, charge := range []struct {
		id     library.ResidentID
		amount library.Amount
	}{{1, 500}, {2, 250}, {1, 300}} {
		p := accounts.NewPayment(charge.id, charge.amount)
		b.RecordPayment(p)
		tx, err := b.NewTransaction(p)
		if err != nil {
			t.Fatal(err)
		}
		b.Blockchain().Append([]ledger.Transaction{tx})
	}
	return b
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())
	book := populatedBook(t)
	if err := store.Save(book); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded := store.LoadOrInitialize()
	if !reflect.DeepEqual(loaded.Residents(), book.Residents()) {
		t.Errorf("residents differ after round trip:\n%+v\n%+v", loaded.Residents(), book.Residents())
	}
	if !reflect.DeepEqual(loaded.ListPayments(nil), book.ListPayments(nil)) {
		t.Errorf("payments differ after round trip:\n%+v\n%+v", loaded.ListPayments(nil), book.ListPayments(nil))
	}
	if !reflect.DeepEqual(loaded.Blockchain().Blocks, book.Blockchain().Blocks) {
		t.Errorf("chain differs after round trip")
	}
	if loaded.BalanceOf(1) != 800 || loaded.BalanceOf(2) != 250 {
		t.Errorf("unexpected balances after load: %d %d", loaded.BalanceOf(1), loaded.BalanceOf(2))
	}
	if err := ledger.Verify(loaded.Blockchain()); err != nil {
		t.Errorf("loaded chain failed verification: %v", err)
	}
	if err := ledger.VerifySignatures(loaded.Blockchain(), loaded.Keystore().VerifyingKey); err != nil {
		t.Errorf("loaded chain failed signature audit: %v", err)
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	book := NewStore(t.TempDir()).LoadOrInitialize()
	if len(book.ListResidents()) != 0 || len(book.ListPayments(nil)) != 0 {
		t.Fatal("expected empty registry and payment log")
	}
	if book.Blockchain().Len() != 1 {
		t.Fatalf("expected genesis-only chain, got %d blocks", book.Blockchain().Len())
	}
}

func TestLoadToleratesPartialCorruption(t *testing.T) {
	cases := []struct {
		name     string
		artifact string
		damage   func(path string) error
	}{
		{"payments deleted", PaymentsArtifact, os.Remove},
		{"payments garbage", PaymentsArtifact, func(p string) error { return os.WriteFile(p, []byte("{not json"), 0644) }},
		{"payments truncated", PaymentsArtifact, truncate},
		{"residents garbage", ResidentsArtifact, func(p string) error { return os.WriteFile(p, []byte("[1,2,3]"), 0644) }},
		{"ledger garbage", LedgerArtifact, func(p string) error { return os.WriteFile(p, []byte("\x00\x01"), 0644) }},
		{"ledger without blocks", LedgerArtifact, func(p string) error { return os.WriteFile(p, []byte(`{"chain": []}`), 0644) }},
		{"ledger trailing data", LedgerArtifact, appendGarbage},
		{"residents trailing data", ResidentsArtifact, appendGarbage},
		{"payments second document", PaymentsArtifact, func(p string) error { return appendBytes(p, []byte("\n[]")) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			store := NewStore(dir)
			book := populatedBook(t)
			if err := store.Save(book); err != nil {
				t.Fatal(err)
			}
			if err := tc.damage(filepath.Join(dir, tc.artifact+".json")); err != nil {
				t.Fatal(err)
			}
			loaded := store.LoadOrInitialize()

			if tc.artifact == ResidentsArtifact {
				if len(loaded.ListResidents()) != 0 {
					t.Errorf("expected empty registry, got %d residents", len(loaded.ListResidents()))
				}
			} else if !reflect.DeepEqual(loaded.Residents(), book.Residents()) {
				t.Errorf("residents should be intact")
			}

			if tc.artifact == PaymentsArtifact {
				if len(loaded.ListPayments(nil)) != 0 || loaded.BalanceOf(1) != 0 {
					t.Errorf("expected empty payment log")
				}
			} else if !reflect.DeepEqual(loaded.ListPayments(nil), book.ListPayments(nil)) {
				t.Errorf("payments should be intact")
			}

			if tc.artifact == LedgerArtifact {
				if loaded.Blockchain().Len() != 1 {
					t.Errorf("expected genesis-only chain, got %d blocks", loaded.Blockchain().Len())
				}
			} else if !reflect.DeepEqual(loaded.Blockchain().Blocks, book.Blockchain().Blocks) {
				t.Errorf("chain should be intact")
			}
		})
	}
}

func appendGarbage(path string) error {
	return appendBytes(path, []byte("GARBAGE"))
}

func appendBytes(path string, extra []byte) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, extra...), 0644)
}

func truncate(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b[:len(b)/2], 0644)
}

func TestSaveLeavesNoTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	book := populatedBook(t)
	for i := 0; i < 3; i++ {
		if err := store.Save(book); err != nil {
			t.Fatal(err)
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"blockchain.json", "payments.json", "residents.json"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("unexpected directory contents %v", names)
	}
}

func TestSaveFailureLeavesBookIntact(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewStore(filepath.Join(blocker, "data"))
	book := populatedBook(t)
	err := store.Save(book)
	if !errors.Is(err, library.ErrPersistenceFailure) {
		t.Fatalf("expected ErrPersistenceFailure, got %v", err)
	}
	if book.BalanceOf(1) != 800 || book.Blockchain().Len() != 4 {
		t.Fatal("failed save changed the in-memory book")
	}
	retry := NewStore(filepath.Join(dir, "data"))
	if err := retry.Save(book); err != nil {
		t.Fatalf("retry save: %v", err)
	}
}
