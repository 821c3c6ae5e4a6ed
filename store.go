package tracker

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const (
	unitsFile      = "units.json"
	ordersFile     = "orders.json"
	investmentFile = "daychange.json"
	backupSuffix   = ".bak"
)

// Store persists the three ledger documents in a data directory. Reads are
// resilient: a missing or corrupt document falls back to its backup copy,
// then to an empty default, and a parse error is never propagated. Writes
// are whole-document: the previous content is moved to the backup copy,
// then the new content lands via a temp file rename.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) the data directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string   { return filepath.Join(s.dir, name) }
func (s *Store) backup(name string) string { return filepath.Join(s.dir, name+backupSuffix) }

// Load reads the three documents. They live in independent files, so the
// reads fan out on goroutines and join before returning.
func (s *Store) Load() (*Ledger, *InvestmentData) {
	ledger := NewLedger()
	inv := NewInvestmentData()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		ledger.Holdings = loadDocument(s, unitsFile, DecodeHoldings, make(Holdings))
	}()
	go func() {
		defer wg.Done()
		ledger.Orders = loadDocument(s, ordersFile, DecodeOrders, make(Orders))
	}()
	go func() {
		defer wg.Done()
		inv = loadDocument(s, investmentFile, DecodeInvestmentData, NewInvestmentData())
	}()
	wg.Wait()
	return ledger, inv
}

// loadDocument decodes one document, falling back to the backup copy and
// then to the given zero value. Decode problems are logged, never returned.
func loadDocument[T any](s *Store, name string, decode func(io.Reader) (T, error), zero T) T {
	for _, path := range []string{s.path(name), s.backup(name)} {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		doc, err := decode(f)
		f.Close()
		if err != nil {
			log.Printf("store: %s is corrupt, trying next fallback: %v", path, err)
			continue
		}
		return doc
	}
	return zero
}

// SaveHoldings rewrites the units document.
func (s *Store) SaveHoldings(h Holdings) error {
	return saveDocument(s, unitsFile, func(w io.Writer) error { return EncodeHoldings(w, h) })
}

// SaveOrders rewrites the pending orders document.
func (s *Store) SaveOrders(o Orders) error {
	return saveDocument(s, ordersFile, func(w io.Writer) error { return EncodeOrders(w, o) })
}

// SaveInvestmentData rewrites the investment aggregate document.
func (s *Store) SaveInvestmentData(inv *InvestmentData) error {
	return saveDocument(s, investmentFile, func(w io.Writer) error { return EncodeInvestmentData(w, inv) })
}

// saveDocument keeps one level of rollback: the current content becomes
// the backup copy, then the new content is written to a temp file and
// renamed into place so a crash never leaves a half-written document.
func saveDocument(s *Store, name string, encode func(io.Writer) error) error {
	current := s.path(name)
	if _, err := os.Stat(current); err == nil {
		if err := os.Rename(current, s.backup(name)); err != nil {
			return fmt.Errorf("cannot back up %s: %w", name, err)
		}
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := encode(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot encode %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), current)
}
