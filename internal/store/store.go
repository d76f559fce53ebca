// Package store implements the single-document JSON file database. The whole
// document is read on every access and rewritten on every mutation; there is
// no indexing and no transaction log. A store-level mutex serializes all
// access so that concurrent requests cannot interleave read-modify-write
// cycles and lose updates.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/campusmerch/store/internal/model"
)

// Data is the full on-disk document.
type Data struct {
	Users    []model.User    `json:"users"`
	Products []model.Product `json:"products"`
	Orders   []model.Order   `json:"orders"`
}

// Store owns the db file. All repositories share one Store so that every
// read and write goes through the same mutex.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a Store backed by the file at path. The file is not touched
// until the first access.
func New(path string) *Store {
	return &Store{path: path}
}

// load reads and parses the document. An absent, empty or unparseable file
// yields a fresh empty document: read failures self-heal, only write
// failures surface to callers.
func (s *Store) load() *Data {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("store: read %s failed, reinitializing: %v", s.path, err)
		}
		return &Data{}
	}
	var d Data
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Printf("store: parse %s failed, reinitializing: %v", s.path, err)
		return &Data{}
	}
	return &d
}

func (s *Store) save(d *Data) error {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", s.path, err)
	}
	return nil
}

// View runs fn against a read-only snapshot of the document.
func (s *Store) View(fn func(*Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.load())
}

// Update runs fn against the document and persists the result when fn
// succeeds. A failing fn leaves the file untouched.
func (s *Store) Update(fn func(*Data) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.load()
	if err := fn(d); err != nil {
		return err
	}
	return s.save(d)
}
