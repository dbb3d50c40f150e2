package changelog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/blueops/fleet-portal/internal/domain"
)

const schemaVersion = "1.0.0"

// recentWindow bounds the Stats recent-activity count.
const recentWindow = 24 * time.Hour

type metadata struct {
	Created      string `json:"created"`
	Version      string `json:"version"`
	TotalEntries int    `json:"total_entries"`
}

type document struct {
	Entries  []domain.ChangelogEntry `json:"entries"`
	Metadata metadata                `json:"metadata"`
}

// Stats aggregates the changelog by level and action. RecentActivity counts
// entries stamped within the trailing 24 hours.
type Stats struct {
	TotalEntries   int            `json:"total_entries"`
	ByLevel        map[string]int `json:"by_level"`
	ByAction       map[string]int `json:"by_action"`
	RecentActivity int            `json:"recent_activity"`
}

// Store is the durable, append-only changelog. Appends are serialized and
// each one persists the whole document synchronously before returning; reads
// may run concurrently with each other.
type Store struct {
	mu     sync.RWMutex
	path   string
	doc    document
	logger zerolog.Logger
}

// Load opens the changelog at path. An absent or unreadable file degrades to
// an empty store; startup never fails on persistence problems.
func Load(path string, logger zerolog.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.doc = document{
		Entries: []domain.ChangelogEntry{},
		Metadata: metadata{
			Created: time.Now().Format(time.RFC3339),
			Version: schemaVersion,
		},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error().Err(NewPersistenceError("load", path, err)).Msg("Error loading changelog, starting empty")
		}
		return s
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Error().Err(NewPersistenceError("load", path, err)).Msg("Corrupt changelog, starting empty")
		return s
	}
	if doc.Entries == nil {
		doc.Entries = []domain.ChangelogEntry{}
	}
	s.doc = doc
	return s
}

// Append records a new entry with the next sequence id and persists the
// store before returning. A failed save is logged; the in-memory entry stays
// authoritative and rides along with the next successful save.
func (s *Store) Append(action, details, actor string, level domain.Level) domain.ChangelogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := domain.ChangelogEntry{
		ID:        len(s.doc.Entries) + 1,
		Timestamp: time.Now().Format(time.RFC3339),
		Action:    action,
		Details:   details,
		Actor:     actor,
		Level:     level,
	}
	s.doc.Entries = append(s.doc.Entries, entry)
	s.doc.Metadata.TotalEntries = len(s.doc.Entries)

	if err := s.save(); err != nil {
		s.logger.Error().Err(err).Msg("Error saving changelog")
	}

	s.logger.Info().Str("action", action).Str("details", details).Msg("Changelog entry added")
	return entry
}

// save writes the whole document. Callers hold the write lock.
func (s *Store) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return NewPersistenceError("save", s.path, err)
		}
	}
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return NewPersistenceError("save", s.path, err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return NewPersistenceError("save", s.path, err)
	}
	return nil
}

// Entries returns changelog entries in append order, filtered by level first
// if level is non-empty, then truncated to the most recent limit entries if
// limit is positive.
func (s *Store) Entries(limit int, level domain.Level) []domain.ChangelogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.doc.Entries
	if level != "" {
		filtered := make([]domain.ChangelogEntry, 0, len(entries))
		for _, e := range entries {
			if e.Level == level {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	if limit > 0 && limit < len(entries) {
		entries = entries[len(entries)-limit:]
	}

	out := make([]domain.ChangelogEntry, len(entries))
	copy(out, entries)
	return out
}

// Len reports the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.doc.Entries)
}

// GetStats aggregates the changelog. Entries with unparseable timestamps are
// excluded from the recent-activity count, never fatal.
func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalEntries: len(s.doc.Entries),
		ByLevel:      make(map[string]int),
		ByAction:     make(map[string]int),
	}
	cutoff := time.Now().Add(-recentWindow)
	for _, e := range s.doc.Entries {
		stats.ByLevel[string(e.Level)]++
		stats.ByAction[e.Action]++
		if ts, err := time.Parse(time.RFC3339, e.Timestamp); err == nil && ts.After(cutoff) {
			stats.RecentActivity++
		}
	}
	return stats
}

// Metadata returns the store's creation timestamp and schema version.
func (s *Store) Metadata() (created, version string, total int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Metadata.Created, s.doc.Metadata.Version, s.doc.Metadata.TotalEntries
}
