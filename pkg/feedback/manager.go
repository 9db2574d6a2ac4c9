package feedback

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/pkg/analysis"
)

// Entry is a record together with its position in the master collection.
// Lower positions come first.
type Entry struct {
	Position int64
	Record   Record
}

// Store persists the master collection
type Store interface {
	// Load returns every entry ordered by position
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entry Entry) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// Stats summarizes the master collection
type Stats struct {
	Total    int `json:"total"`
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// Manager owns the ordered master collection of feedback records
type Manager struct {
	store     Store
	logger    *zap.Logger
	entries   []Entry
	positions map[string]int64
	mu        sync.RWMutex
}

// NewManager creates a manager and loads existing records from store.
// A nil store keeps records in memory only.
func NewManager(ctx context.Context, store Store, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Manager{
		store:     store,
		logger:    logger,
		positions: make(map[string]int64),
	}

	if store == nil {
		return m, nil
	}

	entries, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	for _, e := range entries {
		m.entries = append(m.entries, e)
		m.positions[e.Record.ID()] = e.Position
	}

	logger.Info("Loaded feedback records", zap.Int("count", len(entries)))
	return m, nil
}

// Prepend inserts a record at the front of the collection (manual entry)
func (m *Manager) Prepend(ctx context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos := int64(0)
	if len(m.entries) > 0 {
		pos = m.entries[0].Position - 1
	}
	entry := Entry{Position: pos, Record: r}

	if err := m.persist(ctx, entry); err != nil {
		return err
	}

	m.entries = append([]Entry{entry}, m.entries...)
	m.positions[r.ID()] = pos
	return nil
}

// Append adds records at the end of the collection, in order (bulk import).
// Records persisted before a failure stay in the collection.
func (m *Manager) Append(ctx context.Context, records ...Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		pos := int64(0)
		if len(m.entries) > 0 {
			pos = m.entries[len(m.entries)-1].Position + 1
		}
		entry := Entry{Position: pos, Record: r}

		if err := m.persist(ctx, entry); err != nil {
			return err
		}

		m.entries = append(m.entries, entry)
		m.positions[r.ID()] = pos
	}
	return nil
}

// Remove deletes a record by id
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.positions[id]; !ok {
		return ErrNotFound
	}

	if m.store != nil {
		if err := m.store.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete feedback %s: %w", id, err)
		}
	}

	for i, e := range m.entries {
		if e.Record.ID() == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			break
		}
	}
	delete(m.positions, id)

	m.logger.Info("Removed feedback record", zap.String("id", id))
	return nil
}

// Records returns a snapshot of the collection in order
func (m *Manager) Records() []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Record, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.Record
	}
	return out
}

// Get looks up a record by id
func (m *Manager) Get(id string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.positions[id]; !ok {
		return Record{}, false
	}
	for _, e := range m.entries {
		if e.Record.ID() == id {
			return e.Record, true
		}
	}
	return Record{}, false
}

// Len returns the number of records
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// GetStats returns sentiment counts across the whole collection
func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var stats Stats
	for _, e := range m.entries {
		stats.add(e.Record)
	}
	return stats
}

// CountSentiments returns sentiment counts for records
func CountSentiments(records []Record) Stats {
	var stats Stats
	for _, r := range records {
		stats.add(r)
	}
	return stats
}

func (s *Stats) add(r Record) {
	s.Total++
	switch r.analysis.Sentiment {
	case analysis.SentimentPositive:
		s.Positive++
	case analysis.SentimentNegative:
		s.Negative++
	default:
		s.Neutral++
	}
}

func (m *Manager) persist(ctx context.Context, entry Entry) error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Save(ctx, entry); err != nil {
		return fmt.Errorf("failed to save feedback %s: %w", entry.Record.ID(), err)
	}
	m.logger.Debug("Saved feedback record",
		zap.String("id", entry.Record.ID()),
		zap.Int64("position", entry.Position))
	return nil
}
