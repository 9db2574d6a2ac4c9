// Package store holds the persistent backends of the feedback master
// collection.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/valentinpelus/signal/pkg/feedback"
	"github.com/valentinpelus/signal/pkg/types"
)

// FileStore keeps the collection in a single JSON document that is rewritten
// on every change
type FileStore struct {
	filePath string
	logger   *zap.Logger
	data     types.FeedbackStore
	mu       sync.Mutex
}

// NewFileStore creates a file store at filePath. A missing file is treated
// as an empty collection.
func NewFileStore(filePath string, logger *zap.Logger) (*FileStore, error) {
	if filePath == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &FileStore{
		filePath: filePath,
		logger:   logger,
		data:     types.FeedbackStore{Feedbacks: []types.StoredFeedback{}},
	}

	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load returns every valid entry ordered by position
func (s *FileStore) Load(ctx context.Context) ([]feedback.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]feedback.Entry, 0, len(s.data.Feedbacks))
	for _, sf := range s.data.Feedbacks {
		r, err := feedback.Restore(sf.Item)
		if err != nil {
			s.logger.Warn("Skipping invalid feedback record",
				zap.String("id", sf.Item.ID),
				zap.Error(err))
			continue
		}
		entries = append(entries, feedback.Entry{Position: sf.Position, Record: r})
	}
	return entries, nil
}

// Save adds an entry. Saving an id that already exists is a no-op.
func (s *FileStore) Save(ctx context.Context, entry feedback.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sf := range s.data.Feedbacks {
		if sf.Item.ID == entry.Record.ID() {
			return nil
		}
	}

	s.data.Feedbacks = append(s.data.Feedbacks, types.StoredFeedback{
		Position: entry.Position,
		Item:     entry.Record.Item(),
	})
	sort.SliceStable(s.data.Feedbacks, func(i, j int) bool {
		return s.data.Feedbacks[i].Position < s.data.Feedbacks[j].Position
	})

	return s.save()
}

// Delete removes an entry by id
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sf := range s.data.Feedbacks {
		if sf.Item.ID == id {
			s.data.Feedbacks = append(s.data.Feedbacks[:i], s.data.Feedbacks[i+1:]...)
			return s.save()
		}
	}
	return feedback.ErrNotFound
}

// Close is a no-op, every change is already on disk
func (s *FileStore) Close() error {
	return nil
}

// load reads feedback from disk
func (s *FileStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Info("No existing feedback file, starting fresh", zap.String("path", s.filePath))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read feedback file: %w", err)
	}

	if err := json.Unmarshal(data, &s.data); err != nil {
		return fmt.Errorf("failed to parse feedback file %s: %w", s.filePath, err)
	}
	sort.SliceStable(s.data.Feedbacks, func(i, j int) bool {
		return s.data.Feedbacks[i].Position < s.data.Feedbacks[j].Position
	})
	return nil
}

// save writes feedback to disk through a temporary file so a crash never
// leaves a truncated document behind
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), ".feedback-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write feedback: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write feedback: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.filePath); err != nil {
		return fmt.Errorf("failed to replace feedback file: %w", err)
	}
	return nil
}
