package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/reactiverse/core/internal/domain/entities"
)

// Store operation names reported to observers
const (
	OpLoad   = "load"
	OpSave   = "save"
	OpAppend = "append"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Observer is notified after every store operation.
type Observer func(file, op string, err error)

// FileStore persists a JSON array of T in a single file. Every mutation
// rewrites the whole array. Mutations from this process are serialized by mu;
// writers in other processes still race with last-writer-wins semantics.
type FileStore[T any] struct {
	path     string
	mu       sync.Mutex
	observer Observer
}

// NewFileStore creates a store backed by path. The file is created lazily.
func NewFileStore[T any](path string, observer Observer) *FileStore[T] {
	return &FileStore[T]{path: path, observer: observer}
}

// Path returns the backing file path.
func (s *FileStore[T]) Path() string {
	return s.path
}

// LoadAll reads every record. A missing file is created holding an empty
// array; unparsable content yields ErrCorruptStore and is left untouched.
func (s *FileStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.load(ctx)
	s.observe(OpLoad, err)
	return records, err
}

// SaveAll replaces the file content with records.
func (s *FileStore[T]) SaveAll(ctx context.Context, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.save(ctx, records)
	s.observe(OpSave, err)
	return err
}

// Append loads the array, pushes record and saves it back.
func (s *FileStore[T]) Append(ctx context.Context, record T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.append(ctx, record)
	s.observe(OpAppend, err)
	return err
}

func (s *FileStore[T]) append(ctx context.Context, record T) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(ctx, append(records, record))
}

// AppendUnless appends record only when no stored record satisfies conflict.
// The check and the write happen under the same lock.
func (s *FileStore[T]) AppendUnless(ctx context.Context, conflict func(*T) bool, record T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appended, err := s.appendUnless(ctx, conflict, record)
	s.observe(OpAppend, err)
	return appended, err
}

func (s *FileStore[T]) appendUnless(ctx context.Context, conflict func(*T) bool, record T) (bool, error) {
	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	for i := range records {
		if conflict(&records[i]) {
			return false, nil
		}
	}
	return true, s.save(ctx, append(records, record))
}

// UpdateOne applies patch to the first record matching match and saves the
// array. It returns false without writing when nothing matched.
func (s *FileStore[T]) UpdateOne(ctx context.Context, match func(*T) bool, patch func(*T)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found, err := s.updateOne(ctx, match, patch)
	s.observe(OpUpdate, err)
	return found, err
}

func (s *FileStore[T]) updateOne(ctx context.Context, match func(*T) bool, patch func(*T)) (bool, error) {
	records, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	for i := range records {
		if match(&records[i]) {
			patch(&records[i])
			return true, s.save(ctx, records)
		}
	}
	return false, nil
}

// Upsert replaces the first record matching match with record, or appends
// record when none matches. It reports whether an existing record was replaced.
func (s *FileStore[T]) Upsert(ctx context.Context, match func(*T) bool, record T) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replaced, err := s.updateOne(ctx, match, func(t *T) { *t = record })
	if err == nil && !replaced {
		err = s.append(ctx, record)
	}
	s.observe(OpUpdate, err)
	return replaced, err
}

// DeleteWhere drops every matching record and returns how many were removed.
func (s *FileStore[T]) DeleteWhere(ctx context.Context, match func(*T) bool) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.deleteWhere(ctx, match)
	s.observe(OpDelete, err)
	return removed, err
}

func (s *FileStore[T]) deleteWhere(ctx context.Context, match func(*T) bool) (int, error) {
	records, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	kept := records[:0]
	for i := range records {
		if !match(&records[i]) {
			kept = append(kept, records[i])
		}
	}

	removed := len(records) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.save(ctx, kept)
}

// Find returns the first matching record.
func (s *FileStore[T]) Find(ctx context.Context, match func(*T) bool) (T, bool, error) {
	var zero T

	records, err := s.LoadAll(ctx)
	if err != nil {
		return zero, false, err
	}
	for i := range records {
		if match(&records[i]) {
			return records[i], true, nil
		}
	}
	return zero, false, nil
}

// Filter returns every matching record in file order.
func (s *FileStore[T]) Filter(ctx context.Context, match func(*T) bool) ([]T, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for i := range records {
		if match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out, nil
}

// Count returns the number of stored records.
func (s *FileStore[T]) Count(ctx context.Context) (int, error) {
	records, err := s.LoadAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// Ensure creates the file with an empty array when it does not exist.
func (s *FileStore[T]) Ensure(ctx context.Context) error {
	_, err := s.LoadAll(ctx)
	return err
}

func (s *FileStore[T]) load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			records := []T{}
			if err := s.save(ctx, records); err != nil {
				return nil, err
			}
			return records, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	records := []T{}
	if len(bytes.TrimSpace(data)) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", entities.ErrCorruptStore, s.path, err)
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// save writes to a temp file in the same directory and renames it over the
// target, so readers never observe a half-written array.
func (s *FileStore[T]) save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", s.path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync %s: %w", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", s.path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func (s *FileStore[T]) observe(op string, err error) {
	if s.observer != nil {
		s.observer(filepath.Base(s.path), op, err)
	}
}
