package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/reactiverse/core/internal/adapters/repository"
	"github.com/reactiverse/core/internal/domain/entities"
	"github.com/reactiverse/core/internal/infrastructure/config"
)

// DB groups the JSON record files that make up the application's storage
type DB struct {
	Users   *repository.FileStore[entities.User]
	Admins  *repository.FileStore[entities.AdminUser]
	Designs *repository.FileStore[entities.Design]
	Pages   *repository.FileStore[entities.PageContent]

	config config.StoreConfig
}

// FileStatus describes one record file for health and CLI output
type FileStatus struct {
	File     string    `json:"file"`
	Path     string    `json:"path"`
	Exists   bool      `json:"exists"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified,omitempty"`
	Records  int       `json:"records"`
	Error    string    `json:"error,omitempty"`
}

// New opens the record files under cfg.Dir. Files are created on first use.
func New(cfg config.StoreConfig, observer repository.Observer) (*DB, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	return &DB{
		Users:   repository.NewFileStore[entities.User](cfg.UsersPath(), observer),
		Admins:  repository.NewFileStore[entities.AdminUser](cfg.AdminsPath(), observer),
		Designs: repository.NewFileStore[entities.Design](cfg.DesignsPath(), observer),
		Pages:   repository.NewFileStore[entities.PageContent](cfg.PagesPath(), observer),
		config:  cfg,
	}, nil
}

// Dir returns the store directory
func (db *DB) Dir() string {
	return db.config.Dir
}

// Init creates every missing record file with an empty array
func (db *DB) Init(ctx context.Context) error {
	ensure := []func(context.Context) error{
		db.Users.Ensure,
		db.Admins.Ensure,
		db.Designs.Ensure,
		db.Pages.Ensure,
	}
	for _, fn := range ensure {
		if err := fn(ctx); err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
	}
	return nil
}

// Close is a no-op kept for lifecycle symmetry with other resources
func (db *DB) Close() error {
	return nil
}

// Ping verifies the store directory accepts writes
func (db *DB) Ping() error {
	probe, err := os.CreateTemp(db.config.Dir, ".ready-*")
	if err != nil {
		return fmt.Errorf("store directory not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	return os.Remove(name)
}

// HealthCheck checks that the directory is writable and every existing file parses
func (db *DB) HealthCheck(ctx context.Context) error {
	if err := db.Ping(); err != nil {
		return err
	}

	for _, st := range db.Status(ctx) {
		if st.Error != "" {
			return fmt.Errorf("store health check failed: %s: %s", st.File, st.Error)
		}
	}
	return nil
}

// Status reports size and record count of each file without creating missing ones
func (db *DB) Status(ctx context.Context) []FileStatus {
	return []FileStatus{
		status(ctx, db.config.UsersFile, db.Users),
		status(ctx, db.config.AdminsFile, db.Admins),
		status(ctx, db.config.DesignsFile, db.Designs),
		status(ctx, db.config.PagesFile, db.Pages),
	}
}

// GetConnectionInfo returns store statistics for the detailed health endpoint
func (db *DB) GetConnectionInfo(ctx context.Context) map[string]interface{} {
	files := make(map[string]interface{})
	for _, st := range db.Status(ctx) {
		files[st.File] = map[string]interface{}{
			"exists":  st.Exists,
			"size":    st.Size,
			"records": st.Records,
		}
	}

	return map[string]interface{}{
		"dir":   db.config.Dir,
		"files": files,
	}
}

type counter interface {
	Path() string
	Count(ctx context.Context) (int, error)
}

func status(ctx context.Context, file string, store counter) FileStatus {
	st := FileStatus{File: file, Path: store.Path()}

	info, err := os.Stat(store.Path())
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			st.Error = err.Error()
		}
		return st
	}

	st.Exists = true
	st.Size = info.Size()
	st.Modified = info.ModTime().UTC()

	n, err := store.Count(ctx)
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Records = n
	return st
}
