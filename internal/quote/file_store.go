package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"solar-sizer/internal/data"
	"solar-sizer/internal/model"
)

// FileStore persists quotes as one JSON array document.
//
// Every append reads the whole document, adds the record and rewrites it.
// Appends are serialized by a mutex, so one FileStore must be the only writer
// of its file; two processes sharing a file can still lose updates.
type FileStore struct {
	path string
	now  func() time.Time

	mu sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Append(ctx context.Context, q model.QuoteRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, raw, err := s.read()
	if err != nil {
		return err
	}
	if raw != nil {
		s.backup(raw)
	}
	quotes = append(quotes, q)
	if err := data.WriteJSON(s.path, quotes); err != nil {
		return fmt.Errorf("write quote store: %w", err)
	}
	return nil
}

// List returns the stored quotes. A corrupt document reads as empty and is
// left in place until the next Append replaces it.
func (s *FileStore) List(ctx context.Context) ([]model.QuoteRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	quotes, raw, err := s.read()
	if err != nil {
		return nil, err
	}
	if raw != nil {
		slog.Warn("quote store is corrupt; listing as empty", "path", s.path)
	}
	return quotes, nil
}

// read returns the stored quotes. A missing or empty file is an empty list.
// For a malformed document the list is empty and corrupt holds its bytes.
func (s *FileStore) read() (quotes []model.QuoteRequest, corrupt []byte, err error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.QuoteRequest{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read quote store: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return []model.QuoteRequest{}, nil, nil
	}

	if err := json.Unmarshal(raw, &quotes); err != nil {
		slog.Debug("quote store does not decode", "path", s.path, "error", err)
		return []model.QuoteRequest{}, raw, nil
	}
	if quotes == nil {
		quotes = []model.QuoteRequest{}
	}
	return quotes, nil, nil
}

// backup copies a corrupt document to <path>.corrupt-<unix> before it is
// overwritten. A failed backup is logged and the append proceeds.
func (s *FileStore) backup(raw []byte) {
	backup := fmt.Sprintf("%s.corrupt-%d", s.path, s.now().Unix())
	if err := os.WriteFile(backup, raw, 0644); err != nil {
		slog.Warn("quote store is corrupt and could not be backed up; starting a new list",
			"path", s.path, "error", err)
		return
	}
	slog.Warn("quote store is corrupt; previous contents preserved, starting a new list",
		"path", s.path, "backup", backup)
}
