package quote

import (
	"context"
	"sync"

	"solar-sizer/internal/model"
)

// Store is an append-only, ordered list of quote requests.
type Store interface {
	Append(ctx context.Context, q model.QuoteRequest) error
	List(ctx context.Context) ([]model.QuoteRequest, error)
}

// MemoryStore keeps quotes in process memory. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	quotes []model.QuoteRequest
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, q model.QuoteRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes = append(s.quotes, q)
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.QuoteRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.QuoteRequest{}, s.quotes...), nil
}
