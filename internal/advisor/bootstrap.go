package advisor

import (
	"context"
	"fmt"
	"log/slog"

	"solar-sizer/internal/config"
	"solar-sizer/internal/data"
	"solar-sizer/internal/quote"
)

// OpenStore creates the quote store selected by the config. The returned
// close function is never nil.
func OpenStore(ctx context.Context, q config.QuotesConfig) (quote.Store, func() error, error) {
	noop := func() error { return nil }
	switch q.Backend {
	case config.BackendFile, "":
		slog.Info("quote store", "backend", config.BackendFile, "file", q.File)
		return quote.NewFileStore(q.File), noop, nil
	case config.BackendMemory:
		slog.Info("quote store", "backend", config.BackendMemory)
		return quote.NewMemoryStore(), noop, nil
	case config.BackendRedis:
		rs := quote.NewRedisStore(q.RedisAddr, q.RedisKey)
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, noop, fmt.Errorf("connect to redis at %s: %w", q.RedisAddr, err)
		}
		slog.Info("quote store", "backend", config.BackendRedis, "addr", q.RedisAddr, "key", q.RedisKey)
		return rs, rs.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown quote backend %q", q.Backend)
	}
}

// FromConfig loads the vendor catalog, opens the quote store and builds the
// advisor for the configured market.
func FromConfig(ctx context.Context, cfg *config.Config) (*Advisor, func() error, error) {
	noop := func() error { return nil }

	catalog, err := data.LoadCatalog(cfg.Catalog.File)
	if err != nil {
		return nil, noop, err
	}
	slog.Info("vendor catalog loaded", "file", cfg.Catalog.File, "vendors", len(catalog))

	store, closeStore, err := OpenStore(ctx, cfg.Quotes)
	if err != nil {
		return nil, noop, err
	}

	a, err := New(cfg.MarketParams(), catalog, store)
	if err != nil {
		closeStore()
		return nil, noop, err
	}
	return a, closeStore, nil
}
