package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync"

	"solar-sizer/internal/advisor"
	"solar-sizer/internal/api/models"
	"solar-sizer/internal/data"

	"github.com/gin-gonic/gin"
)

// MarketHandler resolves the market a request asks for and serves
// GET /api/v1/markets. Advisors for presets are built once and cached.
type MarketHandler struct {
	base       *advisor.Advisor
	marketsDir string

	mu    sync.RWMutex
	cache map[string]*advisor.Advisor
}

// NewMarketHandler creates a market handler over the presets in marketsDir.
func NewMarketHandler(base *advisor.Advisor, marketsDir string) *MarketHandler {
	if abs, err := filepath.Abs(marketsDir); err == nil {
		marketsDir = abs
	}
	slog.Info("market presets directory", "dir", marketsDir)
	return &MarketHandler{
		base:       base,
		marketsDir: marketsDir,
		cache:      map[string]*advisor.Advisor{},
	}
}

// Advisor returns the advisor for preset id, or the configured market when id is empty.
func (h *MarketHandler) Advisor(id string) (*advisor.Advisor, error) {
	if id == "" {
		return h.base, nil
	}

	h.mu.RLock()
	a, ok := h.cache[id]
	h.mu.RUnlock()
	if ok {
		return a, nil
	}

	preset, err := data.LoadMarketPreset(h.marketsDir, id)
	if err != nil {
		return nil, err
	}
	a, err = h.base.WithMarket(preset.Market)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.cache[id]; ok {
		return existing, nil
	}
	h.cache[id] = a
	return a, nil
}

// ListMarkets handles GET /api/v1/markets
func (h *MarketHandler) ListMarkets(c *gin.Context) {
	presets, err := data.ListMarketPresets(h.marketsDir)
	if err != nil {
		slog.Error("failed to list market presets", "dir", h.marketsDir, "error", err)
		c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternal, "Failed to list market presets", nil))
		return
	}

	current := h.base.Market()
	markets := make([]models.MarketInfo, 0, len(presets))
	for _, p := range presets {
		markets = append(markets, models.NewMarketInfo(p.ID, p.File, p.Market))
	}
	c.JSON(http.StatusOK, gin.H{
		"default": models.NewMarketInfo("", "", current),
		"markets": markets,
	})
}

// resolve writes a 400 and returns false when the requested market is unknown.
func (h *MarketHandler) resolve(c *gin.Context, id string) (*advisor.Advisor, bool) {
	a, err := h.Advisor(id)
	if err == nil {
		return a, true
	}
	if errors.Is(err, data.ErrPresetNotFound) {
		c.JSON(http.StatusBadRequest, models.NewError(models.CodeUnknownMarket, err.Error(), map[string]interface{}{
			"market": id,
		}))
		return nil, false
	}
	slog.Error("failed to load market preset", "market", id, "error", err)
	c.JSON(http.StatusInternalServerError, models.NewError(models.CodeInternal, "Failed to load market preset", nil))
	return nil, false
}
