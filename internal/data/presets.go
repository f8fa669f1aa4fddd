package data

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"solar-sizer/internal/config"
	"solar-sizer/internal/model"
)

var ErrPresetNotFound = errors.New("market preset not found")

// MarketPreset is one market file from the presets directory, merged onto the
// built-in defaults.
type MarketPreset struct {
	ID     string             `json:"id"`
	File   string             `json:"file"`
	Market model.MarketParams `json:"-"`
}

// DefaultMarketsDir returns the presets directory: MARKETS_DIR if set,
// otherwise examples/markets under the working directory.
func DefaultMarketsDir() string {
	if dir := os.Getenv("MARKETS_DIR"); dir != "" {
		return dir
	}
	return filepath.Join("examples", "markets")
}

// ListMarketPresets loads every *.yaml file in dir, sorted by id.
// A missing directory yields an empty list; unreadable or invalid files are
// skipped with a warning.
func ListMarketPresets(dir string) ([]MarketPreset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []MarketPreset{}, nil
		}
		return nil, fmt.Errorf("failed to read market presets: %w", err)
	}

	presets := []MarketPreset{}
	for _, entry := range entries {
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}
		p, err := loadPreset(filepath.Join(dir, entry.Name()))
		if err != nil {
			slog.Warn("skipping market preset", "file", entry.Name(), "error", err)
			continue
		}
		presets = append(presets, p)
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })
	return presets, nil
}

// LoadMarketPreset loads dir/<id>.yaml (or .yml).
func LoadMarketPreset(dir, id string) (MarketPreset, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return MarketPreset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, id)
	}
	for _, ext := range []string{".yaml", ".yml"} {
		path := filepath.Join(dir, id+ext)
		if _, err := os.Stat(path); err == nil {
			return loadPreset(path)
		}
	}
	return MarketPreset{}, fmt.Errorf("%w: %q", ErrPresetNotFound, id)
}

func loadPreset(path string) (MarketPreset, error) {
	loaded, err := config.LoadMarketFile(path)
	if err != nil {
		return MarketPreset{}, err
	}
	market := config.MergeMarket(config.FromModelParams(model.DefaultMarket()), loaded).ToModelParams()
	if err := market.Validate(); err != nil {
		return MarketPreset{}, fmt.Errorf("market preset %s invalid: %w", filepath.Base(path), err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if market.Name == "" {
		market.Name = id
	}
	return MarketPreset{ID: id, File: path, Market: market}, nil
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
