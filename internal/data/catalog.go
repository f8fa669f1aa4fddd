package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"solar-sizer/internal/model"

	"gopkg.in/yaml.v3"
)

// catalogWrapper is the keyed form of a catalog file (`vendors: [...]`).
type catalogWrapper struct {
	Vendors []model.Vendor `json:"vendors" yaml:"vendors"`
}

// LoadCatalog reads a vendor catalog from a .json, .yaml or .yml file.
// Both a top-level list and a `vendors:` key are accepted.
func LoadCatalog(path string) ([]model.Vendor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vendor catalog: %w", err)
	}

	var vendors []model.Vendor
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		vendors, err = decodeJSONCatalog(raw)
	case ".yaml", ".yml":
		vendors, err = decodeYAMLCatalog(raw)
	default:
		return nil, fmt.Errorf("unsupported vendor catalog format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse vendor catalog %s: %w", path, err)
	}
	if err := checkCatalog(vendors); err != nil {
		return nil, fmt.Errorf("vendor catalog %s: %w", path, err)
	}
	return vendors, nil
}

func decodeJSONCatalog(raw []byte) ([]model.Vendor, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var vendors []model.Vendor
		err := json.Unmarshal(trimmed, &vendors)
		return vendors, err
	}
	var w catalogWrapper
	err := json.Unmarshal(trimmed, &w)
	return w.Vendors, err
}

func decodeYAMLCatalog(raw []byte) ([]model.Vendor, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].Kind == yaml.SequenceNode {
		var vendors []model.Vendor
		err := node.Decode(&vendors)
		return vendors, err
	}
	var w catalogWrapper
	err := node.Decode(&w)
	return w.Vendors, err
}

// checkCatalog rejects entries the matcher cannot reason about.
func checkCatalog(vendors []model.Vendor) error {
	seen := make(map[string]bool, len(vendors))
	for i, v := range vendors {
		if v.ID == "" {
			return fmt.Errorf("vendor[%d]: id is required", i)
		}
		if seen[v.ID] {
			return fmt.Errorf("vendor[%d]: duplicate id %q", i, v.ID)
		}
		seen[v.ID] = true
		if v.SystemSizeMinKW < 0 || v.SystemSizeMaxKW < v.SystemSizeMinKW {
			return fmt.Errorf("vendor %s: system size range %v-%v is invalid", v.ID, v.SystemSizeMinKW, v.SystemSizeMaxKW)
		}
	}
	return nil
}

// SaveCatalog writes vendors to path as a keyed YAML or JSON catalog,
// chosen by extension. The catalog is checked before anything is written.
func SaveCatalog(path string, vendors []model.Vendor) error {
	if err := checkCatalog(vendors); err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return WriteJSON(path, catalogWrapper{Vendors: vendors})
	case ".yaml", ".yml":
		raw, err := yaml.Marshal(catalogWrapper{Vendors: vendors})
		if err != nil {
			return fmt.Errorf("failed to marshal vendor catalog: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
		return writeFileAtomic(path, raw)
	default:
		return fmt.Errorf("unsupported vendor catalog format %q", filepath.Ext(path))
	}
}

// MergeCatalog overlays updates onto seed by vendor id. Updated entries
// replace seed entries in place; new ids are appended in update order.
func MergeCatalog(seed, updates []model.Vendor) (merged []model.Vendor, added, replaced int) {
	index := make(map[string]int, len(seed))
	merged = make([]model.Vendor, 0, len(seed)+len(updates))
	for _, v := range seed {
		index[v.ID] = len(merged)
		merged = append(merged, v)
	}
	for _, v := range updates {
		if i, ok := index[v.ID]; ok {
			merged[i] = v
			replaced++
			continue
		}
		index[v.ID] = len(merged)
		merged = append(merged, v)
		added++
	}
	return merged, added, replaced
}
