package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/anyulbade/card-fee-simulator/internal/model"
)

// CatalogFile is the deployment's provider/brand/source layout.
type CatalogFile struct {
	Mode      string            `yaml:"mode" toml:"mode" json:"mode"`
	Providers []ProviderSources `yaml:"providers" toml:"providers" json:"providers"`

	// Dir is the directory of the file, used to resolve relative locators.
	Dir string `yaml:"-" toml:"-" json:"-"`
}

type ProviderSources struct {
	Name   string            `yaml:"name" toml:"name" json:"name"`
	Brands map[string]string `yaml:"brands" toml:"brands" json:"brands"`
}

// LoadCatalogFile parses a TOML, YAML or JSON catalog file by extension.
func LoadCatalogFile(path string) (*CatalogFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("access catalog file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var cf CatalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse TOML catalog: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse YAML catalog: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cf); err != nil {
			return nil, fmt.Errorf("parse JSON catalog: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog file format: %s", filepath.Ext(path))
	}

	if err := cf.validate(); err != nil {
		return nil, err
	}
	cf.Dir = filepath.Dir(path)
	return &cf, nil
}

func (cf *CatalogFile) validate() error {
	if _, err := model.ParseCalcMode(cf.Mode); err != nil {
		return err
	}
	if len(cf.Providers) == 0 {
		return fmt.Errorf("catalog has no providers")
	}
	seen := make(map[string]bool)
	for _, p := range cf.Providers {
		if p.Name == "" {
			return fmt.Errorf("catalog provider without a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate provider %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}

func (cf *CatalogFile) CalcMode() model.CalcMode {
	mode, _ := model.ParseCalcMode(cf.Mode)
	return mode
}

// Sources flattens the file into rate sources, providers in file order and
// brands sorted by name.
func (cf *CatalogFile) Sources() []model.RateSource {
	var out []model.RateSource
	for _, p := range cf.Providers {
		brands := make([]string, 0, len(p.Brands))
		for b := range p.Brands {
			brands = append(brands, b)
		}
		sort.Strings(brands)
		for _, b := range brands {
			out = append(out, model.RateSource{Provider: p.Name, Brand: b, Locator: p.Brands[b]})
		}
	}
	return out
}
