package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/suiet/guardians/internal/guard/domain"
)

// brandsParser picks the koanf parser for the brands file extension.
func brandsParser(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return json.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported brands file extension %q", ext)
	}
}

// LoadBrands reads a flat table of brand token to canonical domain, e.g.
// {"cetus": "cetus.zone"}, from a JSON, YAML or TOML file. An empty path
// yields the compiled-in table.
func LoadBrands(path string) (domain.BrandMap, error) {
	if path == "" {
		return domain.DefaultBrandMap(), nil
	}

	// Tokens may contain dots ("volo.fi"), so keys are never split.
	parser, err := brandsParser(path)
	if err != nil {
		return domain.BrandMap{}, err
	}
	k := koanf.New("/")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return domain.BrandMap{}, fmt.Errorf("error loading brands file: %w", err)
	}

	entries := make(map[string]string, len(k.Raw()))
	for token, v := range k.Raw() {
		dom, ok := v.(string)
		if !ok {
			return domain.BrandMap{}, fmt.Errorf("brands file %s: value for %q must be a string", path, token)
		}
		entries[token] = dom
	}
	if len(entries) == 0 {
		return domain.BrandMap{}, fmt.Errorf("brands file %s holds no brands", path)
	}

	bm, err := domain.NewBrandMap(entries)
	if err != nil {
		return domain.BrandMap{}, fmt.Errorf("brands file %s: %w", path, err)
	}
	return bm, nil
}
