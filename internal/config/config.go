package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Config holds application configuration.
type Config struct {
	// CatalogPath is the location of the food catalog CSV.
	// Relative paths are resolved against the base directory.
	CatalogPath string `json:"catalog_path,omitempty"`

	// RecommendTopN is the default number of recommendations returned.
	RecommendTopN int `json:"recommend_top_n,omitempty"`

	// SearchLimit is the default maximum number of search hits returned.
	SearchLimit int `json:"search_limit,omitempty"`

	// DBMaxOpenConns limits the maximum number of open database connections
	// on the profile store. If set to 1, all access is serialized (reduces
	// "database is locked" errors). 0 means use sql.DB default.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are ignored at registration time.
	DisabledTools []string `json:"disabled_tools,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		CatalogPath:   "food_catalog.csv",
		RecommendTopN: 5,
		SearchLimit:   10,
	}
}

// Load loads configuration from baseDir/config.json.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.nutrilog.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// ResolveCatalogPath returns the absolute path of the catalog CSV,
// resolving a relative CatalogPath against baseDir.
func (c *Config) ResolveCatalogPath(baseDir string) string {
	if filepath.IsAbs(c.CatalogPath) {
		return c.CatalogPath
	}
	return filepath.Join(baseDir, c.CatalogPath)
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.CatalogPath = overlay.CatalogPath
	if result.CatalogPath == "" {
		result.CatalogPath = base.CatalogPath
	}

	result.RecommendTopN = overlay.RecommendTopN
	if result.RecommendTopN == 0 {
		result.RecommendTopN = base.RecommendTopN
	}

	result.SearchLimit = overlay.SearchLimit
	if result.SearchLimit == 0 {
		result.SearchLimit = base.SearchLimit
	}

	result.DBMaxOpenConns = overlay.DBMaxOpenConns
	if result.DBMaxOpenConns == 0 {
		result.DBMaxOpenConns = base.DBMaxOpenConns
	}

	result.DBMaxIdleConns = overlay.DBMaxIdleConns
	if result.DBMaxIdleConns == 0 {
		result.DBMaxIdleConns = base.DBMaxIdleConns
	}

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
