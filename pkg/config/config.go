package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/panbanda/ctree/pkg/ctree"
	"github.com/panbanda/ctree/pkg/parser"
)

// EnvConfig names the environment variable holding an explicit config path.
const EnvConfig = "CTREE_CONFIG"

// Config holds all configuration options for ctree.
type Config struct {
	// Pseudocode lifting
	Lift LiftConfig `koanf:"lift"`

	// Tree queries
	Query QueryConfig `koanf:"query"`

	// Directory scanning
	Scan ScanConfig `koanf:"scan"`

	// Output settings
	Output OutputConfig `koanf:"output"`
}

// LiftConfig controls how pseudocode becomes a tree.
type LiftConfig struct {
	Language string `koanf:"language"` // c, cpp, or empty to detect from the extension
	Base     string `koanf:"base"`     // added to every lifted address, e.g. "0x401000"
}

// QueryConfig controls tree query helpers.
type QueryConfig struct {
	CacheParents bool `koanf:"cache_parents"`
	SearchLimit  int  `koanf:"search_limit"` // 0 means unlimited
}

// ScanConfig controls which files are picked up when a directory is given.
type ScanConfig struct {
	Exclude     []string `koanf:"exclude"` // gitignore-style patterns
	Gitignore   bool     `koanf:"gitignore"`
	MaxFileSize int64    `koanf:"max_file_size"` // bytes, 0 means no limit
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color"`
	Verbose bool   `koanf:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Lift: LiftConfig{
			Language: "",
			Base:     "0",
		},
		Query: QueryConfig{
			CacheParents: true,
			SearchLimit:  0,
		},
		Scan: ScanConfig{
			Exclude: []string{
				".git/",
				".ctree/",
			},
			Gitignore:   true,
			MaxFileSize: 0,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var p koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		p = toml.Parser()
	case ".yaml", ".yml":
		p = yaml.Parser()
	case ".json":
		p = json.Parser()
	default:
		p = toml.Parser()
	}

	if err := k.Load(file.Provider(path), p); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	if path := os.Getenv(EnvConfig); path != "" {
		if cfg, err := Load(path); err == nil {
			return cfg
		}
	}

	configNames := []string{
		"ctree.toml",
		"ctree.yaml",
		"ctree.yml",
		"ctree.json",
		".ctree.toml",
		".ctree.yaml",
		".ctree.yml",
		".ctree.json",
	}

	// Search in current directory and .ctree directory
	searchDirs := []string{".", ".ctree"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// Validate reports values that cannot be used.
func (c *Config) Validate() error {
	if c.Lift.Language != "" && parser.ParseLanguage(c.Lift.Language) == parser.LangUnknown {
		return fmt.Errorf("lift.language: unsupported language %q", c.Lift.Language)
	}
	if _, err := ParseAddr(c.Lift.Base); err != nil {
		return fmt.Errorf("lift.base: %w", err)
	}
	if c.Scan.MaxFileSize < 0 {
		return fmt.Errorf("scan.max_file_size: must not be negative, got %d", c.Scan.MaxFileSize)
	}
	if c.Query.SearchLimit < 0 {
		return fmt.Errorf("query.search_limit: must not be negative, got %d", c.Query.SearchLimit)
	}
	return nil
}

// Language returns the configured pseudocode language, or LangUnknown when
// it should be detected from the file name.
func (c *Config) Language() parser.Language {
	if c.Lift.Language == "" {
		return parser.LangUnknown
	}
	return parser.ParseLanguage(c.Lift.Language)
}

// BaseAddr returns the configured address base. Invalid values yield 0;
// Load rejects them.
func (c *Config) BaseAddr() ctree.Addr {
	a, _ := ParseAddr(c.Lift.Base)
	return a
}

// ParseAddr parses an address written in hex with a 0x prefix, with an h
// suffix as disassemblers print them, or in decimal.
func ParseAddr(s string) (ctree.Addr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	lower := strings.ToLower(s)
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(lower, "0x"):
		v, err = strconv.ParseUint(lower[2:], 16, 64)
	case strings.HasSuffix(lower, "h"):
		v, err = strconv.ParseUint(lower[:len(lower)-1], 16, 64)
	default:
		v, err = strconv.ParseUint(lower, 10, 64)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return ctree.Addr(v), nil
}
