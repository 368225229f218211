package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/abelbrown/dex/internal/catalog"
	"github.com/abelbrown/dex/internal/pokeapi"
)

// Config is the persistent application configuration
type Config struct {
	// Upstream API
	API APIConfig `json:"api"`

	// Entity list paging and filtering
	List ListConfig `json:"list"`

	// Search box
	Search SearchConfig `json:"search"`

	// UI Preferences
	UI UIConfig `json:"ui"`
}

// APIConfig holds PokeAPI client settings
type APIConfig struct {
	BaseURL           string  `json:"base_url"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	Burst             int     `json:"burst"`
	IndexConcurrency  int     `json:"index_concurrency"` // parallel /generation/{n} fetches
	MoveConcurrency   int     `json:"move_concurrency"`  // parallel /move/{name} fetches
}

// ListConfig holds entity list settings
type ListConfig struct {
	PageSize    int    `json:"page_size"`
	FacetMatch  string `json:"facet_match"`   // "all" (intersection) or "any" (union)
	NearEndRows int    `json:"near_end_rows"` // rows from the bottom that request the next page
}

// SearchConfig holds search box settings
type SearchConfig struct {
	Results int `json:"results"`
}

// UIConfig holds UI preferences
type UIConfig struct {
	Theme       string `json:"theme"`
	DensityMode string `json:"density_mode"` // "comfortable" or "compact"
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           pokeapi.DefaultBaseURL,
			TimeoutSeconds:    30,
			RequestsPerSecond: 10,
			Burst:             5,
			IndexConcurrency:  4,
			MoveConcurrency:   6,
		},
		List: ListConfig{
			PageSize:    catalog.DefaultPageSize,
			FacetMatch:  "all",
			NearEndRows: 5,
		},
		Search: SearchConfig{
			Results: 5,
		},
		UI: UIConfig{
			Theme:       "dark",
			DensityMode: "comfortable",
		},
	}
}

// Dir returns the dex state directory: $DEX_HOME, or ~/.dex.
func Dir() string {
	if dir := os.Getenv("DEX_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".dex")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// Load reads config from disk, or returns defaults. Environment overrides
// are applied either way and the result is validated.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom is Load for an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			cfg = DefaultConfig()
		}
	}

	cfg.AutoPopulateFromEnv()
	cfg.Validate()
	return cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes config to path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AutoPopulateFromEnv applies DEX_* environment overrides
func (c *Config) AutoPopulateFromEnv() {
	if v := os.Getenv("DEX_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("DEX_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.List.PageSize = n
		}
	}
	if v := os.Getenv("DEX_FACET_MATCH"); v != "" {
		c.List.FacetMatch = v
	}
	if v := os.Getenv("DEX_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.API.RequestsPerSecond = f
		}
	}
	if v := os.Getenv("DEX_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.TimeoutSeconds = int(d.Seconds())
		} else if n, err := strconv.Atoi(v); err == nil {
			c.API.TimeoutSeconds = n
		}
	}
}

// Validate resets out-of-range values to their defaults and returns the
// names of the fields it changed.
func (c *Config) Validate() []string {
	d := DefaultConfig()
	var fixed []string
	fix := func(name string, bad bool, reset func()) {
		if bad {
			reset()
			fixed = append(fixed, name)
		}
	}

	fix("api.base_url", c.API.BaseURL == "", func() { c.API.BaseURL = d.API.BaseURL })
	fix("api.timeout_seconds", c.API.TimeoutSeconds <= 0, func() { c.API.TimeoutSeconds = d.API.TimeoutSeconds })
	fix("api.requests_per_second", c.API.RequestsPerSecond <= 0, func() { c.API.RequestsPerSecond = d.API.RequestsPerSecond })
	fix("api.burst", c.API.Burst <= 0, func() { c.API.Burst = d.API.Burst })
	fix("api.index_concurrency", c.API.IndexConcurrency <= 0, func() { c.API.IndexConcurrency = d.API.IndexConcurrency })
	fix("api.move_concurrency", c.API.MoveConcurrency <= 0, func() { c.API.MoveConcurrency = d.API.MoveConcurrency })
	fix("list.page_size", c.List.PageSize <= 0 || c.List.PageSize > 200, func() { c.List.PageSize = d.List.PageSize })
	_, err := catalog.ParseMatchPolicy(c.List.FacetMatch)
	fix("list.facet_match", err != nil, func() { c.List.FacetMatch = d.List.FacetMatch })
	fix("list.near_end_rows", c.List.NearEndRows < 0, func() { c.List.NearEndRows = d.List.NearEndRows })
	fix("search.results", c.Search.Results <= 0, func() { c.Search.Results = d.Search.Results })
	fix("ui.density_mode", c.UI.DensityMode != "comfortable" && c.UI.DensityMode != "compact", func() { c.UI.DensityMode = d.UI.DensityMode })

	return fixed
}

// Timeout returns the HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// MatchPolicy returns the parsed facet match policy.
func (c *Config) MatchPolicy() catalog.MatchPolicy {
	m, _ := catalog.ParseMatchPolicy(c.List.FacetMatch)
	return m
}

// ClientOptions returns the PokeAPI client options.
func (c *Config) ClientOptions() pokeapi.Options {
	return pokeapi.Options{
		BaseURL:           c.API.BaseURL,
		Timeout:           c.Timeout(),
		RequestsPerSecond: c.API.RequestsPerSecond,
		Burst:             c.API.Burst,
	}
}

func (c *Config) String() string {
	return fmt.Sprintf("api=%s page=%d match=%s rps=%g", c.API.BaseURL, c.List.PageSize, c.List.FacetMatch, c.API.RequestsPerSecond)
}
