// Package config provides configuration loading and management for semskos.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	ssconfig "github.com/c360studio/semstreams/config"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/semskos/vocabulary/openskos"
)

// Graph store drivers.
const (
	DriverSPARQL = "sparql"
	DriverNATS   = "nats"
)

// Config represents the complete semskos configuration
type Config struct {
	Graph      GraphConfig       `yaml:"graph"`
	NATS       NATSConfig        `yaml:"nats"`
	Namespaces map[string]string `yaml:"namespaces"`
	Query      QueryConfig       `yaml:"query"`
}

// GraphConfig configures the graph store connection
type GraphConfig struct {
	// Driver selects the client: "sparql" or "nats"
	Driver string `yaml:"driver"`
	// QueryURL is the SPARQL query endpoint
	QueryURL string `yaml:"query_url"`
	// UpdateURL is the SPARQL update endpoint (empty = read only)
	UpdateURL string `yaml:"update_url"`
	// Timeout bounds every graph store call
	Timeout time.Duration `yaml:"timeout"`
}

// NATSConfig configures the NATS transport
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
	// SubjectPrefix prefixes the graph request subjects
	SubjectPrefix string `yaml:"subject_prefix"`
	// Queue is the queue group used when serving graph requests
	Queue string `yaml:"queue"`
}

// QueryConfig configures listing defaults
type QueryConfig struct {
	// DefaultLimit is the page size when none is requested
	DefaultLimit int `yaml:"default_limit"`
	// MaxLimit caps requested page sizes
	MaxLimit int `yaml:"max_limit"`
}

// DefaultNamespace is the base of the default identifier namespaces.
const DefaultNamespace = "http://localhost/openskos/"

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	namespaces := make(map[string]string, len(openskos.EntityTypes))
	for _, t := range openskos.EntityTypes {
		namespaces[string(t)] = DefaultNamespace + string(t) + "/"
	}
	return &Config{
		Graph: GraphConfig{
			Driver:   DriverSPARQL,
			QueryURL: "http://localhost:3030/openskos/query",
			Timeout:  30 * time.Second,
		},
		NATS: NATSConfig{
			URL:           "nats://localhost:4222",
			SubjectPrefix: "semskos.graph",
		},
		Namespaces: namespaces,
		Query: QueryConfig{
			DefaultLimit: 20,
			MaxLimit:     1000,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Graph.Driver {
	case DriverSPARQL:
		if c.Graph.QueryURL == "" {
			return fmt.Errorf("graph.query_url is required for the sparql driver")
		}
		if _, err := url.ParseRequestURI(c.Graph.QueryURL); err != nil {
			return fmt.Errorf("graph.query_url: %w", err)
		}
		if c.Graph.UpdateURL != "" {
			if _, err := url.ParseRequestURI(c.Graph.UpdateURL); err != nil {
				return fmt.Errorf("graph.update_url: %w", err)
			}
		}
	case DriverNATS:
		if c.NATS.URL == "" {
			return fmt.Errorf("nats.url is required for the nats driver")
		}
	default:
		return fmt.Errorf("graph.driver must be %q or %q, got %q", DriverSPARQL, DriverNATS, c.Graph.Driver)
	}
	if c.Graph.Timeout <= 0 {
		return fmt.Errorf("graph.timeout must be positive")
	}
	if c.Query.DefaultLimit <= 0 {
		return fmt.Errorf("query.default_limit must be positive")
	}
	if c.Query.MaxLimit < c.Query.DefaultLimit {
		return fmt.Errorf("query.max_limit must be at least query.default_limit")
	}
	for name, ns := range c.Namespaces {
		u, err := url.Parse(ns)
		if err != nil || !u.IsAbs() {
			return fmt.Errorf("namespaces.%s must be an absolute IRI, got %q", name, ns)
		}
	}
	return nil
}

// Namespace returns the identifier namespace of an entity type.
func (c *Config) Namespace(t openskos.EntityType) (string, bool) {
	ns, ok := c.Namespaces[string(t)]
	return ns, ok && ns != ""
}

// Limit clamps a requested page size. Zero or negative means the default.
func (c *Config) Limit(requested int) int {
	if requested <= 0 {
		return c.Query.DefaultLimit
	}
	if requested > c.Query.MaxLimit {
		return c.Query.MaxLimit
	}
	return requested
}

// LoadFromFile loads configuration from a YAML file over the defaults.
// ${VAR} and ${VAR:-default} references are expanded before parsing.
func LoadFromFile(path string) (*Config, error) {
	return readFile(path, DefaultConfig())
}

// loadOverlay reads only the values present in a file, for merging.
func loadOverlay(path string) (*Config, error) {
	return readFile(path, &Config{})
}

func readFile(path string, config *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := ssconfig.ExpandEnvWithDefaults(string(data))
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Graph
	if other.Graph.Driver != "" {
		c.Graph.Driver = other.Graph.Driver
	}
	if other.Graph.QueryURL != "" {
		c.Graph.QueryURL = other.Graph.QueryURL
	}
	if other.Graph.UpdateURL != "" {
		c.Graph.UpdateURL = other.Graph.UpdateURL
	}
	if other.Graph.Timeout != 0 {
		c.Graph.Timeout = other.Graph.Timeout
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.NATS.SubjectPrefix != "" {
		c.NATS.SubjectPrefix = other.NATS.SubjectPrefix
	}
	if other.NATS.Queue != "" {
		c.NATS.Queue = other.NATS.Queue
	}

	// Namespaces merge per entity type
	for name, ns := range other.Namespaces {
		if ns == "" {
			continue
		}
		if c.Namespaces == nil {
			c.Namespaces = make(map[string]string)
		}
		c.Namespaces[name] = ns
	}

	// Query
	if other.Query.DefaultLimit != 0 {
		c.Query.DefaultLimit = other.Query.DefaultLimit
	}
	if other.Query.MaxLimit != 0 {
		c.Query.MaxLimit = other.Query.MaxLimit
	}
}
