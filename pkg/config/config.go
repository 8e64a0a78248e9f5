// Package config loads doctree settings from TOML or YAML files.
//
// A config file is optional. [FindConfigFile] looks for one of
// .doctree.toml, doctree.toml, .doctree.yaml, .doctree.yml or doctree.yaml
// in a directory and its parents; the first match wins. Command-line flags
// override file values.
//
//	# .doctree.toml
//	input     = "data/policy.json"
//	output    = "out/policy_tree.txt"
//	title     = "Policy"
//	formats   = ["text", "svg"]
//	max_depth = 200
//
//	[cache]
//	backend = "redis"
//	[cache.redis]
//	addr = "localhost:6379"
package config

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/doctree"
	"github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

// Defaults applied by [New].
const (
	DefaultInput        = "data/consumer_rights_structure.json"
	DefaultOutput       = "consumer_rights_tree_structure.txt"
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 10 << 20
	DefaultTimeout      = "30s"
)

// FileNames lists the config file names searched by FindConfigFile, in
// priority order.
var FileNames = []string{
	".doctree.toml",
	"doctree.toml",
	".doctree.yaml",
	".doctree.yml",
	"doctree.yaml",
}

// Config is the complete doctree configuration.
type Config struct {
	Input    string       `toml:"input" yaml:"input"`
	Output   string       `toml:"output" yaml:"output"`
	Title    string       `toml:"title" yaml:"title"`
	Formats  []string     `toml:"formats" yaml:"formats"`
	MaxDepth int          `toml:"max_depth" yaml:"max_depth"`
	Detailed bool         `toml:"detailed" yaml:"detailed"`
	Cache    cache.Config `toml:"cache" yaml:"cache"`
	Server   ServerConfig `toml:"server" yaml:"server"`
}

// ServerConfig configures `doctree serve`.
type ServerConfig struct {
	Addr         string `toml:"addr" yaml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes" yaml:"max_body_bytes"`
	Timeout      string `toml:"timeout" yaml:"timeout"` // Per-request timeout, e.g. "30s"
}

// RequestTimeout parses Timeout. Call Validate first.
func (s ServerConfig) RequestTimeout() time.Duration {
	d, _ := time.ParseDuration(s.Timeout)
	return d
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		Input:    DefaultInput,
		Output:   DefaultOutput,
		Title:    doctree.DefaultTitle,
		Formats:  []string{pipeline.FormatText},
		MaxDepth: doctree.DefaultMaxDepth,
		Cache:    cache.Config{Backend: cache.BackendFile},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
			Timeout:      DefaultTimeout,
		},
	}
}

// Load reads the config file at path on top of the defaults and validates
// the result. The format is chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config file")
	}

	cfg := New()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = cfg.decodeTOML(data)
	case ".yaml", ".yml":
		err = cfg.decodeYAML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeTOML(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return stderrors.New("unknown keys: " + strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// FindConfigFile searches dir and its parents for a config file and
// returns its path, or "" when there is none.
func FindConfigFile(dir string) string {
	current, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range FileNames {
			path := filepath.Join(current, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if err := errors.ValidatePath(c.Input); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "input")
	}
	if err := errors.ValidatePath(c.Output); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output")
	}
	if len(c.Formats) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "at least one format is required")
	}
	if err := pipeline.ValidateFormats(c.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "formats")
	}
	if c.MaxDepth < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "max_depth must be at least 1, got %d", c.MaxDepth)
	}

	switch c.Cache.Backend {
	case cache.BackendNone, cache.BackendFile, "":
	case cache.BackendRedis:
		if c.Cache.Redis.Addr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis.addr is required for the redis backend")
		}
	case cache.BackendMongo:
		if err := errors.ValidateURL(c.Cache.Mongo.URI, "mongodb", "mongodb+srv"); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "cache.mongo.uri")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (use none, file, redis or mongo)", c.Cache.Backend)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.max_body_bytes must be positive")
	}
	if d, err := time.ParseDuration(c.Server.Timeout); err != nil || d <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server.timeout must be a positive duration, got %q", c.Server.Timeout)
	}
	return nil
}

// PipelineOptions returns the pipeline options described by c.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Source:   c.Input,
		Title:    c.Title,
		MaxDepth: c.MaxDepth,
		Formats:  append([]string(nil), c.Formats...),
		Detailed: c.Detailed,
	}
}

// TOML encodes c as TOML, for `doctree config show`.
func (c *Config) TOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAML encodes c as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
