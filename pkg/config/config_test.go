package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConfig_DefaultValues(t *testing.T) {
	cfg := New()

	assert.Equal(t, "data/consumer_rights_structure.json", cfg.Input)
	assert.Equal(t, "consumer_rights_tree_structure.txt", cfg.Output)
	assert.Equal(t, "Consumer Rights Structure", cfg.Title)
	assert.Equal(t, []string{"text"}, cfg.Formats)
	assert.Equal(t, 1000, cfg.MaxDepth)
	assert.Equal(t, cache.BackendFile, cfg.Cache.Backend)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout())
	assert.NoError(t, cfg.Validate())
}

func TestConfig_LoadFromTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doctree.toml", `
input = "in.json"
title = "Policy"
formats = ["text", "svg"]
max_depth = 50
detailed = true

[cache]
backend = "redis"
prefix = "dev:"

[cache.redis]
addr = "localhost:6379"
db = 2

[server]
addr = ":9000"
timeout = "5s"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "in.json", cfg.Input)
	assert.Equal(t, DefaultOutput, cfg.Output, "unset keys keep defaults")
	assert.Equal(t, "Policy", cfg.Title)
	assert.Equal(t, []string{"text", "svg"}, cfg.Formats)
	assert.Equal(t, 50, cfg.MaxDepth)
	assert.True(t, cfg.Detailed)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "dev:", cfg.Cache.Prefix)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 2, cfg.Cache.Redis.DB)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout())
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
}

func TestConfig_LoadFromYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), ".doctree.yml", `
output: out/tree.txt
formats: [json]
cache:
  backend: mongo
  mongo:
    uri: mongodb://localhost:27017
    database: reports
server:
  max_body_bytes: 2048
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultInput, cfg.Input)
	assert.Equal(t, "out/tree.txt", cfg.Output)
	assert.Equal(t, []string{"json"}, cfg.Formats)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Cache.Mongo.URI)
	assert.Equal(t, "reports", cfg.Cache.Mongo.Database)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
}

func TestConfig_LoadEmptyYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "doctree.yaml", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, New(), cfg)
}

func TestConfig_LoadErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		code    errors.Code
	}{
		{"unknown toml key", "a.toml", `colour = "red"`, errors.ErrCodeInvalidConfig},
		{"unknown yaml key", "a.yaml", "colour: red\n", errors.ErrCodeInvalidConfig},
		{"bad toml", "b.toml", `input = `, errors.ErrCodeInvalidConfig},
		{"bad format", "c.toml", `formats = ["gif"]`, errors.ErrCodeInvalidConfig},
		{"zero depth", "d.yaml", "max_depth: 0\n", errors.ErrCodeInvalidConfig},
		{"unsupported extension", "e.json", `{}`, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, dir, tt.file, tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}

	_, err := Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input", func(c *Config) { c.Input = "" }},
		{"control char output", func(c *Config) { c.Output = "out\x01.txt" }},
		{"no formats", func(c *Config) { c.Formats = nil }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = cache.BackendRedis }},
		{"mongo bad uri", func(c *Config) {
			c.Cache.Backend = cache.BackendMongo
			c.Cache.Mongo.URI = "http://localhost"
		}},
		{"unknown backend", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }},
		{"bad timeout", func(c *Config) { c.Server.Timeout = "soon" }},
		{"negative timeout", func(c *Config) { c.Server.Timeout = "-1s" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(err))
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Empty(t, FindConfigFile(nested))

	yamlPath := writeFile(t, root, "doctree.yaml", "")
	assert.Equal(t, yamlPath, FindConfigFile(nested), "parents are searched")

	tomlPath := writeFile(t, root, ".doctree.toml", "")
	assert.Equal(t, tomlPath, FindConfigFile(nested), "toml wins over yaml")

	closer := writeFile(t, filepath.Join(root, "a"), "doctree.yaml", "")
	assert.Equal(t, closer, FindConfigFile(nested), "nearest directory wins")
}

func TestConfig_PipelineOptions(t *testing.T) {
	cfg := New()
	cfg.Formats = []string{"text", "dot"}
	cfg.Detailed = true

	opts := cfg.PipelineOptions()
	assert.Equal(t, cfg.Input, opts.Source)
	assert.Equal(t, cfg.Title, opts.Title)
	assert.Equal(t, cfg.MaxDepth, opts.MaxDepth)
	assert.True(t, opts.Detailed)

	opts.Formats[0] = "svg"
	assert.Equal(t, "text", cfg.Formats[0], "formats are copied")
}

func TestConfig_Encode(t *testing.T) {
	cfg := New()

	data, err := cfg.TOML()
	require.NoError(t, err)
	assert.Contains(t, string(data), `input = "data/consumer_rights_structure.json"`)

	data, err = cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_depth: 1000")
}
