package cache

import (
	"context"
	"fmt"
)

// Backend names accepted by [Open].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend string      `toml:"backend" yaml:"backend"`
	Dir     string      `toml:"dir" yaml:"dir"`       // FileCache directory; DefaultDir when empty
	Prefix  string      `toml:"prefix" yaml:"prefix"` // Key scope, see ScopedKeyer
	Redis   RedisConfig `toml:"redis" yaml:"redis"`
	Mongo   MongoConfig `toml:"mongo" yaml:"mongo"`
}

// Open returns the backend named by cfg.Backend. An empty name selects
// the file cache.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case BackendNone:
		return NewNullCache(), nil
	case BackendFile, "":
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = DefaultDir(); err != nil {
				return nil, err
			}
		}
		return NewFileCache(dir)
	case BackendRedis:
		return NewRedisCache(ctx, cfg.Redis)
	case BackendMongo:
		return NewMongoCache(ctx, cfg.Mongo)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}

// Keyer returns the keyer for cfg, scoped by cfg.Prefix when set.
func (cfg Config) Keyer() Keyer {
	if cfg.Prefix == "" {
		return NewDefaultKeyer()
	}
	return NewScopedKeyer(nil, cfg.Prefix)
}
