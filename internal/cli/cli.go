// Package cli implements the doctree command-line interface.
//
// # Commands
//
//   - explore: Render the tree report for a JSON document
//   - render: Render the node-link diagram of a document
//   - browse: Page through the report in the terminal
//   - serve: Run the HTTP report service
//   - cache: Inspect and clear the artifact cache
//   - config: Show or create the config file
//   - version: Print build information
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// registers log hooks for pipeline and cache events. Loggers are passed
// through context.Context.
package cli

import (
	"context"
	stderrors "errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/doctree/pkg/buildinfo"
	"github.com/matzehuels/doctree/pkg/cache"
	"github.com/matzehuels/doctree/pkg/config"
	"github.com/matzehuels/doctree/pkg/errors"
	"github.com/matzehuels/doctree/pkg/observability"
	"github.com/matzehuels/doctree/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "doctree"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "doctree renders JSON documents as tree hierarchies",
		Long:         `doctree walks a JSON document and renders its structure as an indented text tree, with a detailed view of hierarchical document sections and per-level node statistics.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				hooks := observability.NewLogHooks(c.Logger)
				observability.SetPipelineHooks(hooks)
				observability.SetCacheHooks(hooks)
				observability.SetHTTPHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: search for .doctree.toml or .doctree.yaml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig loads the --config file, or the first config file found from
// the working directory upwards, or the defaults when there is none.
func (c *CLI) loadConfig() (*config.Config, string, error) {
	path := c.configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeInternal, err, "get working directory")
		}
		path = config.FindConfigFile(wd)
	}
	if path == "" {
		return config.New(), "", nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, path, nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, cfg.Cache.Keyer(), c.Logger), nil
}

// openCache opens the configured cache backend. A backend that cannot be
// reached is logged and replaced by a null cache so reports still render.
func (c *CLI) openCache(ctx context.Context, cfg *config.Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		if stderrors.Is(err, cache.ErrUnknownBackend) {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open cache")
		}
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "err", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}
