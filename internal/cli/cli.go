package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/suechart/pkg/buildinfo"
	"github.com/matzehuels/suechart/pkg/cache"
	"github.com/matzehuels/suechart/pkg/config"
	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/observability"
	"github.com/matzehuels/suechart/pkg/pipeline"
	"github.com/matzehuels/suechart/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "suechart"

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
	Config config.Config

	configPath string
	verbose    bool
	out        io.Writer
	in         io.Reader
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
		in:     os.Stdin,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Suechart turns placeholder rectangles into linked charts",
		Long: `Suechart converts rectangles in a design document into charts rendered by the
Sue chart service. The chart configuration is stored in the layer names, so a
chart can be refreshed after its placeholder was moved or resized.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
				observability.UseLogger(c.Logger)
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/suechart/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.newCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.unlinkCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.layersCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Factories
// =============================================================================

// newCache opens the configured render cache.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, cache.Options{
		Backend: c.Config.Cache.Backend,
		Dir:     c.Config.Cache.Dir,
		Redis: cache.RedisConfig{
			Addr: c.Config.Cache.RedisAddr,
			DB:   c.Config.Cache.RedisDB,
		},
	})
}

// newClient creates a render client. The returned cache must be closed by
// the caller.
func (c *CLI) newClient(ctx context.Context, noCache bool) (*render.Client, cache.Cache, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	client, err := render.NewClient(c.Config.Endpoint.BaseURL,
		render.WithTimeout(c.Config.Endpoint.Timeout.Duration),
		render.WithCache(store, c.Config.Cache.TTL.Duration),
		render.WithKeyer(cache.NewScopedKeyer(nil, appName+":")),
		render.WithLogger(c.Logger),
	)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return client, store, nil
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool, prompter pipeline.Prompter) (*pipeline.Runner, func(), error) {
	client, store, err := c.newClient(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	return pipeline.NewRunner(client, prompter, c.Logger), func() { _ = store.Close() }, nil
}

// newStore opens the configured document store.
func (c *CLI) newStore(ctx context.Context) (document.Store, error) {
	switch c.Config.Store.Backend {
	case config.StoreMongo:
		return document.NewMongoStore(ctx, document.MongoConfig{
			URI:        c.Config.Store.MongoURI,
			Database:   c.Config.Store.Database,
			Collection: c.Config.Store.Collection,
		})
	default:
		return document.NewFileStore(c.Config.Store.Dir)
	}
}
