package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"lrucache/internal/cache"
	"lrucache/internal/config"
	"lrucache/internal/logging"
)

// app is the state shared by subcommands once PersistentPreRunE has run.
type app struct {
	mgr *config.Manager
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{mgr: config.NewManager()}
	var cfgFile string

	root := &cobra.Command{
		Use:   "lrucache",
		Short: "Fixed-capacity LRU cache driver",
		Long: `lrucache drives an in-memory least-recently-used cache.

Use 'lrucache demo' for the capacity-2 walkthrough, or 'lrucache run' to
replay a script of put/get/peek/del/len/keys commands.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cfgFile != "" {
				a.mgr.SetConfigFile(cfgFile)
			}
			cfg, err := a.mgr.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = logging.NewWithWriter(cfg.Logging(), cmd.ErrOrStderr())
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./lrucache.toml or $XDG_CONFIG_HOME/lrucache/lrucache.toml)")
	flags.Int("capacity", config.DefaultCapacity, "maximum number of resident entries")
	flags.String("log-level", config.DefaultLogLevel, "trace, debug, info, warn or error")
	flags.String("log-format", config.DefaultLogFormat, "console or json")

	v := a.mgr.Viper()
	for key, flag := range map[string]string{
		"capacity":   "capacity",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	root.AddCommand(newDemoCmd(a), newRunCmd(a))
	return root
}

// newCache builds a string cache and logs capacity evictions at debug level.
func (a *app) newCache(capacity int) (*cache.Cache[string, string], error) {
	c, err := cache.New[string, string](capacity)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	c.OnEvict(func(key, _ string) {
		a.log.Debug().Str("key", key).Msg("evicted")
	})
	a.log.Debug().Int("capacity", capacity).Msg("cache ready")
	return c, nil
}
