package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexcabrera/ridgeline/internal/config"
	"github.com/alexcabrera/ridgeline/internal/content"
	"github.com/alexcabrera/ridgeline/internal/logging"
	"github.com/alexcabrera/ridgeline/internal/paths"
	"github.com/alexcabrera/ridgeline/internal/ui/shell"
)

// globals are the flags shared by every command.
type globals struct {
	cfgPath    string
	contentDir string
	debug      bool
}

func newRootCmd() *cobra.Command {
	var g globals
	var watch bool

	cmd := &cobra.Command{
		Use:           "ridgeline [route]",
		Short:         "Browse the Ridgeline motorcycle tours site in your terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return g.withConfig(func(cfg config.Config) error {
				log, closeLog, err := g.fileLogger(cfg)
				if err != nil {
					return err
				}
				defer closeLog()

				dir := g.content(cfg)
				catalog, err := content.LoadDir(dir)
				if err != nil {
					return err
				}

				opts := shell.Options{
					StartRoute:    cfg.StartRoute,
					BarHeight:     cfg.Nav.BarHeight,
					SettleDelay:   cfg.Nav.SettleDelay,
					BarTransition: cfg.Nav.BarTransition,
					HeroFallback:  cfg.Hero.FallbackDelay,
					Nav:           cfg.NavOptions(),
					Log:           log,
				}
				if len(args) == 1 {
					opts.StartRoute = args[0]
				}

				if watch {
					if dir == "" {
						return fmt.Errorf("--watch needs a content directory")
					}
					w, err := content.NewWatcher(dir, logging.Component(log, "content"))
					if err != nil {
						return err
					}
					defer w.Close()
					opts.Reloads = w.C()
				}

				log.Info().Str("content", dir).Str("route", opts.StartRoute).Msg("starting shell")
				return shell.Run(cmd.Context(), opts, catalog)
			})
		},
	}

	cmd.PersistentFlags().StringVar(&g.cfgPath, "config", paths.ConfigFile(), "path to config file")
	cmd.PersistentFlags().StringVar(&g.contentDir, "content", "", "content directory (default: embedded)")
	cmd.PersistentFlags().BoolVar(&g.debug, "debug", false, "log at debug level")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload content when its files change")

	cmd.AddCommand(newToursCmd(&g))
	cmd.AddCommand(newRenderCmd(&g))
	cmd.AddCommand(newTraceCmd(&g))
	cmd.AddCommand(newContactCmd(&g))
	cmd.AddCommand(newDoctorCmd(&g))

	return cmd
}

func (g *globals) withConfig(fn func(config.Config) error) error {
	cfg, err := config.Load(g.cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return fn(cfg)
}

// content returns the content directory: the flag, then the config.
func (g *globals) content(cfg config.Config) string {
	if g.contentDir != "" {
		return g.contentDir
	}
	return cfg.ContentDir
}

func (g *globals) loadCatalog(cfg config.Config) (*content.Catalog, error) {
	return content.LoadDir(g.content(cfg))
}

func (g *globals) logConfig(cfg config.Config) logging.Config {
	lc := cfg.Logging()
	if g.debug {
		lc.Level = zerolog.DebugLevel
	}
	return lc
}

// stderrLogger is used by the headless commands.
func (g *globals) stderrLogger(cfg config.Config) zerolog.Logger {
	return g.logger(cfg, os.Stderr)
}

func (g *globals) logger(cfg config.Config, w io.Writer) zerolog.Logger {
	return logging.New(g.logConfig(cfg), w)
}

// fileLogger writes to the log file, since the shell owns the terminal.
func (g *globals) fileLogger(cfg config.Config) (zerolog.Logger, func(), error) {
	path := cfg.Log.File
	if path == "" {
		path = paths.LogFile()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("create log dir: %w", err)
	}
	f, err := logging.OpenFile(path)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("open log file: %w", err)
	}
	return g.logger(cfg, f), func() { f.Close() }, nil
}
