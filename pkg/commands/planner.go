package commands

import (
	"io"

	"github.com/spf13/cobra"

	"tableflip.dev/dayplan/pkg/app"
	"tableflip.dev/dayplan/pkg/clock"
	"tableflip.dev/dayplan/pkg/config"
	"tableflip.dev/dayplan/pkg/logging"
	"tableflip.dev/dayplan/pkg/notify"
	"tableflip.dev/dayplan/pkg/seed"
	"tableflip.dev/dayplan/pkg/store"
	"tableflip.dev/dayplan/pkg/timeutil"
)

// loaded is a ready planner plus what it was built from. Close releases the
// attachment spool.
type loaded struct {
	Config  config.Config
	Planner *app.Planner
	Spool   *store.Spool
	Sink    *notify.DesktopSink
}

func (l *loaded) Close() error {
	return l.Spool.Close()
}

// loadPlanner reads configuration and assembles the planner every command
// works on. Reminders and logs go to stderr so stdout stays clean for
// structured output and the stdio MCP transport.
func loadPlanner(cmd *cobra.Command) (*loaded, error) {
	cfg, err := ro.loader.Load()
	if err != nil {
		return nil, err
	}

	logOut := io.Discard
	if ro.verbose {
		logOut = cmd.ErrOrStderr()
	}
	log := logging.New(logOut)

	spool, err := store.OpenSpool(cfg.SpoolDir)
	if err != nil {
		return nil, err
	}

	sink := notify.NewDesktopSink(cmd.ErrOrStderr(), cfg.Notifications)
	p := app.New(app.Options{
		Store:    store.New(),
		Spool:    spool,
		Clock:    clock.Real{},
		Log:      log,
		User:     cfg.User,
		Sink:     sink,
		ToastTTL: cfg.ToastTTL,
	})

	if cfg.Seed && !ro.noSeed {
		if err := p.Store.Seed(seed.Tasks(timeutil.DateOf(p.Now()))...); err != nil {
			_ = spool.Close()
			return nil, err
		}
	}

	watching := ro.loader.Watch(func(next config.Config) {
		if !cmd.Flags().Changed("user") {
			p.SetUser(next.User)
		}
		sink.SetPermission(next.Notifications)
		logging.Info(log, "config_reloaded", map[string]any{"file": next.File})
	}, func(err error) {
		logging.Error(log, "config_reload_failed", err, nil)
	})
	logging.Info(log, "planner_ready", map[string]any{
		"user":     cfg.User,
		"file":     cfg.File,
		"spool":    spool.BasePath(),
		"watching": watching,
	})

	return &loaded{Config: cfg, Planner: p, Spool: spool, Sink: sink}, nil
}
