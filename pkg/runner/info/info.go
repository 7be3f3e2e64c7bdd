package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/dayplan/pkg/config"
	"tableflip.dev/dayplan/pkg/printers"
	"tableflip.dev/dayplan/pkg/store"
)

// Info reports where configuration comes from and what it resolved to.
type Info struct {
	Config *config.Config
	Spool  *store.Spool
	Format printers.Format
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if n.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		n.Config = &cfg
	}
	cfg := *n.Config
	if n.Spool != nil {
		cfg.SpoolDir = n.Spool.BasePath()
	}

	if n.Format.Structured() {
		return printers.Encode(out, n.Format, cfg)
	}

	if override := os.Getenv(config.PathEnv); override != "" {
		_, _ = fmt.Fprintln(out, config.PathEnv, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.PathEnv, "env var not set")
	}

	bold := color.New(color.Bold)
	file := cfg.File
	if file == "" {
		file = "none (defaults and environment only)"
	}
	spool := cfg.SpoolDir
	if spool == "" {
		spool = "temporary, removed on exit"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("config file"), file)
	tbl.AddRow(bold.Sprint("user"), cfg.User)
	tbl.AddRow(bold.Sprint("tick interval"), cfg.TickInterval)
	tbl.AddRow(bold.Sprint("toast ttl"), cfg.ToastTTL)
	tbl.AddRow(bold.Sprint("notifications"), string(cfg.Notifications))
	tbl.AddRow(bold.Sprint("spool dir"), spool)
	tbl.AddRow(bold.Sprint("seed demo tasks"), cfg.Seed)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
