package commands

import (
	"flag"
	"fmt"

	"github.com/Ravenhammer-Research/freebsdnet/internal/config"
	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
)

func CreateApplyCommand() *ApplyCommand {
	gc := &ApplyCommand{
		fs: flag.NewFlagSet("apply", flag.ExitOnError),
	}

	gc.fs.BoolVar(&gc.DryRun, "dry-run", false, "Print the routes that would be installed without touching the kernel")
	gc.fs.BoolVar(&gc.FailFast, "fail-fast", false, "Stop at the first route that fails to install")

	return gc
}

type ApplyCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	DryRun   bool
	FailFast bool
}

func (g *ApplyCommand) Name() string {
	return g.fs.Name()
}

func (g *ApplyCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadConfigOrFail(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *ApplyCommand) Run() error {
	if len(g.cfg.Routes) == 0 {
		log.Infof("No static routes configured in %s, nothing to apply", g.cfg.Path())
		return nil
	}

	installed := 0
	failed := 0
	for _, sr := range g.cfg.Routes {
		fib := sr.EffectiveFIB(g.cfg)

		if g.DryRun {
			log.Infof("Would add route %s via %s (fib=%d)", sr.Destination, sr.Gateway, fib)
			continue
		}

		if err := g.ctx.Table.AddEntry(sr.Destination, sr.Gateway, sr.Interface, 0, fib); err != nil {
			if g.FailFast {
				return fmt.Errorf("failed to add route %s: %v", sr.Destination, err)
			}
			log.Errorf("Failed to add route %s: %v", sr.Destination, err)
			failed++
			continue
		}

		log.Infof("Added route %s via %s (fib=%d)", sr.Destination, sr.Gateway, fib)
		installed++
	}

	if g.DryRun {
		return nil
	}

	log.Infof("Applied %d route(s), %d failed", installed, failed)
	if failed > 0 {
		return fmt.Errorf("%d route(s) failed to install", failed)
	}
	return nil
}
