package commands

import (
	"flag"
	"fmt"

	"github.com/Ravenhammer-Research/freebsdnet/internal/config"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

func CreateRoutesCommand() *RoutesCommand {
	gc := &RoutesCommand{
		fs: flag.NewFlagSet("routes", flag.ExitOnError),
	}

	gc.fs.IntVar(&gc.fib, "fib", -1, "FIB number to list (default: the process FIB)")
	gc.fs.BoolVar(&gc.v4, "4", false, "List IPv4 routes only")
	gc.fs.BoolVar(&gc.v6, "6", false, "List IPv6 routes only")
	gc.fs.StringVar(&gc.format, "format", "", "Line format override (default: general.route_format)")

	return gc
}

type RoutesCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	fib    int
	v4     bool
	v6     bool
	format string
}

func (g *RoutesCommand) Name() string {
	return g.fs.Name()
}

func (g *RoutesCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadConfigIfPresent(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	return nil
}

func (g *RoutesCommand) Run() error {
	family, err := parseFamily(g.v4, g.v6)
	if err != nil {
		return err
	}

	fib := g.fib
	if fib < 0 {
		fib = g.cfg.DefaultFIB()
	}

	records, err := g.ctx.Table.GetEntries(fib, family)
	if err != nil {
		return err
	}

	format := g.format
	if format == "" {
		format = g.cfg.General.RouteFormat
	}

	for _, rec := range records {
		if family != netaddr.FamilyUnknown && rec.Family != family {
			continue
		}
		fmt.Println(formatRecord(format, rec))
	}
	return nil
}
