package commands

import (
	"flag"
	"fmt"

	"github.com/Ravenhammer-Research/freebsdnet/internal/config"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
)

func CreateDefaultRouteCommand() *DefaultRouteCommand {
	gc := &DefaultRouteCommand{
		fs: flag.NewFlagSet("default-route", flag.ExitOnError),
	}

	gc.fs.IntVar(&gc.fib, "fib", -1, "FIB number to inspect (default: the process FIB)")
	gc.fs.BoolVar(&gc.v6, "6", false, "Show the IPv6 default route instead of the IPv4 one")

	return gc
}

type DefaultRouteCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	fib int
	v6  bool
}

func (g *DefaultRouteCommand) Name() string {
	return g.fs.Name()
}

func (g *DefaultRouteCommand) Init(args []string, ctx *AppContext) error {
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

func (g *DefaultRouteCommand) Run() error {
	family := netaddr.FamilyIPv4
	if g.v6 {
		family = netaddr.FamilyIPv6
	}

	rec, err := g.ctx.Table.DefaultGateway(g.fib, family)
	if err != nil {
		return err
	}

	fmt.Println(formatRecord(g.cfg.General.RouteFormat, rec))
	return nil
}
