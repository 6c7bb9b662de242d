package commands

import (
	"flag"
	"fmt"

	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
	"github.com/Ravenhammer-Research/freebsdnet/internal/route"
)

func CreateAddCommand() *AddCommand {
	gc := &AddCommand{
		fs: flag.NewFlagSet("add", flag.ExitOnError),
	}

	gc.fs.IntVar(&gc.fib, "fib", -1, "FIB number to install the route into (default: the process FIB)")
	gc.fs.StringVar(&gc.iface, "interface", "", "Pin the route to the given interface")
	gc.fs.BoolVar(&gc.blackhole, "blackhole", false, "Install a blackhole route")

	gc.fs.Usage = func() {
		fmt.Fprintf(gc.fs.Output(), "Usage: fibctl add [options] <destination> <gateway>\n\nOptions:\n")
		gc.fs.PrintDefaults()
	}

	return gc
}

type AddCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	fib       int
	iface     string
	blackhole bool

	destination string
	gateway     string
}

func (g *AddCommand) Name() string {
	return g.fs.Name()
}

func (g *AddCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	rest := g.fs.Args()
	if len(rest) != 2 {
		g.fs.Usage()
		return fmt.Errorf("add requires <destination> and <gateway>")
	}
	g.destination = rest[0]
	g.gateway = rest[1]

	return nil
}

func (g *AddCommand) Run() error {
	var extra route.RouteFlags
	if g.blackhole {
		extra |= route.FlagBlackhole
	}

	if err := g.ctx.Table.AddEntry(g.destination, g.gateway, g.iface, extra, g.fib); err != nil {
		return err
	}

	log.Infof("Added route %s via %s", g.destination, g.gateway)
	return nil
}
