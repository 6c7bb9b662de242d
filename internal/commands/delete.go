package commands

import (
	"flag"
	"fmt"

	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
)

func CreateDeleteCommand() *DeleteCommand {
	gc := &DeleteCommand{
		fs: flag.NewFlagSet("delete", flag.ExitOnError),
	}

	gc.fs.IntVar(&gc.fib, "fib", -1, "FIB number to delete the route from (default: the process FIB)")

	gc.fs.Usage = func() {
		fmt.Fprintf(gc.fs.Output(), "Usage: fibctl delete [options] <destination> [gateway]\n\nOptions:\n")
		gc.fs.PrintDefaults()
	}

	return gc
}

type DeleteCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	fib         int
	destination string
	gateway     string
}

func (g *DeleteCommand) Name() string {
	return g.fs.Name()
}

func (g *DeleteCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	rest := g.fs.Args()
	switch len(rest) {
	case 1:
		g.destination = rest[0]
	case 2:
		g.destination = rest[0]
		g.gateway = rest[1]
	default:
		g.fs.Usage()
		return fmt.Errorf("delete requires <destination> and an optional gateway")
	}

	return nil
}

func (g *DeleteCommand) Run() error {
	if err := g.ctx.Table.DeleteEntry(g.destination, g.gateway, g.fib); err != nil {
		return err
	}

	log.Infof("Deleted route %s", g.destination)
	return nil
}
