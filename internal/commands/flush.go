package commands

import (
	"flag"

	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
)

func CreateFlushCommand() *FlushCommand {
	gc := &FlushCommand{
		fs: flag.NewFlagSet("flush", flag.ExitOnError),
	}

	gc.fs.IntVar(&gc.fib, "fib", -1, "FIB number to flush (default: the process FIB)")
	gc.fs.BoolVar(&gc.v4, "4", false, "Flush IPv4 routes only")
	gc.fs.BoolVar(&gc.v6, "6", false, "Flush IPv6 routes only")

	return gc
}

type FlushCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext

	fib int
	v4  bool
	v6  bool
}

func (g *FlushCommand) Name() string {
	return g.fs.Name()
}

func (g *FlushCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx
	return g.fs.Parse(args)
}

func (g *FlushCommand) Run() error {
	family, err := parseFamily(g.v4, g.v6)
	if err != nil {
		return err
	}

	deleted, err := g.ctx.Table.Flush(g.fib, family)
	if err != nil {
		return err
	}

	log.Infof("Flushed %d route(s)", deleted)
	return nil
}
