package commands

import (
	"flag"
	"fmt"
)

func CreateFibsCommand() *FibsCommand {
	gc := &FibsCommand{
		fs: flag.NewFlagSet("fibs", flag.ExitOnError),
	}
	return gc
}

type FibsCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
}

func (g *FibsCommand) Name() string {
	return g.fs.Name()
}

func (g *FibsCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx
	return g.fs.Parse(args)
}

func (g *FibsCommand) Run() error {
	count, err := g.ctx.Table.FibCount()
	if err != nil {
		return err
	}
	def, err := g.ctx.Table.DefaultFib()
	if err != nil {
		return err
	}

	fmt.Printf("FIBs configured: %d (0..%d)\n", count, count-1)
	fmt.Printf("Process FIB:     %d\n", def)
	return nil
}
