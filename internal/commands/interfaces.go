package commands

import (
	"flag"
	"fmt"
	"net"
	"strings"
)

func CreateInterfacesCommand() *InterfacesCommand {
	gc := &InterfacesCommand{
		fs: flag.NewFlagSet("interfaces", flag.ExitOnError),
	}
	return gc
}

type InterfacesCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
}

func (g *InterfacesCommand) Name() string {
	return g.fs.Name()
}

func (g *InterfacesCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx
	return g.fs.Parse(args)
}

func (g *InterfacesCommand) Run() error {
	ifaces, err := net.Interfaces()
	if err != nil {
		return err
	}

	for _, ifi := range ifaces {
		state := "down"
		if ifi.Flags&net.FlagUp != 0 {
			state = "up"
		}

		var addrs []string
		if list, err := ifi.Addrs(); err == nil {
			for _, a := range list {
				addrs = append(addrs, a.String())
			}
		}

		fmt.Printf("%-12s idx=%-3d mtu=%-5d %-4s %s\n",
			ifi.Name, ifi.Index, ifi.MTU, state, strings.Join(addrs, " "))
	}
	return nil
}
