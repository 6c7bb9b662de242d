package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Ravenhammer-Research/freebsdnet/internal/commands"
	"github.com/Ravenhammer-Research/freebsdnet/internal/config"
	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
	"github.com/Ravenhammer-Research/freebsdnet/internal/route"
)

func main() {
	ctx := &commands.AppContext{}

	flag.StringVar(&ctx.ConfigPath, "config", config.DefaultConfigPath, "Path to configuration file")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "FreeBSD Routing Table Manager\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <command>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  routes                  List routes in a FIB\n")
		fmt.Fprintf(os.Stderr, "  add                     Add a static route\n")
		fmt.Fprintf(os.Stderr, "  delete                  Delete a route\n")
		fmt.Fprintf(os.Stderr, "  flush                   Remove gateway routes from a FIB\n")
		fmt.Fprintf(os.Stderr, "  default-route           Show the default route\n")
		fmt.Fprintf(os.Stderr, "  fibs                    Show FIB configuration\n")
		fmt.Fprintf(os.Stderr, "  interfaces              List network interfaces\n")
		fmt.Fprintf(os.Stderr, "  apply                   Install static routes from the configuration file\n")
		fmt.Fprintf(os.Stderr, "  server                  Run the HTTP API server\n")
		fmt.Fprintf(os.Stderr, "  shell                   Start an interactive routing shell\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	ctx.Table = route.New()

	cmds := []commands.Runner{
		commands.CreateRoutesCommand(),
		commands.CreateAddCommand(),
		commands.CreateDeleteCommand(),
		commands.CreateFlushCommand(),
		commands.CreateDefaultRouteCommand(),
		commands.CreateFibsCommand(),
		commands.CreateInterfacesCommand(),
		commands.CreateApplyCommand(),
		commands.CreateServerCommand(),
		commands.CreateShellCommand(),
	}

	args := flag.Args()

	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	subcommand := args[0]
	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args[1:], ctx); err != nil {
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	log.Fatalf("Unknown subcommand: %s", subcommand)
}
