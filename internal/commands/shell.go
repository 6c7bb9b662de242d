package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Ravenhammer-Research/freebsdnet/internal/config"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
	"github.com/chzyer/readline"
)

func CreateShellCommand() *ShellCommand {
	gc := &ShellCommand{
		fs: flag.NewFlagSet("shell", flag.ExitOnError),
	}

	gc.fs.IntVar(&gc.fib, "fib", -1, "FIB number shell commands operate on (default: the process FIB)")

	return gc
}

// ShellCommand runs an interactive routing table shell with history and
// tab completion.
type ShellCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config

	fib         int
	historyFile string
}

func (g *ShellCommand) Name() string {
	return g.fs.Name()
}

func (g *ShellCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}

	if cfg, err := loadConfigIfPresent(ctx.ConfigPath); err != nil {
		return err
	} else {
		g.cfg = cfg
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "/tmp"
	}
	g.historyFile = filepath.Join(homeDir, ".fibctl_history")

	return nil
}

func (g *ShellCommand) completer() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("show",
			readline.PcItem("routes"),
			readline.PcItem("default"),
			readline.PcItem("fibs"),
			readline.PcItem("interfaces"),
		),
		readline.PcItem("route",
			readline.PcItem("add"),
			readline.PcItem("del"),
		),
		readline.PcItem("flush"),
		readline.PcItem("fib"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

func (g *ShellCommand) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "fibctl> ",
		HistoryFile:     g.historyFile,
		AutoComplete:    g.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %v", err)
	}
	defer func() {
		_ = rl.Close()
	}()

	fmt.Println("fibctl interactive shell. Type 'help' for commands, 'exit' to leave.")

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		if err := g.dispatch(strings.Fields(line)); err != nil {
			fmt.Printf("error: %v\n", err)
		}
	}
}

func (g *ShellCommand) dispatch(parts []string) error {
	switch parts[0] {
	case "help":
		g.printHelp()
		return nil
	case "show":
		return g.handleShow(parts[1:])
	case "route":
		return g.handleRoute(parts[1:])
	case "flush":
		return g.handleFlush()
	case "fib":
		return g.handleFib(parts[1:])
	}
	return fmt.Errorf("unknown command %q, type 'help'", parts[0])
}

func (g *ShellCommand) printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  show routes [4|6]           List routes in the current FIB")
	fmt.Println("  show default [6]            Show the default route")
	fmt.Println("  show fibs                   Show FIB configuration")
	fmt.Println("  show interfaces             List network interfaces")
	fmt.Println("  route add <dest> <gw> [if]  Add a static route")
	fmt.Println("  route del <dest> [gw]       Delete a route")
	fmt.Println("  flush                       Remove all gateway routes from the current FIB")
	fmt.Println("  fib [n]                     Show or switch the current FIB")
	fmt.Println("  exit                        Leave the shell")
}

func (g *ShellCommand) handleShow(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: show <routes|default|fibs|interfaces>")
	}

	switch args[0] {
	case "routes":
		family := netaddr.FamilyUnknown
		if len(args) > 1 {
			switch args[1] {
			case "4":
				family = netaddr.FamilyIPv4
			case "6":
				family = netaddr.FamilyIPv6
			default:
				return fmt.Errorf("usage: show routes [4|6]")
			}
		}
		records, err := g.ctx.Table.GetEntries(g.fib, family)
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Println(formatRecord(g.cfg.General.RouteFormat, rec))
		}
		return nil

	case "default":
		family := netaddr.FamilyIPv4
		if len(args) > 1 && args[1] == "6" {
			family = netaddr.FamilyIPv6
		}
		rec, err := g.ctx.Table.DefaultGateway(g.fib, family)
		if err != nil {
			return err
		}
		fmt.Println(formatRecord(g.cfg.General.RouteFormat, rec))
		return nil

	case "fibs":
		count, err := g.ctx.Table.FibCount()
		if err != nil {
			return err
		}
		def, err := g.ctx.Table.DefaultFib()
		if err != nil {
			return err
		}
		fmt.Printf("FIBs configured: %d, process FIB: %d\n", count, def)
		return nil

	case "interfaces":
		cmd := CreateInterfacesCommand()
		cmd.ctx = g.ctx
		return cmd.Run()
	}
	return fmt.Errorf("unknown show target %q", args[0])
}

func (g *ShellCommand) handleRoute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: route <add|del> ...")
	}

	switch args[0] {
	case "add":
		if len(args) < 3 {
			return fmt.Errorf("usage: route add <destination> <gateway> [interface]")
		}
		iface := ""
		if len(args) > 3 {
			iface = args[3]
		}
		if err := g.ctx.Table.AddEntry(args[1], args[2], iface, 0, g.fib); err != nil {
			return err
		}
		fmt.Printf("added %s via %s\n", args[1], args[2])
		return nil

	case "del":
		if len(args) < 2 {
			return fmt.Errorf("usage: route del <destination> [gateway]")
		}
		gateway := ""
		if len(args) > 2 {
			gateway = args[2]
		}
		if err := g.ctx.Table.DeleteEntry(args[1], gateway, g.fib); err != nil {
			return err
		}
		fmt.Printf("deleted %s\n", args[1])
		return nil
	}
	return fmt.Errorf("unknown route action %q", args[0])
}

func (g *ShellCommand) handleFlush() error {
	deleted, err := g.ctx.Table.Flush(g.fib, netaddr.FamilyUnknown)
	if err != nil {
		return err
	}
	fmt.Printf("flushed %d route(s)\n", deleted)
	return nil
}

func (g *ShellCommand) handleFib(args []string) error {
	if len(args) == 0 {
		if g.fib < 0 {
			def, err := g.ctx.Table.DefaultFib()
			if err != nil {
				return err
			}
			fmt.Printf("current FIB: %d (process default)\n", def)
			return nil
		}
		fmt.Printf("current FIB: %d\n", g.fib)
		return nil
	}

	fib, err := strconv.Atoi(args[0])
	if err != nil || fib < 0 {
		return fmt.Errorf("usage: fib <non-negative number>")
	}
	g.fib = fib
	fmt.Printf("current FIB: %d\n", g.fib)
	return nil
}
