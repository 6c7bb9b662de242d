package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Ravenhammer-Research/freebsdnet/internal/config"
	"github.com/Ravenhammer-Research/freebsdnet/internal/netaddr"
	"github.com/Ravenhammer-Research/freebsdnet/internal/route"
	"github.com/valyala/fasttemplate"
)

type Runner interface {
	Init(args []string, ctx *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	Table      *route.Table
}

// loadConfigOrFail loads and validates the configuration file. Commands
// that cannot work without one use this.
func loadConfigOrFail(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %v", err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %v", err)
	}
	return cfg, nil
}

// loadConfigIfPresent is like loadConfigOrFail, but a missing file yields
// the built-in defaults instead of an error. Read-only commands use this
// so fibctl works on a box with no config at all.
func loadConfigIfPresent(configPath string) (*config.Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return loadConfigOrFail(configPath)
}

// parseFamily maps the -4/-6 flag pair onto an address family filter.
func parseFamily(v4, v6 bool) (netaddr.Family, error) {
	switch {
	case v4 && v6:
		return 0, fmt.Errorf("-4 and -6 can not be used together")
	case v4:
		return netaddr.FamilyIPv4, nil
	case v6:
		return netaddr.FamilyIPv6, nil
	}
	return netaddr.FamilyUnknown, nil
}

// formatRecord renders one route record through the configured line
// template (general.route_format).
func formatRecord(template string, rec route.Record) string {
	gateway := rec.Gateway
	if gateway == "" {
		gateway = "link#" + strconv.Itoa(rec.IfIndex)
	}

	t := fasttemplate.New(template, "{{", "}}")
	return t.ExecuteString(map[string]interface{}{
		"destination": rec.DestinationCIDR(),
		"gateway":     gateway,
		"netmask":     rec.Netmask,
		"interface":   rec.Interface,
		"flags":       rec.Flags.String(),
		"fib":         strconv.Itoa(rec.FIB),
		"expire":      strconv.FormatInt(rec.Expire, 10),
		"mtu":         strconv.FormatUint(rec.MTU, 10),
	})
}
