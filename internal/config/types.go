package config

type Config struct {
	// General holds general configuration.
	General *GeneralConfig `toml:"general"`
	// Routes lists static routes installed by "fibctl apply". You can add
	// multiple [[route]] blocks.
	Routes []*StaticRoute `toml:"route,omitempty"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// APIListen is the host:port the HTTP API server binds to (default: 127.0.0.1:8080).
	APIListen string `toml:"api_listen" json:"api_listen" validate:"omitempty,hostname_port"`
	// FIB is the routing table operations use when no -fib flag is given (default: the process FIB).
	FIB *int `toml:"fib,omitempty" json:"fib,omitempty" validate:"omitempty,gte=0"`
	// RouteFormat is the line format for "fibctl routes". Available variables:
	// {{destination}}, {{gateway}}, {{netmask}}, {{interface}}, {{flags}}, {{fib}}, {{expire}}.
	RouteFormat string `toml:"route_format" json:"route_format"`
}

type StaticRoute struct {
	// Destination is the route destination in CIDR form (or a bare IP for a host route).
	Destination string `toml:"destination" json:"destination" validate:"required"`
	// Gateway is the next-hop IP.
	Gateway string `toml:"gateway" json:"gateway" validate:"required,ip"`
	// Interface optionally pins the route to an interface.
	Interface string `toml:"interface,omitempty" json:"interface,omitempty"`
	// FIB is the routing table to install the route into (default: general.fib).
	FIB *int `toml:"fib,omitempty" json:"fib,omitempty" validate:"omitempty,gte=0"`
}

// DefaultRouteFormat is used when general.route_format is not set.
const DefaultRouteFormat = "{{destination}} via {{gateway}} dev {{interface}} flags={{flags}} fib={{fib}}"

// Default returns a configuration with every field at its built-in
// default, as if an empty file had been loaded.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills unset fields after decoding.
func (c *Config) applyDefaults() {
	if c.General == nil {
		c.General = &GeneralConfig{}
	}
	if c.General.APIListen == "" {
		c.General.APIListen = "127.0.0.1:8080"
	}
	if c.General.RouteFormat == "" {
		c.General.RouteFormat = DefaultRouteFormat
	}
}

// DefaultFIB returns the configured default fib, or -1 meaning the process
// default.
func (c *Config) DefaultFIB() int {
	if c.General != nil && c.General.FIB != nil {
		return *c.General.FIB
	}
	return -1
}

// EffectiveFIB returns the fib a static route is installed into.
func (r *StaticRoute) EffectiveFIB(c *Config) int {
	if r.FIB != nil {
		return *r.FIB
	}
	return c.DefaultFIB()
}
