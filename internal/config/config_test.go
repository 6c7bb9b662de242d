package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fibctl.conf")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempConfig(t, `
[general]
api_listen = "127.0.0.1:9090"
fib = 1

[[route]]
destination = "10.0.0.0/24"
gateway = "192.168.1.1"
interface = "em0"

[[route]]
destination = "2001:db8::/48"
gateway = "2001:db8::1"
fib = 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.General.APIListen != "127.0.0.1:9090" {
		t.Errorf("APIListen = %q, want %q", cfg.General.APIListen, "127.0.0.1:9090")
	}
	if cfg.DefaultFIB() != 1 {
		t.Errorf("DefaultFIB() = %d, want 1", cfg.DefaultFIB())
	}
	if len(cfg.Routes) != 2 {
		t.Fatalf("len(Routes) = %d, want 2", len(cfg.Routes))
	}
	if cfg.Routes[0].EffectiveFIB(cfg) != 1 {
		t.Errorf("Routes[0].EffectiveFIB = %d, want general fib 1", cfg.Routes[0].EffectiveFIB(cfg))
	}
	if cfg.Routes[1].EffectiveFIB(cfg) != 2 {
		t.Errorf("Routes[1].EffectiveFIB = %d, want 2", cfg.Routes[1].EffectiveFIB(cfg))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeTempConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.General == nil {
		t.Fatal("General = nil after defaults")
	}
	if cfg.General.APIListen != "127.0.0.1:8080" {
		t.Errorf("APIListen = %q, want default", cfg.General.APIListen)
	}
	if cfg.General.RouteFormat != DefaultRouteFormat {
		t.Errorf("RouteFormat = %q, want default", cfg.General.RouteFormat)
	}
	if cfg.DefaultFIB() != -1 {
		t.Errorf("DefaultFIB() = %d, want -1 (process default)", cfg.DefaultFIB())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.conf")); err == nil {
		t.Fatal("Load expected error for missing file")
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeTempConfig(t, "[general\napi_listen = ")
	if _, err := Load(path); err == nil {
		t.Fatal("Load expected error for malformed TOML")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantSub string
	}{
		{
			name: "missing gateway",
			content: `
[[route]]
destination = "10.0.0.0/24"
`,
			wantSub: "gateway",
		},
		{
			name: "bad destination",
			content: `
[[route]]
destination = "10.0.0.0/40"
gateway = "192.168.1.1"
`,
			wantSub: "destination",
		},
		{
			name: "family mismatch",
			content: `
[[route]]
destination = "10.0.0.0/24"
gateway = "2001:db8::1"
`,
			wantSub: "family",
		},
		{
			name: "bad api listen",
			content: `
[general]
api_listen = "no-port-here"
`,
			wantSub: "host:port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeTempConfig(t, tt.content))
			if err != nil {
				t.Fatalf("Load error: %v", err)
			}
			err = cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("Validate() = %q, want mention of %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	path := writeTempConfig(t, `
[general]
fib = 3

[[route]]
destination = "10.0.0.0/24"
gateway = "192.168.1.1"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	buf, err := cfg.Serialize()
	if err != nil {
		t.Fatalf("Serialize error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "fib = 3") || !strings.Contains(out, "10.0.0.0/24") {
		t.Errorf("serialized config missing expected fields:\n%s", out)
	}
}
