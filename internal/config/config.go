package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Ravenhammer-Research/freebsdnet/internal/errors"
	"github.com/Ravenhammer-Research/freebsdnet/internal/log"
)

// DefaultConfigPath is where fibctl looks for its configuration.
const DefaultConfigPath = "/usr/local/etc/fibctl.conf"

// Load reads and decodes the TOML configuration file. Defaults are filled
// in; call Validate separately.
func Load(configPath string) (*Config, error) {
	configFile := filepath.Clean(configPath)

	if !filepath.IsAbs(configFile) {
		path, err := filepath.Abs(configFile)
		if err != nil {
			return nil, errors.NewConfigError("failed to get absolute path", err)
		}
		configFile = path
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		return nil, errors.NewConfigError(
			fmt.Sprintf("failed to read config file %s", configFile), err)
	}

	var config Config
	if err := toml.Unmarshal(content, &config); err != nil {
		var derr *toml.DecodeError
		if stderrors.As(err, &derr) {
			log.Errorf(derr.String())
			row, col := derr.Position()
			return nil, errors.NewConfigError(
				fmt.Sprintf("failed to parse config file (line %d, column %d)", row, col), err)
		}
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	config._absConfigFilePath = configFile
	config.applyDefaults()

	log.Debugf("Configuration file path: %s", configFile)
	return &config, nil
}

// Serialize renders the configuration back to TOML.
func (c *Config) Serialize() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}

// Path returns the absolute path the configuration was loaded from.
func (c *Config) Path() string {
	return c._absConfigFilePath
}
