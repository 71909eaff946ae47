package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "template.yaml"

// DefaultWatch lists the module files and the sources of the metadata
// driver itself, relative to build.dir. Directories cover every file below
// them.
var DefaultWatch = []string{"go.mod", "go.sum", "scripts/build.go", "cmd/buildmeta", "internal"}

// Load reads configuration from the specified YAML file and environment variables.
// Environment variables take precedence over file values.
// Environment variable format: TEMPLATE_<SECTION>_<KEY> (e.g., TEMPLATE_BUILD_PACKAGE_VERSION)
//
// An empty configPath falls back to DefaultFile when it exists and to the
// defaults otherwise. An explicit path must exist.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("TEMPLATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file, err := resolveFile(configPath)
	if err != nil {
		return nil, err
	}

	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = file

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func resolveFile(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return "", fmt.Errorf("config file not found: %s", configPath)
			}
			return "", fmt.Errorf("failed to stat config file: %w", err)
		}
		return configPath, nil
	}

	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile, nil
	}
	return "", nil
}

// setDefaults sets default values for all configuration options.
func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("build.dir", ".")
	v.SetDefault("build.package_version", "0.1.0")
	v.SetDefault("build.describe_tags", false)
	v.SetDefault("build.package", "template-go/internal/buildinfo")
	v.SetDefault("build.git_binary", "git")
	v.SetDefault("build.go_binary", "go")
	v.SetDefault("build.identity_command", "whoami")
	v.SetDefault("build.watch", DefaultWatch)
}
