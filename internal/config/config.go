// Package config provides configuration management for template-go.
package config

// Config is the root configuration structure.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Build   BuildConfig   `mapstructure:"build"`

	// File is the configuration file that was read, empty when none was used.
	File string `mapstructure:"-"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// BuildConfig controls how build metadata is derived.
type BuildConfig struct {
	Dir             string   `mapstructure:"dir" validate:"required"`
	PackageVersion  string   `mapstructure:"package_version" validate:"required,semver"`
	DescribeTags    bool     `mapstructure:"describe_tags"` // derive VERSION from the nearest git tag
	Package         string   `mapstructure:"package" validate:"required"`
	GitBinary       string   `mapstructure:"git_binary" validate:"required"`
	GoBinary        string   `mapstructure:"go_binary" validate:"required"`
	IdentityCommand string   `mapstructure:"identity_command"` // empty disables the command fallback
	Watch           []string `mapstructure:"watch" validate:"dive,required"`
}
