package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig holds the logging-related configuration.
type LoggingConfig struct {
	Level string `mapstructure:"log_level"`
}

// MonitorConfig holds the poll-loop configuration. Intervals and timeouts
// are in seconds.
type MonitorConfig struct {
	PollInterval int `mapstructure:"poll_interval"`
	ProbeTimeout int `mapstructure:"probe_timeout"`
}

// ActuatorConfig holds the control-command configuration.
type ActuatorConfig struct {
	CommandTimeout int `mapstructure:"command_timeout"`
}

// DockerConfig holds the container-runtime invocation configuration.
type DockerConfig struct {
	Binary string `mapstructure:"binary"`
}

// ChangelogConfig holds the changelog persistence configuration.
type ChangelogConfig struct {
	Path string `mapstructure:"path"`
}

// Config is the top-level configuration struct.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"log"`
	Monitor   MonitorConfig   `mapstructure:"monitor"`
	Actuator  ActuatorConfig  `mapstructure:"actuator"`
	Docker    DockerConfig    `mapstructure:"docker"`
	Changelog ChangelogConfig `mapstructure:"changelog"`
}

// InitConfig performs the initial configuration: setting defaults, specifying the config file, and reading it.
func InitConfig() error {
	// Set defaults for each sub-configuration.
	viper.SetDefault("server.port", 5500)
	viper.SetDefault("log.log_level", "INFO")
	viper.SetDefault("monitor.poll_interval", 30)
	viper.SetDefault("monitor.probe_timeout", 10)
	viper.SetDefault("actuator.command_timeout", 30)
	viper.SetDefault("docker.binary", "docker")
	viper.SetDefault("changelog.path", "data/changelog.json")

	// Specify the config file details.
	viper.SetConfigName("config") // Looks for config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".") // current directory

	// Read the config file if available.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// If the file is not found, just continue with defaults and env vars.
	}

	// Enable automatic environment variable binding.
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return nil
}

// Load unmarshals the configuration into the Config struct.
func Load() (*Config, error) {
	if err := InitConfig(); err != nil {
		return nil, err
	}
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}
	return &config, nil
}
