package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret          string `yaml:"jwt_secret"`
		LoginTTLSeconds    int64  `yaml:"login_ttl_seconds"`
		RegisterTTLSeconds int64  `yaml:"register_ttl_seconds"`
		BcryptCost         int    `yaml:"bcrypt_cost"`
	} `yaml:"auth"`
	Storage struct {
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		Bucket    string `yaml:"bucket"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
	} `yaml:"storage"`
	Publisher struct {
		URL     string `yaml:"url"`
		Enabled bool   `yaml:"enabled"`
	} `yaml:"publisher"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// LoginTTL is the validity window of tokens issued at login.
func (c *Config) LoginTTL() time.Duration {
	return time.Duration(c.Auth.LoginTTLSeconds) * time.Second
}

// RegisterTTL is the validity window of tokens issued at registration.
func (c *Config) RegisterTTL() time.Duration {
	return time.Duration(c.Auth.RegisterTTLSeconds) * time.Second
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret must be set")
	}
	if config.Auth.LoginTTLSeconds == 0 {
		config.Auth.LoginTTLSeconds = 3600
	}
	if config.Auth.RegisterTTLSeconds == 0 {
		config.Auth.RegisterTTLSeconds = 300
	}

	return config, nil
}
