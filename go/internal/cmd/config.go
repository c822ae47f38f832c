package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mcdev12/ipl-auction/go/internal/auction"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration loaded from YAML, with secrets and
// endpoints taken from the environment.
type Config struct {
	Auction auction.Config `yaml:"auction"`
	NATS    struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url"`
	} `yaml:"nats"`
}

func loadConfig(path string) (*Config, error) {
	config := &Config{Auction: auction.DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// No config file means defaults.
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func jwtTTL() time.Duration {
	return time.Duration(getEnvAsInt("JWT_TTL_HOURS", 24)) * time.Hour
}
