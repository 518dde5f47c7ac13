package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the service configuration. Values layer in precedence order:
// defaults, then an optional yaml file, then environment variables.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	Models struct {
		PM25URL string `yaml:"pm25_url"`
		PM10URL string `yaml:"pm10_url"`
	} `yaml:"models"`

	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`

	// SaveTrainingData turns on capture of submitted readings for retraining.
	SaveTrainingData bool `yaml:"save_training_data"`

	// NoiseSeed pins the forecast noise source; 0 means seed from the clock.
	NoiseSeed int64 `yaml:"noise_seed"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.ListenAddr = ":8080"
	return cfg
}

// Load reads an optional yaml file and applies environment overrides. An
// empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("PM25_MODEL_URL"); v != "" {
		c.Models.PM25URL = v
	}
	if v := os.Getenv("PM10_MODEL_URL"); v != "" {
		c.Models.PM10URL = v
	}
	if v := os.Getenv("POSTGRES_URL"); v != "" {
		c.Postgres.URL = v
	}
	if v := os.Getenv("SAVE_TRAINING_DATA"); v != "" {
		c.SaveTrainingData = v == "true"
	}
	if v := os.Getenv("NOISE_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.NoiseSeed = seed
		}
	}
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr is required")
	}
	if c.Models.PM25URL == "" && c.Models.PM10URL == "" {
		return fmt.Errorf("at least one model url is required")
	}
	return nil
}
