package bench

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by LoadConfig.
const EnvPrefix = "POOLBENCH"

// Config controls a benchmark run.
type Config struct {
	Count    int    `envconfig:"COUNT" default:"1000000"`
	Rounds   int    `envconfig:"ROUNDS" default:"5"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	JSON     bool   `envconfig:"JSON" default:"false"`
}

// LoadConfig reads the configuration from POOLBENCH_* environment variables,
// applying defaults for anything unset.
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process(EnvPrefix, &c); err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}
	return c, nil
}

// Validate checks that the run is non-empty.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return errors.Errorf("count must be positive, got %d", c.Count)
	}
	if c.Rounds <= 0 {
		return errors.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	return nil
}
