package intake

import "fmt"

type Config struct {
	// MaxConcurrent caps parallel dispatches per submission. 0 means one
	// goroutine per matched supplier.
	MaxConcurrent int `mapstructure:"max_concurrent"`
}

func DefaultConfig() *Config {
	return &Config{}
}

func (c *Config) Validate() error {
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("max_concurrent must not be negative")
	}
	return nil
}
