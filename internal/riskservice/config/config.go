// Package config handles configuration for the risk evaluation mock.
package config

import (
	"flag"
	"os"

	"github.com/mycompany/credit-platform/internal/flagx"
)

// Config holds runtime settings for the risk service.
type Config struct {
	EndpointAddr string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8083"
}

// LoadConfig builds a Config by applying defaults and then command-line
// flags. The mock has no database or secrets, so there is no JSON layer.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
