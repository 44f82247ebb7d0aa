package command

import (
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "GENPLIST"

	DefaultAddr = "0.0.0.0:3788"
)

// Config is what Serve needs to run genplist.
type Config struct {
	Addr              string        `mapstructure:"addr"`
	MetricsAddr       string        `mapstructure:"metrics-addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read-header-timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown-timeout"`
}

func addConfigFlags(flags *pflag.FlagSet) {
	flags.String("addr", DefaultAddr, "Listen address for genplist.")
	flags.String("metrics-addr", "", "Listen address for Prometheus metrics. Disabled if empty.")
	flags.Duration("read-header-timeout", 5*time.Second, "Time allowed to read request headers.")
	flags.Duration("shutdown-timeout", 10*time.Second, "Time allowed for in-flight requests to finish on shutdown.")
}

// loadConfig reads the Config from flags, falling back to
// GENPLIST_* environment variables and then to flag defaults.
func loadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
