package config

import (
	"fmt"
	"net"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log-format" env:"LOG_FORMAT" env-default:"json"`
	HTTP      HTTP   `yaml:"http"`
	Games     Games  `yaml:"games"`
}

type HTTP struct {
	Host        string        `yaml:"host" env:"HTTP_HOST" env-default:""`
	Port        string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout time.Duration `yaml:"read-timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	Heartbeat   time.Duration `yaml:"heartbeat" env:"HTTP_HEARTBEAT" env-default:"15s"`
}

// Games controls how long idle games are kept in memory.
type Games struct {
	TTL           time.Duration `yaml:"ttl" env:"GAME_TTL" env-default:"24h"`
	SweepInterval time.Duration `yaml:"sweep-interval" env:"GAME_SWEEP_INTERVAL" env-default:"10m"`
}

// Load reads the YAML file at path, if given, and applies environment
// overrides. With an empty path only the environment and defaults are used.
func Load(path string) (*Config, error) {
	conf := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(conf)
	} else {
		err = cleanenv.ReadConfig(path, conf)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to load config: %w", err)
	}

	return conf, nil
}

// MustLoad - load configuration or panic.
func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		panic(err)
	}

	return conf
}

// Addr is the listen address of the HTTP server.
func (that HTTP) Addr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
