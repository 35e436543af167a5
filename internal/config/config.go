// Package config loads runtime settings for the site.
//
// Settings come from environment variables (optionally seeded from a .env
// file). A YAML file can be supplied with CONFIG_PATH or --config; values
// from the environment still win over the file.
package config

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	// Env selects the logger flavour: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the SQLite database file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"storage/site.db"`

	HTTPServer HTTPServer `yaml:"http_server"`
	Admin      Admin      `yaml:"admin"`
	SMTP       SMTP       `yaml:"smtp"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HOST" env-default:""`
	Port int    `yaml:"port" env:"PORT" env-default:"3000"`
}

// Addr returns the listen address, e.g. ":3000".
func (s HTTPServer) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Admin holds the single static credential pair guarding /admin.
type Admin struct {
	User string `yaml:"user" env:"ADMIN_USER" env-default:"admin"`
	Pass string `yaml:"pass" env:"ADMIN_PASS" env-default:"admin"`
}

type SMTP struct {
	Host   string `yaml:"host" env:"SMTP_HOST"`
	Port   int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Secure bool   `yaml:"secure" env:"SMTP_SECURE" env-default:"false"`
	User   string `yaml:"user" env:"SMTP_USER"`
	Pass   string `yaml:"pass" env:"SMTP_PASS"`
	From   string `yaml:"from" env:"SMTP_FROM"`
}

// Enabled reports whether an outbound transport is configured at all.
// Without SMTP_HOST mail requests are recorded as "mocked".
func (s SMTP) Enabled() bool {
	return s.Host != ""
}

// Sender is the envelope From address: SMTP_FROM, falling back to SMTP_USER.
func (s SMTP) Sender() string {
	if s.From != "" {
		return s.From
	}
	return s.User
}

// Load reads the configuration. path may be empty, in which case only the
// environment is consulted.
func Load(path string) (*Config, error) {
	// A missing .env is normal in production.
	_ = godotenv.Load()

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read environment: %w", err)
	}

	if cfg.HTTPServer.Port <= 0 || cfg.HTTPServer.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT: %d", cfg.HTTPServer.Port)
	}

	return &cfg, nil
}

// MustLoad resolves the config path from CONFIG_PATH or the --config flag
// and terminates the process if the configuration cannot be loaded.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to an optional YAML configuration file")
		flag.Parse()
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}

	return cfg
}
