package cliparse

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable. The unprefixed
// names (PORT, DATABASE_URL, ...) are honored as a fallback.
const EnvPrefix = "POLLGRAM"

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

type Config struct {
	Port               int           `yaml:"port" envconfig:"PORT"`
	DatabaseURL        string        `yaml:"database_url" envconfig:"DATABASE_URL"`
	DatabaseType       string        `yaml:"database_type" envconfig:"DATABASE_TYPE"`
	TokenSalt          string        `yaml:"token_salt" envconfig:"TOKEN_SALT"`
	Debug              bool          `yaml:"debug" envconfig:"DEBUG"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	StrictChoiceOrders bool          `yaml:"strict_choice_orders" envconfig:"STRICT_CHOICE_ORDERS"`
	EventWorkers       int           `yaml:"event_workers" envconfig:"EVENT_WORKERS"`
	ConfigFile         string        `yaml:"-" ignored:"true"`
}

// Defaults returns the configuration used when nothing else is set
func Defaults() Config {
	return Config{
		Port:            3318,
		DatabaseURL:     "file:pollgram.db",
		DatabaseType:    DatabaseSQLite,
		ShutdownTimeout: 10 * time.Second,
		EventWorkers:    4,
	}
}

// Flags holds the command-line values registered on a flag set
type Flags struct {
	fs   *pflag.FlagSet
	vals Config
}

// RegisterFlags adds the configuration flags to fs
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.vals.ConfigFile, "config", "c", "", "Path to YAML config file")
	fs.IntVarP(&f.vals.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&f.vals.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&f.vals.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&f.vals.TokenSalt, "token-salt", "", "Bearer token salt (prefer env)")

	fs.DurationVar(&f.vals.ShutdownTimeout, "shutdown-timeout", 0, "Graceful shutdown timeout")
	fs.BoolVar(&f.vals.StrictChoiceOrders, "strict-choice-orders", false, "Reject votes naming unknown choice orders")
	fs.IntVar(&f.vals.EventWorkers, "event-workers", 0, "Async event delivery workers")
	return f
}

// Load layers defaults, the YAML file, the environment and changed flags,
// in increasing order of precedence.
func (f *Flags) Load() (Config, error) {
	cfg := Defaults()

	path := f.vals.ConfigFile
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
		cfg.ConfigFile = path
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}

	f.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (f *Flags) apply(cfg *Config) {
	if f.fs.Changed("port") {
		cfg.Port = f.vals.Port
	}
	if f.fs.Changed("database-url") {
		cfg.DatabaseURL = f.vals.DatabaseURL
	}
	if f.fs.Changed("database-type") {
		cfg.DatabaseType = f.vals.DatabaseType
	}
	if f.fs.Changed("token-salt") {
		cfg.TokenSalt = f.vals.TokenSalt
	}
	if f.fs.Changed("shutdown-timeout") {
		cfg.ShutdownTimeout = f.vals.ShutdownTimeout
	}
	if f.fs.Changed("strict-choice-orders") {
		cfg.StrictChoiceOrders = f.vals.StrictChoiceOrders
	}
	if f.fs.Changed("event-workers") {
		cfg.EventWorkers = f.vals.EventWorkers
	}
}

func loadFile(path string, cfg *Config) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that required values are present and sane
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if c.DatabaseType != DatabaseSQLite && c.DatabaseType != DatabasePostgres {
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	// Secrets - MUST be provided
	if c.TokenSalt == "" {
		return errors.New("TOKEN_SALT required")
	}
	if c.EventWorkers <= 0 {
		return errors.New("event workers must be positive")
	}
	return nil
}

// ParseFlags parses args on a fresh flag set and loads the configuration
func ParseFlags(args []string) (Config, error) {
	fs := pflag.NewFlagSet("pollgram", pflag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return f.Load()
}
