package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application level configuration loaded from file, environment and flags.
type Config struct {
	RunAddress        string        `yaml:"run_address"`
	DatabaseURI       string        `yaml:"database_uri"`
	RedisAddress      string        `yaml:"redis_address"`
	AMQPURL           string        `yaml:"amqp_url"`
	JWTSecret         string        `yaml:"jwt_secret"`
	SessionTTL        time.Duration `yaml:"session_ttl"`
	PasswordCost      int           `yaml:"password_cost"`
	PaymentSecret     string        `yaml:"payment_secret"`
	PaymentWindow     time.Duration `yaml:"payment_window"`
	PriorityThreshold time.Duration `yaml:"priority_threshold"`
	OrderRetention    time.Duration `yaml:"order_retention"`
	SweepInterval     time.Duration `yaml:"sweep_interval"`
	SweepBatchSize    int           `yaml:"sweep_batch_size"`
	WorkerPoolSize    int           `yaml:"worker_pool_size"`
	MaxProteinTarget  int           `yaml:"max_protein_target"`
	TokenMaxAttempts  int           `yaml:"token_max_attempts"`
	MenuCacheTTL      time.Duration `yaml:"menu_cache_ttl"`
	LegacyTransitions bool          `yaml:"legacy_transitions"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	LogLevel          string        `yaml:"log_level"`
}

const (
	defaultRunAddress        = ":8080"
	defaultJWTSecret         = "change-me-in-production"
	defaultSessionTTL        = 7 * 24 * time.Hour
	defaultPasswordCost      = 10
	defaultPaymentWindow     = 10 * time.Minute
	defaultPriorityThreshold = 15 * time.Minute
	defaultOrderRetention    = 30 * 24 * time.Hour
	defaultSweepInterval     = 30 * time.Second
	defaultSweepBatchSize    = 64
	defaultWorkerPoolSize    = 4
	defaultMaxProteinTarget  = 2000
	defaultTokenMaxAttempts  = 5
	defaultMenuCacheTTL      = time.Minute
	defaultShutdownTimeout   = 10 * time.Second
	defaultLogLevel          = "info"
)

// Load parses configuration from the optional config file, environment variables and flags.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func defaults() *Config {
	return &Config{
		RunAddress:        defaultRunAddress,
		JWTSecret:         defaultJWTSecret,
		SessionTTL:        defaultSessionTTL,
		PasswordCost:      defaultPasswordCost,
		PaymentWindow:     defaultPaymentWindow,
		PriorityThreshold: defaultPriorityThreshold,
		OrderRetention:    defaultOrderRetention,
		SweepInterval:     defaultSweepInterval,
		SweepBatchSize:    defaultSweepBatchSize,
		WorkerPoolSize:    defaultWorkerPoolSize,
		MaxProteinTarget:  defaultMaxProteinTarget,
		TokenMaxAttempts:  defaultTokenMaxAttempts,
		MenuCacheTTL:      defaultMenuCacheTTL,
		ShutdownTimeout:   defaultShutdownTimeout,
		LogLevel:          defaultLogLevel,
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := defaults()

	if path := configPath(args, lookup); path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.RunAddress = getString(lookup, "RUN_ADDRESS", cfg.RunAddress)
	cfg.DatabaseURI = getString(lookup, "DATABASE_URI", cfg.DatabaseURI)
	cfg.RedisAddress = getString(lookup, "REDIS_ADDRESS", cfg.RedisAddress)
	cfg.AMQPURL = getString(lookup, "AMQP_URL", cfg.AMQPURL)
	cfg.JWTSecret = getString(lookup, "JWT_SECRET", cfg.JWTSecret)
	cfg.SessionTTL = getDuration(lookup, "SESSION_TTL", cfg.SessionTTL)
	cfg.PasswordCost = getInt(lookup, "PASSWORD_COST", cfg.PasswordCost)
	cfg.PaymentSecret = getString(lookup, "PAYMENT_SECRET", cfg.PaymentSecret)
	cfg.PaymentWindow = getDuration(lookup, "PAYMENT_WINDOW", cfg.PaymentWindow)
	cfg.PriorityThreshold = getDuration(lookup, "PRIORITY_THRESHOLD", cfg.PriorityThreshold)
	cfg.OrderRetention = getDuration(lookup, "ORDER_RETENTION", cfg.OrderRetention)
	cfg.SweepInterval = getDuration(lookup, "SWEEP_INTERVAL", cfg.SweepInterval)
	cfg.SweepBatchSize = getInt(lookup, "SWEEP_BATCH_SIZE", cfg.SweepBatchSize)
	cfg.WorkerPoolSize = getInt(lookup, "WORKER_POOL_SIZE", cfg.WorkerPoolSize)
	cfg.MaxProteinTarget = getInt(lookup, "MAX_PROTEIN_TARGET", cfg.MaxProteinTarget)
	cfg.TokenMaxAttempts = getInt(lookup, "TOKEN_MAX_ATTEMPTS", cfg.TokenMaxAttempts)
	cfg.MenuCacheTTL = getDuration(lookup, "MENU_CACHE_TTL", cfg.MenuCacheTTL)
	cfg.LegacyTransitions = getBool(lookup, "LEGACY_TRANSITIONS", cfg.LegacyTransitions)
	cfg.ShutdownTimeout = getDuration(lookup, "SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.LogLevel = getString(lookup, "LOG_LEVEL", cfg.LogLevel)

	fs := flag.NewFlagSet("campusbites", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var configFile string
	fs.StringVar(&configFile, "config", "", "Path to YAML config file")
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.RedisAddress, "redis", cfg.RedisAddress, "Redis address for the menu cache")
	fs.StringVar(&cfg.AMQPURL, "amqp", cfg.AMQPURL, "RabbitMQ URL for order event fan-out")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.PaymentSecret, "payment-secret", cfg.PaymentSecret, "Secret for payment signature verification")
	fs.IntVar(&cfg.PasswordCost, "password-cost", cfg.PasswordCost, "bcrypt cost for stored passwords")
	fs.IntVar(&cfg.SweepBatchSize, "sweep-batch", cfg.SweepBatchSize, "Maximum expired orders cancelled per sweep")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent workers")
	fs.IntVar(&cfg.MaxProteinTarget, "max-protein", cfg.MaxProteinTarget, "Largest accepted protein target in grams")
	fs.IntVar(&cfg.TokenMaxAttempts, "token-attempts", cfg.TokenMaxAttempts, "Attempts to find a free pickup token")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Minimum log level: debug, info, warn or error")
	fs.BoolVar(&cfg.LegacyTransitions, "legacy-transitions", cfg.LegacyTransitions, "Allow any post-creation status change")

	durations := []struct {
		name   string
		target *time.Duration
		usage  string
	}{
		{"session-ttl", &cfg.SessionTTL, "Lifetime of issued session tokens"},
		{"payment-window", &cfg.PaymentWindow, "Time allowed to pay for an order"},
		{"priority-threshold", &cfg.PriorityThreshold, "Age after which unfinished orders are flagged"},
		{"retention", &cfg.OrderRetention, "How long orders are kept"},
		{"sweep-interval", &cfg.SweepInterval, "Interval between expiry sweeps"},
		{"menu-cache-ttl", &cfg.MenuCacheTTL, "Menu cache entry lifetime"},
		{"shutdown-timeout", &cfg.ShutdownTimeout, "Graceful shutdown timeout"},
	}
	raw := make([]string, len(durations))
	for i, d := range durations {
		raw[i] = d.target.String()
		fs.StringVar(&raw[i], d.name, raw[i], d.usage)
	}

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	for i, d := range durations {
		parsed, err := time.ParseDuration(raw[i])
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.target = parsed
	}

	if err := readSecretFile(lookup, "JWT_SECRET_FILE", &cfg.JWTSecret); err != nil {
		return nil, err
	}
	if err := readSecretFile(lookup, "PAYMENT_SECRET_FILE", &cfg.PaymentSecret); err != nil {
		return nil, err
	}

	cfg.normalize()

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentSecret == "" {
		return nil, fmt.Errorf("payment secret must be provided")
	}

	return cfg, nil
}

func (c *Config) normalize() {
	def := defaults()

	if c.WorkerPoolSize <= 0 {
		c.WorkerPoolSize = def.WorkerPoolSize
	}
	if c.SweepBatchSize <= 0 {
		c.SweepBatchSize = def.SweepBatchSize
	}
	if c.MaxProteinTarget <= 0 {
		c.MaxProteinTarget = def.MaxProteinTarget
	}
	if c.TokenMaxAttempts <= 0 {
		c.TokenMaxAttempts = def.TokenMaxAttempts
	}
	if c.PasswordCost <= 0 {
		c.PasswordCost = def.PasswordCost
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = def.SessionTTL
	}
	if c.PaymentWindow <= 0 {
		c.PaymentWindow = def.PaymentWindow
	}
	if c.PriorityThreshold <= 0 {
		c.PriorityThreshold = def.PriorityThreshold
	}
	if c.OrderRetention <= 0 {
		c.OrderRetention = def.OrderRetention
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = def.SweepInterval
	}
	if c.MenuCacheTTL <= 0 {
		c.MenuCacheTTL = def.MenuCacheTTL
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = def.ShutdownTimeout
	}
}

// configPath finds the config file from the -config flag or CONFIG_FILE.
func configPath(args []string, lookup envLookup) string {
	for i, arg := range args {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !strings.HasPrefix(arg, "-") || name != "config" {
			continue
		}
		if hasValue {
			return value
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return getString(lookup, "CONFIG_FILE", "")
}

func readFile(path string, cfg *Config) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

func readSecretFile(lookup envLookup, key string, target *string) error {
	path, ok := lookup(key)
	if !ok || path == "" {
		return nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", strings.ToLower(key), err)
	}
	*target = strings.TrimSpace(string(content))
	return nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
