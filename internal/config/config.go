package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Auth strategies accepted by AUTH_STRATEGY.
const (
	AuthStrategyHMAC = "hmac"
	AuthStrategyJWT  = "jwt"
)

// Config holds application level configuration loaded from .env, environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	RedisAddr       string
	JWTSecret       string
	AuthStrategy    string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	AnalysisPollInterval time.Duration
	WorkerPoolSize       int
	AnalysisBatchSize    int

	HTTPClientTimeout time.Duration

	LLM   LLMConfig
	News  NewsConfig
	Chain ChainConfig

	SeedDemo    bool
	DemoBalance decimal.Decimal
	ProPrice    decimal.Decimal
}

// LLMConfig points at an OpenAI compatible chat completion API.
type LLMConfig struct {
	APIKey Secret
	URL    string
	Model  string
}

// NewsConfig configures the news search service and its cache.
type NewsConfig struct {
	APIKey           Secret
	URL              string
	Keywords         int
	PageSize         int
	CacheTTL         time.Duration
	FallbackCategory string
}

// ChainConfig is display configuration for simulated provenance records.
type ChainConfig struct {
	RPCURL      string
	ChainID     int
	ExplorerURL string
	DeployerKey Secret
	BaseAPIKey  Secret
}

const (
	defaultRunAddress           = ":8080"
	defaultJWTSecret            = "change-me-in-production"
	defaultAuthStrategy         = AuthStrategyHMAC
	defaultLogLevel             = "info"
	defaultLogFormat            = "json"
	defaultShutdownTimeout      = 10 * time.Second
	defaultAnalysisPollInterval = time.Second
	defaultWorkerPoolSize       = 4
	defaultAnalysisBatchSize    = 16
	defaultHTTPClientTimeout    = 10 * time.Second

	defaultLLMURL   = "https://api.groq.com/openai/v1"
	defaultLLMModel = "llama3-70b-8192"

	defaultNewsURL          = "https://newsapi.org"
	defaultNewsKeywords     = 5
	defaultNewsPageSize     = 5
	defaultNewsCacheTTL     = 10 * time.Minute
	defaultFallbackCategory = "technology"

	defaultMonadRPCURL      = "https://testnet-rpc.monad.xyz/"
	defaultMonadChainID     = 10143
	defaultMonadExplorerURL = "https://testnet.monadexplorer.com"
)

var (
	defaultDemoBalance = decimal.RequireFromString("0.05")
	defaultProPrice    = decimal.RequireFromString("0.01")
)

// Load parses configuration from an optional .env file, environment variables and flags.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		RedisAddr:            getString(lookup, "REDIS_ADDR", ""),
		JWTSecret:            getString(lookup, "JWT_SECRET", defaultJWTSecret),
		AuthStrategy:         getString(lookup, "AUTH_STRATEGY", defaultAuthStrategy),
		LogLevel:             getString(lookup, "LOG_LEVEL", defaultLogLevel),
		LogFormat:            getString(lookup, "LOG_FORMAT", defaultLogFormat),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		AnalysisPollInterval: getDuration(lookup, "ANALYSIS_POLL_INTERVAL", defaultAnalysisPollInterval),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		AnalysisBatchSize:    getInt(lookup, "ANALYSIS_BATCH_SIZE", defaultAnalysisBatchSize),
		HTTPClientTimeout:    getDuration(lookup, "HTTP_CLIENT_TIMEOUT", defaultHTTPClientTimeout),
		LLM: LLMConfig{
			APIKey: NewSecret(getString(lookup, "LLM_API_KEY", getString(lookup, "GROQ_API_KEY", ""))),
			URL:    getString(lookup, "LLM_API_URL", defaultLLMURL),
			Model:  getString(lookup, "LLM_MODEL", defaultLLMModel),
		},
		News: NewsConfig{
			APIKey:           NewSecret(getString(lookup, "NEWS_API_KEY", "")),
			URL:              getString(lookup, "NEWS_API_URL", defaultNewsURL),
			Keywords:         getInt(lookup, "NEWS_KEYWORDS", defaultNewsKeywords),
			PageSize:         getInt(lookup, "NEWS_PAGE_SIZE", defaultNewsPageSize),
			CacheTTL:         getDuration(lookup, "NEWS_CACHE_TTL", defaultNewsCacheTTL),
			FallbackCategory: getString(lookup, "NEWS_FALLBACK_CATEGORY", defaultFallbackCategory),
		},
		Chain: ChainConfig{
			RPCURL:      getString(lookup, "MONAD_RPC_URL", defaultMonadRPCURL),
			ChainID:     getInt(lookup, "MONAD_CHAIN_ID", defaultMonadChainID),
			ExplorerURL: getString(lookup, "MONAD_EXPLORER_URL", defaultMonadExplorerURL),
			DeployerKey: NewSecret(getString(lookup, "DEPLOYER_PRIVATE_KEY", "")),
			BaseAPIKey:  NewSecret(getString(lookup, "BASE_API_KEY", "")),
		},
		SeedDemo:    getBool(lookup, "SEED_DEMO", true),
		DemoBalance: getDecimal(lookup, "DEMO_BALANCE", defaultDemoBalance),
		ProPrice:    getDecimal(lookup, "PRO_PRICE_ETH", defaultProPrice),
	}

	flags := flag.NewFlagSet("meetsum", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var (
		pollIntervalStr    = cfg.AnalysisPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		clientTimeoutStr   = cfg.HTTPClientTimeout.String()
	)

	flags.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	flags.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN, in-memory storage when empty")
	flags.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for the news cache")
	flags.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	flags.StringVar(&cfg.AuthStrategy, "auth-strategy", cfg.AuthStrategy, "Token strategy: hmac or jwt")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level")
	flags.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent analysis workers")
	flags.StringVar(&pollIntervalStr, "poll-interval", pollIntervalStr, "Interval between pending analysis polls")
	flags.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	flags.StringVar(&clientTimeoutStr, "client-timeout", clientTimeoutStr, "Timeout for outbound HTTP calls")
	flags.IntVar(&cfg.AnalysisBatchSize, "poll-batch", cfg.AnalysisBatchSize, "Maximum analyses per polling batch")
	flags.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "Create the demo account on start")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.AnalysisPollInterval, err = time.ParseDuration(pollIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid poll interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.HTTPClientTimeout, err = time.ParseDuration(clientTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid client timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.normalize()

	switch cfg.AuthStrategy {
	case AuthStrategyHMAC, AuthStrategyJWT:
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.AuthStrategy)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}

	return cfg, nil
}

func (cfg *Config) normalize() {
	cfg.AuthStrategy = strings.ToLower(strings.TrimSpace(cfg.AuthStrategy))

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}
	if cfg.AnalysisBatchSize <= 0 {
		cfg.AnalysisBatchSize = defaultAnalysisBatchSize
	}
	if cfg.AnalysisPollInterval <= 0 {
		cfg.AnalysisPollInterval = defaultAnalysisPollInterval
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	if cfg.HTTPClientTimeout <= 0 {
		cfg.HTTPClientTimeout = defaultHTTPClientTimeout
	}
	if cfg.News.Keywords <= 0 {
		cfg.News.Keywords = defaultNewsKeywords
	}
	if cfg.News.PageSize <= 0 {
		cfg.News.PageSize = defaultNewsPageSize
	}
	if cfg.News.CacheTTL <= 0 {
		cfg.News.CacheTTL = defaultNewsCacheTTL
	}
	if cfg.DemoBalance.IsNegative() {
		cfg.DemoBalance = defaultDemoBalance
	}
	if !cfg.ProPrice.IsPositive() {
		cfg.ProPrice = defaultProPrice
	}
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

func getDecimal(lookup envLookup, key string, def decimal.Decimal) decimal.Decimal {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	return def
}
