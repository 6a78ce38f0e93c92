package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	dbconfig "github.com/beeport/incentiviz/orm/config"
	"github.com/beeport/incentiviz/types"
)

var (
	Version    = "dev"
	CommitHash = "unknown"

	// Singleton instance
	configInstance *Config
	configOnce     sync.Once
)

// Default configuration constants
const (
	// Port settings
	DefaultListenPort = "8080"
	MinPortNumber     = 1
	MaxPortNumber     = 65535

	// Database settings
	DefaultDBHost      = "localhost"
	DefaultDBPort      = 5432
	DefaultDBName      = "beeport2"
	DefaultDBUser      = "sig32"
	DefaultDBSSLMode   = "disable"
	DefaultDBMaxConns  = 4
	DefaultDBIdleConns = 2

	// Chart settings
	DefaultChartWidth  = 1920
	DefaultChartHeight = 1080
	DefaultExportScale = 3
	DefaultExportPath  = "incentives_dashboard.png"

	// The freeze durations tracked on the shared axis
	DefaultFreezeBuckets = "77824,155648,311296,622592"

	// Serve-mode cache settings
	DefaultCacheSize = 16
	DefaultCacheTTL  = time.Minute

	// Timeout settings
	DefaultQueryTimeout = 30 * time.Second

	// Chart bounds accepted from the environment
	MinChartDimension = 320
	MaxChartDimension = 8192
	MaxExportScale    = 8
)

// ChartConfig contains sizing and export parameters for the rendered figure
type ChartConfig struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ExportScale int    `json:"export_scale"`
	ExportPath  string `json:"export_path"`
}

func SetBuildInfo(v, commit string) {
	Version = v
	CommitHash = commit
}

type Config struct {
	listenPort    string
	dbConfig      *dbconfig.Config
	chartConfig   *ChartConfig
	freezeBuckets []int64
	logLevel      string
	logFormat     string
	cacheSize     int
	cacheTTL      time.Duration // for serve mode only
	queryTimeout  time.Duration
}

func setDefaults() {
	viper.SetDefault("PORT", DefaultListenPort)
	viper.SetDefault("DB_HOST", DefaultDBHost)
	viper.SetDefault("DB_PORT", DefaultDBPort)
	viper.SetDefault("DB_NAME", DefaultDBName)
	viper.SetDefault("DB_USER", DefaultDBUser)
	viper.SetDefault("DB_PASS", "")
	viper.SetDefault("DB_SSL_MODE", DefaultDBSSLMode)
	viper.SetDefault("DB_AUTO_MIGRATE", false)
	viper.SetDefault("DB_MAX_CONNS", DefaultDBMaxConns)
	viper.SetDefault("DB_IDLE_CONNS", DefaultDBIdleConns)
	viper.SetDefault("CHART_WIDTH", DefaultChartWidth)
	viper.SetDefault("CHART_HEIGHT", DefaultChartHeight)
	viper.SetDefault("EXPORT_SCALE", DefaultExportScale)
	viper.SetDefault("EXPORT_PATH", DefaultExportPath)
	viper.SetDefault("FREEZE_BUCKETS", DefaultFreezeBuckets)
	viper.SetDefault("CACHE_SIZE", DefaultCacheSize)
	viper.SetDefault("CACHE_TTL", DefaultCacheTTL)
	viper.SetDefault("QUERY_TIMEOUT", DefaultQueryTimeout)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "plain")
}

func GetConfig() (*Config, error) {
	var err error

	configOnce.Do(func() {
		configInstance, err = loadConfig()
	})

	return configInstance, err
}

func loadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// just log without panic, local testing purpose only
		fmt.Fprintln(os.Stderr, "No .env file found")
	}
	viper.AutomaticEnv()
	setDefaults()

	dc := &dbconfig.Config{
		Host:        viper.GetString("DB_HOST"),
		Port:        viper.GetInt("DB_PORT"),
		Database:    viper.GetString("DB_NAME"),
		User:        viper.GetString("DB_USER"),
		Password:    viper.GetString("DB_PASS"),
		SSLMode:     viper.GetString("DB_SSL_MODE"),
		AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		MaxConns:    viper.GetInt("DB_MAX_CONNS"),
		IdleConns:   viper.GetInt("DB_IDLE_CONNS"),
	}

	cc := &ChartConfig{
		Width:       viper.GetInt("CHART_WIDTH"),
		Height:      viper.GetInt("CHART_HEIGHT"),
		ExportScale: viper.GetInt("EXPORT_SCALE"),
		ExportPath:  viper.GetString("EXPORT_PATH"),
	}

	buckets, err := ParseFreezeBuckets(viper.GetString("FREEZE_BUCKETS"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		listenPort:    viper.GetString("PORT"),
		dbConfig:      dc,
		chartConfig:   cc,
		freezeBuckets: buckets,
		logLevel:      viper.GetString("LOG_LEVEL"),
		logFormat:     viper.GetString("LOG_FORMAT"),
		cacheSize:     viper.GetInt("CACHE_SIZE"),
		cacheTTL:      viper.GetDuration("CACHE_TTL"),
		queryTimeout:  viper.GetDuration("QUERY_TIMEOUT"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ParseFreezeBuckets parses the comma-separated freeze duration list that
// defines the shared-axis group.
func ParseFreezeBuckets(raw string) ([]int64, error) {
	var buckets []int64
	seen := make(map[int64]bool)
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		val, err := strconv.ParseInt(tok, 10, 64)
		if err != nil || val <= 0 {
			return nil, types.NewInvalidValueError("FREEZE_BUCKETS", tok, "must be a positive integer")
		}
		if seen[val] {
			return nil, types.NewInvalidValueError("FREEZE_BUCKETS", tok, "duplicate bucket")
		}
		seen[val] = true
		buckets = append(buckets, val)
	}
	return buckets, nil
}

func (c Config) GetListenPort() string {
	return c.listenPort
}

// SetDBConfig assigns the DB config for testing purposes.
func (c *Config) SetDBConfig(dbCfg *dbconfig.Config) {
	c.dbConfig = dbCfg
}

func (c Config) GetDBConfig() *dbconfig.Config {
	return c.dbConfig
}

func (c Config) GetChartConfig() *ChartConfig {
	return c.chartConfig
}

func (c Config) GetFreezeBuckets() []int64 {
	return c.freezeBuckets
}

func (c Config) GetDBName() string {
	return c.dbConfig.Database
}

func (c Config) GetCacheSize() int {
	return c.cacheSize
}

func (c Config) GetCacheTTL() time.Duration {
	return c.cacheTTL
}

func (c Config) GetQueryTimeout() time.Duration {
	return c.queryTimeout
}

func (c Config) GetLogLevel() slog.Level {
	switch c.logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) GetLogFormat() string {
	if c.logFormat == "json" {
		return "json"
	}
	return "plain"
}

func (c Config) Validate() error {
	if err := c.validatePort(); err != nil {
		return err
	}
	if err := c.validateLogSettings(); err != nil {
		return err
	}
	if err := c.validateChartSettings(); err != nil {
		return err
	}
	if err := c.validateNumericSettings(); err != nil {
		return err
	}
	if err := c.dbConfig.Validate(); err != nil {
		return err
	}
	return nil
}

// validatePort validates the listen port configuration
func (c Config) validatePort() error {
	if len(c.listenPort) == 0 {
		return types.NewValidationError("PORT", "required field is missing")
	}
	if port, err := strconv.Atoi(c.listenPort); err != nil || port < MinPortNumber || port > MaxPortNumber {
		return types.NewValidationError("PORT", fmt.Sprintf("must be a valid port number (%d-%d)", MinPortNumber, MaxPortNumber))
	}
	return nil
}

// validateLogSettings validates log format and level configuration
func (c Config) validateLogSettings() error {
	switch c.logFormat {
	case "json", "plain":
		break
	default:
		return types.NewValidationError("LOG_FORMAT", fmt.Sprintf("invalid value '%s', must be 'json' or 'plain'", c.logFormat))
	}

	switch c.logLevel {
	case "debug", "info", "warn", "error":
		break
	default:
		return types.NewValidationError("LOG_LEVEL", fmt.Sprintf("invalid value '%s', must be one of: debug, info, warn, error", c.logLevel))
	}
	return nil
}

// validateChartSettings validates figure sizing and export configuration
func (c Config) validateChartSettings() error {
	if c.chartConfig.Width < MinChartDimension || c.chartConfig.Width > MaxChartDimension {
		return types.NewValidationError("CHART_WIDTH", fmt.Sprintf("must be between %d and %d", MinChartDimension, MaxChartDimension))
	}
	if c.chartConfig.Height < MinChartDimension || c.chartConfig.Height > MaxChartDimension {
		return types.NewValidationError("CHART_HEIGHT", fmt.Sprintf("must be between %d and %d", MinChartDimension, MaxChartDimension))
	}
	if c.chartConfig.ExportScale < 1 || c.chartConfig.ExportScale > MaxExportScale {
		return types.NewValidationError("EXPORT_SCALE", fmt.Sprintf("must be between 1 and %d", MaxExportScale))
	}
	return nil
}

// validateNumericSettings validates the remaining numeric configuration values
func (c Config) validateNumericSettings() error {
	if len(c.freezeBuckets) == 0 {
		return types.NewValidationError("FREEZE_BUCKETS", "at least one bucket is required")
	}
	if c.cacheSize < 1 {
		return types.NewValidationError("CACHE_SIZE", "must be at least 1")
	}
	if c.cacheTTL <= 0 {
		return types.NewValidationError("CACHE_TTL", "must be positive")
	}
	if c.queryTimeout <= 0 {
		return types.NewValidationError("QUERY_TIMEOUT", "must be positive")
	}
	return nil
}
