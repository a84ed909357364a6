package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Security SecurityConfig `mapstructure:"security"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// StoreConfig locates the JSON record files
type StoreConfig struct {
	Dir         string `mapstructure:"dir"`
	UsersFile   string `mapstructure:"users_file"`
	AdminsFile  string `mapstructure:"admins_file"`
	DesignsFile string `mapstructure:"designs_file"`
	PagesFile   string `mapstructure:"pages_file"`
}

// CacheConfig selects the view cache
type CacheConfig struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
	Issuer    string        `mapstructure:"issuer"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSAllowedOrigins string        `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
	PasswordScheme     string        `mapstructure:"password_scheme"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Supported password schemes
const (
	PasswordSchemePlain  = "plain"
	PasswordSchemeBcrypt = "bcrypt"
)

// Supported cache drivers
const (
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
	CacheDriverNone   = "none"
)

const defaultJWTSecret = "change-me-reactiverse-secret"

// Load loads configuration from various sources
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "Reactiverse")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)

	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "30s")

	// Store defaults
	v.SetDefault("store.dir", "data")
	v.SetDefault("store.users_file", "users.json")
	v.SetDefault("store.admins_file", "admin.json")
	v.SetDefault("store.designs_file", "designs.json")
	v.SetDefault("store.pages_file", "pages.json")

	// Cache defaults
	v.SetDefault("cache.driver", CacheDriverMemory)
	v.SetDefault("cache.ttl", "5m")

	// Redis defaults
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// JWT defaults
	v.SetDefault("jwt.secret", defaultJWTSecret)
	v.SetDefault("jwt.expires_in", "24h")
	v.SetDefault("jwt.issuer", "reactiverse")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("logger.filename", "")

	// Security defaults
	v.SetDefault("security.cors_allowed_origins", "*")
	v.SetDefault("security.rate_limit_requests", 100)
	v.SetDefault("security.rate_limit_window", "1m")
	v.SetDefault("security.password_scheme", PasswordSchemePlain)

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "APP_NAME")
	v.BindEnv("app.version", "APP_VERSION")
	v.BindEnv("app.environment", "APP_ENVIRONMENT")
	v.BindEnv("app.debug", "APP_DEBUG")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.host", "SERVER_HOST")
	v.BindEnv("server.read_timeout", "SERVER_READ_TIMEOUT")
	v.BindEnv("server.write_timeout", "SERVER_WRITE_TIMEOUT")
	v.BindEnv("server.idle_timeout", "SERVER_IDLE_TIMEOUT")
	v.BindEnv("server.request_timeout", "SERVER_REQUEST_TIMEOUT")

	// Store
	v.BindEnv("store.dir", "STORE_DIR")
	v.BindEnv("store.users_file", "STORE_USERS_FILE")
	v.BindEnv("store.admins_file", "STORE_ADMINS_FILE")
	v.BindEnv("store.designs_file", "STORE_DESIGNS_FILE")
	v.BindEnv("store.pages_file", "STORE_PAGES_FILE")

	// Cache
	v.BindEnv("cache.driver", "CACHE_DRIVER")
	v.BindEnv("cache.ttl", "CACHE_TTL")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expires_in", "JWT_EXPIRES_IN")
	v.BindEnv("jwt.issuer", "JWT_ISSUER")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.format", "LOG_FORMAT")
	v.BindEnv("logger.output", "LOG_OUTPUT")
	v.BindEnv("logger.filename", "LOG_FILENAME")

	// Security
	v.BindEnv("security.cors_allowed_origins", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("security.rate_limit_requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("security.rate_limit_window", "RATE_LIMIT_WINDOW")
	v.BindEnv("security.password_scheme", "PASSWORD_SCHEME")

	// Metrics
	v.BindEnv("metrics.enabled", "ENABLE_METRICS")
}

func validateConfig(cfg *Config) error {
	if cfg.Store.Dir == "" {
		return fmt.Errorf("store directory is required")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT secret must be set")
	}
	if cfg.App.IsProduction() && cfg.JWT.Secret == defaultJWTSecret {
		return fmt.Errorf("JWT secret must not use the default value in production")
	}

	switch cfg.Security.PasswordScheme {
	case PasswordSchemePlain, PasswordSchemeBcrypt:
	default:
		return fmt.Errorf("unknown password scheme %q", cfg.Security.PasswordScheme)
	}

	switch cfg.Cache.Driver {
	case CacheDriverMemory, CacheDriverRedis, CacheDriverNone:
	default:
		return fmt.Errorf("unknown cache driver %q", cfg.Cache.Driver)
	}

	return nil
}

// UsersPath returns the users.json location
func (cfg *StoreConfig) UsersPath() string {
	return filepath.Join(cfg.Dir, cfg.UsersFile)
}

// AdminsPath returns the admin.json location
func (cfg *StoreConfig) AdminsPath() string {
	return filepath.Join(cfg.Dir, cfg.AdminsFile)
}

// DesignsPath returns the designs.json location
func (cfg *StoreConfig) DesignsPath() string {
	return filepath.Join(cfg.Dir, cfg.DesignsFile)
}

// PagesPath returns the pages.json location
func (cfg *StoreConfig) PagesPath() string {
	return filepath.Join(cfg.Dir, cfg.PagesFile)
}

// GetAddr returns the Redis address
func (cfg *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

// IsDevelopment returns true if the environment is development
func (cfg *AppConfig) IsDevelopment() bool {
	return cfg.Environment == "development"
}

// IsProduction returns true if the environment is production
func (cfg *AppConfig) IsProduction() bool {
	return cfg.Environment == "production"
}
