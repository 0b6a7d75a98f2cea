package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBDriver        string // "sqlite"(default) or "mysql"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBPath          string // sqlite database file
	DBMigrationMode string // "auto"(default) or "drop"

	// Server
	ServerPort     string
	PairingAddress string // overrides LAN address detection when set
	RateLimitRPS   float64
	RateLimitBurst int

	// Redis
	RedisEnabled bool
	RedisHost    string
	RedisPort    string
	RedisDB      int

	// Directory
	DirectoryCacheTTL time.Duration
	SearchLimit       int
	SuggestionLimit   int

	// JWT Authentication
	JWTSecretKey string
	JWTTTL       time.Duration

	// First-run bootstrap, both empty disables the startup path
	BootstrapAdminLogin    string
	BootstrapAdminPassword string

	// Locale
	Timezone string

	// Logging
	LogDir   string
	LogLevel string

	// Mobile client
	ClientTimeout time.Duration
}

// LoadConfig loads config from environment variables
func LoadConfig() (*Config, error) {
	envType := strings.ToUpper(getEnv("ENV_TYPE", "LOCAL"))

	cfg := &Config{
		EnvType: envType,

		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBUser:          getEnv("DB_USER", ""),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", ""),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBPath:          getEnv("DB_PATH", "encomendas.db"),
		DBMigrationMode: strings.ToLower(getEnv("DB_MIGRATION_MODE", "auto")),

		ServerPort:     getEnv("SERVER_PORT", "3000"),
		PairingAddress: getEnv("PAIRING_ADDRESS", ""),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 20),

		RedisEnabled: getEnvAsBool("REDIS_ENABLED", false),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisDB:      getEnvAsInt("REDIS_DB", 0),

		DirectoryCacheTTL: getEnvAsDuration("DIRECTORY_CACHE_TTL", 5*time.Minute),
		SearchLimit:       getEnvAsInt("SEARCH_LIMIT", 10),
		SuggestionLimit:   getEnvAsInt("SUGGESTION_LIMIT", 8),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		JWTTTL:       getEnvAsDuration("JWT_TTL", 12*time.Hour),

		BootstrapAdminLogin:    getEnv("BOOTSTRAP_ADMIN_LOGIN", ""),
		BootstrapAdminPassword: getEnv("BOOTSTRAP_ADMIN_PASSWORD", ""),

		Timezone: getEnv("TIMEZONE", "America/Sao_Paulo"),

		LogDir:   getEnv("LOG_DIR", "logs"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ClientTimeout: getEnvAsDuration("CLIENT_TIMEOUT", 8*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option combinations that cannot work at runtime
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case "mysql":
		for key, value := range map[string]string{"DB_USER": c.DBUser, "DB_NAME": c.DBName, "DB_HOST": c.DBHost} {
			if value == "" {
				return fmt.Errorf("%s is required for the mysql driver", key)
			}
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.DBMigrationMode != "auto" && c.DBMigrationMode != "drop" {
		return fmt.Errorf("unsupported DB_MIGRATION_MODE %q", c.DBMigrationMode)
	}
	if c.JWTSecretKey == "" {
		if c.EnvType != "LOCAL" {
			return fmt.Errorf("JWT_SECRET_KEY is required outside LOCAL")
		}
		c.JWTSecretKey = "encomendas-local-secret"
	}
	if (c.BootstrapAdminLogin == "") != (c.BootstrapAdminPassword == "") {
		return fmt.Errorf("BOOTSTRAP_ADMIN_LOGIN and BOOTSTRAP_ADMIN_PASSWORD must be set together")
	}
	if c.SearchLimit < 1 {
		c.SearchLimit = 10
	}
	if c.SuggestionLimit < 1 {
		c.SuggestionLimit = 8
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath + "?_busy_timeout=5000&_foreign_keys=on"
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Location returns the configured time zone, falling back to local time
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
