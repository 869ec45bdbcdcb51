package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Session      SessionConfig
	Identity     IdentityConfig
	Cloudinary   CloudinaryConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig controls server-issued session tokens and the cookie that
// carries them.
type SessionConfig struct {
	JWTSecret    string
	TTLDays      int
	CookieName   string
	CookiePath   string
	CookieDomain string
}

type IdentityConfig struct {
	BaseURL string
	Timeout time.Duration
}

// CloudinaryConfig holds image storage credentials. All three fields are
// optional; the upload surface is disabled when they are absent.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Configured reports whether image uploads can be served.
func (c *CloudinaryConfig) Configured() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("SESSION_TTL_DAYS", 7)
	viper.SetDefault("SESSION_COOKIE_NAME", "session_token")
	viper.SetDefault("SESSION_COOKIE_PATH", "/")
	viper.SetDefault("IDENTITY_TIMEOUT_SEC", 10)
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			JWTSecret:    viper.GetString("SESSION_JWT_SECRET"),
			TTLDays:      viper.GetInt("SESSION_TTL_DAYS"),
			CookieName:   viper.GetString("SESSION_COOKIE_NAME"),
			CookiePath:   viper.GetString("SESSION_COOKIE_PATH"),
			CookieDomain: viper.GetString("SESSION_COOKIE_DOMAIN"),
		},
		Identity: IdentityConfig{
			BaseURL: viper.GetString("IDENTITY_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("IDENTITY_TIMEOUT_SEC")) * time.Second,
		},
		Cloudinary: CloudinaryConfig{
			CloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    viper.GetString("CLOUDINARY_API_KEY"),
			APISecret: viper.GetString("CLOUDINARY_API_SECRET"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Session.JWTSecret == "" {
		return fmt.Errorf("session JWT secret is required")
	}
	if len(c.Session.JWTSecret) < 32 {
		return fmt.Errorf("session JWT secret must be at least 32 characters")
	}
	if c.Session.TTLDays <= 0 {
		return fmt.Errorf("session TTL must be positive")
	}
	if c.Identity.BaseURL == "" {
		return fmt.Errorf("identity provider base URL is required")
	}
	if c.Redis.Host == "" {
		return fmt.Errorf("redis host is required")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionTTL returns the configured session lifetime.
func (c *SessionConfig) SessionTTL() time.Duration {
	return time.Duration(c.TTLDays) * 24 * time.Hour
}
