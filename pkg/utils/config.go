package utils

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Security SecurityConfig
	Booking  BookingConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	CORSOrigin     string
	RequestTimeout time.Duration
}

type DatabaseConfig struct {
	Host             string
	Port             string
	Name             string
	User             string
	Password         string
	MaxConns         int32
	ConnectTimeout   time.Duration
	StatementTimeout time.Duration
	ConnectRetries   int
	RetryDelay       time.Duration
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type SecurityConfig struct {
	BcryptCost int
}

type BookingConfig struct {
	// StrictAmount rejects client-supplied amounts that differ from seats x price.
	StrictAmount bool
}

type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// LoadConfig reads the optional env file named by the --config flag, then the
// process environment, which takes precedence.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	configFile := v.GetString("config")
	if configFile == "" {
		configFile = ".env"
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "movie-ticket")
	v.SetDefault("PORT", "3000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ORIGIN", "http://localhost:8080")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "movieticket")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", 5)
	v.SetDefault("DB_STATEMENT_TIMEOUT_SECONDS", 45)
	v.SetDefault("DB_CONNECT_RETRIES", 5)
	v.SetDefault("DB_RETRY_DELAY_SECONDS", 2)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("BOOKING_STRICT_AMOUNT", true)
	v.SetDefault("ADMIN_NAME", "Admin User")
	v.SetDefault("ADMIN_EMAIL", "admin@movieticket.com")

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			CORSOrigin:     v.GetString("CORS_ORIGIN"),
			RequestTimeout: seconds(v.GetInt("REQUEST_TIMEOUT_SECONDS")),
		},
		Database: DatabaseConfig{
			Host:             v.GetString("DB_HOST"),
			Port:             v.GetString("DB_PORT"),
			Name:             v.GetString("DB_NAME"),
			User:             v.GetString("DB_USER"),
			Password:         v.GetString("DB_PASS"),
			MaxConns:         v.GetInt32("DB_MAX_CONNS"),
			ConnectTimeout:   seconds(v.GetInt("DB_CONNECT_TIMEOUT_SECONDS")),
			StatementTimeout: seconds(v.GetInt("DB_STATEMENT_TIMEOUT_SECONDS")),
			ConnectRetries:   v.GetInt("DB_CONNECT_RETRIES"),
			RetryDelay:       seconds(v.GetInt("DB_RETRY_DELAY_SECONDS")),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Security: SecurityConfig{
			BcryptCost: v.GetInt("BCRYPT_COST"),
		},
		Booking: BookingConfig{
			StrictAmount: v.GetBool("BOOKING_STRICT_AMOUNT"),
		},
		Admin: AdminConfig{
			Name:     v.GetString("ADMIN_NAME"),
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
