package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port      int
		AdminPort int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Redis struct {
		Addr string
	}
	Import struct {
		Dir        string // directory with customer_data.xml / loan_data.xml
		Cron       string
		RunOnStart bool
	}
	OpsEmail string // recipient of import reports and decision summaries
}

// NewConfig reads the configuration from the environment
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Server settings
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("ADMIN_PORT", 9090)

	// Database settings
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "credit_db")

	// SMTP settings
	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "noreply@credit-approval.local")

	// Redis settings; an empty address falls back to the in-memory cache
	v.SetDefault("REDIS_ADDR", "")

	// Import settings
	v.SetDefault("IMPORT_DIR", "data")
	v.SetDefault("IMPORT_CRON", "0 0 2 * * *") // every night at 02:00
	v.SetDefault("IMPORT_ON_START", false)

	v.SetDefault("OPS_EMAIL", "")

	cfg := &Config{}
	cfg.Server.Port = v.GetInt("SERVER_PORT")
	cfg.Server.AdminPort = v.GetInt("ADMIN_PORT")
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}

	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetInt("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.DBName = v.GetString("DB_NAME")
	if cfg.DB.Port <= 0 || cfg.DB.Port > 65535 {
		return nil, fmt.Errorf("invalid database port: %d", cfg.DB.Port)
	}

	cfg.SMTP.Host = v.GetString("SMTP_HOST")
	cfg.SMTP.Port = v.GetInt("SMTP_PORT")
	cfg.SMTP.Username = v.GetString("SMTP_USERNAME")
	cfg.SMTP.Password = v.GetString("SMTP_PASSWORD")
	cfg.SMTP.From = v.GetString("SMTP_FROM")

	cfg.Redis.Addr = v.GetString("REDIS_ADDR")

	cfg.Import.Dir = v.GetString("IMPORT_DIR")
	cfg.Import.Cron = v.GetString("IMPORT_CRON")
	cfg.Import.RunOnStart = v.GetBool("IMPORT_ON_START")

	cfg.OpsEmail = v.GetString("OPS_EMAIL")

	return cfg, nil
}
