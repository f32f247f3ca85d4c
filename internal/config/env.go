package config

import (
	"fmt"
	"strings"
	"time"

	"opticrm/internal/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Env struct {
	AppAddr         string
	GinMode         string
	Environment     string
	LogLevel        string
	ProjectName     string
	Version         string
	APIPrefix       string
	FrontendURLs    []string
	DBDriver        string
	DBDSN           string
	BootstrapSchema bool
	DefaultOrgID    int64
	ShutdownTimeout time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ADDR", ":8000")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PROJECT_NAME", "OptiCRM API")
	v.SetDefault("PROJECT_VERSION", "1.0.0")
	v.SetDefault("API_V1_PREFIX", "/api/v1")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_DSN", "file:opticrm.db")
	v.SetDefault("DB_BOOTSTRAP_SCHEMA", true)
	v.SetDefault("DEFAULT_ORGANIZATION_ID", 1)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// LoadEnv reads an optional .env file, then the process environment.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	return envFrom(v)
}

func envFrom(v *viper.Viper) (Env, error) {
	env := Env{
		AppAddr:         strings.TrimSpace(v.GetString("APP_ADDR")),
		GinMode:         strings.TrimSpace(v.GetString("GIN_MODE")),
		Environment:     strings.ToLower(strings.TrimSpace(v.GetString("ENVIRONMENT"))),
		LogLevel:        strings.ToLower(strings.TrimSpace(v.GetString("LOG_LEVEL"))),
		ProjectName:     v.GetString("PROJECT_NAME"),
		Version:         v.GetString("PROJECT_VERSION"),
		APIPrefix:       "/" + strings.Trim(strings.TrimSpace(v.GetString("API_V1_PREFIX")), "/"),
		FrontendURLs:    utils.SplitList(v.GetString("FRONTEND_URL")),
		DBDriver:        strings.ToLower(strings.TrimSpace(v.GetString("DB_DRIVER"))),
		DBDSN:           strings.TrimSpace(v.GetString("DB_DSN")),
		BootstrapSchema: v.GetBool("DB_BOOTSTRAP_SCHEMA"),
		DefaultOrgID:    v.GetInt64("DEFAULT_ORGANIZATION_ID"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	switch env.DBDriver {
	case "mysql", "sqlite":
	default:
		return Env{}, fmt.Errorf("DB_DRIVER must be mysql or sqlite, got %q", env.DBDriver)
	}
	if env.DBDSN == "" {
		return Env{}, fmt.Errorf("DB_DSN is required")
	}
	if len(env.FrontendURLs) == 0 {
		return Env{}, fmt.Errorf("FRONTEND_URL must list at least one origin")
	}
	if env.DefaultOrgID < 1 {
		return Env{}, fmt.Errorf("DEFAULT_ORGANIZATION_ID must be positive")
	}
	if env.ShutdownTimeout <= 0 {
		env.ShutdownTimeout = 10 * time.Second
	}
	return env, nil
}
