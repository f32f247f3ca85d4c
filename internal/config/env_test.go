package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	env, err := envFrom(v)
	require.NoError(t, err)
	assert.Equal(t, ":8000", env.AppAddr)
	assert.Equal(t, "/api/v1", env.APIPrefix)
	assert.Equal(t, []string{"http://localhost:3000"}, env.FrontendURLs)
	assert.Equal(t, "sqlite", env.DBDriver)
	assert.Equal(t, int64(1), env.DefaultOrgID)
	assert.Equal(t, 10*time.Second, env.ShutdownTimeout)
	assert.True(t, env.BootstrapSchema)
}

func TestEnvFromEnvironment(t *testing.T) {
	t.Setenv("FRONTEND_URL", "https://crm.example.de, http://localhost:5173 ,")
	t.Setenv("API_V1_PREFIX", "api/v2/")
	t.Setenv("DB_DRIVER", "MySQL")
	t.Setenv("DB_DSN", "crm:secret@tcp(db:3306)/opticrm")
	t.Setenv("DEFAULT_ORGANIZATION_ID", "7")

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	env, err := envFrom(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://crm.example.de", "http://localhost:5173"}, env.FrontendURLs)
	assert.Equal(t, "/api/v2", env.APIPrefix)
	assert.Equal(t, "mysql", env.DBDriver)
	assert.Equal(t, int64(7), env.DefaultOrgID)
}

func TestEnvRejectsUnknownDriver(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_DRIVER", "postgres")

	_, err := envFrom(v)
	assert.Error(t, err)
}
