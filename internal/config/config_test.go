package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	strongSecret := "secure-secret-at-least-32-chars-long"

	tests := []struct {
		name        string
		config      Config
		expectError bool
	}{
		{
			name: "Development Defaults Are Fine",
			config: Config{
				Env:       "development",
				Port:      "8460",
				JWTSecret: "your-secret-key-change-in-production",
			},
			expectError: false,
		},
		{
			name: "Missing Port",
			config: Config{
				Env:       "development",
				JWTSecret: strongSecret,
			},
			expectError: true,
		},
		{
			name: "Missing JWT Secret",
			config: Config{
				Env:  "development",
				Port: "8460",
			},
			expectError: true,
		},
		{
			name: "Production With Default Secret",
			config: Config{
				Env:        "production",
				Port:       "8460",
				JWTSecret:  "your-secret-key-change-in-production",
				DBPassword: "strong-db-password",
			},
			expectError: true,
		},
		{
			name: "Production With Short Secret",
			config: Config{
				Env:        "production",
				Port:       "8460",
				JWTSecret:  "short",
				DBPassword: "strong-db-password",
			},
			expectError: true,
		},
		{
			name: "Production With Default DB Password",
			config: Config{
				Env:        "production",
				Port:       "8460",
				JWTSecret:  strongSecret,
				DBPassword: "password",
			},
			expectError: true,
		},
		{
			name: "Production Fully Configured",
			config: Config{
				Env:        "production",
				Port:       "8460",
				JWTSecret:  strongSecret,
				DBPassword: "strong-db-password",
				DBSSLMode:  "require",
			},
			expectError: false,
		},
		{
			name: "Prod Alias Gets Same Checks",
			config: Config{
				Env:        "prod",
				Port:       "8460",
				JWTSecret:  "short",
				DBPassword: "strong-db-password",
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "test")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8460", c.Port)
	assert.Equal(t, "localhost", c.DBHost)
	assert.Equal(t, "5432", c.DBPort)
	assert.Equal(t, "inkwell", c.DBName)
	assert.Equal(t, "test", c.Env)
	assert.False(t, c.TracingEnabled)
	assert.Equal(t, "stdout", c.TracingExport)
	assert.NotEmpty(t, c.JWTSecret)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9999")
	t.Setenv("REDIS_URL", "redis://example:6379")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", c.Port)
	assert.Equal(t, "redis://example:6379", c.RedisURL)
}
