package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults with env", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s3cret")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("config", filepath.Join(t.TempDir(), "missing.env"), "")

		config, err := LoadConfig(flags)
		require.NoError(t, err)
		assert.Equal(t, "3000", config.App.Port)
		assert.Equal(t, int32(10), config.Database.MaxConns)
		assert.Equal(t, 45*time.Second, config.Database.StatementTimeout)
		assert.True(t, config.Booking.StrictAmount)
		assert.Equal(t, "s3cret", config.JWT.Secret)
	})

	t.Run("env file then environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.env")
		require.NoError(t, os.WriteFile(path, []byte("JWT_SECRET=fromfile\nPORT=4000\nBOOKING_STRICT_AMOUNT=false\n"), 0o600))
		t.Setenv("PORT", "5000")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("config", path, "")

		config, err := LoadConfig(flags)
		require.NoError(t, err)
		assert.Equal(t, "fromfile", config.JWT.Secret)
		assert.Equal(t, "5000", config.App.Port)
		assert.False(t, config.Booking.StrictAmount)
	})

	t.Run("secret is required", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.String("config", filepath.Join(t.TempDir(), "missing.env"), "")

		_, err := LoadConfig(flags)
		assert.Error(t, err)
	})
}
