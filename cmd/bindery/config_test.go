package main_test

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/fwojciec/bindery"
	main "github.com/fwojciec/bindery/cmd/bindery"
	"github.com/fwojciec/bindery/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty path yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := main.LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, main.DefaultConfig(), cfg)
	})

	t.Run("file values override defaults", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "bindery.toml", `
concurrency = 8
site_root = "public"
image_width = 4.5
database = "reports.db"
log_level = "debug"
`)
		cfg, err := main.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, 8, cfg.Concurrency)
		assert.Equal(t, "public", cfg.SiteRoot)
		assert.InDelta(t, 4.5, cfg.ImageWidth, 1e-9)
		assert.Equal(t, "reports.db", cfg.Database)

		level, err := cfg.Level()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("missing explicit file is not found", func(t *testing.T) {
		t.Parallel()

		_, err := main.LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Equal(t, bindery.ENOTFOUND, bindery.ErrorCode(err))
	})

	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour = \"blue\"\n"},
		{"malformed toml", "concurrency = \n"},
		{"negative concurrency", "concurrency = -1\n"},
		{"zero image width", "image_width = 0.0\n"},
		{"bad log level", "log_level = \"loud\"\n"},
		{"unknown check", "disabled_checks = [\"spelling\"]\n"},
		{"every check disabled", "disabled_checks = [\"html\", \"content\", \"a11y\", \"links\"]\n"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, t.TempDir(), "bindery.toml", tt.content)
			_, err := main.LoadConfig(path)
			assert.Equal(t, bindery.EINVALID, bindery.ErrorCode(err))
		})
	}
}

func TestConfig_Checks(t *testing.T) {
	t.Parallel()

	t.Run("disabled checks are removed", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		cfg.DisabledChecks = []string{"links"}
		checks, err := cfg.Checks(nil)
		require.NoError(t, err)
		assert.Equal(t, validate.CheckAll&^validate.CheckLinks, checks)
	})

	t.Run("only replaces the configured set", func(t *testing.T) {
		t.Parallel()

		cfg := main.DefaultConfig()
		cfg.DisabledChecks = []string{"a11y"}
		checks, err := cfg.Checks([]string{"a11y"})
		require.NoError(t, err)
		assert.Equal(t, validate.CheckAccessibility, checks)
	})
}
