package app

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/passkeeper/internal/config"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfig([]string{"-b", backend, "-d", t.TempDir(), "-log-level", "error"})
	require.NoError(t, err)
	return cfg
}

func TestApp_RunPerBackend(t *testing.T) {
	color.NoColor = true

	for _, backend := range []string{"file", "sqlite", "bolt"} {
		t.Run(backend, func(t *testing.T) {
			cfg := testConfig(t, backend)
			script := "register\nzoe\npw\npw\nlogin\nzoe\npw\nstore\nnote\n\npk\nshow 1\npk\nexit\n"

			var out, logs bytes.Buffer
			a, err := NewApp(context.Background(), cfg, strings.NewReader(script), &out, &logs)
			require.NoError(t, err)
			require.NoError(t, a.Run(context.Background()))

			s := out.String()
			assert.Contains(t, s, "Registration successful!")
			assert.Contains(t, s, "Decryption successful!\nnote")

			// A second process over the same data sees the account.
			var out2 bytes.Buffer
			b, err := NewApp(context.Background(), cfg, strings.NewReader("login\nzoe\npw\nlist\nexit\n"), &out2, &logs)
			require.NoError(t, err)
			require.NoError(t, b.Run(context.Background()))
			assert.Contains(t, out2.String(), "Data Entry 1 - ")
		})
	}
}

func TestNewApp_BadLogLevel(t *testing.T) {
	cfg := testConfig(t, "file")
	cfg.LogLevel = "loud"

	_, err := NewApp(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
}
