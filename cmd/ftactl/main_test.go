package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	content := fmt.Sprintf(`
app:
  name: fta-origin
database:
  driver: sqlite
  dsn: %q
`, filepath.Join(dir, "fta.db"))
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(append([]string{"ftactl", "--config", cfgPath}, args...))
	return out.String(), err
}

func TestCommands(t *testing.T) {
	cfgPath := writeTestConfig(t)

	out, err := run(t, cfgPath, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "sample data loaded")

	t.Run("parts by type", func(t *testing.T) {
		out, err := run(t, cfgPath, "parts", "--type", "fert")
		require.NoError(t, err)
		assert.Contains(t, out, "EV_BATTERY_PACK")
		assert.NotContains(t, out, "LITHIUM_CELL")
	})

	t.Run("bom tree", func(t *testing.T) {
		out, err := run(t, cfgPath, "bom", "EV_BATTERY_PACK")
		require.NoError(t, err)
		assert.Contains(t, out, "  BATTERY_MODULE")
		assert.Contains(t, out, "    LITHIUM_CELL")
	})

	t.Run("determine then history", func(t *testing.T) {
		out, err := run(t, cfgPath, "determine", "EV_BATTERY_PACK")
		require.NoError(t, err)
		assert.Contains(t, out, "Verdict: FOREIGN")
		assert.Contains(t, out, "Part: LITHIUM_CELL (Origin: CN, HS: 850790) -> [FAIL] Same Heading as FG (8507).")

		out, err = run(t, cfgPath, "history", "--part", "EV_BATTERY_PACK")
		require.NoError(t, err)
		assert.Contains(t, out, "FOREIGN")
		assert.Contains(t, out, "CTSH (4-digit)")
	})

	t.Run("unknown part", func(t *testing.T) {
		_, err := run(t, cfgPath, "determine", "GHOST")
		assert.Error(t, err)
	})

	t.Run("missing argument", func(t *testing.T) {
		_, err := run(t, cfgPath, "bom")
		assert.Error(t, err)
	})
}
