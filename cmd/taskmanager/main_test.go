package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"taskmanager/internal/stats"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
		statsJSON = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "taskmanager.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestPriorityCommand(t *testing.T) {
	later := time.Now().UTC().AddDate(0, 0, 30).Format("2006-01-02")

	out, err := run(t, "priority", later)
	require.NoError(t, err)
	assert.Equal(t, "low (color #10B981, weight 1)\n", out)
}

func TestPriorityCommand_InvalidDate(t *testing.T) {
	_, err := run(t, "priority", "someday")
	assert.Error(t, err)
}

func TestPriorityCommand_RequiresArg(t *testing.T) {
	_, err := run(t, "priority")
	assert.Error(t, err)
}

func TestSeedCommand_SQLite(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "seed.db") + "?_pragma=foreign_keys(1)"
	cfg := writeConfig(t, "[log]\nlevel = \"error\"\n[store]\ndriver = \"sqlite\"\ndsn = \""+dsn+"\"\n")

	out, err := run(t, "--config", cfg, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Work")
	assert.Contains(t, out, "Personal")
	assert.Contains(t, out, "Urgent")

	// seeding again keeps the same three categories
	again, err := run(t, "--config", cfg, "seed")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestStatsCommand_JSON(t *testing.T) {
	cfg := writeConfig(t, "[log]\nlevel = \"error\"\n")

	out, err := run(t, "--config", cfg, "stats", "--json")
	require.NoError(t, err)

	var report stats.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, stats.Report{}, report)
}

func TestMissingConfigFile(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "stats")
	assert.Error(t, err)
}
