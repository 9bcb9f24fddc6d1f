package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CongDon1207/Four-Connect/internal/service/bot"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "FRONTEND_URL", "ALLOWED_ORIGINS", "TOKEN_TTL_HOURS", "SESSION_IDLE_MINUTES", "SEARCH_PARALLEL", "SEARCH_TIMEOUT", "LOG_PRETTY"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Hour, cfg.SessionIdle)
	assert.False(t, cfg.SearchParallel)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, 10*time.Second, cfg.SearchTimeout)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("FRONTEND_URL", "https://four.example")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("SESSION_IDLE_MINUTES", "5")
	t.Setenv("SEARCH_PARALLEL", "true")
	t.Setenv("LOG_PRETTY", "")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, []string{"https://four.example", "https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdle)
	assert.True(t, cfg.SearchParallel)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.LogPretty)
}

func TestGetEnvHelpersFallBack(t *testing.T) {
	t.Setenv("FOUR_INT", "abc")
	t.Setenv("FOUR_BOOL", "maybe")
	t.Setenv("FOUR_DURATION", "soon")
	t.Setenv("FOUR_DURATION_OK", "90s")

	assert.Equal(t, 7, GetEnvAsInt("FOUR_INT", 7))
	assert.True(t, GetEnvAsBool("FOUR_BOOL", true))
	assert.Equal(t, "x", GetEnv("FOUR_MISSING", "x"))
	assert.Equal(t, time.Second, GetEnvAsDuration("FOUR_DURATION", time.Second))
	assert.Equal(t, 90*time.Second, GetEnvAsDuration("FOUR_DURATION_OK", time.Second))
}

func TestParseDifficultyTable(t *testing.T) {
	table, err := ParseDifficultyTable([]byte(`
levels:
  - level: 1
    algorithm: negamax
    depth: 2
  - level: 2
    algorithm: bestfirst
    depth: 6
`))
	require.NoError(t, err)
	assert.Equal(t, bot.DifficultyTable{
		1: {Algorithm: bot.AlgorithmNegamax, Depth: 2},
		2: {Algorithm: bot.AlgorithmBestFirst, Depth: 6},
	}, table)
}

func TestParseDifficultyTableErrors(t *testing.T) {
	tests := map[string]string{
		"duplicate": "levels:\n  - {level: 1, algorithm: negamax, depth: 1}\n  - {level: 1, algorithm: negamax, depth: 2}\n",
		"algorithm": "levels:\n  - {level: 1, algorithm: mcts, depth: 1}\n",
		"depth":     "levels:\n  - {level: 1, algorithm: negamax, depth: 0}\n",
		"empty":     "levels: []\n",
		"syntax":    "levels: [",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDifficultyTable([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadDifficultyTable(t *testing.T) {
	table, err := LoadDifficultyTable("")
	require.NoError(t, err)
	assert.Equal(t, bot.DefaultDifficultyTable(), table)

	path := filepath.Join(t.TempDir(), "levels.yaml")
	require.NoError(t, os.WriteFile(path, []byte("levels:\n  - {level: 3, algorithm: bestfirst, depth: 3}\n"), 0o600))

	table, err = LoadDifficultyTable(path)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, table.Levels())

	_, err = LoadDifficultyTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
