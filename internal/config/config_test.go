package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "PAGE_SIZE", "LLM_PROVIDER", "FEEDBACK_ADAPTERS", "SEED_DEMO_DATA"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.StoreBackend)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "none", cfg.LLMProvider)
	assert.Equal(t, "Support", cfg.DefaultSource)
	assert.Empty(t, cfg.FeedbackAdapters)
	assert.False(t, cfg.SeedDemoData)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/s.db")
	t.Setenv("PAGE_SIZE", "25")
	t.Setenv("CLASSIFIER_SEED", "42")
	t.Setenv("FEEDBACK_ADAPTERS", "github, discord ,")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg := LoadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.StoreBackend)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, int64(42), cfg.ClassifierSeed)
	assert.Equal(t, []string{"github", "discord"}, cfg.FeedbackAdapters)
	assert.True(t, cfg.SeedDemoData)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_BadNumbersFallBack(t *testing.T) {
	t.Setenv("PAGE_SIZE", "lots")
	t.Setenv("SEED_DEMO_DATA", "maybe")

	cfg := LoadConfig()
	assert.Equal(t, 10, cfg.PageSize)
	assert.False(t, cfg.SeedDemoData)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.StoreBackend = "redis" }},
		{"postgres without url", func(c *Config) { c.StoreBackend = StorePostgres; c.DatabaseURL = "" }},
		{"file without path", func(c *Config) { c.StoreBackend = StoreFile; c.StoreFilePath = "" }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"bot token without channel", func(c *Config) { c.SlackBotToken = "xoxb"; c.SlackChannelID = "" }},
		{"prompt template without report", func(c *Config) { c.PromptTemplate = "Write analyst notes" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{StoreBackend: StoreMemory, PageSize: 10}
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig_PromptTemplate(t *testing.T) {
	t.Setenv("NARRATION_PROMPT_TEMPLATE", "Notes for the team:\n{REPORT}")
	cfg := LoadConfig()
	assert.Equal(t, "Notes for the team:\n{REPORT}", cfg.PromptTemplate)
	require.NoError(t, cfg.Validate())

	t.Setenv("NARRATION_PROMPT_TEMPLATE", "Notes for the team")
	cfg = LoadConfig()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NARRATION_PROMPT_TEMPLATE")
}
