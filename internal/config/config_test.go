package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	cfg := Load()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.ListenAddr)
	assert.NotEmpty(t, cfg.DBPath)
	assert.NotEmpty(t, cfg.NLPBackend)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NLP_BACKEND", "keyword")
	t.Setenv("ALLOW_ORIGINS", "*")
	t.Setenv("MAX_UPLOAD_MB", "")

	cfg := Load()

	assert.Equal(t, "keyword", cfg.NLPBackend)
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9000")
	t.Setenv("DB_PATH", "/custom/db.sqlite")
	t.Setenv("NLP_BACKEND", "Claude")
	t.Setenv("CLAUDE_API_KEY", "sk-test123")
	t.Setenv("ALLOW_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("MAX_UPLOAD_MB", "2")
	t.Setenv("SHOPLIST_USER", "asha")

	cfg := Load()

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.Equal(t, "/custom/db.sqlite", cfg.DBPath)
	assert.Equal(t, "claude", cfg.NLPBackend)
	assert.Equal(t, "sk-test123", cfg.ClaudeAPIKey)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes())
	assert.Equal(t, "asha", cfg.User)
}

func TestLoadIgnoresBadUploadLimit(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "lots")
	assert.Equal(t, 10, Load().MaxUploadMB)

	t.Setenv("MAX_UPLOAD_MB", "-3")
	assert.Equal(t, 10, Load().MaxUploadMB)
}
