package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ListenAddr   string
	DBPath       string
	LogLevel     string
	LogFile      string
	LexiconPath  string
	NLPBackend   string
	ClaudeAPIKey string
	ClaudeModel  string
	OllamaHost   string
	OllamaModel  string
	AuditLog     string
	AllowOrigins []string
	MaxUploadMB  int
	User         string
}

func Load() *Config {
	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "/data/shoplist.db"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFile:      getEnv("LOG_FILE", ""),
		LexiconPath:  getEnv("LEXICON_PATH", ""),
		NLPBackend:   strings.ToLower(getEnv("NLP_BACKEND", "keyword")),
		ClaudeAPIKey: getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:  getEnv("CLAUDE_MODEL", "claude-haiku-4-5"),
		OllamaHost:   getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:  getEnv("OLLAMA_MODEL", "llama3.2"),
		AuditLog:     getEnv("AUDIT_LOG", "/data/unmapped_phrases.log"),
		AllowOrigins: splitList(getEnv("ALLOW_ORIGINS", "*")),
		MaxUploadMB:  getEnvInt("MAX_UPLOAD_MB", 10),
		User:         getEnv("SHOPLIST_USER", ""),
	}
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// getEnvInt falls back to defaultVal when the variable is unset or is not a
// positive integer.
func getEnvInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(strings.TrimSpace(getEnv(key, "")))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
