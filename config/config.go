package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/chris/timely/internal/llm"
)

type Config struct {
	LLMProvider    string // openai, anthropic, ollama
	OpenAIKey      string
	AnthropicKey   string // API key (X-Api-Key header)
	AnthropicToken string // OAuth token (Authorization: Bearer header)
	LLMModel       string
	OllamaBaseURL  string
	HTTPAddr       string
	CORSOrigins    []string
	DatabasePath   string
	DiscordToken   string
	DiscordWebhook string
	CheckInCron    string
	RequestTimeout time.Duration
	Debug          bool
}

// Dir is where timely keeps its config file and default database.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".timely"
	}
	return filepath.Join(home, ".timely")
}

// File is the per-user config file, in .env format.
func File() string {
	return filepath.Join(Dir(), "config")
}

// Load reads .env from the working directory, then ~/.timely/config.
// Variables already set in the environment win.
func Load() *Config {
	_ = godotenv.Load() // ignore error if no .env
	_ = godotenv.Load(File())

	return &Config{
		LLMProvider:    strings.ToLower(envOr("LLM_PROVIDER", "openai")),
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicToken: os.Getenv("ANTHROPIC_AUTH_TOKEN"),
		LLMModel:       os.Getenv("LLM_MODEL"),
		OllamaBaseURL:  envOr("OLLAMA_BASE_URL", "http://localhost:11434/v1/"),
		HTTPAddr:       envOr("HTTP_ADDR", ":8000"),
		CORSOrigins:    splitList(envOr("CORS_ORIGINS", "*")),
		DatabasePath:   envOr("DATABASE_PATH", filepath.Join(Dir(), "timely.db")),
		DiscordToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordWebhook: os.Getenv("DISCORD_WEBHOOK_URL"),
		CheckInCron:    envOr("CHECK_IN_CRON", "0 9 * * *"),
		RequestTimeout: envDuration("REQUEST_TIMEOUT", 30*time.Second),
		Debug:          envBool("DEBUG"),
	}
}

// Provider returns the LLM settings for the configured provider.
func (c *Config) Provider() llm.ProviderConfig {
	pc := llm.ProviderConfig{Provider: c.LLMProvider, Model: c.LLMModel}
	switch c.LLMProvider {
	case "anthropic":
		pc.APIKey = c.AnthropicKey
		pc.AuthToken = c.AnthropicToken
	case "ollama":
		pc.BaseURL = c.OllamaBaseURL
	default:
		pc.APIKey = c.OpenAIKey
	}
	return pc
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("config: invalid %s %q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func envBool(key string) bool {
	b, _ := strconv.ParseBool(os.Getenv(key))
	return b
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
