package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const (
	EnvToken   = "COHERE_API_KEY"
	EnvModel   = "INTENTBOT_MODEL"
	EnvBaseURL = "INTENTBOT_BASE_URL"

	DefaultBaseURL = "https://api.cohere.ai/compatibility/v1"
	DefaultModel   = "command-r"
)

type Config struct {
	Log     Log     `yaml:"log"`
	LLM     LLM     `yaml:"llm"`
	Session Session `yaml:"session"`
}

type LLM struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://api.cohere.ai/compatibility/v1" validate:"required,url"`
	// API token, normally taken from COHERE_API_KEY
	Token string `yaml:"token" example:"co-abc123456789DEF789ghi012JKL345mno678" validate:"required"`
	// Chat model
	Model string `yaml:"model" example:"command-r" validate:"required"`
	// Per-request deadline
	Timeout time.Duration `yaml:"timeout" example:"30s" validate:"gt=0"`
	// Sampling temperature
	Temperature float32 `yaml:"temperature" example:"0.3" validate:"gte=0,lte=2"`
	// Completion token cap
	MaxTokens int `yaml:"max_tokens" example:"1000" validate:"gt=0"`
}

type Session struct {
	// Inputs that end the session, compared case-insensitively
	ExitWords []string `yaml:"exit_words" example:"[exit, quit]" validate:"min=1,dive,required"`
}

type Log struct {
	// Console log level: debug, info, warn, error
	Level string `yaml:"level" example:"debug" validate:"oneof=debug info warn error"`
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

// Load reads .env, the optional YAML file at path and the process environment,
// in that order of increasing precedence.
func Load(path string) (*Config, error) {
	result := defaults()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, oops.Errorf("failed to read config file: %w", err)
	default:
		if err = yaml.Unmarshal(data, &result); err != nil {
			return nil, oops.Errorf("failed to parse YAML config: %w", err)
		}
	}

	applyEnv(&result)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}

func applyEnv(cfg *Config) {
	if value := os.Getenv(EnvToken); value != "" {
		cfg.LLM.Token = value
	}
	if value := os.Getenv(EnvModel); value != "" {
		cfg.LLM.Model = value
	}
	if value := os.Getenv(EnvBaseURL); value != "" {
		cfg.LLM.BaseURL = value
	}
}

// defaults is the base the YAML file is decoded onto, so explicit zero values
// such as temperature: 0 survive.
func defaults() Config {
	return Config{
		Log: Log{
			Level: "debug",
		},
		LLM: LLM{
			BaseURL:     DefaultBaseURL,
			Model:       DefaultModel,
			Timeout:     30 * time.Second,
			Temperature: 0.3,
			MaxTokens:   1000,
		},
		Session: Session{
			ExitWords: []string{"exit", "quit"},
		},
	}
}
