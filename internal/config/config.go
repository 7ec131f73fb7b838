package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"`      // current application environment (local, dev, production)
	TelegramAPIToken string   `mapstructure:"-"`        // Telegram API token loaded from environment
	PokeAPI          PokeAPI  `mapstructure:"pokeapi"`  // remote data provider section
	Quiz             Quiz     `mapstructure:"quiz"`     // game rules section
	Sessions         Sessions `mapstructure:"sessions"` // in-memory session lifecycle section
	HTTP             HTTP     `mapstructure:"http"`     // HTTP API section
}

// PokeAPI contains parameters of the remote data provider.
type PokeAPI struct {
	BaseURL   string        `mapstructure:"base_url"`   // lookup root, ids are appended as "/{id}"
	Timeout   time.Duration `mapstructure:"timeout"`    // per-request HTTP timeout
	CacheSize int           `mapstructure:"cache_size"` // number of records kept in the LRU cache, 0 disables it
}

// Quiz contains the game rules.
type Quiz struct {
	CatalogSize      int           `mapstructure:"catalog_size"`      // ids are drawn from [1, CatalogSize]
	Distractors      int           `mapstructure:"distractors"`       // wrong options per question
	MaxDrawAttempts  int           `mapstructure:"max_draw_attempts"` // random draws before falling back to the id pool
	FeedbackDelay    time.Duration `mapstructure:"feedback_delay"`    // input lock after an answer
	DefaultQuestions int           `mapstructure:"default_questions"` // questions per session when the user gives none
}

// Sessions contains in-memory session lifecycle parameters.
type Sessions struct {
	TTL             time.Duration `mapstructure:"ttl"`              // idle sessions older than this are evicted
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"` // how often the janitor runs
}

// HTTP contains HTTP API parameters.
type HTTP struct {
	Addr           string   `mapstructure:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from ./config and environment variables.
func Load() (*Config, error) {
	return LoadFrom("./config")
}

// LoadFrom reads configuration from the given directory and environment variables.
func LoadFrom(dir string) (*Config, error) {
	// A missing .env file is fine, the environment may be set by other means.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetDefault("env", "local")
	v.SetDefault("pokeapi.base_url", "https://pokeapi.co/api/v2/pokemon")
	v.SetDefault("pokeapi.timeout", "8s")
	v.SetDefault("pokeapi.cache_size", 256)
	v.SetDefault("quiz.catalog_size", 151)
	v.SetDefault("quiz.distractors", 3)
	v.SetDefault("quiz.max_draw_attempts", 30)
	v.SetDefault("quiz.feedback_delay", "2s")
	v.SetDefault("quiz.default_questions", 10)
	v.SetDefault("sessions.ttl", "24h")
	v.SetDefault("sessions.cleanup_interval", "10m")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.allowed_origins", []string{"http://localhost:5173", "https://localhost:5173"})

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // pokeapi.base_url -> POKEAPI_BASE_URL
	v.AutomaticEnv()

	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Comma separated origins are accepted from the environment.
	if len(cfg.HTTP.AllowedOrigins) == 1 && strings.Contains(cfg.HTTP.AllowedOrigins[0], ",") {
		cfg.HTTP.AllowedOrigins = strings.Split(cfg.HTTP.AllowedOrigins[0], ",")
	}

	cfg.TelegramAPIToken = v.GetString("telegram_api_token")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// RequireTelegramToken reports ErrMissingEnvironmentVariables when the bot token is absent.
func (c *Config) RequireTelegramToken() error {
	if c.TelegramAPIToken == "" {
		return fmt.Errorf("TELEGRAM_API_TOKEN: %w", ErrMissingEnvironmentVariables)
	}
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.PokeAPI.BaseURL == "":
		return fmt.Errorf("%w: pokeapi.base_url is empty", ErrInvalidConfig)
	case c.Quiz.CatalogSize < 1:
		return fmt.Errorf("%w: quiz.catalog_size must be positive", ErrInvalidConfig)
	case c.Quiz.Distractors < 1:
		return fmt.Errorf("%w: quiz.distractors must be positive", ErrInvalidConfig)
	case c.Quiz.Distractors+1 > c.Quiz.CatalogSize:
		return fmt.Errorf("%w: quiz.distractors exceeds catalog size", ErrInvalidConfig)
	case c.Quiz.DefaultQuestions < 1 || c.Quiz.DefaultQuestions > entities.MaxTotalQuestions:
		return fmt.Errorf("%w: quiz.default_questions must be in [1, %d]", ErrInvalidConfig, entities.MaxTotalQuestions)
	}
	return nil
}
