package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string
	OpenAIKey     string
	OpenAIBaseURL string
	DatabaseURL   string
	CORSOrigins   []string

	// Assistants maps selector -> provider assistant id.
	Assistants       map[string]string
	DefaultAssistant string

	PollInterval time.Duration
	RunTimeout   time.Duration

	LogLevel  string
	LogFormat string
}

// defaultAssistants ships with the service; ASSISTANTS_FILE adds to or overrides it.
var defaultAssistants = map[string]string{
	"path-planner":  "asst_c4kI5II18ObMEAfs5fAxDSPH",
	"atomic-habits": "asst_u1UIib7yww7O7AzxHy5rBBpx",
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:             valueOr(getenv("PORT"), "5001"),
		OpenAIKey:        strings.TrimSpace(getenv("OPENAI_API_KEY")),
		OpenAIBaseURL:    strings.TrimSpace(getenv("OPENAI_BASE_URL")),
		DatabaseURL:      strings.TrimSpace(getenv("DATABASE_URL")),
		CORSOrigins:      splitList(valueOr(getenv("CORS_ORIGINS"), "http://localhost:3000")),
		DefaultAssistant: "path-planner",
		LogLevel:         valueOr(getenv("LOG_LEVEL"), "info"),
		LogFormat:        valueOr(getenv("LOG_FORMAT"), "text"),
	}

	var err error
	if cfg.PollInterval, err = duration(getenv, "RUN_POLL_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.RunTimeout, err = duration(getenv, "RUN_TIMEOUT", 90*time.Second); err != nil {
		return nil, err
	}

	cfg.Assistants = make(map[string]string, len(defaultAssistants))
	for sel, id := range defaultAssistants {
		cfg.Assistants[sel] = id
	}
	if path := strings.TrimSpace(getenv("ASSISTANTS_FILE")); path != "" {
		if err := cfg.mergeAssistantsFile(path); err != nil {
			return nil, err
		}
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, errors.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	return cfg, nil
}

// RequireOpenAI fails when the provider key is missing.
func (c *Config) RequireOpenAI() error {
	if c.OpenAIKey == "" {
		return errors.New("OPENAI_API_KEY is not set")
	}
	return nil
}

type assistantsFile struct {
	Default    string            `yaml:"default"`
	Assistants map[string]string `yaml:"assistants"`
}

func (c *Config) mergeAssistantsFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read assistants file %s", path)
	}

	var f assistantsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return errors.Wrapf(err, "parse assistants file %s", path)
	}

	for sel, id := range f.Assistants {
		c.Assistants[strings.TrimSpace(sel)] = strings.TrimSpace(id)
	}
	if f.Default != "" {
		c.DefaultAssistant = f.Default
	}
	return nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, errors.Wrapf(err, "%s", key)
	}
	if d <= 0 {
		return 0, errors.Errorf("%s must be positive, got %s", key, v)
	}
	return d, nil
}

func valueOr(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
