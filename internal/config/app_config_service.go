package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"timeline-ai/backend/internal/features/estimation/application"
	"timeline-ai/backend/internal/features/estimation/infrastructure"
)

// EnvPrefix is the prefix of environment overrides, e.g. TIMELINE_SERVER_ADDR.
const EnvPrefix = "TIMELINE_"

// AppConfig represents the application configuration.
type AppConfig struct {
	Server     ServerConfig     `koanf:"server"`
	Log        LogConfig        `koanf:"log"`
	Backend    BackendConfig    `koanf:"backend"`
	Estimation EstimationConfig `koanf:"estimation"`
	Rules      RulesConfig      `koanf:"rules"`
	Database   DatabaseConfig   `koanf:"database"`
}

type ServerConfig struct {
	Addr                 string `koanf:"addr"`
	AnalyseRatePerMinute int    `koanf:"analyse_rate_per_minute"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// BackendConfig configures the vision-reasoning backend.
type BackendConfig struct {
	Provider    string        `koanf:"provider"`
	LLM         string        `koanf:"llm"`
	APIKey      string        `koanf:"api_key"`
	BaseURL     string        `koanf:"base_url"`
	Model       string        `koanf:"model"`
	Temperature float64       `koanf:"temperature"`
	MaxTokens   int           `koanf:"max_tokens"`
	ImageDetail string        `koanf:"image_detail"`
	Timeout     time.Duration `koanf:"timeout"`
}

type EstimationConfig struct {
	PromptTemplate     string `koanf:"prompt_template"`
	DefaultProfile     string `koanf:"default_profile"`
	RepairJSON         bool   `koanf:"repair_json"`
	TotalToleranceDays int    `koanf:"total_tolerance_days"`
}

type RulesConfig struct {
	ProfilesDir string `koanf:"profiles_dir"`
}

type DatabaseConfig struct {
	URL string `koanf:"url"`
}

// defaults mirror the values the service was tuned with.
var defaults = map[string]interface{}{
	"server.addr":                     ":8080",
	"server.analyse_rate_per_minute":  0,
	"log.level":                       "info",
	"log.format":                      "console",
	"backend.provider":                "openai",
	"backend.llm":                     "openai",
	"backend.model":                   "gpt-4o",
	"backend.temperature":             0.5,
	"backend.max_tokens":              3000,
	"backend.image_detail":            "auto",
	"backend.timeout":                 "0s",
	"estimation.prompt_template":      application.TemplateDetailed,
	"estimation.default_profile":      "default",
	"estimation.repair_json":          false,
	"estimation.total_tolerance_days": 1,
}

// LoadAppConfig layers defaults, the optional TOML file at configPath, and
// the environment. OPENAI_API_KEY and DATABASE_URL are honoured as well as
// their TIMELINE_ forms; the TIMELINE_ forms win.
func LoadAppConfig(configPath string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config %s: %w", configPath, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error reading config %s: %w", configPath, err)
		}
	}

	wellKnown := map[string]string{
		"OPENAI_API_KEY": "backend.api_key",
		"DATABASE_URL":   "database.url",
	}
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return wellKnown[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// envKey maps TIMELINE_BACKEND_API_KEY to backend.api_key: the first segment
// is the section, the rest is the key.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.Replace(s, "_", ".", 1)
}

// InitAppConfig writes a TOML file with the default settings.
func InitAppConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("configuration file already exists at %s", configPath)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return err
	}
	if err := k.Set("backend.api_key", "your-openai-api-key"); err != nil {
		return err
	}
	data, err := k.Marshal(toml.Parser())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(configPath, data, 0644)
}

// Validate validates the configuration. A missing API key is not an error:
// the server still starts and reports it per request.
func Validate(cfg *AppConfig) error {
	switch strings.ToLower(cfg.Backend.Provider) {
	case "openai":
	case "langchain":
		switch strings.ToLower(cfg.Backend.LLM) {
		case "openai", "googleai", "anthropic":
		default:
			return fmt.Errorf("unsupported langchain llm: %s", cfg.Backend.LLM)
		}
	default:
		return fmt.Errorf("unsupported backend provider: %s", cfg.Backend.Provider)
	}
	if cfg.Backend.Temperature < 0 || cfg.Backend.Temperature > 2 {
		return fmt.Errorf("backend temperature must be between 0 and 2, got %v", cfg.Backend.Temperature)
	}
	if cfg.Backend.MaxTokens <= 0 {
		return fmt.Errorf("backend max_tokens must be positive, got %d", cfg.Backend.MaxTokens)
	}
	if _, err := application.TemplateByName(cfg.Estimation.PromptTemplate); err != nil {
		return err
	}
	if cfg.Estimation.TotalToleranceDays < 0 {
		return fmt.Errorf("estimation total_tolerance_days must not be negative")
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", cfg.Log.Format)
	}
	return nil
}

// AIConfig returns the client construction settings.
func (b BackendConfig) AIConfig() infrastructure.AIConfig {
	return infrastructure.AIConfig{
		Provider: b.Provider,
		LLM:      b.LLM,
		APIKey:   b.APIKey,
		BaseURL:  b.BaseURL,
		Model:    b.Model,
		Timeout:  b.Timeout,
	}
}

// ModelParams returns the per-call settings.
func (b BackendConfig) ModelParams() application.ModelParams {
	return application.ModelParams{
		Model:       b.Model,
		Temperature: float32(b.Temperature),
		MaxTokens:   b.MaxTokens,
		ImageDetail: b.ImageDetail,
	}
}

// NormalizerOptions returns the response normalizer settings.
func (e EstimationConfig) NormalizerOptions() application.NormalizerOptions {
	return application.NormalizerOptions{
		RepairJSON:         e.RepairJSON,
		TotalToleranceDays: e.TotalToleranceDays,
	}
}
