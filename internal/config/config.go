package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZHANGJIGNYA/Notion-AI-Vocabulary-Bot/internal/domain"

	"github.com/spf13/viper"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"

	FilterReviewStage = "review_stage"
	FilterDue         = "due"
)

type Config struct {
	Notion    NotionConfig
	LLM       LLMConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Quiz      QuizConfig
	CacheTTLs CacheTTLConfig
}

type NotionConfig struct {
	DatabaseID    string
	Token         string
	PageSize      int
	Filter        string
	TrackSchedule bool
	Timeout       time.Duration
	Properties    NotionProperties
}

// NotionProperties names the database columns the pipeline reads and writes.
type NotionProperties struct {
	Name        string
	ReviewStage string
	LastQuiz    string
	Due         string
	Question    string
	AnswerKey   string
	MyAnswer    string
}

type LLMConfig struct {
	Provider    string
	Gemini      GeminiConfig
	Ollama      OllamaConfig
	OpenAI      OpenAIConfig
	JSONMode    bool
	Temperature float64
	Timeout     time.Duration
}

type GeminiConfig struct {
	APIKey       string
	Model        string
	AutoDiscover bool
}

type OllamaConfig struct {
	ServerURL string
	Model     string
}

type OpenAIConfig struct {
	APIKey string
	Model  string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Level string
	Env   string
}

type QuizConfig struct {
	Timezone string
}

type CacheTTLConfig struct {
	ModelDiscovery string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("notion.page_size", 5)
	v.SetDefault("notion.filter", FilterReviewStage)
	v.SetDefault("notion.track_schedule", false)
	v.SetDefault("notion.timeout", "15s")
	v.SetDefault("notion.properties.name", "Name")
	v.SetDefault("notion.properties.review_stage", "Review Stage")
	v.SetDefault("notion.properties.last_quiz", "Last Quiz")
	v.SetDefault("notion.properties.due", "Due")
	v.SetDefault("notion.properties.question", "❓ Question")
	v.SetDefault("notion.properties.answer_key", "🔑 Answer Key")
	v.SetDefault("notion.properties.my_answer", "✏️ My Answer")

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.gemini.model", "gemini-1.5-flash")
	v.SetDefault("llm.gemini.auto_discover", false)
	v.SetDefault("llm.ollama.server_url", "http://localhost:11434")
	v.SetDefault("llm.ollama.model", "llama3")
	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.json_mode", false)
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.timeout", "30s")

	v.SetDefault("redis.db", 0)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("quiz.timezone", "UTC")
	v.SetDefault("cache_ttls.model_discovery", "24h")
}

// LoadConfig reads config.yaml (optional) and the environment.
// configFile overrides the search path when non-empty.
// The legacy variables NOTION_DB_ID, NOTION_TOKEN and GEMINI_API_KEY are always honoured.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("VOCABQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if used := v.ConfigFileUsed(); used != "" {
		absPath, _ := filepath.Abs(used)
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", absPath)
	}

	config := &Config{
		Notion: NotionConfig{
			DatabaseID:    v.GetString("notion.database_id"),
			Token:         v.GetString("notion.token"),
			PageSize:      v.GetInt("notion.page_size"),
			Filter:        v.GetString("notion.filter"),
			TrackSchedule: v.GetBool("notion.track_schedule"),
			Timeout:       v.GetDuration("notion.timeout"),
			Properties: NotionProperties{
				Name:        v.GetString("notion.properties.name"),
				ReviewStage: v.GetString("notion.properties.review_stage"),
				LastQuiz:    v.GetString("notion.properties.last_quiz"),
				Due:         v.GetString("notion.properties.due"),
				Question:    v.GetString("notion.properties.question"),
				AnswerKey:   v.GetString("notion.properties.answer_key"),
				MyAnswer:    v.GetString("notion.properties.my_answer"),
			},
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(v.GetString("llm.provider")),
			Gemini: GeminiConfig{
				APIKey:       v.GetString("llm.gemini.api_key"),
				Model:        v.GetString("llm.gemini.model"),
				AutoDiscover: v.GetBool("llm.gemini.auto_discover"),
			},
			Ollama: OllamaConfig{
				ServerURL: v.GetString("llm.ollama.server_url"),
				Model:     v.GetString("llm.ollama.model"),
			},
			OpenAI: OpenAIConfig{
				APIKey: v.GetString("llm.openai.api_key"),
				Model:  v.GetString("llm.openai.model"),
			},
			JSONMode:    v.GetBool("llm.json_mode"),
			Temperature: v.GetFloat64("llm.temperature"),
			Timeout:     v.GetDuration("llm.timeout"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Quiz: QuizConfig{
			Timezone: v.GetString("quiz.timezone"),
		},
		CacheTTLs: CacheTTLConfig{
			ModelDiscovery: v.GetString("cache_ttls.model_discovery"),
		},
	}

	// Legacy environment variable names take precedence
	if dbID := os.Getenv("NOTION_DB_ID"); dbID != "" {
		config.Notion.DatabaseID = dbID
	}
	if token := os.Getenv("NOTION_TOKEN"); token != "" {
		config.Notion.Token = token
	}
	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		config.LLM.Gemini.APIKey = geminiKey
	}
	if openAIKey := os.Getenv("OPENAI_API_KEY"); openAIKey != "" && config.LLM.OpenAI.APIKey == "" {
		config.LLM.OpenAI.APIKey = openAIKey
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}

	return config, nil
}

// Validate reports every missing or invalid required setting in one error.
func (c *Config) Validate() error {
	var problems []string
	if c.Notion.DatabaseID == "" {
		problems = append(problems, "notion database id (NOTION_DB_ID) is required")
	}
	if c.Notion.Token == "" {
		problems = append(problems, "notion token (NOTION_TOKEN) is required")
	}
	switch c.LLM.Provider {
	case ProviderGemini:
		if c.LLM.Gemini.APIKey == "" {
			problems = append(problems, "gemini api key (GEMINI_API_KEY) is required")
		}
	case ProviderOpenAI:
		if c.LLM.OpenAI.APIKey == "" {
			problems = append(problems, "openai api key (OPENAI_API_KEY) is required")
		}
	case ProviderOllama:
		if c.LLM.Ollama.ServerURL == "" {
			problems = append(problems, "ollama server url is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported llm provider %q", c.LLM.Provider))
	}
	if c.Notion.Filter != FilterReviewStage && c.Notion.Filter != FilterDue {
		problems = append(problems, fmt.Sprintf("unsupported notion filter %q", c.Notion.Filter))
	}
	if c.Notion.PageSize < 1 || c.Notion.PageSize > 100 {
		problems = append(problems, "notion page size must be between 1 and 100")
	}
	if _, err := time.LoadLocation(c.Quiz.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid quiz timezone %q", c.Quiz.Timezone))
	}

	if len(problems) > 0 {
		return domain.NewInvalidConfigError("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the timezone used to decide what "today" is.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Quiz.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseTTLStringOrDefault parses a duration string, falling back to defaultTTL when empty or invalid.
func (c *Config) ParseTTLStringOrDefault(ttlString string, defaultTTL time.Duration) time.Duration {
	if ttlString == "" {
		return defaultTTL
	}
	duration, err := time.ParseDuration(ttlString)
	if err != nil {
		return defaultTTL
	}
	return duration
}
