package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv       string
	LogLevel     string
	Server       Server
	Database     Database
	Redis        Redis
	Cache        Cache
	Generator    Generator
	Sync         Sync
	Connectivity Connectivity
	GeminiApiKey string
	OpenAIApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Redis struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Cache controls where quiz records live and when they stop being usable.
type Cache struct {
	Driver        string // memory | sqlite | postgres | redis
	SQLitePath    string
	SchemaVersion string
	Expiry        time.Duration
}

type Generator struct {
	Provider      string // gemini | openai
	GeminiModel   string
	OpenAIModel   string
	Timeout       time.Duration
	RatePerMinute int
	Burst         int
}

type Sync struct {
	Enabled      bool
	InitialDelay time.Duration
	Interval     time.Duration
	RequestDelay time.Duration
	RetryDelay   time.Duration
	MaxRetries   int
	NumQuestions int
}

type Connectivity struct {
	ProbeURL      string
	ProbeInterval time.Duration
	ProbeTimeout  time.Duration
}

func setDefaults() {
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SERVER_PORT", "8080")

	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("CACHE_DRIVER", "sqlite")
	viper.SetDefault("SQLITE_PATH", "quizmaster.db")
	viper.SetDefault("CACHE_SCHEMA_VERSION", "1.2.0")
	viper.SetDefault("CACHE_EXPIRY", 24*time.Hour)

	viper.SetDefault("GENERATOR_PROVIDER", "gemini")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("GENERATION_TIMEOUT", 45*time.Second)
	viper.SetDefault("GENERATION_RATE_PER_MINUTE", 30)
	viper.SetDefault("GENERATION_BURST", 2)

	viper.SetDefault("SYNC_ENABLED", true)
	viper.SetDefault("SYNC_INITIAL_DELAY", 5*time.Second)
	viper.SetDefault("SYNC_INTERVAL", 6*time.Hour)
	viper.SetDefault("SYNC_REQUEST_DELAY", time.Second)
	viper.SetDefault("SYNC_RETRY_DELAY", 2*time.Second)
	viper.SetDefault("SYNC_MAX_RETRIES", 1)
	viper.SetDefault("SYNC_NUM_QUESTIONS", 10)

	viper.SetDefault("CONNECTIVITY_PROBE_URL", "https://clients3.google.com/generate_204")
	viper.SetDefault("CONNECTIVITY_PROBE_INTERVAL", time.Minute)
	viper.SetDefault("CONNECTIVITY_PROBE_TIMEOUT", 5*time.Second)
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.AppEnv = viper.GetString("APP_ENV")
	config.LogLevel = viper.GetString("LOG_LEVEL")
	config.Server.Port = viper.GetString("SERVER_PORT")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Redis.Host = viper.GetString("REDIS_HOST")
	config.Redis.Port = viper.GetString("REDIS_PORT")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.Cache.Driver = viper.GetString("CACHE_DRIVER")
	config.Cache.SQLitePath = viper.GetString("SQLITE_PATH")
	config.Cache.SchemaVersion = viper.GetString("CACHE_SCHEMA_VERSION")
	config.Cache.Expiry = viper.GetDuration("CACHE_EXPIRY")

	config.Generator.Provider = viper.GetString("GENERATOR_PROVIDER")
	config.Generator.GeminiModel = viper.GetString("GEMINI_MODEL")
	config.Generator.OpenAIModel = viper.GetString("OPENAI_MODEL")
	config.Generator.Timeout = viper.GetDuration("GENERATION_TIMEOUT")
	config.Generator.RatePerMinute = viper.GetInt("GENERATION_RATE_PER_MINUTE")
	config.Generator.Burst = viper.GetInt("GENERATION_BURST")

	config.Sync.Enabled = viper.GetBool("SYNC_ENABLED")
	config.Sync.InitialDelay = viper.GetDuration("SYNC_INITIAL_DELAY")
	config.Sync.Interval = viper.GetDuration("SYNC_INTERVAL")
	config.Sync.RequestDelay = viper.GetDuration("SYNC_REQUEST_DELAY")
	config.Sync.RetryDelay = viper.GetDuration("SYNC_RETRY_DELAY")
	config.Sync.MaxRetries = viper.GetInt("SYNC_MAX_RETRIES")
	config.Sync.NumQuestions = viper.GetInt("SYNC_NUM_QUESTIONS")

	config.Connectivity.ProbeURL = viper.GetString("CONNECTIVITY_PROBE_URL")
	config.Connectivity.ProbeInterval = viper.GetDuration("CONNECTIVITY_PROBE_INTERVAL")
	config.Connectivity.ProbeTimeout = viper.GetDuration("CONNECTIVITY_PROBE_TIMEOUT")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")
	config.OpenAIApiKey = viper.GetString("OPENAI_API_KEY")

	log.Info().
		Str("env", config.AppEnv).
		Str("port", config.Server.Port).
		Str("cache_driver", config.Cache.Driver).
		Str("schema_version", config.Cache.SchemaVersion).
		Str("generator", config.Generator.Provider).
		Bool("sync_enabled", config.Sync.Enabled).
		Msg("Config loaded")
	return &config, nil
}
