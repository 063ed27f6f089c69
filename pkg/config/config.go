package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Planner   PlannerConfig
	Generator GeneratorConfig
	Assistant AssistantConfig
	Catalog   CatalogConfig
	Export    ExportConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// PlannerConfig bounds the interactive add-course path.
type PlannerConfig struct {
	MinCredits       int
	MaxCredits       int
	MaxCoursesPerDay int
}

// GeneratorConfig bounds automatic timetable generation. Its credit ceiling
// is deliberately tighter than the interactive one.
type GeneratorConfig struct {
	MaxCredits    int
	TargetCredits int
	ProposalTTL   time.Duration
}

// AssistantConfig points at the external (heuristic) schedule generator.
type AssistantConfig struct {
	Enabled bool
	BaseURL string
	Timeout time.Duration
}

// CatalogConfig tunes course catalog reads.
type CatalogConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

// ExportConfig tunes document rendering. PDFFontPath points at a UTF-8
// (TrueType) font file used for Korean text in PDF downloads; when empty the
// exporter falls back to the built-in latin fonts.
type ExportConfig struct {
	PDFFontPath string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Planner = PlannerConfig{
		MinCredits:       v.GetInt("PLANNER_MIN_CREDITS"),
		MaxCredits:       v.GetInt("PLANNER_MAX_CREDITS"),
		MaxCoursesPerDay: v.GetInt("PLANNER_MAX_COURSES_PER_DAY"),
	}

	cfg.Generator = GeneratorConfig{
		MaxCredits:    v.GetInt("GENERATOR_MAX_CREDITS"),
		TargetCredits: v.GetInt("GENERATOR_TARGET_CREDITS"),
		ProposalTTL:   parseDuration(v.GetString("GENERATOR_PROPOSAL_TTL"), 30*time.Minute),
	}

	cfg.Assistant = AssistantConfig{
		Enabled: v.GetBool("ASSISTANT_ENABLED"),
		BaseURL: v.GetString("ASSISTANT_BASE_URL"),
		Timeout: parseDuration(v.GetString("ASSISTANT_TIMEOUT"), 20*time.Second),
	}

	cfg.Catalog = CatalogConfig{
		CacheEnabled: v.GetBool("CATALOG_CACHE_ENABLED"),
		CacheTTL:     parseDuration(v.GetString("CATALOG_CACHE_TTL"), 10*time.Minute),
	}

	cfg.Export = ExportConfig{PDFFontPath: v.GetString("EXPORT_PDF_FONT_PATH")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "uniplan")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("PLANNER_MIN_CREDITS", 12)
	v.SetDefault("PLANNER_MAX_CREDITS", 21)
	v.SetDefault("PLANNER_MAX_COURSES_PER_DAY", 4)

	v.SetDefault("GENERATOR_MAX_CREDITS", 18)
	v.SetDefault("GENERATOR_TARGET_CREDITS", 15)
	v.SetDefault("GENERATOR_PROPOSAL_TTL", "30m")

	v.SetDefault("ASSISTANT_ENABLED", false)
	v.SetDefault("ASSISTANT_BASE_URL", "http://localhost:9090")
	v.SetDefault("ASSISTANT_TIMEOUT", "20s")

	v.SetDefault("CATALOG_CACHE_ENABLED", false)
	v.SetDefault("CATALOG_CACHE_TTL", "10m")

	v.SetDefault("EXPORT_PDF_FONT_PATH", "")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
