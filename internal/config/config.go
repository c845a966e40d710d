package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	DBDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	PostsPerPage  int
	CacheTTL      time.Duration
	MediaRoot     string
	TemplatesGlob string
}

var cfg *Config

// Init loads .env (if present) and the environment into a Config.
// DB_DSN and JWT_SECRET are mandatory.
func Init() *Config {
	if err := godotenv.Load(); err != nil {
		Logger.Info("No .env file found, using system environment variables")
	}

	viper.SetDefault("APP_PORT", "8000")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("POSTS_PER_PAGE", 10)
	viper.SetDefault("CACHE_TTL", "20s")
	viper.SetDefault("MEDIA_ROOT", "./media")
	viper.SetDefault("TEMPLATES_GLOB", "web/templates/*/*.tmpl")

	viper.AutomaticEnv()

	cfg = &Config{
		AppPort:       viper.GetString("APP_PORT"),
		DBDSN:         viper.GetString("DB_DSN"),
		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),
		RedisDB:       viper.GetInt("REDIS_DB"),
		JWTSecret:     viper.GetString("JWT_SECRET"),
		PostsPerPage:  viper.GetInt("POSTS_PER_PAGE"),
		CacheTTL:      parseDuration(viper.GetString("CACHE_TTL"), 20*time.Second),
		MediaRoot:     viper.GetString("MEDIA_ROOT"),
		TemplatesGlob: viper.GetString("TEMPLATES_GLOB"),
	}

	if cfg.DBDSN == "" {
		Logger.Fatal("DB_DSN is not set")
	}
	if cfg.JWTSecret == "" {
		Logger.Fatal("JWT_SECRET is not set")
	}
	if cfg.PostsPerPage < 1 {
		cfg.PostsPerPage = 10
	}

	return cfg
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

// Get returns the loaded config instance.
func Get() *Config { return cfg }
