package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Port            string
	DBDSN           string
	TemplatesDir    string
	StaticDir       string
	LogLevel        string
	LogFile         string
	SearchRateLimit int
	SeedSampleData  bool
	ShutdownTimeout time.Duration
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "5001")
	v.SetDefault("DB_DSN", "prescriptions.db") // sqlite file in working dir
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STATIC_DIR", "./web/static")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("SEARCH_RATE_LIMIT", 60)
	v.SetDefault("SEED_SAMPLE_DATA", true)
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	timeout := v.GetDuration("SHUTDOWN_TIMEOUT")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rate := v.GetInt("SEARCH_RATE_LIMIT")
	if rate < 0 {
		rate = 0
	}
	return Config{
		Port:            v.GetString("PORT"),
		DBDSN:           v.GetString("DB_DSN"),
		TemplatesDir:    v.GetString("TEMPLATES_DIR"),
		StaticDir:       v.GetString("STATIC_DIR"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFile:         v.GetString("LOG_FILE"),
		SearchRateLimit: rate,
		SeedSampleData:  v.GetBool("SEED_SAMPLE_DATA"),
		ShutdownTimeout: timeout,
	}
}

// Fields is used for the startup log line.
func (c Config) Fields() []zap.Field {
	return []zap.Field{
		zap.String("port", c.Port),
		zap.String("db_dsn", c.DBDSN),
		zap.String("templates_dir", c.TemplatesDir),
		zap.String("static_dir", c.StaticDir),
		zap.String("log_file", c.LogFile),
		zap.Int("search_rate_limit", c.SearchRateLimit),
	}
}
