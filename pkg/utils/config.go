package utils

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	URI                   string
	Name                  string
	ConnectTimeoutSeconds int
	MaxPoolSize           uint64
}

type JWTConfig struct {
	Secret        string
	ExpiryMinutes int
}

// RedisConfig backs the login limiter. Empty Addr disables it.
type RedisConfig struct {
	Addr          string
	Password      string
	DB            int
	LoginLimit    int
	WindowSeconds int
}

// LoadConfig reads an optional env-style file at path. A missing file leaves
// the built-in defaults in place.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "online-clothing-shop")
	v.SetDefault("PORT", "5000")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/")
	v.SetDefault("MONGO_DB", "online_clothing_shop")
	v.SetDefault("MONGO_CONNECT_TIMEOUT_SECONDS", 5)
	v.SetDefault("MONGO_MAX_POOL_SIZE", 20)
	v.SetDefault("JWT_SECRET", "your_secret_key")
	v.SetDefault("JWT_EXPIRY_MINUTES", 15)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW_SECONDS", 60)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           v.GetString("APP_NAME"),
			Port:           v.GetString("PORT"),
			Debug:          v.GetBool("DEBUG"),
			LogPath:        v.GetString("LOG_PATH"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URI:                   v.GetString("MONGO_URI"),
			Name:                  v.GetString("MONGO_DB"),
			ConnectTimeoutSeconds: v.GetInt("MONGO_CONNECT_TIMEOUT_SECONDS"),
			MaxPoolSize:           v.GetUint64("MONGO_MAX_POOL_SIZE"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			ExpiryMinutes: v.GetInt("JWT_EXPIRY_MINUTES"),
		},
		Redis: RedisConfig{
			Addr:          v.GetString("REDIS_ADDR"),
			Password:      v.GetString("REDIS_PASSWORD"),
			DB:            v.GetInt("REDIS_DB"),
			LoginLimit:    v.GetInt("LOGIN_RATE_LIMIT"),
			WindowSeconds: v.GetInt("LOGIN_RATE_WINDOW_SECONDS"),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
