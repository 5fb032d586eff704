package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Settings struct {
	Addr          string
	DBDriver      string
	DBDSN         string
	JWTSecret     string
	JWTTTL        time.Duration
	CryptoKey     string
	AIProvider    string
	AIModel       string
	AIBaseURL     string
	AIAPIKey      string
	CORSOrigins   []string
	LogLevel      string
	AdminEmail    string
	AdminPassword string
}

// LoadEnv reads a .env file when present. Variables already set win.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		Logger.Debug("No .env file found, using system environment")
		return
	}
	Logger.Info(".env file loaded")
}

// NewViper returns a viper instance with defaults, EVALUP_ environment binding
// and an optional evalup.yaml config file.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("addr", ":8080")
	v.SetDefault("db-driver", DriverPostgres)
	v.SetDefault("jwt-ttl", "24h")
	v.SetDefault("ai-provider", "gemini")
	v.SetDefault("ai-model", "gemini-2.0-flash")
	v.SetDefault("cors-origins", []string{"http://localhost:5173"})
	v.SetDefault("log-level", "info")

	v.SetEnvPrefix("EVALUP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("evalup")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/evalup")
	v.AddConfigPath("/etc/evalup")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.WithError(err).Warn("Error reading config file")
		}
	} else {
		Logger.WithField("path", v.ConfigFileUsed()).Info("Loaded config file")
	}

	return v
}

func Load(v *viper.Viper) Settings {
	ttl := v.GetDuration("jwt-ttl")
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return Settings{
		Addr:          v.GetString("addr"),
		DBDriver:      strings.ToLower(v.GetString("db-driver")),
		DBDSN:         v.GetString("db-dsn"),
		JWTSecret:     v.GetString("jwt-secret"),
		JWTTTL:        ttl,
		CryptoKey:     v.GetString("crypto-key"),
		AIProvider:    strings.ToLower(v.GetString("ai-provider")),
		AIModel:       v.GetString("ai-model"),
		AIBaseURL:     v.GetString("ai-base-url"),
		AIAPIKey:      v.GetString("ai-api-key"),
		CORSOrigins:   splitList(v.GetStringSlice("cors-origins")),
		LogLevel:      v.GetString("log-level"),
		AdminEmail:    v.GetString("admin-email"),
		AdminPassword: v.GetString("admin-password"),
	}
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
