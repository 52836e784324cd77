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

	Sheets SheetsConfig
	Portal PortalConfig
	Redis  RedisConfig
	JWT    JWTConfig
	CORS   CORSConfig
	Log    LogConfig
}

// SheetsConfig locates the two backing spreadsheets and the service-account
// credentials used to reach them.
type SheetsConfig struct {
	CredentialsFile string
	MembersSheetID  string
	RequestsSheetID string
	CacheTTL        time.Duration
}

// PortalConfig carries membership policy knobs.
type PortalConfig struct {
	Timezone       string
	FreeLeaveWeeks float64
	PINSalt        string
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
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
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

	cfg.Sheets = SheetsConfig{
		CredentialsFile: v.GetString("SHEETS_CREDENTIALS_FILE"),
		MembersSheetID:  v.GetString("MEMBERS_SHEET_ID"),
		RequestsSheetID: v.GetString("REQUESTS_SHEET_ID"),
		CacheTTL:        parseDuration(v.GetString("SHEETS_CACHE_TTL"), time.Minute),
	}

	cfg.Portal = PortalConfig{
		Timezone:       v.GetString("PORTAL_TIMEZONE"),
		FreeLeaveWeeks: v.GetFloat64("PORTAL_FREE_LEAVE_WEEKS"),
		PINSalt:        v.GetString("PIN_SALT"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:     v.GetString("JWT_SECRET"),
		Expiration: parseDuration(v.GetString("JWT_EXPIRATION"), 12*time.Hour),
		Issuer:     v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("SHEETS_CREDENTIALS_FILE", "credentials.json")
	v.SetDefault("MEMBERS_SHEET_ID", "")
	v.SetDefault("REQUESTS_SHEET_ID", "")
	v.SetDefault("SHEETS_CACHE_TTL", "60s")

	v.SetDefault("PORTAL_TIMEZONE", "Australia/Sydney")
	v.SetDefault("PORTAL_FREE_LEAVE_WEEKS", 4)
	v.SetDefault("PIN_SALT", "")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "12h")
	v.SetDefault("JWT_ISSUER", "dojo-portal")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
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
