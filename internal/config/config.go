package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string

	DatabaseDriver string
	DatabaseURL    string

	StorageBackend string
	UploadRoot     string
	MaxUploadBytes int64

	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string

	SweepSchedule string
	SweepGrace    time.Duration

	LogLevel  string
	LogFormat string

	CORSOrigins   []string
	ThemeCacheTTL time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	BackendDisk     = "disk"
	BackendSupabase = "supabase"
)

// Load reads configuration from the environment, after merging a .env file
// when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(NewViper())
}

// NewViper returns a viper instance with defaults and environment binding.
// studioctl binds its flags onto the same instance.
func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_URL", "inkstudio.db")
	v.SetDefault("STORAGE_BACKEND", BackendDisk)
	v.SetDefault("UPLOAD_ROOT", "uploads")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("SUPABASE_BUCKET", "studio-uploads")
	v.SetDefault("SWEEP_SCHEDULE", "")
	v.SetDefault("SWEEP_GRACE", time.Hour)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("THEME_CACHE_TTL", 5*time.Minute)
	return v
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),

		DatabaseDriver: v.GetString("DB_DRIVER"),
		DatabaseURL:    v.GetString("DB_URL"),

		StorageBackend: v.GetString("STORAGE_BACKEND"),
		UploadRoot:     v.GetString("UPLOAD_ROOT"),
		MaxUploadBytes: v.GetInt64("MAX_UPLOAD_BYTES"),

		SupabaseURL:    v.GetString("SUPABASE_URL"),
		SupabaseKey:    v.GetString("SUPABASE_KEY"),
		SupabaseBucket: v.GetString("SUPABASE_BUCKET"),

		SweepSchedule: v.GetString("SWEEP_SCHEDULE"),
		SweepGrace:    v.GetDuration("SWEEP_GRACE"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		CORSOrigins:   splitList(v.GetString("CORS_ORIGINS")),
		ThemeCacheTTL: v.GetDuration("THEME_CACHE_TTL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DB_URL is required")
	}
	switch c.StorageBackend {
	case BackendDisk:
		if c.UploadRoot == "" {
			return fmt.Errorf("UPLOAD_ROOT is required for the disk backend")
		}
	case BackendSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_KEY are required for the supabase backend")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendDisk, BackendSupabase, c.StorageBackend)
	}
	if c.SweepGrace <= 0 {
		return fmt.Errorf("SWEEP_GRACE must be positive")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
