package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
		Env  string `mapstructure:"env"`
	} `mapstructure:"server"`

	Database struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"database"`

	Auth struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	} `mapstructure:"auth"`

	Storage struct {
		Type      string `mapstructure:"type"` // local, s3
		BasePath  string `mapstructure:"base_path"`
		BaseURL   string `mapstructure:"base_url"`
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Endpoint  string `mapstructure:"endpoint"`
	} `mapstructure:"storage"`

	AI struct {
		BaseURL      string        `mapstructure:"base_url"`
		APIKey       string        `mapstructure:"api_key"`
		TextModel    string        `mapstructure:"text_model"`
		ImageModel   string        `mapstructure:"image_model"`
		Timeout      time.Duration `mapstructure:"timeout"`
		RequestDelay time.Duration `mapstructure:"request_delay"`
		Temperature  float64       `mapstructure:"temperature"`
	} `mapstructure:"ai"`

	Cache struct {
		Path string `mapstructure:"path"` // empty keeps the cache in memory
	} `mapstructure:"cache"`

	Upload struct {
		MaxSize      int64 `mapstructure:"max_size"`
		ImageQuality int   `mapstructure:"image_quality"`
		MaxPixels    int   `mapstructure:"max_pixels"`
	} `mapstructure:"upload"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.base_path", "./uploads")
	v.SetDefault("storage.base_url", "/files")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("ai.base_url", "https://api.openai.com")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.text_model", "gpt-4o-mini")
	v.SetDefault("ai.image_model", "gpt-image-1")
	v.SetDefault("ai.timeout", 90*time.Second)
	v.SetDefault("ai.request_delay", 2*time.Second)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("cache.path", "")
	v.SetDefault("upload.max_size", 10<<20)
	v.SetDefault("upload.image_quality", 85)
	v.SetDefault("upload.max_pixels", 40_000_000)
}

// Load reads configuration from defaults, an optional config file and
// CATALOG_* environment variables, in increasing priority. A .env file in
// the working directory is loaded into the environment first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.dsn is required"))
	}
	switch c.Storage.Type {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			errs = append(errs, errors.New("storage.bucket is required for s3 storage"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported storage.type %q", c.Storage.Type))
	}
	if c.AI.RequestDelay < 0 {
		errs = append(errs, errors.New("ai.request_delay must not be negative"))
	}
	if c.Upload.ImageQuality < 1 || c.Upload.ImageQuality > 100 {
		errs = append(errs, errors.New("upload.image_quality must be within 1..100"))
	}
	return errors.Join(errs...)
}
