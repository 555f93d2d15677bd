package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
	}
	Upload struct {
		Dir      string
		MaxBytes int64
	}
	Storage struct {
		Driver    string
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	Seed struct {
		Enabled       bool
		AdminPassword string
		UserPassword  string
	}
	Log struct {
		Level string
	}
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Load reads configuration from environment variables and optional config files.
// Variables use the ARTICLEHUB_ prefix with dots replaced by underscores, e.g.
// ARTICLEHUB_AUTH_JWTSECRET. A .env file in the working directory is loaded
// first without overriding variables that are already set.
func Load() (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("ARTICLEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:5000")
	v.SetDefault("database.path", "data/app.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 60)
	v.SetDefault("upload.dir", "data/uploads")
	v.SetDefault("upload.maxbytes", 0)
	v.SetDefault("storage.driver", StorageLocal)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "articles")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.adminpassword", "admin123")
	v.SetDefault("seed.userpassword", "test123")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth jwt secret is required")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return errors.New("auth token ttl must be positive")
	}
	switch c.Storage.Driver {
	case StorageLocal:
		if c.Upload.Dir == "" {
			return errors.New("upload dir is required for local storage")
		}
	case StorageS3:
		if c.Storage.Bucket == "" {
			return errors.New("storage bucket is required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

func (c Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}
