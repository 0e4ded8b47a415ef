package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	errMissingPort       = errors.New("api.port is required")
	errMissingSigningKey = errors.New("api.jwt_signing_key is required")
	errUnknownDBDriver   = errors.New("database.driver must be postgres or mysql")
	errUnknownStorage    = errors.New("storage.driver must be local or s3")
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Database *DatabaseConfig `mapstructure:"database"`
	Storage  *StorageConfig  `mapstructure:"storage"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
	Timezone           string        `mapstructure:"timezone"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	RateLimitPerMinute int           `mapstructure:"rate_limit_per_minute"`
	RateLimitBurst     int           `mapstructure:"rate_limit_burst"`
}

// Location resolves the zone used for date-range filters and brief timestamps.
// An empty timezone means UTC.
func (c *APIConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}

	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("time.LoadLocation(%q) -> %w", c.Timezone, err)
	}

	return loc, nil
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
	DSN      string `mapstructure:"dsn"`
}

type StorageConfig struct {
	Driver         string    `mapstructure:"driver"`
	BasePath       string    `mapstructure:"base_path"`
	MediaURL       string    `mapstructure:"media_url"`
	StaticURL      string    `mapstructure:"static_url"`
	MaxUploadBytes int64     `mapstructure:"max_upload_bytes"`
	S3             *S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	PublicURL       string `mapstructure:"public_url"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

// Load reads the YAML file at path. Every key can be overridden by an
// environment variable named after it, e.g. API_PORT or DATABASE_HOST.
func Load(path string) (*AppConfig, error) {
	viper.SetConfigFile(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	conf.applyDefaults()
	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

// Watch logs edits to the loaded config file. Values already handed out are
// not reloaded; a restart picks them up.
func Watch() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		zap.L().Info("config file changed, restart to apply",
			zap.String("file", e.Name),
			zap.String("op", e.Op.String()),
		)
	})
	viper.WatchConfig()
}

func (c *AppConfig) applyDefaults() {
	if c.API == nil {
		c.API = &APIConfig{}
	}
	if c.Gin == nil {
		c.Gin = &GinConfig{}
	}
	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}
	if c.Storage.S3 == nil {
		c.Storage.S3 = &S3Config{}
	}

	if c.API.JWTTTL == 0 {
		c.API.JWTTTL = 24 * time.Hour
	}
	if c.API.RateLimitPerMinute == 0 {
		c.API.RateLimitPerMinute = 120
	}
	if c.API.RateLimitBurst == 0 {
		c.API.RateLimitBurst = 30
	}
	if c.Gin.Mode == "" {
		c.Gin.Mode = "release"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "local"
	}
	if c.Storage.MaxUploadBytes == 0 {
		c.Storage.MaxUploadBytes = 5 * 1024 * 1024
	}
}

func (c *AppConfig) validate() error {
	if c.API.Port == "" {
		return errMissingPort
	}
	if c.API.JWTSigningKey == "" {
		return errMissingSigningKey
	}
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return errUnknownDBDriver
	}
	switch c.Storage.Driver {
	case "local", "s3":
	default:
		return errUnknownStorage
	}
	if _, err := c.API.Location(); err != nil {
		return err
	}

	return nil
}
