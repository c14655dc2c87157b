// Package config contains utilities for loading configs
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const configFilePath = "/data/recipeshare.yaml"

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

type Server struct {
	Port uint16 `yaml:"port"`
}

type Database struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password" validate:"required"`
}

// ObjectStore configures the S3-compatible service holding recipe images.
// PublicURL is the base the asset URLs in recipe views are built from;
// ImageDir and ThumbDir are the key prefixes for the two asset kinds.
type ObjectStore struct {
	Endpoint  string `yaml:"endpoint" validate:"required"`
	AccessKey string `yaml:"access_key" validate:"required"`
	SecretKey string `yaml:"secret_key" validate:"required"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
	Bucket    string `yaml:"bucket" validate:"required"`
	PublicURL string `yaml:"public_url" validate:"url"`
	ImageDir  string `yaml:"image_dir"`
	ThumbDir  string `yaml:"thumb_dir"`
}

type Config struct {
	Server      Server      `yaml:"server"`
	Database    Database    `yaml:"database"`
	ObjectStore ObjectStore `yaml:"object_store"`
	HostOrigin  string      `yaml:"host_origin" validate:"url"`
	Env         string      `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ensureTrailingSlash keeps URL and key-prefix concatenation honest: asset
// locations are built as base + dir + filename.
func ensureTrailingSlash(s string) string {
	if s == "" || strings.HasSuffix(s, "/") {
		return s
	}
	return s + "/"
}

func applyDefaults(config *Config) {
	if config.Env == "" {
		config.Env = EnvDev
	}
	if config.HostOrigin == "" {
		config.HostOrigin = "http://localhost:8080"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.ObjectStore.Region == "" {
		config.ObjectStore.Region = "us-east-1"
	}
	if config.ObjectStore.Bucket == "" {
		config.ObjectStore.Bucket = "recipe-share-app"
	}
	if config.ObjectStore.PublicURL == "" {
		config.ObjectStore.PublicURL = "https://recipe-share-app.s3.amazonaws.com/"
	}
	if config.ObjectStore.ImageDir == "" {
		config.ObjectStore.ImageDir = "images/"
	}
	if config.ObjectStore.ThumbDir == "" {
		config.ObjectStore.ThumbDir = "thumbnails/"
	}
	config.ObjectStore.PublicURL = ensureTrailingSlash(config.ObjectStore.PublicURL)
	config.ObjectStore.ImageDir = ensureTrailingSlash(config.ObjectStore.ImageDir)
	config.ObjectStore.ThumbDir = ensureTrailingSlash(config.ObjectStore.ThumbDir)
}

func loadConfigFromEnv() (Config, error) {
	conf := Config{
		HostOrigin: loadWithDefault("HOST_ORIGIN", ""),
		Env:        loadWithDefault("ENV", ""),
	}

	serverPort := loadWithDefault("SERVER_PORT", "8080")
	if port, err := strconv.ParseUint(serverPort, 10, 16); err != nil {
		return conf, fmt.Errorf("invalid SERVER_PORT (%q): %w", serverPort, err)
	} else {
		conf.Server.Port = uint16(port)
	}

	conf.Database = Database{
		Host:     loadWithDefault("DATABASE_HOST", ""),
		Database: loadWithDefault("DATABASE", ""),
		User:     loadWithDefault("DATABASE_USER", ""),
		Password: loadWithDefault("DATABASE_PASSWORD", ""),
	}
	databasePort := loadWithDefault("DATABASE_PORT", "5432")
	if port, err := strconv.ParseUint(databasePort, 10, 16); err != nil {
		return conf, fmt.Errorf("invalid DATABASE_PORT (%q): %w", databasePort, err)
	} else {
		conf.Database.Port = uint16(port)
	}

	conf.ObjectStore = ObjectStore{
		Endpoint:  loadWithDefault("S3_ENDPOINT", ""),
		AccessKey: loadWithDefault("S3_ACCESS_KEY", ""),
		SecretKey: loadWithDefault("S3_SECRET_KEY", ""),
		Region:    loadWithDefault("S3_REGION", ""),
		Bucket:    loadWithDefault("S3_BUCKET", ""),
		PublicURL: loadWithDefault("S3_PUBLIC_URL", ""),
		ImageDir:  loadWithDefault("S3_IMAGE_DIR", ""),
		ThumbDir:  loadWithDefault("S3_THUMB_DIR", ""),
	}
	useSSL := loadWithDefault("S3_USE_SSL", "false")
	if b, err := strconv.ParseBool(useSSL); err != nil {
		return conf, fmt.Errorf("invalid S3_USE_SSL (%q): %w", useSSL, err)
	} else {
		conf.ObjectStore.UseSSL = b
	}

	applyDefaults(&conf)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(conf); err != nil {
		return conf, err
	}

	return conf, nil
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyDefaults(&config)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(config); err != nil {
		return Config{}, err
	}

	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}

func LoadConfig() (Config, error) {
	if configFileExists(configFilePath) {
		return loadConfigFromFile(configFilePath)
	}

	return loadConfigFromEnv()
}
