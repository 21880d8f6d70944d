// Package config provides YAML-based configuration with environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Photo storage backends.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// AppConfig represents the root configuration structure
type AppConfig struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Photo storage backend
	Photos PhotosConfig `yaml:"photos"`

	// Logging options
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int    `yaml:"port" env:"PORT"`
	BindAddress  string `yaml:"bind_address" env:"BIND_ADDRESS"`
	ReadTimeout  int    `yaml:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds"`
	IdleTimeout  int    `yaml:"idle_timeout_seconds"`
	BodyLimit    string `yaml:"body_limit"`
	EnableGzip   bool   `yaml:"enable_gzip"`
}

// StorageConfig contains file storage settings
type StorageConfig struct {
	UploadsDirectory string `yaml:"uploads_directory" env:"UPLOAD_DIR"`
	PhotosDirectory  string `yaml:"photos_directory" env:"PHOTO_DIR"`
}

// PhotosConfig selects where photos are kept
type PhotosConfig struct {
	Backend string      `yaml:"backend" env:"PHOTO_BACKEND"`
	MinIO   MinIOConfig `yaml:"minio" envPrefix:"MINIO_"`
}

// MinIOConfig contains object storage parameters
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" env:"ENDPOINT"`
	AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"BUCKET_NAME"`
	Prefix    string `yaml:"prefix" env:"PREFIX"`
	UseSSL    bool   `yaml:"use_ssl" env:"USE_SSL"`
}

// LoggingConfig contains log settings
type LoggingConfig struct {
	Level          string `yaml:"level" env:"LOG_LEVEL"`
	RequestLogging bool   `yaml:"request_logging" env:"REQUEST_LOGGING"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:         5001,
			BindAddress:  "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  120,
			BodyLimit:    "16M",
			EnableGzip:   true,
		},
		Storage: StorageConfig{
			UploadsDirectory: "./uploads",
			PhotosDirectory:  "./uploads/photos",
		},
		Photos: PhotosConfig{
			Backend: BackendLocal,
			MinIO: MinIOConfig{
				Endpoint: "localhost:9000",
				Bucket:   "roster-photos",
			},
		},
		Logging: LoggingConfig{
			Level:          "info",
			RequestLogging: true,
		},
	}
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig loads configuration from a YAML file, writing the defaults there
// first if the file does not exist. Environment variables override file values.
func LoadConfig(configPath string) (*AppConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := config.Save(configPath); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := config.applyEnvironmentOverrides(); err != nil {
		return nil, err
	}

	config.resolvePaths(filepath.Dir(configPath))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the configuration to a YAML file
func (c *AppConfig) Save(configPath string) error {
	output, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte("# Roster Manager configuration\n# This file is auto-generated on first run\n\n")
	if err := os.WriteFile(configPath, append(header, output...), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks values that cannot be defaulted
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	c.Photos.Backend = strings.ToLower(strings.TrimSpace(c.Photos.Backend))
	switch c.Photos.Backend {
	case BackendLocal:
	case BackendMinIO:
		if c.Photos.MinIO.Endpoint == "" || c.Photos.MinIO.Bucket == "" {
			return errors.New("minio photo backend requires endpoint and bucket")
		}
	default:
		return fmt.Errorf("unknown photo backend %q", c.Photos.Backend)
	}
	return nil
}

// applyEnvironmentOverrides allows environment variables to override config values
func (c *AppConfig) applyEnvironmentOverrides() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// resolvePaths converts relative paths to absolute based on config file location
func (c *AppConfig) resolvePaths(configDir string) {
	if !filepath.IsAbs(c.Storage.UploadsDirectory) {
		c.Storage.UploadsDirectory = filepath.Join(configDir, c.Storage.UploadsDirectory)
	}
	if !filepath.IsAbs(c.Storage.PhotosDirectory) {
		c.Storage.PhotosDirectory = filepath.Join(configDir, c.Storage.PhotosDirectory)
	}
}

// GetServerAddr returns the server bind address
func (c *AppConfig) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.BindAddress, c.Server.Port)
}

// EnsureDirectories creates all necessary directories
func (c *AppConfig) EnsureDirectories() error {
	dirs := []string{c.Storage.UploadsDirectory}
	if c.Photos.Backend == BackendLocal {
		dirs = append(dirs, c.Storage.PhotosDirectory)
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
