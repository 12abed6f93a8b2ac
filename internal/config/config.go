package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig `yaml:"server"`

	// Database configuration
	Database DatabaseConfig `yaml:"database"`

	// Events configuration
	Events EventsConfig `yaml:"events"`

	// NATS configuration
	NATS NATSConfig `yaml:"nats"`

	// Kafka configuration
	Kafka KafkaConfig `yaml:"kafka"`

	// Storage configuration
	Storage StorageConfig `yaml:"storage"`

	// Upload configuration
	Upload UploadConfig `yaml:"upload"`

	// Editor configuration
	Editor EditorConfig `yaml:"editor"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	GRPCPort     int           `yaml:"grpc_port"`
	HTTPPort     int           `yaml:"http_port"`
	Environment  string        `yaml:"environment"`
	ServiceName  string        `yaml:"service_name"`
	LogLevel     string        `yaml:"log_level"`
	LogFormat    string        `yaml:"log_format"` // json or console
	ShutdownTime time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver       string        `yaml:"driver"` // sqlite or postgres
	Path         string        `yaml:"path"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	User         string        `yaml:"user"`
	Password     string        `yaml:"password"`
	Database     string        `yaml:"name"`
	SSLMode      string        `yaml:"sslmode"`
	MaxOpenConns int           `yaml:"max_open_conns"`
	MaxIdleConns int           `yaml:"max_idle_conns"`
	MaxLifetime  time.Duration `yaml:"max_lifetime"`
}

// EventsConfig selects where integration events go
type EventsConfig struct {
	Backend        string        `yaml:"backend"` // none, nats or kafka
	BufferSize     int           `yaml:"buffer_size"`
	PublishTimeout time.Duration `yaml:"publish_timeout"`
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL           string        `yaml:"url"`
	ClientID      string        `yaml:"client_id"`
	StreamName    string        `yaml:"stream_name"`
	MaxReconnect  int           `yaml:"max_reconnect"`
	ReconnectWait time.Duration `yaml:"reconnect_wait"`
}

// KafkaConfig holds Kafka configuration
type KafkaConfig struct {
	Brokers  []string `yaml:"brokers"`
	Topic    string   `yaml:"topic"`
	ClientID string   `yaml:"client_id"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type      string   `yaml:"type"` // local or s3
	LocalPath string   `yaml:"local_path"`
	S3Config  S3Config `yaml:"s3"`
}

// S3Config holds S3 configuration
type S3Config struct {
	Endpoint     string `yaml:"endpoint"`
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	Prefix       string `yaml:"prefix"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// UploadConfig holds media upload configuration
type UploadConfig struct {
	MaxBytes     int64         `yaml:"max_bytes"`
	TempDir      string        `yaml:"temp_dir"`
	FFprobePath  string        `yaml:"ffprobe_path"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// RecordCacheTTL keeps media records in memory; zero disables the cache
	RecordCacheTTL time.Duration `yaml:"record_cache_ttl"`
}

// EditorConfig holds timeline editor configuration
type EditorConfig struct {
	PixelsPerSecond float64       `yaml:"pixels_per_second"`
	TickInterval    time.Duration `yaml:"tick_interval"`
}

// Default returns the built-in configuration
func Default(serviceName string) *Config {
	return &Config{
		Server: ServerConfig{
			GRPCPort:     9090,
			HTTPPort:     8080,
			Environment:  "development",
			ServiceName:  serviceName,
			LogLevel:     "info",
			LogFormat:    "json",
			ShutdownTime: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:       "sqlite",
			Path:         "splice.db",
			Host:         "localhost",
			Port:         5432,
			User:         "splice",
			Password:     "splice",
			Database:     "splice",
			SSLMode:      "disable",
			MaxOpenConns: 25,
			MaxIdleConns: 5,
			MaxLifetime:  5 * time.Minute,
		},
		Events: EventsConfig{
			Backend:        "none",
			BufferSize:     256,
			PublishTimeout: 5 * time.Second,
		},
		NATS: NATSConfig{
			URL:           "nats://localhost:4222",
			ClientID:      serviceName,
			StreamName:    "TIMELINE_EVENTS",
			MaxReconnect:  60,
			ReconnectWait: 2 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:  []string{"localhost:9092"},
			Topic:    "splice.events",
			ClientID: serviceName,
		},
		Storage: StorageConfig{
			Type:      "local",
			LocalPath: "./data/media",
			S3Config: S3Config{
				Bucket: "splice-media",
				Region: "us-east-1",
			},
		},
		Upload: UploadConfig{
			MaxBytes:     500 * 1024 * 1024,
			TempDir:      os.TempDir(),
			FFprobePath:  "ffprobe",
			ProbeTimeout: 15 * time.Second,

			RecordCacheTTL: 5 * time.Minute,
		},
		Editor: EditorConfig{
			PixelsPerSecond: 100,
			TickInterval:    100 * time.Millisecond,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// environment variables, in that order of precedence (environment wins).
// The file is taken from path, or from CONFIG_PATH when path is empty.
func Load(serviceName, path string) (*Config, error) {
	cfg := Default(serviceName)

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.GRPCPort = getEnvAsInt("GRPC_PORT", c.Server.GRPCPort)
	c.Server.HTTPPort = getEnvAsInt("HTTP_PORT", c.Server.HTTPPort)
	c.Server.Environment = getEnv("ENVIRONMENT", c.Server.Environment)
	c.Server.LogLevel = getEnv("LOG_LEVEL", c.Server.LogLevel)
	c.Server.LogFormat = getEnv("LOG_FORMAT", c.Server.LogFormat)
	c.Server.ShutdownTime = getEnvAsDuration("SHUTDOWN_TIMEOUT", c.Server.ShutdownTime)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.Path = getEnv("DB_PATH", c.Database.Path)
	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.Port = getEnvAsInt("DB_PORT", c.Database.Port)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Database = getEnv("DB_NAME", c.Database.Database)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)
	c.Database.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", c.Database.MaxIdleConns)
	c.Database.MaxLifetime = getEnvAsDuration("DB_MAX_LIFETIME", c.Database.MaxLifetime)

	c.Events.Backend = getEnv("EVENTS_BACKEND", c.Events.Backend)
	c.Events.BufferSize = getEnvAsInt("EVENTS_BUFFER_SIZE", c.Events.BufferSize)
	c.Events.PublishTimeout = getEnvAsDuration("EVENTS_PUBLISH_TIMEOUT", c.Events.PublishTimeout)

	c.NATS.URL = getEnv("NATS_URL", c.NATS.URL)
	c.NATS.StreamName = getEnv("NATS_STREAM", c.NATS.StreamName)
	c.NATS.MaxReconnect = getEnvAsInt("NATS_MAX_RECONNECT", c.NATS.MaxReconnect)
	c.NATS.ReconnectWait = getEnvAsDuration("NATS_RECONNECT_WAIT", c.NATS.ReconnectWait)

	c.Kafka.Brokers = getEnvAsSlice("KAFKA_BROKERS", c.Kafka.Brokers)
	c.Kafka.Topic = getEnv("KAFKA_TOPIC", c.Kafka.Topic)

	c.Storage.Type = getEnv("STORAGE_TYPE", c.Storage.Type)
	c.Storage.LocalPath = getEnv("STORAGE_LOCAL_PATH", c.Storage.LocalPath)
	c.Storage.S3Config.Endpoint = getEnv("S3_ENDPOINT", c.Storage.S3Config.Endpoint)
	c.Storage.S3Config.Bucket = getEnv("S3_BUCKET", c.Storage.S3Config.Bucket)
	c.Storage.S3Config.Region = getEnv("S3_REGION", c.Storage.S3Config.Region)
	c.Storage.S3Config.Prefix = getEnv("S3_PREFIX", c.Storage.S3Config.Prefix)
	c.Storage.S3Config.UsePathStyle = getEnvAsBool("S3_USE_PATH_STYLE", c.Storage.S3Config.UsePathStyle)

	c.Upload.MaxBytes = getEnvAsInt64("UPLOAD_MAX_BYTES", c.Upload.MaxBytes)
	c.Upload.TempDir = getEnv("UPLOAD_TEMP_DIR", c.Upload.TempDir)
	c.Upload.FFprobePath = getEnv("FFPROBE_PATH", c.Upload.FFprobePath)
	c.Upload.ProbeTimeout = getEnvAsDuration("PROBE_TIMEOUT", c.Upload.ProbeTimeout)
	c.Upload.RecordCacheTTL = getEnvAsDuration("MEDIA_CACHE_TTL", c.Upload.RecordCacheTTL)

	c.Editor.PixelsPerSecond = getEnvAsFloat("EDITOR_PIXELS_PER_SECOND", c.Editor.PixelsPerSecond)
	c.Editor.TickInterval = getEnvAsDuration("EDITOR_TICK_INTERVAL", c.Editor.TickInterval)
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	var errs []error

	if c.Server.GRPCPort <= 0 || c.Server.HTTPPort <= 0 {
		errs = append(errs, errors.New("server ports must be positive"))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unknown database driver %q", c.Database.Driver))
	}
	switch c.Events.Backend {
	case "none", "nats", "kafka":
	default:
		errs = append(errs, fmt.Errorf("unknown events backend %q", c.Events.Backend))
	}
	if c.Events.Backend == "kafka" && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("kafka backend needs at least one broker"))
	}
	switch c.Storage.Type {
	case "local":
		if c.Storage.LocalPath == "" {
			errs = append(errs, errors.New("local storage needs a path"))
		}
	case "s3":
		if c.Storage.S3Config.Bucket == "" {
			errs = append(errs, errors.New("s3 storage needs a bucket"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage type %q", c.Storage.Type))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, errors.New("upload max bytes must be positive"))
	}
	if c.Upload.RecordCacheTTL < 0 {
		errs = append(errs, errors.New("media record cache ttl must not be negative"))
	}
	if c.Editor.PixelsPerSecond <= 0 {
		errs = append(errs, errors.New("editor pixels per second must be positive"))
	}
	if c.Editor.TickInterval <= 0 {
		errs = append(errs, errors.New("editor tick interval must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := strconv.ParseInt(strValue, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// DSN returns the database connection string
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		return d.Path
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}
