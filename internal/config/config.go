package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "RECEPCION"

// Document numbers are stored in VARCHAR(32) columns as PREFIX-YYYY-SEQ.
const maxDocumentNumberLen = 32

// Prefixes feed a LIKE pattern, so they are limited to characters that are never wildcards.
var prefixPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Log       LogConfig
	CORS      CORSConfig
	Numbering NumberingConfig
	Outbox    OutboxConfig
	Notify    NotifyConfig
	Tracing   TracingConfig
	Bootstrap BootstrapConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds database settings. Driver is "postgres" or "memory".
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// S3Config holds settings for the evidence bucket.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings. Output is stdout, stderr or a file path.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NumberingConfig shapes audit and incident numbers: PREFIX-YYYY-000042.
type NumberingConfig struct {
	AuditPrefix    string `mapstructure:"audit_prefix"`
	IncidentPrefix string `mapstructure:"incident_prefix"`
	Padding        int    `mapstructure:"padding"`
}

// OutboxConfig holds notification dispatcher settings.
type OutboxConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	BatchSize        int `mapstructure:"batch_size"`
	MaxAttempts      int `mapstructure:"max_attempts"`
	BackoffSecs      int `mapstructure:"backoff_secs"`
	LeaseSecs        int `mapstructure:"lease_secs"`
}

// NotifyConfig selects and configures the notification publisher.
// Provider is one of "noop", "email" or "pubsub".
type NotifyConfig struct {
	Provider              string `mapstructure:"provider"`
	EmailProvider         string `mapstructure:"email_provider"`
	Region                string `mapstructure:"region"`
	SESEndpoint           string `mapstructure:"ses_endpoint"`
	FromAddress           string `mapstructure:"from_address"`
	FromName              string `mapstructure:"from_name"`
	FrontendURL           string `mapstructure:"frontend_url"`
	PubSubProjectID       string `mapstructure:"pubsub_project_id"`
	PubSubTopic           string `mapstructure:"pubsub_topic"`
	PubSubCredentialsJSON string `mapstructure:"pubsub_credentials_json"`
}

// TracingConfig holds OpenTelemetry settings. An empty endpoint exports to stdout.
type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sample_ratio"`
	ServiceName string  `mapstructure:"service_name"`
}

// BootstrapConfig seeds the first administrator when the user table is empty.
type BootstrapConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	AdminName     string `mapstructure:"admin_name"`
}

var defaults = map[string]any{
	"server.port":          ":8080",
	"server.read_timeout":  "15s",
	"server.write_timeout": "15s",
	"server.environment":   "development",

	"db.driver":   "postgres",
	"db.host":     "localhost",
	"db.port":     5432,
	"db.user":     "recepcion",
	"db.password": "recepcion_secret",
	"db.name":     "recepcion_db",
	"db.sslmode":  "disable",
	"db.max_open": 25,
	"db.max_idle": 10,

	"jwt.secret":         "change-me-in-production",
	"jwt.access_expiry":  "15m",
	"jwt.refresh_expiry": "168h",
	"jwt.issuer":         "recepcion",

	"s3.region":           "us-east-1",
	"s3.bucket":           "recepcion-evidence",
	"s3.endpoint":         "",
	"s3.access_key":       "",
	"s3.secret_key":       "",
	"s3.max_file_size_mb": 25,
	"s3.presign_expiry":   3600,

	"log.level":  "debug",
	"log.format": "console",
	"log.output": "stdout",

	"cors.allowed_origins": "http://localhost:3000,http://127.0.0.1:3000",

	"numbering.audit_prefix":    "AUD",
	"numbering.incident_prefix": "INC",
	"numbering.padding":         6,

	"outbox.poll_interval_secs": 5,
	"outbox.batch_size":         20,
	"outbox.max_attempts":       8,
	"outbox.backoff_secs":       10,
	"outbox.lease_secs":         60,

	"notify.provider":                "noop",
	"notify.email_provider":          "ses",
	"notify.region":                  "us-east-1",
	"notify.ses_endpoint":            "",
	"notify.from_address":            "noreply@recepcion.local",
	"notify.from_name":               "Recepcion",
	"notify.frontend_url":            "http://localhost:3000",
	"notify.pubsub_project_id":       "",
	"notify.pubsub_topic":            "recepcion-events",
	"notify.pubsub_credentials_json": "",

	"tracing.enabled":      false,
	"tracing.endpoint":     "",
	"tracing.insecure":     false,
	"tracing.sample_ratio": 0.1,
	"tracing.service_name": "recepcion",

	"bootstrap.admin_email":    "",
	"bootstrap.admin_password": "",
	"bootstrap.admin_name":     "Administrator",
}

// Load reads configuration from environment variables with the RECEPCION_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, val := range defaults {
		v.SetDefault(key, val)
		// Nested keys are not picked up by AutomaticEnv alone when unmarshalling.
		_ = v.BindEnv(key, envName(key))
	}

	cfg := &Config{}

	// Container platforms set PORT. Use it unless the prefixed variable is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv(envName("server.port")) == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Driver:   v.GetString("db.driver"),
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
		Output: v.GetString("log.output"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Numbering = NumberingConfig{
		AuditPrefix:    strings.TrimSpace(v.GetString("numbering.audit_prefix")),
		IncidentPrefix: strings.TrimSpace(v.GetString("numbering.incident_prefix")),
		Padding:        v.GetInt("numbering.padding"),
	}
	cfg.Outbox = OutboxConfig{
		PollIntervalSecs: v.GetInt("outbox.poll_interval_secs"),
		BatchSize:        v.GetInt("outbox.batch_size"),
		MaxAttempts:      v.GetInt("outbox.max_attempts"),
		BackoffSecs:      v.GetInt("outbox.backoff_secs"),
		LeaseSecs:        v.GetInt("outbox.lease_secs"),
	}
	cfg.Notify = NotifyConfig{
		Provider:              v.GetString("notify.provider"),
		EmailProvider:         v.GetString("notify.email_provider"),
		Region:                v.GetString("notify.region"),
		SESEndpoint:           v.GetString("notify.ses_endpoint"),
		FromAddress:           v.GetString("notify.from_address"),
		FromName:              v.GetString("notify.from_name"),
		FrontendURL:           v.GetString("notify.frontend_url"),
		PubSubProjectID:       v.GetString("notify.pubsub_project_id"),
		PubSubTopic:           v.GetString("notify.pubsub_topic"),
		PubSubCredentialsJSON: v.GetString("notify.pubsub_credentials_json"),
	}
	cfg.Tracing = TracingConfig{
		Enabled:     v.GetBool("tracing.enabled"),
		Endpoint:    v.GetString("tracing.endpoint"),
		Insecure:    v.GetBool("tracing.insecure"),
		SampleRatio: v.GetFloat64("tracing.sample_ratio"),
		ServiceName: v.GetString("tracing.service_name"),
	}
	cfg.Bootstrap = BootstrapConfig{
		AdminEmail:    v.GetString("bootstrap.admin_email"),
		AdminPassword: v.GetString("bootstrap.admin_password"),
		AdminName:     v.GetString("bootstrap.admin_name"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envName(key string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

func (c *Config) validate() error {
	var errs []error
	switch c.DB.Driver {
	case "postgres", "memory":
	default:
		errs = append(errs, fmt.Errorf("db.driver: unknown driver %q", c.DB.Driver))
	}
	switch c.Notify.Provider {
	case "noop", "email", "pubsub":
	default:
		errs = append(errs, fmt.Errorf("notify.provider: unknown provider %q", c.Notify.Provider))
	}
	if c.Notify.Provider == "pubsub" && c.Notify.PubSubTopic == "" {
		errs = append(errs, errors.New("notify.pubsub_topic is required for the pubsub provider"))
	}
	if c.Numbering.AuditPrefix == "" || c.Numbering.IncidentPrefix == "" {
		errs = append(errs, errors.New("numbering: prefixes must not be empty"))
	}
	if c.Numbering.Padding < 1 || c.Numbering.Padding > 12 {
		errs = append(errs, fmt.Errorf("numbering.padding: %d out of range [1,12]", c.Numbering.Padding))
	}
	for key, prefix := range map[string]string{
		"numbering.audit_prefix":    c.Numbering.AuditPrefix,
		"numbering.incident_prefix": c.Numbering.IncidentPrefix,
	} {
		if prefix == "" {
			continue
		}
		if !prefixPattern.MatchString(prefix) {
			errs = append(errs, fmt.Errorf("%s: %q must contain only A-Z and 0-9", key, prefix))
		}
		if n := len(prefix) + len("-YYYY-") + c.Numbering.Padding; n > maxDocumentNumberLen {
			errs = append(errs, fmt.Errorf("%s: numbers would be %d characters, limit is %d", key, n, maxDocumentNumberLen))
		}
	}
	if c.Outbox.MaxAttempts < 1 {
		errs = append(errs, errors.New("outbox.max_attempts must be at least 1"))
	}
	return errors.Join(errs...)
}
