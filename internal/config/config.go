package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Session  SessionConfig
	Upload   UploadConfig
	Defaults DefaultsConfig
}

type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	MaxRetries int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Broker            string
	NotificationTopic string
	ConsumerGroup     string
	PollInterval      time.Duration
}

type SessionConfig struct {
	Secret     string
	CookieName string
	TTL        time.Duration
	Secure     bool
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type DefaultsConfig struct {
	EmployeePassword string
	HRPassword       string
	AdminName        string
	AdminEmail       string
	AdminPassword    string
}

// DSN builds the driver specific connection string.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "mysql" {
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, d.Host, d.Port, d.Name,
		)
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode,
	)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("HTTP_READ_TIMEOUT", "5s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "hrms")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_RETRIES", 5)

	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("KAFKA_BROKER", "localhost:9092")
	v.SetDefault("KAFKA_NOTIFICATION_TOPIC", "hrms.notifications.v1")
	v.SetDefault("KAFKA_CONSUMER_GROUP", "go-hrms-notifications")
	v.SetDefault("OUTBOX_POLL_INTERVAL", "3s")

	v.SetDefault("SESSION_COOKIE", "hrms_session")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_SECURE", false)

	v.SetDefault("UPLOAD_DIR", "static/uploads/documents")
	v.SetDefault("MAX_UPLOAD_MB", 16)

	v.SetDefault("DEFAULT_EMPLOYEE_PASSWORD", "password123")
	v.SetDefault("DEFAULT_HR_PASSWORD", "hrpassword123")
	v.SetDefault("ADMIN_NAME", "Administrator")
	v.SetDefault("ADMIN_EMAIL", "admin@company.com")
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		Env: v.GetString("APP_ENV"),
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			ReadTimeout:    v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:   v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:    v.GetDuration("HTTP_IDLE_TIMEOUT"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SSLMode:    v.GetString("DB_SSLMODE"),
			MaxRetries: v.GetInt("DB_MAX_RETRIES"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Kafka: KafkaConfig{
			Broker:            v.GetString("KAFKA_BROKER"),
			NotificationTopic: v.GetString("KAFKA_NOTIFICATION_TOPIC"),
			ConsumerGroup:     v.GetString("KAFKA_CONSUMER_GROUP"),
			PollInterval:      v.GetDuration("OUTBOX_POLL_INTERVAL"),
		},
		Session: SessionConfig{
			Secret:     v.GetString("SESSION_SECRET"),
			CookieName: v.GetString("SESSION_COOKIE"),
			TTL:        v.GetDuration("SESSION_TTL"),
			Secure:     v.GetBool("SESSION_SECURE"),
		},
		Upload: UploadConfig{
			Dir:      v.GetString("UPLOAD_DIR"),
			MaxBytes: v.GetInt64("MAX_UPLOAD_MB") << 20,
		},
		Defaults: DefaultsConfig{
			EmployeePassword: v.GetString("DEFAULT_EMPLOYEE_PASSWORD"),
			HRPassword:       v.GetString("DEFAULT_HR_PASSWORD"),
			AdminName:        v.GetString("ADMIN_NAME"),
			AdminEmail:       v.GetString("ADMIN_EMAIL"),
			AdminPassword:    v.GetString("ADMIN_PASSWORD"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Session.Secret == "" {
		if c.Env == "production" {
			return fmt.Errorf("SESSION_SECRET is required in production")
		}
		c.Session.Secret = "dev-session-secret"
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
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
