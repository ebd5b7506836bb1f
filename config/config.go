package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/oksasatya/go-task-tracker/pkg/apperror"
)

// AuthProfile selects how users and task ownership are handled.
type AuthProfile string

const (
	// ProfileCredentials requires username, password and email at
	// registration and binds task ownership to the bearer token subject.
	ProfileCredentials AuthProfile = "credentials"
	// ProfileAnonymous registers name-only users and addresses tasks by the
	// user id in the path. Intended for trusted, administrative deployments.
	ProfileAnonymous AuthProfile = "anonymous"
)

// Database is the Postgres part of the configuration, shared with cmd/seed.
type Database struct {
	DatabaseURL   string        `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns    int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMinConns    int32         `env:"DB_MIN_CONNS" envDefault:"2"`
	DBMaxConnLife time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	MigrationsDir string        `env:"MIGRATIONS_DIR" envDefault:"db/migrations"`
}

// Worker is the configuration of cmd/email_worker.
type Worker struct {
	RabbitMQURL        string `env:"RABBITMQ_URL"`
	RabbitMQEmailQueue string `env:"RABBITMQ_EMAIL_QUEUE" envDefault:"emails"`
	RabbitMQPrefetch   int    `env:"RABBITMQ_PREFETCH" envDefault:"16"`
	MailgunDomain      string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey      string `env:"MAILGUN_API_KEY"`
	MailgunSender      string `env:"MAILGUN_SENDER"`
	MailSendEnabled    bool   `env:"MAIL_SEND_ENABLED" envDefault:"false"`
	AppName            string `env:"APP_NAME" envDefault:"task-tracker"`
	Env                string `env:"APP_ENV" envDefault:"development"`
}

// Config holds application configuration loaded from environment variables.
// DATABASE_URL and JWT_SECRET have no defaults; everything else does.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"task-tracker"`
	Env     string `env:"APP_ENV" envDefault:"development"` // development, staging, production
	Port    string `env:"PORT" envDefault:"8080"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	Database

	// Auth
	JWTSecret   string      `env:"JWT_SECRET,required,notEmpty"`
	AuthProfile AuthProfile `env:"AUTH_PROFILE" envDefault:"credentials"`

	// Cookies
	CookieDomain string `env:"COOKIE_DOMAIN" envDefault:"localhost"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// Mailgun
	MailgunDomain string `env:"MAILGUN_DOMAIN"`
	MailgunAPIKey string `env:"MAILGUN_API_KEY"`
	MailgunSender string `env:"MAILGUN_SENDER"`

	// RabbitMQ
	RabbitMQURL        string `env:"RABBITMQ_URL"`
	RabbitMQEmailQueue string `env:"RABBITMQ_EMAIL_QUEUE" envDefault:"emails"`

	// Elasticsearch
	ElasticsearchAddrs []string `env:"ELASTICSEARCH_ADDRS" envSeparator:","`
	ElasticsearchUser  string   `env:"ELASTICSEARCH_USERNAME"`
	ElasticsearchPass  string   `env:"ELASTICSEARCH_PASSWORD"`
	ESTasksIndex       string   `env:"ES_TASKS_INDEX" envDefault:"tasks"`

	// Email sending toggle
	MailSendEnabled bool `env:"MAIL_SEND_ENABLED" envDefault:"false"`

	// Debug metrics (/api/debug/vars)
	DebugMetricsEnabled bool `env:"DEBUG_METRICS_ENABLED" envDefault:"true"`

	// HTTP access log toggle
	HTTPLogEnabled bool `env:"HTTP_LOG_ENABLED" envDefault:"false"`
	// Honour CF-Connecting-IP / X-Forwarded-For when behind a proxy
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads configuration from the given key/value set instead of the
// process environment.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environ})
}

// LoadDatabase reads only the database settings.
func LoadDatabase() (*Database, error) {
	db := &Database{}
	if err := env.Parse(db); err != nil {
		return nil, apperror.NewConfig("invalid configuration", err)
	}
	return db, nil
}

// LoadWorker reads the email worker settings.
func LoadWorker() (*Worker, error) {
	w := &Worker{}
	if err := env.Parse(w); err != nil {
		return nil, apperror.NewConfig("invalid configuration", err)
	}
	return w, nil
}

// Ready reports whether the worker has everything needed to send mail.
func (w *Worker) Ready() error {
	if w.RabbitMQURL == "" || w.RabbitMQEmailQueue == "" {
		return fmt.Errorf("rabbitmq not configured")
	}
	if w.MailgunDomain == "" || w.MailgunAPIKey == "" || w.MailgunSender == "" {
		return fmt.Errorf("mailgun not configured")
	}
	return nil
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, apperror.NewConfig("invalid configuration", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, apperror.NewConfig("invalid configuration", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.AuthProfile {
	case ProfileCredentials, ProfileAnonymous:
	default:
		return fmt.Errorf("AUTH_PROFILE must be %q or %q, got %q", ProfileCredentials, ProfileAnonymous, c.AuthProfile)
	}
	if c.DBMaxConns <= 0 {
		return fmt.Errorf("DB_MAX_CONNS must be positive")
	}
	if c.DBMinConns > c.DBMaxConns {
		return fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", c.DBMinConns, c.DBMaxConns)
	}
	return nil
}

// CORSOrigins returns the allowed origins with blanks removed
func (c *Config) CORSOrigins() []string {
	return compact(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses with blanks removed
func (c *Config) ESAddrs() []string {
	return compact(c.ElasticsearchAddrs)
}

// NotificationsEnabled reports whether registration emails should be queued.
func (c *Config) NotificationsEnabled() bool {
	return c.MailSendEnabled && c.RabbitMQURL != "" && c.RabbitMQEmailQueue != ""
}

func compact(parts []string) []string {
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
