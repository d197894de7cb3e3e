package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppPort string
	DBPath  string

	// AdminPassword guards the reviewer routes. Empty disables them.
	AdminPassword string

	RedisAddr string
	RedisDB   int
	IdempTTL  time.Duration

	LogLevel  string
	LogFormat string

	Mail Mail
}

// Mail holds the two transport endpoints and the fixed sender identity.
type Mail struct {
	Host         string
	SSLPort      string
	StartTLSPort string
	Username     string
	Password     string
	SenderName   string
	AdminEmail   string
	Timeout      time.Duration
}

// Sender is the envelope and From address.
func (m Mail) Sender() string { return m.Username }

var defaults = map[string]any{
	"app.port":           "8080",
	"db.path":            "database.db",
	"mail.ssl_port":      "465",
	"mail.starttls_port": "587",
	"mail.sender_name":   "Equipment Loan Desk",
	"mail.timeout":       "20s",
	"redis.db":           0,
	"idempotency.ttl":    "5m",
	"log.level":          "info",
	"log.format":         "json",
}

// Load reads an optional .env, an optional config.yaml and the environment,
// in increasing precedence. Keys map to env names with "." replaced by "_".
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	c := &Config{
		AppPort:       v.GetString("app.port"),
		DBPath:        v.GetString("db.path"),
		AdminPassword: v.GetString("admin.password"),
		RedisAddr:     v.GetString("redis.addr"),
		LogLevel:      v.GetString("log.level"),
		LogFormat:     v.GetString("log.format"),
		Mail: Mail{
			Host:         v.GetString("mail.host"),
			SSLPort:      v.GetString("mail.ssl_port"),
			StartTLSPort: v.GetString("mail.starttls_port"),
			Username:     v.GetString("mail.username"),
			Password:     v.GetString("mail.password"),
			SenderName:   v.GetString("mail.sender_name"),
			AdminEmail:   v.GetString("mail.admin_email"),
		},
	}

	var err error
	if c.RedisDB, err = strconv.Atoi(v.GetString("redis.db")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB %q: %w", v.GetString("redis.db"), err)
	}
	if c.IdempTTL, err = time.ParseDuration(v.GetString("idempotency.ttl")); err != nil {
		return nil, fmt.Errorf("invalid IDEMPOTENCY_TTL: %w", err)
	}
	if c.Mail.Timeout, err = time.ParseDuration(v.GetString("mail.timeout")); err != nil {
		return nil, fmt.Errorf("invalid MAIL_TIMEOUT: %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.DBPath == "" {
		return errors.New("missing DB_PATH")
	}
	return c.Mail.Validate()
}

func (m Mail) Validate() error {
	if m.Host == "" {
		return errors.New("missing MAIL_HOST")
	}
	for name, p := range map[string]string{"MAIL_SSL_PORT": m.SSLPort, "MAIL_STARTTLS_PORT": m.StartTLSPort} {
		if n, err := strconv.Atoi(p); err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("invalid %s %q", name, p)
		}
	}
	if m.Username == "" {
		return errors.New("missing MAIL_USERNAME (sender address)")
	}
	if m.AdminEmail == "" {
		return errors.New("missing MAIL_ADMIN_EMAIL")
	}
	if m.Timeout <= 0 {
		return fmt.Errorf("MAIL_TIMEOUT must be positive, got %s", m.Timeout)
	}
	return nil
}
