package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Addr           string        `yaml:"addr" env:"APP_ADDR" env-default:":8080"`
	BasePath       string        `yaml:"base-path" env:"APP_BASE_PATH" env-default:"/v1"`
	Development    bool          `yaml:"development" env:"DEVELOPMENT" env-default:"false"`
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile        string        `yaml:"log-file" env:"LOG_FILE" env-default:""`
	SessionTTL     time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"1h"`
	AllowedOrigins []string      `yaml:"allowed-origins" env:"ALLOWED_ORIGINS" env-separator:","`

	Database DatabaseConfig `yaml:"database"`
	Cookies  CookiesConfig  `yaml:"cookies"`
	JWT      JWTConfig      `yaml:"jwt"`
}

type DatabaseConfig struct {
	URL          string `yaml:"url" env:"DATABASE_URL" env-default:""`
	User         string `yaml:"user" env:"POSTGRES_USER" env-default:"postgres"`
	Password     string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:""`
	PasswordFile string `yaml:"password-file" env:"POSTGRES_PASSWORD_FILE" env-default:""`
	Host         string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port         uint16 `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Name         string `yaml:"name" env:"POSTGRES_DB" env-default:"minesweeper"`
	SSLMode      string `yaml:"sslmode" env:"POSTGRES_SSLMODE" env-default:"disable"`
}

type CookiesConfig struct {
	Domain   string `yaml:"domain" env:"COOKIES_DOMAIN" env-default:"localhost"`
	Secure   bool   `yaml:"secure" env:"COOKIES_SECURE" env-default:"false"`
	SameSite string `yaml:"samesite" env:"COOKIES_SAMESITE" env-default:"strict"`
}

type JWTConfig struct {
	PrivateKey     string `yaml:"private-key" env:"JWT_PRIVATE_KEY" env-default:""`
	PrivateKeyFile string `yaml:"private-key-file" env:"JWT_PRIVATE_KEY_FILE" env-default:""`
	PublicKey      string `yaml:"public-key" env:"JWT_PUBLIC_KEY" env-default:""`
	PublicKeyFile  string `yaml:"public-key-file" env:"JWT_PUBLIC_KEY_FILE" env-default:""`
}

// Load reads the configuration file at path, letting environment
// variables override its values. An empty path skips the file and reads
// the environment alone.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
		return cfg, nil
	}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}
	return cfg, nil
}

// Fields dumps the non-secret settings for a debug log line.
func (c *Config) Fields() logrus.Fields {
	return logrus.Fields{
		"addr":            c.Addr,
		"base_path":       c.BasePath,
		"development":     c.Development,
		"log_level":       c.LogLevel,
		"session_ttl":     c.SessionTTL.String(),
		"allowed_origins": c.AllowedOrigins,
		"db_host":         c.Database.Host,
		"db_name":         c.Database.Name,
	}
}

func (d DatabaseConfig) password() (string, error) {
	if d.Password != "" || d.PasswordFile == "" {
		return d.Password, nil
	}
	data, err := os.ReadFile(d.PasswordFile)
	if err != nil {
		return "", fmt.Errorf("unable to read from password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ConnString builds the postgres connection URL. An explicit
// DATABASE_URL wins; otherwise the URL is composed from the POSTGRES_*
// parts, reading the password from a file when one is configured.
func (d DatabaseConfig) ConnString() (string, error) {
	if d.URL != "" {
		return d.URL, nil
	}
	password, err := d.password()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		url.QueryEscape(password),
		d.Host,
		d.Port,
		d.Name,
		d.SSLMode,
	), nil
}
