package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"cat-registry/internal/domain/export"
	"cat-registry/internal/domain/pedigree"
)

type Config struct {
	HTTP struct {
		Port            string        `mapstructure:"port"`
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	} `mapstructure:"http"`

	DB struct {
		DSN string `mapstructure:"dsn"` // vacío => storage in-memory
	} `mapstructure:"db"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		App    string `mapstructure:"app"`
	} `mapstructure:"log"`

	Session struct {
		TTL        time.Duration `mapstructure:"ttl"`
		CookieName string        `mapstructure:"cookie_name"`
		HashKey    string        `mapstructure:"hash_key"`
		Secure     bool          `mapstructure:"secure"`
	} `mapstructure:"session"`

	Pedigree struct {
		MaxDepth    int `mapstructure:"max_depth"`    // default del árbol interactivo
		ExportDepth int `mapstructure:"export_depth"` // columnas del PDF - 1
	} `mapstructure:"pedigree"`

	// Admin bootstrap: si ambos vienen, se asegura que exista ese admin al arrancar.
	Admin struct {
		Email    string `mapstructure:"email"`
		Password string `mapstructure:"password"`
	} `mapstructure:"admin"`
}

// envBindings mantiene los nombres de env "cortos" que ya usábamos (PORT, DB_DSN...).
var envBindings = map[string]string{
	"http.port":             "PORT",
	"db.dsn":                "DB_DSN",
	"log.level":             "LOG_LEVEL",
	"log.format":            "LOG_FORMAT",
	"log.app":               "APP_NAME",
	"session.ttl":           "SESSION_TTL",
	"session.cookie_name":   "SESSION_COOKIE_NAME",
	"session.hash_key":      "SESSION_HASH_KEY",
	"session.secure":        "SESSION_COOKIE_SECURE",
	"pedigree.max_depth":    "PEDIGREE_MAX_DEPTH",
	"pedigree.export_depth": "PEDIGREE_EXPORT_DEPTH",
	"admin.email":           "ADMIN_EMAIL",
	"admin.password":        "ADMIN_PASSWORD",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", 5*time.Second)
	v.SetDefault("http.write_timeout", 10*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.dsn", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.app", "cat-registry")

	v.SetDefault("session.ttl", 12*time.Hour)
	v.SetDefault("session.cookie_name", "catreg_session")
	v.SetDefault("session.hash_key", "")
	v.SetDefault("session.secure", false)

	v.SetDefault("pedigree.max_depth", 2)
	v.SetDefault("pedigree.export_depth", 3)

	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
}

// Load lee defaults, archivo opcional (yaml) y env, en ese orden de prioridad creciente.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.HTTP.Port) == "" {
		errs = append(errs, errors.New("http.port is required"))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if strings.TrimSpace(c.Session.CookieName) == "" {
		errs = append(errs, errors.New("session.cookie_name is required"))
	}
	// securecookie recomienda 32 o 64 bytes; vacío => se genera uno efímero.
	if k := c.Session.HashKey; k != "" && len(k) < 32 {
		errs = append(errs, errors.New("session.hash_key must be at least 32 bytes"))
	}
	if c.Pedigree.MaxDepth < 0 || c.Pedigree.ExportDepth < 0 {
		errs = append(errs, errors.New("pedigree depths must be non-negative"))
	}
	if c.Pedigree.MaxDepth > pedigree.MaxRequestDepth {
		errs = append(errs, fmt.Errorf("pedigree.max_depth must be at most %d", pedigree.MaxRequestDepth))
	}
	if c.Pedigree.ExportDepth > export.MaxPDFDepth {
		errs = append(errs, fmt.Errorf("pedigree.export_depth must be at most %d", export.MaxPDFDepth))
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		errs = append(errs, errors.New("admin.email and admin.password must be set together"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.HTTP.Port, ":")
}
