// Package config loads the CLI configuration: a migrations root plus one or
// more named database profiles. Sources, lowest priority first: defaults,
// config file (.migrate-go.yaml in the working directory, home, or the XDG
// config path), environment variables prefixed MIGRATE_GO_, and a local .env
// pair loaded through godotenv.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/satishbabariya/migrate-go/runtime/engine"
)

// AppFs is the filesystem seam; tests swap in a MemMapFs.
var AppFs = afero.NewOsFs()

// Config is the resolved CLI configuration.
type Config struct {
	Profile string
	Root    string
	DB      engine.Config
}

// Load resolves configuration for the given profile; an empty profile uses
// the configured default.
func Load(profile string) (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, fmt.Errorf("config: resolving home directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName(".migrate-go")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath(home)
	v.AddConfigPath(filepath.Join(home, ".config", "migrate-go"))

	v.SetEnvPrefix("MIGRATE_GO")
	v.AutomaticEnv()

	v.SetDefault("profile", "default")
	v.SetDefault("root", ".")
	v.SetDefault("driver", "sqlite")
	v.SetDefault("path", "database/app.db")
	v.SetDefault("max_open_conns", 10)
	v.SetDefault("acquire_timeout_ms", 10000)

	// Missing config file is fine; env and defaults still apply.
	_ = v.ReadInConfig()

	if ok, _ := afero.Exists(AppFs, ".env"); ok {
		_ = godotenv.Load()
	}
	if ok, _ := afero.Exists(AppFs, ".env.local"); ok {
		_ = godotenv.Overload(".env.local")
	}

	if profile == "" {
		profile = v.GetString("profile")
	}

	// A profiles.<name> subtree overrides the top-level connection keys.
	scoped := v
	if sub := v.Sub("profiles." + profile); sub != nil {
		for _, key := range []string{"driver", "host", "port", "user", "password",
			"database", "sslmode", "path", "max_open_conns", "acquire_timeout_ms"} {
			if !sub.IsSet(key) {
				sub.SetDefault(key, v.Get(key))
			}
		}
		scoped = sub
	}

	cfg := &Config{
		Profile: profile,
		Root:    v.GetString("root"),
		DB: engine.Config{
			Driver:         scoped.GetString("driver"),
			Host:           scoped.GetString("host"),
			Port:           scoped.GetInt("port"),
			User:           scoped.GetString("user"),
			Password:       scoped.GetString("password"),
			Database:       scoped.GetString("database"),
			SSLMode:        scoped.GetString("sslmode"),
			Path:           scoped.GetString("path"),
			MaxOpenConns:   scoped.GetInt("max_open_conns"),
			AcquireTimeout: time.Duration(scoped.GetInt("acquire_timeout_ms")) * time.Millisecond,
		},
	}

	switch cfg.DB.Driver {
	case "sqlite", "mariadb", "postgres":
	default:
		return nil, fmt.Errorf("config: unsupported driver %q for profile %q", cfg.DB.Driver, profile)
	}
	return cfg, nil
}
