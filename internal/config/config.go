package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Store    *StoreConfig    `mapstructure:"store"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Catalog  *CatalogConfig  `mapstructure:"catalog"`
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	BaseURL            string   `mapstructure:"base_url"`
	Port               string   `mapstructure:"port"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type StoreConfig struct {
	Driver      string `mapstructure:"driver"` // "sqlite" or "postgres"
	Path        string `mapstructure:"path"`   // sqlite file path
	FailOnError bool   `mapstructure:"fail_on_error"`

	postgres *PostgresConfig
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
}

// CatalogConfig is the configuration provider consumed by the services for
// enum validation and business tunables. It is hot-reloaded on config file
// changes.
type CatalogConfig struct {
	TVARate                    float64  `mapstructure:"tva_rate"`
	ReservationDurationMinutes int      `mapstructure:"reservation_duration_minutes"`
	Categories                 []string `mapstructure:"categories"`
	Units                      []string `mapstructure:"units"`
}

func (c *CatalogConfig) CategoryIDs() []string {
	return c.Categories
}

func (c *CatalogConfig) UnitIDs() []string {
	return c.Units
}

func (c *StoreConfig) DSN() string {
	if c.Driver == "postgres" && c.postgres != nil {
		return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=disable",
			c.postgres.Host, c.postgres.Port, c.postgres.User, c.postgres.Password, c.postgres.DBName)
	}

	return c.Path
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	var conf AppConfig
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	conf.Store.postgres = conf.Postgres

	// Reload business tunables (TVA rate, enum lists) when the file changes.
	// Struct-level settings like ports and driver require a restart.
	viper.OnConfigChange(func(e fsnotify.Event) {
		var updated AppConfig
		if err := viper.Unmarshal(&updated); err != nil {
			zap.L().Warn("failed to reload config", zap.String("file", e.Name), zap.Error(err))
			return
		}

		*conf.Catalog = *updated.Catalog
		zap.L().Info("config reloaded", zap.String("file", e.Name))
	})
	viper.WatchConfig()

	return &conf, nil
}
