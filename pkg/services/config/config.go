package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/FloresJesus/Pharmacy/pkg/format"
	"github.com/FloresJesus/Pharmacy/pkg/store/blob"
	"github.com/FloresJesus/Pharmacy/pkg/store/cache"
	"github.com/FloresJesus/Pharmacy/pkg/store/postgres"
	"github.com/spf13/viper"
)

const envPrefix = "PHARMACY"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Report   ReportConfig   `mapstructure:"report"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Branding BrandingConfig `mapstructure:"branding"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Migrate         bool          `mapstructure:"migrate"`
}

type ReportConfig struct {
	LogoPath   string `mapstructure:"logo_path"`
	Timezone   string `mapstructure:"timezone"`
	Currency   string `mapstructure:"currency"`
	ExpiryDays int    `mapstructure:"expiry_days"`
}

type StorageConfig struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Region       string        `mapstructure:"region"`
	Bucket       string        `mapstructure:"bucket"`
	AccessKey    string        `mapstructure:"access_key"`
	SecretKey    string        `mapstructure:"secret_key"`
	UsePathStyle bool          `mapstructure:"use_path_style"`
	URLTTL       time.Duration `mapstructure:"url_ttl"`
}

type CacheConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type BrandingConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.migrate", false)

	v.SetDefault("report.logo_path", "")
	v.SetDefault("report.timezone", "America/La_Paz")
	v.SetDefault("report.currency", format.DefaultCurrency)
	v.SetDefault("report.expiry_days", 30)

	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "comprobantes")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("storage.secret_key", "")
	v.SetDefault("storage.use_path_style", true)
	v.SetDefault("storage.url_ttl", time.Hour)

	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)

	v.SetDefault("branding.path", "")
}

// LoadConfig reads path when given, then applies PHARMACY_* environment
// overrides, e.g. PHARMACY_DATABASE_DSN for database.dsn.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pharmacy config: %w", err)
	}
	return &cfg, nil
}

// Formatter builds the value formatter for the configured timezone and currency.
func (c ReportConfig) Formatter() (format.Formatter, error) {
	loc := time.UTC
	if c.Timezone != "" {
		var err error
		loc, err = time.LoadLocation(c.Timezone)
		if err != nil {
			return format.Formatter{}, fmt.Errorf("invalid report timezone %q: %w", c.Timezone, err)
		}
	}
	return format.New(c.Currency, loc), nil
}

func (c DatabaseConfig) Settings() postgres.Settings {
	return postgres.Settings{
		DSN:             c.DSN,
		MaxOpenConns:    c.MaxOpenConns,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
}

// Enabled reports whether receipts can be uploaded.
func (c StorageConfig) Enabled() bool {
	return c.Bucket != "" && (c.Endpoint != "" || c.AccessKey != "")
}

func (c StorageConfig) Settings() blob.Settings {
	return blob.Settings{
		Endpoint:     c.Endpoint,
		Region:       c.Region,
		Bucket:       c.Bucket,
		AccessKey:    c.AccessKey,
		SecretKey:    c.SecretKey,
		UsePathStyle: c.UsePathStyle,
	}
}

func (c CacheConfig) Enabled() bool {
	return c.Addr != ""
}

func (c CacheConfig) Settings() cache.Settings {
	return cache.Settings{Addr: c.Addr, Password: c.Password, DB: c.DB}
}
