package config

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nldi-service/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	PyGeoAPI PyGeoAPIConfig
	Log      LogConfig
	Metadata MetadataConfig
	Sources  []domain.CrawlerSource
}

type ServerConfig struct {
	Host        string
	Port        int
	URL         string
	Prefix      string
	PrettyPrint bool
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	AcquireTimeout  time.Duration
	ConnMaxLifetime time.Duration
}

type PyGeoAPIConfig struct {
	URL            string
	Enabled        bool
	RequestTimeout time.Duration
}

type LogConfig struct {
	Level string
}

// MetadataConfig is reproduced verbatim in the OpenAPI document.
type MetadataConfig struct {
	Title       string
	Description string
	License     string
	LicenseURL  string
	Contact     string
	ContactURL  string
}

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolateEnv replaces ${VAR} references with environment values before
// the YAML is parsed. Unset variables expand to the empty string.
func interpolateEnv(raw []byte) []byte {
	return envVarRe.ReplaceAllFunc(raw, func(m []byte) []byte {
		name := string(envVarRe.FindSubmatch(m)[1])
		return []byte(os.Getenv(name))
	})
}

// Load reads the YAML file named by NLDI_CONFIG (or the given path), applies
// ${VAR} interpolation, and lets individual NLDI_* environment variables
// override file values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("NLDI_CONFIG")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)

	var raw []byte
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		raw = interpolateEnv(raw)
		if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        v.GetString("server.host"),
			Port:        v.GetInt("server.port"),
			URL:         v.GetString("server.url"),
			Prefix:      v.GetString("server.prefix"),
			PrettyPrint: v.GetBool("server.pretty_print"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.name"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxConns:        v.GetInt("database.max_conns"),
			AcquireTimeout:  v.GetDuration("database.acquire_timeout"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
		},
		PyGeoAPI: PyGeoAPIConfig{
			URL:            v.GetString("pygeoapi.url"),
			Enabled:        v.GetBool("pygeoapi.enabled"),
			RequestTimeout: v.GetDuration("pygeoapi.request_timeout"),
		},
		Log: LogConfig{
			Level: v.GetString("logging.level"),
		},
		Metadata: MetadataConfig{
			Title:       v.GetString("metadata.title"),
			Description: v.GetString("metadata.description"),
			License:     v.GetString("metadata.license.name"),
			LicenseURL:  v.GetString("metadata.license.url"),
			Contact:     v.GetString("metadata.contact.name"),
			ContactURL:  v.GetString("metadata.contact.url"),
		},
	}

	if len(raw) > 0 {
		sources, err := parseSources(raw)
		if err != nil {
			return nil, err
		}
		cfg.Sources = sources
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.url", "http://localhost:8080")
	v.SetDefault("server.prefix", "/api/nldi")
	v.SetDefault("server.pretty_print", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.acquire_timeout", 5*time.Second)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("pygeoapi.enabled", true)
	v.SetDefault("pygeoapi.request_timeout", 30*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("metadata.title", "Network Linked Data Index")
}

// parseSources reads the declarative sources: list used by align.
func parseSources(raw []byte) ([]domain.CrawlerSource, error) {
	var doc struct {
		Sources []domain.CrawlerSource `yaml:"sources"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse sources list: %w", err)
	}
	return doc.Sources, nil
}

func applyEnvOverrides(cfg *Config) {
	if s := os.Getenv("NLDI_URL"); s != "" {
		cfg.Server.URL = s
	}
	if s := os.Getenv("NLDI_PATH"); s != "" {
		cfg.Server.Prefix = s
	}
	if s := os.Getenv("NLDI_DB_HOST"); s != "" {
		cfg.Database.Host = s
	}
	if s := os.Getenv("NLDI_DB_PORT"); s != "" {
		if p, err := strconv.Atoi(s); err == nil {
			cfg.Database.Port = p
		}
	}
	if s := os.Getenv("NLDI_DB_NAME"); s != "" {
		cfg.Database.DBName = s
	}
	if s := os.Getenv("NLDI_DB_USERNAME"); s != "" {
		cfg.Database.User = s
	}
	if s := os.Getenv("NLDI_DB_PASSWORD"); s != "" {
		cfg.Database.Password = s
	}
	if s := os.Getenv("PYGEOAPI_URL"); s != "" {
		cfg.PyGeoAPI.URL = s
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// BaseURL is the absolute root of the linked-data API, used when building
// navigation links.
func (c *Config) BaseURL() string {
	return c.Server.URL + c.Server.Prefix
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s search_path=nldi_data,nhdplus,public",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
