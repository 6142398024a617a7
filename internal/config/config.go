// config предоставляет структуру конфигурации trending-curator
// и функции загрузки из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env      string                  `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig              `yaml:"http"`
	GRPC     GRPCConfig              `yaml:"grpc"`
	Sources  SourcesConfig           `yaml:"sources"`
	Cache    CacheConfig             `yaml:"cache"`
	Curation models.CurationSettings `yaml:"curation"`
	Timeouts TimeoutConfig           `yaml:"timeouts"`
	Health   HealthConfig            `yaml:"health"`
}

// HTTPConfig — сетевые настройки HTTP-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

// GRPCConfig — сетевые настройки gRPC-сервера (health).
type GRPCConfig struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50060"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (g GRPCConfig) Addr() string {
	return net.JoinHostPort(g.Host, g.Port)
}

// SourcesConfig — настройки всех источников.
type SourcesConfig struct {
	Social SocialConfig `yaml:"social"`
	RSS    RSSConfig    `yaml:"rss"`
	Topics TopicsConfig `yaml:"topics"`
}

// SocialConfig — источник социального поиска.
// Токен и UseMock — единственное, что решает, живой источник или синтетический.
type SocialConfig struct {
	BearerToken string        `yaml:"bearer_token" env:"SOCIAL_BEARER_TOKEN"`
	UseMock     bool          `yaml:"use_mock"     env:"SOCIAL_USE_MOCK"      env-default:"false"`
	BaseURL     string        `yaml:"base_url"     env:"SOCIAL_BASE_URL"      env-default:"https://api.twitter.com"`
	Queries     []string      `yaml:"queries"      env:"SOCIAL_QUERIES"       env-separator:";"`
	QueryDelay  time.Duration `yaml:"query_delay"  env:"SOCIAL_QUERY_DELAY"   env-default:"1s"`
	MaxResults  int           `yaml:"max_results"  env:"SOCIAL_MAX_RESULTS"   env-default:"50"`
	Timeout     time.Duration `yaml:"timeout"      env:"SOCIAL_TIMEOUT"       env-default:"10s"`
}

// Live сообщает, нужно ли регистрировать живой источник.
func (s SocialConfig) Live() bool {
	return s.BearerToken != "" && !s.UseMock
}

// RSSConfig — RSS/Atom-ленты. Пустой список — источник не регистрируется.
type RSSConfig struct {
	// Список URL лент. Через ENV RSS_FEEDS, разделитель — запятая.
	Feeds         []string      `yaml:"feeds"          env:"RSS_FEEDS"          env-separator:","`
	Timeout       time.Duration `yaml:"timeout"        env:"RSS_TIMEOUT"        env-default:"15s"`
	MaxConcurrent int           `yaml:"max_concurrent" env:"RSS_MAX_CONCURRENT" env-default:"6"`
}

// TopicsConfig — темы сообщества в PostgreSQL. Пустой URL — источник не регистрируется.
type TopicsConfig struct {
	DatabaseURL string        `yaml:"database_url" env:"DATABASE_URL"`
	Limit       int           `yaml:"limit"        env:"TOPICS_LIMIT"   env-default:"100"`
	MaxAge      time.Duration `yaml:"max_age"      env:"TOPICS_MAX_AGE" env-default:"168h"`
}

// CacheConfig — кэши: собственный кэш источника и кэш результатов на стороне вызывающего.
type CacheConfig struct {
	SourceTTL time.Duration `yaml:"source_ttl" env:"CACHE_SOURCE_TTL" env-default:"15m"`
	// RedisURL — пустой: кэш результатов выключен.
	RedisURL  string        `yaml:"redis_url"  env:"REDIS_URL"`
	ResultTTL time.Duration `yaml:"result_ttl" env:"CACHE_RESULT_TTL" env-default:"2m"`
	Prefix    string        `yaml:"prefix"     env:"CACHE_PREFIX"     env-default:"curator:"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"30s"`
}

// HealthConfig — период опроса доступности источников для gRPC health.
type HealthConfig struct {
	Interval time.Duration `yaml:"interval" env:"HEALTH_INTERVAL" env-default:"1m"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) (*Config, error) {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := cfg.validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		return readFile(path)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return readFile(envPath)
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		return readFile("local.yaml")
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	switch c.Env {
	case "local", "dev", "prod":
	default:
		return fmt.Errorf("env must be one of local|dev|prod, got %q", c.Env)
	}
	if err := c.Curation.Validate(); err != nil {
		return fmt.Errorf("curation: %w", err)
	}
	if c.Sources.Social.MaxResults < 10 || c.Sources.Social.MaxResults > 100 {
		return errors.New("sources.social.max_results must be within [10,100]")
	}
	if c.Sources.Social.QueryDelay < 0 {
		return errors.New("sources.social.query_delay must be >= 0")
	}
	if c.Sources.Social.Timeout <= 0 || c.Sources.RSS.Timeout <= 0 {
		return errors.New("source timeouts must be > 0")
	}
	if c.Cache.SourceTTL <= 0 {
		return errors.New("cache.source_ttl must be > 0")
	}
	if c.Cache.RedisURL != "" && c.Cache.ResultTTL <= 0 {
		return errors.New("cache.result_ttl must be > 0 when redis_url is set")
	}
	if c.Timeouts.Service <= 0 {
		return errors.New("timeouts.service must be > 0")
	}
	if c.Health.Interval < time.Second {
		return errors.New("health.interval must be at least 1s")
	}
	return nil
}
