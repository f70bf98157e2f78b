// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env              string   `yaml:"env" env:"ENV" env-default:"local"`
	TargetYear       int      `yaml:"target_year" env:"TARGET_YEAR" env-default:"2026"`
	AllowedCountries []string `yaml:"allowed_countries" env:"ALLOWED_COUNTRIES"`
	FlagURLPattern   string   `yaml:"flag_url_pattern" env-default:"https://flagcdn.com/w20/%s.png"`
	Locale           string   `yaml:"locale" env:"LOCALE" env-default:"sv"`
	NagerAPI         `yaml:"nager_api"`
	HTTPServer       `yaml:"http_server"`
	Session          `yaml:"session"`
	RedisConnection  `yaml:"redis_connection"`
	RateLimit        `yaml:"rate_limit"`
}

// NagerAPI настройки клиента внешнего API праздников
type NagerAPI struct {
	BaseURL string        `yaml:"base_url" env:"NAGER_BASE_URL" env-default:"https://date.nager.at/api/v3"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Session настройки хранения состояния страницы пользователя
type Session struct {
	CookieName string        `yaml:"cookie_name" env-default:"holiday_sid"`
	TTL        time.Duration `yaml:"ttl" env-default:"24h"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой AddressRedis означает хранение сессий в памяти процесса.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RateLimit параметры token bucket для входящих запросов
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"10"`
	Burst int     `yaml:"burst" env-default:"20"`
}

// DefaultAllowedCountries европейские страны, доступные для выбора, если в конфиге список не задан.
var DefaultAllowedCountries = []string{
	"AL", "AD", "AT", "BY", "BE", "BA", "BG", "HR", "CY", "CZ", "DK", "EE", "FI",
	"FR", "DE", "GR", "HU", "IS", "IE", "IT", "XK", "LV", "LI", "LT", "LU", "MT",
	"MD", "MC", "ME", "NL", "MK", "NO", "PL", "PT", "RO", "RU", "SM", "RS", "SK",
	"SI", "ES", "SE", "CH", "UA", "GB", "VA",
}

// MustLoad функция для загрузки конфига, путь берётся из CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и проверяет его
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(cfg.AllowedCountries) == 0 {
		cfg.AllowedCountries = append([]string(nil), DefaultAllowedCountries...)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.TargetYear < 1900 || c.TargetYear > 2200 {
		return fmt.Errorf("target_year %d is out of range", c.TargetYear)
	}
	if c.NagerAPI.BaseURL == "" {
		return fmt.Errorf("nager_api.base_url is empty")
	}
	for _, code := range c.AllowedCountries {
		if len(code) != 2 {
			return fmt.Errorf("allowed_countries: invalid code %q", code)
		}
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"TargetYear: %d\n"+
			"AllowedCountries: %v\n"+
			"Locale: %s\n"+
			"NagerAPI:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Session:\n"+
			"  CookieName: %s\n"+
			"  TTL: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RateLimit:\n"+
			"  RPS: %g\n"+
			"  Burst: %d\n",
		c.Env,
		c.TargetYear,
		c.AllowedCountries,
		c.Locale,
		c.BaseURL,
		c.NagerAPI.Timeout,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.CookieName,
		c.TTL,
		c.AddressRedis,
		c.DB,
		c.RPS,
		c.Burst,
	)
}
