// config — источник загрузки конфигурации клиента ChillNow.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	API         APIConfig         `yaml:"api"`
	Credentials CredentialsConfig `yaml:"credentials"`
	CinetPay    CinetPayConfig    `yaml:"cinetpay"`
}

// APIConfig — REST-бэкенд и таймаут исходящих запросов.
type APIConfig struct {
	BaseURL  string        `yaml:"base_url"  env:"API_BASE_URL"  env-default:"https://chillbackend.onrender.com/"`
	MediaURL string        `yaml:"media_url" env:"API_MEDIA_URL" env-default:""`
	Timeout  time.Duration `yaml:"timeout"   env:"API_TIMEOUT"   env-default:"30s"`
}

// CredentialsConfig — каталог локального хранилища учётных данных.
// Пустой Dir означает дефолт: <os.UserConfigDir()>/chillnow.
type CredentialsConfig struct {
	Dir string `yaml:"dir" env:"CREDENTIALS_DIR" env-default:""`
}

// ResolveDir возвращает каталог хранилища, подставляя дефолт при пустом Dir.
func (c CredentialsConfig) ResolveDir() (string, error) {
	if c.Dir != "" {
		return c.Dir, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config.ResolveDir: %w", err)
	}

	return filepath.Join(base, "chillnow"), nil
}

// CinetPayConfig — параметры встроенного чекаута CinetPay.
// CallbackHost/CallbackPort — loopback-адрес, на котором клиент слушает
// сообщения моста чекаута; порт 0 — эфемерный.
type CinetPayConfig struct {
	APIKey       string `yaml:"apikey"        env:"CINETPAY_APIKEY"`
	SiteID       string `yaml:"site_id"       env:"CINETPAY_SITE_ID"`
	Mode         string `yaml:"mode"          env:"CINETPAY_MODE"          env-default:"SANDBOX"`
	Currency     string `yaml:"currency"      env:"CINETPAY_CURRENCY"      env-default:"XOF"`
	CallbackHost string `yaml:"callback_host" env:"CINETPAY_CALLBACK_HOST" env-default:"127.0.0.1"`
	CallbackPort string `yaml:"callback_port" env:"CINETPAY_CALLBACK_PORT" env-default:"0"`
}

func (c CinetPayConfig) CallbackAddr() string {
	return net.JoinHostPort(c.CallbackHost, c.CallbackPort)
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	return &cfg, nil
}
