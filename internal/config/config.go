package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Env        string        `yaml:"env" env:"ENV" env-default:"prod"`
	SessionDir string        `yaml:"session_dir" env:"SESSION_DIR" env-default:"./session"`
	ApiID      int32         `yaml:"api_id" env:"TELEGRAM_API_ID" env-required:"true"`
	ApiHash    string        `yaml:"api_hash" env:"TELEGRAM_API_HASH" env-required:"true"`
	RedisAddr  string        `yaml:"redis_addr" env:"REDIS_ADDR"` // пусто — без дедупликации приветствий
	GreetTTL   time.Duration `yaml:"greet_ttl" env:"GREET_TTL" env-default:"24h"`
}

// Load читает настройки из yaml-файла (если задан путь) с наложением
// переменных окружения. .env подхватывается, когда он есть.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig

	if path := fetchConfigPath(); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env config: %w", err)
	}
	return &cfg, nil
}

// fetchConfigPath fetches config path from command line flag or environment variable.
// Priority: flag > env > default.
// Default value is empty string.
func fetchConfigPath() string {
	var res string

	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	return res
}
