package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string      `yaml:"env" env:"ENV" env-default:"local"`
	Timezone    string      `yaml:"timezone" env:"TIMEZONE" env-default:"Europe/Berlin"`
	Database    Database    `yaml:"database"`
	HTTPServer  HTTPServer  `yaml:"http_server"`
	DayRelation DayRelation `yaml:"day_relation"`
	List        List        `yaml:"list"`
	Scheduler   Scheduler   `yaml:"scheduler"`
}

type Database struct {
	Host     string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"DB_NAME" env-default:"events2"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE" env-default:"disable"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// DayRelation bounds the expansion of recurring events into days.
type DayRelation struct {
	RecurringPast   int `yaml:"recurring_past" env-default:"3"`
	RecurringFuture int `yaml:"recurring_future" env-default:"6"`
	MaxDaysPerEvent int `yaml:"max_days_per_event" env-default:"1000"`
}

type List struct {
	LatestLimit int `yaml:"latest_limit" env-default:"7"`
}

type Scheduler struct {
	RegenerateDays string `yaml:"regenerate_days" env:"SCHEDULER_REGENERATE_DAYS" env-default:"0 3 * * *"`
}

func MustLoad() *Config {
	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

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

func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, err
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Location resolves Timezone, falling back to UTC for unknown zone names.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}

	return loc
}
