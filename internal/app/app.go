package app

import (
	"os"
	"time"

	myErr "feedbackhub/internal/types/errors"

	"gopkg.in/yaml.v3"
)

const (
	defaultDBPath        = "./feedback.db"
	defaultAdminEmail    = "admin@feedback.com"
	defaultAdminPassword = "password"
)

type Config struct {
	CfgDB           ConfigDB      `yaml:"db"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	Secret          string        `yaml:"secret"`
	ServerPort      string        `yaml:"srv_port"`
	SessionDuration time.Duration `yaml:"session_duration"`

	SeedAdminEmail    string `yaml:"-"`
	SeedAdminPassword string `yaml:"-"`
}

type ConfigDB struct {
	Driver string `yaml:"driver"` // sqlite | postgres
	Path   string `yaml:"path"`   // файл sqlite
	DSN    string `yaml:"dsn"`    // строка подключения postgres
}

func NewConfig(configPath string) (*Config, error) {
	cfg, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var c Config
	err = yaml.Unmarshal(cfg, &c)
	if err != nil {
		return nil, err
	}

	if err := c.applyEnv(); err != nil {
		return nil, err
	}

	return &c, nil
}

// applyEnv накладывает переменные окружения поверх yaml и проставляет дефолты.
// Секрет подписи обязателен: без него приложение стартовать не должно.
func (c *Config) applyEnv() error {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.Secret = secret
	}
	if c.Secret == "" {
		return myErr.ErrMissingSecret
	}

	if path := os.Getenv("DATABASE_PATH"); path != "" {
		c.CfgDB.Path = path
	}

	c.SeedAdminEmail = os.Getenv("SEED_ADMIN_EMAIL")
	if c.SeedAdminEmail == "" {
		c.SeedAdminEmail = defaultAdminEmail
	}
	c.SeedAdminPassword = os.Getenv("SEED_ADMIN_PASSWORD")
	if c.SeedAdminPassword == "" {
		c.SeedAdminPassword = defaultAdminPassword
	}

	if c.CfgDB.Driver == "" {
		c.CfgDB.Driver = "sqlite"
	}
	if c.CfgDB.Path == "" {
		c.CfgDB.Path = defaultDBPath
	}
	if c.ServerPort == "" {
		c.ServerPort = ":8080"
	}
	if c.SessionDuration == 0 {
		c.SessionDuration = 24 * time.Hour
	}
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 10
	}

	return nil
}
