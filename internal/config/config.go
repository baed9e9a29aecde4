// internal/config/config.go
package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
	"github.com/sirupsen/logrus"
)

// Config is read from the environment. Binaries import
// github.com/joho/godotenv/autoload so a .env file is picked up first.
type Config struct {
	Port      string `env:"UNO_SERVICE_PORT,default=3001"`
	StaticDir string `env:"UNO_STATIC_DIR,default=."`

	// StoreBackend selects where /reshuffle persists deals: file, postgres, sqlite or redis.
	StoreBackend string `env:"UNO_STORE,default=file"`
	DataDir      string `env:"UNO_DATA_DIR,default=."`
	DatabaseURL  string `env:"DATABASE_URL"`
	SQLitePath   string `env:"UNO_SQLITE_PATH,default=uno.db"`
	RedisAddr    string `env:"REDIS_ADDR,default=localhost:6379"`
	RedisDB      int    `env:"REDIS_DB,default=0"`
	RedisPrefix  string `env:"UNO_REDIS_PREFIX,default=uno"`

	LogLevel string `env:"LOG_LEVEL,default=info"`

	// ConsoleLogLevel applies to the console game, which shares the terminal with its logs.
	ConsoleLogLevel string `env:"UNO_CONSOLE_LOG_LEVEL,default=warn"`

	// Seed fixes the console game's shuffles; 0 seeds from the clock.
	Seed      int64  `env:"UNO_SEED,default=0"`
	PlayerOne string `env:"UNO_PLAYER1,default=Player 1"`
	PlayerTwo string `env:"UNO_PLAYER2,default=Player 2"`
}

// Load decodes the environment into a Config. A value that does not parse
// for its field, such as UNO_SEED=abc, is an error.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Logger builds a logrus logger at the configured level.
func (c *Config) Logger() (*logrus.Logger, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	logger.SetLevel(level)
	return logger, nil
}

// ConsoleLevel parses ConsoleLogLevel.
func (c *Config) ConsoleLevel() (logrus.Level, error) {
	level, err := logrus.ParseLevel(c.ConsoleLogLevel)
	if err != nil {
		return 0, fmt.Errorf("invalid UNO_CONSOLE_LOG_LEVEL %q: %w", c.ConsoleLogLevel, err)
	}
	return level, nil
}
