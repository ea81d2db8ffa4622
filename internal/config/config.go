package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort        string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"history.db"`
	Search            Search `yaml:"search"`
}

type Redis struct {
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SolutionTTL time.Duration `yaml:"solution-ttl" env:"REDIS_SOLUTION_TTL" env-default:"0s"`
}

type Search struct {
	WindowPropagation bool `yaml:"window-propagation" env:"SEARCH_WINDOW_PROPAGATION" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
