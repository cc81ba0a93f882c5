package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	ServerURL  string `yaml:"server-url" env-default:"ws://localhost:5000/socket"`
	HealthURL  string `yaml:"health-url" env-default:"http://localhost:5000/health"`
	PlayerName string `yaml:"player-name" env-default:""`
	Prefs      Prefs  `yaml:"prefs"`
}

type Prefs struct {
	Backend    string `yaml:"backend" env-default:"sqlite"`
	SQLitePath string `yaml:"sqlite-path" env-default:"prefs.db"`
	Redis      Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
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
