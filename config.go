package main

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const DEFAULT_CONFIG_PATH = "config.yaml"

type Config struct {
	ConsumerKey       string `yaml:"consumer_key" env:"TWITTER_CONSUMER_KEY" env-required:"true"`
	ConsumerSecret    string `yaml:"consumer_secret" env:"TWITTER_CONSUMER_SECRET" env-required:"true"`
	AccessToken       string `yaml:"access_token" env:"TWITTER_ACCESS_TOKEN" env-required:"true"`
	AccessTokenSecret string `yaml:"access_token_secret" env:"TWITTER_ACCESS_TOKEN_SECRET" env-required:"true"`

	ModeFilepath         string `yaml:"mode_filepath" env:"MODE_FILEPATH" env-required:"true"`
	OnceFollowedFilepath string `yaml:"once_followed_filepath" env:"ONCE_FOLLOWED_FILEPATH" env-required:"true"`
	UserSearchQuery      string `yaml:"user_search_query" env:"USER_SEARCH_QUERY" env-required:"true"`

	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogJSON  bool   `yaml:"log_json" env:"LOG_JSON"`
}

// LoadConfig reads the YAML settings file at path, then applies any
// environment overrides.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	return cfg, nil
}
