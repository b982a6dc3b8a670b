// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"kosymspell/internal/corrector"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Engine     EngineConfig     `yaml:"engine"`
	Dictionary DictionaryConfig `yaml:"dictionary"`
	Redis      RedisConfig      `yaml:"redis"`
	Database   DatabaseConfig   `yaml:"database"`
}

type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type EngineConfig struct {
	MaxEditDistance int   `yaml:"max_edit_distance"`
	PrefixLength    int   `yaml:"prefix_length"`
	CountThreshold  int64 `yaml:"count_threshold"`
	CorpusSize      int64 `yaml:"corpus_size"`
	Decompose       bool  `yaml:"decompose"`

	TopKSuggestions  int     `yaml:"top_k_suggestions"`
	FilterShortWords bool    `yaml:"filter_short_words"`
	CustomWordCount  int64   `yaml:"custom_word_count"`
	CountMargin      float64 `yaml:"count_margin"`
}

type DictionaryConfig struct {
	Unigrams string `yaml:"unigrams"`
	Bigrams  string `yaml:"bigrams"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cc := corrector.DefaultConfig()
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Engine: EngineConfig{
			MaxEditDistance:  cc.MaxEditDistance,
			PrefixLength:     cc.PrefixLength,
			CountThreshold:   cc.CountThreshold,
			Decompose:        cc.DecomposeScript,
			TopKSuggestions:  cc.TopKSuggestions,
			FilterShortWords: cc.FilterShortWords,
			CustomWordCount:  cc.CustomWordCount,
			CountMargin:      cc.CountMargin,
		},
		Dictionary: DictionaryConfig{Unigrams: "ko_50k.txt"},
		Redis: RedisConfig{
			Enabled: true,
			Addr:    "localhost:6379",
			Key:     "custom_dict",
		},
	}
}

// LoadConfig reads path on top of the defaults and applies environment
// overrides. An empty path skips the file.
func LoadConfig(path string) (*Config, error) {
	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	config.applyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getenv("HTTP_ADDR", c.Server.Addr)
	c.Redis.Addr = getenv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getenv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Database.URL = getenv("DATABASE_URL", c.Database.URL)

	c.Dictionary.Unigrams = getenv("KOSYMSPELL_DICTIONARY", c.Dictionary.Unigrams)
	c.Dictionary.Bigrams = getenv("KOSYMSPELL_BIGRAMS", c.Dictionary.Bigrams)
	c.Engine.MaxEditDistance = getEnvInt("KOSYMSPELL_MAX_EDIT_DISTANCE", c.Engine.MaxEditDistance)
	c.Engine.PrefixLength = getEnvInt("KOSYMSPELL_PREFIX_LENGTH", c.Engine.PrefixLength)
	c.Engine.CountThreshold = int64(getEnvInt("KOSYMSPELL_COUNT_THRESHOLD", int(c.Engine.CountThreshold)))
	c.Engine.Decompose = getEnvBool("KOSYMSPELL_DECOMPOSE", c.Engine.Decompose)
	c.Redis.Enabled = getEnvBool("KOSYMSPELL_REDIS", c.Redis.Enabled)
}

// Validate rejects settings the engine cannot be built with.
func (c *Config) Validate() error {
	if c.Engine.MaxEditDistance < 0 {
		return fmt.Errorf("max_edit_distance must be >= 0, got %d", c.Engine.MaxEditDistance)
	}
	if c.Engine.PrefixLength < 1 || c.Engine.PrefixLength <= c.Engine.MaxEditDistance {
		return fmt.Errorf("prefix_length must be > max(0, max_edit_distance), got %d", c.Engine.PrefixLength)
	}
	if c.Engine.CountThreshold < 0 {
		return fmt.Errorf("count_threshold must be >= 0, got %d", c.Engine.CountThreshold)
	}
	return nil
}

// Corrector converts the engine section into the service configuration.
func (c *Config) Corrector() corrector.CorrectorConfig {
	cc := corrector.DefaultConfig()
	cc.MaxEditDistance = c.Engine.MaxEditDistance
	cc.PrefixLength = c.Engine.PrefixLength
	cc.CountThreshold = c.Engine.CountThreshold
	cc.CorpusSize = c.Engine.CorpusSize
	cc.DecomposeScript = c.Engine.Decompose
	if c.Engine.TopKSuggestions > 0 {
		cc.TopKSuggestions = c.Engine.TopKSuggestions
	}
	cc.FilterShortWords = c.Engine.FilterShortWords
	if c.Engine.CustomWordCount > 0 {
		cc.CustomWordCount = c.Engine.CustomWordCount
	}
	if c.Engine.CountMargin > 0 {
		cc.CountMargin = c.Engine.CountMargin
	}
	return cc
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}
