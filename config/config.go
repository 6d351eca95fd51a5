// Package config loads pipeline configuration from a YAML file and QAPREP_*
// environment variables.
package config

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all pipeline and model settings.
type Config struct {
	Squad  SquadConfig  `mapstructure:"squad"`
	NewsQA NewsQAConfig `mapstructure:"newsqa"`
	Output OutputConfig `mapstructure:"output"`
	Model  ModelConfig  `mapstructure:"model"`
	Log    LogConfig    `mapstructure:"log"`
}

// SquadConfig locates the SQuAD corpus. Per-split output files are written
// under DataDir next to the inputs.
type SquadConfig struct {
	DataDir   string `mapstructure:"data_dir"`
	TrainFile string `mapstructure:"train_file"`
	DevFile   string `mapstructure:"dev_file"`
}

// TrainPath returns the full path of the train split JSON.
func (c SquadConfig) TrainPath() string { return filepath.Join(c.DataDir, c.TrainFile) }

// DevPath returns the full path of the dev split JSON.
func (c SquadConfig) DevPath() string { return filepath.Join(c.DataDir, c.DevFile) }

// NewsQAConfig locates the combined NewsQA corpus file.
type NewsQAConfig struct {
	DataDir string `mapstructure:"data_dir"`
	File    string `mapstructure:"file"`
}

// Path returns the full path of the combined corpus JSON.
func (c NewsQAConfig) Path() string { return filepath.Join(c.DataDir, c.File) }

// OutputConfig controls the merged output.
type OutputConfig struct {
	Dir          string `mapstructure:"dir"`
	Seed         int64  `mapstructure:"seed"`
	AnswerPolicy string `mapstructure:"answer_policy"`
}

// ModelConfig locates the exported QA model and its vocabulary.
type ModelConfig struct {
	Path      string `mapstructure:"path"`
	VocabPath string `mapstructure:"vocab_path"`
	VocabSize int    `mapstructure:"vocab_size"`
	PoolSize  int    `mapstructure:"pool_size"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// SlogLevel maps the configured level string to a slog.Level, defaulting to
// Info for unknown values.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads the config file and environment into a Config. A missing config
// file is not an error when configFile is empty; defaults and environment
// variables still apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("qaprep")
	}

	v.SetEnvPrefix("QAPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	loadDotEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("squad.data_dir", "data/squad")
	v.SetDefault("squad.train_file", "train-v2.0.json")
	v.SetDefault("squad.dev_file", "dev-v2.0.json")
	v.SetDefault("newsqa.data_dir", "data/newsqa")
	v.SetDefault("newsqa.file", "combined-newsqa-data-v1.json")
	v.SetDefault("output.dir", "data/out")
	v.SetDefault("output.seed", 42)
	v.SetDefault("output.answer_policy", "one-per-answer")
	v.SetDefault("model.path", "model.onnx")
	v.SetDefault("model.vocab_path", "data/out/vocab.json")
	v.SetDefault("model.vocab_size", 45000)
	v.SetDefault("model.pool_size", 0)
	v.SetDefault("log.level", "info")
}

// loadDotEnv loads environment variables from a .env file if present.
func loadDotEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found or unable to load", "error", err)
	}
}
