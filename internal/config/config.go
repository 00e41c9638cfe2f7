package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/example/textcnn-prep/internal/preperr"
)

type Config struct {
	Batch    BatchConfig `mapstructure:"batch"`
	Text     TextConfig  `mapstructure:"text"`
	LogLevel string      `mapstructure:"log_level"`
}

type BatchConfig struct {
	Size    int    `mapstructure:"size"`
	Shuffle bool   `mapstructure:"shuffle"`
	Seed    uint64 `mapstructure:"seed"`
}

type TextConfig struct {
	RemoveStopwords bool     `mapstructure:"remove_stopwords"`
	Stopwords       []string `mapstructure:"stopwords"`
	FoldUnicode     bool     `mapstructure:"fold_unicode"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps command line flags to their config keys.
var flagKeys = []struct{ flag, key string }{
	{"batch-size", "batch.size"},
	{"batch-shuffle", "batch.shuffle"},
	{"batch-seed", "batch.seed"},
	{"text-remove-stopwords", "text.remove_stopwords"},
	{"text-stopwords", "text.stopwords"},
	{"text-fold-unicode", "text.fold_unicode"},
	{"log-level", "log_level"},
}

func DefaultConfig() Config {
	return Config{
		Batch: BatchConfig{
			Size:    64,
			Shuffle: true,
			Seed:    0,
		},
		Text: TextConfig{
			RemoveStopwords: false,
			Stopwords:       nil,
			FoldUnicode:     false,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Int("batch-size", defaults.Batch.Size, "Number of indices per mini-batch")
	fs.Bool("batch-shuffle", defaults.Batch.Shuffle, "Shuffle indices before batching")
	fs.Uint64("batch-seed", defaults.Batch.Seed, "Shuffle seed (0 draws a random seed)")
	fs.Bool("text-remove-stopwords", defaults.Text.RemoveStopwords, "Drop stopwords from token sequences")
	fs.StringSlice("text-stopwords", defaults.Text.Stopwords, "Stopwords to drop (comma separated)")
	fs.Bool("text-fold-unicode", defaults.Text.FoldUnicode, "Fold accented letters to ASCII instead of dropping them")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("TEXTPREP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("textprep")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate rejects sizes the preprocessing packages cannot work with.
func (c Config) Validate() error {
	if c.Batch.Size <= 0 {
		return fmt.Errorf("config: batch.size must be positive, got %d: %w", c.Batch.Size, preperr.ErrInvalidArgument)
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// ParseLogLevel maps a level name to its slog.Level. Unknown names return
// slog.LevelInfo together with an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("batch.size", c.Batch.Size)
	v.SetDefault("batch.shuffle", c.Batch.Shuffle)
	v.SetDefault("batch.seed", c.Batch.Seed)
	v.SetDefault("text.remove_stopwords", c.Text.RemoveStopwords)
	v.SetDefault("text.stopwords", c.Text.Stopwords)
	v.SetDefault("text.fold_unicode", c.Text.FoldUnicode)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds each registered flag to its dotted key. Flags missing from
// fs are skipped so callers may register a subset.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", fk.flag, err)
		}
	}

	return nil
}
