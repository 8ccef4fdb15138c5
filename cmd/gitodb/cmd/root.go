package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aweris/gitodb"
	"github.com/aweris/gitodb/internal/compression"
	"github.com/aweris/gitodb/internal/repo"
	"github.com/aweris/gitodb/internal/store"
)

var rootCmd = &cobra.Command{
	Use:          "gitodb",
	Short:        "Git-compatible loose object database",
	Long:         "CLI for storing and reading content-addressed objects in a git-style objects directory.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ~/.config/gitodb/config.yaml)")
	flags.String("git-dir", repo.DefaultDir, "repository directory")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.Int("cache-size", store.DefaultCacheSize, "number of decoded objects kept in memory")
	flags.Int("compression-level", compression.DefaultLevel, "zlib level for new objects (-2..9)")
	flags.Int("concurrency", store.DefaultConcurrency, "parallel operations for batch commands")

	viper.BindPFlag("git_dir", flags.Lookup("git-dir"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("cache_size", flags.Lookup("cache-size"))
	viper.BindPFlag("compression_level", flags.Lookup("compression-level"))
	viper.BindPFlag("concurrency", flags.Lookup("concurrency"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("GITODB")
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "gitodb")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "gitodb")
	}
	return ".gitodb"
}

func getGitDir() string {
	return viper.GetString("git_dir")
}

// newLogger builds a console logger writing to stderr.
func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(viper.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.DisableStacktrace = true

	return c.Build()
}

func openOptions() ([]gitodb.OpenOption, error) {
	log, err := newLogger()
	if err != nil {
		return nil, err
	}
	return []gitodb.OpenOption{
		gitodb.WithLogger(log),
		gitodb.WithCacheSize(viper.GetInt("cache_size")),
		gitodb.WithCompressionLevel(viper.GetInt("compression_level")),
		gitodb.WithConcurrency(viper.GetInt("concurrency")),
	}, nil
}

func openDB() (*gitodb.DB, error) {
	opts, err := openOptions()
	if err != nil {
		return nil, err
	}
	return gitodb.Open(getGitDir(), opts...)
}
