package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/withgalaxy/responsive/pkg/config"
)

var (
	Version = "0.3.0"
	cfgFile string
	rootDir string
	verbose bool
	silent  bool
)

var rootCmd = &cobra.Command{
	Use:   "responsive",
	Short: "Responsive - breakpoint tooling for Galaxy UI components",
	Long: `Responsive maps screen sizes to the xs..xxl breakpoints used by Galaxy
UI components and reports which breakpoints match a viewport.

It can evaluate a fixed viewport, follow the current terminal, or keep
server-rendered pages in sync with browser viewports over a websocket.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default <root>/responsive.toml)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "project root directory")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose logging")
	rootCmd.PersistentFlags().BoolVar(&silent, "silent", false, "disable all logging")
}

func projectDir() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	return os.Getwd()
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := projectDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, config.FileName), nil
}

func loadConfig() (*config.Config, string, error) {
	path, err := configPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("load config: %w", err)
	}
	return cfg, path, nil
}

func newLogger(w io.Writer) *slog.Logger {
	if silent {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
