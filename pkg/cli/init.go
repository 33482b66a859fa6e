package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/withgalaxy/responsive/pkg/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create responsive.toml",
	Long:  `Interactively create a responsive.toml in the project root`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config")
}

var viewportPresets = []string{
	"1024x768 (tablet landscape)",
	"1440x900 (laptop)",
	"1920x1080 (desktop)",
	"390x844 (phone)",
	"custom",
}

type initAnswers struct {
	Preset string
	Width  string
	Height string
	Port   string
	Format string
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.DefaultConfig()
	answers := initAnswers{}

	if err := survey.AskOne(&survey.Select{
		Message: "Default viewport for server-side rendering:",
		Options: viewportPresets,
		Default: viewportPresets[0],
	}, &answers.Preset); err != nil {
		return err
	}

	if answers.Preset == "custom" {
		qs := []*survey.Question{
			{
				Name:     "width",
				Prompt:   &survey.Input{Message: "Viewport width (px):", Default: strconv.Itoa(cfg.Viewport.Width)},
				Validate: positiveInt,
			},
			{
				Name:     "height",
				Prompt:   &survey.Input{Message: "Viewport height (px):", Default: strconv.Itoa(cfg.Viewport.Height)},
				Validate: positiveInt,
			},
		}
		if err := survey.Ask(qs, &answers); err != nil {
			return err
		}
	} else {
		w, h, err := parsePreset(answers.Preset)
		if err != nil {
			return err
		}
		cfg.Viewport.Width, cfg.Viewport.Height = w, h
	}

	qs := []*survey.Question{
		{
			Name:     "port",
			Prompt:   &survey.Input{Message: "Sync server port:", Default: strconv.Itoa(cfg.Server.Port)},
			Validate: positiveInt,
		},
		{
			Name: "format",
			Prompt: &survey.Select{
				Message: "Default output format:",
				Options: []string{"text", "json", "yaml", "toml"},
				Default: "text",
			},
		},
	}
	if err := survey.Ask(qs, &answers); err != nil {
		return err
	}

	if err := applyAnswers(cfg, answers); err != nil {
		return err
	}
	if err := config.Write(path, cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n✅ Wrote %s\n", path)
	return nil
}

// parsePreset reads the "WIDTHxHEIGHT" prefix of a viewport preset.
func parsePreset(preset string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(preset, "%dx%d", &w, &h); err != nil {
		return 0, 0, fmt.Errorf("invalid viewport preset %q: %w", preset, err)
	}
	return w, h, nil
}

func applyAnswers(cfg *config.Config, a initAnswers) error {
	fields := []struct {
		name string
		raw  string
		dst  *int
	}{
		{"width", a.Width, &cfg.Viewport.Width},
		{"height", a.Height, &cfg.Viewport.Height},
		{"port", a.Port, &cfg.Server.Port},
	}
	for _, f := range fields {
		if f.raw == "" {
			continue
		}
		n, err := strconv.Atoi(f.raw)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", f.name, f.raw, err)
		}
		*f.dst = n
	}
	if a.Format != "" {
		cfg.Output.Format = config.OutputFormat(a.Format)
	}
	return cfg.Validate()
}

func positiveInt(ans interface{}) error {
	s, ok := ans.(string)
	if !ok {
		return fmt.Errorf("expected text")
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("%q is not a positive number", s)
	}
	return nil
}
