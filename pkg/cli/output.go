package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
	"github.com/withgalaxy/responsive/pkg/config"
)

// render writes v in a structured format, or calls text for plain output.
func render(w io.Writer, format config.OutputFormat, v any, text func(io.Writer) error) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case config.FormatTOML:
		return toml.NewEncoder(w).Encode(v)
	case config.FormatText, "":
		return text(w)
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func pickFormat(flag string, cfg *config.Config) (config.OutputFormat, error) {
	if flag == "" {
		return cfg.Output.Format, nil
	}
	f := config.OutputFormat(strings.ToLower(flag))
	switch f {
	case config.FormatText, config.FormatJSON, config.FormatYAML, config.FormatTOML:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q (must be text, json, yaml, or toml)", flag)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}

// screensLine renders screens as "xxl:- xl:- lg:+ ..." in responsive order.
func screensLine(screens breakpoint.Screens) string {
	parts := make([]string, 0, len(breakpoint.All))
	for _, bp := range breakpoint.All {
		mark := "?"
		if v, ok := screens[bp]; ok {
			mark = "-"
			if v {
				mark = "+"
			}
		}
		parts = append(parts, bp.String()+":"+mark)
	}
	return strings.Join(parts, " ")
}
