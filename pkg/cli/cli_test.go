package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
	"github.com/withgalaxy/responsive/pkg/config"
	"github.com/withgalaxy/responsive/pkg/mediaquery"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()

	// Flag values persist between Execute calls on the shared root command.
	tableFormat, matchFormat = "", ""
	matchWidth, matchHeight = 0, 0
	rootDir, cfgFile = t.TempDir(), ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return buf.String()
}

func TestTableText(t *testing.T) {
	out := runCLI(t, "table")
	for _, e := range breakpoint.Table {
		if !strings.Contains(out, e.Query) {
			t.Errorf("table output missing %q:\n%s", e.Query, out)
		}
	}
}

func TestTableJSON(t *testing.T) {
	out := runCLI(t, "table", "--format", "json")

	var got tableOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(got.Breakpoints) != len(breakpoint.Table) {
		t.Fatalf("got %d entries", len(got.Breakpoints))
	}
	for i, e := range got.Breakpoints {
		if e != breakpoint.Table[i] {
			t.Errorf("entry %d = %+v, want %+v", i, e, breakpoint.Table[i])
		}
	}
}

func TestMatchYAML(t *testing.T) {
	out := runCLI(t, "match", "--width", "1300", "--height", "800", "--format", "yaml")

	var got matchOutput
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid yaml: %v\n%s", err, out)
	}
	if got.Current != breakpoint.XL {
		t.Errorf("current = %q, want xl", got.Current)
	}
	if got.Viewport.Width != 1300 || got.Viewport.Height != 800 {
		t.Errorf("viewport = %+v", got.Viewport)
	}
	if len(got.Screens) != len(breakpoint.Table) {
		t.Errorf("screens should list every breakpoint, got %v", got.Screens)
	}
	if got.Screens[breakpoint.XXL] || !got.Screens[breakpoint.SM] {
		t.Errorf("screens = %v", got.Screens)
	}
}

func TestMatchTextUsesConfigViewport(t *testing.T) {
	out := runCLI(t, "match")
	if !strings.Contains(out, "1024x768") || !strings.Contains(out, "current   lg") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestEvaluateFillsTable(t *testing.T) {
	screens := evaluate(mediaquery.Viewport{Width: 320, Height: 640})
	if len(screens) != len(breakpoint.Table) {
		t.Fatalf("screens = %v", screens)
	}
	if cur, _ := screens.Current(); cur != breakpoint.XS {
		t.Errorf("current = %q, want xs", cur)
	}
}

func TestPickFormat(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = config.FormatYAML

	if f, err := pickFormat("", cfg); err != nil || f != config.FormatYAML {
		t.Errorf("empty flag = %q, %v", f, err)
	}
	if f, err := pickFormat("JSON", cfg); err != nil || f != config.FormatJSON {
		t.Errorf("JSON flag = %q, %v", f, err)
	}
	if _, err := pickFormat("xml", cfg); err == nil {
		t.Error("expected error for xml")
	}
}

func TestScreensLine(t *testing.T) {
	got := screensLine(breakpoint.Screens{breakpoint.MD: true, breakpoint.LG: false})
	want := "xxl:? xl:? lg:- md:+ sm:? xs:?"
	if got != want {
		t.Errorf("screensLine = %q, want %q", got, want)
	}
}

func TestApplyAnswers(t *testing.T) {
	cfg := config.DefaultConfig()
	err := applyAnswers(cfg, initAnswers{Width: "390", Height: "844", Port: "9100", Format: "toml"})
	if err != nil {
		t.Fatalf("applyAnswers: %v", err)
	}
	if cfg.Viewport.Width != 390 || cfg.Viewport.Height != 844 || cfg.Server.Port != 9100 {
		t.Errorf("config = %+v", cfg)
	}
	if cfg.Output.Format != config.FormatTOML {
		t.Errorf("format = %q", cfg.Output.Format)
	}

	if err := applyAnswers(config.DefaultConfig(), initAnswers{Format: "xml"}); err == nil {
		t.Error("expected validation error")
	}

	for _, a := range []initAnswers{{Width: "abc"}, {Height: "7.5"}, {Port: "http"}} {
		cfg := config.DefaultConfig()
		if err := applyAnswers(cfg, a); err == nil {
			t.Errorf("applyAnswers(%+v) should fail", a)
		}
		if cfg.Viewport.Width != 1024 || cfg.Viewport.Height != 768 || cfg.Server.Port != 4323 {
			t.Errorf("bad answer %+v changed config to %+v", a, cfg)
		}
	}
}

func TestParsePreset(t *testing.T) {
	for _, preset := range viewportPresets {
		if preset == "custom" {
			continue
		}
		w, h, err := parsePreset(preset)
		if err != nil || w <= 0 || h <= 0 {
			t.Errorf("parsePreset(%q) = %d, %d, %v", preset, w, h, err)
		}
	}

	w, h, err := parsePreset("390x844 (phone)")
	if err != nil || w != 390 || h != 844 {
		t.Errorf("phone preset = %d, %d, %v", w, h, err)
	}
	if _, _, err := parsePreset("custom"); err == nil {
		t.Error("expected error for custom")
	}
}

func TestPositiveInt(t *testing.T) {
	if positiveInt("12") != nil {
		t.Error("12 should be valid")
	}
	for _, bad := range []interface{}{"0", "-3", "abc", 5} {
		if positiveInt(bad) == nil {
			t.Errorf("%v should be rejected", bad)
		}
	}
}
