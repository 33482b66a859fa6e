package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
	"github.com/withgalaxy/responsive/pkg/mediaquery"
	"github.com/withgalaxy/responsive/pkg/responsive"
	"github.com/withgalaxy/responsive/pkg/watcher"
)

var (
	matchWidth  int
	matchHeight int
	matchFormat string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Show which breakpoints match a viewport",
	Long: `Evaluate the breakpoint table against a viewport size in CSS pixels.
Without flags the viewport from responsive.toml is used.`,
	Args: cobra.NoArgs,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	matchCmd.Flags().IntVar(&matchWidth, "width", 0, "viewport width in px")
	matchCmd.Flags().IntVar(&matchHeight, "height", 0, "viewport height in px")
	matchCmd.Flags().StringVar(&matchFormat, "format", "", "output format: text, json, yaml, toml")
}

type matchOutput struct {
	Viewport mediaquery.Viewport   `json:"viewport" yaml:"viewport" toml:"viewport"`
	Current  breakpoint.Breakpoint `json:"current,omitempty" yaml:"current,omitempty" toml:"current,omitempty"`
	Screens  breakpoint.Screens    `json:"screens" yaml:"screens" toml:"screens"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := pickFormat(matchFormat, cfg)
	if err != nil {
		return err
	}

	vp := cfg.Viewport.Size()
	if matchWidth > 0 {
		vp.Width = matchWidth
	}
	if matchHeight > 0 {
		vp.Height = matchHeight
	}

	screens := evaluate(vp)
	out := matchOutput{Viewport: vp, Screens: screens}
	out.Current, _ = screens.Current()

	return render(cmd.OutOrStdout(), format, out, func(w io.Writer) error {
		current := string(out.Current)
		if current == "" {
			current = "none"
		}
		fmt.Fprintf(w, "viewport  %dx%d\n", vp.Width, vp.Height)
		fmt.Fprintf(w, "current   %s\n", current)
		fmt.Fprintf(w, "screens   %s\n", screensLine(screens))
		return nil
	})
}

// evaluate runs a one-shot subscription against a viewport watcher, the
// same path a server-rendered component takes.
func evaluate(vp mediaquery.Viewport) breakpoint.Screens {
	d := responsive.New(watcher.NewViewport(vp))
	defer d.Close()

	var screens breakpoint.Screens
	tok := d.Subscribe(func(s breakpoint.Screens) { screens = s })
	d.Unsubscribe(tok)

	// Breakpoints that never matched have not been reported; fill them in
	// so the output always lists the whole table.
	for _, e := range breakpoint.Table {
		if _, ok := screens[e.Breakpoint]; !ok {
			screens[e.Breakpoint] = false
		}
	}
	return screens
}
