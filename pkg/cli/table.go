package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
)

var tableFormat string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the breakpoint table",
	Long:  `Print the breakpoints and the media queries that select them`,
	Args:  cobra.NoArgs,
	RunE:  runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().StringVar(&tableFormat, "format", "", "output format: text, json, yaml, toml")
}

type tableOutput struct {
	Breakpoints []breakpoint.Entry `json:"breakpoints" yaml:"breakpoints" toml:"breakpoints"`
}

func runTable(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := pickFormat(tableFormat, cfg)
	if err != nil {
		return err
	}

	out := tableOutput{Breakpoints: breakpoint.Table}
	return render(cmd.OutOrStdout(), format, out, func(w io.Writer) error {
		tw := newTable(w)
		fmt.Fprintln(tw, "BREAKPOINT\tQUERY")
		for _, e := range breakpoint.Table {
			fmt.Fprintf(tw, "%s\t%s\n", e.Breakpoint, e.Query)
		}
		return tw.Flush()
	})
}
