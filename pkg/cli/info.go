package cli

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display environment information",
	Long:  `Display the resolved configuration and terminal details`,
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Responsive               v%s\n", Version)
	fmt.Fprintf(out, "Go                       %s\n", runtime.Version())
	fmt.Fprintf(out, "System                   %s (%s)\n", runtime.GOOS, runtime.GOARCH)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(out, "Config                   %s\n", path)
	} else {
		fmt.Fprintf(out, "Config                   (defaults)\n")
	}

	fmt.Fprintf(out, "Default viewport         %dx%d\n", cfg.Viewport.Width, cfg.Viewport.Height)
	fmt.Fprintf(out, "Sync server              ws://%s%s\n", cfg.Addr(), cfg.Server.Path)

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if cols, rows, err := term.GetSize(fd); err == nil {
			vp := cfg.Terminal.Scale(cols, rows)
			current := "none"
			if bp, ok := evaluate(vp).Current(); ok {
				current = bp.String()
			}
			fmt.Fprintf(out, "Terminal                 %dx%d cells (%dx%d px, %s)\n", cols, rows, vp.Width, vp.Height, current)
		}
	}

	return nil
}
