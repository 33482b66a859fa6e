package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
	"github.com/withgalaxy/responsive/pkg/config"
	"github.com/withgalaxy/responsive/pkg/responsive"
	"github.com/withgalaxy/responsive/pkg/terminal"
	"github.com/withgalaxy/responsive/pkg/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the terminal size and print breakpoint changes",
	Long: `Treat the terminal as a viewport (cells scaled by terminal.cellWidth and
terminal.cellHeight) and print the breakpoint state whenever it changes.
Edits to responsive.toml are picked up while running.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	vp := watcher.NewViewport(cfg.Viewport.Size(), watcher.WithLogger(logger))
	d := responsive.New(vp, responsive.WithLogger(logger))
	defer d.Close()

	out := cmd.OutOrStdout()
	var last breakpoint.Screens
	tok := d.Subscribe(func(screens breakpoint.Screens) {
		if screens.Equal(last) {
			return
		}
		last = screens
		size := vp.Size()
		current, ok := screens.Current()
		if !ok {
			current = "none"
		}
		fmt.Fprintf(out, "%5dx%-5d %-4s %s\n", size.Width, size.Height, current, screensLine(screens))
	})
	defer d.Unsubscribe(tok)

	for {
		runCtx, cancel := context.WithCancel(ctx)
		reloaded := make(chan *config.Config, 1)

		go func() {
			err := config.Watch(runCtx, path, func(next *config.Config, err error) {
				if err != nil {
					logger.Warn("config reload failed", "error", err)
					return
				}
				select {
				case reloaded <- next:
				default:
				}
			})
			if err != nil {
				logger.Warn("config watch stopped", "error", err)
			}
		}()

		src, err := terminal.New(int(os.Stdout.Fd()), cfg.Terminal)
		if err != nil {
			cancel()
			return err
		}

		runErr := make(chan error, 1)
		go func() {
			runErr <- src.Run(runCtx, vp.Resize)
		}()

		select {
		case <-ctx.Done():
			cancel()
			<-runErr
			return nil
		case err := <-runErr:
			cancel()
			return err
		case next := <-reloaded:
			cancel()
			<-runErr
			logger.Info("config reloaded", "path", path)
			cfg = next
		}
	}
}
