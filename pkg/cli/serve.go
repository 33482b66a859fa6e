package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
	"github.com/withgalaxy/responsive/pkg/remote"
)

var (
	servePort int
	serveHost string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the breakpoint sync server",
	Long: `Accept websocket connections from browsers reporting their viewport and
answer with the matching breakpoints. Server-rendered pages can look up a
client's breakpoints by session id.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind to (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	logger := newLogger(cmd.ErrOrStderr())

	srv := remote.NewServer(
		remote.WithDefaultViewport(cfg.Viewport.Size()),
		remote.WithAllowedOrigins(cfg.Server.AllowOrigins),
		remote.WithLogger(logger),
	)

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Server.Path, srv.HandleWebSocket)
	mux.HandleFunc(cfg.Server.Path+"/sessions", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string][]string{"sessions": srv.Sessions()})
	})
	mux.HandleFunc(cfg.Server.Path+"/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		screens, ok := srv.Screens(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		current, _ := screens.Current()
		writeJSON(w, struct {
			Screens breakpoint.Screens    `json:"screens"`
			Current breakpoint.Breakpoint `json:"current,omitempty"`
		}{screens, current})
	})

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Breakpoint sync listening on ws://%s%s\n", cfg.Addr(), cfg.Server.Path)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
