package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/comparedemo/internal/api"
	"github.com/wesleyorama2/comparedemo/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the load control API",
	Long: `Expose start, stop, status and log for the load generator over HTTP,
plus prometheus metrics at /metrics.

  curl -X POST localhost:8088/load/start/high
  curl -X POST localhost:8088/load/stop`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()
		if addr == "" {
			addr = a.cfg.Control.Addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv, shutdown, err := a.controlServer(addr)
		if err != nil {
			return err
		}
		defer shutdown()

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("control API listening", "addr", addr)
			fmt.Fprintf(cmd.OutOrStdout(), "Control API listening on %s\n", addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		a.logger.Info("shutting down control API")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}

// controlServer builds the HTTP server for the control API. The returned
// func stops any running session and waits for its requests.
func (a *app) controlServer(addr string) (*http.Server, func(), error) {
	recorder := metrics.NewRecorder()
	gen, notifier, err := a.generator(recorder)
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		metrics.NewCollector(recorder, gen.Active),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(gen, reg, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}
	shutdown := func() {
		gen.Stop()
		gen.Wait()
		waitNotify(notifier, 5*time.Second)
	}
	return srv, shutdown, nil
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (defaults to control.addr from config)")
}
