package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/airdelay-sim/airdelay-sim/api"
	"github.com/airdelay-sim/airdelay-sim/sim"
)

const shutdownTimeout = 5 * time.Second

var listenAddr string // HTTP listen address

// serveCmd exposes one driver over HTTP and websocket
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the simulator over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		catalog, presets, err := loadEnvironment(defaultsFilePath)
		if err != nil {
			logrus.Fatalf("Failed to load defaults: %v", err)
		}
		speed, err := sim.ParseSpeed(speedFlag)
		if err != nil {
			logrus.Fatalf("Invalid --speed: %v", err)
		}

		d := sim.NewDriver(sim.DriverConfig{
			TickInterval: tickInterval,
			Catalog:      catalog,
			Presets:      presets,
			Seed:         seed,
			Speed:        speed,
		})
		defer d.Close()

		hub := api.NewHub()
		d.Subscribe(hub.Publish)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		go hub.Run(ctx)

		srv := &http.Server{
			Addr:              listenAddr,
			Handler:           api.New(d, hub),
			ReadHeaderTimeout: 10 * time.Second,
		}
		if err := serve(ctx, srv); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
		logrus.Info("Server stopped")
	},
}

// serve runs srv until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", ":8080", "HTTP listen address")
	addClockFlags(serveCmd)
}
