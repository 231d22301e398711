package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard"
	"github.com/aretw0/storyboard/internal/cli"
	"github.com/aretw0/storyboard/internal/metrics"
	httpAdapter "github.com/aretw0/storyboard/pkg/adapters/http"
	"github.com/aretw0/storyboard/pkg/domain"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts the Storyboard engine in server mode, exposing the studio, timelines and
playback control as a JSON API over HTTP, with playback events streamed over SSE.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logger, err := setup(cmd)
		if err != nil {
			fmt.Printf("Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port, _ = cmd.Flags().GetInt("port")
		}
		frames, _ := cmd.Flags().GetBool("frames")

		collector := metrics.New(metrics.WithLogger(logger))
		streams := httpAdapter.NewStreamManager()
		streams.SetLogger(logger)
		streams.Frames = frames

		engine, err := cli.CreateEngine(cfg, logger, cli.WithHooks(collector.Hooks(streams.Hooks(domain.PlaybackHooks{}))))
		if err != nil {
			fmt.Printf("Error initializing storyboard: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close()

		handler := httpAdapter.NewHandler(engine,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetrics(collector.Handler()),
			httpAdapter.WithStreams(streams),
			httpAdapter.WithVersion(storyboard.Version),
		)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Storyboard Server on %s\n", srv.Addr)
			fmt.Printf("Store backend: %s\n", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Storyboard Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on (overrides server.port)")
	serveCmd.Flags().Bool("frames", false, "Stream per-frame events over SSE")
}
