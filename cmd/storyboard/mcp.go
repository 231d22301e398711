package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/storyboard"
	"github.com/aretw0/storyboard/internal/cli"
	"github.com/aretw0/storyboard/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [document...]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the Storyboard engine as an MCP Server.
AI agents can compute timelines, sample frames and inspect states as tools.
Documents given as arguments are imported before serving.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Run: func(cmd *cobra.Command, args []string) {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		cfg, logger, err := setup(cmd)
		if err != nil {
			log.Fatalf("Error loading configuration: %v", err)
		}
		slog.SetDefault(logger)

		engine, err := cli.CreateEngine(cfg, logger, cli.Manual())
		if err != nil {
			log.Fatalf("Error initializing storyboard: %v", err)
		}
		defer engine.Close()

		for _, path := range args {
			id, err := cli.OpenArtboard(cmd.Context(), engine, path)
			if err != nil {
				log.Fatalf("Error loading %s: %v", path, err)
			}
			slog.Info("Artboard loaded", "artboard", id)
		}

		srv := mcp.NewServer(engine, storyboard.Version, mcp.WithLogger(logger))

		switch transport {
		case "stdio":
			log.SetOutput(os.Stderr)
			slog.Info("Starting Storyboard MCP Server (Stdio)...")
			if err := srv.ServeStdio(); err != nil {
				slog.Error("MCP Server execution failed", "error", err)
				os.Exit(1)
			}
		case "sse":
			slog.Info("Starting Storyboard MCP Server (SSE)", "port", port)

			// Create a context that cancels on interrupt signal
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				if err != http.ErrServerClosed {
					slog.Error("MCP Server execution failed", "error", err)
					os.Exit(1)
				}
			}
			slog.Info("MCP Server stopped gracefully")
		default:
			log.Fatalf("Unknown transport: %s. Supported: stdio, sse", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().Int("port", 8080, "Port to listen on (only for SSE)")
}
