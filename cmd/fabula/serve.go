package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fabulark/fabula"
	"github.com/fabulark/fabula/internal/cli"
	"github.com/fabulark/fabula/internal/metrics"
	"github.com/fabulark/fabula/internal/presentation/tui"
	httpAdapter "github.com/fabulark/fabula/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP editor server",
	Long:  `Starts the editor in server mode, exposing story CRUD, the Mermaid graph export and the generation stream over a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		collector := metrics.NewCollector("fabula")

		editor, err := cli.NewEditor(context.Background(), editorOptions(cmd),
			fabula.WithObserver(collector))
		if err != nil {
			fmt.Printf("Error initializing fabula: %v\n", err)
			os.Exit(1)
		}

		logger := cli.NewLogger(mustBool(cmd, "debug"))
		handler := httpAdapter.NewHandler(editor,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithMetricsHandler(collector.Handler()),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			tui.PrintBanner(strings.TrimSpace(fabula.Version))
			fmt.Printf("Starting Fabula Server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			// Error when starting HTTP server.
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}

			// Persist the collection before exiting.
			if err := editor.Close(ctx); err != nil {
				fmt.Printf("Error saving stories: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Fabula Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}
