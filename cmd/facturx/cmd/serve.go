package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for parsing and validating invoices.

The API provides endpoints for:
  - POST /api/v1/parse     - Parse invoice XML
  - POST /api/v1/validate  - Validate invoice XML
  - POST /api/v1/extract   - Extract the invoice from a hybrid PDF
  - GET  /health           - Health check

Examples:
  # Start server on default port
  facturx serve

  # Start on a custom port in debug mode
  facturx serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:      serverAddr,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		Debug:        serverDebug,
		Logger:       newLogger(),
	}

	srv := server.NewServer(config)
	return srv.Run()
}
