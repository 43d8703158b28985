package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "facturx",
	Short: "Work with Factur-X / ZUGFeRD electronic invoices",
	Long: `facturx reads, validates, and writes Factur-X (ZUGFeRD) electronic
invoices in the UN/CEFACT Cross Industry Invoice syntax.

Supported profiles:
  MINIMUM, BASIC WL, BASIC, EN 16931 (COMFORT)

Examples:
  # Parse an invoice XML to JSON
  facturx parse invoice.xml

  # Validate one or more invoices
  facturx validate *.xml

  # Attach invoice XML to a PDF
  facturx embed invoice.xml input.pdf -o facturx.pdf

  # Pull the XML back out of a hybrid PDF
  facturx extract facturx.pdf`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, table)")
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
