package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/pdf"
)

var (
	extractOutputFile string
	extractParse      bool
)

var extractCmd = &cobra.Command{
	Use:   "extract [file.pdf]",
	Short: "Extract invoice XML from a hybrid PDF",
	Long: `Extract the factur-x.xml attachment from a hybrid invoice PDF.

By default the raw XML is written out; with --parse the invoice is
parsed and printed as JSON instead.

Examples:
  facturx extract facturx.pdf
  facturx extract facturx.pdf -o invoice.xml
  facturx extract facturx.pdf --parse`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutputFile, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractParse, "parse", false, "Parse the XML and print the invoice as JSON")
}

func runExtract(cmd *cobra.Command, args []string) error {
	xml, err := pdf.ExtractXML(args[0])
	if err != nil {
		return err
	}

	writer := os.Stdout
	if extractOutputFile != "" {
		f, err := os.Create(extractOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	if !extractParse {
		_, err = writer.Write(xml)
		return err
	}

	inv, err := cii.Parse(xml)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ParseResult{
		File:    args[0],
		Profile: inv.Profile().String(),
		Invoice: inv,
	})
}
