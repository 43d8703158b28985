package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
)

var parseOutputFile string

var parseCmd = &cobra.Command{
	Use:   "parse [files...]",
	Short: "Parse invoice XML files",
	Long: `Parse one or more Factur-X XML files and print the structured data.

The declared guideline URN selects the profile; elements above the
declared profile are rejected.

Examples:
  facturx parse invoice.xml
  facturx parse *.xml -o results.json
  facturx parse invoice.xml -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseOutputFile, "output", "o", "", "Output file (default: stdout)")
}

// ParseResult holds the result of parsing a single file
type ParseResult struct {
	File    string        `json:"file"`
	Profile string        `json:"profile,omitempty"`
	Invoice model.Invoice `json:"invoice,omitempty"`
	Error   string        `json:"error,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	log := newLogger()

	results := make([]*ParseResult, 0, len(args))
	for _, file := range args {
		log.Debug().Str("file", file).Msg("parsing")
		results = append(results, parseFile(file))
	}

	writer := os.Stdout
	if parseOutputFile != "" {
		f, err := os.Create(parseOutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		writer = f
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case "table":
		return parseTable(writer, results)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func parseFile(path string) *ParseResult {
	result := &ParseResult{File: path}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result
	}

	inv, err := cii.Parse(data)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Profile = inv.Profile().String()
	result.Invoice = inv
	return result
}

func parseTable(w *os.File, results []*ParseResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tPROFILE\tNUMBER\tDATE\tTOTAL")
	fmt.Fprintln(tw, "----\t-------\t------\t----\t-----")

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(tw, "%s\tERROR: %s\t\t\t\n", r.File, r.Error)
			continue
		}
		min := model.AsMinimum(r.Invoice)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.File,
			r.Profile,
			min.InvoiceNumber,
			min.InvoiceDate.Format("2006-01-02"),
			min.GrandTotal.String(),
		)
	}

	return tw.Flush()
}
