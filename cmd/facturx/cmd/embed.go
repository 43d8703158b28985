package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/pdf"
)

var embedOutputFile string

var embedCmd = &cobra.Command{
	Use:   "embed [invoice.xml] [input.pdf]",
	Short: "Attach invoice XML to a PDF",
	Long: `Attach a Factur-X XML file to a PDF as the factur-x.xml embedded
file, producing a hybrid invoice. The XML is validated before it is
attached.

Examples:
  facturx embed invoice.xml input.pdf -o facturx.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runEmbed,
}

func init() {
	rootCmd.AddCommand(embedCmd)

	embedCmd.Flags().StringVarP(&embedOutputFile, "output", "o", "", "Output PDF file (required)")
	embedCmd.MarkFlagRequired("output")
}

func runEmbed(cmd *cobra.Command, args []string) error {
	log := newLogger()
	xmlPath, pdfPath := args[0], args[1]

	xml, err := os.ReadFile(xmlPath)
	if err != nil {
		return fmt.Errorf("failed to read invoice: %w", err)
	}

	inv, err := cii.Parse(xml)
	if err != nil {
		return fmt.Errorf("%s: %w", xmlPath, err)
	}
	log.Debug().
		Str("profile", inv.Profile().String()).
		Str("relationship", pdf.Relationship(inv.Profile())).
		Msg("invoice accepted")

	if err := pdf.EmbedXML(pdfPath, embedOutputFile, xml); err != nil {
		return err
	}

	log.Info().Str("output", embedOutputFile).Msg("invoice attached")
	return nil
}
