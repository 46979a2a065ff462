package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"travelmap/internal/services"
)

var pdfOut string

var pdfCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Render the itinerary of a plan as PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		data, name, err := services.BuildItineraryPDF(sess.View())
		if err != nil {
			return err
		}
		if pdfOut != "" {
			name = pdfOut
		}
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if jsonOutput {
			return outputJSON(out(cmd), map[string]any{"file": name, "bytes": len(data)})
		}
		PrintLabelValue(out(cmd), "Written", name)
		return nil
	},
}

func init() {
	pdfCmd.Flags().StringVarP(&pdfOut, "out", "o", "", "Output file (default: ITINERARY_<trip>_<plan>.pdf)")
}
