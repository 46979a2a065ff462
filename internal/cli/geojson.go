package cli

import (
	"github.com/spf13/cobra"
)

var markersOnly bool

var geojsonCmd = &cobra.Command{
	Use:   "geojson",
	Short: "Export the map geometry of a plan as GeoJSON",
	Long: `Export the drawn routes of a plan as a GeoJSON FeatureCollection.
With --markers the place markers are exported instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		view := sess.View()
		if markersOnly {
			return outputJSON(out(cmd), view.PlaceMarkers())
		}
		return outputJSON(out(cmd), view.Geometry())
	},
}

func init() {
	geojsonCmd.Flags().BoolVar(&markersOnly, "markers", false, "Export place markers instead of routes")
}
