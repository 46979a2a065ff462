package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	jsonOutput bool
	dumpFile   string
	tripID     string
	planID     string

	sectionTitleColor = color.New(color.FgBlue, color.Bold)
)

// rootCmd is the root command for travelmapctl.
var rootCmd = &cobra.Command{
	Use:     "travelmapctl",
	Version: "dev",
	Short:   "Inspect trip plans offline",
	Long: `travelmapctl resolves the itinerary of a trip plan from a database dump
and reports its schedule, costs and map geometry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&dumpFile, "file", "f", "db.json", "Database dump to read")
	rootCmd.PersistentFlags().StringVar(&tripID, "trip", "", "Trip id (default: first trip)")
	rootCmd.PersistentFlags().StringVar(&planID, "plan", "", "Plan id (default: first plan of the trip)")

	rootCmd.AddGroup(&cobra.Group{ID: "plan", Title: "Plan Reports:"})
	rootCmd.AddGroup(&cobra.Group{ID: "database", Title: "Database:"})

	for _, c := range []*cobra.Command{itineraryCmd, costsCmd, geojsonCmd, pdfCmd} {
		c.GroupID = "plan"
		rootCmd.AddCommand(c)
	}
	migrateCmd.GroupID = "database"
	rootCmd.AddCommand(migrateCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the travelmapctl version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), rootCmd.Version)
		},
	})
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
