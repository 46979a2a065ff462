package cli

import (
	"context"
	"strings"
	"time"

	"github.com/spf13/cobra"

	intconfig "travelmap/internal/config"
	"travelmap/internal/repositories"
)

var migrateDSN string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the missing database tables",
	Long: `Connect to the MySQL database configured by DB_DSN (or the DB_* variables
and .env) and create every table that does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn := migrateDSN
		if dsn == "" {
			dsn = intconfig.LoadEnv().DBDSN
		}
		if err := intconfig.EnsureDB(dsn); err != nil {
			return err
		}
		defer intconfig.CloseDB()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		created, err := repositories.EnsureSchema(ctx, intconfig.DB)
		if err != nil {
			return err
		}
		if jsonOutput {
			return outputJSON(out(cmd), map[string]any{"created": created})
		}
		w := out(cmd)
		if len(created) == 0 {
			PrintEmptyState(w, "Schema is up to date")
			return nil
		}
		PrintLabelValue(w, "Created", strings.Join(created, ", "))
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateDSN, "dsn", "", "MySQL DSN (default: from environment)")
}
