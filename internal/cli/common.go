package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"travelmap/internal/repositories"
	"travelmap/internal/services"
)

// openSession loads the dump named by --file and opens the plan selected by
// --trip and --plan.
func openSession(ctx context.Context) (*services.Session, error) {
	dump, err := repositories.ReadDumpFile(dumpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}
	key, err := dump.DefaultKey(tripID, planID)
	if err != nil {
		return nil, err
	}
	trips := services.NewTripService(repositories.DumpStore{Dump: dump}, services.LogNotifier{}, nil)
	return trips.Open(ctx, key.TripID, key.PlanID)
}

// outputJSON writes a value as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
