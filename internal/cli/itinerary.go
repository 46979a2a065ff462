package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"travelmap/internal/domain/models"
	"travelmap/internal/engine"
	"travelmap/internal/utils"
)

type itineraryReport struct {
	TripID   string            `json:"trip_id"`
	PlanID   string            `json:"plan_id"`
	Version  uint64            `json:"version"`
	Visits   []models.Visit    `json:"visits"`
	Legs     []models.Traverse `json:"legs"`
	Schedule []engine.Stop     `json:"schedule,omitempty"`
}

var itineraryCmd = &cobra.Command{
	Use:   "itinerary",
	Short: "Show the resolved itinerary of a plan",
	Long: `Resolve the itinerary of a plan: the included visits in travel order
and the traverses connecting them. Dates are shown when the plan has a start date.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		view := sess.View()
		plan := sess.Plan()

		report := itineraryReport{
			TripID:  sess.Key.TripID,
			PlanID:  sess.Key.PlanID,
			Version: view.Version(),
			Visits:  view.Itinerary(),
			Legs:    view.Legs(),
		}
		if plan.StartDate != "" {
			if report.Schedule, err = view.Schedule(); err != nil {
				return err
			}
		}
		if jsonOutput {
			return outputJSON(out(cmd), report)
		}

		w := out(cmd)
		PrintSection(w, fmt.Sprintf("%s / %s", sess.Trip().Name, plan.Name))
		if len(report.Visits) == 0 {
			PrintEmptyState(w, "No visits included")
			return nil
		}

		state := view.State()
		headers := []string{"#", "Place", "Nights", "Leg"}
		if report.Schedule != nil {
			headers = []string{"#", "Arrival", "Place", "Nights", "Leg"}
		}
		rows := make([][]string, 0, len(report.Visits))
		for i, visit := range report.Visits {
			place, _ := state.Trip.Places.Get(visit.PlaceID)
			leg := ""
			if i < len(report.Legs) {
				route, _ := state.Trip.Routes.Get(report.Legs[i].RouteID)
				leg = legLabel(route)
			}
			row := []string{strconv.Itoa(i + 1), place.Name, strconv.Itoa(visit.Nights), leg}
			if report.Schedule != nil {
				row = append([]string{row[0], utils.FormatDate(report.Schedule[i].Arrival)}, row[1:]...)
			}
			rows = append(rows, row)
		}
		PrintTable(w, headers, rows)
		fmt.Fprintln(w)
		PrintLabelValue(w, "Version", strconv.FormatUint(report.Version, 10))
		return nil
	},
}

func legLabel(r models.Route) string {
	mode := string(r.Type)
	if mode == "" {
		mode = "none"
	}
	if r.Distance > 0 {
		return fmt.Sprintf("%s %.0f km", mode, r.Distance)
	}
	return mode
}
