package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"travelmap/internal/domain/models"
	"travelmap/internal/engine"
	"travelmap/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the itinerary of a plan as PDF.
type DocsService struct {
	Trips     *TripService
	RequestID string
	Loader    func(ctx context.Context, tripID, planID string) (*engine.View, error)
}

func (s DocsService) GenerateItinerary(ctx context.Context, tripID, planID string) ([]byte, string, error) {
	view, err := s.loadView(ctx, tripID, planID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_itinerary", fmt.Sprintf("trip=%s plan=%s version=%d", tripID, planID, view.Version()))
	return BuildItineraryPDF(view)
}

func (s DocsService) loadView(ctx context.Context, tripID, planID string) (*engine.View, error) {
	if s.Loader != nil {
		return s.Loader(ctx, tripID, planID)
	}
	sess, err := s.Trips.Open(ctx, tripID, planID)
	if err != nil {
		return nil, err
	}
	return sess.View(), nil
}

type docRow struct {
	Date   string
	Place  string
	Nights int
	Cost   models.CostComparison
	Leg    string
}

// BuildItineraryPDF lays out the schedule with per-visit costs and the
// category totals of the plan.
func BuildItineraryPDF(view *engine.View) ([]byte, string, error) {
	state := view.State()
	trip, plan := state.Trip.Record, state.Plan.Record
	rows := itineraryRows(view)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Itinerary", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ITINERARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	header := []string{
		fmt.Sprintf("Trip       : %s", safe(trip.Name, trip.ID)),
		fmt.Sprintf("Plan       : %s", safe(plan.Name, plan.ID)),
		fmt.Sprintf("Start date : %s", safe(plan.StartDate, "-")),
		fmt.Sprintf("Printed    : %s", utils.FormatDateTime(utils.NowUTC())),
	}
	for _, line := range header {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	widths := []float64{26, 62, 16, 38, 38}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Date", "Place", "Nights", "Estimated", "Actual"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(widths[0], 7, r.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, truncate(r.Place, 34), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", r.Nights), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, utils.FormatAmount(r.Cost.Estimated.Total()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 7, utils.FormatAmount(r.Cost.Actual.Total()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
		if r.Leg != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.CellFormat(0, 6, "   "+r.Leg, "", 0, "L", false, 0, "")
			pdf.Ln(-1)
			pdf.SetFont("Helvetica", "", 10)
		}
	}
	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 7, "Belum ada kunjungan dalam itinerary.")
		pdf.Ln(7)
	}

	total := view.PlanCost()
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Totals")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	categories := []struct {
		name     string
		est, act float64
	}{
		{"Accommodation", total.Estimated.Accommodation, total.Actual.Accommodation},
		{"Transport", total.Estimated.Transport, total.Actual.Transport},
		{"Food", total.Estimated.Food, total.Actual.Food},
		{"Activities", total.Estimated.Activities, total.Actual.Activities},
		{"Miscellaneous", total.Estimated.Miscellaneous, total.Actual.Miscellaneous},
	}
	for _, c := range categories {
		pdf.Cell(0, 6, fmt.Sprintf("%-14s %14s / %s", c.name, utils.FormatAmount(c.est), utils.FormatAmount(c.act)))
		pdf.Ln(6)
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s (actual %s)", utils.FormatAmount(total.Estimated.Total()), utils.FormatAmount(total.Actual.Total())))
	pdf.Ln(8)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("ITINERARY_%s_%s.pdf", utils.SafeFilenamePart(safe(trip.Name, trip.ID)), utils.SafeFilenamePart(safe(plan.Name, plan.ID)))
	return buf.Bytes(), filename, nil
}

// itineraryRows dates each Visit when the plan has a usable start date.
func itineraryRows(view *engine.View) []docRow {
	stops, err := view.Schedule()
	if err != nil {
		stops = nil
	}
	state := view.State()
	legs := view.Legs()
	var rows []docRow
	for i, visit := range view.Itinerary() {
		place, _ := state.Trip.Places.Get(visit.PlaceID)
		row := docRow{
			Date:   "-",
			Place:  safe(place.Name, place.ID),
			Nights: visit.Nights,
			Cost:   view.VisitCost(visit.ID),
		}
		if i < len(stops) {
			row.Date = utils.FormatDate(stops[i].Arrival)
		}
		if i < len(legs) {
			route, _ := state.Trip.Routes.Get(legs[i].RouteID)
			cost := view.TraverseCost(legs[i].ID)
			row.Leg = fmt.Sprintf("-> %s, %s km, %s", safe(string(route.Type), "none"), utils.FormatAmount(route.Distance), utils.FormatAmount(cost.Estimated.Total()))
			if rental, ok := view.TraverseRental(legs[i].ID); ok {
				row.Leg += " (rental " + rental.ID + ")"
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "."
}
