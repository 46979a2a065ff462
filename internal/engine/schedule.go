package engine

import (
	"time"

	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
	"travelmap/internal/utils"
)

// Stop is one itinerary Visit placed on the calendar.
type Stop struct {
	Visit     models.Visit     `json:"visit"`
	Place     models.Place     `json:"place"`
	Arrival   time.Time        `json:"arrival"`
	Departure time.Time        `json:"departure"`
	Leg       *models.Traverse `json:"leg,omitempty"`
	Route     *models.Route    `json:"route,omitempty"`
}

// Schedule dates the itinerary from the plan start date. Departure is
// arrival plus nights; the next arrival adds the connecting Route's nights.
func (v *View) Schedule() ([]Stop, error) {
	day, err := utils.ParseDate(v.state.Plan.Record.StartDate)
	if err != nil {
		return nil, domain.ValidationError{Field: "start_date", Msg: "must be YYYY-MM-DD", Err: err}
	}
	stops := make([]Stop, 0, len(v.it.visits))
	for i, visit := range v.it.visits {
		place, _ := v.state.Trip.Places.Get(visit.PlaceID)
		stop := Stop{
			Visit:     visit,
			Place:     place,
			Arrival:   day,
			Departure: day.AddDate(0, 0, visit.Nights),
		}
		day = stop.Departure
		if i < len(v.it.legs) {
			leg := v.it.legs[i]
			route, _ := v.state.Trip.Routes.Get(leg.RouteID)
			stop.Leg, stop.Route = &leg, &route
			day = day.AddDate(0, 0, route.Nights)
		}
		stops = append(stops, stop)
	}
	return stops, nil
}
