package models

// Trip owns the Place, Route and Country pools shared by its Plans.
type Trip struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}

// Plan is one selection of Visits and Traverses over a Trip.
// StartVisitID names the Visit the itinerary starts from.
type Plan struct {
	ID           string  `json:"id" validate:"required"`
	Name         string  `json:"name"`
	StartDate    string  `json:"start_date"`
	Note         string  `json:"note"`
	Priority     float64 `json:"priority"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Zoom         float64 `json:"zoom"`
	TripID       string  `json:"trip_id" validate:"required"`
	StartVisitID string  `json:"start_visit_id"`
}

type Country struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name"`
}
