package models

// Snapshot is the flat record set of one Trip and one of its Plans, exactly
// as storage hands it over.
type Snapshot struct {
	Trip         Trip          `json:"trip"`
	Plan         Plan          `json:"plan"`
	Countries    []Country     `json:"countries"`
	Places       []Place       `json:"places"`
	Routes       []Route       `json:"routes"`
	Visits       []Visit       `json:"visits"`
	Traverses    []Traverse    `json:"traverses"`
	Activities   []Activity    `json:"activities"`
	PlaceNotes   []PlaceNote   `json:"place_notes"`
	CountryNotes []CountryNote `json:"country_notes"`
	RouteNotes   []RouteNote   `json:"route_notes"`
}

// Cascade lists every id a removal took out of the tables, grouped by
// entity kind, plus the references it had to clear on surviving rows.
type Cascade struct {
	Places       []string `json:"places,omitempty"`
	Routes       []string `json:"routes,omitempty"`
	Countries    []string `json:"countries,omitempty"`
	Visits       []string `json:"visits,omitempty"`
	Traverses    []string `json:"traverses,omitempty"`
	Activities   []string `json:"activities,omitempty"`
	PlaceNotes   []string `json:"place_notes,omitempty"`
	CountryNotes []string `json:"country_notes,omitempty"`
	RouteNotes   []string `json:"route_notes,omitempty"`

	// RentUntilCleared holds surviving traverses whose rent_until named a
	// removed visit.
	RentUntilCleared []string `json:"rent_until_cleared,omitempty"`
	StartCleared     bool     `json:"start_cleared,omitempty"`
}

func (c Cascade) Empty() bool {
	return len(c.Places) == 0 && len(c.Routes) == 0 && len(c.Countries) == 0 &&
		len(c.Visits) == 0 && len(c.Traverses) == 0 && len(c.Activities) == 0 &&
		len(c.PlaceNotes) == 0 && len(c.CountryNotes) == 0 && len(c.RouteNotes) == 0 &&
		len(c.RentUntilCleared) == 0 && !c.StartCleared
}
