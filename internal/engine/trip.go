package engine

import (
	"slices"

	"travelmap/internal/domain/models"
)

// Trip owns the Place, Route and Country pools plus their one-time expenses.
type Trip struct {
	Record       models.Trip
	Places       Table[models.Place]
	Routes       Table[models.Route]
	Countries    Table[models.Country]
	Activities   Table[models.Activity]
	PlaceNotes   Table[models.PlaceNote]
	CountryNotes Table[models.CountryNote]
	RouteNotes   Table[models.RouteNote]
}

func newTrip(s models.Snapshot) Trip {
	return Trip{
		Record:       s.Trip,
		Places:       NewTable(s.Places, func(p models.Place) string { return p.ID }),
		Routes:       NewTable(s.Routes, func(r models.Route) string { return r.ID }),
		Countries:    NewTable(s.Countries, func(c models.Country) string { return c.ID }),
		Activities:   NewTable(s.Activities, func(a models.Activity) string { return a.ID }),
		PlaceNotes:   NewTable(s.PlaceNotes, func(n models.PlaceNote) string { return n.ID }),
		CountryNotes: NewTable(s.CountryNotes, func(n models.CountryNote) string { return n.ID }),
		RouteNotes:   NewTable(s.RouteNotes, func(n models.RouteNote) string { return n.ID }),
	}
}

// CountryPlaces returns the Places whose country_id matches. Membership is
// derived, never stored.
func (t Trip) CountryPlaces(countryID string) []models.Place {
	return t.Places.Filter(func(p models.Place) bool { return p.CountryID == countryID })
}

// CountryIDs lists the distinct country ids carried by Places, including ""
// for Places without a country.
func (t Trip) CountryIDs() []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range t.Places.Values() {
		if !seen[p.CountryID] {
			seen[p.CountryID] = true
			out = append(out, p.CountryID)
		}
	}
	slices.Sort(out)
	return out
}

func (t Trip) routeCountries(r models.Route) (string, string) {
	src, _ := t.Places.Get(r.SourceID)
	dst, _ := t.Places.Get(r.TargetID)
	return src.CountryID, dst.CountryID
}

func (t Trip) IsCrossCountry(r models.Route) bool {
	src, dst := t.routeCountries(r)
	return src != dst
}

// CountryRoutes returns Routes with both endpoints inside the country.
func (t Trip) CountryRoutes(countryID string) []models.Route {
	return t.Routes.Filter(func(r models.Route) bool {
		src, dst := t.routeCountries(r)
		return src == countryID && dst == countryID
	})
}

// PlaceRoutes returns Routes starting or ending at the Place.
func (t Trip) PlaceRoutes(placeID string) []models.Route {
	return t.Routes.Filter(func(r models.Route) bool {
		return r.SourceID == placeID || r.TargetID == placeID
	})
}

func (t Trip) PlaceActivities(placeID string) []models.Activity {
	return t.Activities.Filter(func(a models.Activity) bool { return a.PlaceID == placeID })
}

func (t Trip) PlaceNotesOf(placeID string) []models.PlaceNote {
	return t.PlaceNotes.Filter(func(n models.PlaceNote) bool { return n.PlaceID == placeID })
}

func (t Trip) CountryNotesOf(countryID string) []models.CountryNote {
	return t.CountryNotes.Filter(func(n models.CountryNote) bool { return n.CountryID == countryID })
}

func (t Trip) RouteNotesOf(routeID string) []models.RouteNote {
	return t.RouteNotes.Filter(func(n models.RouteNote) bool { return n.RouteID == routeID })
}
