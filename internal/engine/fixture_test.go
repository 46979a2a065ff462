package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"travelmap/internal/domain/models"
)

type fixture struct {
	snap models.Snapshot
}

func newFixture() *fixture {
	return &fixture{snap: models.Snapshot{
		Trip: models.Trip{ID: "trip", Name: "Europe"},
		Plan: models.Plan{ID: "plan", TripID: "trip", StartDate: "2026-06-01"},
	}}
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) country(id, name string) *fixture {
	f.snap.Countries = append(f.snap.Countries, models.Country{ID: id, Name: name})
	return f
}

func (f *fixture) place(id, country string, accommodation, food, misc float64) *fixture {
	n := float64(len(f.snap.Places))
	f.snap.Places = append(f.snap.Places, models.Place{
		ID:                id,
		Name:              id,
		Lat:               45 + n,
		Lng:               2 + n*2,
		CountryID:         country,
		TripID:            "trip",
		AccommodationCost: accommodation,
		FoodCost:          food,
		MiscellaneousCost: misc,
	})
	return f
}

func (f *fixture) route(id, src, dst string, typ models.RouteType, estimated float64, nights int) *fixture {
	f.snap.Routes = append(f.snap.Routes, models.Route{
		ID:            id,
		SourceID:      src,
		TargetID:      dst,
		Type:          typ,
		EstimatedCost: ptr(estimated),
		Nights:        nights,
		TripID:        "trip",
	})
	return f
}

func (f *fixture) visit(id, place string, nights int) *fixture {
	f.snap.Visits = append(f.snap.Visits, models.Visit{ID: id, PlaceID: place, PlanID: "plan", Nights: nights, Included: true})
	return f
}

func (f *fixture) excluded(id, place string, nights int) *fixture {
	f.snap.Visits = append(f.snap.Visits, models.Visit{ID: id, PlaceID: place, PlanID: "plan", Nights: nights})
	return f
}

func (f *fixture) traverse(id, src, dst, route string, priority float64) *fixture {
	f.snap.Traverses = append(f.snap.Traverses, models.Traverse{
		ID: id, SourceVisitID: src, TargetVisitID: dst, RouteID: route, PlanID: "plan", Priority: priority,
	})
	return f
}

// rental marks an existing traverse as the start of a rental ending at until.
func (f *fixture) rental(id, until string, withBed bool) *fixture {
	for i := range f.snap.Traverses {
		if f.snap.Traverses[i].ID == id {
			f.snap.Traverses[i].RentUntil = ptr(until)
			f.snap.Traverses[i].IncludesAccommodation = withBed
		}
	}
	return f
}

func (f *fixture) start(visitID string) *fixture {
	f.snap.Plan.StartVisitID = visitID
	return f
}

func (f *fixture) state() State {
	return NewState(f.snap)
}

func (f *fixture) view(t *testing.T) *View {
	t.Helper()
	v, err := Resolve(f.state())
	require.NoError(t, err)
	return v
}

func resolve(t *testing.T, s State) *View {
	t.Helper()
	v, err := Resolve(s)
	require.NoError(t, err)
	return v
}

func visitIDs(visits []models.Visit) []string {
	out := make([]string, 0, len(visits))
	for _, v := range visits {
		out = append(out, v.ID)
	}
	return out
}

func traverseIDs(legs []models.Traverse) []string {
	out := make([]string, 0, len(legs))
	for _, t := range legs {
		out = append(out, t.ID)
	}
	return out
}
