package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
)

func TestAddPlaceWithNewCountry(t *testing.T) {
	s := newFixture().state()

	_, err := AddPlace(s, models.Place{ID: "rome", CountryID: "IT"}, nil)
	assert.True(t, domain.IsNotFound(err))

	next, err := AddPlace(s, models.Place{ID: "rome", CountryID: "IT"}, &models.Country{ID: "IT", Name: "Italy"})
	require.NoError(t, err)
	p, ok := next.Trip.Places.Get("rome")
	require.True(t, ok)
	assert.Equal(t, "trip", p.TripID)
	assert.True(t, next.Trip.Countries.Has("IT"))

	_, err = AddPlace(next, models.Place{ID: "rome"}, nil)
	assert.True(t, domain.IsConflict(err))

	_, err = AddPlace(s, models.Place{ID: "x", TripID: "other"}, nil)
	assert.True(t, domain.IsValidation(err))
}

func TestUpdatePlaceMoveKeepsEmptiedCountry(t *testing.T) {
	f := newFixture().country("FR", "France").place("paris", "FR", 100, 0, 0).visit("v1", "paris", 1)
	f.snap.CountryNotes = []models.CountryNote{
		{ID: "visa", CountryID: "FR", TripID: "trip", Expense: models.Expense{EstimatedCost: ptr(25.0), Included: true}},
	}
	s := f.state()
	assert.Equal(t, 125.0, resolve(t, s).PlanCost().Estimated.Total())

	moved, p, err := UpdatePlace(s, "paris", models.PlacePatch{CountryID: ptr("DE")}, &models.Country{ID: "DE", Name: "Germany"})
	require.NoError(t, err)
	assert.Equal(t, "DE", p.CountryID)
	assert.True(t, moved.Trip.Countries.Has("FR"))
	assert.Len(t, moved.Trip.CountryNotesOf("FR"), 1)

	v := resolve(t, moved)
	assert.True(t, v.CountryCost("FR").IsZero())
	assert.Equal(t, 100.0, v.PlanCost().Estimated.Total())

	back, _, err := UpdatePlace(moved, "paris", models.PlacePatch{CountryID: ptr("FR")}, nil)
	require.NoError(t, err)
	assert.Equal(t, 125.0, resolve(t, back).PlanCost().Estimated.Total())
}

func TestAddRouteAndTraverseCheckReferences(t *testing.T) {
	s := newFixture().
		place("p1", "", 0, 0, 0).place("p2", "", 0, 0, 0).
		visit("v1", "p1", 1).visit("v2", "p2", 1).
		state()

	_, err := AddRoute(s, models.Route{ID: "r", SourceID: "p1", TargetID: "ghost"})
	assert.True(t, domain.IsNotFound(err))

	s, err = AddRoute(s, models.Route{ID: "r", SourceID: "p1", TargetID: "p2", Type: models.RouteDriving})
	require.NoError(t, err)

	_, err = AddTraverse(s, models.Traverse{ID: "t", SourceVisitID: "v1", TargetVisitID: "v2", RouteID: "nope"})
	assert.True(t, domain.IsNotFound(err))
	_, err = AddTraverse(s, models.Traverse{ID: "t", SourceVisitID: "v1", TargetVisitID: "v2", RouteID: "r", RentUntil: ptr("v9")})
	assert.True(t, domain.IsNotFound(err))

	s, err = AddTraverse(s, models.Traverse{ID: "t", SourceVisitID: "v1", TargetVisitID: "v2", RouteID: "r"})
	require.NoError(t, err)
	v := resolve(t, s)
	assert.Equal(t, []string{"v1", "v2"}, visitIDs(v.Itinerary()))
}

func TestUpdateVisitExclusionChangesItinerary(t *testing.T) {
	s := branching().state()

	next, visit, err := UpdateVisit(s, "v2", models.VisitPatch{Included: ptr(false)})
	require.NoError(t, err)
	assert.False(t, visit.Included)
	assert.Equal(t, []string{"v1", "v4"}, visitIDs(resolve(t, next).Itinerary()))
	assert.Equal(t, []string{"v1", "v2", "v3"}, visitIDs(resolve(t, s).Itinerary()))

	_, _, err = UpdateVisit(s, "v2", models.VisitPatch{Nights: ptr(-1)})
	assert.True(t, domain.IsValidation(err))
}

func TestUpdateTraverseRentUntil(t *testing.T) {
	s := roadTrip().state()

	next, tr, err := UpdateTraverse(s, "t1", models.TraversePatch{RentUntil: ptr("v3")})
	require.NoError(t, err)
	assert.Equal(t, "v3", tr.RentUntilID())
	src, ok := resolve(t, next).TraverseRental("t2")
	require.True(t, ok)
	assert.Equal(t, "t1", src.ID)

	_, _, err = UpdateTraverse(s, "t1", models.TraversePatch{RentUntil: ptr("ghost")})
	assert.True(t, domain.IsNotFound(err))
}

func TestSetStartVisitAndDate(t *testing.T) {
	s := branching().state()

	_, err := SetStartVisit(s, "ghost")
	assert.True(t, domain.IsNotFound(err))

	next, err := SetStartVisit(s, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", resolve(t, next).Itinerary()[0].ID)

	_, err = SetStartDate(s, "June 1st")
	assert.True(t, domain.IsValidation(err))
	next, err = SetStartDate(s, "2026-07-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-07-01", next.Plan.Record.StartDate)
}

func TestExpenseUpdatesFeedCosts(t *testing.T) {
	s := branching().state()
	s, err := AddActivity(s, models.Activity{ID: "museum", PlaceID: "p2", Expense: models.Expense{EstimatedCost: ptr(18.0)}})
	require.NoError(t, err)
	assert.Zero(t, resolve(t, s).VisitCost("v2").Estimated.Activities)

	s, a, err := UpdateActivity(s, "museum", models.ExpensePatch{Included: ptr(true)})
	require.NoError(t, err)
	assert.True(t, a.Included)
	assert.Equal(t, 18.0, resolve(t, s).VisitCost("v2").Estimated.Activities)

	_, err = AddCountryNote(s, models.CountryNote{ID: "n", CountryID: "XX"})
	assert.True(t, domain.IsNotFound(err))
	_, err = AddRouteNote(s, models.RouteNote{ID: "n", RouteID: "r12", Description: "window seat"})
	require.NoError(t, err)
}
