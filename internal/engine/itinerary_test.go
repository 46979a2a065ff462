package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
)

func branching() *fixture {
	return newFixture().
		place("p1", "", 10, 0, 0).place("p2", "", 10, 0, 0).
		place("p3", "", 10, 0, 0).place("p4", "", 10, 0, 0).
		route("r12", "p1", "p2", models.RouteFlying, 100, 0).
		route("r23", "p2", "p3", models.RouteFlying, 50, 0).
		route("r14", "p1", "p4", models.RouteFlying, 70, 0).
		visit("v1", "p1", 1).visit("v2", "p2", 1).visit("v3", "p3", 1).visit("v4", "p4", 1).
		traverse("t12", "v1", "v2", "r12", 0).
		traverse("t23", "v2", "v3", "r23", 0).
		traverse("t14", "v1", "v4", "r14", 1)
}

func TestItineraryFollowsLowestPriority(t *testing.T) {
	v := branching().view(t)

	assert.Equal(t, []string{"v1", "v2", "v3"}, visitIDs(v.Itinerary()))
	assert.Equal(t, []string{"t12", "t23"}, traverseIDs(v.Legs()))
	assert.True(t, v.RouteInItinerary("r23"))
	assert.False(t, v.RouteInItinerary("r14"))
	assert.False(t, v.VisitInItinerary("v4"))
	assert.False(t, v.TraverseInItinerary("t14"))
}

func TestItineraryPriorityTieBreaksOnID(t *testing.T) {
	f := branching()
	f.snap.Traverses[2].Priority = 0 // t14 ties with t12
	v := f.view(t)
	assert.Equal(t, []string{"v1", "v2", "v3"}, visitIDs(v.Itinerary()))
}

func TestItineraryTerminatesOnCycle(t *testing.T) {
	v := newFixture().
		place("p1", "", 0, 0, 0).place("p2", "", 0, 0, 0).place("p3", "", 0, 0, 0).
		route("r12", "p1", "p2", models.RouteTrain, 0, 0).
		route("r23", "p2", "p3", models.RouteTrain, 0, 0).
		route("r31", "p3", "p1", models.RouteTrain, 0, 0).
		visit("v1", "p1", 1).visit("v2", "p2", 1).visit("v3", "p3", 1).
		traverse("t12", "v1", "v2", "r12", 0).
		traverse("t23", "v2", "v3", "r23", 0).
		traverse("t31", "v3", "v1", "r31", 0).
		view(t)

	// no root: the lowest id starts the walk and the closing edge is dropped
	assert.Equal(t, []string{"v1", "v2", "v3"}, visitIDs(v.Itinerary()))
	assert.Len(t, v.Legs(), 2)
}

func TestItineraryExplicitStart(t *testing.T) {
	v := branching().start("v2").view(t)
	assert.Equal(t, []string{"v2", "v3"}, visitIDs(v.Itinerary()))

	// a start pointing at an excluded visit falls back to the root
	f := branching().start("v2")
	f.snap.Visits[1].Included = false
	v = f.view(t)
	assert.Equal(t, "v1", v.Itinerary()[0].ID)
}

func TestItineraryExcludedVisitReroutes(t *testing.T) {
	before := branching().view(t)
	require.False(t, before.TraverseCost("t12").IsZero())
	require.False(t, before.VisitCost("v2").IsZero())

	f := branching()
	f.snap.Visits[1].Included = false
	after := f.view(t)

	assert.Equal(t, []string{"v1", "v4"}, visitIDs(after.Itinerary()))
	assert.True(t, after.VisitCost("v2").IsZero())
	assert.True(t, after.TraverseCost("t12").IsZero())
	assert.True(t, after.TraverseCost("t23").IsZero())
	assert.Equal(t, 70.0, after.TraverseCost("t14").Estimated.Transport)
}

func TestItineraryEmptyWhenNothingIncluded(t *testing.T) {
	v := newFixture().
		place("p1", "", 10, 0, 0).
		excluded("v1", "p1", 3).
		view(t)
	assert.Empty(t, v.Itinerary())
	assert.Empty(t, v.Legs())
	assert.True(t, v.PlanCost().IsZero())
}

func TestResolveRejectsDanglingReference(t *testing.T) {
	_, err := Resolve(newFixture().visit("v1", "ghost", 1).state())
	require.Error(t, err)
	assert.True(t, domain.IsIntegrity(err))
	assert.Contains(t, err.Error(), "visit v1 references missing place ghost")

	_, err = Resolve(newFixture().
		place("p1", "", 0, 0, 0).place("p2", "", 0, 0, 0).
		visit("v1", "p1", 1).visit("v2", "p2", 1).
		traverse("t1", "v1", "v2", "nope", 0).
		state())
	assert.True(t, domain.IsIntegrity(err))
}
