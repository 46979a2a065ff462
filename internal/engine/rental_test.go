package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelmap/internal/domain/models"
)

// roadTrip is v1 -> v2 -> v3 -> v4 -> v5 with a mix of driving and flying.
func roadTrip() *fixture {
	return newFixture().
		place("p1", "", 100, 0, 0).place("p2", "", 100, 0, 0).place("p3", "", 100, 0, 0).
		place("p4", "", 100, 0, 0).place("p5", "", 100, 0, 0).
		route("r1", "p1", "p2", models.RouteDriving, 40, 0).
		route("r2", "p2", "p3", models.RouteDriving, 0, 0).
		route("r3", "p3", "p4", models.RouteDriving, 0, 0).
		route("r4", "p4", "p5", models.RouteFlying, 120, 0).
		visit("v1", "p1", 1).visit("v2", "p2", 2).visit("v3", "p3", 1).
		visit("v4", "p4", 1).visit("v5", "p5", 1).
		traverse("t1", "v1", "v2", "r1", 0).
		traverse("t2", "v2", "v3", "r2", 0).
		traverse("t3", "v3", "v4", "r3", 0).
		traverse("t4", "v4", "v5", "r4", 0)
}

func TestRentalWindowCoversLegsUntilEnd(t *testing.T) {
	v := roadTrip().rental("t1", "v4", false).view(t)

	for _, id := range []string{"t1", "t2", "t3"} {
		src, ok := v.TraverseRental(id)
		require.True(t, ok, id)
		assert.Equal(t, "t1", src.ID, id)
	}
	_, ok := v.TraverseRental("t4")
	assert.False(t, ok)

	for _, id := range []string{"v1", "v2", "v3"} {
		src, ok := v.VisitRental(id)
		require.True(t, ok, id)
		assert.Equal(t, "t1", src.ID, id)
	}
	_, ok = v.VisitRental("v4")
	assert.False(t, ok)
	_, ok = v.VisitRental("v5")
	assert.False(t, ok)
}

func TestRentalCostPerLeg(t *testing.T) {
	v := roadTrip().rental("t1", "v4", false).view(t)

	// pick-up day plus the night at v1
	assert.Equal(t, 80.0, v.TraverseCost("t1").Estimated.Transport)
	// two nights at v2
	assert.Equal(t, 80.0, v.TraverseCost("t2").Estimated.Transport)
	assert.Equal(t, 40.0, v.TraverseCost("t3").Estimated.Transport)
	assert.Equal(t, 120.0, v.TraverseCost("t4").Estimated.Transport)
	// no bed in the car, lodging is still paid
	assert.Equal(t, 200.0, v.VisitCost("v2").Estimated.Accommodation)
}

func TestRentalBookedDaysAndCostOverride(t *testing.T) {
	f := roadTrip().rental("t1", "v3", true)
	f.snap.Traverses[0].BookedDays = 5
	f.snap.Traverses[1].Cost = 55
	v := f.view(t)

	c := v.TraverseCost("t1")
	assert.Equal(t, models.CostBreakdown{Transport: 100, Accommodation: 100}, c.Estimated)
	assert.Equal(t, c.Estimated, c.Actual)

	c = v.TraverseCost("t2")
	assert.Equal(t, models.CostBreakdown{Transport: 40, Accommodation: 40}, c.Estimated)
	assert.Equal(t, models.CostBreakdown{Transport: 27.5, Accommodation: 27.5}, c.Actual)

	// rental ended at v3, t3 is plain driving again
	assert.True(t, v.TraverseCost("t3").IsZero())
}

func TestMalformedRentUntilMeansNoRental(t *testing.T) {
	// pointing backwards
	v := roadTrip().rental("t2", "v1", false).view(t)
	_, ok := v.TraverseRental("t2")
	assert.False(t, ok)
	assert.True(t, v.TraverseCost("t2").IsZero())

	// pointing at a visit off the itinerary
	f := roadTrip().rental("t1", "v5", false)
	f.snap.Visits[4].Included = false
	v = f.view(t)
	_, ok = v.TraverseRental("t1")
	assert.False(t, ok)
}

func TestNonDrivingLegOpensNoRental(t *testing.T) {
	v := newFixture().
		place("p1", "", 100, 0, 0).place("p2", "", 150, 0, 0).place("p3", "", 100, 0, 0).
		route("r1", "p1", "p2", models.RouteFlying, 300, 0).
		route("r2", "p2", "p3", models.RouteBus, 60, 0).
		visit("v1", "p1", 1).visit("v2", "p2", 2).visit("v3", "p3", 1).
		traverse("t1", "v1", "v2", "r1", 0).
		traverse("t2", "v2", "v3", "r2", 0).
		rental("t1", "v3", true).
		view(t)

	for _, id := range []string{"t1", "t2"} {
		_, ok := v.TraverseRental(id)
		assert.False(t, ok, id)
	}
	_, ok := v.VisitRental("v2")
	assert.False(t, ok)

	assert.Equal(t, models.CostBreakdown{Transport: 300}, v.TraverseCost("t1").Estimated)
	assert.Equal(t, models.CostBreakdown{Transport: 60}, v.TraverseCost("t2").Estimated)
	assert.Equal(t, 300.0, v.VisitCost("v2").Estimated.Accommodation)
}

func TestRentUntilOptionsStopAfterNonDrivingRun(t *testing.T) {
	v := roadTrip().view(t)
	assert.Equal(t, []string{"v2", "v3", "v4"}, visitIDs(v.RentUntilOptions("t1")))
	assert.Equal(t, []string{"v4"}, visitIDs(v.RentUntilOptions("t3")))
	assert.Empty(t, v.RentUntilOptions("t4"))

	f := newFixture().
		place("a", "", 0, 0, 0).place("b", "", 0, 0, 0).place("c", "", 0, 0, 0).
		place("d", "", 0, 0, 0).place("e", "", 0, 0, 0).place("g", "", 0, 0, 0).
		route("ab", "a", "b", models.RouteDriving, 0, 0).
		route("bc", "b", "c", models.RouteTrain, 0, 0).
		route("cd", "c", "d", models.RouteBus, 0, 0).
		route("de", "d", "e", models.RouteFlying, 0, 0).
		route("eg", "e", "g", models.RouteDriving, 0, 0).
		visit("va", "a", 0).visit("vb", "b", 0).visit("vc", "c", 0).
		visit("vd", "d", 0).visit("ve", "e", 0).visit("vg", "g", 0).
		traverse("tab", "va", "vb", "ab", 0).
		traverse("tbc", "vb", "vc", "bc", 0).
		traverse("tcd", "vc", "vd", "cd", 0).
		traverse("tde", "vd", "ve", "de", 0).
		traverse("teg", "ve", "vg", "eg", 0)
	v = f.view(t)
	assert.Equal(t, []string{"vb"}, visitIDs(v.RentUntilOptions("tab")))
}
