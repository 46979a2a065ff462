package models

import (
	"testing"

	"travelmap/internal/domain"
)

func TestCostBreakdownAddLaws(t *testing.T) {
	a := CostBreakdown{Accommodation: 10, Transport: 2.5, Food: 3}
	b := CostBreakdown{Transport: 7, Activities: 4, Miscellaneous: 1}
	c := CostBreakdown{Accommodation: 1, Food: 1, Miscellaneous: 0.5}

	if a.Add(b) != b.Add(a) {
		t.Fatalf("add not commutative: %+v vs %+v", a.Add(b), b.Add(a))
	}
	if a.Add(b).Add(c) != a.Add(b.Add(c)) {
		t.Fatalf("add not associative")
	}
	if got := a.Add(b).Total(); got != 27.5 {
		t.Fatalf("total: got %v want 27.5", got)
	}
}

func TestCostComparisonIdentity(t *testing.T) {
	x := CostComparison{
		Estimated: CostBreakdown{Accommodation: 40, Food: 12},
		Actual:    CostBreakdown{Transport: 99},
	}
	if got := EmptyComparison().Add(x); got != x {
		t.Fatalf("empty is not left identity: %+v", got)
	}
	if got := x.Add(EmptyComparison()); got != x {
		t.Fatalf("empty is not right identity: %+v", got)
	}
	if !EmptyComparison().IsZero() || x.IsZero() {
		t.Fatalf("IsZero mismatch")
	}
}

func TestCostBreakdownScaleSplitsAmount(t *testing.T) {
	shares := CostBreakdown{Transport: 0.25, Accommodation: 0.25, Food: 0.25, Activities: 0.25}
	got := shares.Scale(100)
	want := CostBreakdown{Transport: 25, Accommodation: 25, Food: 25, Activities: 25}
	if got != want {
		t.Fatalf("scale: got %+v want %+v", got, want)
	}
}

func TestTraversePatchClearsRentUntil(t *testing.T) {
	end := "v3"
	tr := Traverse{ID: "t1", RentUntil: &end, Priority: 2}

	empty := ""
	cleared := tr.Apply(TraversePatch{RentUntil: &empty})
	if cleared.RentUntil != nil {
		t.Fatalf("rent_until should be cleared, got %v", *cleared.RentUntil)
	}
	if cleared.Priority != 2 {
		t.Fatalf("priority changed without being present")
	}
	if tr.RentUntilID() != "v3" {
		t.Fatalf("original traverse mutated")
	}
}

func TestRouteActualFallsBackToEstimate(t *testing.T) {
	est := 120.0
	r := Route{EstimatedCost: &est}
	if r.Actual() != 120 {
		t.Fatalf("actual fallback: got %v", r.Actual())
	}
	act := 90.0
	r = r.Apply(RoutePatch{ActualCost: &act})
	if r.Actual() != 90 || r.Estimated() != 120 {
		t.Fatalf("actual/estimated: got %v/%v", r.Actual(), r.Estimated())
	}
}

func TestValidateReportsField(t *testing.T) {
	err := Validate(Visit{ID: "v1", PlaceID: "p1", PlanID: "pl", Nights: -1})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	var verr domain.ValidationError
	verr, _ = err.(domain.ValidationError)
	if verr.Field != "nights" {
		t.Fatalf("field: got %q", verr.Field)
	}

	err = Validate(Route{ID: "r1", SourceID: "p1", TargetID: "p1", TripID: "t"})
	if !domain.IsValidation(err) {
		t.Fatalf("same source/target should fail, got %v", err)
	}

	err = Validate(Route{ID: "r1", SourceID: "p1", TargetID: "p2", TripID: "t", Type: "rocket"})
	if !domain.IsValidation(err) {
		t.Fatalf("unknown route type should fail, got %v", err)
	}

	if err := Validate(Place{ID: "p1", TripID: "t", Lat: 48.85, Lng: 2.35}); err != nil {
		t.Fatalf("valid place rejected: %v", err)
	}
}
