package engine

import (
	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
)

// State is one Trip and one of its Plans. Version increases on every
// successful mutation of a session and restarts at 1 on each load.
type State struct {
	Trip    Trip
	Plan    Plan
	Version uint64
}

// NewState builds a State from a loaded snapshot. It does not validate; call
// Validate or Resolve before deriving anything.
func NewState(s models.Snapshot) State {
	return State{Trip: newTrip(s), Plan: newPlan(s), Version: 1}
}

// Snapshot flattens the State back into rows, each list ordered by id.
func (s State) Snapshot() models.Snapshot {
	return models.Snapshot{
		Trip:         s.Trip.Record,
		Plan:         s.Plan.Record,
		Countries:    s.Trip.Countries.Values(),
		Places:       s.Trip.Places.Values(),
		Routes:       s.Trip.Routes.Values(),
		Visits:       s.Plan.Visits.Values(),
		Traverses:    s.Plan.Traverses.Values(),
		Activities:   s.Trip.Activities.Values(),
		PlaceNotes:   s.Trip.PlaceNotes.Values(),
		CountryNotes: s.Trip.CountryNotes.Values(),
		RouteNotes:   s.Trip.RouteNotes.Values(),
	}
}

func (s State) next(trip Trip, plan Plan) State {
	return State{Trip: trip, Plan: plan, Version: s.Version + 1}
}

// Validate checks that every id reference resolves in its owning table.
// rent_until and the plan start are advisory and never fail validation.
func (s State) Validate() error {
	trip, plan := s.Trip, s.Plan
	for _, r := range trip.Routes.Values() {
		if !trip.Places.Has(r.SourceID) {
			return domain.IntegrityError{Entity: "route", ID: r.ID, Ref: "place", RefID: r.SourceID}
		}
		if !trip.Places.Has(r.TargetID) {
			return domain.IntegrityError{Entity: "route", ID: r.ID, Ref: "place", RefID: r.TargetID}
		}
	}
	for _, v := range plan.Visits.Values() {
		if !trip.Places.Has(v.PlaceID) {
			return domain.IntegrityError{Entity: "visit", ID: v.ID, Ref: "place", RefID: v.PlaceID}
		}
	}
	for _, t := range plan.Traverses.Values() {
		if !plan.Visits.Has(t.SourceVisitID) {
			return domain.IntegrityError{Entity: "traverse", ID: t.ID, Ref: "visit", RefID: t.SourceVisitID}
		}
		if !plan.Visits.Has(t.TargetVisitID) {
			return domain.IntegrityError{Entity: "traverse", ID: t.ID, Ref: "visit", RefID: t.TargetVisitID}
		}
		if !trip.Routes.Has(t.RouteID) {
			return domain.IntegrityError{Entity: "traverse", ID: t.ID, Ref: "route", RefID: t.RouteID}
		}
	}
	for _, a := range trip.Activities.Values() {
		if !trip.Places.Has(a.PlaceID) {
			return domain.IntegrityError{Entity: "activity", ID: a.ID, Ref: "place", RefID: a.PlaceID}
		}
	}
	for _, n := range trip.PlaceNotes.Values() {
		if !trip.Places.Has(n.PlaceID) {
			return domain.IntegrityError{Entity: "place_note", ID: n.ID, Ref: "place", RefID: n.PlaceID}
		}
	}
	for _, n := range trip.CountryNotes.Values() {
		if !trip.Countries.Has(n.CountryID) {
			return domain.IntegrityError{Entity: "country_note", ID: n.ID, Ref: "country", RefID: n.CountryID}
		}
	}
	for _, n := range trip.RouteNotes.Values() {
		if !trip.Routes.Has(n.RouteID) {
			return domain.IntegrityError{Entity: "route_note", ID: n.ID, Ref: "route", RefID: n.RouteID}
		}
	}
	return nil
}
