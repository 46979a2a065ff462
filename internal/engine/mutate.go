package engine

import (
	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
	"travelmap/internal/utils"
)

func notFound(resource, id string) error {
	return domain.NotFoundError{Resource: resource, ID: id}
}

func duplicate(resource, id string) error {
	return domain.ConflictError{Resource: resource, Msg: "id " + id + " already exists"}
}

// ownTrip stamps an empty trip id and rejects a foreign one.
func (s State) ownTrip(tripID *string) error {
	if *tripID == "" {
		*tripID = s.Trip.Record.ID
	}
	if *tripID != s.Trip.Record.ID {
		return domain.ValidationError{Field: "trip_id", Msg: "belongs to another trip"}
	}
	return nil
}

func (s State) ownPlan(planID *string) error {
	if *planID == "" {
		*planID = s.Plan.Record.ID
	}
	if *planID != s.Plan.Record.ID {
		return domain.ValidationError{Field: "plan_id", Msg: "belongs to another plan"}
	}
	return nil
}

// AddPlace inserts a Place. A country id unknown to the Trip must come with
// its Country record, which is inserted alongside.
func AddPlace(s State, p models.Place, country *models.Country) (State, error) {
	if err := s.ownTrip(&p.TripID); err != nil {
		return s, err
	}
	if err := models.Validate(p); err != nil {
		return s, err
	}
	if s.Trip.Places.Has(p.ID) {
		return s, duplicate("place", p.ID)
	}
	trip := s.Trip
	if p.CountryID != "" && !trip.Countries.Has(p.CountryID) {
		if country == nil || country.ID != p.CountryID {
			return s, notFound("country", p.CountryID)
		}
		trip.Countries = trip.Countries.Put(country.ID, *country)
	}
	trip.Places = trip.Places.Put(p.ID, p)
	return s.next(trip, s.Plan), nil
}

// UpdatePlace patches a Place. A Country left without Places by a move is
// kept with its notes; they stay listed and count again once a Place joins
// the Country. Only RemovePlace drops an emptied Country.
func UpdatePlace(s State, id string, patch models.PlacePatch, country *models.Country) (State, models.Place, error) {
	p, ok := s.Trip.Places.Get(id)
	if !ok {
		return s, models.Place{}, notFound("place", id)
	}
	p = p.Apply(patch)
	if err := models.Validate(p); err != nil {
		return s, models.Place{}, err
	}
	trip := s.Trip
	if p.CountryID != "" && !trip.Countries.Has(p.CountryID) {
		if country == nil || country.ID != p.CountryID {
			return s, models.Place{}, notFound("country", p.CountryID)
		}
		trip.Countries = trip.Countries.Put(country.ID, *country)
	}
	trip.Places = trip.Places.Put(p.ID, p)
	return s.next(trip, s.Plan), p, nil
}

func AddRoute(s State, r models.Route) (State, error) {
	if err := s.ownTrip(&r.TripID); err != nil {
		return s, err
	}
	if err := models.Validate(r); err != nil {
		return s, err
	}
	if s.Trip.Routes.Has(r.ID) {
		return s, duplicate("route", r.ID)
	}
	if !s.Trip.Places.Has(r.SourceID) {
		return s, notFound("place", r.SourceID)
	}
	if !s.Trip.Places.Has(r.TargetID) {
		return s, notFound("place", r.TargetID)
	}
	trip := s.Trip
	trip.Routes = trip.Routes.Put(r.ID, r)
	return s.next(trip, s.Plan), nil
}

func UpdateRoute(s State, id string, patch models.RoutePatch) (State, models.Route, error) {
	r, ok := s.Trip.Routes.Get(id)
	if !ok {
		return s, models.Route{}, notFound("route", id)
	}
	r = r.Apply(patch)
	if err := models.Validate(r); err != nil {
		return s, models.Route{}, err
	}
	trip := s.Trip
	trip.Routes = trip.Routes.Put(r.ID, r)
	return s.next(trip, s.Plan), r, nil
}

func AddVisit(s State, v models.Visit) (State, error) {
	if err := s.ownPlan(&v.PlanID); err != nil {
		return s, err
	}
	if err := models.Validate(v); err != nil {
		return s, err
	}
	if s.Plan.Visits.Has(v.ID) {
		return s, duplicate("visit", v.ID)
	}
	if !s.Trip.Places.Has(v.PlaceID) {
		return s, notFound("place", v.PlaceID)
	}
	plan := s.Plan
	plan.Visits = plan.Visits.Put(v.ID, v)
	return s.next(s.Trip, plan), nil
}

func UpdateVisit(s State, id string, patch models.VisitPatch) (State, models.Visit, error) {
	v, ok := s.Plan.Visits.Get(id)
	if !ok {
		return s, models.Visit{}, notFound("visit", id)
	}
	v = v.Apply(patch)
	if err := models.Validate(v); err != nil {
		return s, models.Visit{}, err
	}
	plan := s.Plan
	plan.Visits = plan.Visits.Put(v.ID, v)
	return s.next(s.Trip, plan), v, nil
}

// AddTraverse inserts an edge between two Visits of the Plan. rent_until, when
// set, must name a Visit of the Plan; whether it lies ahead on the itinerary
// is decided at read time.
func AddTraverse(s State, t models.Traverse) (State, error) {
	if err := s.ownPlan(&t.PlanID); err != nil {
		return s, err
	}
	if err := models.Validate(t); err != nil {
		return s, err
	}
	if s.Plan.Traverses.Has(t.ID) {
		return s, duplicate("traverse", t.ID)
	}
	for _, id := range []string{t.SourceVisitID, t.TargetVisitID, t.RentUntilID()} {
		if id != "" && !s.Plan.Visits.Has(id) {
			return s, notFound("visit", id)
		}
	}
	if !s.Trip.Routes.Has(t.RouteID) {
		return s, notFound("route", t.RouteID)
	}
	plan := s.Plan
	plan.Traverses = plan.Traverses.Put(t.ID, t)
	return s.next(s.Trip, plan), nil
}

func UpdateTraverse(s State, id string, patch models.TraversePatch) (State, models.Traverse, error) {
	t, ok := s.Plan.Traverses.Get(id)
	if !ok {
		return s, models.Traverse{}, notFound("traverse", id)
	}
	t = t.Apply(patch)
	if end := t.RentUntilID(); end != "" && !s.Plan.Visits.Has(end) {
		return s, models.Traverse{}, notFound("visit", end)
	}
	if err := models.Validate(t); err != nil {
		return s, models.Traverse{}, err
	}
	plan := s.Plan
	plan.Traverses = plan.Traverses.Put(t.ID, t)
	return s.next(s.Trip, plan), t, nil
}

// SetStartVisit pins the itinerary origin. An empty id restores the
// automatic choice.
func SetStartVisit(s State, visitID string) (State, error) {
	if visitID != "" && !s.Plan.Visits.Has(visitID) {
		return s, notFound("visit", visitID)
	}
	plan := s.Plan
	plan.Record.StartVisitID = visitID
	return s.next(s.Trip, plan), nil
}

// SetStartDate changes the calendar anchor of the schedule.
func SetStartDate(s State, date string) (State, error) {
	plan := s.Plan
	plan.Record.StartDate = date
	if date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			return s, domain.ValidationError{Field: "start_date", Msg: "must be YYYY-MM-DD", Err: err}
		}
	}
	return s.next(s.Trip, plan), nil
}

func AddActivity(s State, a models.Activity) (State, error) {
	if err := s.ownTrip(&a.TripID); err != nil {
		return s, err
	}
	if err := models.Validate(a); err != nil {
		return s, err
	}
	if s.Trip.Activities.Has(a.ID) {
		return s, duplicate("activity", a.ID)
	}
	if !s.Trip.Places.Has(a.PlaceID) {
		return s, notFound("place", a.PlaceID)
	}
	trip := s.Trip
	trip.Activities = trip.Activities.Put(a.ID, a)
	return s.next(trip, s.Plan), nil
}

func UpdateActivity(s State, id string, patch models.ExpensePatch) (State, models.Activity, error) {
	a, ok := s.Trip.Activities.Get(id)
	if !ok {
		return s, models.Activity{}, notFound("activity", id)
	}
	a.Expense = a.Expense.Apply(patch)
	if err := models.Validate(a); err != nil {
		return s, models.Activity{}, err
	}
	trip := s.Trip
	trip.Activities = trip.Activities.Put(a.ID, a)
	return s.next(trip, s.Plan), a, nil
}

func AddPlaceNote(s State, n models.PlaceNote) (State, error) {
	if err := s.ownTrip(&n.TripID); err != nil {
		return s, err
	}
	if err := models.Validate(n); err != nil {
		return s, err
	}
	if s.Trip.PlaceNotes.Has(n.ID) {
		return s, duplicate("place_note", n.ID)
	}
	if !s.Trip.Places.Has(n.PlaceID) {
		return s, notFound("place", n.PlaceID)
	}
	trip := s.Trip
	trip.PlaceNotes = trip.PlaceNotes.Put(n.ID, n)
	return s.next(trip, s.Plan), nil
}

func UpdatePlaceNote(s State, id string, patch models.ExpensePatch) (State, models.PlaceNote, error) {
	n, ok := s.Trip.PlaceNotes.Get(id)
	if !ok {
		return s, models.PlaceNote{}, notFound("place_note", id)
	}
	n.Expense = n.Expense.Apply(patch)
	if err := models.Validate(n); err != nil {
		return s, models.PlaceNote{}, err
	}
	trip := s.Trip
	trip.PlaceNotes = trip.PlaceNotes.Put(n.ID, n)
	return s.next(trip, s.Plan), n, nil
}

func AddCountryNote(s State, n models.CountryNote) (State, error) {
	if err := s.ownTrip(&n.TripID); err != nil {
		return s, err
	}
	if err := models.Validate(n); err != nil {
		return s, err
	}
	if s.Trip.CountryNotes.Has(n.ID) {
		return s, duplicate("country_note", n.ID)
	}
	if !s.Trip.Countries.Has(n.CountryID) {
		return s, notFound("country", n.CountryID)
	}
	trip := s.Trip
	trip.CountryNotes = trip.CountryNotes.Put(n.ID, n)
	return s.next(trip, s.Plan), nil
}

func UpdateCountryNote(s State, id string, patch models.ExpensePatch) (State, models.CountryNote, error) {
	n, ok := s.Trip.CountryNotes.Get(id)
	if !ok {
		return s, models.CountryNote{}, notFound("country_note", id)
	}
	n.Expense = n.Expense.Apply(patch)
	if err := models.Validate(n); err != nil {
		return s, models.CountryNote{}, err
	}
	trip := s.Trip
	trip.CountryNotes = trip.CountryNotes.Put(n.ID, n)
	return s.next(trip, s.Plan), n, nil
}

func AddRouteNote(s State, n models.RouteNote) (State, error) {
	if err := s.ownTrip(&n.TripID); err != nil {
		return s, err
	}
	if err := models.Validate(n); err != nil {
		return s, err
	}
	if s.Trip.RouteNotes.Has(n.ID) {
		return s, duplicate("route_note", n.ID)
	}
	if !s.Trip.Routes.Has(n.RouteID) {
		return s, notFound("route", n.RouteID)
	}
	trip := s.Trip
	trip.RouteNotes = trip.RouteNotes.Put(n.ID, n)
	return s.next(trip, s.Plan), nil
}

func UpdateRouteNote(s State, id string, patch models.RouteNotePatch) (State, models.RouteNote, error) {
	n, ok := s.Trip.RouteNotes.Get(id)
	if !ok {
		return s, models.RouteNote{}, notFound("route_note", id)
	}
	if patch.Description != nil {
		n.Description = *patch.Description
	}
	trip := s.Trip
	trip.RouteNotes = trip.RouteNotes.Put(n.ID, n)
	return s.next(trip, s.Plan), n, nil
}
