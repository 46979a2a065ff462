package engine

import (
	"slices"

	"travelmap/internal/domain/models"
)

// cascader removes rows and everything that depends on them, recording each
// removed id once. Removals only ever see tables already consistent with the
// earlier removals of the same cascade.
type cascader struct {
	trip Trip
	plan Plan
	out  models.Cascade
}

func (c *cascader) dropTraverse(id string) {
	if !c.plan.Traverses.Has(id) {
		return
	}
	c.plan.Traverses = c.plan.Traverses.Delete(id)
	c.out.Traverses = append(c.out.Traverses, id)
}

func (c *cascader) dropVisit(id string) {
	if !c.plan.Visits.Has(id) {
		return
	}
	for _, t := range c.plan.Touching(id) {
		c.dropTraverse(t.ID)
	}
	c.plan.Visits = c.plan.Visits.Delete(id)
	c.out.Visits = append(c.out.Visits, id)
}

func (c *cascader) dropRoute(id string) {
	if !c.trip.Routes.Has(id) {
		return
	}
	for _, t := range c.plan.RouteTraverses(id) {
		c.dropTraverse(t.ID)
	}
	for _, n := range c.trip.RouteNotesOf(id) {
		c.trip.RouteNotes = c.trip.RouteNotes.Delete(n.ID)
		c.out.RouteNotes = append(c.out.RouteNotes, n.ID)
	}
	c.trip.Routes = c.trip.Routes.Delete(id)
	c.out.Routes = append(c.out.Routes, id)
}

func (c *cascader) dropPlace(id string) {
	place, ok := c.trip.Places.Get(id)
	if !ok {
		return
	}
	for _, v := range c.plan.PlaceVisits(id) {
		c.dropVisit(v.ID)
	}
	for _, r := range c.trip.PlaceRoutes(id) {
		c.dropRoute(r.ID)
	}
	for _, a := range c.trip.PlaceActivities(id) {
		c.trip.Activities = c.trip.Activities.Delete(a.ID)
		c.out.Activities = append(c.out.Activities, a.ID)
	}
	for _, n := range c.trip.PlaceNotesOf(id) {
		c.trip.PlaceNotes = c.trip.PlaceNotes.Delete(n.ID)
		c.out.PlaceNotes = append(c.out.PlaceNotes, n.ID)
	}
	c.trip.Places = c.trip.Places.Delete(id)
	c.out.Places = append(c.out.Places, id)

	if place.CountryID != "" && len(c.trip.CountryPlaces(place.CountryID)) == 0 {
		c.dropCountry(place.CountryID)
	}
}

func (c *cascader) dropCountry(id string) {
	if !c.trip.Countries.Has(id) {
		return
	}
	for _, n := range c.trip.CountryNotesOf(id) {
		c.trip.CountryNotes = c.trip.CountryNotes.Delete(n.ID)
		c.out.CountryNotes = append(c.out.CountryNotes, n.ID)
	}
	c.trip.Countries = c.trip.Countries.Delete(id)
	c.out.Countries = append(c.out.Countries, id)
}

// settle clears references left pointing at removed Visits: rent_until on
// surviving traverses and the plan start.
func (c *cascader) settle() {
	for _, t := range c.plan.Traverses.Values() {
		if end := t.RentUntilID(); end != "" && slices.Contains(c.out.Visits, end) {
			t.RentUntil = nil
			c.plan.Traverses = c.plan.Traverses.Put(t.ID, t)
			c.out.RentUntilCleared = append(c.out.RentUntilCleared, t.ID)
		}
	}
	if start := c.plan.Record.StartVisitID; start != "" && slices.Contains(c.out.Visits, start) {
		c.plan.Record.StartVisitID = ""
		c.out.StartCleared = true
	}
}

func (s State) cascade(drop func(c *cascader)) (State, models.Cascade) {
	c := &cascader{trip: s.Trip, plan: s.Plan}
	drop(c)
	c.settle()
	return s.next(c.trip, c.plan), c.out
}

// RemovePlace removes the Place with its Visits, the Traverses touching
// them, Routes ending at it (with their Traverses and notes), its
// activities and notes, and its Country once no Place references it.
func RemovePlace(s State, id string) (State, models.Cascade, error) {
	if !s.Trip.Places.Has(id) {
		return s, models.Cascade{}, notFound("place", id)
	}
	next, out := s.cascade(func(c *cascader) { c.dropPlace(id) })
	return next, out, nil
}

// RemoveRoute removes the Route, its notes and every Traverse using it.
func RemoveRoute(s State, id string) (State, models.Cascade, error) {
	if !s.Trip.Routes.Has(id) {
		return s, models.Cascade{}, notFound("route", id)
	}
	next, out := s.cascade(func(c *cascader) { c.dropRoute(id) })
	return next, out, nil
}

// RemoveVisit removes the Visit and every Traverse touching it.
func RemoveVisit(s State, id string) (State, models.Cascade, error) {
	if !s.Plan.Visits.Has(id) {
		return s, models.Cascade{}, notFound("visit", id)
	}
	next, out := s.cascade(func(c *cascader) { c.dropVisit(id) })
	return next, out, nil
}

func RemoveTraverse(s State, id string) (State, models.Cascade, error) {
	if !s.Plan.Traverses.Has(id) {
		return s, models.Cascade{}, notFound("traverse", id)
	}
	next, out := s.cascade(func(c *cascader) { c.dropTraverse(id) })
	return next, out, nil
}

func RemoveActivity(s State, id string) (State, models.Cascade, error) {
	if !s.Trip.Activities.Has(id) {
		return s, models.Cascade{}, notFound("activity", id)
	}
	trip := s.Trip
	trip.Activities = trip.Activities.Delete(id)
	return s.next(trip, s.Plan), models.Cascade{Activities: []string{id}}, nil
}

func RemovePlaceNote(s State, id string) (State, models.Cascade, error) {
	if !s.Trip.PlaceNotes.Has(id) {
		return s, models.Cascade{}, notFound("place_note", id)
	}
	trip := s.Trip
	trip.PlaceNotes = trip.PlaceNotes.Delete(id)
	return s.next(trip, s.Plan), models.Cascade{PlaceNotes: []string{id}}, nil
}

func RemoveCountryNote(s State, id string) (State, models.Cascade, error) {
	if !s.Trip.CountryNotes.Has(id) {
		return s, models.Cascade{}, notFound("country_note", id)
	}
	trip := s.Trip
	trip.CountryNotes = trip.CountryNotes.Delete(id)
	return s.next(trip, s.Plan), models.Cascade{CountryNotes: []string{id}}, nil
}

func RemoveRouteNote(s State, id string) (State, models.Cascade, error) {
	if !s.Trip.RouteNotes.Has(id) {
		return s, models.Cascade{}, notFound("route_note", id)
	}
	trip := s.Trip
	trip.RouteNotes = trip.RouteNotes.Delete(id)
	return s.next(trip, s.Plan), models.Cascade{RouteNotes: []string{id}}, nil
}
