package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"travelmap/internal/domain/models"
	"travelmap/internal/engine"
	"travelmap/internal/geo"
	"travelmap/internal/utils"
)

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func placePoint(p models.Place) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}

// AddPlace creates a Place. A Country unknown to the trip is created with it.
func (s *Session) AddPlace(ctx context.Context, p models.Place, country *models.Country) (models.Place, error) {
	p.ID = newID(p.ID)
	_, err := s.apply(ctx, "add_place", func(cur engine.State) (engine.State, write, error) {
		next, err := engine.AddPlace(cur, p, country)
		if err != nil {
			return cur, nil, err
		}
		p, _ = next.Trip.Places.Get(p.ID)
		rows := []any{}
		if p.CountryID != "" && !cur.Trip.Countries.Has(p.CountryID) {
			rows = append(rows, *country)
		}
		return next, insert(append(rows, p)...), nil
	})
	return p, err
}

func (s *Session) UpdatePlace(ctx context.Context, id string, patch models.PlacePatch, country *models.Country) (models.Place, error) {
	var out models.Place
	_, err := s.apply(ctx, "update_place", func(cur engine.State) (engine.State, write, error) {
		next, p, err := engine.UpdatePlace(cur, id, patch, country)
		if err != nil {
			return cur, nil, err
		}
		out = p
		rows := []any{}
		if p.CountryID != "" && !cur.Trip.Countries.Has(p.CountryID) {
			rows = append(rows, *country)
		}
		return next, update(append(rows, p)...), nil
	})
	return out, err
}

func (s *Session) RemovePlace(ctx context.Context, id string) (models.Cascade, error) {
	return s.remove(ctx, "remove_place", id, engine.RemovePlace)
}

// AddRoute creates a Route. Distance defaults to the great-circle distance
// and land modes are enriched from the directions lookup when available.
func (s *Session) AddRoute(ctx context.Context, r models.Route) (models.Route, error) {
	r.ID = newID(r.ID)
	_, err := s.apply(ctx, "add_route", func(cur engine.State) (engine.State, write, error) {
		src, okSrc := cur.Trip.Places.Get(r.SourceID)
		dst, okDst := cur.Trip.Places.Get(r.TargetID)
		if okSrc && okDst {
			if r.Distance == 0 {
				r.Distance = geo.Haversine(placePoint(src), placePoint(dst))
			}
			if r.Type.IsLand() && r.Path == "" {
				if info, ok := s.lookup(ctx, r.Type, src, dst); ok {
					r.Distance, r.Duration, r.Path = info.Distance, info.Duration, info.Path
				}
			}
		}
		next, err := engine.AddRoute(cur, r)
		if err != nil {
			return cur, nil, err
		}
		r, _ = next.Trip.Routes.Get(r.ID)
		return next, insert(r), nil
	})
	return r, err
}

// UpdateRoute patches a Route. Switching to a land mode refreshes distance,
// duration and path from the directions lookup unless the patch sets them;
// a failed lookup is reported and the update goes ahead.
func (s *Session) UpdateRoute(ctx context.Context, id string, patch models.RoutePatch) (models.Route, error) {
	var out models.Route
	_, err := s.apply(ctx, "update_route", func(cur engine.State) (engine.State, write, error) {
		if old, ok := cur.Trip.Routes.Get(id); ok && patch.Type != nil && *patch.Type != old.Type && patch.Type.IsLand() {
			src, _ := cur.Trip.Places.Get(old.SourceID)
			dst, _ := cur.Trip.Places.Get(old.TargetID)
			if info, ok := s.lookup(ctx, *patch.Type, src, dst); ok {
				if patch.Distance == nil {
					patch.Distance = &info.Distance
				}
				if patch.Duration == nil {
					patch.Duration = &info.Duration
				}
				if patch.Path == nil {
					patch.Path = &info.Path
				}
			}
		}
		next, r, err := engine.UpdateRoute(cur, id, patch)
		if err != nil {
			return cur, nil, err
		}
		out = r
		return next, update(r), nil
	})
	return out, err
}

func (s *Session) RemoveRoute(ctx context.Context, id string) (models.Cascade, error) {
	return s.remove(ctx, "remove_route", id, engine.RemoveRoute)
}

func (s *Session) lookup(ctx context.Context, mode models.RouteType, src, dst models.Place) (RouteInfo, bool) {
	if s.svc.Directions == nil {
		return RouteInfo{}, false
	}
	info, err := s.svc.Directions.Lookup(ctx, mode, placePoint(src), placePoint(dst))
	if err != nil {
		s.svc.notify(ctx, Event{
			Key:    s.Key,
			Action: "route_directions",
			Err:    fmt.Errorf("%s -> %s: %w", src.ID, dst.ID, err),
		})
		return RouteInfo{}, false
	}
	return info, true
}

func (s *Session) AddVisit(ctx context.Context, v models.Visit) (models.Visit, error) {
	v.ID = newID(v.ID)
	_, err := s.apply(ctx, "add_visit", func(cur engine.State) (engine.State, write, error) {
		next, err := engine.AddVisit(cur, v)
		if err != nil {
			return cur, nil, err
		}
		v, _ = next.Plan.Visits.Get(v.ID)
		return next, insert(v), nil
	})
	return v, err
}

func (s *Session) UpdateVisit(ctx context.Context, id string, patch models.VisitPatch) (models.Visit, error) {
	var out models.Visit
	_, err := s.apply(ctx, "update_visit", func(cur engine.State) (engine.State, write, error) {
		next, v, err := engine.UpdateVisit(cur, id, patch)
		if err != nil {
			return cur, nil, err
		}
		out = v
		return next, update(v), nil
	})
	return out, err
}

func (s *Session) RemoveVisit(ctx context.Context, id string) (models.Cascade, error) {
	return s.remove(ctx, "remove_visit", id, engine.RemoveVisit)
}

func (s *Session) AddTraverse(ctx context.Context, t models.Traverse) (models.Traverse, error) {
	t.ID = newID(t.ID)
	_, err := s.apply(ctx, "add_traverse", func(cur engine.State) (engine.State, write, error) {
		next, err := engine.AddTraverse(cur, t)
		if err != nil {
			return cur, nil, err
		}
		t, _ = next.Plan.Traverses.Get(t.ID)
		return next, insert(t), nil
	})
	return t, err
}

func (s *Session) UpdateTraverse(ctx context.Context, id string, patch models.TraversePatch) (models.Traverse, error) {
	var out models.Traverse
	_, err := s.apply(ctx, "update_traverse", func(cur engine.State) (engine.State, write, error) {
		next, t, err := engine.UpdateTraverse(cur, id, patch)
		if err != nil {
			return cur, nil, err
		}
		out = t
		return next, update(t), nil
	})
	return out, err
}

func (s *Session) RemoveTraverse(ctx context.Context, id string) (models.Cascade, error) {
	return s.remove(ctx, "remove_traverse", id, engine.RemoveTraverse)
}

// SetStartVisit pins the itinerary origin; "" restores the automatic start.
func (s *Session) SetStartVisit(ctx context.Context, visitID string) (models.Plan, error) {
	return s.updatePlan(ctx, "set_start_visit", func(cur engine.State) (engine.State, error) {
		return engine.SetStartVisit(cur, visitID)
	})
}

func (s *Session) SetStartDate(ctx context.Context, date string) (models.Plan, error) {
	return s.updatePlan(ctx, "set_start_date", func(cur engine.State) (engine.State, error) {
		return engine.SetStartDate(cur, utils.TrimOrEmpty(date))
	})
}

func (s *Session) updatePlan(ctx context.Context, action string, fn func(engine.State) (engine.State, error)) (models.Plan, error) {
	view, err := s.apply(ctx, action, func(cur engine.State) (engine.State, write, error) {
		next, err := fn(cur)
		if err != nil {
			return cur, nil, err
		}
		return next, update(next.Plan.Record), nil
	})
	if err != nil {
		return models.Plan{}, err
	}
	return view.State().Plan.Record, nil
}

func (s *Session) AddActivity(ctx context.Context, a models.Activity) (models.Activity, error) {
	a.ID = newID(a.ID)
	_, err := s.apply(ctx, "add_activity", func(cur engine.State) (engine.State, write, error) {
		next, err := engine.AddActivity(cur, a)
		if err != nil {
			return cur, nil, err
		}
		a, _ = next.Trip.Activities.Get(a.ID)
		return next, insert(a), nil
	})
	return a, err
}

func (s *Session) UpdateActivity(ctx context.Context, id string, patch models.ExpensePatch) (models.Activity, error) {
	var out models.Activity
	_, err := s.apply(ctx, "update_activity", func(cur engine.State) (engine.State, write, error) {
		next, a, err := engine.UpdateActivity(cur, id, patch)
		if err != nil {
			return cur, nil, err
		}
		out = a
		return next, update(a), nil
	})
	return out, err
}

func (s *Session) RemoveActivity(ctx context.Context, id string) (models.Cascade, error) {
	return s.remove(ctx, "remove_activity", id, engine.RemoveActivity)
}

func (s *Session) AddPlaceNote(ctx context.Context, n models.PlaceNote) (models.PlaceNote, error) {
	n.ID = newID(n.ID)
	_, err := s.apply(ctx, "add_place_note", func(cur engine.State) (engine.State, write, error) {
		next, err := engine.AddPlaceNote(cur, n)
		if err != nil {
			return cur, nil, err
		}
		n, _ = next.Trip.PlaceNotes.Get(n.ID)
		return next, insert(n), nil
	})
	return n, err
}

func (s *Session) UpdatePlaceNote(ctx context.Context, id string, patch models.ExpensePatch) (models.PlaceNote, error) {
	var out models.PlaceNote
	_, err := s.apply(ctx, "update_place_note", func(cur engine.State) (engine.State, write, error) {
		next, n, err := engine.UpdatePlaceNote(cur, id, patch)
		if err != nil {
			return cur, nil, err
		}
		out = n
		return next, update(n), nil
	})
	return out, err
}

func (s *Session) RemovePlaceNote(ctx context.Context, id string) (models.Cascade, error) {
	return s.remove(ctx, "remove_place_note", id, engine.RemovePlaceNote)
}

func (s *Session) AddCountryNote(ctx context.Context, n models.CountryNote) (models.CountryNote, error) {
	n.ID = newID(n.ID)
	_, err := s.apply(ctx, "add_country_note", func(cur engine.State) (engine.State, write, error) {
		next, err := engine.AddCountryNote(cur, n)
		if err != nil {
			return cur, nil, err
		}
		n, _ = next.Trip.CountryNotes.Get(n.ID)
		return next, insert(n), nil
	})
	return n, err
}

func (s *Session) UpdateCountryNote(ctx context.Context, id string, patch models.ExpensePatch) (models.CountryNote, error) {
	var out models.CountryNote
	_, err := s.apply(ctx, "update_country_note", func(cur engine.State) (engine.State, write, error) {
		next, n, err := engine.UpdateCountryNote(cur, id, patch)
		if err != nil {
			return cur, nil, err
		}
		out = n
		return next, update(n), nil
	})
	return out, err
}

func (s *Session) RemoveCountryNote(ctx context.Context, id string) (models.Cascade, error) {
	return s.remove(ctx, "remove_country_note", id, engine.RemoveCountryNote)
}

func (s *Session) AddRouteNote(ctx context.Context, n models.RouteNote) (models.RouteNote, error) {
	n.ID = newID(n.ID)
	_, err := s.apply(ctx, "add_route_note", func(cur engine.State) (engine.State, write, error) {
		next, err := engine.AddRouteNote(cur, n)
		if err != nil {
			return cur, nil, err
		}
		n, _ = next.Trip.RouteNotes.Get(n.ID)
		return next, insert(n), nil
	})
	return n, err
}

func (s *Session) UpdateRouteNote(ctx context.Context, id string, patch models.RouteNotePatch) (models.RouteNote, error) {
	var out models.RouteNote
	_, err := s.apply(ctx, "update_route_note", func(cur engine.State) (engine.State, write, error) {
		next, n, err := engine.UpdateRouteNote(cur, id, patch)
		if err != nil {
			return cur, nil, err
		}
		out = n
		return next, update(n), nil
	})
	return out, err
}

func (s *Session) RemoveRouteNote(ctx context.Context, id string) (models.Cascade, error) {
	return s.remove(ctx, "remove_route_note", id, engine.RemoveRouteNote)
}

type removal func(s engine.State, id string) (engine.State, models.Cascade, error)

func (s *Session) remove(ctx context.Context, action, id string, fn removal) (models.Cascade, error) {
	var out models.Cascade
	_, err := s.apply(ctx, action, func(cur engine.State) (engine.State, write, error) {
		next, c, err := fn(cur, id)
		if err != nil {
			return cur, nil, err
		}
		out = c
		return next, cascade(s.Key.PlanID, c), nil
	})
	if err != nil {
		return models.Cascade{}, err
	}
	return out, nil
}
