package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
)

// Dump is a whole database exported as one JSON document, one array per
// table. Older exports use numeric ids; they are read as strings.
type Dump struct {
	Trips        []models.Trip        `json:"trips"`
	Plans        []models.Plan        `json:"plans"`
	Countries    []models.Country     `json:"countries"`
	Places       []models.Place       `json:"places"`
	Routes       []models.Route       `json:"routes"`
	Visits       []models.Visit       `json:"visits"`
	Traverses    []models.Traverse    `json:"traverses"`
	Activities   []models.Activity    `json:"activities"`
	PlaceNotes   []models.PlaceNote   `json:"place_notes"`
	CountryNotes []models.CountryNote `json:"country_notes"`
	RouteNotes   []models.RouteNote   `json:"route_notes"`
}

var (
	tripOwned = []string{"places", "routes", "activities", "place_notes", "country_notes", "route_notes", "plans"}
	planOwned = []string{"visits", "traverses"}
	refKeys   = map[string]bool{"id": true, "source": true, "target": true, "rent_until": true}
)

func isRefKey(k string) bool {
	return refKeys[k] || strings.HasSuffix(k, "_id")
}

// ReadDump decodes a dump. Numeric references become strings, a non-string
// route path is re-encoded as JSON text, and records without an owner get
// the only trip or plan of the dump.
func ReadDump(r io.Reader) (*Dump, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw map[string][]map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}

	for table, recs := range raw {
		for _, rec := range recs {
			for k, v := range rec {
				if n, ok := v.(json.Number); ok && isRefKey(k) {
					rec[k] = n.String()
				}
			}
			if table == "routes" {
				if path, ok := rec["route"]; ok && path != nil {
					if _, isText := path.(string); !isText {
						b, err := json.Marshal(path)
						if err != nil {
							return nil, fmt.Errorf("route %v path: %w", rec["id"], err)
						}
						rec["route"] = string(b)
					}
				}
			}
		}
	}
	fillOwner(raw, "trips", "trip_id", tripOwned)
	fillOwner(raw, "plans", "plan_id", planOwned)

	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var d Dump
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("decode dump tables: %w", err)
	}
	return &d, nil
}

func fillOwner(raw map[string][]map[string]any, owners, key string, tables []string) {
	if len(raw[owners]) != 1 {
		return
	}
	owner := raw[owners][0]["id"]
	for _, table := range tables {
		for _, rec := range raw[table] {
			if v, ok := rec[key]; !ok || v == nil || v == "" {
				rec[key] = owner
			}
		}
	}
}

func ReadDumpFile(path string) (*Dump, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadDump(bytes.NewReader(b))
}

// DefaultKey picks the first trip and its plan with the lowest priority when
// tripID or planID is empty.
func (d *Dump) DefaultKey(tripID, planID string) (domain.PlanKey, error) {
	if tripID == "" {
		if len(d.Trips) == 0 {
			return domain.PlanKey{}, domain.NotFoundError{Resource: "trip"}
		}
		tripID = d.Trips[0].ID
	}
	if planID == "" {
		plans := []models.Plan{}
		for _, p := range d.Plans {
			if p.TripID == tripID {
				plans = append(plans, p)
			}
		}
		if len(plans) == 0 {
			return domain.PlanKey{}, domain.NotFoundError{Resource: "plan"}
		}
		sort.SliceStable(plans, func(i, j int) bool { return plans[i].Priority < plans[j].Priority })
		planID = plans[0].ID
	}
	return domain.PlanKey{TripID: tripID, PlanID: planID}, nil
}

// Snapshot selects one trip and plan the same way Store.LoadSnapshot does.
func (d *Dump) Snapshot(tripID, planID string) (models.Snapshot, error) {
	var snap models.Snapshot
	found := false
	for _, t := range d.Trips {
		if t.ID == tripID {
			snap.Trip, found = t, true
		}
	}
	if !found {
		return snap, domain.NotFoundError{Resource: "trip", ID: tripID}
	}
	found = false
	for _, p := range d.Plans {
		if p.ID == planID && p.TripID == tripID {
			snap.Plan, found = p, true
		}
	}
	if !found {
		return snap, domain.NotFoundError{Resource: "plan", ID: planID}
	}

	countries := map[string]bool{}
	snap.Places = filter(d.Places, func(p models.Place) bool { return p.TripID == tripID })
	for _, p := range snap.Places {
		countries[p.CountryID] = true
	}
	snap.CountryNotes = filter(d.CountryNotes, func(n models.CountryNote) bool { return n.TripID == tripID })
	for _, n := range snap.CountryNotes {
		countries[n.CountryID] = true
	}
	snap.Countries = filter(d.Countries, func(c models.Country) bool { return countries[c.ID] })
	snap.Routes = filter(d.Routes, func(r models.Route) bool { return r.TripID == tripID })
	snap.Visits = filter(d.Visits, func(v models.Visit) bool { return v.PlanID == planID })
	snap.Traverses = filter(d.Traverses, func(t models.Traverse) bool { return t.PlanID == planID })
	snap.Activities = filter(d.Activities, func(a models.Activity) bool { return a.TripID == tripID })
	snap.PlaceNotes = filter(d.PlaceNotes, func(n models.PlaceNote) bool { return n.TripID == tripID })
	snap.RouteNotes = filter(d.RouteNotes, func(n models.RouteNote) bool { return n.TripID == tripID })
	return snap, nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := []T{}
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// DumpStore serves snapshots out of a Dump. It is read-only.
type DumpStore struct {
	Dump *Dump
}

var errReadOnly = domain.ConflictError{Resource: "dump", Msg: "read-only"}

func (s DumpStore) LoadSnapshot(_ context.Context, tripID, planID string) (models.Snapshot, error) {
	return s.Dump.Snapshot(tripID, planID)
}

func (DumpStore) Insert(context.Context, ...any) error { return errReadOnly }

func (DumpStore) Update(context.Context, ...any) error { return errReadOnly }

func (DumpStore) ApplyCascade(context.Context, string, models.Cascade) error { return errReadOnly }
