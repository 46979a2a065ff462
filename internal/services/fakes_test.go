package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/paulmach/orb"

	"travelmap/internal/domain/models"
)

type fakeStore struct {
	mu       sync.Mutex
	snap     models.Snapshot
	loads    atomic.Int32
	inserted []any
	updated  []any
	cascades []models.Cascade
	failNext error
	loadGate chan struct{}
}

func (f *fakeStore) LoadSnapshot(ctx context.Context, tripID, planID string) (models.Snapshot, error) {
	f.loads.Add(1)
	if f.loadGate != nil {
		select {
		case <-f.loadGate:
		case <-ctx.Done():
			return models.Snapshot{}, ctx.Err()
		}
	}
	return f.snap, nil
}

func (f *fakeStore) fail() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakeStore) Insert(ctx context.Context, rows ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}
	f.inserted = append(f.inserted, rows...)
	return nil
}

func (f *fakeStore) Update(ctx context.Context, rows ...any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}
	f.updated = append(f.updated, rows...)
	return nil
}

func (f *fakeStore) ApplyCascade(ctx context.Context, planID string, c models.Cascade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail(); err != nil {
		return err
	}
	f.cascades = append(f.cascades, c)
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(ctx context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		if e.Err != nil {
			out = append(out, e.Action+"!")
			continue
		}
		out = append(out, e.Action)
	}
	return out
}

type fakeDirections struct {
	info  RouteInfo
	err   error
	calls int
}

func (d *fakeDirections) Lookup(ctx context.Context, mode models.RouteType, from, to orb.Point) (RouteInfo, error) {
	d.calls++
	return d.info, d.err
}

var errDown = errors.New("database down")

func f64(v float64) *float64 { return &v }

// franceSnapshot: Paris (2 nights) -> Lyon (1 night) by train.
func franceSnapshot() models.Snapshot {
	return models.Snapshot{
		Trip:      models.Trip{ID: "trip1", Name: "France"},
		Plan:      models.Plan{ID: "plan1", TripID: "trip1", Name: "Summer", StartDate: "2026-07-01"},
		Countries: []models.Country{{ID: "FR", Name: "France"}},
		Places: []models.Place{
			{ID: "paris", Name: "Paris", Lat: 48.8566, Lng: 2.3522, CountryID: "FR", TripID: "trip1", AccommodationCost: 100, FoodCost: 30},
			{ID: "lyon", Name: "Lyon", Lat: 45.764, Lng: 4.8357, CountryID: "FR", TripID: "trip1", AccommodationCost: 80, FoodCost: 20},
		},
		Routes: []models.Route{
			{ID: "r1", SourceID: "paris", TargetID: "lyon", Type: models.RouteTrain, EstimatedCost: f64(50), TripID: "trip1"},
		},
		Visits: []models.Visit{
			{ID: "v1", PlaceID: "paris", PlanID: "plan1", Nights: 2, Included: true},
			{ID: "v2", PlaceID: "lyon", PlanID: "plan1", Nights: 1, Included: true},
		},
		Traverses: []models.Traverse{
			{ID: "t1", SourceVisitID: "v1", TargetVisitID: "v2", RouteID: "r1", PlanID: "plan1"},
		},
	}
}

func openFrance(t testing.TB) (*Session, *fakeStore, *recorder, *fakeDirections) {
	t.Helper()
	store := &fakeStore{snap: franceSnapshot()}
	rec := &recorder{}
	dir := &fakeDirections{}
	svc := NewTripService(store, rec, dir)
	sess, err := svc.Open(context.Background(), "trip1", "plan1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return sess, store, rec, dir
}
