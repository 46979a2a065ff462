package services

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
	"travelmap/internal/engine"
	"travelmap/internal/utils"
)

// Store is the persistence a session writes through. Each call is one
// external write; multi-row calls are atomic.
type Store interface {
	LoadSnapshot(ctx context.Context, tripID, planID string) (models.Snapshot, error)
	Insert(ctx context.Context, rows ...any) error
	Update(ctx context.Context, rows ...any) error
	ApplyCascade(ctx context.Context, planID string, c models.Cascade) error
}

// TripService keeps one Session per open (trip, plan).
type TripService struct {
	Store      Store
	Notifier   Notifier
	Directions Directions

	mu       sync.Mutex
	sessions map[domain.PlanKey]*Session
	loads    singleflight.Group
}

func NewTripService(store Store, notifier Notifier, directions Directions) *TripService {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &TripService{
		Store:      store,
		Notifier:   notifier,
		Directions: directions,
		sessions:   map[domain.PlanKey]*Session{},
	}
}

// Open returns the session of a plan, loading it on first use. Concurrent
// opens of the same plan share one load.
func (s *TripService) Open(ctx context.Context, tripID, planID string) (*Session, error) {
	key := domain.PlanKey{TripID: tripID, PlanID: planID}
	if sess := s.cached(key); sess != nil {
		return sess, nil
	}
	// the shared load outlives any single caller
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := s.loads.Do(key.String(), func() (any, error) {
		if sess := s.cached(key); sess != nil {
			return sess, nil
		}
		return s.load(loadCtx, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

func (s *TripService) cached(key domain.PlanKey) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[key]
}

func (s *TripService) load(ctx context.Context, key domain.PlanKey) (*Session, error) {
	reqID := utils.RequestIDFrom(ctx)
	snap, err := s.Store.LoadSnapshot(ctx, key.TripID, key.PlanID)
	if err != nil {
		utils.LogError(reqID, "trip", "load", err)
		return nil, err
	}
	view, err := engine.Resolve(engine.NewState(snap))
	if err != nil {
		utils.LogError(reqID, "trip", "load_integrity", err)
		return nil, err
	}
	sess := &Session{Key: key, svc: s}
	sess.view.Store(view)

	s.mu.Lock()
	if s.sessions == nil {
		s.sessions = map[domain.PlanKey]*Session{}
	}
	s.sessions[key] = sess
	s.mu.Unlock()

	utils.LogEvent(reqID, "trip", "load", "plan="+key.String())
	return sess, nil
}

// Invalidate drops a cached session; the next Open reloads it.
func (s *TripService) Invalidate(tripID, planID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, domain.PlanKey{TripID: tripID, PlanID: planID})
}

// evictSiblings drops the other plans of a trip, whose copy of the shared
// trip tables is stale after a write.
func (s *TripService) evictSiblings(key domain.PlanKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.sessions {
		if k.TripID == key.TripID && k != key {
			delete(s.sessions, k)
		}
	}
}

// Session is the explicit context object for one open plan. Readers get
// immutable views; mutations are serialized.
type Session struct {
	Key domain.PlanKey

	svc  *TripService
	mu   sync.Mutex
	view atomic.Pointer[engine.View]
}

// View is the resolved state at the latest version.
func (s *Session) View() *engine.View {
	return s.view.Load()
}

func (s *Session) Version() uint64 {
	return s.View().Version()
}

func (s *Session) Trip() models.Trip {
	return s.View().State().Trip.Record
}

func (s *Session) Plan() models.Plan {
	return s.View().State().Plan.Record
}

func (s *Session) Countries() []models.Country {
	return s.View().State().Trip.Countries.Values()
}

func (s *Session) Places() []models.Place {
	return s.View().State().Trip.Places.Values()
}

func (s *Session) Routes() []models.Route {
	return s.View().State().Trip.Routes.Values()
}

func (s *Session) Visits() []models.Visit {
	return s.View().State().Plan.Visits.Values()
}

func (s *Session) Traverses() []models.Traverse {
	return s.View().State().Plan.Traverses.Values()
}

func (s *Session) Activities() []models.Activity {
	return s.View().State().Trip.Activities.Values()
}

func (s *Session) PlaceNotes() []models.PlaceNote {
	return s.View().State().Trip.PlaceNotes.Values()
}

func (s *Session) CountryNotes() []models.CountryNote {
	return s.View().State().Trip.CountryNotes.Values()
}

func (s *Session) RouteNotes() []models.RouteNote {
	return s.View().State().Trip.RouteNotes.Values()
}

// write persists a computed change.
type write func(ctx context.Context, store Store) error

func insert(rows ...any) write {
	return func(ctx context.Context, store Store) error { return store.Insert(ctx, rows...) }
}

func update(rows ...any) write {
	return func(ctx context.Context, store Store) error { return store.Update(ctx, rows...) }
}

func cascade(planID string, c models.Cascade) write {
	return func(ctx context.Context, store Store) error { return store.ApplyCascade(ctx, planID, c) }
}

// apply runs one mutation: compute the next State, resolve it, persist it,
// then publish it. Any failure leaves the published State untouched.
func (s *Session) apply(ctx context.Context, action string, mutate func(cur engine.State) (engine.State, write, error)) (*engine.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.view.Load()
	view, err := s.compute(ctx, cur, mutate)
	if err != nil {
		s.svc.notify(ctx, Event{Key: s.Key, Action: action, Version: cur.Version(), Err: err})
		return nil, err
	}
	s.view.Store(view)
	s.svc.evictSiblings(s.Key)
	s.svc.notify(ctx, Event{Key: s.Key, Action: action, Version: view.Version()})
	return view, nil
}

func (s *Session) compute(ctx context.Context, cur *engine.View, mutate func(cur engine.State) (engine.State, write, error)) (*engine.View, error) {
	next, persist, err := mutate(cur.State())
	if err != nil {
		return nil, err
	}
	view, err := engine.Resolve(next)
	if err != nil {
		return nil, err
	}
	if persist != nil {
		if err := persist(ctx, s.svc.Store); err != nil {
			return nil, domain.InternalError{Msg: "gagal menyimpan perubahan", Err: err}
		}
	}
	return view, nil
}

func (s *TripService) notify(ctx context.Context, e Event) {
	if s.Notifier != nil {
		s.Notifier.Notify(ctx, e)
	}
}
