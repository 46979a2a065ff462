package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
)

func TestOpenSharesConcurrentLoad(t *testing.T) {
	store := &fakeStore{snap: franceSnapshot(), loadGate: make(chan struct{})}
	svc := NewTripService(store, &recorder{}, nil)

	var wg sync.WaitGroup
	sessions := make([]*Session, 5)
	for i := range sessions {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sess, err := svc.Open(context.Background(), "trip1", "plan1")
			if err != nil {
				t.Errorf("open: %v", err)
				return
			}
			sessions[i] = sess
		}(i)
	}
	close(store.loadGate)
	wg.Wait()

	if got := store.loads.Load(); got != 1 {
		t.Fatalf("expected a single load, got %d", got)
	}
	for i, sess := range sessions {
		if sess != sessions[0] {
			t.Fatalf("session %d differs from the first", i)
		}
	}
}

func TestOpenSurvivesFirstCallerCancel(t *testing.T) {
	store := &fakeStore{snap: franceSnapshot(), loadGate: make(chan struct{})}
	svc := NewTripService(store, &recorder{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	type result struct {
		sess *Session
		err  error
	}
	first := make(chan result, 1)
	go func() {
		sess, err := svc.Open(ctx, "trip1", "plan1")
		first <- result{sess, err}
	}()
	for store.loads.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	second := make(chan result, 1)
	go func() {
		sess, err := svc.Open(context.Background(), "trip1", "plan1")
		second <- result{sess, err}
	}()

	cancel()
	close(store.loadGate)

	a, b := <-first, <-second
	if a.err != nil || b.err != nil {
		t.Fatalf("open after cancel: first=%v second=%v", a.err, b.err)
	}
	if a.sess != b.sess {
		t.Fatalf("callers got different sessions")
	}
	if got := store.loads.Load(); got != 1 {
		t.Fatalf("expected a single load, got %d", got)
	}
}

func TestOpenRejectsBrokenSnapshot(t *testing.T) {
	snap := franceSnapshot()
	snap.Visits = append(snap.Visits, models.Visit{ID: "v9", PlaceID: "ghost", PlanID: "plan1"})
	svc := NewTripService(&fakeStore{snap: snap}, &recorder{}, nil)

	_, err := svc.Open(context.Background(), "trip1", "plan1")
	if !domain.IsIntegrity(err) {
		t.Fatalf("expected integrity error, got %v", err)
	}
	if svc.cached(domain.PlanKey{TripID: "trip1", PlanID: "plan1"}) != nil {
		t.Fatalf("broken plan must not be cached")
	}
}

func TestAddVisitPersistsAndPublishes(t *testing.T) {
	sess, store, rec, _ := openFrance(t)

	v, err := sess.AddVisit(context.Background(), models.Visit{PlaceID: "lyon", Nights: 3})
	if err != nil {
		t.Fatalf("add visit: %v", err)
	}
	if v.ID == "" || v.PlanID != "plan1" {
		t.Fatalf("visit not stamped: %+v", v)
	}
	if sess.Version() != 2 {
		t.Fatalf("version: got %d want 2", sess.Version())
	}
	if len(store.inserted) != 1 || store.inserted[0].(models.Visit).ID != v.ID {
		t.Fatalf("inserted: %+v", store.inserted)
	}
	if e := rec.last(); e.Action != "add_visit" || e.Err != nil || e.Version != 2 {
		t.Fatalf("event: %+v", e)
	}
}

func TestFailedWriteKeepsState(t *testing.T) {
	sess, store, rec, _ := openFrance(t)
	store.failNext = errDown
	before := sess.View()

	nights := 9
	_, err := sess.UpdateVisit(context.Background(), "v1", models.VisitPatch{Nights: &nights})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if sess.View() != before {
		t.Fatalf("view replaced after failed write")
	}
	if v, _ := sess.View().State().Plan.Visits.Get("v1"); v.Nights != 2 {
		t.Fatalf("nights changed to %d", v.Nights)
	}
	if e := rec.last(); e.Action != "update_visit" || e.Err == nil {
		t.Fatalf("failure not notified: %+v", e)
	}
}

func TestMissingReferenceIsNotFound(t *testing.T) {
	sess, store, _, _ := openFrance(t)

	_, err := sess.AddVisit(context.Background(), models.Visit{PlaceID: "nowhere"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(store.inserted) != 0 || sess.Version() != 1 {
		t.Fatalf("state touched: inserted=%d version=%d", len(store.inserted), sess.Version())
	}
}

func TestRemovePlaceWritesCascade(t *testing.T) {
	sess, store, _, _ := openFrance(t)

	c, err := sess.RemovePlace(context.Background(), "lyon")
	if err != nil {
		t.Fatalf("remove place: %v", err)
	}
	if len(store.cascades) != 1 {
		t.Fatalf("expected one cascade write, got %d", len(store.cascades))
	}
	if len(c.Visits) != 1 || c.Visits[0] != "v2" || len(c.Traverses) != 1 || len(c.Routes) != 1 {
		t.Fatalf("cascade: %+v", c)
	}
	if len(c.Countries) != 0 {
		t.Fatalf("France still has Paris, got countries %v", c.Countries)
	}
	if len(sess.Places()) != 1 || len(sess.Routes()) != 0 || len(sess.Traverses()) != 0 {
		t.Fatalf("state after removal: places=%d routes=%d traverses=%d", len(sess.Places()), len(sess.Routes()), len(sess.Traverses()))
	}
}

func TestAddRouteDefaultsDistance(t *testing.T) {
	sess, store, _, dir := openFrance(t)

	r, err := sess.AddRoute(context.Background(), models.Route{SourceID: "lyon", TargetID: "paris", Type: models.RouteFlying})
	if err != nil {
		t.Fatalf("add route: %v", err)
	}
	if r.Distance < 380 || r.Distance > 400 {
		t.Fatalf("distance: got %.1f km", r.Distance)
	}
	if dir.calls != 0 {
		t.Fatalf("flying must not call directions")
	}
	if len(store.inserted) != 1 {
		t.Fatalf("inserted: %d", len(store.inserted))
	}
}

func TestUpdateRouteToLandModeUsesDirections(t *testing.T) {
	sess, store, _, dir := openFrance(t)
	dir.info = RouteInfo{Distance: 465, Duration: 280, Path: `{"type":"LineString","coordinates":[[2.35,48.85],[4.83,45.76]]}`}

	driving := models.RouteDriving
	r, err := sess.UpdateRoute(context.Background(), "r1", models.RoutePatch{Type: &driving})
	if err != nil {
		t.Fatalf("update route: %v", err)
	}
	if dir.calls != 1 || r.Distance != 465 || r.Duration != 280 || r.Path == "" {
		t.Fatalf("route not enriched: calls=%d %+v", dir.calls, r)
	}
	if len(store.updated) != 1 {
		t.Fatalf("expected one update, got %d", len(store.updated))
	}
}

func TestUpdateRouteProceedsWhenDirectionsFail(t *testing.T) {
	sess, _, rec, dir := openFrance(t)
	dir.err = context.DeadlineExceeded

	bus := models.RouteBus
	r, err := sess.UpdateRoute(context.Background(), "r1", models.RoutePatch{Type: &bus})
	if err != nil {
		t.Fatalf("update route: %v", err)
	}
	if r.Type != models.RouteBus || r.Path != "" {
		t.Fatalf("route: %+v", r)
	}
	got := rec.actions()
	want := []string{"route_directions!", "update_route"}
	if len(got) < 2 || got[len(got)-2] != want[0] || got[len(got)-1] != want[1] {
		t.Fatalf("events: got %v want suffix %v", got, want)
	}
}

func TestSetStartVisitUpdatesPlan(t *testing.T) {
	sess, store, _, _ := openFrance(t)

	plan, err := sess.SetStartVisit(context.Background(), "v2")
	if err != nil {
		t.Fatalf("set start: %v", err)
	}
	if plan.StartVisitID != "v2" {
		t.Fatalf("start: %q", plan.StartVisitID)
	}
	if it := sess.View().Itinerary(); len(it) != 1 || it[0].ID != "v2" {
		t.Fatalf("itinerary from v2: %+v", it)
	}
	if _, ok := store.updated[0].(models.Plan); !ok {
		t.Fatalf("expected plan row, got %T", store.updated[0])
	}
	if _, err := sess.SetStartDate(context.Background(), "01/07/2026"); !domain.IsValidation(err) {
		t.Fatalf("bad date: got %v", err)
	}
}

func TestWriteEvictsSiblingPlans(t *testing.T) {
	store := &fakeStore{snap: franceSnapshot()}
	svc := NewTripService(store, &recorder{}, nil)
	sess, err := svc.Open(context.Background(), "trip1", "plan1")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.Open(context.Background(), "trip1", "plan2"); err != nil {
		t.Fatalf("open sibling: %v", err)
	}

	food := 45.0
	if _, err := sess.UpdatePlace(context.Background(), "paris", models.PlacePatch{FoodCost: &food}, nil); err != nil {
		t.Fatalf("update place: %v", err)
	}
	if svc.cached(domain.PlanKey{TripID: "trip1", PlanID: "plan2"}) != nil {
		t.Fatalf("sibling plan still cached")
	}
	if svc.cached(sess.Key) != sess {
		t.Fatalf("own session evicted")
	}
}

func TestAddPlaceWithNewCountry(t *testing.T) {
	sess, store, _, _ := openFrance(t)

	p, err := sess.AddPlace(context.Background(),
		models.Place{Name: "Turin", Lat: 45.07, Lng: 7.68, CountryID: "IT"},
		&models.Country{ID: "IT", Name: "Italy"})
	if err != nil {
		t.Fatalf("add place: %v", err)
	}
	if len(store.inserted) != 2 {
		t.Fatalf("expected country and place rows, got %+v", store.inserted)
	}
	if _, ok := store.inserted[0].(models.Country); !ok {
		t.Fatalf("country must be written first, got %T", store.inserted[0])
	}
	if store.inserted[1].(models.Place).ID != p.ID {
		t.Fatalf("place row mismatch")
	}

	if _, err := sess.AddPlace(context.Background(), models.Place{Name: "Bern", CountryID: "CH"}, nil); !domain.IsNotFound(err) {
		t.Fatalf("unknown country without record: got %v", err)
	}
}
