package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "travelmap/internal/config"
	"travelmap/internal/domain"
	"travelmap/internal/domain/models"
)

// Store is the MySQL persistence of trips and plans. Every call is one
// external write: multi-row writes share a transaction.
type Store struct {
	DB *sql.DB
}

func (s Store) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// LoadSnapshot reads one trip with one of its plans.
func (s Store) LoadSnapshot(ctx context.Context, tripID, planID string) (models.Snapshot, error) {
	var snap models.Snapshot
	db := s.db()
	if db == nil {
		return snap, domain.InternalError{Msg: "database belum terhubung"}
	}

	trip, err := TripRepository{DB: db}.Get(ctx, tripID)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, domain.NotFoundError{Resource: "trip", ID: tripID}
	}
	if err != nil {
		return snap, fmt.Errorf("load trip: %w", err)
	}
	plan, err := PlanRepository{DB: db}.Get(ctx, tripID, planID)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, domain.NotFoundError{Resource: "plan", ID: planID}
	}
	if err != nil {
		return snap, fmt.Errorf("load plan: %w", err)
	}
	snap.Trip, snap.Plan = trip, plan

	expenses := ExpenseRepository{DB: db}
	loaders := []struct {
		name string
		load func() error
	}{
		{"countries", func() (err error) { snap.Countries, err = CountryRepository{DB: db}.ListByTrip(ctx, tripID); return }},
		{"places", func() (err error) { snap.Places, err = PlaceRepository{DB: db}.ListByTrip(ctx, tripID); return }},
		{"routes", func() (err error) { snap.Routes, err = RouteRepository{DB: db}.ListByTrip(ctx, tripID); return }},
		{"visits", func() (err error) { snap.Visits, err = VisitRepository{DB: db}.ListByPlan(ctx, planID); return }},
		{"traverses", func() (err error) { snap.Traverses, err = TraverseRepository{DB: db}.ListByPlan(ctx, planID); return }},
		{"activities", func() (err error) { snap.Activities, err = expenses.ListActivities(ctx, tripID); return }},
		{"place notes", func() (err error) { snap.PlaceNotes, err = expenses.ListPlaceNotes(ctx, tripID); return }},
		{"country notes", func() (err error) { snap.CountryNotes, err = expenses.ListCountryNotes(ctx, tripID); return }},
		{"route notes", func() (err error) { snap.RouteNotes, err = expenses.ListRouteNotes(ctx, tripID); return }},
	}
	for _, l := range loaders {
		if err := l.load(); err != nil {
			return snap, fmt.Errorf("load %s: %w", l.name, err)
		}
	}
	return snap, nil
}

// Insert writes new rows in one transaction, in the order given.
func (s Store) Insert(ctx context.Context, rows ...any) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, row := range rows {
			if err := save(ctx, tx, row, true); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update rewrites existing rows in one transaction. Countries are upserted.
func (s Store) Update(ctx context.Context, rows ...any) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, row := range rows {
			if err := save(ctx, tx, row, false); err != nil {
				return err
			}
		}
		return nil
	})
}

// ApplyCascade removes every row named by the cascade atomically.
func (s Store) ApplyCascade(ctx context.Context, planID string, c models.Cascade) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return CascadeRepository{Tx: tx}.Apply(ctx, planID, c)
	})
}

func (s Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	db := s.db()
	if db == nil {
		return domain.InternalError{Msg: "database belum terhubung"}
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func save(ctx context.Context, tx *sql.Tx, row any, insert bool) error {
	switch v := row.(type) {
	case models.Country:
		return CountryRepository{Tx: tx}.Upsert(ctx, v)
	case models.Place:
		if insert {
			return PlaceRepository{Tx: tx}.Insert(ctx, v)
		}
		return PlaceRepository{Tx: tx}.Update(ctx, v)
	case models.Route:
		if insert {
			return RouteRepository{Tx: tx}.Insert(ctx, v)
		}
		return RouteRepository{Tx: tx}.Update(ctx, v)
	case models.Visit:
		if insert {
			return VisitRepository{Tx: tx}.Insert(ctx, v)
		}
		return VisitRepository{Tx: tx}.Update(ctx, v)
	case models.Traverse:
		if insert {
			return TraverseRepository{Tx: tx}.Insert(ctx, v)
		}
		return TraverseRepository{Tx: tx}.Update(ctx, v)
	case models.Plan:
		if insert {
			return PlanRepository{Tx: tx}.Insert(ctx, v)
		}
		return PlanRepository{Tx: tx}.Update(ctx, v)
	case models.Trip:
		return TripRepository{Tx: tx}.Insert(ctx, v)
	case models.Activity:
		return ExpenseRepository{Tx: tx}.SaveActivity(ctx, v, insert)
	case models.PlaceNote:
		return ExpenseRepository{Tx: tx}.SavePlaceNote(ctx, v, insert)
	case models.CountryNote:
		return ExpenseRepository{Tx: tx}.SaveCountryNote(ctx, v, insert)
	case models.RouteNote:
		return ExpenseRepository{Tx: tx}.SaveRouteNote(ctx, v, insert)
	default:
		return domain.InternalError{Msg: fmt.Sprintf("unsupported row %T", row)}
	}
}
