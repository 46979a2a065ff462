package repositories

import (
	"context"
	"database/sql"

	intdb "travelmap/internal/db"
	"travelmap/internal/domain/models"
)

type RouteRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r RouteRepository) conn() DBTX { return conn(r.DB, r.Tx) }

func (r RouteRepository) ListByTrip(ctx context.Context, tripID string) ([]models.Route, error) {
	rows, err := r.conn().QueryContext(ctx, `
		SELECT id, trip_id, source, target, COALESCE(type,''), COALESCE(distance,0), COALESCE(duration,0),
		       estimated_cost, actual_cost, COALESCE(nights,0), COALESCE(route,''), COALESCE(paid,0)
		FROM routes
		WHERE trip_id=?
		ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var (
			rt        models.Route
			typ       string
			estimated sql.NullFloat64
			actual    sql.NullFloat64
		)
		if err := rows.Scan(&rt.ID, &rt.TripID, &rt.SourceID, &rt.TargetID, &typ, &rt.Distance, &rt.Duration,
			&estimated, &actual, &rt.Nights, &rt.Path, &rt.Paid); err != nil {
			return out, err
		}
		rt.Type = models.RouteType(typ)
		rt.EstimatedCost = intdb.FloatPtr(estimated)
		rt.ActualCost = intdb.FloatPtr(actual)
		out = append(out, rt)
	}
	return out, rows.Err()
}

func (r RouteRepository) Insert(ctx context.Context, rt models.Route) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO routes (id, trip_id, source, target, type, distance, duration, estimated_cost, actual_cost, nights, route, paid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rt.ID, rt.TripID, rt.SourceID, rt.TargetID, intdb.NullIfEmpty(string(rt.Type)), rt.Distance, rt.Duration,
		intdb.NullFloat(rt.EstimatedCost), intdb.NullFloat(rt.ActualCost), rt.Nights, rt.Path, rt.Paid)
	return err
}

func (r RouteRepository) Update(ctx context.Context, rt models.Route) error {
	return expectOne(r.conn().ExecContext(ctx, `
		UPDATE routes
		SET type=?, distance=?, duration=?, estimated_cost=?, actual_cost=?, nights=?, route=?, paid=?
		WHERE id=? AND trip_id=?`,
		intdb.NullIfEmpty(string(rt.Type)), rt.Distance, rt.Duration,
		intdb.NullFloat(rt.EstimatedCost), intdb.NullFloat(rt.ActualCost), rt.Nights, rt.Path, rt.Paid,
		rt.ID, rt.TripID))
}
