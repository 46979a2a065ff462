package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "travelmap/internal/db"
	"travelmap/internal/domain/models"
)

type TripRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r TripRepository) conn() DBTX { return conn(r.DB, r.Tx) }

func (r TripRepository) Get(ctx context.Context, id string) (models.Trip, error) {
	var t models.Trip
	err := r.conn().QueryRowContext(ctx, `SELECT id, COALESCE(name,'') FROM trips WHERE id=?`, id).Scan(&t.ID, &t.Name)
	return t, err
}

func (r TripRepository) List(ctx context.Context) ([]models.Trip, error) {
	rows, err := r.conn().QueryContext(ctx, `SELECT id, COALESCE(name,'') FROM trips ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var t models.Trip
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TripRepository) Insert(ctx context.Context, t models.Trip) error {
	_, err := r.conn().ExecContext(ctx, `INSERT INTO trips (id, name) VALUES (?, ?)`, t.ID, t.Name)
	return err
}

type PlanRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r PlanRepository) conn() DBTX { return conn(r.DB, r.Tx) }

// planColumns probes start_visit_id, which older schemas lack.
func (r PlanRepository) planColumns() string {
	cols := []string{
		"id", "trip_id", "COALESCE(name,'')", "COALESCE(start_date,'')", "COALESCE(note,'')",
		"COALESCE(priority,0)", "COALESCE(lat,0)", "COALESCE(lng,0)", "COALESCE(zoom,0)",
	}
	if intdb.HasColumn(r.conn(), "plans", "start_visit_id") {
		cols = append(cols, "COALESCE(start_visit_id,'')")
	} else {
		cols = append(cols, "''")
	}
	return strings.Join(cols, ",")
}

func scanPlan(row interface{ Scan(...any) error }) (models.Plan, error) {
	var p models.Plan
	err := row.Scan(&p.ID, &p.TripID, &p.Name, &p.StartDate, &p.Note, &p.Priority, &p.Lat, &p.Lng, &p.Zoom, &p.StartVisitID)
	return p, err
}

func (r PlanRepository) Get(ctx context.Context, tripID, id string) (models.Plan, error) {
	row := r.conn().QueryRowContext(ctx, `SELECT `+r.planColumns()+` FROM plans WHERE id=? AND trip_id=?`, id, tripID)
	return scanPlan(row)
}

func (r PlanRepository) ListByTrip(ctx context.Context, tripID string) ([]models.Plan, error) {
	rows, err := r.conn().QueryContext(ctx, `SELECT `+r.planColumns()+` FROM plans WHERE trip_id=? ORDER BY priority ASC, id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PlanRepository) Insert(ctx context.Context, p models.Plan) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO plans (id, trip_id, name, start_date, note, priority, lat, lng, zoom, start_visit_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TripID, p.Name, intdb.NullIfEmpty(p.StartDate), p.Note, p.Priority, p.Lat, p.Lng, p.Zoom, intdb.NullIfEmpty(p.StartVisitID))
	return err
}

func (r PlanRepository) Update(ctx context.Context, p models.Plan) error {
	return expectOne(r.conn().ExecContext(ctx, `
		UPDATE plans SET name=?, start_date=?, note=?, priority=?, lat=?, lng=?, zoom=?, start_visit_id=?
		WHERE id=? AND trip_id=?`,
		p.Name, intdb.NullIfEmpty(p.StartDate), p.Note, p.Priority, p.Lat, p.Lng, p.Zoom, intdb.NullIfEmpty(p.StartVisitID),
		p.ID, p.TripID))
}
