package repositories

import (
	"context"
	"database/sql"

	intdb "travelmap/internal/db"
	"travelmap/internal/domain/models"
)

// expenseRow is the shape shared by activities, place_notes and
// country_notes: an owner id plus the expense columns.
type expenseRow struct {
	ID      string
	OwnerID string
	TripID  string
	models.Expense
}

type expenseTable struct {
	table string
	owner string
}

var (
	activitiesTable   = expenseTable{table: "activities", owner: "place_id"}
	placeNotesTable   = expenseTable{table: "place_notes", owner: "place_id"}
	countryNotesTable = expenseTable{table: "country_notes", owner: "country_id"}
)

// list reads the rows of a trip; a table missing from an older schema reads
// as empty.
func (e expenseTable) list(ctx context.Context, db DBTX, tripID string) ([]expenseRow, error) {
	if !intdb.HasTable(db, e.table) {
		return []expenseRow{}, nil
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, `+e.owner+`, trip_id, COALESCE(description,''), COALESCE(category,''),
		       estimated_cost, actual_cost, COALESCE(included,0), COALESCE(paid,0)
		FROM `+e.table+`
		WHERE trip_id=?
		ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []expenseRow{}
	for rows.Next() {
		var (
			rec       expenseRow
			estimated sql.NullFloat64
			actual    sql.NullFloat64
		)
		if err := rows.Scan(&rec.ID, &rec.OwnerID, &rec.TripID, &rec.Description, &rec.Category,
			&estimated, &actual, &rec.Included, &rec.Paid); err != nil {
			return out, err
		}
		rec.EstimatedCost = intdb.FloatPtr(estimated)
		rec.ActualCost = intdb.FloatPtr(actual)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (e expenseTable) insert(ctx context.Context, db DBTX, rec expenseRow) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO `+e.table+` (id, `+e.owner+`, trip_id, description, category, estimated_cost, actual_cost, included, paid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.OwnerID, rec.TripID, rec.Description, rec.Category,
		intdb.NullFloat(rec.EstimatedCost), intdb.NullFloat(rec.ActualCost), rec.Included, rec.Paid)
	return err
}

func (e expenseTable) update(ctx context.Context, db DBTX, rec expenseRow) error {
	return expectOne(db.ExecContext(ctx, `
		UPDATE `+e.table+`
		SET description=?, category=?, estimated_cost=?, actual_cost=?, included=?, paid=?
		WHERE id=? AND trip_id=?`,
		rec.Description, rec.Category, intdb.NullFloat(rec.EstimatedCost), intdb.NullFloat(rec.ActualCost),
		rec.Included, rec.Paid, rec.ID, rec.TripID))
}

type ExpenseRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r ExpenseRepository) conn() DBTX { return conn(r.DB, r.Tx) }

func (r ExpenseRepository) ListActivities(ctx context.Context, tripID string) ([]models.Activity, error) {
	rows, err := activitiesTable.list(ctx, r.conn(), tripID)
	out := make([]models.Activity, 0, len(rows))
	for _, rec := range rows {
		out = append(out, models.Activity{ID: rec.ID, PlaceID: rec.OwnerID, TripID: rec.TripID, Expense: rec.Expense})
	}
	return out, err
}

func (r ExpenseRepository) ListPlaceNotes(ctx context.Context, tripID string) ([]models.PlaceNote, error) {
	rows, err := placeNotesTable.list(ctx, r.conn(), tripID)
	out := make([]models.PlaceNote, 0, len(rows))
	for _, rec := range rows {
		out = append(out, models.PlaceNote{ID: rec.ID, PlaceID: rec.OwnerID, TripID: rec.TripID, Expense: rec.Expense})
	}
	return out, err
}

func (r ExpenseRepository) ListCountryNotes(ctx context.Context, tripID string) ([]models.CountryNote, error) {
	rows, err := countryNotesTable.list(ctx, r.conn(), tripID)
	out := make([]models.CountryNote, 0, len(rows))
	for _, rec := range rows {
		out = append(out, models.CountryNote{ID: rec.ID, CountryID: rec.OwnerID, TripID: rec.TripID, Expense: rec.Expense})
	}
	return out, err
}

func (r ExpenseRepository) SaveActivity(ctx context.Context, a models.Activity, insert bool) error {
	rec := expenseRow{ID: a.ID, OwnerID: a.PlaceID, TripID: a.TripID, Expense: a.Expense}
	if insert {
		return activitiesTable.insert(ctx, r.conn(), rec)
	}
	return activitiesTable.update(ctx, r.conn(), rec)
}

func (r ExpenseRepository) SavePlaceNote(ctx context.Context, n models.PlaceNote, insert bool) error {
	rec := expenseRow{ID: n.ID, OwnerID: n.PlaceID, TripID: n.TripID, Expense: n.Expense}
	if insert {
		return placeNotesTable.insert(ctx, r.conn(), rec)
	}
	return placeNotesTable.update(ctx, r.conn(), rec)
}

func (r ExpenseRepository) SaveCountryNote(ctx context.Context, n models.CountryNote, insert bool) error {
	rec := expenseRow{ID: n.ID, OwnerID: n.CountryID, TripID: n.TripID, Expense: n.Expense}
	if insert {
		return countryNotesTable.insert(ctx, r.conn(), rec)
	}
	return countryNotesTable.update(ctx, r.conn(), rec)
}

func (r ExpenseRepository) ListRouteNotes(ctx context.Context, tripID string) ([]models.RouteNote, error) {
	if !intdb.HasTable(r.conn(), "route_notes") {
		return []models.RouteNote{}, nil
	}
	rows, err := r.conn().QueryContext(ctx, `
		SELECT id, route_id, trip_id, COALESCE(description,'')
		FROM route_notes
		WHERE trip_id=?
		ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RouteNote{}
	for rows.Next() {
		var n models.RouteNote
		if err := rows.Scan(&n.ID, &n.RouteID, &n.TripID, &n.Description); err != nil {
			return out, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r ExpenseRepository) SaveRouteNote(ctx context.Context, n models.RouteNote, insert bool) error {
	if insert {
		_, err := r.conn().ExecContext(ctx, `
			INSERT INTO route_notes (id, route_id, trip_id, description) VALUES (?, ?, ?, ?)`,
			n.ID, n.RouteID, n.TripID, n.Description)
		return err
	}
	return expectOne(r.conn().ExecContext(ctx, `
		UPDATE route_notes SET description=? WHERE id=? AND trip_id=?`,
		n.Description, n.ID, n.TripID))
}
