package repositories

import (
	"context"
	"database/sql"
	"strings"

	intdb "travelmap/internal/db"
	"travelmap/internal/domain/models"
)

type TraverseRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r TraverseRepository) conn() DBTX { return conn(r.DB, r.Tx) }

// ListByPlan reads traverses; the manual cost columns came later and are
// probed so older databases still load.
func (r TraverseRepository) ListByPlan(ctx context.Context, planID string) ([]models.Traverse, error) {
	db := r.conn()
	cols := []string{
		"id", "plan_id", "source_visit_id", "target_visit_id", "route_id",
		"COALESCE(priority,0)", "rent_until", "COALESCE(includes_accommodation,0)",
	}
	if intdb.HasColumn(db, "traverses", "cost") {
		cols = append(cols, "COALESCE(cost,0)")
	} else {
		cols = append(cols, "0")
	}
	if intdb.HasColumn(db, "traverses", "booked_days") {
		cols = append(cols, "COALESCE(booked_days,0)")
	} else {
		cols = append(cols, "0")
	}

	rows, err := db.QueryContext(ctx, `SELECT `+strings.Join(cols, ",")+` FROM traverses WHERE plan_id=? ORDER BY id ASC`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Traverse{}
	for rows.Next() {
		var (
			t         models.Traverse
			rentUntil sql.NullString
		)
		if err := rows.Scan(&t.ID, &t.PlanID, &t.SourceVisitID, &t.TargetVisitID, &t.RouteID,
			&t.Priority, &rentUntil, &t.IncludesAccommodation, &t.Cost, &t.BookedDays); err != nil {
			return out, err
		}
		t.RentUntil = intdb.StringPtr(rentUntil)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r TraverseRepository) Insert(ctx context.Context, t models.Traverse) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO traverses (id, plan_id, source_visit_id, target_visit_id, route_id, priority, rent_until, includes_accommodation, cost, booked_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.PlanID, t.SourceVisitID, t.TargetVisitID, t.RouteID, t.Priority,
		intdb.NullIfEmpty(t.RentUntilID()), t.IncludesAccommodation, t.Cost, t.BookedDays)
	return err
}

func (r TraverseRepository) Update(ctx context.Context, t models.Traverse) error {
	return expectOne(r.conn().ExecContext(ctx, `
		UPDATE traverses
		SET priority=?, rent_until=?, includes_accommodation=?, cost=?, booked_days=?
		WHERE id=? AND plan_id=?`,
		t.Priority, intdb.NullIfEmpty(t.RentUntilID()), t.IncludesAccommodation, t.Cost, t.BookedDays,
		t.ID, t.PlanID))
}
