package repositories

import (
	"context"
	"database/sql"

	"travelmap/internal/domain/models"
)

type VisitRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r VisitRepository) conn() DBTX { return conn(r.DB, r.Tx) }

func (r VisitRepository) ListByPlan(ctx context.Context, planID string) ([]models.Visit, error) {
	rows, err := r.conn().QueryContext(ctx, `
		SELECT id, plan_id, place_id, COALESCE(nights,0), COALESCE(included,0)
		FROM visits
		WHERE plan_id=?
		ORDER BY id ASC`, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Visit{}
	for rows.Next() {
		var v models.Visit
		if err := rows.Scan(&v.ID, &v.PlanID, &v.PlaceID, &v.Nights, &v.Included); err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r VisitRepository) Insert(ctx context.Context, v models.Visit) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO visits (id, plan_id, place_id, nights, included) VALUES (?, ?, ?, ?, ?)`,
		v.ID, v.PlanID, v.PlaceID, v.Nights, v.Included)
	return err
}

func (r VisitRepository) Update(ctx context.Context, v models.Visit) error {
	return expectOne(r.conn().ExecContext(ctx, `
		UPDATE visits SET nights=?, included=? WHERE id=? AND plan_id=?`,
		v.Nights, v.Included, v.ID, v.PlanID))
}
