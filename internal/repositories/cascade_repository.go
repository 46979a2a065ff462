package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "travelmap/internal/db"
	"travelmap/internal/domain/models"
)

// CascadeRepository applies a removal cascade. Run it inside a transaction:
// a half-applied cascade leaves dangling ids in storage.
type CascadeRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r CascadeRepository) conn() DBTX { return conn(r.DB, r.Tx) }

// execIn runs query with every %[1]s replaced by the id placeholder list;
// times is how many id lists the query holds.
func (r CascadeRepository) execIn(ctx context.Context, query string, ids []string, times int) error {
	if len(ids) == 0 {
		return nil
	}
	args := []any{}
	for i := 0; i < times; i++ {
		args = append(args, intdb.Args(ids)...)
	}
	_, err := r.conn().ExecContext(ctx, fmt.Sprintf(query, intdb.Placeholders(len(ids))), args...)
	return err
}

// Apply removes every row the cascade names. Place removal also reaches the
// Visits of other plans, and Route removal their Traverses, since both are
// owned by the trip.
func (r CascadeRepository) Apply(ctx context.Context, planID string, c models.Cascade) error {
	if c.StartCleared {
		if _, err := r.conn().ExecContext(ctx, `UPDATE plans SET start_visit_id=NULL WHERE id=?`, planID); err != nil {
			return fmt.Errorf("clear start: %w", err)
		}
	}

	steps := []struct {
		name  string
		query string
		ids   []string
		times int
	}{
		{"clear rent_until", `UPDATE traverses SET rent_until=NULL WHERE id IN (%[1]s)`, c.RentUntilCleared, 1},
		{"clear foreign rent_until", `UPDATE traverses SET rent_until=NULL WHERE rent_until IN (SELECT id FROM visits WHERE place_id IN (%[1]s))`, c.Places, 1},
		{"clear foreign start", `UPDATE plans SET start_visit_id=NULL WHERE start_visit_id IN (SELECT id FROM visits WHERE place_id IN (%[1]s))`, c.Places, 1},
		{"delete place traverses", `DELETE FROM traverses WHERE source_visit_id IN (SELECT id FROM visits WHERE place_id IN (%[1]s)) OR target_visit_id IN (SELECT id FROM visits WHERE place_id IN (%[1]s))`, c.Places, 2},
		{"delete route traverses", `DELETE FROM traverses WHERE route_id IN (%[1]s)`, c.Routes, 1},
		{"delete traverses", `DELETE FROM traverses WHERE id IN (%[1]s)`, c.Traverses, 1},
		{"delete place visits", `DELETE FROM visits WHERE place_id IN (%[1]s)`, c.Places, 1},
		{"delete visits", `DELETE FROM visits WHERE id IN (%[1]s)`, c.Visits, 1},
		{"delete route notes", `DELETE FROM route_notes WHERE id IN (%[1]s)`, c.RouteNotes, 1},
		{"delete activities", `DELETE FROM activities WHERE id IN (%[1]s)`, c.Activities, 1},
		{"delete place notes", `DELETE FROM place_notes WHERE id IN (%[1]s)`, c.PlaceNotes, 1},
		{"delete country notes", `DELETE FROM country_notes WHERE id IN (%[1]s)`, c.CountryNotes, 1},
		{"delete routes", `DELETE FROM routes WHERE id IN (%[1]s)`, c.Routes, 1},
		{"delete places", `DELETE FROM places WHERE id IN (%[1]s)`, c.Places, 1},
		{"delete countries", `DELETE FROM countries WHERE id IN (%[1]s) AND id NOT IN (SELECT country_id FROM places WHERE country_id IS NOT NULL)`, c.Countries, 1},
	}
	for _, st := range steps {
		if err := r.execIn(ctx, st.query, st.ids, st.times); err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
	}
	return nil
}
