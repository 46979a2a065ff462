package repositories

import (
	"context"
	"database/sql"

	intdb "travelmap/internal/db"
	"travelmap/internal/domain/models"
)

type PlaceRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r PlaceRepository) conn() DBTX { return conn(r.DB, r.Tx) }

func (r PlaceRepository) ListByTrip(ctx context.Context, tripID string) ([]models.Place, error) {
	rows, err := r.conn().QueryContext(ctx, `
		SELECT id, trip_id, COALESCE(name,''), lat, lng, COALESCE(country_id,''),
		       COALESCE(accommodation_cost,0), COALESCE(food_cost,0), COALESCE(miscellaneous_cost,0)
		FROM places
		WHERE trip_id=?
		ORDER BY id ASC`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Place{}
	for rows.Next() {
		var p models.Place
		if err := rows.Scan(&p.ID, &p.TripID, &p.Name, &p.Lat, &p.Lng, &p.CountryID,
			&p.AccommodationCost, &p.FoodCost, &p.MiscellaneousCost); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r PlaceRepository) Insert(ctx context.Context, p models.Place) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO places (id, trip_id, name, lat, lng, country_id, accommodation_cost, food_cost, miscellaneous_cost)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.TripID, p.Name, p.Lat, p.Lng, intdb.NullIfEmpty(p.CountryID),
		p.AccommodationCost, p.FoodCost, p.MiscellaneousCost)
	return err
}

func (r PlaceRepository) Update(ctx context.Context, p models.Place) error {
	return expectOne(r.conn().ExecContext(ctx, `
		UPDATE places
		SET name=?, lat=?, lng=?, country_id=?, accommodation_cost=?, food_cost=?, miscellaneous_cost=?
		WHERE id=? AND trip_id=?`,
		p.Name, p.Lat, p.Lng, intdb.NullIfEmpty(p.CountryID), p.AccommodationCost, p.FoodCost, p.MiscellaneousCost,
		p.ID, p.TripID))
}

// CountryRepository reads countries shared by all trips.
type CountryRepository struct {
	DB *sql.DB
	Tx *sql.Tx
}

func (r CountryRepository) conn() DBTX { return conn(r.DB, r.Tx) }

// ListByTrip returns countries referenced by the trip's places or notes.
func (r CountryRepository) ListByTrip(ctx context.Context, tripID string) ([]models.Country, error) {
	rows, err := r.conn().QueryContext(ctx, `
		SELECT c.id, COALESCE(c.name,'')
		FROM countries c
		WHERE c.id IN (SELECT country_id FROM places WHERE trip_id=?)
		   OR c.id IN (SELECT country_id FROM country_notes WHERE trip_id=?)
		ORDER BY c.id ASC`, tripID, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Upsert inserts the country or refreshes its name.
func (r CountryRepository) Upsert(ctx context.Context, c models.Country) error {
	_, err := r.conn().ExecContext(ctx, `
		INSERT INTO countries (id, name) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE name=VALUES(name)`, c.ID, c.Name)
	return err
}
