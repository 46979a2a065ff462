package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intdb "travelmap/internal/db"
	"travelmap/internal/utils"
)

const tableOptions = `ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

// schema lists the tables in creation order: referenced tables first.
var schema = []struct {
	table string
	ddl   string
}{
	{"trips", `
CREATE TABLE IF NOT EXISTS trips (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL DEFAULT ''
) ` + tableOptions},
	{"plans", `
CREATE TABLE IF NOT EXISTS plans (
	id VARCHAR(64) PRIMARY KEY,
	trip_id VARCHAR(64) NOT NULL,
	name VARCHAR(255) NOT NULL DEFAULT '',
	start_date VARCHAR(10) NULL,
	note TEXT NULL,
	priority INT NOT NULL DEFAULT 0,
	lat DOUBLE NULL,
	lng DOUBLE NULL,
	zoom DOUBLE NULL,
	start_visit_id VARCHAR(64) NULL,
	KEY idx_trip (trip_id)
) ` + tableOptions},
	{"countries", `
CREATE TABLE IF NOT EXISTS countries (
	id VARCHAR(64) PRIMARY KEY,
	name VARCHAR(255) NOT NULL DEFAULT ''
) ` + tableOptions},
	{"places", `
CREATE TABLE IF NOT EXISTS places (
	id VARCHAR(64) PRIMARY KEY,
	trip_id VARCHAR(64) NOT NULL,
	name VARCHAR(255) NOT NULL DEFAULT '',
	lat DOUBLE NOT NULL,
	lng DOUBLE NOT NULL,
	country_id VARCHAR(64) NULL,
	accommodation_cost DOUBLE NOT NULL DEFAULT 0,
	food_cost DOUBLE NOT NULL DEFAULT 0,
	miscellaneous_cost DOUBLE NOT NULL DEFAULT 0,
	KEY idx_trip (trip_id),
	KEY idx_country (country_id)
) ` + tableOptions},
	{"routes", `
CREATE TABLE IF NOT EXISTS routes (
	id VARCHAR(64) PRIMARY KEY,
	trip_id VARCHAR(64) NOT NULL,
	source VARCHAR(64) NOT NULL,
	target VARCHAR(64) NOT NULL,
	type VARCHAR(20) NULL,
	distance DOUBLE NOT NULL DEFAULT 0,
	duration DOUBLE NOT NULL DEFAULT 0,
	estimated_cost DOUBLE NULL,
	actual_cost DOUBLE NULL,
	nights INT NOT NULL DEFAULT 0,
	route LONGTEXT NULL,
	paid TINYINT(1) NOT NULL DEFAULT 0,
	KEY idx_trip (trip_id)
) ` + tableOptions},
	{"visits", `
CREATE TABLE IF NOT EXISTS visits (
	id VARCHAR(64) PRIMARY KEY,
	plan_id VARCHAR(64) NOT NULL,
	place_id VARCHAR(64) NOT NULL,
	nights INT NOT NULL DEFAULT 0,
	included TINYINT(1) NOT NULL DEFAULT 1,
	KEY idx_plan (plan_id),
	KEY idx_place (place_id)
) ` + tableOptions},
	{"traverses", `
CREATE TABLE IF NOT EXISTS traverses (
	id VARCHAR(64) PRIMARY KEY,
	plan_id VARCHAR(64) NOT NULL,
	source_visit_id VARCHAR(64) NOT NULL,
	target_visit_id VARCHAR(64) NOT NULL,
	route_id VARCHAR(64) NOT NULL,
	priority INT NOT NULL DEFAULT 0,
	rent_until VARCHAR(64) NULL,
	includes_accommodation TINYINT(1) NOT NULL DEFAULT 0,
	cost DOUBLE NOT NULL DEFAULT 0,
	booked_days INT NOT NULL DEFAULT 0,
	KEY idx_plan (plan_id),
	KEY idx_route (route_id)
) ` + tableOptions},
	{"activities", expenseDDL("activities", "place_id")},
	{"place_notes", expenseDDL("place_notes", "place_id")},
	{"country_notes", expenseDDL("country_notes", "country_id")},
	{"route_notes", `
CREATE TABLE IF NOT EXISTS route_notes (
	id VARCHAR(64) PRIMARY KEY,
	route_id VARCHAR(64) NOT NULL,
	trip_id VARCHAR(64) NOT NULL,
	description TEXT NULL,
	KEY idx_trip (trip_id)
) ` + tableOptions},
	{"users", `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL DEFAULT '',
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(50) NULL,
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'user',
	status VARCHAR(50) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email),
	UNIQUE KEY uniq_username (username)
) ` + tableOptions},
}

func expenseDDL(table, owner string) string {
	return `
CREATE TABLE IF NOT EXISTS ` + table + ` (
	id VARCHAR(64) PRIMARY KEY,
	` + owner + ` VARCHAR(64) NOT NULL,
	trip_id VARCHAR(64) NOT NULL,
	description TEXT NULL,
	category VARCHAR(50) NULL,
	estimated_cost DOUBLE NULL,
	actual_cost DOUBLE NULL,
	included TINYINT(1) NOT NULL DEFAULT 0,
	paid TINYINT(1) NOT NULL DEFAULT 0,
	KEY idx_trip (trip_id)
) ` + tableOptions
}

// EnsureSchema creates the tables that are missing and returns their names.
// Existing tables are left alone.
func EnsureSchema(ctx context.Context, db *sql.DB) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("db tidak tersedia")
	}
	created := []string{}
	for _, t := range schema {
		if intdb.HasTable(db, t.table) {
			continue
		}
		if _, err := db.ExecContext(ctx, t.ddl); err != nil {
			return created, fmt.Errorf("create %s: %w", t.table, err)
		}
		utils.LogEvent("", "schema", "create_table", t.table)
		created = append(created, t.table)
	}
	return created, nil
}
