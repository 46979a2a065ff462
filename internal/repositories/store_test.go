package repositories

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"travelmap/internal/domain"
	"travelmap/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestStoreInsertCommitsAllRows(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO countries").WithArgs("fr", "France").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO places").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := Store{DB: db}.Insert(context.Background(),
		models.Country{ID: "fr", Name: "France"},
		models.Place{ID: "paris", TripID: "trip1", Name: "Paris", Lat: 48.85, Lng: 2.35, CountryID: "fr"},
	)
	if err != nil {
		t.Fatalf("insert error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreUpdateRollsBackOnMissingRow(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE visits").WithArgs(3, true, "v9", "plan1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := Store{DB: db}.Update(context.Background(), models.Visit{ID: "v9", PlanID: "plan1", Nights: 3, Included: true})
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStoreRejectsUnknownRow(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	err := Store{DB: db}.Insert(context.Background(), struct{ ID string }{ID: "x"})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestLoadSnapshotUnknownTrip(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM trips WHERE id=").WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err := Store{DB: db}.LoadSnapshot(context.Background(), "nope", "plan1")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	var nf domain.NotFoundError
	if !errors.As(err, &nf) || nf.Resource != "trip" {
		t.Fatalf("expected trip not found, got %#v", err)
	}
}

func TestTraverseListProbesOptionalColumns(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("information_schema\\.columns").WithArgs("traverses", "cost").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("traverses", "booked_days").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("booked_days"))
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(includes_accommodation,0),0,COALESCE(booked_days,0) FROM traverses")).
		WithArgs("plan1").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "plan_id", "source_visit_id", "target_visit_id", "route_id",
			"priority", "rent_until", "includes_accommodation", "cost", "booked_days",
		}).
			AddRow("t1", "plan1", "v1", "v2", "r1", 0, "v3", true, 0.0, 4).
			AddRow("t2", "plan1", "v2", "v3", "r2", 1, nil, false, 0.0, 0))

	got, err := TraverseRepository{DB: db}.ListByPlan(context.Background(), "plan1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 traverses, got %d", len(got))
	}
	if got[0].RentUntilID() != "v3" || !got[0].IncludesAccommodation || got[0].BookedDays != 4 {
		t.Fatalf("unexpected first traverse: %+v", got[0])
	}
	if got[1].RentUntil != nil {
		t.Fatalf("rent_until should be nil, got %v", *got[1].RentUntil)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestExpenseListMissingTableIsEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("information_schema\\.tables").WithArgs("activities").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	got, err := ExpenseRepository{DB: db}.ListActivities(context.Background(), "trip1")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty slice, got %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCascadeApplyOrder(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE plans SET start_visit_id=NULL WHERE id=?")).WithArgs("plan1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE traverses SET rent_until=NULL WHERE id IN (?)")).WithArgs("t5").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM traverses WHERE id IN (?,?)")).WithArgs("t1", "t2").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM visits WHERE id IN (?)")).WithArgs("v1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c := models.Cascade{
		Visits:           []string{"v1"},
		Traverses:        []string{"t1", "t2"},
		RentUntilCleared: []string{"t5"},
		StartCleared:     true,
	}
	if err := (Store{DB: db}).ApplyCascade(context.Background(), "plan1", c); err != nil {
		t.Fatalf("cascade error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCascadeFailureRollsBack(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM route_notes").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	err := Store{DB: db}.ApplyCascade(context.Background(), "plan1", models.Cascade{RouteNotes: []string{"n1"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEnsureSchemaCreatesMissingTables(t *testing.T) {
	db, mock := newMock(t)
	for _, tbl := range schema {
		probe := mock.ExpectQuery("information_schema\\.tables").WithArgs(tbl.table)
		if tbl.table == "trips" || tbl.table == "users" {
			probe.WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow(tbl.table))
			continue
		}
		probe.WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + tbl.table + " ").
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	created, err := EnsureSchema(context.Background(), db)
	if err != nil {
		t.Fatalf("ensure schema error: %v", err)
	}
	if len(created) != len(schema)-2 {
		t.Fatalf("expected %d created tables, got %v", len(schema)-2, created)
	}
	if created[0] != "plans" {
		t.Fatalf("plans should be created first, got %s", created[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
