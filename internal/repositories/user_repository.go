package repositories

import (
	"context"
	"database/sql"

	"travelmap/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) conn() DBTX { return conn(r.DB, nil) }

// FindByLogin matches either email or username and returns the password hash.
func (r UserRepository) FindByLogin(ctx context.Context, login string) (models.User, string, error) {
	var (
		u    models.User
		hash string
	)
	err := r.conn().QueryRowContext(ctx, `
		SELECT id, COALESCE(name,''), COALESCE(username,''), COALESCE(email,''), COALESCE(phone,''),
		       password_hash, COALESCE(role,'user'), COALESCE(status,'active')
		FROM users
		WHERE email = ? OR username = ?`, login, login).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &hash, &u.Role, &u.Status,
	)
	return u, hash, err
}

func (r UserRepository) Exists(ctx context.Context, email, username string) (bool, error) {
	var n int
	err := r.conn().QueryRowContext(ctx, `
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?`, email, username).Scan(&n)
	return n > 0, err
}

func (r UserRepository) Create(ctx context.Context, u models.User, hash string) (int64, error) {
	res, err := r.conn().ExecContext(ctx, `
		INSERT INTO users (name, username, email, phone, password_hash, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		u.Name, u.Username, u.Email, u.Phone, hash, u.Role, u.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
