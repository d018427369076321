package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dgouveia/contacasa/internal/auth"
)

// UserRepo handles user rows.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = "id, name, email, cpf, password_hash, avatar, role, plan, created_at, updated_at"

// Insert creates a user row. Callers are expected to have hashed the
// password already; identity collisions surface as ErrDuplicateIdentity.
func (r *UserRepo) Insert(ctx context.Context, u User) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO users(id, name, email, cpf, password_hash, avatar, role, plan, created_at, updated_at)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP);
	`, u.ID, u.Name, u.Email, u.CPF, u.PasswordHash, u.Avatar, u.Role, u.Plan)
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateIdentity
	}
	return err
}

// ByIdentifier fetches a user by email or CPF. Returns nil when no row
// matches.
func (r *UserRepo) ByIdentifier(ctx context.Context, identifier string) (*User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ? OR cpf = ?", identifier, identifier)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Get fetches a user by id.
func (r *UserRepo) Get(ctx context.Context, id string) (*User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Authenticate matches identifier (email or CPF) and password against a
// stored user. A credential miss returns (nil, nil); callers must not be
// able to tell a bad identifier from a bad password.
func (r *UserRepo) Authenticate(ctx context.Context, identifier, password string) (*User, error) {
	u, err := r.ByIdentifier(ctx, identifier)
	if err != nil || u == nil {
		return nil, err
	}
	if auth.ComparePassword(u.PasswordHash, password) != nil {
		return nil, nil
	}
	return u, nil
}

// Update applies a partial update and returns the updated row.
func (r *UserRepo) Update(ctx context.Context, id string, upd UserUpdate) (User, error) {
	var sets []string
	var args []interface{}
	set := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	set("name", upd.Name)
	set("email", upd.Email)
	set("cpf", upd.CPF)
	set("avatar", upd.Avatar)
	set("plan", upd.Plan)

	if len(sets) > 0 {
		sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
		args = append(args, id)
		res, err := r.db.ExecContext(ctx,
			"UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			if isUniqueViolation(err) {
				return User{}, ErrDuplicateIdentity
			}
			return User{}, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return User{}, err
		}
		if n == 0 {
			return User{}, fmt.Errorf("update user %s: %w", id, ErrNotFound)
		}
	}

	u, err := r.Get(ctx, id)
	if err != nil {
		return User{}, err
	}
	if u == nil {
		return User{}, fmt.Errorf("update user %s: %w", id, ErrNotFound)
	}
	return *u, nil
}

// List returns all users ordered by creation time.
func (r *UserRepo) List(ctx context.Context) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUser(row scanner) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CPF, &u.PasswordHash,
		&u.Avatar, &u.Role, &u.Plan, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
