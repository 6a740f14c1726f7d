package store

import (
	"context"

	"github.com/cs-Nikhil/msdproject/internal/model"
)

const userColumns = `id, name, email, phone, role, password_hash, specialization, experience_years, created_at, updated_at`

func (s *Store) CreateUser(ctx context.Context, u *model.User) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO users (id, name, email, phone, role, password_hash, specialization, experience_years)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Name, u.Email, u.Phone, u.Role, u.PasswordHash, u.Specialization, u.Experience,
	)
	return err
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (s *Store) UserByID(ctx context.Context, id string) (*model.User, error) {
	return s.scanUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// DoctorByID resolves id to a user with the doctor role; a patient id
// comes back as not found.
func (s *Store) DoctorByID(ctx context.Context, id string) (*model.User, error) {
	return s.scanUser(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND role = 'doctor'`, id)
}

func (s *Store) ListDoctors(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'doctor' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash,
			&u.Specialization, &u.Experience, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) scanUser(ctx context.Context, query string, args ...any) (*model.User, error) {
	u := &model.User{}
	err := s.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash,
		&u.Specialization, &u.Experience, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}
