package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/issue-tracker/internal/domain"
)

const userColumns = `user_id, username, email, password_hash, first_name, last_name, location, profile_image, role, status, created_at`

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	UpdateProfile(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateProfileImage(ctx context.Context, id int64, filename *string) error
	UpdateRole(ctx context.Context, id int64, role domain.Role) error
	UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Search(ctx context.Context, term string) ([]domain.User, error)
	CountActiveByRole(ctx context.Context) (map[domain.Role]int, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (username, email, password_hash, first_name, last_name, location, role, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING user_id, created_at`

	return r.pool.QueryRow(ctx, query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.Location,
		user.Role,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt)
}

func (r *userRepository) UpdateProfile(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET first_name=$1, last_name=$2, email=$3, location=$4
        WHERE user_id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.Location,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	return r.execSingle(ctx, `UPDATE users SET password_hash=$1 WHERE user_id=$2`, passwordHash, id)
}

func (r *userRepository) UpdateProfileImage(ctx context.Context, id int64, filename *string) error {
	return r.execSingle(ctx, `UPDATE users SET profile_image=$1 WHERE user_id=$2`, filename, id)
}

func (r *userRepository) UpdateRole(ctx context.Context, id int64, role domain.Role) error {
	return r.execSingle(ctx, `UPDATE users SET role=$1 WHERE user_id=$2`, role, id)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int64, status domain.UserStatus) error {
	return r.execSingle(ctx, `UPDATE users SET status=$1 WHERE user_id=$2`, status, id)
}

func (r *userRepository) execSingle(ctx context.Context, query string, args ...any) error {
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE user_id=$1`, id)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1`, username)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.fetchSingle(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1`, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.FirstName,
		&user.LastName,
		&user.Location,
		&user.ProfileImage,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// Search lists users matching the term as a case-insensitive substring of
// username, first name or last name. An empty term lists everyone.
func (r *userRepository) Search(ctx context.Context, term string) ([]domain.User, error) {
	base := `SELECT ` + userColumns + ` FROM users`
	order := ` ORDER BY role, username`

	var rows pgx.Rows
	var err error
	if term == "" {
		rows, err = r.pool.Query(ctx, base+order)
	} else {
		pattern := "%" + term + "%"
		rows, err = r.pool.Query(ctx,
			base+` WHERE username ILIKE $1 OR first_name ILIKE $1 OR last_name ILIKE $1`+order,
			pattern)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.PasswordHash,
			&user.FirstName,
			&user.LastName,
			&user.Location,
			&user.ProfileImage,
			&user.Role,
			&user.Status,
			&user.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}

func (r *userRepository) CountActiveByRole(ctx context.Context) (map[domain.Role]int, error) {
	const query = `
        SELECT role, COUNT(*) FROM users
        WHERE status='active'
        GROUP BY role`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[domain.Role]int{
		domain.RoleVisitor: 0,
		domain.RoleHelper:  0,
		domain.RoleAdmin:   0,
	}
	for rows.Next() {
		var role domain.Role
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, err
		}
		counts[role] = count
	}
	return counts, rows.Err()
}
