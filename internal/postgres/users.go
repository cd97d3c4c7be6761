package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/users"
)

// UserStore implements users.Store on PostgreSQL.
type UserStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func scanUser(row pgx.Row, withPassword bool) (*models.User, error) {
	var u models.User
	var err error
	if withPassword {
		err = row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt)
	} else {
		err = row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (st *UserStore) Create(ctx context.Context, u *models.User) error {
	if err := users.ValidateNewUser(u); err != nil {
		return err
	}
	err := st.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		u.Name, u.Email, u.Password, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return models.ErrConflict
	}
	return err
}

func (st *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(st.pool.QueryRow(ctx, `
		SELECT id, name, email, password, role, created_at
		FROM users WHERE email = $1`, email), true)
}

func (st *UserStore) GetByID(ctx context.Context, id int) (*models.User, error) {
	return scanUser(st.pool.QueryRow(ctx, `
		SELECT id, name, email, password, role, created_at
		FROM users WHERE id = $1`, id), true)
}

func (st *UserStore) ListEmployees(ctx context.Context) ([]models.User, error) {
	rows, err := st.pool.Query(ctx, `
		SELECT id, name, email, role, created_at
		FROM users WHERE role <> $1 ORDER BY created_at DESC`, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (st *UserStore) GetEmployee(ctx context.Context, id int) (*models.User, error) {
	return scanUser(st.pool.QueryRow(ctx, `
		SELECT id, name, email, role, created_at
		FROM users WHERE id = $1 AND role <> $2`, id, models.RoleAdmin), false)
}

func (st *UserStore) UpdateEmployee(ctx context.Context, id int, name, email string) (*models.User, error) {
	u, err := scanUser(st.pool.QueryRow(ctx, `
		UPDATE users SET name = $2, email = $3
		WHERE id = $1 AND role <> $4
		RETURNING id, name, email, role, created_at`,
		id, name, email, models.RoleAdmin), false)
	if isUniqueViolation(err) {
		return nil, models.ErrConflict
	}
	return u, err
}

func (st *UserStore) DeleteEmployee(ctx context.Context, id int) error {
	ct, err := st.pool.Exec(ctx,
		`DELETE FROM users WHERE id = $1 AND role <> $2`, id, models.RoleAdmin)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
