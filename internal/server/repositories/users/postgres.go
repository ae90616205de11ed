package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/dbx"
	"github.com/dmitrijs2005/lumen/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, u *models.User) error {
	u.Normalize()
	u.Revision = 1

	c, err := encodeCollections(u)
	if err != nil {
		return err
	}

	query :=
		`INSERT INTO users (` + userColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, u.EducationLevel, u.XP, u.Level,
		c.usage, c.achievements, c.favorites, string(u.Role), u.Revision, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrAlreadyExists
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE id = $1
		 `

	u, err := scanPostgresUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) Save(ctx context.Context, u *models.User) error {
	c, err := encodeCollections(u)
	if err != nil {
		return err
	}

	query :=
		`UPDATE users SET
		   name = $3, email = $4, education_level = $5, xp = $6, level = $7,
		   tool_usage = $8, achievements = $9, favorite_resources = $10, role = $11,
		   revision = revision + 1, updated_at = $12
		 WHERE id = $1 AND revision = $2
		 `

	res, err := r.db.ExecContext(ctx, query,
		u.ID, u.Revision, u.Name, u.Email, u.EducationLevel, u.XP, u.Level,
		c.usage, c.achievements, c.favorites, string(u.Role), u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return r.missOrConflict(ctx, u.ID)
	}

	u.Revision++
	return nil
}

func (r *PostgresRepository) missOrConflict(ctx context.Context, id string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return common.ErrVersionConflict
}

func (r *PostgresRepository) Patch(ctx context.Context, id string, p models.UserPatch, at time.Time) (*models.User, error) {
	var role *string
	if p.Role != nil {
		s := string(*p.Role)
		role = &s
	}

	query :=
		`UPDATE users SET
		   name = COALESCE($2, name),
		   education_level = COALESCE($3, education_level),
		   role = COALESCE($4, role),
		   revision = revision + 1,
		   updated_at = $5
		 WHERE id = $1
		 RETURNING ` + userColumns

	u, err := scanPostgresUser(r.db.QueryRowContext(ctx, query, id, p.Name, p.EducationLevel, role, at))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 ORDER BY created_at, id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		u, err := scanPostgresUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func scanPostgresUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var usage, ach, fav []byte
	var role string

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.EducationLevel, &u.XP, &u.Level,
		&usage, &ach, &fav, &role, &u.Revision, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Role = models.Role(role)
	if err := decodeCollections(u, usage, ach, fav); err != nil {
		return nil, err
	}
	return u, nil
}
