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

// SQLiteRepository mirrors PostgresRepository for the local store.
// Timestamps are stored as Unix nanoseconds, collections as JSON text.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, u *models.User) error {
	u.Normalize()
	u.Revision = 1

	c, err := encodeCollections(u)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, u.ID, u.Name, u.Email, u.EducationLevel, u.XP, u.Level,
		c.usage, c.achievements, c.favorites, string(u.Role), u.Revision,
		u.CreatedAt.UnixNano(), u.UpdatedAt.UnixNano())
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

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.User, error) {
	u, err := scanSQLiteUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, u *models.User) error {
	c, err := encodeCollections(u)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET
		  name = ?, email = ?, education_level = ?, xp = ?, level = ?,
		  tool_usage = ?, achievements = ?, favorite_resources = ?, role = ?,
		  revision = revision + 1, updated_at = ?
		WHERE id = ? AND revision = ?
	`, u.Name, u.Email, u.EducationLevel, u.XP, u.Level,
		c.usage, c.achievements, c.favorites, string(u.Role), u.UpdatedAt.UnixNano(),
		u.ID, u.Revision)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		var one int
		err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, u.ID).Scan(&one)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return common.ErrorNotFound
		case err != nil:
			return fmt.Errorf("db error: %w", err)
		default:
			return common.ErrVersionConflict
		}
	}

	u.Revision++
	return nil
}

func (r *SQLiteRepository) Patch(ctx context.Context, id string, p models.UserPatch, at time.Time) (*models.User, error) {
	var role *string
	if p.Role != nil {
		s := string(*p.Role)
		role = &s
	}

	u, err := scanSQLiteUser(r.db.QueryRowContext(ctx, `
		UPDATE users SET
		  name = COALESCE(?, name),
		  education_level = COALESCE(?, education_level),
		  role = COALESCE(?, role),
		  revision = revision + 1,
		  updated_at = ?
		WHERE id = ?
		RETURNING `+userColumns,
		p.Name, p.EducationLevel, role, at.UnixNano(), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		u, err := scanSQLiteUser(rows)
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

func scanSQLiteUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var usage, ach, fav []byte
	var role string
	var created, updated int64

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.EducationLevel, &u.XP, &u.Level,
		&usage, &ach, &fav, &role, &u.Revision, &created, &updated)
	if err != nil {
		return nil, err
	}

	u.Role = models.Role(role)
	u.CreatedAt = time.Unix(0, created).UTC()
	u.UpdatedAt = time.Unix(0, updated).UTC()
	if err := decodeCollections(u, usage, ach, fav); err != nil {
		return nil, err
	}
	return u, nil
}
