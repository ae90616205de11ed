package suggestions

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

// SQLiteRepository stores timestamps as Unix nanoseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, s *models.Suggestion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suggestions (id, text, user_id, user_name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Text, s.UserID, s.UserName, string(s.Status), s.CreatedAt.UnixNano(), s.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Get(ctx context.Context, id string) (*models.Suggestion, error) {
	s, err := scanSQLite(r.db.QueryRowContext(ctx, `
		SELECT id, text, user_id, user_name, status, created_at, updated_at
		FROM suggestions WHERE id = ?
	`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]*models.Suggestion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, text, user_id, user_name, status, created_at, updated_at
		FROM suggestions ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Suggestion{}
	for rows.Next() {
		s, err := scanSQLite(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *SQLiteRepository) UpdateStatus(ctx context.Context, id string, from, to models.SuggestionStatus, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE suggestions SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`, string(to), at.UnixNano(), id, string(from))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n > 0 {
		return nil
	}

	if _, err := r.Get(ctx, id); err != nil {
		return err
	}
	return common.ErrVersionConflict
}

func scanSQLite(row rowScanner) (*models.Suggestion, error) {
	s := &models.Suggestion{}
	var status string
	var created, updated int64
	if err := row.Scan(&s.ID, &s.Text, &s.UserID, &s.UserName, &status, &created, &updated); err != nil {
		return nil, err
	}
	s.Status = models.SuggestionStatus(status)
	s.CreatedAt = time.Unix(0, created).UTC()
	s.UpdatedAt = time.Unix(0, updated).UTC()
	return s, nil
}
