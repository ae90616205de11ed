// Package suggestions persists the feedback mailbox.
package suggestions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lumen/internal/server/models"
)

// Repository stores suggestions. UpdateStatus only writes when the stored
// status still equals from; otherwise it returns common.ErrVersionConflict,
// or common.ErrorNotFound when the id is unknown.
type Repository interface {
	Create(ctx context.Context, s *models.Suggestion) error
	Get(ctx context.Context, id string) (*models.Suggestion, error)
	List(ctx context.Context) ([]*models.Suggestion, error)
	UpdateStatus(ctx context.Context, id string, from, to models.SuggestionStatus, at time.Time) error
}

type rowScanner interface {
	Scan(dest ...any) error
}
