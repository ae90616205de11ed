// Package users persists learner profiles.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/lumen/internal/server/models"
)

// Repository stores profiles keyed by identity id.
//
// Save is conditional: it only writes when the stored revision equals
// u.Revision, and bumps u.Revision on success. A stale revision yields
// common.ErrVersionConflict, a missing row common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, u *models.User) error
	Patch(ctx context.Context, id string, patch models.UserPatch, at time.Time) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}
