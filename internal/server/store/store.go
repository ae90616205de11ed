// Package store is the Profile Store: the persistence contract the
// services depend on, with a SQL implementation and an in-memory one.
package store

import (
	"context"

	"github.com/dmitrijs2005/lumen/internal/server/models"
)

// ProfileStore persists profiles and suggestions.
//
// Returned records are copies; mutating them never affects stored state.
// SaveUser and UpdateSuggestionStatus are compare-and-swap writes that fail
// with common.ErrVersionConflict when the record changed since it was read.
// Transient backend failures are reported as common.ErrStoreUnavailable.
type ProfileStore interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	SaveUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)

	AddSuggestion(ctx context.Context, s *models.Suggestion) (string, error)
	GetSuggestion(ctx context.Context, id string) (*models.Suggestion, error)
	ListSuggestions(ctx context.Context) ([]*models.Suggestion, error)
	UpdateSuggestionStatus(ctx context.Context, id string, from, to models.SuggestionStatus) (*models.Suggestion, error)

	Ping(ctx context.Context) error
}
