package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/config"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/roles"
	"github.com/dmitrijs2005/lumen/internal/server/store"
)

var (
	learner = models.Identity{ID: "u-1", Email: "ana@school.io", DisplayName: "Ana"}
	admin   = models.Identity{ID: "a-1", Email: "Root@Lumen.io", DisplayName: "Root"}
)

// spyStore counts calls and lets tests inject failures into the wrapped
// store.
type spyStore struct {
	store.ProfileStore

	calls      atomic.Int32
	beforeSave func(ctx context.Context, u *models.User) error
	saveErr    error
}

func (s *spyStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.calls.Add(1)
	return s.ProfileStore.GetUser(ctx, id)
}

func (s *spyStore) SaveUser(ctx context.Context, u *models.User) error {
	s.calls.Add(1)
	if s.beforeSave != nil {
		if err := s.beforeSave(ctx, u); err != nil {
			return err
		}
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	return s.ProfileStore.SaveUser(ctx, u)
}

func (s *spyStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	s.calls.Add(1)
	return s.ProfileStore.ListUsers(ctx)
}

func (s *spyStore) ListSuggestions(ctx context.Context) ([]*models.Suggestion, error) {
	s.calls.Add(1)
	return s.ProfileStore.ListSuggestions(ctx)
}

func (s *spyStore) GetSuggestion(ctx context.Context, id string) (*models.Suggestion, error) {
	s.calls.Add(1)
	return s.ProfileStore.GetSuggestion(ctx, id)
}

func newSpy() *spyStore {
	return &spyStore{ProfileStore: store.NewMemoryStore()}
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ConflictRetries = 3
	cfg.ConflictBackoff = time.Millisecond
	return cfg
}

func newSession(t *testing.T, st store.ProfileStore) *SessionService {
	t.Helper()
	return NewSessionService(st, roles.NewResolver("root@lumen.io"), testConfig(), logging.Nop())
}

func seedUser(t *testing.T, st store.ProfileStore, id models.Identity, mutate func(u *models.User)) {
	t.Helper()
	u := models.NewUser(id, models.RoleUser, time.Now())
	if mutate != nil {
		mutate(u)
	}
	if err := st.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
}
