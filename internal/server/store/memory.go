package store

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/server/models"
)

// MemoryStore is an in-process ProfileStore with the same semantics as
// SQLStore, checked by the same conformance suite. Services tests run on
// it; the server itself always uses SQLStore, with a "sqlite::memory:"
// DSN when nothing should persist.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[string]*models.User
	suggestions map[string]*models.Suggestion
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       map[string]*models.User{},
		suggestions: map[string]*models.Suggestion{},
		now:         time.Now,
	}
}

func (m *MemoryStore) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u.Clone(), nil
}

func (m *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[u.ID]; ok {
		return common.ErrAlreadyExists
	}
	u.Normalize()
	u.Revision = 1
	m.users[u.ID] = u.Clone()
	return nil
}

func (m *MemoryStore) SaveUser(ctx context.Context, u *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.users[u.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if cur.Revision != u.Revision {
		return common.ErrVersionConflict
	}

	rec := u.Clone()
	rec.Normalize()
	rec.CreatedAt = cur.CreatedAt
	rec.UpdatedAt = m.now().UTC()
	rec.Revision++
	m.users[u.ID] = rec

	*u = *rec.Clone()
	return nil
}

func (m *MemoryStore) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.Empty() {
		return cur.Clone(), nil
	}

	rec := cur.Clone()
	patch.Apply(rec)
	rec.UpdatedAt = m.now().UTC()
	rec.Revision++
	m.users[id] = rec
	return rec.Clone(), nil
}

func (m *MemoryStore) ListUsers(_ context.Context) ([]*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u.Clone())
	}
	slices.SortFunc(out, func(a, b *models.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (m *MemoryStore) AddSuggestion(ctx context.Context, s *models.Suggestion) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.suggestions[s.ID]; ok {
		return "", common.ErrAlreadyExists
	}
	m.suggestions[s.ID] = s.Clone()
	return s.ID, nil
}

func (m *MemoryStore) GetSuggestion(_ context.Context, id string) (*models.Suggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.suggestions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) ListSuggestions(_ context.Context) ([]*models.Suggestion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*models.Suggestion, 0, len(m.suggestions))
	for _, s := range m.suggestions {
		out = append(out, s.Clone())
	}
	slices.SortFunc(out, func(a, b *models.Suggestion) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return out, nil
}

func (m *MemoryStore) UpdateSuggestionStatus(ctx context.Context, id string, from, to models.SuggestionStatus) (*models.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.suggestions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if cur.Status != from {
		return nil, common.ErrVersionConflict
	}

	rec := cur.Clone()
	rec.Status = to
	rec.UpdatedAt = m.now().UTC()
	m.suggestions[id] = rec
	return rec.Clone(), nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
