package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/lumen/internal/dbx"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/repositories/repomanager"
)

// SQLStore implements ProfileStore over a database/sql handle using the
// repositories of its manager's dialect.
type SQLStore struct {
	db  *sql.DB
	rm  repomanager.RepositoryManager
	now func() time.Time
}

func NewSQLStore(db *sql.DB, rm repomanager.RepositoryManager) *SQLStore {
	return &SQLStore{db: db, rm: rm, now: time.Now}
}

func (s *SQLStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.rm.Users(s.db).Get(ctx, id)
	return u, dbx.Classify(err)
}

func (s *SQLStore) CreateUser(ctx context.Context, u *models.User) error {
	rec := u.Clone()
	if err := s.rm.Users(s.db).Create(ctx, rec); err != nil {
		return dbx.Classify(err)
	}
	*u = *rec
	return nil
}

// SaveUser writes u if its revision is current. The conditional update and
// the follow-up existence check share one transaction.
func (s *SQLStore) SaveUser(ctx context.Context, u *models.User) error {
	rec := u.Clone()
	rec.Normalize()
	rec.UpdatedAt = s.now().UTC()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.rm.Users(tx).Save(ctx, rec)
	})
	if err != nil {
		return dbx.Classify(err)
	}

	*u = *rec
	return nil
}

func (s *SQLStore) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	if patch.Empty() {
		return s.GetUser(ctx, id)
	}
	u, err := s.rm.Users(s.db).Patch(ctx, id, patch, s.now().UTC())
	return u, dbx.Classify(err)
}

func (s *SQLStore) ListUsers(ctx context.Context) ([]*models.User, error) {
	list, err := s.rm.Users(s.db).List(ctx)
	return list, dbx.Classify(err)
}

func (s *SQLStore) AddSuggestion(ctx context.Context, sg *models.Suggestion) (string, error) {
	if err := s.rm.Suggestions(s.db).Create(ctx, sg.Clone()); err != nil {
		return "", dbx.Classify(err)
	}
	return sg.ID, nil
}

func (s *SQLStore) GetSuggestion(ctx context.Context, id string) (*models.Suggestion, error) {
	sg, err := s.rm.Suggestions(s.db).Get(ctx, id)
	return sg, dbx.Classify(err)
}

func (s *SQLStore) ListSuggestions(ctx context.Context) ([]*models.Suggestion, error) {
	list, err := s.rm.Suggestions(s.db).List(ctx)
	return list, dbx.Classify(err)
}

// UpdateSuggestionStatus moves a suggestion from one status to another and
// returns the stored result, all inside one transaction.
func (s *SQLStore) UpdateSuggestionStatus(ctx context.Context, id string, from, to models.SuggestionStatus) (*models.Suggestion, error) {
	var out *models.Suggestion
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.rm.Suggestions(tx)
		if err := repo.UpdateStatus(ctx, id, from, to, s.now().UTC()); err != nil {
			return err
		}
		sg, err := repo.Get(ctx, id)
		if err != nil {
			return err
		}
		out = sg
		return nil
	})
	if err != nil {
		return nil, dbx.Classify(err)
	}
	return out, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return dbx.Classify(s.db.PingContext(ctx))
}
