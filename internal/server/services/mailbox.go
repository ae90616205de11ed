package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/roles"
	"github.com/dmitrijs2005/lumen/internal/server/store"
	"github.com/google/uuid"
)

// MaxSuggestionLength bounds a suggestion's text in characters.
const MaxSuggestionLength = 2000

// MailboxService is the suggestion mailbox. Anyone signed in may submit;
// reading and moderating require the admin role resolved from the actor's
// identity on each call.
type MailboxService struct {
	store    store.ProfileStore
	resolver *roles.Resolver
	log      logging.Logger
	now      func() time.Time
}

func NewMailboxService(st store.ProfileStore, resolver *roles.Resolver, log logging.Logger) *MailboxService {
	return &MailboxService{
		store:    st,
		resolver: resolver,
		log:      log.With("module", "mailbox"),
		now:      time.Now,
	}
}

func (s *MailboxService) Submit(ctx context.Context, actor models.Identity, text string) (*models.Suggestion, error) {
	if actor.ID == "" {
		return nil, common.ErrorUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: suggestion text is empty", common.ErrorValidation)
	}
	if n := utf8.RuneCountInString(text); n > MaxSuggestionLength {
		return nil, fmt.Errorf("%w: suggestion is %d characters, limit is %d", common.ErrorValidation, n, MaxSuggestionLength)
	}

	now := s.now().UTC()
	sg := &models.Suggestion{
		ID:        uuid.NewString(),
		Text:      text,
		UserID:    actor.ID,
		UserName:  actor.Label(),
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.store.AddSuggestion(ctx, sg)
	if err != nil {
		return nil, err
	}
	sg.ID = id

	s.log.Info(ctx, "suggestion submitted", "suggestion_id", id, "user_id", actor.ID)
	return sg, nil
}

// List returns every suggestion, newest first.
func (s *MailboxService) List(ctx context.Context, actor models.Identity) ([]*models.Suggestion, error) {
	if !s.resolver.IsAdmin(actor) {
		return nil, common.ErrorUnauthorized
	}
	return s.store.ListSuggestions(ctx)
}

// Transition moves suggestion id to status. Accepted and rejected are
// final: any move out of them fails with ErrInvalidTransition, as does
// staying in place.
func (s *MailboxService) Transition(ctx context.Context, actor models.Identity, id, status string) (*models.Suggestion, error) {
	if !s.resolver.IsAdmin(actor) {
		return nil, common.ErrorUnauthorized
	}
	next, err := models.ParseSuggestionStatus(status)
	if err != nil {
		return nil, err
	}

	cur, err := s.store.GetSuggestion(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cur.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", common.ErrInvalidTransition, cur.Status, next)
	}

	updated, err := s.store.UpdateSuggestionStatus(ctx, id, cur.Status, next)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "suggestion moderated", "suggestion_id", id, "from", cur.Status, "to", next, "admin", actor.Email)
	return updated, nil
}
