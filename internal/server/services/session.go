// Package services contains the server-side business logic. SessionService
// owns a learner's own profile: sign-in, XP and achievements, settings and
// favorites.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/achievements"
	"github.com/dmitrijs2005/lumen/internal/server/config"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/progression"
	"github.com/dmitrijs2005/lumen/internal/server/resources"
	"github.com/dmitrijs2005/lumen/internal/server/roles"
	"github.com/dmitrijs2005/lumen/internal/server/store"
	"github.com/sethvargo/go-retry"
)

// Notification kinds.
const (
	NotifyAchievement = "achievement"
	NotifyLevelUp     = "level_up"
)

// Notification is an advisory message for the learner. Delivery is best
// effort.
type Notification struct {
	Kind    string
	Title   string
	Message string
}

// ProgressResult describes one successful AddProgress call.
type ProgressResult struct {
	User          *models.User
	Unlocked      []achievements.Achievement
	LeveledUp     bool
	PreviousLevel int
	XPGained      int
	Notifications []Notification
}

type SessionService struct {
	store    store.ProfileStore
	resolver *roles.Resolver
	log      logging.Logger
	retries  uint64
	backoff  time.Duration
	now      func() time.Time
}

func NewSessionService(st store.ProfileStore, resolver *roles.Resolver, cfg *config.Config, log logging.Logger) *SessionService {
	retries := cfg.ConflictRetries
	if retries < 1 {
		retries = 1
	}
	backoff := cfg.ConflictBackoff
	if backoff <= 0 {
		backoff = 10 * time.Millisecond
	}
	return &SessionService{
		store:    st,
		resolver: resolver,
		log:      log.With("module", "session"),
		retries:  uint64(retries),
		backoff:  backoff,
		now:      time.Now,
	}
}

// StartSession loads the profile of identity, registering it on first
// sign-in. The role is re-resolved every time and persisted when it
// differs from the stored one.
func (s *SessionService) StartSession(ctx context.Context, identity models.Identity) (*models.User, error) {
	if strings.TrimSpace(identity.ID) == "" {
		return nil, fmt.Errorf("%w: identity without id", common.ErrorValidation)
	}
	role := s.resolver.Resolve(identity)

	u, err := s.store.GetUser(ctx, identity.ID)
	if errors.Is(err, common.ErrorNotFound) {
		u, err = s.register(ctx, identity, role)
	}
	if err != nil {
		return nil, err
	}

	if u.Role != role {
		s.log.Info(ctx, "role changed", "user_id", u.ID, "from", u.Role, "to", role)
		u, err = s.store.UpdateUser(ctx, u.ID, models.UserPatch{Role: &role})
		if err != nil {
			return nil, err
		}
	}
	return u, nil
}

func (s *SessionService) register(ctx context.Context, identity models.Identity, role models.Role) (*models.User, error) {
	u := models.NewUser(identity, role, s.now())
	err := s.store.CreateUser(ctx, u)
	switch {
	case err == nil:
		s.log.Info(ctx, "profile registered", "user_id", u.ID, "role", role)
		return u, nil
	case errors.Is(err, common.ErrAlreadyExists):
		// another session registered it first
		return s.store.GetUser(ctx, identity.ID)
	default:
		return nil, err
	}
}

func (s *SessionService) Profile(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// AddProgress records one use of toolID (may be empty) worth amount XP.
// Newly earned achievements are unlocked and their bonus is added to the
// same XP application, so a single call levels up at most once per
// threshold crossed. Conflicting writes are recomputed from a fresh read.
func (s *SessionService) AddProgress(ctx context.Context, userID string, amount int, toolID string) (*ProgressResult, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: negative xp amount %d", common.ErrorValidation, amount)
	}
	if amount > progression.MaxGrant {
		return nil, fmt.Errorf("%w: xp amount %d exceeds %d", common.ErrorValidation, amount, progression.MaxGrant)
	}

	var result *ProgressResult
	err := s.withRetry(ctx, func(ctx context.Context) error {
		u, err := s.store.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		res := applyProgress(u, amount, toolID)
		if err := s.store.SaveUser(ctx, res.User); err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range result.Notifications {
		s.log.Info(ctx, "notification", "user_id", userID, "kind", n.Kind, "title", n.Title)
	}
	return result, nil
}

// applyProgress mutates u, a private copy.
func applyProgress(u *models.User, amount int, toolID string) *ProgressResult {
	prev := u.Level
	if u.ToolUsage == nil {
		u.ToolUsage = map[string]int{}
	}
	if toolID != "" {
		u.ToolUsage[toolID]++
	}

	unlocked := achievements.Evaluate(u)
	u.AddAchievements(achievements.IDs(unlocked)...)

	gained := amount + achievements.Bonus(unlocked)
	*u = progression.ApplyXP(*u, gained)

	return &ProgressResult{
		User:          u,
		Unlocked:      unlocked,
		LeveledUp:     u.Level > prev,
		PreviousLevel: prev,
		XPGained:      gained,
		Notifications: notificationsFor(unlocked, prev, u.Level),
	}
}

func notificationsFor(unlocked []achievements.Achievement, prev, level int) []Notification {
	var out []Notification
	for _, a := range unlocked {
		out = append(out, Notification{
			Kind:    NotifyAchievement,
			Title:   "Achievement unlocked: " + a.Name,
			Message: fmt.Sprintf("%s (+%d XP)", a.Description, achievements.BonusXP),
		})
	}
	if level > prev {
		out = append(out, Notification{
			Kind:    NotifyLevelUp,
			Title:   "Level up!",
			Message: fmt.Sprintf("You reached level %d.", level),
		})
	}
	return out
}

// UpdateProfile changes the learner-editable settings.
func (s *SessionService) UpdateProfile(ctx context.Context, userID, name, educationLevel string) (*models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name must not be empty", common.ErrorValidation)
	}
	educationLevel = strings.TrimSpace(educationLevel)
	return s.store.UpdateUser(ctx, userID, models.UserPatch{Name: &name, EducationLevel: &educationLevel})
}

// ToggleFavorite flips resourceID in the favorites set. The bool reports
// whether it is a favorite afterwards.
func (s *SessionService) ToggleFavorite(ctx context.Context, userID, resourceID string) (*models.User, bool, error) {
	if _, ok := resources.Find(resourceID); !ok {
		return nil, false, fmt.Errorf("%w: resource %q", common.ErrorNotFound, resourceID)
	}

	var (
		user  *models.User
		added bool
	)
	err := s.withRetry(ctx, func(ctx context.Context) error {
		u, err := s.store.GetUser(ctx, userID)
		if err != nil {
			return err
		}
		on := u.ToggleFavorite(resourceID)
		if err := s.store.SaveUser(ctx, u); err != nil {
			return err
		}
		user, added = u, on
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return user, added, nil
}

// withRetry reruns fn while it fails with a version conflict. Once the
// budget is spent the conflict itself is returned.
func (s *SessionService) withRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	b := retry.WithMaxRetries(s.retries, retry.NewConstant(s.backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := fn(ctx)
		if errors.Is(err, common.ErrVersionConflict) {
			s.log.Debug(ctx, "write conflict, retrying")
			return retry.RetryableError(err)
		}
		return err
	})
}
