package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/achievements"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/progression"
	"github.com/dmitrijs2005/lumen/internal/server/roles"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_StartSession(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	svc := newSession(t, st)

	u, err := svc.StartSession(ctx, learner)
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, 1, u.Level)
	assert.Equal(t, 0, u.XP)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Empty(t, u.Achievements)

	again, err := svc.StartSession(ctx, learner)
	require.NoError(t, err)
	assert.Equal(t, u.Revision, again.Revision, "second sign-in must not write")

	a, err := svc.StartSession(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, a.Role)
}

func TestSessionService_StartSession_CorrectsRole(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	seedUser(t, st, learner, func(u *models.User) { u.Role = models.RoleAdmin })

	svc := newSession(t, st)
	u, err := svc.StartSession(ctx, learner)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)

	stored, err := st.GetUser(ctx, learner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
}

func TestSessionService_StartSession_Validation(t *testing.T) {
	svc := newSession(t, newSpy())
	_, err := svc.StartSession(context.Background(), models.Identity{Email: "x@y.z"})
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestSessionService_AddProgress_Combined(t *testing.T) {
	tests := []struct {
		name      string
		xp, level int
		amount    int
		wantXP    int
		wantLevel int
	}{
		{name: "bonus carries over threshold", xp: 95, level: 1, amount: 10, wantXP: 55, wantLevel: 2},
		{name: "single application", xp: 99, level: 1, amount: 1, wantXP: 50, wantLevel: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			st := newSpy()
			seedUser(t, st, learner, func(u *models.User) { u.XP, u.Level = tt.xp, tt.level })
			svc := newSession(t, st)

			res, err := svc.AddProgress(ctx, learner.ID, tt.amount, progression.ToolChatbot)
			require.NoError(t, err)

			assert.Equal(t, tt.wantXP, res.User.XP)
			assert.Equal(t, tt.wantLevel, res.User.Level)
			assert.Equal(t, tt.amount+achievements.BonusXP, res.XPGained)
			assert.True(t, res.LeveledUp)
			assert.Equal(t, tt.level, res.PreviousLevel)
			assert.Equal(t, []string{"first-step"}, achievements.IDs(res.Unlocked))
			assert.Equal(t, 1, res.User.UsageCount(progression.ToolChatbot))

			kinds := make([]string, 0, len(res.Notifications))
			for _, n := range res.Notifications {
				kinds = append(kinds, n.Kind)
			}
			assert.Equal(t, []string{NotifyAchievement, NotifyLevelUp}, kinds)

			stored, err := st.GetUser(ctx, learner.ID)
			require.NoError(t, err)
			if diff := cmp.Diff(res.User, stored); diff != "" {
				t.Fatalf("stored profile differs (-returned +stored):\n%s", diff)
			}
		})
	}
}

func TestSessionService_AddProgress_Idempotent(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	seedUser(t, st, learner, nil)
	svc := newSession(t, st)

	first, err := svc.AddProgress(ctx, learner.ID, 10, progression.ToolEssayCorrector)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"first-step", "corrector-starter"}, achievements.IDs(first.Unlocked))
	assert.Equal(t, 10+2*achievements.BonusXP, first.XPGained)

	second, err := svc.AddProgress(ctx, learner.ID, 10, progression.ToolEssayCorrector)
	require.NoError(t, err)
	assert.Empty(t, second.Unlocked)
	assert.Equal(t, 10, second.XPGained)
	assert.Equal(t, []string{"corrector-starter", "first-step"}, second.User.Achievements)
	assert.Equal(t, 2, second.User.UsageCount(progression.ToolEssayCorrector))
}

func TestSessionService_AddProgress_NoTool(t *testing.T) {
	st := newSpy()
	seedUser(t, st, learner, nil)
	svc := newSession(t, st)

	res, err := svc.AddProgress(context.Background(), learner.ID, 30, "")
	require.NoError(t, err)
	assert.Equal(t, 30, res.User.XP)
	assert.Empty(t, res.Unlocked)
	assert.Empty(t, res.Notifications)
	assert.Zero(t, res.User.ToolsUsed())
}

func TestSessionService_AddProgress_Negative(t *testing.T) {
	st := newSpy()
	seedUser(t, st, learner, nil)
	svc := newSession(t, st)

	_, err := svc.AddProgress(context.Background(), learner.ID, -5, "")
	require.ErrorIs(t, err, common.ErrorValidation)
	assert.Zero(t, st.calls.Load())
}

func TestSessionService_AddProgress_UnknownUser(t *testing.T) {
	svc := newSession(t, newSpy())
	_, err := svc.AddProgress(context.Background(), "ghost", 10, "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSessionService_AddProgress_RecomputesAfterConflict(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	seedUser(t, st, learner, nil)
	svc := newSession(t, st)

	interfered := false
	st.beforeSave = func(ctx context.Context, u *models.User) error {
		if interfered {
			return nil
		}
		interfered = true
		// a concurrent session records progress between our read and write
		other, err := st.ProfileStore.GetUser(ctx, u.ID)
		require.NoError(t, err)
		other.XP = 40
		other.ToolUsage[progression.ToolTranslator] = 1
		other.AddAchievements("first-step")
		return st.ProfileStore.SaveUser(ctx, other)
	}

	res, err := svc.AddProgress(ctx, learner.ID, 10, progression.ToolChatbot)
	require.NoError(t, err)

	assert.Equal(t, 50, res.User.XP, "both writes must survive")
	assert.Empty(t, res.Unlocked, "first-step was already earned by the other write")
	assert.Equal(t, 1, res.User.UsageCount(progression.ToolTranslator))
	assert.Equal(t, 1, res.User.UsageCount(progression.ToolChatbot))
}

func TestSessionService_AddProgress_RetriesExhausted(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	seedUser(t, st, learner, nil)
	st.saveErr = common.ErrVersionConflict
	svc := newSession(t, st)

	_, err := svc.AddProgress(ctx, learner.ID, 10, progression.ToolChatbot)
	require.ErrorIs(t, err, common.ErrVersionConflict)
	// one get and one save per attempt
	assert.Equal(t, int32(2*(testConfig().ConflictRetries+1)), st.calls.Load())

	st.saveErr = nil
	u, err := st.GetUser(ctx, learner.ID)
	require.NoError(t, err)
	assert.Zero(t, u.XP)
	assert.Empty(t, u.Achievements)
}

func TestSessionService_AddProgress_StoreUnavailable(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	seedUser(t, st, learner, nil)
	st.saveErr = errors.Join(common.ErrStoreUnavailable, errors.New("connection reset"))
	svc := newSession(t, st)

	_, err := svc.AddProgress(ctx, learner.ID, 10, progression.ToolChatbot)
	require.ErrorIs(t, err, common.ErrStoreUnavailable)
	assert.Equal(t, int32(2), st.calls.Load(), "unavailable is not retried")

	st.saveErr = nil
	u, err := st.GetUser(ctx, learner.ID)
	require.NoError(t, err)
	assert.Zero(t, u.XP)
	assert.Equal(t, 1, u.Level)
	assert.Zero(t, u.UsageCount(progression.ToolChatbot))
	assert.Empty(t, u.Achievements)
}

func TestSessionService_AddProgress_AmountBounds(t *testing.T) {
	tests := []struct {
		name   string
		amount int
	}{
		{name: "negative", amount: -1},
		{name: "above grant", amount: progression.MaxGrant + 1},
		{name: "near max int", amount: math.MaxInt - 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			st := newSpy()
			seedUser(t, st, learner, func(u *models.User) { u.XP = 99 })
			svc := newSession(t, st)
			st.calls.Store(0)

			_, err := svc.AddProgress(ctx, learner.ID, tt.amount, progression.ToolChatbot)
			require.ErrorIs(t, err, common.ErrorValidation)
			assert.Zero(t, st.calls.Load(), "rejected before touching the store")

			u, err := st.GetUser(ctx, learner.ID)
			require.NoError(t, err)
			assert.Equal(t, 99, u.XP)
			assert.Empty(t, u.Achievements)
		})
	}
}

func TestSessionService_AddProgress_MaxGrant(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	seedUser(t, st, learner, nil)
	svc := newSession(t, st)

	res, err := svc.AddProgress(ctx, learner.ID, progression.MaxGrant, progression.ToolChatbot)
	require.NoError(t, err)
	assert.Equal(t, progression.MaxGrant+achievements.BonusXP*len(res.Unlocked), res.XPGained)
	assert.True(t, res.LeveledUp)
	assert.GreaterOrEqual(t, res.User.XP, 0)
	assert.Less(t, res.User.XP, progression.XPToNextLevel(res.User.Level))
}

func TestSessionService_AddProgress_Cancelled(t *testing.T) {
	st := newSpy()
	seedUser(t, st, learner, nil)
	st.saveErr = common.ErrVersionConflict
	svc := NewSessionService(st, roles.NewResolver(), testConfig(), logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AddProgress(ctx, learner.ID, 10, "")
	require.Error(t, err)
}

func TestSessionService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	seedUser(t, st, learner, nil)
	svc := newSession(t, st)

	_, err := svc.UpdateProfile(ctx, learner.ID, "   ", "University")
	require.ErrorIs(t, err, common.ErrorValidation)

	u, err := svc.UpdateProfile(ctx, learner.ID, "  Ana María ", " University ")
	require.NoError(t, err)
	assert.Equal(t, "Ana María", u.Name)
	assert.Equal(t, "University", u.EducationLevel)
	assert.Equal(t, models.RoleUser, u.Role)

	_, err = svc.UpdateProfile(ctx, "ghost", "x", "")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSessionService_ToggleFavorite(t *testing.T) {
	ctx := context.Background()
	st := newSpy()
	seedUser(t, st, learner, nil)
	svc := newSession(t, st)

	_, _, err := svc.ToggleFavorite(ctx, learner.ID, "no-such-resource")
	require.ErrorIs(t, err, common.ErrorNotFound)

	u, on, err := svc.ToggleFavorite(ctx, learner.ID, "math-101")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"math-101"}, u.FavoriteResources)

	u, on, err = svc.ToggleFavorite(ctx, learner.ID, "math-101")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Empty(t, u.FavoriteResources)
}

func TestSessionService_Profile(t *testing.T) {
	st := newSpy()
	seedUser(t, st, learner, nil)
	svc := newSession(t, st)

	u, err := svc.Profile(context.Background(), learner.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@school.io", u.Email)
}
