package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/auth"
	"github.com/dmitrijs2005/lumen/internal/server/config"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/progression"
	"github.com/dmitrijs2005/lumen/internal/server/roles"
	"github.com/dmitrijs2005/lumen/internal/server/services"
	"github.com/dmitrijs2005/lumen/internal/server/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

const testSecret = "handler-secret"

var (
	ana  = models.Identity{ID: "u-1", Email: "ana@school.io", DisplayName: "Ana"}
	root = models.Identity{ID: "a-1", Email: "root@lumen.io", DisplayName: "Root"}
)

type memStorage struct{ keys []string }

func (m *memStorage) Put(_ context.Context, key string, _ []byte, _ string) error {
	m.keys = append(m.keys, key)
	return nil
}

func (m *memStorage) PresignGet(_ context.Context, key string) (string, error) {
	return "https://s3.local/" + key, nil
}

type downPinger struct{}

func (downPinger) Ping(context.Context) error { return errors.New("down") }

type harness struct {
	client  *api.ProgressServiceClient
	store   *store.MemoryStore
	storage *memStorage
}

func startHarness(t *testing.T, adminKeyHash string, pinger Pinger) *harness {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ConflictBackoff = time.Millisecond

	st := store.NewMemoryStore()
	resolver := roles.NewResolver(root.Email)
	storage := &memStorage{}
	log := logging.Nop()

	if pinger == nil {
		pinger = st
	}
	s, err := NewGRPCServer("bufnet", log,
		services.NewSessionService(st, resolver, cfg, log),
		services.NewMailboxService(st, resolver, log),
		services.NewAdminService(st, resolver, storage, log),
		pinger, testSecret, adminKeyHash)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := s.newServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &harness{client: api.NewProgressServiceClient(conn), store: st, storage: storage}
}

func as(t *testing.T, id models.Identity, kv ...string) context.Context {
	t.Helper()
	token, err := auth.GenerateToken(id, []byte(testSecret), time.Hour)
	require.NoError(t, err)
	kv = append([]string{common.AccessTokenHeaderName, token}, kv...)
	return metadata.AppendToOutgoingContext(context.Background(), kv...)
}

func TestHandlers_PublicCatalog(t *testing.T) {
	h := startHarness(t, "", nil)
	ctx := context.Background()

	pong, err := h.client.Ping(ctx, &api.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	ach, err := h.client.ListAchievements(ctx, &api.ListAchievementsRequest{})
	require.NoError(t, err)
	assert.Len(t, ach.Achievements, 10)
	assert.Equal(t, "first-step", ach.Achievements[0].ID)

	res, err := h.client.ListResources(ctx, &api.ListResourcesRequest{Category: "Mathematics"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Resources)
	for _, r := range res.Resources {
		assert.Equal(t, "Mathematics", r.Category)
	}
}

func TestHandlers_PingUnavailable(t *testing.T) {
	h := startHarness(t, "", downPinger{})
	_, err := h.client.Ping(context.Background(), &api.PingRequest{})
	assert.Equal(t, codes.Unavailable, status.Code(err))
}

func TestHandlers_RequiresToken(t *testing.T) {
	h := startHarness(t, "", nil)
	_, err := h.client.GetProfile(context.Background(), &api.GetProfileRequest{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestHandlers_LearnerFlow(t *testing.T) {
	h := startHarness(t, "", nil)
	ctx := as(t, ana)

	_, err := h.client.GetProfile(ctx, &api.GetProfileRequest{})
	assert.Equal(t, codes.NotFound, status.Code(err), "profile exists only after a session starts")

	started, err := h.client.StartSession(ctx, &api.StartSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, started.Profile.Level)
	assert.Equal(t, 100, started.Profile.XPToNextLevel)
	assert.Equal(t, "user", started.Profile.Role)

	progress, err := h.client.AddProgress(ctx, &api.AddProgressRequest{ToolID: progression.ToolImageGenerator})
	require.NoError(t, err)
	assert.Equal(t, 20+50, progress.XPGained)
	assert.Equal(t, 70, progress.Profile.XP)
	require.Len(t, progress.Unlocked, 1)
	assert.Equal(t, "first-step", progress.Unlocked[0].ID)
	assert.False(t, progress.LeveledUp)

	xp := 30
	progress, err = h.client.AddProgress(ctx, &api.AddProgressRequest{XP: &xp})
	require.NoError(t, err)
	assert.True(t, progress.LeveledUp)
	assert.Equal(t, 2, progress.Profile.Level)
	assert.Equal(t, 0, progress.Profile.XP)

	neg := -1
	_, err = h.client.AddProgress(ctx, &api.AddProgressRequest{XP: &neg})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.client.AddProgress(ctx, &api.AddProgressRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	huge := progression.MaxGrant + 1
	_, err = h.client.AddProgress(ctx, &api.AddProgressRequest{XP: &huge})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	unchanged, err := h.client.GetProfile(ctx, &api.GetProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, unchanged.Profile.Level)
	assert.Equal(t, 0, unchanged.Profile.XP)

	updated, err := h.client.UpdateProfile(ctx, &api.UpdateProfileRequest{Name: "Ana B", EducationLevel: "University"})
	require.NoError(t, err)
	assert.Equal(t, "Ana B", updated.Profile.Name)

	_, err = h.client.UpdateProfile(ctx, &api.UpdateProfileRequest{Name: ""})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	fav, err := h.client.ToggleFavorite(ctx, &api.ToggleFavoriteRequest{ResourceID: "prog-101"})
	require.NoError(t, err)
	assert.True(t, fav.Favorite)
	assert.Equal(t, []string{"prog-101"}, fav.Profile.FavoriteResources)

	_, err = h.client.ToggleFavorite(ctx, &api.ToggleFavoriteRequest{ResourceID: "nope"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	got, err := h.client.GetProfile(ctx, &api.GetProfileRequest{})
	require.NoError(t, err)
	assert.Equal(t, "University", got.Profile.EducationLevel)
	assert.Equal(t, 1, got.Profile.ToolUsage[progression.ToolImageGenerator])
}

func TestHandlers_MailboxAndAdmin(t *testing.T) {
	h := startHarness(t, "", nil)
	learner := as(t, ana)
	admin := as(t, root)

	_, err := h.client.StartSession(learner, &api.StartSessionRequest{})
	require.NoError(t, err)
	started, err := h.client.StartSession(admin, &api.StartSessionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "admin", started.Profile.Role)

	sub, err := h.client.SubmitSuggestion(learner, &api.SubmitSuggestionRequest{Text: "Add a chemistry tutor"})
	require.NoError(t, err)
	assert.Equal(t, "pending", sub.Suggestion.Status)

	_, err = h.client.ListSuggestions(learner, &api.ListSuggestionsRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	_, err = h.client.UpdateSuggestionStatus(learner, &api.UpdateSuggestionStatusRequest{ID: sub.Suggestion.ID, Status: "accepted"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
	_, err = h.client.ListUsers(learner, &api.ListUsersRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	list, err := h.client.ListSuggestions(admin, &api.ListSuggestionsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Suggestions, 1)

	moved, err := h.client.UpdateSuggestionStatus(admin, &api.UpdateSuggestionStatusRequest{ID: sub.Suggestion.ID, Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", moved.Suggestion.Status)

	_, err = h.client.UpdateSuggestionStatus(admin, &api.UpdateSuggestionStatusRequest{ID: sub.Suggestion.ID, Status: "rejected"})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
	_, err = h.client.UpdateSuggestionStatus(admin, &api.UpdateSuggestionStatusRequest{ID: sub.Suggestion.ID, Status: "bogus"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	users, err := h.client.ListUsers(admin, &api.ListUsersRequest{})
	require.NoError(t, err)
	assert.Len(t, users.Users, 2)

	stats, err := h.client.GetStats(admin, &api.GetStatsRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1.0, stats.AverageLevel)

	report, err := h.client.ExportReport(admin, &api.ExportReportRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{report.Key}, h.storage.keys)
	assert.Equal(t, "https://s3.local/"+report.Key, report.URL)
}

func TestHandlers_AdminKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)
	h := startHarness(t, string(hash), nil)

	_, err = h.client.ListUsers(as(t, root), &api.ListUsersRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = h.client.ListUsers(as(t, root, common.AdminKeyHeaderName, "wrong"), &api.ListUsersRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = h.client.ListUsers(as(t, root, common.AdminKeyHeaderName, "open-sesame"), &api.ListUsersRequest{})
	require.NoError(t, err)

	// the key never grants the role
	_, err = h.client.ListUsers(as(t, ana, common.AdminKeyHeaderName, "open-sesame"), &api.ListUsersRequest{})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}
