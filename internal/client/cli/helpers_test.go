package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/client/cache"
	"github.com/dmitrijs2005/lumen/internal/client/config"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	token    string
	adminKey string
	closed   bool

	profile  api.Profile
	progress *api.AddProgressResponse
	err      error

	lastTool    string
	lastXP      *int
	lastName    string
	lastEdu     string
	lastText    string
	lastID      string
	lastStatus  string
	lastFilter  api.ListResourcesRequest
	favorite    bool
	suggestions []api.Suggestion
	stats       *api.StatsResponse
}

func (f *fakeClient) Ping(context.Context) error { return f.err }

func (f *fakeClient) Achievements(context.Context) ([]api.Achievement, error) {
	return []api.Achievement{{ID: "first_steps", Name: "First Steps", Description: "Use any tool"}}, f.err
}

func (f *fakeClient) Resources(_ context.Context, filter api.ListResourcesRequest) ([]api.Resource, error) {
	f.lastFilter = filter
	return []api.Resource{{ID: "r-1", Title: "Algebra Basics", Type: "video", Category: "Mathematics", EducationLevel: "secondary"}}, f.err
}

func (f *fakeClient) StartSession(context.Context) (*api.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.profile, nil
}

func (f *fakeClient) Profile(context.Context) (*api.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &f.profile, nil
}

func (f *fakeClient) AddProgress(_ context.Context, toolID string, xp *int) (*api.AddProgressResponse, error) {
	f.lastTool, f.lastXP = toolID, xp
	if f.err != nil {
		return nil, f.err
	}
	return f.progress, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, name, educationLevel string) (*api.Profile, error) {
	f.lastName, f.lastEdu = name, educationLevel
	p := f.profile
	p.Name, p.EducationLevel = name, educationLevel
	return &p, f.err
}

func (f *fakeClient) ToggleFavorite(_ context.Context, resourceID string) (*api.ToggleFavoriteResponse, error) {
	f.lastID = resourceID
	f.favorite = !f.favorite
	return &api.ToggleFavoriteResponse{Profile: f.profile, Favorite: f.favorite}, f.err
}

func (f *fakeClient) SubmitSuggestion(_ context.Context, text string) (*api.Suggestion, error) {
	f.lastText = text
	if f.err != nil {
		return nil, f.err
	}
	return &api.Suggestion{ID: "s-1", Text: text, Status: "pending"}, nil
}

func (f *fakeClient) Suggestions(context.Context) ([]api.Suggestion, error) {
	return f.suggestions, f.err
}

func (f *fakeClient) SetSuggestionStatus(_ context.Context, id, status string) (*api.Suggestion, error) {
	f.lastID, f.lastStatus = id, status
	if f.err != nil {
		return nil, f.err
	}
	return &api.Suggestion{ID: id, Status: status}, nil
}

func (f *fakeClient) Users(context.Context) ([]api.Profile, error) {
	return []api.Profile{f.profile}, f.err
}

func (f *fakeClient) Stats(context.Context) (*api.StatsResponse, error) {
	return f.stats, f.err
}

func (f *fakeClient) ExportReport(context.Context) (*api.ExportReportResponse, error) {
	return &api.ExportReportResponse{Key: "reports/2026/10/15/x.json", URL: "https://s3.local/x"}, f.err
}

func (f *fakeClient) SetAccessToken(token string) { f.token = token }
func (f *fakeClient) SetAdminKey(key string)      { f.adminKey = key }
func (f *fakeClient) Close() error                { f.closed = true; return nil }

var ana = api.Profile{
	ID: "u-1", Name: "Ana", Email: "ana@school.io", EducationLevel: "secondary",
	XP: 40, Level: 2, XPToNextLevel: 200, Role: "user",
	ToolUsage:    map[string]int{"chatbot": 3, "translator": 1},
	Achievements: []string{"first_steps"},
}

func newTestApp(t *testing.T, fc *fakeClient, stdin string) *App {
	t.Helper()

	c, err := cache.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return &App{
		config: &config.Config{ServerEndpointAddr: "bufnet", RequestTimeout: time.Second},
		client: fc,
		cache:  c,
		in:     bufio.NewReader(strings.NewReader(stdin)),
	}
}

func run(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCommand(app)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func stubPassword(t *testing.T, value string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return []byte(value), nil }
}
