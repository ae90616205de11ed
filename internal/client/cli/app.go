package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/client/cache"
	"github.com/dmitrijs2005/lumen/internal/client/client"
	"github.com/dmitrijs2005/lumen/internal/client/config"
	"github.com/dmitrijs2005/lumen/internal/filex"
	"github.com/dmitrijs2005/lumen/internal/netx"
)

// Client is the server surface the commands use. *client.GRPCClient
// satisfies it; tests supply a fake.
type Client interface {
	Ping(ctx context.Context) error
	Achievements(ctx context.Context) ([]api.Achievement, error)
	Resources(ctx context.Context, filter api.ListResourcesRequest) ([]api.Resource, error)
	StartSession(ctx context.Context) (*api.Profile, error)
	Profile(ctx context.Context) (*api.Profile, error)
	AddProgress(ctx context.Context, toolID string, xp *int) (*api.AddProgressResponse, error)
	UpdateProfile(ctx context.Context, name, educationLevel string) (*api.Profile, error)
	ToggleFavorite(ctx context.Context, resourceID string) (*api.ToggleFavoriteResponse, error)
	SubmitSuggestion(ctx context.Context, text string) (*api.Suggestion, error)
	Suggestions(ctx context.Context) ([]api.Suggestion, error)
	SetSuggestionStatus(ctx context.Context, id, status string) (*api.Suggestion, error)
	Users(ctx context.Context) ([]api.Profile, error)
	Stats(ctx context.Context) (*api.StatsResponse, error)
	ExportReport(ctx context.Context) (*api.ExportReportResponse, error)
	SetAccessToken(token string)
	SetAdminKey(key string)
	Close() error
}

// seams for tests
var (
	dialClient = func(endpoint string) (Client, error) {
		return client.NewGRPCClient(endpoint)
	}
	openCache = func(ctx context.Context, path string) (cacheStore, error) {
		return cache.Open(ctx, path)
	}
	download = netx.DownloadPresignedURL
)

type cacheStore interface {
	cache.Repository
	Close() error
}

// App holds the state shared by all commands of one process.
type App struct {
	config *config.Config
	client Client
	cache  cacheStore
	in     *bufio.Reader
	out    io.Writer
}

func NewApp() *App {
	return &App{in: bufio.NewReader(os.Stdin), out: os.Stdout}
}

// init connects lazily on the first command. Repeated calls are no-ops so
// the shell can rebuild the command tree per line.
func (a *App) init(ctx context.Context, cfg *config.Config) error {
	if a.config == nil {
		a.config = cfg
	}
	if a.cache == nil {
		if err := filex.EnsureParentDir(a.config.CachePath); err != nil {
			return err
		}
		c, err := openCache(ctx, a.config.CachePath)
		if err != nil {
			return err
		}
		a.cache = c
	}
	if a.client == nil {
		c, err := dialClient(a.config.ServerEndpointAddr)
		if err != nil {
			return fmt.Errorf("connect %s: %w", a.config.ServerEndpointAddr, err)
		}
		a.client = c
	}

	token, err := a.cache.Get(ctx, cache.KeyAccessToken)
	if err != nil {
		return err
	}
	a.client.SetAccessToken(string(token))

	key, err := a.cache.Get(ctx, cache.KeyAdminKey)
	if err != nil {
		return err
	}
	a.client.SetAdminKey(string(key))
	return nil
}

// Close releases the connection and the cache.
func (a *App) Close() error {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.cache != nil {
		return a.cache.Close()
	}
	return nil
}

func (a *App) timeout() time.Duration {
	if a.config == nil || a.config.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return a.config.RequestTimeout
}

func (a *App) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.timeout())
}
