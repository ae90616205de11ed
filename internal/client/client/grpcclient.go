package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/common"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type GRPCClient struct {
	conn   *grpc.ClientConn
	client *api.ProgressServiceClient

	mu          sync.RWMutex
	accessToken string
	adminKey    string
}

// NewGRPCClient dials endpoint lazily. Extra options are appended after the
// defaults, which lets tests supply a bufconn dialer.
func NewGRPCClient(endpoint string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{}
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithChainUnaryInterceptor(c.credentialsInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpoint, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewProgressServiceClient(conn)
	return c, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = token
}

func (c *GRPCClient) SetAdminKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adminKey = key
}

func withHeader(ctx context.Context, name, value string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(name, value)
	return metadata.NewOutgoingContext(ctx, md)
}

func (c *GRPCClient) credentialsInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	c.mu.RLock()
	token, key := c.accessToken, c.adminKey
	c.mu.RUnlock()

	if token != "" {
		ctx = withHeader(ctx, common.AccessTokenHeaderName, token)
	}
	if key != "" {
		ctx = withHeader(ctx, common.AdminKeyHeaderName, key)
	}
	return invoker(ctx, method, req, reply, cc, opts...)
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", common.ErrInvalidTransition, st.Message())
	case codes.Aborted:
		return common.ErrVersionConflict
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.client.Ping(ctx, &api.PingRequest{})
	if err != nil {
		return mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) Achievements(ctx context.Context) ([]api.Achievement, error) {
	resp, err := c.client.ListAchievements(ctx, &api.ListAchievementsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Achievements, nil
}

func (c *GRPCClient) Resources(ctx context.Context, filter api.ListResourcesRequest) ([]api.Resource, error) {
	resp, err := c.client.ListResources(ctx, &filter)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Resources, nil
}

func (c *GRPCClient) StartSession(ctx context.Context) (*api.Profile, error) {
	resp, err := c.client.StartSession(ctx, &api.StartSessionRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Profile, nil
}

func (c *GRPCClient) Profile(ctx context.Context) (*api.Profile, error) {
	resp, err := c.client.GetProfile(ctx, &api.GetProfileRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Profile, nil
}

// AddProgress records a use of toolID. A nil xp lets the server grant the
// tool's standard reward.
func (c *GRPCClient) AddProgress(ctx context.Context, toolID string, xp *int) (*api.AddProgressResponse, error) {
	resp, err := c.client.AddProgress(ctx, &api.AddProgressRequest{ToolID: toolID, XP: xp})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) UpdateProfile(ctx context.Context, name, educationLevel string) (*api.Profile, error) {
	resp, err := c.client.UpdateProfile(ctx, &api.UpdateProfileRequest{Name: name, EducationLevel: educationLevel})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Profile, nil
}

func (c *GRPCClient) ToggleFavorite(ctx context.Context, resourceID string) (*api.ToggleFavoriteResponse, error) {
	resp, err := c.client.ToggleFavorite(ctx, &api.ToggleFavoriteRequest{ResourceID: resourceID})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) SubmitSuggestion(ctx context.Context, text string) (*api.Suggestion, error) {
	resp, err := c.client.SubmitSuggestion(ctx, &api.SubmitSuggestionRequest{Text: text})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Suggestion, nil
}

func (c *GRPCClient) Suggestions(ctx context.Context) ([]api.Suggestion, error) {
	resp, err := c.client.ListSuggestions(ctx, &api.ListSuggestionsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Suggestions, nil
}

func (c *GRPCClient) SetSuggestionStatus(ctx context.Context, id, status string) (*api.Suggestion, error) {
	resp, err := c.client.UpdateSuggestionStatus(ctx, &api.UpdateSuggestionStatusRequest{ID: id, Status: status})
	if err != nil {
		return nil, mapError(err)
	}
	return &resp.Suggestion, nil
}

func (c *GRPCClient) Users(ctx context.Context) ([]api.Profile, error) {
	resp, err := c.client.ListUsers(ctx, &api.ListUsersRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Users, nil
}

func (c *GRPCClient) Stats(ctx context.Context) (*api.StatsResponse, error) {
	resp, err := c.client.GetStats(ctx, &api.GetStatsRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}

func (c *GRPCClient) ExportReport(ctx context.Context) (*api.ExportReportResponse, error) {
	resp, err := c.client.ExportReport(ctx, &api.ExportReportRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return resp, nil
}
