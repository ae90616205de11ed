package api

import (
	"context"

	"google.golang.org/grpc"
)

// ProgressServiceClient calls lumen.v1.ProgressService with the JSON codec.
type ProgressServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewProgressServiceClient(cc grpc.ClientConnInterface) *ProgressServiceClient {
	return &ProgressServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ProgressServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *ProgressServiceClient) ListAchievements(ctx context.Context, in *ListAchievementsRequest, opts ...grpc.CallOption) (*ListAchievementsResponse, error) {
	return invoke[ListAchievementsResponse](ctx, c.cc, MethodListAchievements, in, opts)
}

func (c *ProgressServiceClient) ListResources(ctx context.Context, in *ListResourcesRequest, opts ...grpc.CallOption) (*ListResourcesResponse, error) {
	return invoke[ListResourcesResponse](ctx, c.cc, MethodListResources, in, opts)
}

func (c *ProgressServiceClient) StartSession(ctx context.Context, in *StartSessionRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodStartSession, in, opts)
}

func (c *ProgressServiceClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *ProgressServiceClient) AddProgress(ctx context.Context, in *AddProgressRequest, opts ...grpc.CallOption) (*AddProgressResponse, error) {
	return invoke[AddProgressResponse](ctx, c.cc, MethodAddProgress, in, opts)
}

func (c *ProgressServiceClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *ProgressServiceClient) ToggleFavorite(ctx context.Context, in *ToggleFavoriteRequest, opts ...grpc.CallOption) (*ToggleFavoriteResponse, error) {
	return invoke[ToggleFavoriteResponse](ctx, c.cc, MethodToggleFavorite, in, opts)
}

func (c *ProgressServiceClient) SubmitSuggestion(ctx context.Context, in *SubmitSuggestionRequest, opts ...grpc.CallOption) (*SuggestionResponse, error) {
	return invoke[SuggestionResponse](ctx, c.cc, MethodSubmitSuggestion, in, opts)
}

func (c *ProgressServiceClient) ListSuggestions(ctx context.Context, in *ListSuggestionsRequest, opts ...grpc.CallOption) (*ListSuggestionsResponse, error) {
	return invoke[ListSuggestionsResponse](ctx, c.cc, MethodListSuggestions, in, opts)
}

func (c *ProgressServiceClient) UpdateSuggestionStatus(ctx context.Context, in *UpdateSuggestionStatusRequest, opts ...grpc.CallOption) (*SuggestionResponse, error) {
	return invoke[SuggestionResponse](ctx, c.cc, MethodUpdateSuggestionStatus, in, opts)
}

func (c *ProgressServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return invoke[ListUsersResponse](ctx, c.cc, MethodListUsers, in, opts)
}

func (c *ProgressServiceClient) GetStats(ctx context.Context, in *GetStatsRequest, opts ...grpc.CallOption) (*StatsResponse, error) {
	return invoke[StatsResponse](ctx, c.cc, MethodGetStats, in, opts)
}

func (c *ProgressServiceClient) ExportReport(ctx context.Context, in *ExportReportRequest, opts ...grpc.CallOption) (*ExportReportResponse, error) {
	return invoke[ExportReportResponse](ctx, c.cc, MethodExportReport, in, opts)
}
