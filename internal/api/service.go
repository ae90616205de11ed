package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "lumen.v1.ProgressService"

// Method names.
const (
	MethodPing                   = "Ping"
	MethodListAchievements       = "ListAchievements"
	MethodListResources          = "ListResources"
	MethodStartSession           = "StartSession"
	MethodGetProfile             = "GetProfile"
	MethodAddProgress            = "AddProgress"
	MethodUpdateProfile          = "UpdateProfile"
	MethodToggleFavorite         = "ToggleFavorite"
	MethodSubmitSuggestion       = "SubmitSuggestion"
	MethodListSuggestions        = "ListSuggestions"
	MethodUpdateSuggestionStatus = "UpdateSuggestionStatus"
	MethodListUsers              = "ListUsers"
	MethodGetStats               = "GetStats"
	MethodExportReport           = "ExportReport"
)

// FullMethod returns "/lumen.v1.ProgressService/<method>".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ProgressServiceServer is implemented by the server.
type ProgressServiceServer interface {
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListAchievements(context.Context, *ListAchievementsRequest) (*ListAchievementsResponse, error)
	ListResources(context.Context, *ListResourcesRequest) (*ListResourcesResponse, error)
	StartSession(context.Context, *StartSessionRequest) (*ProfileResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error)
	AddProgress(context.Context, *AddProgressRequest) (*AddProgressResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error)
	ToggleFavorite(context.Context, *ToggleFavoriteRequest) (*ToggleFavoriteResponse, error)
	SubmitSuggestion(context.Context, *SubmitSuggestionRequest) (*SuggestionResponse, error)
	ListSuggestions(context.Context, *ListSuggestionsRequest) (*ListSuggestionsResponse, error)
	UpdateSuggestionStatus(context.Context, *UpdateSuggestionStatusRequest) (*SuggestionResponse, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
	GetStats(context.Context, *GetStatsRequest) (*StatsResponse, error)
	ExportReport(context.Context, *ExportReportRequest) (*ExportReportResponse, error)
}

// UnimplementedProgressServiceServer answers every method with
// codes.Unimplemented. Embed it to stay forward compatible.
type UnimplementedProgressServiceServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedProgressServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedProgressServiceServer) ListAchievements(context.Context, *ListAchievementsRequest) (*ListAchievementsResponse, error) {
	return nil, unimplemented(MethodListAchievements)
}
func (UnimplementedProgressServiceServer) ListResources(context.Context, *ListResourcesRequest) (*ListResourcesResponse, error) {
	return nil, unimplemented(MethodListResources)
}
func (UnimplementedProgressServiceServer) StartSession(context.Context, *StartSessionRequest) (*ProfileResponse, error) {
	return nil, unimplemented(MethodStartSession)
}
func (UnimplementedProgressServiceServer) GetProfile(context.Context, *GetProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented(MethodGetProfile)
}
func (UnimplementedProgressServiceServer) AddProgress(context.Context, *AddProgressRequest) (*AddProgressResponse, error) {
	return nil, unimplemented(MethodAddProgress)
}
func (UnimplementedProgressServiceServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*ProfileResponse, error) {
	return nil, unimplemented(MethodUpdateProfile)
}
func (UnimplementedProgressServiceServer) ToggleFavorite(context.Context, *ToggleFavoriteRequest) (*ToggleFavoriteResponse, error) {
	return nil, unimplemented(MethodToggleFavorite)
}
func (UnimplementedProgressServiceServer) SubmitSuggestion(context.Context, *SubmitSuggestionRequest) (*SuggestionResponse, error) {
	return nil, unimplemented(MethodSubmitSuggestion)
}
func (UnimplementedProgressServiceServer) ListSuggestions(context.Context, *ListSuggestionsRequest) (*ListSuggestionsResponse, error) {
	return nil, unimplemented(MethodListSuggestions)
}
func (UnimplementedProgressServiceServer) UpdateSuggestionStatus(context.Context, *UpdateSuggestionStatusRequest) (*SuggestionResponse, error) {
	return nil, unimplemented(MethodUpdateSuggestionStatus)
}
func (UnimplementedProgressServiceServer) ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error) {
	return nil, unimplemented(MethodListUsers)
}
func (UnimplementedProgressServiceServer) GetStats(context.Context, *GetStatsRequest) (*StatsResponse, error) {
	return nil, unimplemented(MethodGetStats)
}
func (UnimplementedProgressServiceServer) ExportReport(context.Context, *ExportReportRequest) (*ExportReportResponse, error) {
	return nil, unimplemented(MethodExportReport)
}

// unary adapts a server method to a grpc.MethodDesc, running it through
// the server's interceptor chain.
func unary[Req, Resp any](method string, call func(ProgressServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ProgressServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(ProgressServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ProgressServiceDesc describes the service for grpc.Server.RegisterService.
var ProgressServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProgressServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, ProgressServiceServer.Ping),
		unary(MethodListAchievements, ProgressServiceServer.ListAchievements),
		unary(MethodListResources, ProgressServiceServer.ListResources),
		unary(MethodStartSession, ProgressServiceServer.StartSession),
		unary(MethodGetProfile, ProgressServiceServer.GetProfile),
		unary(MethodAddProgress, ProgressServiceServer.AddProgress),
		unary(MethodUpdateProfile, ProgressServiceServer.UpdateProfile),
		unary(MethodToggleFavorite, ProgressServiceServer.ToggleFavorite),
		unary(MethodSubmitSuggestion, ProgressServiceServer.SubmitSuggestion),
		unary(MethodListSuggestions, ProgressServiceServer.ListSuggestions),
		unary(MethodUpdateSuggestionStatus, ProgressServiceServer.UpdateSuggestionStatus),
		unary(MethodListUsers, ProgressServiceServer.ListUsers),
		unary(MethodGetStats, ProgressServiceServer.GetStats),
		unary(MethodExportReport, ProgressServiceServer.ExportReport),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lumen/v1/progress.json",
}

func RegisterProgressServiceServer(s grpc.ServiceRegistrar, srv ProgressServiceServer) {
	s.RegisterService(&ProgressServiceDesc, srv)
}
