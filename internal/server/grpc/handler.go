package grpc

import (
	"context"

	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/server/achievements"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/progression"
	"github.com/dmitrijs2005/lumen/internal/server/resources"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) caller(ctx context.Context) (models.Identity, error) {
	id, ok := identityFromContext(ctx)
	if !ok {
		return models.Identity{}, status.Error(codes.Unauthenticated, "missing identity")
	}
	return id, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	if s.pinger != nil {
		if err := s.pinger.Ping(ctx); err != nil {
			return nil, status.Error(codes.Unavailable, "store unavailable")
		}
	}
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ListAchievements(ctx context.Context, req *api.ListAchievementsRequest) (*api.ListAchievementsResponse, error) {
	return &api.ListAchievementsResponse{Achievements: toAchievements(achievements.Catalog())}, nil
}

func (s *GRPCServer) ListResources(ctx context.Context, req *api.ListResourcesRequest) (*api.ListResourcesResponse, error) {
	return &api.ListResourcesResponse{Resources: toResources(resources.Filter(req.Term, req.Category, req.Level))}, nil
}

func (s *GRPCServer) StartSession(ctx context.Context, req *api.StartSessionRequest) (*api.ProfileResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.session.StartSession(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Session started", "user_id", u.ID, "role", u.Role)
	return &api.ProfileResponse{Profile: toProfile(u)}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.GetProfileRequest) (*api.ProfileResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.session.Profile(ctx, id.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ProfileResponse{Profile: toProfile(u)}, nil
}

func (s *GRPCServer) AddProgress(ctx context.Context, req *api.AddProgressRequest) (*api.AddProgressResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if req.ToolID == "" && req.XP == nil {
		return nil, status.Error(codes.InvalidArgument, "tool_id or xp is required")
	}

	amount, _ := progression.RewardFor(req.ToolID)
	if req.XP != nil {
		amount = *req.XP
	}

	res, err := s.session.AddProgress(ctx, id.ID, amount, req.ToolID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &api.AddProgressResponse{
		Profile:       toProfile(res.User),
		LeveledUp:     res.LeveledUp,
		PreviousLevel: res.PreviousLevel,
		XPGained:      res.XPGained,
		Notifications: toNotifications(res.Notifications),
	}
	if len(res.Unlocked) > 0 {
		resp.Unlocked = toAchievements(res.Unlocked)
	}
	return resp, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *api.UpdateProfileRequest) (*api.ProfileResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.session.UpdateProfile(ctx, id.ID, req.Name, req.EducationLevel)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ProfileResponse{Profile: toProfile(u)}, nil
}

func (s *GRPCServer) ToggleFavorite(ctx context.Context, req *api.ToggleFavoriteRequest) (*api.ToggleFavoriteResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	u, on, err := s.session.ToggleFavorite(ctx, id.ID, req.ResourceID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ToggleFavoriteResponse{Profile: toProfile(u), Favorite: on}, nil
}

func (s *GRPCServer) SubmitSuggestion(ctx context.Context, req *api.SubmitSuggestionRequest) (*api.SuggestionResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	sg, err := s.mailbox.Submit(ctx, id, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.SuggestionResponse{Suggestion: toSuggestion(sg)}, nil
}

func (s *GRPCServer) ListSuggestions(ctx context.Context, req *api.ListSuggestionsRequest) (*api.ListSuggestionsResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	list, err := s.mailbox.List(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]api.Suggestion, 0, len(list))
	for _, sg := range list {
		out = append(out, toSuggestion(sg))
	}
	return &api.ListSuggestionsResponse{Suggestions: out}, nil
}

func (s *GRPCServer) UpdateSuggestionStatus(ctx context.Context, req *api.UpdateSuggestionStatusRequest) (*api.SuggestionResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	sg, err := s.mailbox.Transition(ctx, id, req.ID, req.Status)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.SuggestionResponse{Suggestion: toSuggestion(sg)}, nil
}

func (s *GRPCServer) ListUsers(ctx context.Context, req *api.ListUsersRequest) (*api.ListUsersResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.admin.ListUsers(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]api.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, toProfile(u))
	}
	return &api.ListUsersResponse{Users: out}, nil
}

func (s *GRPCServer) GetStats(ctx context.Context, req *api.GetStatsRequest) (*api.StatsResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	st, err := s.admin.Stats(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toStats(st), nil
}

func (s *GRPCServer) ExportReport(ctx context.Context, req *api.ExportReportRequest) (*api.ExportReportResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	key, url, err := s.admin.ExportReport(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.ExportReportResponse{Key: key, URL: url}, nil
}
