package grpc

import (
	"github.com/dmitrijs2005/lumen/internal/api"
	"github.com/dmitrijs2005/lumen/internal/server/achievements"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/progression"
	"github.com/dmitrijs2005/lumen/internal/server/resources"
	"github.com/dmitrijs2005/lumen/internal/server/services"
)

func toProfile(u *models.User) api.Profile {
	usage := make(map[string]int, len(u.ToolUsage))
	for k, v := range u.ToolUsage {
		usage[k] = v
	}
	return api.Profile{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		EducationLevel:    u.EducationLevel,
		XP:                u.XP,
		Level:             u.Level,
		XPToNextLevel:     progression.XPToNextLevel(u.Level),
		ToolUsage:         usage,
		Achievements:      append([]string(nil), u.Achievements...),
		FavoriteResources: append([]string(nil), u.FavoriteResources...),
		Role:              string(u.Role),
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

func toAchievements(list []achievements.Achievement) []api.Achievement {
	out := make([]api.Achievement, 0, len(list))
	for _, a := range list {
		out = append(out, api.Achievement{ID: a.ID, Name: a.Name, Description: a.Description})
	}
	return out
}

func toResources(list []resources.Resource) []api.Resource {
	out := make([]api.Resource, 0, len(list))
	for _, r := range list {
		out = append(out, api.Resource{
			ID:             r.ID,
			Title:          r.Title,
			Description:    r.Description,
			Type:           r.Type,
			Category:       r.Category,
			EducationLevel: r.EducationLevel,
			URL:            r.URL,
		})
	}
	return out
}

func toSuggestion(s *models.Suggestion) api.Suggestion {
	return api.Suggestion{
		ID:        s.ID,
		Text:      s.Text,
		UserID:    s.UserID,
		UserName:  s.UserName,
		Status:    string(s.Status),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toNotifications(list []services.Notification) []api.Notification {
	if len(list) == 0 {
		return nil
	}
	out := make([]api.Notification, 0, len(list))
	for _, n := range list {
		out = append(out, api.Notification{Kind: n.Kind, Title: n.Title, Message: n.Message})
	}
	return out
}

func toCounts(list []services.Count) []api.Count {
	out := make([]api.Count, 0, len(list))
	for _, c := range list {
		out = append(out, api.Count{Name: c.Name, Count: c.Count})
	}
	return out
}

func toStats(st *services.Stats) *api.StatsResponse {
	return &api.StatsResponse{
		GeneratedAt:       st.GeneratedAt,
		TotalUsers:        st.TotalUsers,
		AverageLevel:      st.AverageLevel,
		TotalAchievements: st.TotalAchievements,
		ToolUsage:         toCounts(st.ToolUsage),
		EducationLevels:   toCounts(st.EducationLevels),
	}
}
