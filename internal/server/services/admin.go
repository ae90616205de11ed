package services

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/lumen/internal/common"
	"github.com/dmitrijs2005/lumen/internal/logging"
	"github.com/dmitrijs2005/lumen/internal/server/models"
	"github.com/dmitrijs2005/lumen/internal/server/roles"
	"github.com/dmitrijs2005/lumen/internal/server/store"
	"github.com/google/uuid"
)

// UnspecifiedEducation labels profiles without an education level.
const UnspecifiedEducation = "unspecified"

// ObjectStorage receives exported reports.
type ObjectStorage interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats summarizes all learner profiles.
type Stats struct {
	GeneratedAt       time.Time `json:"generated_at"`
	TotalUsers        int       `json:"total_users"`
	AverageLevel      float64   `json:"average_level"`
	TotalAchievements int       `json:"total_achievements"`
	ToolUsage         []Count   `json:"tool_usage"`
	EducationLevels   []Count   `json:"education_levels"`
}

// AdminService serves fleet-wide reads. Every call requires the admin role.
type AdminService struct {
	store    store.ProfileStore
	resolver *roles.Resolver
	storage  ObjectStorage
	log      logging.Logger
	now      func() time.Time
}

// NewAdminService builds the service. storage may be nil, in which case
// ExportReport fails.
func NewAdminService(st store.ProfileStore, resolver *roles.Resolver, storage ObjectStorage, log logging.Logger) *AdminService {
	return &AdminService{
		store:    st,
		resolver: resolver,
		storage:  storage,
		log:      log.With("module", "admin"),
		now:      time.Now,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, actor models.Identity) ([]*models.User, error) {
	if !s.resolver.IsAdmin(actor) {
		return nil, common.ErrorUnauthorized
	}
	return s.store.ListUsers(ctx)
}

func (s *AdminService) Stats(ctx context.Context, actor models.Identity) (*Stats, error) {
	users, err := s.ListUsers(ctx, actor)
	if err != nil {
		return nil, err
	}
	st := ComputeStats(users)
	st.GeneratedAt = s.now().UTC()
	return &st, nil
}

// ExportReport uploads the current Stats as JSON and returns its object key
// and a presigned download URL.
func (s *AdminService) ExportReport(ctx context.Context, actor models.Identity) (string, string, error) {
	st, err := s.Stats(ctx, actor)
	if err != nil {
		return "", "", err
	}
	if s.storage == nil {
		return "", "", fmt.Errorf("%w: report storage is not configured", common.ErrorInternal)
	}

	body, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return "", "", fmt.Errorf("encode report: %w", err)
	}

	key := ReportKey(st.GeneratedAt)
	if err := s.storage.Put(ctx, key, body, "application/json"); err != nil {
		return "", "", err
	}
	url, err := s.storage.PresignGet(ctx, key)
	if err != nil {
		return "", "", err
	}

	s.log.Info(ctx, "report exported", "key", key, "admin", actor.Email)
	return key, url, nil
}

// ReportKey places a report under a date prefix: reports/YYYY/MM/DD/<uuid>.json.
func ReportKey(at time.Time) string {
	at = at.UTC()
	return fmt.Sprintf("reports/%04d/%02d/%02d/%s.json", at.Year(), int(at.Month()), at.Day(), uuid.New())
}

// ComputeStats aggregates users. The average level is rounded to one
// decimal; count lists are sorted by count descending, then by name.
func ComputeStats(users []*models.User) Stats {
	var (
		st        = Stats{TotalUsers: len(users)}
		levelSum  int
		tools     = map[string]int{}
		education = map[string]int{}
	)
	for _, u := range users {
		levelSum += u.Level
		st.TotalAchievements += len(u.Achievements)
		for tool, n := range u.ToolUsage {
			tools[tool] += n
		}
		level := strings.TrimSpace(u.EducationLevel)
		if level == "" {
			level = UnspecifiedEducation
		}
		education[level]++
	}
	if len(users) > 0 {
		st.AverageLevel = math.Round(float64(levelSum)/float64(len(users))*10) / 10
	}
	st.ToolUsage = sortedCounts(tools)
	st.EducationLevels = sortedCounts(education)
	return st
}

func sortedCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return out
}
