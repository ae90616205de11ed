package api

import "time"

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListAchievementsRequest struct{}

type ListAchievementsResponse struct {
	Achievements []Achievement `json:"achievements"`
}

type Resource struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Type           string `json:"type"`
	Category       string `json:"category"`
	EducationLevel string `json:"education_level"`
	URL            string `json:"url"`
}

// ListResourcesRequest filters the library. Empty fields match everything.
type ListResourcesRequest struct {
	Term     string `json:"term,omitempty"`
	Category string `json:"category,omitempty"`
	Level    string `json:"level,omitempty"`
}

type ListResourcesResponse struct {
	Resources []Resource `json:"resources"`
}

// Profile is a learner profile as shown to its owner and to admins.
type Profile struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Email             string         `json:"email"`
	EducationLevel    string         `json:"education_level"`
	XP                int            `json:"xp"`
	Level             int            `json:"level"`
	XPToNextLevel     int            `json:"xp_to_next_level"`
	ToolUsage         map[string]int `json:"tool_usage"`
	Achievements      []string       `json:"achievements"`
	FavoriteResources []string       `json:"favorite_resources"`
	Role              string         `json:"role"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

type ProfileResponse struct {
	Profile Profile `json:"profile"`
}

type StartSessionRequest struct{}

type GetProfileRequest struct{}

// AddProgressRequest records a tool use. When XP is nil the tool's
// standard reward is granted.
type AddProgressRequest struct {
	ToolID string `json:"tool_id,omitempty"`
	XP     *int   `json:"xp,omitempty"`
}

type Notification struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type AddProgressResponse struct {
	Profile       Profile        `json:"profile"`
	Unlocked      []Achievement  `json:"unlocked,omitempty"`
	LeveledUp     bool           `json:"leveled_up"`
	PreviousLevel int            `json:"previous_level"`
	XPGained      int            `json:"xp_gained"`
	Notifications []Notification `json:"notifications,omitempty"`
}

type UpdateProfileRequest struct {
	Name           string `json:"name"`
	EducationLevel string `json:"education_level"`
}

type ToggleFavoriteRequest struct {
	ResourceID string `json:"resource_id"`
}

type ToggleFavoriteResponse struct {
	Profile  Profile `json:"profile"`
	Favorite bool    `json:"favorite"`
}

type Suggestion struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubmitSuggestionRequest struct {
	Text string `json:"text"`
}

type SuggestionResponse struct {
	Suggestion Suggestion `json:"suggestion"`
}

type ListSuggestionsRequest struct{}

type ListSuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}

type UpdateSuggestionStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []Profile `json:"users"`
}

type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type GetStatsRequest struct{}

type StatsResponse struct {
	GeneratedAt       time.Time `json:"generated_at"`
	TotalUsers        int       `json:"total_users"`
	AverageLevel      float64   `json:"average_level"`
	TotalAchievements int       `json:"total_achievements"`
	ToolUsage         []Count   `json:"tool_usage"`
	EducationLevels   []Count   `json:"education_levels"`
}

type ExportReportRequest struct{}

type ExportReportResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
