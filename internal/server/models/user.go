// Package models holds the persistent shapes of the progression service:
// learner profiles, suggestions and the identity handed over by the
// identity gateway.
package models

import (
	"slices"
	"strings"
	"time"
)

// Role is derived from the identity on every session start and is never
// edited through the profile.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// XPPerLevel scales the XP threshold of each level: reaching level n+1
// takes n*XPPerLevel points accumulated within level n.
const XPPerLevel = 100

// MaxLevel is the highest reachable level. XP at MaxLevel stops one point
// short of its threshold.
const MaxLevel = 1000

// User is a learner profile.
//
// XP and Level keep 0 <= XP < Level*100 and Level >= 1. Achievements only
// ever grow. Achievements and FavoriteResources are sets kept sorted.
// Revision is bumped by the store on every successful write and must match
// on conditional saves.
type User struct {
	ID                string
	Name              string
	Email             string
	EducationLevel    string
	XP                int
	Level             int
	ToolUsage         map[string]int
	Achievements      []string
	FavoriteResources []string
	Role              Role
	Revision          int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUser builds the profile registered on first sign-in.
func NewUser(identity Identity, role Role, now time.Time) *User {
	u := &User{
		ID:        identity.ID,
		Name:      identity.DisplayName,
		Email:     identity.Email,
		Level:     1,
		Role:      role,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
	u.Normalize()
	return u
}

// Normalize fills defaults for records that predate a field and restores
// the set and bound invariants.
func (u *User) Normalize() {
	if u.ToolUsage == nil {
		u.ToolUsage = map[string]int{}
	}
	u.Achievements = normalizeSet(u.Achievements)
	u.FavoriteResources = normalizeSet(u.FavoriteResources)
	u.Level = min(max(u.Level, 1), MaxLevel)
	u.XP = max(u.XP, 0)
	// fold XP left above the threshold by older writers
	for u.Level < MaxLevel && u.XP >= u.Level*XPPerLevel {
		u.XP -= u.Level * XPPerLevel
		u.Level++
	}
	u.XP = min(u.XP, MaxLevel*XPPerLevel-1)
	if !u.Role.Valid() {
		u.Role = RoleUser
	}
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	c := *u
	c.ToolUsage = make(map[string]int, len(u.ToolUsage))
	for k, v := range u.ToolUsage {
		c.ToolUsage[k] = v
	}
	c.Achievements = slices.Clone(u.Achievements)
	c.FavoriteResources = slices.Clone(u.FavoriteResources)
	return &c
}

// UsageCount returns how many times tool was used, zero when never.
func (u *User) UsageCount(tool string) int {
	return u.ToolUsage[tool]
}

// ToolsUsed is the number of distinct tools used at least once.
func (u *User) ToolsUsed() int {
	n := 0
	for _, c := range u.ToolUsage {
		if c > 0 {
			n++
		}
	}
	return n
}

func (u *User) HasAchievement(id string) bool {
	_, ok := slices.BinarySearch(u.Achievements, id)
	return ok
}

// AddAchievements unions ids into the achievement set.
func (u *User) AddAchievements(ids ...string) {
	u.Achievements = normalizeSet(append(u.Achievements, ids...))
}

func (u *User) HasFavorite(id string) bool {
	_, ok := slices.BinarySearch(u.FavoriteResources, id)
	return ok
}

// ToggleFavorite flips membership of id and reports whether it is now a
// favorite.
func (u *User) ToggleFavorite(id string) bool {
	if i, ok := slices.BinarySearch(u.FavoriteResources, id); ok {
		u.FavoriteResources = slices.Delete(u.FavoriteResources, i, i+1)
		return false
	}
	u.FavoriteResources = normalizeSet(append(u.FavoriteResources, id))
	return true
}

func normalizeSet(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Name           *string
	EducationLevel *string
	Role           *Role
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && p.EducationLevel == nil && p.Role == nil
}

// Apply copies the set fields onto u.
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.EducationLevel != nil {
		u.EducationLevel = *p.EducationLevel
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
}
