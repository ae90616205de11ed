package users

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/lumen/internal/server/models"
)

const userColumns = `id, name, email, education_level, xp, level, tool_usage, achievements,
		favorite_resources, role, revision, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// collections is the JSON form of the map and set columns.
type collections struct {
	usage, achievements, favorites string
}

func encodeCollections(u *models.User) (collections, error) {
	usage, err := json.Marshal(u.ToolUsage)
	if err != nil {
		return collections{}, fmt.Errorf("encode tool usage: %w", err)
	}
	ach, err := json.Marshal(u.Achievements)
	if err != nil {
		return collections{}, fmt.Errorf("encode achievements: %w", err)
	}
	fav, err := json.Marshal(u.FavoriteResources)
	if err != nil {
		return collections{}, fmt.Errorf("encode favorites: %w", err)
	}
	return collections{usage: string(usage), achievements: string(ach), favorites: string(fav)}, nil
}

func decodeCollections(u *models.User, usage, ach, fav []byte) error {
	if len(usage) > 0 {
		if err := json.Unmarshal(usage, &u.ToolUsage); err != nil {
			return fmt.Errorf("decode tool usage: %w", err)
		}
	}
	if len(ach) > 0 {
		if err := json.Unmarshal(ach, &u.Achievements); err != nil {
			return fmt.Errorf("decode achievements: %w", err)
		}
	}
	if len(fav) > 0 {
		if err := json.Unmarshal(fav, &u.FavoriteResources); err != nil {
			return fmt.Errorf("decode favorites: %w", err)
		}
	}
	u.Normalize()
	return nil
}
