package achievements

import "github.com/dmitrijs2005/lumen/internal/server/models"

// Evaluate returns, in catalog order, the achievements whose predicate
// holds for u and whose id u does not own yet. Evaluating a profile that
// already carries the result returns nothing.
func Evaluate(u *models.User) []Achievement {
	var unlocked []Achievement
	for _, a := range catalog {
		if u.HasAchievement(a.ID) {
			continue
		}
		if a.Check(u) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// IDs projects achievements onto their ids.
func IDs(list []Achievement) []string {
	ids := make([]string, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	return ids
}

// Bonus is the XP granted for unlocking list.
func Bonus(list []Achievement) int {
	return BonusXP * len(list)
}
