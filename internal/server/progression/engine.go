// Package progression implements the experience-point and level math.
package progression

import (
	"math"

	"github.com/dmitrijs2005/lumen/internal/server/models"
)

const (
	XPPerLevel = models.XPPerLevel
	MaxLevel   = models.MaxLevel

	// MaxGrant is the largest XP amount a single progress event may carry.
	MaxGrant = 10_000
)

// XPToNextLevel returns the XP threshold of level.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * XPPerLevel
}

// Apply adds delta to an (xp, level) pair and carries overflow into as
// many level-ups as it covers. Negative deltas count as zero. The sum
// saturates instead of wrapping, and progress stops at MaxLevel with XP
// one point below its threshold.
func Apply(xp, level, delta int) (int, int) {
	level = min(max(level, 1), MaxLevel)
	xp = max(xp, 0)
	delta = max(delta, 0)

	total := math.MaxInt
	if delta <= math.MaxInt-xp {
		total = xp + delta
	}
	for level < MaxLevel {
		threshold := XPToNextLevel(level)
		if total < threshold {
			return total, level
		}
		total -= threshold
		level++
	}
	return min(total, XPToNextLevel(MaxLevel)-1), level
}

// ApplyXP returns a copy of user with delta applied. Only XP and Level
// differ from the input; maps and slices are shared with it.
func ApplyXP(user models.User, delta int) models.User {
	user.XP, user.Level = Apply(user.XP, user.Level, delta)
	return user
}
