package engine

import (
	"slices"

	"github.com/hollowfield/warrensim/internal/catalog"
)

// EvaluateAchievements scans the achievement catalog in order and returns
// the ids whose predicates hold but are not yet unlocked. It is a pure
// function of its inputs; multiple ids may fire in one call.
func EvaluateAchievements(stats catalog.Stats, unlocked []string) []string {
	var newly []string
	for _, a := range catalog.Achievements {
		if slices.Contains(unlocked, a.ID) {
			continue
		}
		if a.Requirement(stats) {
			newly = append(newly, a.ID)
		}
	}
	return newly
}

// applyAchievements evaluates against the current state and records any
// new unlocks with the day they happened.
func (e *Engine) applyAchievements(s *ColonyState) []string {
	newly := EvaluateAchievements(s.Snapshot(), s.UnlockedAchievements)
	for _, id := range newly {
		s.UnlockedAchievements = append(s.UnlockedAchievements, id)
		s.AchievementUnlockDay[id] = s.Day
	}
	return newly
}
