package service

import (
	"learnquest_backend/internal/model"
)

// Progression model: XP-to-level ladder and badge predicates. Everything in
// this file is a pure function over learner history.

// xpThresholds[i] is the minimum XP for level i+1. XP past the last threshold
// stays at the top level.
var xpThresholds = []int{0, 100, 200, 350, 500, 700}

const (
	// XPPerCorrectAnswer is the fixed XP multiplier for quiz grading.
	XPPerCorrectAnswer = 5

	// QuickLearnerAvgTime is the maximum average time-per-question (in the
	// client's time units, seconds in practice) for the Quick Learner badge.
	QuickLearnerAvgTime = 10

	// ModuleMasteryRatio is the per-module best-score ratio required for
	// Module Master.
	ModuleMasteryRatio = 0.8

	// ModuleCompletionRatio marks a module completed after a quiz attempt.
	ModuleCompletionRatio = 0.7
)

// LevelForXP maps total XP onto the threshold ladder. Monotonic:
// more XP never yields a lower level. LevelForXP(0) == 1.
func LevelForXP(xp int) int {
	level := 1
	for i, t := range xpThresholds {
		if xp >= t {
			level = i + 1
		}
	}
	return level
}

// NextLevelXP returns the XP needed for the next level, or 0 at the top.
func NextLevelXP(xp int) int {
	for _, t := range xpThresholds {
		if xp < t {
			return t
		}
	}
	return 0
}

// PerfectScore: every question in the attempt answered correctly.
func PerfectScore(score, total int) bool {
	return total > 0 && score == total
}

// QuickLearner: the attempt averaged at most QuickLearnerAvgTime per question.
func QuickLearner(total, timeTaken int) bool {
	if total <= 0 || timeTaken <= 0 {
		return false
	}
	return float64(timeTaken)/float64(total) <= QuickLearnerAvgTime
}

// ModuleMaster: across the learner's whole attempt history, the best ratio in
// every attempted module is at least ModuleMasteryRatio, with at least one
// module attempted.
func ModuleMaster(history []model.QuizAttempt) bool {
	best := make(map[uint]float64)
	for _, a := range history {
		r := a.Ratio()
		if cur, ok := best[a.ModuleID]; !ok || r > cur {
			best[a.ModuleID] = r
		}
	}
	if len(best) == 0 {
		return false
	}
	for _, r := range best {
		if r < ModuleMasteryRatio {
			return false
		}
	}
	return true
}

// earnedBadges evaluates every badge predicate for one grading event. The
// caller applies the results monotonically via User.AddBadge.
func earnedBadges(latest model.QuizAttempt, history []model.QuizAttempt) []string {
	var badges []string
	if PerfectScore(latest.Score, latest.Total) {
		badges = append(badges, model.BadgePerfectScore)
	}
	if QuickLearner(latest.Total, latest.TimeTaken) {
		badges = append(badges, model.BadgeQuickLearner)
	}
	if ModuleMaster(history) {
		badges = append(badges, model.BadgeModuleMaster)
	}
	return badges
}
