package service

import (
	"testing"

	"learnquest_backend/internal/model"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{150, 2},
		{200, 3},
		{349, 3},
		{350, 4},
		{500, 5},
		{699, 5},
		{700, 6},
		{10000, 6},
	}
	for _, c := range cases {
		if got := LevelForXP(c.xp); got != c.want {
			t.Errorf("LevelForXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestLevelForXPMonotonic(t *testing.T) {
	prev := LevelForXP(0)
	for xp := 1; xp <= 1000; xp++ {
		cur := LevelForXP(xp)
		if cur < prev {
			t.Fatalf("level dropped from %d to %d at xp=%d", prev, cur, xp)
		}
		prev = cur
	}
}

func TestNextLevelXP(t *testing.T) {
	cases := []struct {
		xp   int
		want int
	}{
		{0, 100},
		{99, 100},
		{100, 200},
		{350, 500},
		{700, 0},
		{9999, 0},
	}
	for _, c := range cases {
		if got := NextLevelXP(c.xp); got != c.want {
			t.Errorf("NextLevelXP(%d) = %d, want %d", c.xp, got, c.want)
		}
	}
}

func TestPerfectScore(t *testing.T) {
	if !PerfectScore(5, 5) {
		t.Error("5/5 should be a perfect score")
	}
	if PerfectScore(4, 5) {
		t.Error("4/5 should not be a perfect score")
	}
	if PerfectScore(0, 0) {
		t.Error("empty quiz should not grant a perfect score")
	}
}

func TestQuickLearner(t *testing.T) {
	if !QuickLearner(5, 50) {
		t.Error("avg 10/question should earn Quick Learner")
	}
	if QuickLearner(5, 51) {
		t.Error("avg above 10/question should not earn Quick Learner")
	}
	if QuickLearner(5, 0) {
		t.Error("zero time is not a valid quick attempt")
	}
	if QuickLearner(0, 10) {
		t.Error("empty quiz should not earn Quick Learner")
	}
}

func TestModuleMaster(t *testing.T) {
	attempt := func(moduleID uint, score, total int) model.QuizAttempt {
		return model.QuizAttempt{ModuleID: moduleID, Score: score, Total: total}
	}

	if ModuleMaster(nil) {
		t.Error("no history should not earn Module Master")
	}

	// best ratio per module counts, not the latest
	history := []model.QuizAttempt{
		attempt(1, 2, 5),
		attempt(1, 5, 5),
		attempt(2, 4, 5),
	}
	if !ModuleMaster(history) {
		t.Error("best ratios 1.0 and 0.8 should earn Module Master")
	}

	history = append(history, attempt(3, 3, 5))
	if ModuleMaster(history) {
		t.Error("module with best ratio 0.6 should block Module Master")
	}
}
