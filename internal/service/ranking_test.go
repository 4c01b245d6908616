package service

import (
	"testing"
	"time"

	"learnquest_backend/internal/model"
)

func entry(userID uint, score float64, timeTaken int, submitted bool) model.LeaderboardEntry {
	e := model.LeaderboardEntry{
		UserID:    userID,
		Score:     score,
		TimeTaken: timeTaken,
	}
	if submitted {
		at := time.Date(2026, 1, 1, 0, 0, int(userID), 0, time.UTC)
		e.IsSubmitted = true
		e.SubmittedAt = &at
	}
	return e
}

func TestOrderEntriesTimePolicy(t *testing.T) {
	entries := []model.LeaderboardEntry{
		entry(1, 10, 50, true), // A
		entry(2, 10, 30, true), // B: same score, faster
		entry(3, 8, 10, true),  // C: lower score, fastest
	}

	orderEntries(entries, model.TieBreakTime)
	assignDenseRanks(entries)

	wantOrder := []uint{2, 1, 3}
	for i, want := range wantOrder {
		if entries[i].UserID != want {
			t.Fatalf("position %d: user %d, want %d", i, entries[i].UserID, want)
		}
		if *entries[i].Rank != i+1 {
			t.Errorf("user %d rank = %d, want %d", entries[i].UserID, *entries[i].Rank, i+1)
		}
	}
}

func TestOrderEntriesScorePolicyIgnoresTime(t *testing.T) {
	// same score, user 1 slower but submitted earlier
	early := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC)
	entries := []model.LeaderboardEntry{
		{UserID: 2, Score: 10, TimeTaken: 30, IsSubmitted: true, SubmittedAt: &late},
		{UserID: 1, Score: 10, TimeTaken: 50, IsSubmitted: true, SubmittedAt: &early},
	}

	orderEntries(entries, model.TieBreakScore)

	if entries[0].UserID != 1 {
		t.Errorf("under score policy the earlier submission wins the tie, got user %d first", entries[0].UserID)
	}
}

func TestOrderEntriesSubmittedBeforeJoined(t *testing.T) {
	entries := []model.LeaderboardEntry{
		entry(1, 0, 0, false),  // joined only
		entry(2, 0, 120, true), // submitted with zero score
	}

	orderEntries(entries, model.TieBreakTime)

	if entries[0].UserID != 2 {
		t.Error("a submitted zero-score entry must rank above a joined-only entry")
	}
}

func TestOrderEntriesStrictTotalOrder(t *testing.T) {
	// identical in every field except user id
	at := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	entries := []model.LeaderboardEntry{
		{UserID: 7, Score: 5, TimeTaken: 40, IsSubmitted: true, SubmittedAt: &at},
		{UserID: 3, Score: 5, TimeTaken: 40, IsSubmitted: true, SubmittedAt: &at},
	}

	orderEntries(entries, model.TieBreakTime)

	if entries[0].UserID != 3 {
		t.Error("final tie must break by user id ascending")
	}
}

func TestAssignDenseRanks(t *testing.T) {
	entries := []model.LeaderboardEntry{
		entry(1, 10, 10, true),
		entry(2, 10, 10, true), // equal on score and time
		entry(3, 2, 5, true),
	}
	orderEntries(entries, model.TieBreakTime)
	assignDenseRanks(entries)

	for i, e := range entries {
		if e.Rank == nil || *e.Rank != i+1 {
			t.Fatalf("ranks must be dense 1..N, got %v at %d", e.Rank, i)
		}
	}
}
