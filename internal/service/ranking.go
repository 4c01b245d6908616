package service

import (
	"sort"

	"learnquest_backend/internal/model"
)

// orderEntries sorts leaderboard entries into their final ranking order.
//
// Primary key: score descending. Under the "time" policy, ties fall to time
// taken ascending; entries that never submitted have no tracked time and sort
// after submitted ones at equal score. Remaining ties resolve by submission
// timestamp ascending and finally by learner id ascending, so the order is a
// strict total order: no two entries ever compare equal.
func orderEntries(entries []model.LeaderboardEntry, tieBreak string) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]

		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.IsSubmitted != b.IsSubmitted {
			return a.IsSubmitted
		}
		if tieBreak != model.TieBreakScore && a.IsSubmitted && b.IsSubmitted && a.TimeTaken != b.TimeTaken {
			return a.TimeTaken < b.TimeTaken
		}
		if a.SubmittedAt != nil && b.SubmittedAt != nil && !a.SubmittedAt.Equal(*b.SubmittedAt) {
			return a.SubmittedAt.Before(*b.SubmittedAt)
		}
		return a.UserID < b.UserID
	})
}

// assignDenseRanks writes ranks 1..N in order, no gaps, no shared ranks.
func assignDenseRanks(entries []model.LeaderboardEntry) {
	for i := range entries {
		rank := i + 1
		entries[i].Rank = &rank
	}
}
