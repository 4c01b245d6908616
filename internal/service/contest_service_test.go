package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"learnquest_backend/internal/model"
	"learnquest_backend/internal/util"
)

type contestFixture struct {
	users     *fakeUserStore
	questions *fakeQuestionStore
	entries   *fakeLeaderboardStore
	svc       *ContestService
	contestID uint
}

// newContestFixture seeds one contest over a module with five questions
// (correct option 0), 2 marks per question and 0.5 negative marking.
func newContestFixture(t *testing.T, userIDs ...uint) *contestFixture {
	t.Helper()

	users := newFakeUserStore()
	contests := newFakeContestStore()
	questions := newFakeQuestionStore()
	entries := newFakeLeaderboardStore()

	for range userIDs {
		if err := users.Create(&model.User{Name: "u", Level: 1}); err != nil {
			t.Fatal(err)
		}
	}

	moduleID := uint(1)
	for i := 0; i < 5; i++ {
		q := &model.Question{
			ModuleID:      &moduleID,
			Prompt:        "q",
			Options:       []string{"right", "wrong", "wrong"},
			CorrectAnswer: 0,
		}
		if err := questions.Create(q); err != nil {
			t.Fatal(err)
		}
	}

	contest := &model.Contest{
		Title:            "Weekly",
		ModuleIDs:        []uint{moduleID},
		DurationMinutes:  30,
		MarksPerQuestion: 2,
		NegativeMarking:  0.5,
		TieBreak:         model.TieBreakTime,
	}
	if err := contests.Create(contest); err != nil {
		t.Fatal(err)
	}

	return &contestFixture{
		users:     users,
		questions: questions,
		entries:   entries,
		svc:       NewContestService(contests, questions, entries, users, nil, NewKeyMutex()),
		contestID: contest.ID,
	}
}

func contestAnswers(selected ...int) []ContestAnswer {
	out := make([]ContestAnswer, len(selected))
	for i, s := range selected {
		out[i] = ContestAnswer{QuestionID: uint(i + 1), SelectedOption: s}
	}
	return out
}

func TestJoinIsIdempotent(t *testing.T) {
	f := newContestFixture(t, 1)

	first, err := f.svc.Join(f.contestID, 1)
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.svc.Join(f.contestID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("second join created a new entry: %d vs %d", first.ID, second.ID)
	}

	all, _ := f.entries.FindByContestID(f.contestID)
	if len(all) != 1 {
		t.Fatalf("contest has %d entries, want 1", len(all))
	}
}

func TestJoinUnknownContest(t *testing.T) {
	f := newContestFixture(t, 1)

	_, err := f.svc.Join(999, 1)
	if !errors.Is(err, util.ErrContestNotFound) {
		t.Errorf("err = %v, want ErrContestNotFound", err)
	}
}

func TestSubmitScoring(t *testing.T) {
	f := newContestFixture(t, 1)

	// 3 correct (+6), 1 wrong (-0.5), 1 skipped (no penalty)
	res, err := f.svc.Submit(context.Background(), f.contestID, 1, ContestSubmitRequest{
		Answers:   contestAnswers(0, 0, 0, 1, model.UnansweredOption),
		TimeTaken: 120,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 5.5 {
		t.Errorf("score = %v, want 5.5", res.Score)
	}

	entry, err := f.entries.FindEntry(f.contestID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !entry.IsSubmitted || entry.SubmittedAt == nil {
		t.Error("entry must be in the submitted state")
	}
	if len(entry.Answers) != 5 {
		t.Errorf("recorded %d answers, want 5", len(entry.Answers))
	}
}

func TestSubmitScoreFloorsAtZero(t *testing.T) {
	f := newContestFixture(t, 1)

	res, err := f.svc.Submit(context.Background(), f.contestID, 1, ContestSubmitRequest{
		Answers:   contestAnswers(1, 1, 1, 1, 1),
		TimeTaken: 60,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 0 {
		t.Errorf("score = %v, want floor at 0", res.Score)
	}
}

func TestSubmitIgnoresForeignQuestions(t *testing.T) {
	f := newContestFixture(t, 1)

	res, err := f.svc.Submit(context.Background(), f.contestID, 1, ContestSubmitRequest{
		Answers: []ContestAnswer{
			{QuestionID: 999, SelectedOption: 0},
			{QuestionID: 1, SelectedOption: 0},
		},
		TimeTaken: 60,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 2 {
		t.Errorf("score = %v, want 2 (unknown question must not count)", res.Score)
	}

	entry, _ := f.entries.FindEntry(f.contestID, 1)
	if len(entry.Answers) != 1 {
		t.Errorf("recorded %d answers, want 1 (pool matches only)", len(entry.Answers))
	}
}

func TestRankDeterminism(t *testing.T) {
	f := newContestFixture(t, 1, 2, 3)
	ctx := context.Background()

	submit := func(userID uint, answers []ContestAnswer, timeTaken int) {
		t.Helper()
		if _, err := f.svc.Submit(ctx, f.contestID, userID, ContestSubmitRequest{
			Answers: answers, TimeTaken: timeTaken,
		}); err != nil {
			t.Fatal(err)
		}
	}

	// A: 10 in 50, B: 10 in 30, C: skipped one, 8 in 10
	submit(1, contestAnswers(0, 0, 0, 0, 0), 50)
	submit(2, contestAnswers(0, 0, 0, 0, 0), 30)
	submit(3, contestAnswers(0, 0, 0, 0, model.UnansweredOption), 10)

	wantRanks := map[uint]int{2: 1, 1: 2, 3: 3}
	for userID, want := range wantRanks {
		entry, err := f.entries.FindEntry(f.contestID, userID)
		if err != nil {
			t.Fatal(err)
		}
		if entry.Rank == nil || *entry.Rank != want {
			t.Errorf("user %d rank = %v, want %d", userID, entry.Rank, want)
		}
	}
}

func TestWinnerBadgeIsMonotonic(t *testing.T) {
	f := newContestFixture(t, 1, 2)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, f.contestID, 1, ContestSubmitRequest{
		Answers: contestAnswers(0, 0, 0, 1, 1), TimeTaken: 40,
	}); err != nil {
		t.Fatal(err)
	}
	u1, _ := f.users.FindByID(1)
	if !u1.HasBadge(model.BadgeContestWinner) {
		t.Fatal("sole submitter should hold Contest Winner")
	}

	// user 2 overtakes; user 1 keeps the badge, user 2 gains it
	if _, err := f.svc.Submit(ctx, f.contestID, 2, ContestSubmitRequest{
		Answers: contestAnswers(0, 0, 0, 0, 0), TimeTaken: 40,
	}); err != nil {
		t.Fatal(err)
	}

	u1, _ = f.users.FindByID(1)
	u2, _ := f.users.FindByID(2)
	if !u1.HasBadge(model.BadgeContestWinner) {
		t.Error("dethroned winner must keep the badge")
	}
	if !u2.HasBadge(model.BadgeContestWinner) {
		t.Error("new leader must gain the badge")
	}
}

func TestRecomputeRanksWithoutSubmissionsGrantsNoBadge(t *testing.T) {
	f := newContestFixture(t, 1, 2)

	for _, userID := range []uint{1, 2} {
		if _, err := f.svc.Join(f.contestID, userID); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.svc.RecomputeRanks(f.contestID); err != nil {
		t.Fatal(err)
	}

	for _, userID := range []uint{1, 2} {
		u, _ := f.users.FindByID(userID)
		if u.HasBadge(model.BadgeContestWinner) {
			t.Errorf("user %d holds Contest Winner without ever submitting", userID)
		}
	}
}

func TestConcurrentSubmissionsKeepRanksConsistent(t *testing.T) {
	const n = 6
	userIDs := []uint{1, 2, 3, 4, 5, 6}
	f := newContestFixture(t, userIDs...)
	ctx := context.Background()

	// user k answers k-1 questions wrong: six distinct descending scores
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		userID := uint(i + 1)
		wrong := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			selected := make([]int, 5)
			for j := 0; j < wrong && j < 5; j++ {
				selected[j] = 1
			}
			_, err := f.svc.Submit(ctx, f.contestID, userID, ContestSubmitRequest{
				Answers: contestAnswers(selected...), TimeTaken: 60,
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}

	entries, err := f.entries.FindByContestID(f.contestID)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != n {
		t.Fatalf("contest has %d entries, want %d", len(entries), n)
	}

	byRank := make(map[int]uint, n)
	for _, e := range entries {
		if e.Rank == nil {
			t.Fatalf("user %d has no rank after the final recompute", e.UserID)
		}
		if prev, dup := byRank[*e.Rank]; dup {
			t.Fatalf("rank %d assigned to both user %d and user %d", *e.Rank, prev, e.UserID)
		}
		byRank[*e.Rank] = e.UserID
	}
	// distinct scores descending by user id, so rank r belongs to user r
	for r := 1; r <= n; r++ {
		if byRank[r] != uint(r) {
			t.Errorf("rank %d = user %d, want user %d", r, byRank[r], r)
		}
	}
}

func TestResubmissionIsLastWriteWins(t *testing.T) {
	f := newContestFixture(t, 1)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, f.contestID, 1, ContestSubmitRequest{
		Answers: contestAnswers(0, 0, 0, 0, 0), TimeTaken: 30,
	}); err != nil {
		t.Fatal(err)
	}
	res, err := f.svc.Submit(ctx, f.contestID, 1, ContestSubmitRequest{
		Answers: contestAnswers(0, 1, 1, 1, 1), TimeTaken: 90,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Score != 0 {
		t.Errorf("score = %v, want 0 (2 - 4*0.5)", res.Score)
	}

	entry, _ := f.entries.FindEntry(f.contestID, 1)
	if entry.Score != 0 || entry.TimeTaken != 90 {
		t.Errorf("entry = (%v, %d), the later submission must win", entry.Score, entry.TimeTaken)
	}

	all, _ := f.entries.FindByContestID(f.contestID)
	if len(all) != 1 {
		t.Fatalf("resubmission created a second entry")
	}
}

func TestResultVisibility(t *testing.T) {
	f := newContestFixture(t, 1, 2)
	ctx := context.Background()

	res, err := f.svc.Result(f.contestID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != "not_attempted" {
		t.Errorf("status = %q, want not_attempted", res.Status)
	}

	if _, err := f.svc.Join(f.contestID, 1); err != nil {
		t.Fatal(err)
	}
	res, err = f.svc.Result(f.contestID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != "joined" || len(res.Answers) != 0 {
		t.Errorf("joined result = %+v, want no answer reviews", res)
	}

	if _, err := f.svc.Submit(ctx, f.contestID, 1, ContestSubmitRequest{
		Answers: contestAnswers(0, 1, 0, 0, 0), TimeTaken: 60,
	}); err != nil {
		t.Fatal(err)
	}
	res, err = f.svc.Result(f.contestID, 1)
	if err != nil {
		t.Fatal(err)
	}
	if res.Status != "submitted" {
		t.Fatalf("status = %q, want submitted", res.Status)
	}
	if len(res.Answers) != 5 {
		t.Fatalf("got %d answer reviews, want 5", len(res.Answers))
	}
	for _, a := range res.Answers {
		if a.CorrectOption == nil {
			t.Error("correct options must be revealed after submission")
		}
	}
}

func TestLeaderboardOrdering(t *testing.T) {
	f := newContestFixture(t, 1, 2)
	ctx := context.Background()

	if _, err := f.svc.Submit(ctx, f.contestID, 1, ContestSubmitRequest{
		Answers: contestAnswers(0, 0, 0, 0, 0), TimeTaken: 80,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Submit(ctx, f.contestID, 2, ContestSubmitRequest{
		Answers: contestAnswers(0, 0, 0, 0, 0), TimeTaken: 20,
	}); err != nil {
		t.Fatal(err)
	}

	rows, err := f.svc.Leaderboard(ctx, f.contestID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].UserID != 2 || rows[1].UserID != 1 {
		t.Errorf("order = [%d %d], want [2 1]", rows[0].UserID, rows[1].UserID)
	}
	if rows[0].Rank == nil || *rows[0].Rank != 1 {
		t.Errorf("top row rank = %v, want 1", rows[0].Rank)
	}
}
