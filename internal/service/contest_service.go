package service

import (
	"context"
	"errors"
	"time"

	"learnquest_backend/internal/model"
	"learnquest_backend/internal/util"
	"learnquest_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// ContestService is the contest submission and ranking engine. Submissions
// are graded server-side against the contest's question pool; every
// submission triggers a full rank recompute for the contest, serialized per
// contest id.
//
// Resubmission is last-write-wins: a second submission overwrites the entry's
// score, answers and timestamp and re-ranks the contest.
type ContestService struct {
	Contests  ContestStore
	Questions QuestionStore
	Entries   LeaderboardStore
	Users     UserStore
	Cache     *LeaderboardCache

	// shared with QuizService; see KeyMutex for the lock order
	locks *KeyMutex
}

func NewContestService(contests ContestStore, questions QuestionStore, entries LeaderboardStore, users UserStore, cache *LeaderboardCache, locks *KeyMutex) *ContestService {
	return &ContestService{
		Contests:  contests,
		Questions: questions,
		Entries:   entries,
		Users:     users,
		Cache:     cache,
		locks:     locks,
	}
}

type ContestAnswer struct {
	QuestionID     uint `json:"questionId"`
	SelectedOption int  `json:"selectedOption"`
}

type ContestSubmitRequest struct {
	Answers   []ContestAnswer `json:"answers"`
	TimeTaken int             `json:"timeTaken" binding:"min=0"`
}

type ContestSubmitResult struct {
	Status string  `json:"status"`
	Score  float64 `json:"score"`
}

type LeaderboardRow struct {
	UserID    uint    `json:"studentId"`
	Score     float64 `json:"score"`
	Rank      *int    `json:"rank"`
	TimeTaken int     `json:"timeTaken,omitempty"`
	Submitted bool    `json:"isSubmitted"`
}

type ContestQuestionsView struct {
	Contest   ContestMeta    `json:"contest"`
	Questions []QuestionView `json:"questions"`
}

type ContestMeta struct {
	ID               uint    `json:"id"`
	Title            string  `json:"title"`
	DurationMinutes  int     `json:"durationMinutes"`
	MarksPerQuestion int     `json:"marksPerQuestion"`
	NegativeMarking  float64 `json:"negativeMarking"`
	TieBreak         string  `json:"tieBreak"`
}

type AnswerReview struct {
	QuestionID     uint `json:"questionId"`
	SelectedOption int  `json:"selectedOption"`
	IsCorrect      bool `json:"isCorrect"`
	CorrectOption  *int `json:"correctOption,omitempty"`
}

type ContestResultView struct {
	Status  string         `json:"status"` // not_attempted | joined | submitted
	Score   float64        `json:"score"`
	Rank    *int           `json:"rank,omitempty"`
	Answers []AnswerReview `json:"answers,omitempty"`
}

func (s *ContestService) ListContests() ([]model.Contest, error) {
	return s.Contests.List()
}

func (s *ContestService) findContest(contestID uint) (*model.Contest, error) {
	contest, err := s.Contests.FindByID(contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContestNotFound
		}
		return nil, err
	}
	return contest, nil
}

// questionPool assembles the contest's gradable question set: the question
// banks of its modules plus any custom questions attached directly.
func (s *ContestService) questionPool(contest *model.Contest) ([]model.Question, error) {
	pool, err := s.Questions.FindByModuleIDs(contest.ModuleIDs)
	if err != nil {
		return nil, err
	}
	custom, err := s.Questions.FindByContestID(contest.ID)
	if err != nil {
		return nil, err
	}
	return append(pool, custom...), nil
}

// GetContestQuestions returns the pool with correct answers withheld, plus
// the grading parameters the client needs to render the contest.
func (s *ContestService) GetContestQuestions(contestID uint) (*ContestQuestionsView, error) {
	contest, err := s.findContest(contestID)
	if err != nil {
		return nil, err
	}
	pool, err := s.questionPool(contest)
	if err != nil {
		return nil, err
	}

	views := make([]QuestionView, len(pool))
	for i, q := range pool {
		views[i] = QuestionView{ID: q.ID, Question: q.Prompt, Options: q.Options}
	}
	return &ContestQuestionsView{
		Contest: ContestMeta{
			ID:               contest.ID,
			Title:            contest.Title,
			DurationMinutes:  contest.DurationMinutes,
			MarksPerQuestion: contest.MarksPerQuestion,
			NegativeMarking:  contest.NegativeMarking,
			TieBreak:         contest.TieBreak,
		},
		Questions: views,
	}, nil
}

// Join creates the learner's leaderboard entry in the joined state. Joining
// twice is an idempotent success: the existing entry is returned untouched.
func (s *ContestService) Join(contestID, userID uint) (*model.LeaderboardEntry, error) {
	if _, err := s.findContest(contestID); err != nil {
		return nil, err
	}

	key := contestKey(contestID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	entry, err := s.Entries.CreateIfAbsent(&model.LeaderboardEntry{
		ContestID: contestID,
		UserID:    userID,
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Submit grades the learner's answers against the pool, applies negative
// marking, floors the score at zero, persists the entry as submitted and
// recomputes all ranks for the contest. The grade-persist-rerank sequence
// runs under the contest lock.
func (s *ContestService) Submit(ctx context.Context, contestID, userID uint, req ContestSubmitRequest) (*ContestSubmitResult, error) {
	contest, err := s.findContest(contestID)
	if err != nil {
		return nil, err
	}

	pool, err := s.questionPool(contest)
	if err != nil {
		return nil, err
	}
	poolMap := make(map[uint]model.Question, len(pool))
	for _, q := range pool {
		poolMap[q.ID] = q
	}

	score := 0.0
	records := make([]model.AnswerRecord, 0, len(req.Answers))
	for _, a := range req.Answers {
		q, ok := poolMap[a.QuestionID]
		if !ok {
			continue
		}
		correct := a.SelectedOption == q.CorrectAnswer
		if correct {
			score += float64(contest.MarksPerQuestion)
		} else if a.SelectedOption != model.UnansweredOption {
			// answered but wrong: negative marking applies
			score -= contest.NegativeMarking
		}
		records = append(records, model.AnswerRecord{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      correct,
		})
	}
	if score < 0 {
		score = 0
	}

	key := contestKey(contestID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	entry, err := s.Entries.CreateIfAbsent(&model.LeaderboardEntry{
		ContestID: contestID,
		UserID:    userID,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry.Score = score
	entry.Answers = records
	entry.TimeTaken = req.TimeTaken
	entry.IsSubmitted = true
	entry.SubmittedAt = &now
	if err := s.Entries.Save(entry); err != nil {
		return nil, err
	}

	if err := s.recomputeRanksLocked(contest); err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, contestID)
	monitoring.ContestSubmissions.Inc()

	return &ContestSubmitResult{Status: "submitted", Score: score}, nil
}

// RecomputeRanks re-ranks the whole contest under its lock. Exposed for
// administrative repair; submissions trigger it automatically.
func (s *ContestService) RecomputeRanks(contestID uint) error {
	contest, err := s.findContest(contestID)
	if err != nil {
		return err
	}

	key := contestKey(contestID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	return s.recomputeRanksLocked(contest)
}

// recomputeRanksLocked loads every entry, imposes the strict ranking order,
// writes dense ranks 1..N and grants the Contest Winner badge to the learner
// now at rank 1, provided that learner has submitted. Caller must hold the
// contest lock.
func (s *ContestService) recomputeRanksLocked(contest *model.Contest) error {
	start := time.Now()

	entries, err := s.Entries.FindByContestID(contest.ID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	orderEntries(entries, contest.TieBreak)
	assignDenseRanks(entries)

	if err := s.Entries.UpdateRanks(entries); err != nil {
		return err
	}

	// badge sets are monotonic: a dethroned winner keeps the badge. The grant
	// only applies once the leader has actually submitted, and it takes the
	// learner key so it cannot interleave with a quiz progression write.
	if winner := entries[0]; winner.IsSubmitted {
		lk := learnerKey(winner.UserID)
		s.locks.Lock(lk)
		err := s.Users.AddBadge(winner.UserID, model.BadgeContestWinner)
		s.locks.Unlock(lk)
		if err != nil {
			return err
		}
	}

	monitoring.RankRecomputeDuration.Observe(time.Since(start).Seconds())
	return nil
}

// Leaderboard returns rows in ranking order, served from the Redis cache
// when warm.
func (s *ContestService) Leaderboard(ctx context.Context, contestID uint) ([]LeaderboardRow, error) {
	contest, err := s.findContest(contestID)
	if err != nil {
		return nil, err
	}

	if rows, ok := s.Cache.Get(ctx, contestID); ok {
		return rows, nil
	}

	entries, err := s.Entries.FindByContestID(contestID)
	if err != nil {
		return nil, err
	}
	orderEntries(entries, contest.TieBreak)

	rows := make([]LeaderboardRow, len(entries))
	for i, e := range entries {
		rows[i] = LeaderboardRow{
			UserID:    e.UserID,
			Score:     e.Score,
			Rank:      e.Rank,
			TimeTaken: e.TimeTaken,
			Submitted: e.IsSubmitted,
		}
	}

	s.Cache.Set(ctx, contestID, rows)
	return rows, nil
}

// Result reports the learner's standing. Correct options are revealed only
// once the learner has submitted.
func (s *ContestService) Result(contestID, userID uint) (*ContestResultView, error) {
	if _, err := s.findContest(contestID); err != nil {
		return nil, err
	}

	entry, err := s.Entries.FindEntry(contestID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &ContestResultView{Status: "not_attempted"}, nil
		}
		return nil, err
	}

	if !entry.IsSubmitted {
		return &ContestResultView{
			Status: "joined",
			Score:  entry.Score,
			Rank:   entry.Rank,
		}, nil
	}

	reviews := make([]AnswerReview, len(entry.Answers))
	for i, a := range entry.Answers {
		reviews[i] = AnswerReview{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
		}
		if q, err := s.Questions.FindByID(a.QuestionID); err == nil {
			correct := q.CorrectAnswer
			reviews[i].CorrectOption = &correct
		}
	}

	return &ContestResultView{
		Status:  "submitted",
		Score:   entry.Score,
		Rank:    entry.Rank,
		Answers: reviews,
	}, nil
}
