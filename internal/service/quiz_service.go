package service

import (
	"errors"
	"time"

	"learnquest_backend/internal/model"
	"learnquest_backend/internal/util"
	"learnquest_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// QuizService is the quiz grading engine: it scores submissions against the
// module question bank and advances the learner's XP/level/badge state.
type QuizService struct {
	Modules   ModuleStore
	Questions QuestionStore
	Attempts  AttemptStore
	Users     UserStore

	// shared with ContestService so every learner mutation, including the
	// winner badge grant, goes through the same learner key
	locks *KeyMutex
}

func NewQuizService(modules ModuleStore, questions QuestionStore, attempts AttemptStore, users UserStore, locks *KeyMutex) *QuizService {
	return &QuizService{
		Modules:   modules,
		Questions: questions,
		Attempts:  attempts,
		Users:     users,
		locks:     locks,
	}
}

type QuizAnswer struct {
	QuestionID uint `json:"questionId"`
	Selected   int  `json:"selected"`
}

type QuizSubmitRequest struct {
	Answers   []QuizAnswer `json:"answers"`
	TimeTaken int          `json:"timeTaken" binding:"min=0"`
}

type QuizSubmitResult struct {
	Score         int      `json:"score"`
	Total         int      `json:"total"`
	XPEarned      int      `json:"xpEarned"`
	NewLevel      int      `json:"newLevel"`
	PreviousLevel int      `json:"previousLevel"`
	BadgesEarned  []string `json:"badgesEarned"`
}

// QuestionView is a question as shown before submission: the correct option
// index is never included.
type QuestionView struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// GetModuleQuestions lists the module's questions with answers withheld.
func (s *QuizService) GetModuleQuestions(moduleID uint) ([]QuestionView, error) {
	if _, err := s.Modules.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	questions, err := s.Questions.FindByModuleID(moduleID)
	if err != nil {
		return nil, err
	}

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = QuestionView{
			ID:       q.ID,
			Question: q.Prompt,
			Options:  q.Options,
		}
	}
	return views, nil
}

// SubmitQuiz grades one submission. The whole read-modify-write sequence is
// serialized per learner so two concurrent submissions cannot drop an XP or
// badge update.
//
// Grading rules: total is the module's question count, not the number of
// submitted answers; a submitted answer only scores when its question belongs
// to the module and the selected index matches the stored answer.
func (s *QuizService) SubmitQuiz(userID, moduleID uint, req QuizSubmitRequest) (*QuizSubmitResult, error) {
	if _, err := s.Modules.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	questions, err := s.Questions.FindByModuleID(moduleID)
	if err != nil {
		return nil, err
	}
	questionMap := make(map[uint]model.Question, len(questions))
	for _, q := range questions {
		questionMap[q.ID] = q
	}

	score := 0
	total := len(questions)
	for _, a := range req.Answers {
		if q, ok := questionMap[a.QuestionID]; ok && a.Selected == q.CorrectAnswer {
			score++
		}
	}
	xpEarned := score * XPPerCorrectAnswer

	key := learnerKey(userID)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	previousLevel := user.Level
	if previousLevel < 1 {
		previousLevel = 1
	}

	attempt := model.QuizAttempt{
		UserID:      userID,
		ModuleID:    moduleID,
		Score:       score,
		Total:       total,
		XPEarned:    xpEarned,
		TimeTaken:   req.TimeTaken,
		AttemptedAt: time.Now(),
	}
	if err := s.Attempts.Create(&attempt); err != nil {
		return nil, err
	}

	// badge predicates run over the whole history including the attempt just
	// recorded
	history, err := s.Attempts.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	user.XP += xpEarned
	user.Level = LevelForXP(user.XP)

	var badgesEarned []string
	for _, badge := range earnedBadges(attempt, history) {
		if user.AddBadge(badge) {
			badgesEarned = append(badgesEarned, badge)
		}
	}

	passed := attempt.Ratio() >= ModuleCompletionRatio
	if passed {
		user.AddCompletedModule(util.ModuleKey(moduleID))
	}

	if err := s.Users.Update(user); err != nil {
		return nil, err
	}

	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	monitoring.QuizSubmissions.WithLabelValues(outcome).Inc()

	return &QuizSubmitResult{
		Score:         score,
		Total:         total,
		XPEarned:      xpEarned,
		NewLevel:      user.Level,
		PreviousLevel: previousLevel,
		BadgesEarned:  badgesEarned,
	}, nil
}
