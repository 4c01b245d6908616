package service

import (
	"sort"
	"time"

	"learnquest_backend/internal/model"

	"gorm.io/gorm"
)

// In-memory store fakes. They mirror the repository contracts closely enough
// for service-level tests: copies in, copies out, gorm.ErrRecordNotFound on
// misses.

type fakeUserStore struct {
	users  map[uint]model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[uint]model.User), nextID: 1}
}

func (s *fakeUserStore) Create(user *model.User) error {
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) FindByID(id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := u
	return &copied, nil
}

func (s *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) Update(user *model.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) UpdateLastLogin(userID uint, at time.Time) error {
	u, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLogin = at
	s.users[userID] = u
	return nil
}

func (s *fakeUserStore) AddBadge(userID uint, badge string) error {
	u, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.AddBadge(badge)
	s.users[userID] = u
	return nil
}

func (s *fakeUserStore) Count() (int64, error) {
	return int64(len(s.users)), nil
}

func (s *fakeUserStore) CountByRole(role model.UserRole) (int64, error) {
	var n int64
	for _, u := range s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeCourseStore struct {
	courses map[uint]model.Course
	nextID  uint
}

func newFakeCourseStore() *fakeCourseStore {
	return &fakeCourseStore{courses: make(map[uint]model.Course), nextID: 1}
}

func (s *fakeCourseStore) List() ([]model.Course, error) {
	out := make([]model.Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeCourseStore) FindByID(id uint) (*model.Course, error) {
	c, ok := s.courses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := c
	return &copied, nil
}

func (s *fakeCourseStore) Create(course *model.Course) error {
	course.ID = s.nextID
	s.nextID++
	s.courses[course.ID] = *course
	return nil
}

type fakeModuleStore struct {
	modules map[uint]model.LearningModule
	nextID  uint
}

func newFakeModuleStore() *fakeModuleStore {
	return &fakeModuleStore{modules: make(map[uint]model.LearningModule), nextID: 1}
}

func (s *fakeModuleStore) List() ([]model.LearningModule, error) {
	out := make([]model.LearningModule, 0, len(s.modules))
	for _, m := range s.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeModuleStore) FindByID(id uint) (*model.LearningModule, error) {
	m, ok := s.modules[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := m
	return &copied, nil
}

func (s *fakeModuleStore) Create(module *model.LearningModule) error {
	module.ID = s.nextID
	s.nextID++
	s.modules[module.ID] = *module
	return nil
}

func (s *fakeModuleStore) Update(module *model.LearningModule) error {
	if _, ok := s.modules[module.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.modules[module.ID] = *module
	return nil
}

func (s *fakeModuleStore) Delete(id uint) error {
	delete(s.modules, id)
	return nil
}

func (s *fakeModuleStore) NextModuleNo(courseID uint) (int, error) {
	max := 0
	for _, m := range s.modules {
		if m.CourseID == courseID && m.ModuleNo > max {
			max = m.ModuleNo
		}
	}
	return max + 1, nil
}

func (s *fakeModuleStore) Count() (int64, error) {
	return int64(len(s.modules)), nil
}

type fakeQuestionStore struct {
	questions map[uint]model.Question
	nextID    uint
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[uint]model.Question), nextID: 1}
}

func (s *fakeQuestionStore) FindByID(id uint) (*model.Question, error) {
	q, ok := s.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := q
	return &copied, nil
}

func (s *fakeQuestionStore) FindByModuleID(moduleID uint) ([]model.Question, error) {
	return s.FindByModuleIDs([]uint{moduleID})
}

func (s *fakeQuestionStore) FindByModuleIDs(moduleIDs []uint) ([]model.Question, error) {
	want := make(map[uint]struct{}, len(moduleIDs))
	for _, id := range moduleIDs {
		want[id] = struct{}{}
	}
	var out []model.Question
	for _, q := range s.questions {
		if q.ModuleID == nil {
			continue
		}
		if _, ok := want[*q.ModuleID]; ok {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeQuestionStore) FindByContestID(contestID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range s.questions {
		if q.ContestID != nil && *q.ContestID == contestID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeQuestionStore) Create(question *model.Question) error {
	question.ID = s.nextID
	s.nextID++
	s.questions[question.ID] = *question
	return nil
}

func (s *fakeQuestionStore) CreateBatch(questions []model.Question) error {
	for i := range questions {
		if err := s.Create(&questions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *fakeQuestionStore) Update(question *model.Question) error {
	if _, ok := s.questions[question.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.questions[question.ID] = *question
	return nil
}

func (s *fakeQuestionStore) Delete(id uint) error {
	delete(s.questions, id)
	return nil
}

func (s *fakeQuestionStore) Count() (int64, error) {
	return int64(len(s.questions)), nil
}

type fakeAttemptStore struct {
	attempts []model.QuizAttempt
	nextID   uint
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{nextID: 1}
}

func (s *fakeAttemptStore) Create(attempt *model.QuizAttempt) error {
	attempt.ID = s.nextID
	s.nextID++
	attempt.EnsurePublicID()
	s.attempts = append(s.attempts, *attempt)
	return nil
}

func (s *fakeAttemptStore) FindByUserID(userID uint) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range s.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeAttemptStore) Count() (int64, error) {
	return int64(len(s.attempts)), nil
}

type fakeContestStore struct {
	contests map[uint]model.Contest
	nextID   uint
}

func newFakeContestStore() *fakeContestStore {
	return &fakeContestStore{contests: make(map[uint]model.Contest), nextID: 1}
}

func (s *fakeContestStore) List() ([]model.Contest, error) {
	out := make([]model.Contest, 0, len(s.contests))
	for _, c := range s.contests {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeContestStore) FindByID(id uint) (*model.Contest, error) {
	c, ok := s.contests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := c
	return &copied, nil
}

func (s *fakeContestStore) Create(contest *model.Contest) error {
	contest.ID = s.nextID
	s.nextID++
	s.contests[contest.ID] = *contest
	return nil
}

func (s *fakeContestStore) Update(contest *model.Contest) error {
	if _, ok := s.contests[contest.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.contests[contest.ID] = *contest
	return nil
}

func (s *fakeContestStore) Delete(id uint) error {
	delete(s.contests, id)
	return nil
}

func (s *fakeContestStore) Count() (int64, error) {
	return int64(len(s.contests)), nil
}

type fakeLeaderboardStore struct {
	entries map[uint]model.LeaderboardEntry
	nextID  uint
}

func newFakeLeaderboardStore() *fakeLeaderboardStore {
	return &fakeLeaderboardStore{entries: make(map[uint]model.LeaderboardEntry), nextID: 1}
}

func (s *fakeLeaderboardStore) FindEntry(contestID, userID uint) (*model.LeaderboardEntry, error) {
	for _, e := range s.entries {
		if e.ContestID == contestID && e.UserID == userID {
			copied := e
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeLeaderboardStore) CreateIfAbsent(entry *model.LeaderboardEntry) (*model.LeaderboardEntry, error) {
	if existing, err := s.FindEntry(entry.ContestID, entry.UserID); err == nil {
		return existing, nil
	}
	entry.ID = s.nextID
	s.nextID++
	s.entries[entry.ID] = *entry
	copied := *entry
	return &copied, nil
}

func (s *fakeLeaderboardStore) Save(entry *model.LeaderboardEntry) error {
	if _, ok := s.entries[entry.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.entries[entry.ID] = *entry
	return nil
}

func (s *fakeLeaderboardStore) FindByContestID(contestID uint) ([]model.LeaderboardEntry, error) {
	var out []model.LeaderboardEntry
	for _, e := range s.entries {
		if e.ContestID == contestID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeLeaderboardStore) UpdateRanks(entries []model.LeaderboardEntry) error {
	for _, e := range entries {
		stored, ok := s.entries[e.ID]
		if !ok {
			return gorm.ErrRecordNotFound
		}
		stored.Rank = e.Rank
		s.entries[e.ID] = stored
	}
	return nil
}
