package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"learnquest_backend/internal/config"
	"learnquest_backend/internal/model"
	"learnquest_backend/internal/util"
	"learnquest_backend/pkg/logger"
	"learnquest_backend/pkg/pdf"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AdminService owns the write side of the catalogue: module, question and
// contest CRUD plus the PDF ingestion pipeline. Generated module context
// keeps this many characters of the extracted text.
const moduleContextLen = 2000

type AdminService struct {
	Users     UserStore
	Courses   CourseStore
	Modules   ModuleStore
	Questions QuestionStore
	Attempts  AttemptStore
	Contests  ContestStore

	Extractor pdf.TextExtractor
	Generator *QuestionGenerator
	Storage   *StorageService
	Cfg       *config.Config
}

type AdminStats struct {
	TotalUsers        int64 `json:"totalUsers"`
	AdminCount        int64 `json:"adminCount"`
	StudentCount      int64 `json:"studentCount"`
	TotalModules      int64 `json:"totalModules"`
	TotalQuestions    int64 `json:"totalQuestions"`
	TotalContests     int64 `json:"totalContests"`
	TotalQuizAttempts int64 `json:"totalQuizAttempts"`
}

func (s *AdminService) Stats() (*AdminStats, error) {
	stats := &AdminStats{}
	var err error
	if stats.TotalUsers, err = s.Users.Count(); err != nil {
		return nil, err
	}
	if stats.AdminCount, err = s.Users.CountByRole(model.Admin); err != nil {
		return nil, err
	}
	if stats.StudentCount, err = s.Users.CountByRole(model.Student); err != nil {
		return nil, err
	}
	if stats.TotalModules, err = s.Modules.Count(); err != nil {
		return nil, err
	}
	if stats.TotalQuestions, err = s.Questions.Count(); err != nil {
		return nil, err
	}
	if stats.TotalContests, err = s.Contests.Count(); err != nil {
		return nil, err
	}
	if stats.TotalQuizAttempts, err = s.Attempts.Count(); err != nil {
		return nil, err
	}
	return stats, nil
}

type ModuleCreateRequest struct {
	CourseID   uint     `json:"courseId" binding:"required"`
	ModuleNo   int      `json:"moduleNo" binding:"required"`
	Title      string   `json:"title" binding:"required"`
	Context    string   `json:"context"`
	VideoLinks []string `json:"videoLinks"`
}

type ModuleUpdateRequest struct {
	CourseID   *uint     `json:"courseId"`
	ModuleNo   *int      `json:"moduleNo"`
	Title      *string   `json:"title"`
	Context    *string   `json:"context"`
	VideoLinks *[]string `json:"videoLinks"`
}

func (s *AdminService) CreateModule(req ModuleCreateRequest) (*model.LearningModule, error) {
	if _, err := s.Courses.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	module := &model.LearningModule{
		CourseID:   req.CourseID,
		ModuleNo:   req.ModuleNo,
		Title:      req.Title,
		Context:    req.Context,
		VideoLinks: req.VideoLinks,
	}
	if err := s.Modules.Create(module); err != nil {
		return nil, err
	}
	return module, nil
}

func (s *AdminService) UpdateModule(moduleID uint, req ModuleUpdateRequest) (*model.LearningModule, error) {
	module, err := s.Modules.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	if req.CourseID != nil {
		module.CourseID = *req.CourseID
	}
	if req.ModuleNo != nil {
		module.ModuleNo = *req.ModuleNo
	}
	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.Context != nil {
		module.Context = *req.Context
	}
	if req.VideoLinks != nil {
		module.VideoLinks = *req.VideoLinks
	}

	if err := s.Modules.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule removes the module and its question bank.
func (s *AdminService) DeleteModule(moduleID uint) error {
	if _, err := s.Modules.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	return s.Modules.Delete(moduleID)
}

type QuestionCreateRequest struct {
	ModuleID      uint     `json:"moduleId" binding:"required"`
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer *int     `json:"correctAnswer" binding:"required"`
	Difficulty    string   `json:"difficulty"`
}

type QuestionUpdateRequest struct {
	Question      *string   `json:"question"`
	Options       *[]string `json:"options"`
	CorrectAnswer *int      `json:"correctAnswer"`
	Difficulty    *string   `json:"difficulty"`
}

func (s *AdminService) CreateQuestion(req QuestionCreateRequest) (*model.Question, error) {
	if _, err := s.Modules.FindByID(req.ModuleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	if *req.CorrectAnswer < 0 || *req.CorrectAnswer >= len(req.Options) {
		return nil, util.ErrInvalidInput
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "easy"
	}

	moduleID := req.ModuleID
	question := &model.Question{
		ModuleID:      &moduleID,
		Prompt:        req.Question,
		Options:       req.Options,
		CorrectAnswer: *req.CorrectAnswer,
		Difficulty:    difficulty,
		Source:        model.QuestionSourceManual,
	}
	if err := s.Questions.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// ListModuleQuestions returns the bank with correct answers included, for
// the admin editing surface.
func (s *AdminService) ListModuleQuestions(moduleID uint) ([]model.Question, error) {
	if _, err := s.Modules.FindByID(moduleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return s.Questions.FindByModuleID(moduleID)
}

func (s *AdminService) UpdateQuestion(questionID uint, req QuestionUpdateRequest) (*model.Question, error) {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	if req.Question != nil {
		question.Prompt = *req.Question
	}
	if req.Options != nil {
		question.Options = *req.Options
	}
	if req.CorrectAnswer != nil {
		question.CorrectAnswer = *req.CorrectAnswer
	}
	if req.Difficulty != nil {
		question.Difficulty = *req.Difficulty
	}
	if question.CorrectAnswer < 0 || question.CorrectAnswer >= len(question.Options) {
		return nil, util.ErrInvalidInput
	}

	if err := s.Questions.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *AdminService) DeleteQuestion(questionID uint) error {
	if _, err := s.Questions.FindByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.Questions.Delete(questionID)
}

type CustomQuestionInput struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type ContestCreateRequest struct {
	Title            string                `json:"title" binding:"required"`
	ModuleIDs        []uint                `json:"moduleIds"`
	StartTime        *time.Time            `json:"startTime"`
	EndTime          *time.Time            `json:"endTime"`
	DurationMinutes  int                   `json:"durationMinutes"`
	MarksPerQuestion int                   `json:"marksPerQuestion"`
	NegativeMarking  float64               `json:"negativeMarking"`
	TieBreak         string                `json:"tieBreak"`
	CustomQuestions  []CustomQuestionInput `json:"customQuestions"`
}

type ContestUpdateRequest struct {
	Title            *string    `json:"title"`
	ModuleIDs        *[]uint    `json:"moduleIds"`
	StartTime        *time.Time `json:"startTime"`
	EndTime          *time.Time `json:"endTime"`
	DurationMinutes  *int       `json:"durationMinutes"`
	MarksPerQuestion *int       `json:"marksPerQuestion"`
	NegativeMarking  *float64   `json:"negativeMarking"`
	TieBreak         *string    `json:"tieBreak"`
}

func (s *AdminService) CreateContest(req ContestCreateRequest) (*model.Contest, error) {
	for _, moduleID := range req.ModuleIDs {
		if _, err := s.Modules.FindByID(moduleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrModuleNotFound
			}
			return nil, err
		}
	}

	contest := &model.Contest{
		Title:            req.Title,
		ModuleIDs:        req.ModuleIDs,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		DurationMinutes:  req.DurationMinutes,
		MarksPerQuestion: req.MarksPerQuestion,
		NegativeMarking:  req.NegativeMarking,
		TieBreak:         req.TieBreak,
	}
	if contest.DurationMinutes <= 0 {
		contest.DurationMinutes = 30
	}
	if contest.MarksPerQuestion <= 0 {
		contest.MarksPerQuestion = 1
	}
	if contest.TieBreak != model.TieBreakScore {
		contest.TieBreak = model.TieBreakTime
	}

	if err := s.Contests.Create(contest); err != nil {
		return nil, err
	}

	if len(req.CustomQuestions) > 0 {
		contestID := contest.ID
		questions := make([]model.Question, len(req.CustomQuestions))
		for i, q := range req.CustomQuestions {
			if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
				return nil, util.ErrInvalidInput
			}
			questions[i] = model.Question{
				ContestID:     &contestID,
				Prompt:        q.Question,
				Options:       q.Options,
				CorrectAnswer: q.CorrectAnswer,
				Difficulty:    "medium",
				Source:        model.QuestionSourceCustomContest,
			}
		}
		if err := s.Questions.CreateBatch(questions); err != nil {
			return nil, err
		}
	}

	return contest, nil
}

func (s *AdminService) UpdateContest(contestID uint, req ContestUpdateRequest) (*model.Contest, error) {
	contest, err := s.Contests.FindByID(contestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContestNotFound
		}
		return nil, err
	}

	if req.Title != nil {
		contest.Title = *req.Title
	}
	if req.ModuleIDs != nil {
		contest.ModuleIDs = *req.ModuleIDs
	}
	if req.StartTime != nil {
		contest.StartTime = req.StartTime
	}
	if req.EndTime != nil {
		contest.EndTime = req.EndTime
	}
	if req.DurationMinutes != nil {
		contest.DurationMinutes = *req.DurationMinutes
	}
	if req.MarksPerQuestion != nil {
		contest.MarksPerQuestion = *req.MarksPerQuestion
	}
	if req.NegativeMarking != nil {
		contest.NegativeMarking = *req.NegativeMarking
	}
	if req.TieBreak != nil {
		if *req.TieBreak != model.TieBreakTime && *req.TieBreak != model.TieBreakScore {
			return nil, util.ErrInvalidInput
		}
		contest.TieBreak = *req.TieBreak
	}

	if err := s.Contests.Update(contest); err != nil {
		return nil, err
	}
	return contest, nil
}

// DeleteContest removes the contest, its leaderboard and its custom questions.
func (s *AdminService) DeleteContest(contestID uint) error {
	if _, err := s.Contests.FindByID(contestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrContestNotFound
		}
		return err
	}
	return s.Contests.Delete(contestID)
}

type PDFPreview struct {
	ExtractedText      string              `json:"extractedText"`
	GeneratedQuestions []GeneratedQuestion `json:"generatedQuestions"`
}

// PreviewPDF extracts text and shows the questions generation would produce,
// without persisting anything.
func (s *AdminService) PreviewPDF(data []byte) *PDFPreview {
	text := s.Extractor.ExtractText(data)
	generated := s.Generator.Generate(text, s.Cfg.PDF.MaxQuestions)

	preview := text
	if len(preview) > 1000 {
		preview = preview[:1000]
	}
	return &PDFPreview{ExtractedText: preview, GeneratedQuestions: generated}
}

type GenerateModuleRequest struct {
	CourseID     uint
	ModuleTitle  string
	NumQuestions int
	FileName     string
	Data         []byte
}

type GenerateModuleResult struct {
	ModuleID            uint   `json:"moduleId"`
	ModuleNo            int    `json:"moduleNo"`
	ModuleTitle         string `json:"moduleTitle"`
	QuestionsCreated    int    `json:"questionsCreated"`
	ExtractedTextLength int    `json:"extractedTextLength"`
	Message             string `json:"message"`
}

// GenerateModuleFromPDF runs the full ingestion pipeline: extract text,
// create the next module in the course, generate its question bank and
// archive the original document.
func (s *AdminService) GenerateModuleFromPDF(ctx context.Context, req GenerateModuleRequest) (*GenerateModuleResult, error) {
	if _, err := s.Courses.FindByID(req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	text := s.Extractor.ExtractText(req.Data)
	if len(text) < s.Cfg.PDF.MinTextLength {
		return nil, util.ErrEmptyPDFText
	}

	moduleNo, err := s.Modules.NextModuleNo(req.CourseID)
	if err != nil {
		return nil, err
	}

	title := req.ModuleTitle
	if title == "" {
		title = "Auto-Generated Module"
	}

	contextText := text
	if len(contextText) > moduleContextLen {
		contextText = contextText[:moduleContextLen]
	}

	module := &model.LearningModule{
		CourseID:         req.CourseID,
		ModuleNo:         moduleNo,
		Title:            title,
		Context:          contextText,
		VideoLinks:       []string{},
		GeneratedFromPDF: true,
	}
	if err := s.Modules.Create(module); err != nil {
		return nil, err
	}

	numQuestions := req.NumQuestions
	if numQuestions <= 0 {
		numQuestions = s.Cfg.PDF.MaxQuestions
	}
	generated := s.Generator.Generate(text, numQuestions)

	if len(generated) > 0 {
		moduleID := module.ID
		questions := make([]model.Question, len(generated))
		for i, g := range generated {
			questions[i] = model.Question{
				ModuleID:      &moduleID,
				Prompt:        g.Question,
				Options:       g.Options,
				CorrectAnswer: g.CorrectAnswer,
				Difficulty:    g.Difficulty,
				Source:        g.Source,
			}
		}
		if err := s.Questions.CreateBatch(questions); err != nil {
			return nil, err
		}
	}

	// archival is best-effort, the module and questions already exist
	if s.Storage != nil && req.FileName != "" {
		objectName := fmt.Sprintf("pdf/%d/%s", module.ID, req.FileName)
		if _, err := s.Storage.Upload(ctx, objectName, bytes.NewReader(req.Data), int64(len(req.Data)), util.MimePDF); err != nil {
			logger.Log.Warn("PDF归档上传失败",
				zap.Uint("moduleId", module.ID),
				zap.String("object", objectName),
				zap.Error(err))
		}
	}

	return &GenerateModuleResult{
		ModuleID:            module.ID,
		ModuleNo:            moduleNo,
		ModuleTitle:         title,
		QuestionsCreated:    len(generated),
		ExtractedTextLength: len(text),
		Message:             fmt.Sprintf("Successfully created module %d with %d questions", moduleNo, len(generated)),
	}, nil
}
