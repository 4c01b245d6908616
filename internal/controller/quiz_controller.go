package controller

import (
	"errors"

	"learnquest_backend/internal/service"
	"learnquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// @Summary Get module quiz questions
// @Description Lists the module's questions with correct options withheld.
// @Tags quiz
// @Produce json
// @Param moduleId path int true "module id"
// @Success 200 {object} util.Response{data=[]service.QuestionView}
// @Failure 404 {object} util.Response
// @Router /api/modules/{moduleId}/questions [get]
func (c *QuizController) GetModuleQuestions(ctx *gin.Context) {
	moduleID, ok := util.ParseUint(ctx.Param("moduleId"))
	if !ok {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	questions, err := c.QuizService.GetModuleQuestions(moduleID)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"questions": questions})
}

// SubmitQuiz godoc
// @Summary Submit a quiz attempt
// @Description Grades the submission server-side and advances XP, level and badges. The learner is taken from the token, never the body.
// @Tags quiz
// @Accept json
// @Produce json
// @Param moduleId path int true "module id"
// @Param body body service.QuizSubmitRequest true "answers"
// @Success 200 {object} util.Response{data=service.QuizSubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/modules/{moduleId}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	moduleID, ok := util.ParseUint(ctx.Param("moduleId"))
	if !ok {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	var req service.QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.QuizService.SubmitQuiz(claims.UserID, moduleID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrModuleNotFound):
			util.NotFound(ctx, err.Error())
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
