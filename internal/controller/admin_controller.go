package controller

import (
	"errors"
	"io"
	"strconv"

	"learnquest_backend/internal/service"
	"learnquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	AdminService   *service.AdminService
	ContestService *service.ContestService
}

func NewAdminController(adminService *service.AdminService, contestService *service.ContestService) *AdminController {
	return &AdminController{AdminService: adminService, ContestService: contestService}
}

func (c *AdminController) handleErr(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrContestNotFound):
		util.NotFound(ctx, err.Error())
	case errors.Is(err, util.ErrInvalidInput),
		errors.Is(err, util.ErrEmptyPDFText):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// @Summary Dashboard statistics
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response{data=service.AdminStats}
// @Router /api/admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	stats, err := c.AdminService.Stats()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary Create a module
// @Tags admin
// @Accept json
// @Produce json
// @Param body body service.ModuleCreateRequest true "module"
// @Success 201 {object} util.Response{data=model.LearningModule}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/module/create [post]
func (c *AdminController) CreateModule(ctx *gin.Context) {
	var req service.ModuleCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.AdminService.CreateModule(req)
	if err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary Update a module
// @Tags admin
// @Accept json
// @Produce json
// @Param moduleId path int true "module id"
// @Param body body service.ModuleUpdateRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.LearningModule}
// @Failure 404 {object} util.Response
// @Router /api/admin/module/update/{moduleId} [put]
func (c *AdminController) UpdateModule(ctx *gin.Context) {
	moduleID, ok := util.ParseUint(ctx.Param("moduleId"))
	if !ok {
		util.BadRequest(ctx, "invalid module id")
		return
	}
	var req service.ModuleUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.AdminService.UpdateModule(moduleID, req)
	if err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// @Summary Delete a module and its question bank
// @Tags admin
// @Produce json
// @Param moduleId path int true "module id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/module/delete/{moduleId} [delete]
func (c *AdminController) DeleteModule(ctx *gin.Context) {
	moduleID, ok := util.ParseUint(ctx.Param("moduleId"))
	if !ok {
		util.BadRequest(ctx, "invalid module id")
		return
	}
	if err := c.AdminService.DeleteModule(moduleID); err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"status": "deleted"})
}

// @Summary Create a question in a module bank
// @Tags admin
// @Accept json
// @Produce json
// @Param body body service.QuestionCreateRequest true "question"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/question/create [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req service.QuestionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.AdminService.CreateQuestion(req)
	if err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// @Summary List a module's questions with answers
// @Tags admin
// @Produce json
// @Param moduleId path int true "module id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response
// @Router /api/admin/module/{moduleId}/questions [get]
func (c *AdminController) ListModuleQuestions(ctx *gin.Context) {
	moduleID, ok := util.ParseUint(ctx.Param("moduleId"))
	if !ok {
		util.BadRequest(ctx, "invalid module id")
		return
	}
	questions, err := c.AdminService.ListModuleQuestions(moduleID)
	if err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questions": questions})
}

// @Summary Update a question
// @Tags admin
// @Accept json
// @Produce json
// @Param questionId path int true "question id"
// @Param body body service.QuestionUpdateRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/admin/question/update/{questionId} [put]
func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	questionID, ok := util.ParseUint(ctx.Param("questionId"))
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	var req service.QuestionUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	question, err := c.AdminService.UpdateQuestion(questionID, req)
	if err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// @Summary Delete a question
// @Tags admin
// @Produce json
// @Param questionId path int true "question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/question/delete/{questionId} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	questionID, ok := util.ParseUint(ctx.Param("questionId"))
	if !ok {
		util.BadRequest(ctx, "invalid question id")
		return
	}
	if err := c.AdminService.DeleteQuestion(questionID); err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"status": "deleted"})
}

// @Summary Create a contest
// @Description Creates the contest and any inline custom questions.
// @Tags admin
// @Accept json
// @Produce json
// @Param body body service.ContestCreateRequest true "contest"
// @Success 201 {object} util.Response{data=model.Contest}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/contest/create [post]
func (c *AdminController) CreateContest(ctx *gin.Context) {
	var req service.ContestCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	contest, err := c.AdminService.CreateContest(req)
	if err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Created(ctx, contest)
}

// @Summary Update a contest
// @Tags admin
// @Accept json
// @Produce json
// @Param contestId path int true "contest id"
// @Param body body service.ContestUpdateRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.Contest}
// @Failure 404 {object} util.Response
// @Router /api/admin/contest/update/{contestId} [put]
func (c *AdminController) UpdateContest(ctx *gin.Context) {
	contestID, ok := util.ParseUint(ctx.Param("contestId"))
	if !ok {
		util.BadRequest(ctx, "invalid contest id")
		return
	}
	var req service.ContestUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	contest, err := c.AdminService.UpdateContest(contestID, req)
	if err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Success(ctx, contest)
}

// @Summary Delete a contest, its leaderboard and custom questions
// @Tags admin
// @Produce json
// @Param contestId path int true "contest id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/contest/delete/{contestId} [delete]
func (c *AdminController) DeleteContest(ctx *gin.Context) {
	contestID, ok := util.ParseUint(ctx.Param("contestId"))
	if !ok {
		util.BadRequest(ctx, "invalid contest id")
		return
	}
	if err := c.AdminService.DeleteContest(contestID); err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"status": "deleted"})
}

// @Summary Recompute contest ranks
// @Description Administrative repair: re-runs the full ranking pass for the contest.
// @Tags admin
// @Produce json
// @Param contestId path int true "contest id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/contest/{contestId}/recompute-ranks [post]
func (c *AdminController) RecomputeRanks(ctx *gin.Context) {
	contestID, ok := util.ParseUint(ctx.Param("contestId"))
	if !ok {
		util.BadRequest(ctx, "invalid contest id")
		return
	}
	if err := c.ContestService.RecomputeRanks(contestID); err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"status": "recomputed"})
}

func readUploadedFile(ctx *gin.Context) (string, []byte, bool) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "no file provided")
		return "", nil, false
	}
	f, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return "", nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		util.LogInternalError(ctx, err)
		return "", nil, false
	}
	return fileHeader.Filename, data, true
}

// @Summary Preview PDF question generation
// @Description Extracts text and returns the questions generation would produce, without persisting anything.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} util.Response{data=service.PDFPreview}
// @Failure 400 {object} util.Response
// @Router /api/admin/pdf/upload [post]
func (c *AdminController) UploadPDF(ctx *gin.Context) {
	_, data, ok := readUploadedFile(ctx)
	if !ok {
		return
	}
	util.Success(ctx, c.AdminService.PreviewPDF(data))
}

// @Summary Generate a module from a PDF
// @Description Extracts text, creates the next module in the course and fills its question bank.
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Param courseId formData int true "course id"
// @Param moduleTitle formData string false "module title"
// @Param numQuestions formData int false "question count"
// @Success 201 {object} util.Response{data=service.GenerateModuleResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/admin/pdf/generate-module [post]
func (c *AdminController) GenerateModuleFromPDF(ctx *gin.Context) {
	filename, data, ok := readUploadedFile(ctx)
	if !ok {
		return
	}

	courseID, ok := util.ParseUint(ctx.PostForm("courseId"))
	if !ok {
		util.BadRequest(ctx, "course id is required")
		return
	}
	numQuestions, _ := strconv.Atoi(ctx.PostForm("numQuestions"))

	result, err := c.AdminService.GenerateModuleFromPDF(ctx.Request.Context(), service.GenerateModuleRequest{
		CourseID:     courseID,
		ModuleTitle:  ctx.PostForm("moduleTitle"),
		NumQuestions: numQuestions,
		FileName:     filename,
		Data:         data,
	})
	if err != nil {
		c.handleErr(ctx, err)
		return
	}
	util.Created(ctx, result)
}
