package controller

import (
	"errors"

	"learnquest_backend/internal/service"
	"learnquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContestController struct {
	ContestService *service.ContestService
}

func NewContestController(contestService *service.ContestService) *ContestController {
	return &ContestController{ContestService: contestService}
}

func (c *ContestController) contestID(ctx *gin.Context) (uint, bool) {
	id, ok := util.ParseUint(ctx.Param("contestId"))
	if !ok {
		util.BadRequest(ctx, "invalid contest id")
		return 0, false
	}
	return id, true
}

// @Summary List contests
// @Tags contests
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Contest}
// @Router /api/contests [get]
func (c *ContestController) ListContests(ctx *gin.Context) {
	contests, err := c.ContestService.ListContests()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"contests": contests})
}

// @Summary Get contest questions
// @Description Returns the contest question pool with correct options withheld, plus the grading parameters.
// @Tags contests
// @Produce json
// @Param contestId path int true "contest id"
// @Success 200 {object} util.Response{data=service.ContestQuestionsView}
// @Failure 404 {object} util.Response
// @Router /api/contests/{contestId}/questions [get]
func (c *ContestController) GetQuestions(ctx *gin.Context) {
	contestID, ok := c.contestID(ctx)
	if !ok {
		return
	}

	view, err := c.ContestService.GetContestQuestions(contestID)
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// Join godoc
// @Summary Join a contest
// @Description Creates the learner's participation record. Joining twice is an idempotent success.
// @Tags contests
// @Produce json
// @Param contestId path int true "contest id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/contests/{contestId}/join [post]
func (c *ContestController) Join(ctx *gin.Context) {
	contestID, ok := c.contestID(ctx)
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entry, err := c.ContestService.Join(contestID, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"status": "joined", "isSubmitted": entry.IsSubmitted})
}

// Submit godoc
// @Summary Submit contest answers
// @Description Grades the submission with negative marking, floors the score at zero and re-ranks the contest. Resubmission overwrites the previous attempt.
// @Tags contests
// @Accept json
// @Produce json
// @Param contestId path int true "contest id"
// @Param body body service.ContestSubmitRequest true "answers"
// @Success 200 {object} util.Response{data=service.ContestSubmitResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/contests/{contestId}/submit [post]
func (c *ContestController) Submit(ctx *gin.Context) {
	contestID, ok := c.contestID(ctx)
	if !ok {
		return
	}

	var req service.ContestSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ContestService.Submit(ctx.Request.Context(), contestID, claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// @Summary Contest leaderboard
// @Description Rows in ranking order: score descending with the contest's tie-break policy applied.
// @Tags contests
// @Produce json
// @Param contestId path int true "contest id"
// @Success 200 {object} util.Response{data=[]service.LeaderboardRow}
// @Failure 404 {object} util.Response
// @Router /api/contests/{contestId}/leaderboard [get]
func (c *ContestController) Leaderboard(ctx *gin.Context) {
	contestID, ok := c.contestID(ctx)
	if !ok {
		return
	}

	rows, err := c.ContestService.Leaderboard(ctx.Request.Context(), contestID)
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"leaderboard": rows})
}

// @Summary Learner's contest result
// @Description Reports the learner's standing. Correct options are revealed only after submission.
// @Tags contests
// @Produce json
// @Param contestId path int true "contest id"
// @Success 200 {object} util.Response{data=service.ContestResultView}
// @Failure 404 {object} util.Response
// @Router /api/contests/{contestId}/result [get]
func (c *ContestController) Result(ctx *gin.Context) {
	contestID, ok := c.contestID(ctx)
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.ContestService.Result(contestID, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrContestNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
