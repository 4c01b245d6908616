package controller

import (
	"errors"

	"learnquest_backend/internal/service"
	"learnquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Course}
// @Router /api/courses [get]
func (c *ContentController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"courses": courses})
}

// @Summary List learning modules
// @Tags courses
// @Produce json
// @Success 200 {object} util.Response{data=[]model.LearningModule}
// @Router /api/modules [get]
func (c *ContentController) ListModules(ctx *gin.Context) {
	modules, err := c.ContentService.ListModules()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"modules": modules})
}

// @Summary Get one module
// @Tags courses
// @Produce json
// @Param moduleId path int true "module id"
// @Success 200 {object} util.Response{data=model.LearningModule}
// @Failure 404 {object} util.Response
// @Router /api/modules/{moduleId} [get]
func (c *ContentController) GetModule(ctx *gin.Context) {
	moduleID, ok := util.ParseUint(ctx.Param("moduleId"))
	if !ok {
		util.BadRequest(ctx, "invalid module id")
		return
	}

	module, err := c.ContentService.GetModule(moduleID)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, module)
}
