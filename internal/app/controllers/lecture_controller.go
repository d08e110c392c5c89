package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/app/services"
	"github.com/quicktech/studentportal/internal/middleware"
)

// LectureController handles lecture listings
type LectureController struct {
	lectureService *services.LectureService
	logger         zerolog.Logger
}

// NewLectureController creates a new LectureController
func NewLectureController(lectureService *services.LectureService, logger zerolog.Logger) *LectureController {
	return &LectureController{
		lectureService: lectureService,
		logger:         logger,
	}
}

// ListLectures returns every lecture
// @Summary List lectures
// @Description Returns the recorded lectures, newest first.
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Lecture} "Lectures"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lectures [get]
func (c *LectureController) ListLectures(ctx *gin.Context) {
	lectures, err := c.lectureService.ListLectures(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lectures, ""))
}
