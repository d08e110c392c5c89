package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/quicktech/studentportal/internal/app/models/dto"
	"github.com/quicktech/studentportal/internal/app/services"
	"github.com/quicktech/studentportal/internal/middleware"
)

// SemesterController handles semester and course listings
type SemesterController struct {
	semesterService *services.SemesterService
	logger          zerolog.Logger
}

// NewSemesterController creates a new SemesterController
func NewSemesterController(semesterService *services.SemesterService, logger zerolog.Logger) *SemesterController {
	return &SemesterController{
		semesterService: semesterService,
		logger:          logger,
	}
}

// ListSemesters returns every semester
// @Summary List semesters
// @Description Returns every semester with its course name and the canOpenPortal flag; completed semesters carry canOpenPortal=false.
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.SemesterResponse} "Semesters"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /semesters [get]
func (c *SemesterController) ListSemesters(ctx *gin.Context) {
	semesters, err := c.semesterService.ListSemesters(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(semesters, ""))
}

// ListCourses returns every course
// @Summary List courses
// @Description Returns the course catalogue.
// @Tags semesters
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Courses"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *SemesterController) ListCourses(ctx *gin.Context) {
	courses, err := c.semesterService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses, ""))
}
