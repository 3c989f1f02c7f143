package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lecturehub/internal/app/models/dto"
	"github.com/yigit/lecturehub/internal/app/services"
	"github.com/yigit/lecturehub/internal/middleware"
)

// LectureController handles lecture scheduling endpoints
type LectureController struct {
	lectureService *services.LectureService
}

// NewLectureController creates a new LectureController
func NewLectureController(lectureService *services.LectureService) *LectureController {
	return &LectureController{
		lectureService: lectureService,
	}
}

// CreateLecture schedules a lecture
// @Summary Schedule a lecture
// @Description Assigns a lecture batch to an instructor. An instructor can hold one lecture per day.
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateLectureRequest true "Lecture information"
// @Success 201 {object} dto.APIResponse{data=models.Lecture} "Lecture scheduled"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Course or instructor not found"
// @Failure 409 {object} dto.ErrorResponse "Instructor already has a lecture on this date"
// @Router /lectures [post]
func (c *LectureController) CreateLecture(ctx *gin.Context) {
	var req dto.CreateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	lecture, err := c.lectureService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lecture, "Lecture scheduled successfully"))
}

// GetAllLectures lists every lecture
func (c *LectureController) GetAllLectures(ctx *gin.Context) {
	lectures, err := c.lectureService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lectures, "Lectures retrieved successfully"))
}

// GetLecturesByCourse lists the lectures of one course
func (c *LectureController) GetLecturesByCourse(ctx *gin.Context) {
	courseID, ok := parseIDParam(ctx, "courseId", "course")
	if !ok {
		return
	}

	lectures, err := c.lectureService.ListByCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lectures, "Lectures retrieved successfully"))
}

// GetMyLectures lists the caller's own schedule
func (c *LectureController) GetMyLectures(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	lectures, err := c.lectureService.ListByInstructor(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lectures, "Lectures retrieved successfully"))
}

// GetLectureByID returns one lecture
func (c *LectureController) GetLectureByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "lecture")
	if !ok {
		return
	}

	lecture, err := c.lectureService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecture, "Lecture retrieved successfully"))
}

// UpdateLecture changes the supplied fields of a lecture
// @Summary Update a lecture
// @Tags lectures
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID" Format(int64) minimum(1)
// @Param request body dto.UpdateLectureRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Lecture} "Lecture updated"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Failure 409 {object} dto.ErrorResponse "Instructor already has a lecture on this date"
// @Router /lectures/{id} [put]
func (c *LectureController) UpdateLecture(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "lecture")
	if !ok {
		return
	}

	var req dto.UpdateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	lecture, err := c.lectureService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lecture, "Lecture updated successfully"))
}

// DeleteLecture removes a lecture
func (c *LectureController) DeleteLecture(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "lecture")
	if !ok {
		return
	}

	if err := c.lectureService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Lecture deleted successfully"))
}

// CheckAvailability reports whether an instructor is free on a date
// @Summary Check instructor availability
// @Tags lectures
// @Produce json
// @Security BearerAuth
// @Param instructorId query int true "Instructor ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param startTime query string false "Start time (HH:MM)"
// @Param endTime query string false "End time (HH:MM)"
// @Success 200 {object} dto.APIResponse{data=dto.AvailabilityResponse}
// @Failure 400 {object} dto.ErrorResponse "Instructor ID and date are required"
// @Router /lectures/availability/check [get]
func (c *LectureController) CheckAvailability(ctx *gin.Context) {
	var q dto.AvailabilityQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	resp, err := c.lectureService.CheckAvailability(ctx.Request.Context(), q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, resp.Message))
}
