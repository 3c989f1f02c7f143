package dto

// CreateLectureRequest represents a lecture to schedule. Date is "YYYY-MM-DD" (an
// RFC 3339 timestamp is accepted and truncated); times are "HH:MM".
type CreateLectureRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	BatchNumber  int    `json:"batchNumber" binding:"required,min=1"`
	CourseID     int64  `json:"courseId" binding:"required,min=1"`
	InstructorID int64  `json:"instructorId" binding:"required,min=1"`
	Date         string `json:"date" binding:"required,calendardate" example:"2024-03-15"`
	StartTime    string `json:"startTime" binding:"required,clock" example:"10:00"`
	EndTime      string `json:"endTime" binding:"required,clock" example:"11:00"`
}

// UpdateLectureRequest changes only the fields that are present
type UpdateLectureRequest struct {
	Title        *string `json:"title" binding:"omitempty,min=1,max=255"`
	BatchNumber  *int    `json:"batchNumber" binding:"omitempty,min=1"`
	CourseID     *int64  `json:"courseId" binding:"omitempty,min=1"`
	InstructorID *int64  `json:"instructorId" binding:"omitempty,min=1"`
	Date         *string `json:"date" binding:"omitempty,calendardate"`
	StartTime    *string `json:"startTime" binding:"omitempty,clock"`
	EndTime      *string `json:"endTime" binding:"omitempty,clock"`
}

// AvailabilityQuery is the query string of the availability check
type AvailabilityQuery struct {
	InstructorID     int64  `form:"instructorId" binding:"required,min=1"`
	Date             string `form:"date" binding:"required,calendardate"`
	StartTime        string `form:"startTime" binding:"omitempty,clock"`
	EndTime          string `form:"endTime" binding:"omitempty,clock"`
	ExcludeLectureID int64  `form:"excludeLectureId" binding:"omitempty,min=1"`
}

// AvailabilityResponse reports whether an instructor is free on a date
type AvailabilityResponse struct {
	Available    bool   `json:"available"`
	Message      string `json:"message"`
	TimeConflict *bool  `json:"timeConflict,omitempty"`
}
