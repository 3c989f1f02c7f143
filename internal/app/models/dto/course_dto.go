package dto

// CreateCourseRequest represents a new course
type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Level       string `json:"level" binding:"required,max=100"`
	Description string `json:"description" binding:"required"`
	Image       string `json:"image" binding:"omitempty,url"`
}

// UpdateCourseRequest replaces the non-empty fields of a course
type UpdateCourseRequest struct {
	Name        string `json:"name" binding:"omitempty,max=255"`
	Level       string `json:"level" binding:"omitempty,max=100"`
	Description string `json:"description"`
	Image       string `json:"image" binding:"omitempty,url"`
}
