package models

import "time"

// DefaultCourseImage is used when a course is created without an image
const DefaultCourseImage = "https://via.placeholder.com/300x200?text=Course+Image"

// Course represents a course managed by an admin.
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Level       string    `json:"level" db:"level"`
	Description string    `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	CreatedByID int64     `json:"createdById" db:"created_by"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	CreatedBy *UserSummary `json:"createdBy,omitempty"`
}

// CourseSummary is the projection embedded in lectures
type CourseSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
}

// Summary returns the projection of the course embedded in lectures
func (c *Course) Summary() *CourseSummary {
	if c == nil {
		return nil
	}
	return &CourseSummary{
		ID:          c.ID,
		Name:        c.Name,
		Level:       c.Level,
		Description: c.Description,
		Image:       c.Image,
	}
}
