package models

import (
	"encoding/json"
	"time"

	"github.com/yigit/lecturehub/internal/pkg/helpers"
)

// CalendarDate is a date without time of day, serialized as "2006-01-02"
type CalendarDate struct {
	time.Time
}

// NewCalendarDate truncates t to its calendar day
func NewCalendarDate(t time.Time) CalendarDate {
	return CalendarDate{Time: helpers.CalendarDay(t)}
}

// String returns the date in "2006-01-02" form
func (d CalendarDate) String() string {
	return d.Format(helpers.DateLayout)
}

// MarshalJSON implements json.Marshaler
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := helpers.ParseCalendarDate(s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// Lecture is a numbered batch of a course taught by one instructor on one date.
type Lecture struct {
	ID           int64        `json:"id" db:"id"`
	Title        string       `json:"title" db:"title"`
	BatchNumber  int          `json:"batchNumber" db:"batch_number"`
	CourseID     int64        `json:"courseId" db:"course_id"`
	InstructorID int64        `json:"instructorId" db:"instructor_id"`
	Date         CalendarDate `json:"date" db:"lecture_date"`
	StartTime    string       `json:"startTime" db:"start_time" example:"14:00"`
	EndTime      string       `json:"endTime" db:"end_time" example:"15:00"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`

	// Relations (populated on read, never stored)
	Course     *CourseSummary `json:"course,omitempty"`
	Instructor *UserSummary   `json:"instructor,omitempty"`
}
