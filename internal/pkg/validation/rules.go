// Package validation registers the request validation rules used by gin binding.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/lecturehub/internal/pkg/helpers"
)

// Custom binding tags
const (
	// TagClock accepts "H:MM" and "HH:MM" wall-clock times
	TagClock = "clock"
	// TagCalendarDate accepts "YYYY-MM-DD" or an RFC 3339 timestamp
	TagCalendarDate = "calendardate"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom rules on gin's validator and makes field errors report
// JSON / form names instead of Go field names. Safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = RegisterOn(v)
	})
	return registerErr
}

// RegisterOn installs the rules on v
func RegisterOn(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)

	if err := v.RegisterValidation(TagClock, validateClock); err != nil {
		return fmt.Errorf("register %s: %w", TagClock, err)
	}
	if err := v.RegisterValidation(TagCalendarDate, validateCalendarDate); err != nil {
		return fmt.Errorf("register %s: %w", TagCalendarDate, err)
	}
	return nil
}

// fieldName prefers the json tag, then the form tag, then the Go name
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func validateClock(fl validator.FieldLevel) bool {
	_, err := helpers.ParseClock(fl.Field().String())
	return err == nil
}

func validateCalendarDate(fl validator.FieldLevel) bool {
	_, err := helpers.ParseCalendarDate(fl.Field().String())
	return err == nil
}
