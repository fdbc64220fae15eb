package handlers

import (
	"strings"
	"time"

	"github.com/geocoder89/portfoliohub/internal/validation"
)

// dateFieldErrors names whichever date failed to parse after binding.
func dateFieldErrors(start string) []FieldError {
	if _, err := validation.ParseDate(start); err != nil {
		return []FieldError{{Field: "startDate", Rule: "isodate", Message: "startDate must be a valid ISO-8601 date"}}
	}
	return []FieldError{{Field: "endDate", Rule: "isodate", Message: "endDate must be a valid ISO-8601 date"}}
}

func endBeforeStart(start time.Time, end *time.Time) []FieldError {
	if end != nil && end.Before(start) {
		return []FieldError{{Field: "endDate", Rule: "gtefield", Param: "startDate", Message: "endDate must not be before startDate"}}
	}
	return nil
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
