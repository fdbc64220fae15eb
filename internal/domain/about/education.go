package about

import (
	"strings"
	"time"
)

type Education struct {
	ID          int64      `json:"id"`
	Institution string     `json:"institution"`
	Degree      string     `json:"degree"`
	Field       string     `json:"field"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Current     bool       `json:"current"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type EducationRequest struct {
	Institution string  `json:"institution" binding:"required,notblank,max=200"`
	Degree      string  `json:"degree" binding:"required,notblank,max=200"`
	Field       string  `json:"field" binding:"required,notblank,max=200"`
	StartDate   string  `json:"startDate" binding:"required,isodate"`
	EndDate     string  `json:"endDate" binding:"required_unless=Current true,omitempty,isodate"`
	Current     bool    `json:"current"`
	Description *string `json:"description"`
}

type EducationInput struct {
	Institution string
	Degree      string
	Field       string
	StartDate   time.Time
	EndDate     *time.Time
	Current     bool
	Description *string
}

func (r EducationRequest) Input() (EducationInput, error) {
	start, end, err := parseRange(r.StartDate, r.EndDate)
	if err != nil {
		return EducationInput{}, err
	}

	var desc *string
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		desc = &d
	}

	return EducationInput{
		Institution: strings.TrimSpace(r.Institution),
		Degree:      strings.TrimSpace(r.Degree),
		Field:       strings.TrimSpace(r.Field),
		StartDate:   start,
		EndDate:     end,
		Current:     r.Current,
		Description: desc,
	}, nil
}
