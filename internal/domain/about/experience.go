package about

import (
	"strings"
	"time"

	"github.com/geocoder89/portfoliohub/internal/validation"
)

type Experience struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Current     bool       `json:"current"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ExperienceRequest: endDate may only be omitted for the current position.
type ExperienceRequest struct {
	Title       string `json:"title" binding:"required,notblank,max=200"`
	Company     string `json:"company" binding:"required,notblank,max=200"`
	StartDate   string `json:"startDate" binding:"required,isodate"`
	EndDate     string `json:"endDate" binding:"required_unless=Current true,omitempty,isodate"`
	Current     bool   `json:"current"`
	Description string `json:"description" binding:"required,notblank"`
}

type ExperienceInput struct {
	Title       string
	Company     string
	StartDate   time.Time
	EndDate     *time.Time
	Current     bool
	Description string
}

// Input converts a validated request; the date strings have already passed isodate.
func (r ExperienceRequest) Input() (ExperienceInput, error) {
	start, end, err := parseRange(r.StartDate, r.EndDate)
	if err != nil {
		return ExperienceInput{}, err
	}

	return ExperienceInput{
		Title:       strings.TrimSpace(r.Title),
		Company:     strings.TrimSpace(r.Company),
		StartDate:   start,
		EndDate:     end,
		Current:     r.Current,
		Description: strings.TrimSpace(r.Description),
	}, nil
}

func parseRange(startRaw, endRaw string) (time.Time, *time.Time, error) {
	start, err := validation.ParseDate(startRaw)
	if err != nil {
		return time.Time{}, nil, err
	}

	if strings.TrimSpace(endRaw) == "" {
		return start, nil, nil
	}

	end, err := validation.ParseDate(endRaw)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}
