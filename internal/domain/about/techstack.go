package about

import (
	"strings"
	"time"

	"github.com/geocoder89/portfoliohub/internal/validation"
)

type TechStack struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon"`
	Category    string    `json:"category"`
	Proficiency int       `json:"proficiency"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TechStackRequest accepts proficiency as a number or a numeric string.
type TechStackRequest struct {
	Name        string              `json:"name" binding:"required,notblank,max=100"`
	Icon        string              `json:"icon" binding:"required,notblank"`
	Category    string              `json:"category" binding:"required,notblank,max=100"`
	Proficiency *validation.FlexInt `json:"proficiency" binding:"required,min=0,max=100"`
}

type TechStackInput struct {
	Name        string
	Icon        string
	Category    string
	Proficiency int
}

func (r TechStackRequest) Input() TechStackInput {
	in := TechStackInput{
		Name:     strings.TrimSpace(r.Name),
		Icon:     strings.TrimSpace(r.Icon),
		Category: strings.TrimSpace(r.Category),
	}
	if r.Proficiency != nil {
		in.Proficiency = r.Proficiency.Int()
	}
	return in
}
