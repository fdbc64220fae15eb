package about

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("about entry not found")

// About is a singleton; GET creates the row with an empty biography when absent.
type About struct {
	ID        int64     `json:"id"`
	Biography string    `json:"biography"`
	ResumeURL *string   `json:"resumeUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Request: biography must be present but may be empty. resumeUrl is stored as-is
// because it is usually a local /uploads path rather than an absolute URL.
type Request struct {
	Biography *string `json:"biography" binding:"required"`
	ResumeURL *string `json:"resumeUrl" binding:"omitempty,max=2048"`
}

type Input struct {
	Biography string
	ResumeURL *string
}

func (r Request) Input() Input {
	in := Input{ResumeURL: r.ResumeURL}
	if r.Biography != nil {
		in.Biography = *r.Biography
	}
	return in
}
