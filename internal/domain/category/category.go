package category

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("category not found")
	ErrNameTaken = errors.New("category name already exists")
	ErrInUse     = errors.New("category has projects")
)

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Count     *Count    `json:"_count,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Count mirrors the relation counters the admin dashboard reads.
type Count struct {
	Projects int `json:"projects"`
}

// Request is the create and update payload.
type Request struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}
