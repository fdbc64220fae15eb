package location

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("location not found")

// Location is a singleton: the store keeps at most one row.
type Location struct {
	ID          int64     `json:"id"`
	City        string    `json:"city"`
	OfficeHours string    `json:"officeHours"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Request struct {
	City        string `json:"city" binding:"required,notblank,max=120"`
	OfficeHours string `json:"officeHours" binding:"required,notblank,max=120"`
}
