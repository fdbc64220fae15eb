package skill

import (
	"errors"
	"time"
)

var (
	ErrNotFound  = errors.New("skill not found")
	ErrNameTaken = errors.New("skill name already exists")
)

type Skill struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Request struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}
