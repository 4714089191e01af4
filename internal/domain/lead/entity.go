// internal/domain/lead/entity.go
package lead

import (
	"database/sql"
	"time"
)

// Lead statuses
const (
	StatusNew       = "NEW"
	StatusContacted = "CONTACTED"
	StatusConverted = "CONVERTED"
	StatusDropped   = "DROPPED"
)

type Lead struct {
	ID       int64          `json:"id" db:"id"`
	FullName string         `json:"full_name" db:"full_name"`
	Phone    string         `json:"phone" db:"phone"`
	Source   sql.NullString `json:"source,omitempty" db:"source"`
	Status   string         `json:"status" db:"status"`
	Notes    sql.NullString `json:"notes,omitempty" db:"notes"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateLeadRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Source   string `json:"source"`
	Notes    string `json:"notes"`
}
