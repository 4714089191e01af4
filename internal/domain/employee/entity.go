// internal/domain/employee/entity.go
package employee

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"fieldserve-backend/internal/pkg/policy"
)

// Employment statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusOnLeave  = "on_leave"
)

type Employee struct {
	ID       int64       `json:"id" db:"id"`
	FullName string      `json:"full_name" db:"full_name"`
	Phone    string      `json:"phone" db:"phone"`
	Role     policy.Role `json:"role" db:"role"`
	Status   string      `json:"status" db:"status"`

	Address         sql.NullString `json:"address,omitempty" db:"address"`
	JoinedAt        sql.NullTime   `json:"joined_at,omitempty" db:"joined_at"`
	LastWorkingDate sql.NullTime   `json:"last_working_date,omitempty" db:"last_working_date"`

	// Visit ids currently assigned to this employee.
	AssignedServices pq.Int64Array `json:"assigned_services" db:"assigned_services"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
