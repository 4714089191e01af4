// internal/domain/visit/entity.go
package visit

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// Visit statuses
const (
	StatusPending   = "PENDING"
	StatusOngoing   = "ONGOING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusClosed    = "CLOSED"
)

// DefaultTag is attached to scheduler-generated visits.
const DefaultTag = "General Service"

// Service is one service visit for a customer. A visit's id lives in
// exactly one of the owning customer's pools: upcoming_services until the
// status becomes COMPLETED, service_history after.
type Service struct {
	ID            int64     `json:"id" db:"id"`
	CustomerID    int64     `json:"customer_id" db:"customer_id"`
	VisitNo       int       `json:"visit_no" db:"visit_no"`
	ScheduledDate time.Time `json:"scheduled_date" db:"scheduled_date"`

	Tags pq.StringArray `json:"tags" db:"tags"`

	EmployeeID   sql.NullInt64 `json:"employee_id,omitempty" db:"employee_id"`
	AssignedDate sql.NullTime  `json:"assigned_date,omitempty" db:"assigned_date"`
	ClosingDate  sql.NullTime  `json:"closing_date,omitempty" db:"closing_date"`

	Notes  sql.NullString `json:"notes,omitempty" db:"notes"`
	Status string         `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidStatus reports whether s is one of the known visit statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusOngoing, StatusCompleted, StatusCancelled, StatusClosed:
		return true
	}
	return false
}
