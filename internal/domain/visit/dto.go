// internal/domain/visit/dto.go
package visit

import "time"

type CreateVisitRequest struct {
	CustomerID    int64     `json:"customer_id" binding:"required"`
	VisitNo       int       `json:"visit_no" binding:"required,min=1"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
	Tags          []string  `json:"tags"`
	Notes         string    `json:"notes"`
}

// UpdateVisitRequest is a partial update; nil fields are left untouched.
type UpdateVisitRequest struct {
	ScheduledDate *time.Time `json:"scheduled_date"`
	Tags          []string   `json:"tags"`
	EmployeeID    *int64     `json:"employee_id"`
	Notes         *string    `json:"notes"`
	Status        *string    `json:"status"`
}

// UpdateFields is the resolved set of column changes for a partial visit
// update, including the derived assignment/closing dates. Built by the
// visit service, applied by the repository.
type UpdateFields struct {
	ScheduledDate *time.Time
	Tags          []string
	EmployeeID    *int64
	AssignedDate  *time.Time
	ClosingDate   *time.Time
	Notes         *string
	Status        *string
}

type VisitListFilters struct {
	CustomerID *int64 `form:"customer_id"`
	EmployeeID *int64 `form:"employee_id"`
	Status     string `form:"status"`
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}
