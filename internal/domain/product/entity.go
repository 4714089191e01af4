// internal/domain/product/entity.go
package product

import (
	"database/sql"
	"time"
)

// Stock statuses. Invariant: StatusOutOfStock iff assigned_to is set and
// stock is 0; StatusInStock iff assigned_to is null and stock is 1.
const (
	StatusInStock    = "In Stock"
	StatusOutOfStock = "Out of Stock"
)

type Product struct {
	ID           int64  `json:"id" db:"id"`
	SerialNumber string `json:"serial_number" db:"serial_number"`
	Name         string `json:"name" db:"name"`
	Category     string `json:"category" db:"category"`

	Stock      int           `json:"stock" db:"stock"`
	Status     string        `json:"status" db:"status"`
	AssignedTo sql.NullInt64 `json:"assigned_to,omitempty" db:"assigned_to"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
