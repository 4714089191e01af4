// internal/domain/payment/entity.go
package payment

import (
	"database/sql"
	"time"
)

type Payment struct {
	ID         int64          `json:"id" db:"id"`
	CustomerID int64          `json:"customer_id" db:"customer_id"`
	Amount     float64        `json:"amount" db:"amount"`
	Method     string         `json:"method" db:"method"`
	Reference  sql.NullString `json:"reference,omitempty" db:"reference"`
	Notes      sql.NullString `json:"notes,omitempty" db:"notes"`
	PaidAt     time.Time      `json:"paid_at" db:"paid_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type RecordPaymentRequest struct {
	CustomerID int64   `json:"customer_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Method     string  `json:"method" binding:"required"`
	Reference  string  `json:"reference"`
	Notes      string  `json:"notes"`
}
