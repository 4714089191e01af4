// internal/domain/customer/entity.go
package customer

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type Customer struct {
	ID        int64  `json:"id" db:"id"`
	Reference string `json:"reference" db:"reference"`

	// Contact details
	FullName string         `json:"full_name" db:"full_name"`
	Phone    string         `json:"phone" db:"phone"`
	Email    sql.NullString `json:"email,omitempty" db:"email"`
	Address  sql.NullString `json:"address,omitempty" db:"address"`

	// Installed product and commercials
	ProductID     sql.NullInt64   `json:"product_id,omitempty" db:"product_id"`
	ProductSerial string          `json:"product_serial" db:"product_serial"`
	Price         sql.NullFloat64 `json:"price,omitempty" db:"price"`
	InvoiceNo     sql.NullString  `json:"invoice_no,omitempty" db:"invoice_no"`
	WarrantyYears int             `json:"warranty_years" db:"warranty_years"`
	AMCPlan       sql.NullString  `json:"amc_plan,omitempty" db:"amc_plan"`
	PurchaseDate  time.Time       `json:"purchase_date" db:"purchase_date"`

	// Visit reference pools. A visit id belongs to exactly one of the two.
	UpcomingServices pq.Int64Array `json:"upcoming_services" db:"upcoming_services"`
	ServiceHistory   pq.Int64Array `json:"service_history" db:"service_history"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
