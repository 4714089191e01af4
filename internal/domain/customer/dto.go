// internal/domain/customer/dto.go
package customer

import "time"

type CreateCustomerRequest struct {
	FullName      string    `json:"full_name" binding:"required,max=255"`
	Phone         string    `json:"phone" binding:"required,max=20"`
	Email         string    `json:"email" binding:"omitempty,email,max=255"`
	Address       string    `json:"address"`
	ProductSerial string    `json:"product_serial" binding:"required,max=64"`
	Price         float64   `json:"price"`
	InvoiceNo     string    `json:"invoice_no"`
	WarrantyYears int       `json:"warranty_years"`
	AMCPlan       string    `json:"amc_plan"`
	PurchaseDate  time.Time `json:"purchase_date" binding:"required"`
}

type UpdateCustomerRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=255"`
	Phone    *string `json:"phone" binding:"omitempty,max=20"`
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Address  *string `json:"address"`
	AMCPlan  *string `json:"amc_plan"`
}

type CustomerListFilters struct {
	Search string `form:"search"` // name or phone
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
