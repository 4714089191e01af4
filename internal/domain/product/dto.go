// internal/domain/product/dto.go
package product

type IntakeProductRequest struct {
	SerialNumber string `json:"serial_number" binding:"required,max=64"`
	Name         string `json:"name" binding:"required,max=255"`
	Category     string `json:"category" binding:"max=100"`
}

type ProductListFilters struct {
	Status   string `form:"status"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}
