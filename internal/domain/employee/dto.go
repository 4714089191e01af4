// internal/domain/employee/dto.go
package employee

type CreateEmployeeRequest struct {
	FullName string `json:"full_name" binding:"required,max=255"`
	Phone    string `json:"phone" binding:"required,max=20"`
	Role     string `json:"role" binding:"required"`
	Address  string `json:"address"`
	JoinedAt string `json:"joined_at"` // YYYY-MM-DD
}

type EmployeeListFilters struct {
	Role   string `form:"role"`
	Status string `form:"status"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}
