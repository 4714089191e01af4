// internal/domain/auth/dto.go
package auth

import "fieldserve-backend/internal/pkg/policy"

type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// LoginResponse is returned after a successful OTP verification. The
// session token additionally travels in the `token` cookie.
type LoginResponse struct {
	EmployeeID   int64       `json:"employee_id"`
	FullName     string      `json:"full_name"`
	Role         policy.Role `json:"role"`
	LandingRoute string      `json:"landing_route"`
	Token        string      `json:"-"`
}
