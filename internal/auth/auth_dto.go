package auth

import (
	"time"

	"go-ems/internal/user"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=50"`
	LastName  string `json:"lastName" binding:"required,min=2,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6,max=100"`
	Phone     string `json:"phone" binding:"required,min=10,max=15"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is a User with the password stripped and the work
// profile attached when one exists. EmployeeProfile is emitted as an
// explicit null for users that have not been onboarded yet.
type UserResponse struct {
	ID              string                   `json:"id"`
	FirstName       string                   `json:"firstName"`
	LastName        string                   `json:"lastName"`
	Email           string                   `json:"email"`
	Phone           string                   `json:"phone"`
	Role            string                   `json:"role"`
	IsActive        bool                     `json:"isActive"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
	EmployeeProfile *EmployeeProfileResponse `json:"employeeProfile"`
}

type EmployeeProfileResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employeeId"`
	Department       string  `json:"department"`
	Position         string  `json:"position"`
	Salary           float64 `json:"salary"`
	HireDate         string  `json:"hireDate,omitempty"`
	Address          string  `json:"address"`
	DateOfBirth      string  `json:"dateOfBirth,omitempty"`
	EmergencyContact string  `json:"emergencyContact"`
	EmergencyPhone   string  `json:"emergencyPhone"`
	Status           string  `json:"status"`
	UserID           string  `json:"userId"`
}

func mapUserResponse(u *user.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Employee != nil {
		resp.EmployeeProfile = mapEmployeeProfile(u.Employee)
	}
	return resp
}

func mapEmployeeProfile(p *user.EmployeeProfile) *EmployeeProfileResponse {
	resp := &EmployeeProfileResponse{
		ID:               p.ID.String(),
		EmployeeID:       p.EmployeeID,
		Department:       p.Department,
		Position:         p.Position,
		Salary:           p.Salary,
		Address:          p.Address,
		EmergencyContact: p.EmergencyContact,
		EmergencyPhone:   p.EmergencyPhone,
		Status:           p.Status,
		UserID:           p.UserID.String(),
	}
	if p.HireDate != nil {
		resp.HireDate = p.HireDate.Format("2006-01-02")
	}
	if p.DateOfBirth != nil {
		resp.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
	}
	return resp
}
