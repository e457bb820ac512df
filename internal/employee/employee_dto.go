package employee

import (
	"time"

	"go-ems/internal/user"
)

type CreateEmployeeRequest struct {
	UserID           string  `json:"userId" binding:"required,uuid"`
	EmployeeID       string  `json:"employeeId" binding:"required,max=50"`
	Department       string  `json:"department" binding:"omitempty,max=100"`
	Position         string  `json:"position" binding:"omitempty,max=100"`
	Salary           float64 `json:"salary" binding:"omitempty,gte=0"`
	HireDate         string  `json:"hireDate" binding:"omitempty,datetime=2006-01-02"`
	Address          string  `json:"address"`
	DateOfBirth      string  `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	EmergencyContact string  `json:"emergencyContact" binding:"omitempty,max=100"`
	EmergencyPhone   string  `json:"emergencyPhone" binding:"omitempty,max=20"`
	Status           string  `json:"status" binding:"omitempty,oneof=active inactive terminated"`
}

// UpdateEmployeeRequest is sparse: nil means "leave the field alone",
// a present value (including an empty string or zero) is applied. The
// first four fields belong to the linked user, the rest to the
// employee record; both update inside one transaction.
type UpdateEmployeeRequest struct {
	FirstName *string `json:"firstName" binding:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName" binding:"omitempty,min=2,max=50"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,min=10,max=15"`

	EmployeeID       *string  `json:"employeeId" binding:"omitempty,min=1,max=50"`
	Department       *string  `json:"department" binding:"omitempty,max=100"`
	Position         *string  `json:"position" binding:"omitempty,max=100"`
	Salary           *float64 `json:"salary" binding:"omitempty,gte=0"`
	HireDate         *string  `json:"hireDate" binding:"omitempty,datetime=2006-01-02"`
	Address          *string  `json:"address"`
	DateOfBirth      *string  `json:"dateOfBirth" binding:"omitempty,datetime=2006-01-02"`
	EmergencyContact *string  `json:"emergencyContact" binding:"omitempty,max=100"`
	EmergencyPhone   *string  `json:"emergencyPhone" binding:"omitempty,max=20"`
	Status           *string  `json:"status" binding:"omitempty,oneof=active inactive terminated"`
}

type ListQuery struct {
	Page       int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit      int    `form:"limit,default=10" binding:"omitempty,gte=1"`
	Search     string `form:"search"`
	Department string `form:"department"`
	Status     string `form:"status" binding:"omitempty,oneof=active inactive terminated"`
}

type AccountResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type EmployeeResponse struct {
	ID               string           `json:"id"`
	EmployeeID       string           `json:"employeeId"`
	Department       string           `json:"department"`
	Position         string           `json:"position"`
	Salary           float64          `json:"salary"`
	HireDate         string           `json:"hireDate,omitempty"`
	Address          string           `json:"address"`
	DateOfBirth      string           `json:"dateOfBirth,omitempty"`
	EmergencyContact string           `json:"emergencyContact"`
	EmergencyPhone   string           `json:"emergencyPhone"`
	Status           string           `json:"status"`
	UserID           string           `json:"userId"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	User             *AccountResponse `json:"user,omitempty"`
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID.String(),
		EmployeeID:       e.EmployeeID,
		Department:       e.Department,
		Position:         e.Position,
		Salary:           e.Salary,
		Address:          e.Address,
		EmergencyContact: e.EmergencyContact,
		EmergencyPhone:   e.EmergencyPhone,
		Status:           e.Status,
		UserID:           e.UserID.String(),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
	if e.HireDate != nil {
		resp.HireDate = e.HireDate.Format("2006-01-02")
	}
	if e.DateOfBirth != nil {
		resp.DateOfBirth = e.DateOfBirth.Format("2006-01-02")
	}
	if e.User != nil {
		resp.User = &AccountResponse{
			ID:        e.User.ID.String(),
			FirstName: e.User.FirstName,
			LastName:  e.User.LastName,
			Email:     e.User.Email,
			Phone:     e.User.Phone,
			Role:      e.User.Role,
			IsActive:  e.User.IsActive,
			CreatedAt: e.User.CreatedAt,
			UpdatedAt: e.User.UpdatedAt,
		}
	}
	return resp
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapAccountResponse(u user.User) AccountResponse {
	return AccountResponse{
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
}

func mapAccountListResponse(users []user.User) []AccountResponse {
	res := make([]AccountResponse, len(users))
	for i, u := range users {
		res[i] = mapAccountResponse(u)
	}
	return res
}
