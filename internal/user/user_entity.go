package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleEmployee = "employee"
	RoleAdmin    = "admin"
)

type User struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FirstName string    `gorm:"column:first_name;type:varchar(50);not null"`
	LastName  string    `gorm:"column:last_name;type:varchar(50);not null"`
	Email     string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Password  string    `gorm:"column:password;type:varchar(255);not null"`
	Phone     string    `gorm:"column:phone;type:varchar(20);not null"`
	Role      string    `gorm:"column:role;type:varchar(20);not null;default:employee"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	// Work profile, present once an admin has onboarded this user.
	Employee *EmployeeProfile `gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}

// EmployeeProfile is a read-side projection of the employees table used
// when a user is loaded together with its work profile. The employee
// package owns the writable entity.
type EmployeeProfile struct {
	ID               uuid.UUID  `gorm:"column:id;primaryKey"`
	EmployeeID       string     `gorm:"column:employee_id"`
	Department       string     `gorm:"column:department"`
	Position         string     `gorm:"column:position"`
	Salary           float64    `gorm:"column:salary"`
	HireDate         *time.Time `gorm:"column:hire_date"`
	Address          string     `gorm:"column:address"`
	DateOfBirth      *time.Time `gorm:"column:date_of_birth"`
	EmergencyContact string     `gorm:"column:emergency_contact"`
	EmergencyPhone   string     `gorm:"column:emergency_phone"`
	Status           string     `gorm:"column:status"`
	UserID           uuid.UUID  `gorm:"column:user_id"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (EmployeeProfile) TableName() string {
	return "employees"
}
