package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

type Employee struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	EmployeeID       string     `gorm:"column:employee_id;type:varchar(50);not null;uniqueIndex:uq_employees_employee_id"`
	Department       string     `gorm:"column:department;type:varchar(100)"`
	Position         string     `gorm:"column:position;type:varchar(100)"`
	Salary           float64    `gorm:"column:salary;type:numeric(10,2)"`
	HireDate         *time.Time `gorm:"column:hire_date;type:date"`
	Address          string     `gorm:"column:address;type:text"`
	DateOfBirth      *time.Time `gorm:"column:date_of_birth;type:date"`
	EmergencyContact string     `gorm:"column:emergency_contact;type:varchar(100)"`
	EmergencyPhone   string     `gorm:"column:emergency_phone;type:varchar(20)"`
	Status           string     `gorm:"column:status;type:varchar(20);not null;default:active"`
	UserID           uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_employees_user_id"`
	CreatedAt        time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	User *Account `gorm:"foreignKey:UserID;references:ID"`
}

func (Employee) TableName() string {
	return "employees"
}

// Account is the owning user row joined into employee reads. It has no
// password column, so credentials can never leak through this path.
type Account struct {
	ID        uuid.UUID `gorm:"column:id;primaryKey"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email"`
	Phone     string    `gorm:"column:phone"`
	Role      string    `gorm:"column:role"`
	IsActive  bool      `gorm:"column:is_active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Account) TableName() string {
	return "users"
}
