package employee

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	Page       int
	Limit      int
	Search     string
	Department string
	Status     string
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Employee) error
	FindPage(ctx context.Context, f ListFilter) ([]Employee, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// listScope applies the search and filter clauses of f. Search is an
// OR across employee and owning-user columns; department and status
// are exact-match ANDs on top.
func listScope(f ListFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		q := db.Joins("LEFT JOIN users ON users.id = employees.user_id")

		if f.Search != "" {
			pattern := "%" + f.Search + "%"
			q = q.Where(
				`employees.employee_id ILIKE ? OR employees.position ILIKE ? OR employees.department ILIKE ?
				OR users.first_name ILIKE ? OR users.last_name ILIKE ? OR users.email ILIKE ?`,
				pattern, pattern, pattern, pattern, pattern, pattern,
			)
		}
		if f.Department != "" {
			q = q.Where("employees.department = ?", f.Department)
		}
		if f.Status != "" {
			q = q.Where("employees.status = ?", f.Status)
		}

		return q
	}
}

func (r *repository) FindPage(ctx context.Context, f ListFilter) ([]Employee, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(listScope(f)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var rows []Employee
	err = r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(listScope(f)).
		Preload("User").
		Order("employees.created_at DESC").
		Limit(f.Limit).
		Offset((f.Page - 1) * f.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByUserID(ctx context.Context, userID uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		First(&e, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("employee_id = ?", employeeID)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	// Save without the joined account; the user row has its own repository.
	return r.db.WithContext(ctx).Omit("User").Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}
