package employee

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	employeeerrors "go-ems/internal/employee/errors"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"
	"go-ems/internal/user"
	usererrors "go-ems/internal/user/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// OnboardableUsersCacheKey caches the users-without-employee-records
// listing. Invalidated on register, employee create and employee delete.
const OnboardableUsersCacheKey = "users:onboardable"

const onboardableCacheTTL = time.Hour

// MaxPageSize caps caller-controlled page sizes.
const MaxPageSize = 100

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	List(ctx context.Context, q ListQuery) ([]EmployeeResponse, response.Pagination, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	OnboardableUsers(ctx context.Context) ([]AccountResponse, error)
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	MyProfile(ctx context.Context, userID string) (EmployeeResponse, AccountResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	users  user.Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, users user.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, users, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	users user.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		users:  users,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) List(ctx context.Context, q ListQuery) ([]EmployeeResponse, response.Pagination, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}

	rows, total, err := s.repo.FindPage(ctx, ListFilter{
		Page:       q.Page,
		Limit:      q.Limit,
		Search:     q.Search,
		Department: q.Department,
		Status:     q.Status,
	})
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list employees failed", zap.Error(err))
		return nil, response.Pagination{}, mapRepositoryError(err)
	}

	return mapToListResponse(rows), response.NewPagination(total, q.Page, q.Limit), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	eid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	e, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*e), nil
}

func (s *service) OnboardableUsers(ctx context.Context) ([]AccountResponse, error) {
	// 1. Cache first
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OnboardableUsersCacheKey).Result(); err == nil {
			var resp []AccountResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Collapse concurrent misses into a single query
	v, err, _ := s.sf.Do(OnboardableUsersCacheKey, func() (interface{}, error) {
		users, err := s.users.FindOnboardable(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapAccountListResponse(users)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OnboardableUsersCacheKey, jsonData, onboardableCacheTTL)
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("list onboardable users failed", zap.Error(err))
		return nil, err
	}

	return v.([]AccountResponse), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("user_id", req.UserID),
		zap.String("employee_id", req.EmployeeID),
	)

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return EmployeeResponse{}, usererrors.ErrInvalidUserID
	}

	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}
	dateOfBirth, err := parseDate(req.DateOfBirth)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}

	status := req.Status
	if status == "" {
		status = StatusActive
	}

	empl := &Employee{
		ID:               uuid.New(),
		EmployeeID:       req.EmployeeID,
		Department:       req.Department,
		Position:         req.Position,
		Salary:           req.Salary,
		HireDate:         hireDate,
		Address:          req.Address,
		DateOfBirth:      dateOfBirth,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Status:           status,
		UserID:           userID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		utx := s.users.WithTx(tx)

		target, err := utx.FindByID(ctx, userID)
		if err != nil {
			return usererrors.ErrUserNotFound
		}
		if target.Role != user.RoleEmployee {
			return employeeerrors.ErrUserNotEligible
		}

		// Friendly pre-checks; the unique constraints on user_id and
		// employee_id decide races.
		if _, err := qtx.FindByUserID(ctx, userID); err == nil {
			return employeeerrors.ErrEmployeeRecordExists
		}
		taken, err := qtx.ExistsByEmployeeID(ctx, req.EmployeeID, uuid.Nil)
		if err != nil {
			return err
		}
		if taken {
			return employeeerrors.ErrEmployeeIDAlreadyExists
		}

		if err := qtx.Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		return s.enqueueLifecycleEvent(ctx, tx, events.EventEmployeeCreated, empl)
	})
	if err != nil {
		s.logger.Warn("create employee failed",
			zap.String("request_id", rid),
			zap.String("user_id", req.UserID),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	s.invalidateOnboardableCache(ctx)

	created, err := s.repo.FindByID(ctx, empl.ID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
	)

	return mapToResponse(*created), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	eid, err := uuid.Parse(id)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		utx := s.users.WithTx(tx)

		empl, err := qtx.FindByID(ctx, eid)
		if err != nil {
			return mapRepositoryError(err)
		}

		owner, err := utx.FindByID(ctx, empl.UserID)
		if err != nil {
			return usererrors.ErrUserNotFound
		}

		// Uniqueness re-checks before touching anything.
		if req.EmployeeID != nil && *req.EmployeeID != empl.EmployeeID {
			taken, err := qtx.ExistsByEmployeeID(ctx, *req.EmployeeID, empl.ID)
			if err != nil {
				return err
			}
			if taken {
				return employeeerrors.ErrEmployeeIDAlreadyExists
			}
		}
		if req.Email != nil && *req.Email != owner.Email {
			taken, err := utx.ExistsByEmail(ctx, *req.Email, owner.ID)
			if err != nil {
				return err
			}
			if taken {
				return usererrors.ErrEmailAlreadyExists
			}
		}

		applyUserFields(owner, req)
		if err := applyEmployeeFields(empl, req); err != nil {
			return err
		}

		if err := utx.Update(ctx, owner); err != nil {
			return mapRepositoryError(err)
		}
		if err := qtx.Update(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}

		return nil
	})
	if err != nil {
		s.logger.Warn("update employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, err
	}

	updated, err := s.repo.FindByID(ctx, eid)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete employee requested",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)

	eid, err := uuid.Parse(id)
	if err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		utx := s.users.WithTx(tx)

		empl, err := qtx.FindByID(ctx, eid)
		if err != nil {
			return mapRepositoryError(err)
		}

		// Identity removal is total: the work profile and the owning
		// credential go together or not at all.
		if err := qtx.Delete(ctx, empl.ID); err != nil {
			return mapRepositoryError(err)
		}
		if err := utx.Delete(ctx, empl.UserID); err != nil {
			return mapRepositoryError(err)
		}

		return s.enqueueLifecycleEvent(ctx, tx, events.EventEmployeeDeleted, empl)
	})
	if err != nil {
		s.logger.Warn("delete employee failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return err
	}

	s.invalidateOnboardableCache(ctx)

	s.logger.Info("delete employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", id),
	)
	return nil
}

func (s *service) MyProfile(ctx context.Context, userID string) (EmployeeResponse, AccountResponse, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return EmployeeResponse{}, AccountResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, AccountResponse{}, employeeerrors.ErrEmployeeProfileNotFound
		}
		contextutil.GetLogger(ctx, s.logger).Error("my profile lookup failed",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return EmployeeResponse{}, AccountResponse{}, err
	}

	// Not yet onboarded is an expected, user-visible state.
	if u.Employee == nil {
		return EmployeeResponse{}, AccountResponse{}, employeeerrors.ErrEmployeeProfileNotFound
	}

	return profileToResponse(u.Employee), mapAccountResponse(*u), nil
}

func (s *service) enqueueLifecycleEvent(ctx context.Context, tx *gorm.DB, eventType string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		RequestID:  rid,
		EmployeeID: empl.ID.String(),
		UserID:     empl.UserID.String(),
		ActorID:    contextutil.GetUserID(ctx),
		OccurredAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "employee",
		AggregateID:   empl.ID.String(),
		EventType:     eventType,
		Topic:         events.EmployeeLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) invalidateOnboardableCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OnboardableUsersCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate onboardable users cache",
			zap.Error(err),
			zap.String("key", OnboardableUsersCacheKey),
		)
	}
}

func applyUserFields(u *user.User, req UpdateEmployeeRequest) {
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
}

func applyEmployeeFields(e *Employee, req UpdateEmployeeRequest) error {
	if req.EmployeeID != nil {
		e.EmployeeID = *req.EmployeeID
	}
	if req.Department != nil {
		e.Department = *req.Department
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.HireDate != nil {
		d, err := parseDate(*req.HireDate)
		if err != nil {
			return employeeerrors.ErrInvalidDate
		}
		e.HireDate = d
	}
	if req.Address != nil {
		e.Address = *req.Address
	}
	if req.DateOfBirth != nil {
		d, err := parseDate(*req.DateOfBirth)
		if err != nil {
			return employeeerrors.ErrInvalidDate
		}
		e.DateOfBirth = d
	}
	if req.EmergencyContact != nil {
		e.EmergencyContact = *req.EmergencyContact
	}
	if req.EmergencyPhone != nil {
		e.EmergencyPhone = *req.EmergencyPhone
	}
	if req.Status != nil {
		e.Status = *req.Status
	}
	return nil
}

func profileToResponse(p *user.EmployeeProfile) EmployeeResponse {
	resp := EmployeeResponse{
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
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.HireDate != nil {
		resp.HireDate = p.HireDate.Format("2006-01-02")
	}
	if p.DateOfBirth != nil {
		resp.DateOfBirth = p.DateOfBirth.Format("2006-01-02")
	}
	return resp
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
