package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-ems/internal/employee"
	employeeerrors "go-ems/internal/employee/errors"
	employeeMock "go-ems/internal/employee/mock"
	"go-ems/internal/events"
	"go-ems/internal/messaging/kafka"
	kafkaMock "go-ems/internal/messaging/kafka/mock"
	"go-ems/internal/user"
	usererrors "go-ems/internal/user/errors"
	userMock "go-ems/internal/user/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type serviceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   employee.Service
	repo      *employeeMock.MockRepository
	users     *userMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	redisMock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	assert.NoError(t, err)

	rdb, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	users := userMock.NewMockRepository(ctrl)
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)

	svc := employee.NewServiceWithOutbox(gormDB, repo, users, outbox, rdb)

	return &serviceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		users:     users,
		outbox:    outbox,
		redisMock: redisMock,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		req := employee.CreateEmployeeRequest{
			UserID:     userID.String(),
			EmployeeID: "EMP001",
			Department: "Engineering",
			Position:   "Backend Engineer",
			Salary:     5000,
			HireDate:   "2026-01-15",
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)

		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(&user.User{ID: userID, Role: user.RoleEmployee, IsActive: true}, nil)
		deps.repo.EXPECT().
			FindByUserID(ctx, userID).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			ExistsByEmployeeID(ctx, req.EmployeeID, uuid.Nil).
			Return(false, nil)

		var created *employee.Employee
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				created = e
				return nil
			})

		var event kafka.OutboxEvent
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				event = e
				return nil
			})

		deps.redisMock.ExpectDel(employee.OnboardableUsersCacheKey).SetVal(1)

		deps.repo.EXPECT().
			FindByID(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, id uuid.UUID) (*employee.Employee, error) {
				assert.Equal(t, created.ID, id)
				return created, nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP001", resp.EmployeeID)
		assert.Equal(t, employee.StatusActive, resp.Status)
		assert.Equal(t, "2026-01-15", resp.HireDate)
		assert.Equal(t, userID.String(), resp.UserID)

		assert.Equal(t, events.EventEmployeeCreated, event.EventType)
		assert.Equal(t, events.EmployeeLifecycleTopic, event.Topic)
		assert.Equal(t, created.ID.String(), event.AggregateID)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("user not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		req := employee.CreateEmployeeRequest{UserID: userID.String(), EmployeeID: "EMP002"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("admin account is not eligible", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		req := employee.CreateEmployeeRequest{UserID: userID.String(), EmployeeID: "EMP003"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(&user.User{ID: userID, Role: user.RoleAdmin}, nil)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrUserNotEligible)
	})

	t.Run("user already has an employee record", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		req := employee.CreateEmployeeRequest{UserID: userID.String(), EmployeeID: "EMP004"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(&user.User{ID: userID, Role: user.RoleEmployee}, nil)
		deps.repo.EXPECT().
			FindByUserID(ctx, userID).
			Return(&employee.Employee{ID: uuid.New(), UserID: userID}, nil)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeRecordExists)
	})

	t.Run("duplicate employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		req := employee.CreateEmployeeRequest{UserID: userID.String(), EmployeeID: "EMP005"}

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(&user.User{ID: userID, Role: user.RoleEmployee}, nil)
		deps.repo.EXPECT().
			FindByUserID(ctx, userID).
			Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			ExistsByEmployeeID(ctx, req.EmployeeID, uuid.Nil).
			Return(true, nil)

		_, err := deps.service.Create(ctx, req)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeIDAlreadyExists)
	})

	t.Run("invalid user id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{
			UserID:     "not-a-uuid",
			EmployeeID: "EMP006",
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserID)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()

	strptr := func(s string) *string { return &s }
	f64ptr := func(f float64) *float64 { return &f }

	t.Run("sparse update touches only sent fields", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		emplID := uuid.New()
		userID := uuid.New()
		existing := &employee.Employee{
			ID:         emplID,
			EmployeeID: "EMP001",
			Department: "Engineering",
			Position:   "Backend Engineer",
			Salary:     5000,
			Status:     employee.StatusActive,
			UserID:     userID,
		}
		owner := &user.User{
			ID:        userID,
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Phone:     "081234567890",
			Role:      user.RoleEmployee,
		}

		req := employee.UpdateEmployeeRequest{
			FirstName: strptr("Janet"),
			Salary:    f64ptr(6000),
			// Explicit empty clears the field.
			Department: strptr(""),
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)

		deps.repo.EXPECT().FindByID(ctx, emplID).Return(existing, nil)
		deps.users.EXPECT().FindByID(ctx, userID).Return(owner, nil)

		deps.users.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *user.User) error {
				assert.Equal(t, "Janet", u.FirstName)
				assert.Equal(t, "Doe", u.LastName)
				assert.Equal(t, "jane@example.com", u.Email)
				return nil
			})
		deps.repo.EXPECT().
			Update(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, 6000.0, e.Salary)
				assert.Equal(t, "", e.Department)
				assert.Equal(t, "EMP001", e.EmployeeID)
				assert.Equal(t, "Backend Engineer", e.Position)
				return nil
			})

		deps.repo.EXPECT().FindByID(ctx, emplID).Return(existing, nil)

		_, err := deps.service.Update(ctx, emplID.String(), req)
		assert.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("email conflict rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		emplID := uuid.New()
		userID := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)

		deps.repo.EXPECT().
			FindByID(ctx, emplID).
			Return(&employee.Employee{ID: emplID, EmployeeID: "EMP001", UserID: userID}, nil)
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(&user.User{ID: userID, Email: "jane@example.com"}, nil)
		deps.users.EXPECT().
			ExistsByEmail(ctx, "taken@example.com", userID).
			Return(true, nil)

		_, err := deps.service.Update(ctx, emplID.String(), employee.UpdateEmployeeRequest{
			Email: strptr("taken@example.com"),
		})
		assert.ErrorIs(t, err, usererrors.ErrEmailAlreadyExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate employee id", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		emplID := uuid.New()
		userID := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)

		deps.repo.EXPECT().
			FindByID(ctx, emplID).
			Return(&employee.Employee{ID: emplID, EmployeeID: "EMP001", UserID: userID}, nil)
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(&user.User{ID: userID}, nil)
		deps.repo.EXPECT().
			ExistsByEmployeeID(ctx, "EMP999", emplID).
			Return(true, nil)

		_, err := deps.service.Update(ctx, emplID.String(), employee.UpdateEmployeeRequest{
			EmployeeID: strptr("EMP999"),
		})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeIDAlreadyExists)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		emplID := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.repo.EXPECT().
			FindByID(ctx, emplID).
			Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Update(ctx, emplID.String(), employee.UpdateEmployeeRequest{})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes employee and owning user together", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		emplID := uuid.New()
		userID := uuid.New()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)

		deps.repo.EXPECT().
			FindByID(ctx, emplID).
			Return(&employee.Employee{ID: emplID, EmployeeID: "EMP001", UserID: userID}, nil)
		deps.repo.EXPECT().Delete(ctx, emplID).Return(nil)
		deps.users.EXPECT().Delete(ctx, userID).Return(nil)

		var event kafka.OutboxEvent
		deps.outbox.EXPECT().WithTx(gomock.Any()).Return(deps.outbox)
		deps.outbox.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				event = e
				return nil
			})

		deps.redisMock.ExpectDel(employee.OnboardableUsersCacheKey).SetVal(1)

		err := deps.service.Delete(ctx, emplID.String())

		assert.NoError(t, err)
		assert.Equal(t, events.EventEmployeeDeleted, event.EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		emplID := uuid.New()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.users.EXPECT().WithTx(gomock.Any()).Return(deps.users)
		deps.repo.EXPECT().
			FindByID(ctx, emplID).
			Return(nil, gorm.ErrRecordNotFound)

		err := deps.service.Delete(ctx, emplID.String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("clamps page size and maps filters", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		deps.repo.EXPECT().
			FindPage(ctx, employee.ListFilter{
				Page:       1,
				Limit:      employee.MaxPageSize,
				Search:     "jane",
				Department: "Engineering",
				Status:     employee.StatusActive,
			}).
			Return([]employee.Employee{
				{ID: uuid.New(), EmployeeID: "EMP001", UserID: uuid.New()},
			}, int64(1), nil)

		rows, pagination, err := deps.service.List(ctx, employee.ListQuery{
			Page:       0,
			Limit:      10000,
			Search:     "jane",
			Department: "Engineering",
			Status:     employee.StatusActive,
		})

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, int64(1), pagination.TotalItems)
		assert.Equal(t, 1, pagination.CurrentPage)
	})
}

func TestEmployeeService_OnboardableUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		cached := []employee.AccountResponse{{ID: uuid.NewString(), Email: "jane@example.com"}}
		payload, _ := json.Marshal(cached)
		deps.redisMock.ExpectGet(employee.OnboardableUsersCacheKey).SetVal(string(payload))

		users, err := deps.service.OnboardableUsers(ctx)

		assert.NoError(t, err)
		assert.Equal(t, cached, users)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("cache miss queries and fills the cache", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		rows := []user.User{{ID: userID, Email: "jane@example.com", Role: user.RoleEmployee}}
		expected, _ := json.Marshal([]employee.AccountResponse{
			{ID: userID.String(), Email: "jane@example.com", Role: user.RoleEmployee},
		})

		deps.redisMock.ExpectGet(employee.OnboardableUsersCacheKey).RedisNil()
		deps.users.EXPECT().FindOnboardable(ctx).Return(rows, nil)
		deps.redisMock.ExpectSet(employee.OnboardableUsersCacheKey, expected, time.Hour).SetVal("OK")

		users, err := deps.service.OnboardableUsers(ctx)

		assert.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Equal(t, userID.String(), users[0].ID)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_MyProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(&user.User{
				ID:    userID,
				Email: "jane@example.com",
				Employee: &user.EmployeeProfile{
					ID:         uuid.New(),
					EmployeeID: "EMP001",
					UserID:     userID,
				},
			}, nil)

		empl, owner, err := deps.service.MyProfile(ctx, userID.String())

		assert.NoError(t, err)
		assert.Equal(t, "EMP001", empl.EmployeeID)
		assert.Equal(t, "jane@example.com", owner.Email)
	})

	t.Run("not onboarded yet", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(&user.User{ID: userID}, nil)

		_, _, err := deps.service.MyProfile(ctx, userID.String())
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeProfileNotFound)
	})

	t.Run("storage failure is not a missing profile", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		userID := uuid.New()
		deps.users.EXPECT().
			FindByID(ctx, userID).
			Return(nil, assert.AnError)

		_, _, err := deps.service.MyProfile(ctx, userID.String())

		assert.ErrorIs(t, err, assert.AnError)
		assert.NotErrorIs(t, err, employeeerrors.ErrEmployeeProfileNotFound)
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed id reads as not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}
