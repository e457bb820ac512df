package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-ems/internal/auth/errors"
	"go-ems/internal/employee"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/user"
	usererrors "go-ems/internal/user/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TokenTTL is how long an issued session token stays valid.
const TokenTTL = 7 * 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserResponse, error)

	Login(ctx context.Context, email, password string) (token string, resp UserResponse, err error)

	GetProfile(ctx context.Context, userID string) (*UserResponse, error)
}

type service struct {
	users  user.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(users user.Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{users: users, rdb: rdb, logger: l}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("register requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	// Friendly pre-check; the unique constraint on users.email is the
	// authoritative guard under concurrency.
	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return UserResponse{}, usererrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("register email lookup failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}

	// Hash on the write path. Persistence never sees plaintext.
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("register hash password failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, err
	}

	// Self-registration always yields a plain employee account.
	u := &user.User{
		ID:        uuid.New(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		Phone:     req.Phone,
		Role:      user.RoleEmployee,
		IsActive:  true,
	}

	if err := s.users.Create(ctx, u); err != nil {
		s.logger.Error("register persist failed", zap.String("request_id", rid), zap.Error(err))
		return UserResponse{}, mapUserPersistError(err)
	}

	// A fresh employee account is an onboarding candidate.
	if s.rdb != nil {
		if err := s.rdb.Del(ctx, employee.OnboardableUsersCacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate onboardable users cache", zap.Error(err))
		}
	}

	s.logger.Info("register success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
	)

	return mapUserResponse(u), nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, UserResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("login requested", zap.String("request_id", rid), zap.String("email", email))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Only a missing account reads as bad credentials; a storage
		// fault must not masquerade as a 401.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", UserResponse{}, autherrors.ErrInvalidCredentials
		}
		s.logger.Error("login email lookup failed", zap.String("request_id", rid), zap.Error(err))
		return "", UserResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", UserResponse{}, autherrors.ErrInvalidCredentials
	}

	// Checked only after the credentials verify, so a deactivated
	// account is never an enumeration oracle.
	if !u.IsActive {
		s.logger.Warn("login rejected for deactivated account",
			zap.String("request_id", rid),
			zap.String("user_id", u.ID.String()),
		)
		return "", UserResponse{}, autherrors.ErrAccountDeactivated
	}

	token, err := generateToken(u.ID.String(), TokenTTL)
	if err != nil {
		s.logger.Error("login token generation failed", zap.String("request_id", rid), zap.Error(err))
		return "", UserResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.logger.Info("login success",
		zap.String("request_id", rid),
		zap.String("user_id", u.ID.String()),
	)

	return token, mapUserResponse(u), nil
}

func (s *service) GetProfile(ctx context.Context, userID string) (*UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, usererrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		// The account can disappear between token issuance and use.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		s.logger.Error("profile lookup failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	resp := mapUserResponse(u)
	return &resp, nil
}

// generateToken signs a session token carrying the user id as its sole claim.
func generateToken(userID string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
