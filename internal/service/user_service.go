package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pta-server/internal/auth"
	"pta-server/internal/repository"
	"pta-server/shared/models"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 32
	minPasswordLength = 6
)

// UserService covers site accounts: registration, login and presence.
type UserService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	// Login verifies credentials and issues a fresh activity token.
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// Compile-time check
var _ UserService = (*userServiceImpl)(nil)

type userServiceImpl struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	logger *zap.Logger
}

func NewUserService(users repository.UserRepository, tokens repository.TokenRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{
		users:  users,
		tokens: tokens,
		logger: logger.Named("UserService"),
	}
}

func (s *userServiceImpl) Register(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return nil, fmt.Errorf("username must be %d to %d characters: %w",
			minUsernameLength, maxUsernameLength, models.ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters: %w",
			minPasswordLength, models.ErrInvalidInput)
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil, models.ErrUserExists
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashSecret(password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		UserID:        uuid.New(),
		Username:      username,
		PasswordHash:  hash,
		ActivityToken: auth.GenerateToken(),
		SiteRole:      models.SiteRoleActive,
		IsOnline:      false,
		DateCreated:   time.Now().UTC(),
		Games:         []uuid.UUID{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("User registered", zap.String("userID", user.UserID.String()))
	return user, nil
}

func (s *userServiceImpl) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrUnauthorized
		}
		return nil, "", err
	}
	if !auth.VerifySecret(password, user.PasswordHash) {
		return nil, "", models.ErrUnauthorized
	}

	token := auth.GenerateToken()
	if err := s.users.UpdateActivityToken(ctx, user.UserID, token); err != nil {
		return nil, "", err
	}
	if err := s.tokens.Save(ctx, user.UserID, token, auth.TokenTTL); err != nil {
		s.logger.Warn("Failed to mirror token on login",
			zap.String("userID", user.UserID.String()), zap.Error(err))
	}
	if err := s.users.SetOnline(ctx, user.UserID, true); err != nil {
		s.logger.Warn("Failed to flag user online",
			zap.String("userID", user.UserID.String()), zap.Error(err))
	}
	user.ActivityToken = token
	user.IsOnline = true
	return user, token, nil
}

func (s *userServiceImpl) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.SetOnline(ctx, userID, false); err != nil {
		return err
	}
	if err := s.tokens.Delete(ctx, userID); err != nil {
		s.logger.Warn("Failed to drop token mirror on logout",
			zap.String("userID", userID.String()), zap.Error(err))
	}
	// An empty stored token can never match a presented one.
	return s.users.UpdateActivityToken(ctx, userID, "")
}

func (s *userServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokens.Delete(ctx, userID); err != nil {
		s.logger.Warn("Failed to drop token mirror on delete",
			zap.String("userID", userID.String()), zap.Error(err))
	}
	return s.users.Delete(ctx, userID)
}
