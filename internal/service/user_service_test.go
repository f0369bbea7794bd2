package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pta-server/internal/auth"
	"pta-server/shared/models"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful registration", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.users.On("GetByUsername", ctx, "ash_ketchum").Return(nil, models.ErrNotFound).Once()
		m.users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
			return u.Username == "ash_ketchum" &&
				u.SiteRole == models.SiteRoleActive &&
				u.PasswordHash != "pikachu123" &&
				u.ActivityToken != ""
		})).Return(nil).Once()

		user, err := svcs.Users.Register(ctx, "ash_ketchum", "pikachu123")

		require.NoError(t, err)
		assert.True(t, auth.VerifySecret("pikachu123", user.PasswordHash))
		assert.NoError(t, auth.ValidateToken(user.ActivityToken))
		m.users.AssertExpectations(t)
	})

	t.Run("Username already exists", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.users.On("GetByUsername", ctx, "ash_ketchum").
			Return(&models.User{Username: "ash_ketchum"}, nil).Once()

		_, err := svcs.Users.Register(ctx, "ash_ketchum", "pikachu123")

		assert.ErrorIs(t, err, models.ErrUserExists)
		m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Username too short", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.Users.Register(ctx, "ab", "pikachu123")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})

	t.Run("Password too short", func(t *testing.T) {
		svcs, _ := newTestServices(t)
		_, err := svcs.Users.Register(ctx, "ash_ketchum", "pika")
		assert.ErrorIs(t, err, models.ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hash, err := auth.HashSecret("pikachu123")
	if err != nil {
		t.Fatal(err)
	}
	stored := func() *models.User {
		return &models.User{
			UserID:       uuid.New(),
			Username:     "ash_ketchum",
			PasswordHash: hash,
		}
	}

	t.Run("Successful login issues a fresh token", func(t *testing.T) {
		svcs, m := newTestServices(t)
		user := stored()
		m.users.On("GetByUsername", ctx, "ash_ketchum").Return(user, nil).Once()
		m.users.On("UpdateActivityToken", ctx, user.UserID, mock.AnythingOfType("string")).Return(nil).Once()
		m.tokens.On("Save", ctx, user.UserID, mock.AnythingOfType("string"), auth.TokenTTL).Return(nil).Once()
		m.users.On("SetOnline", ctx, user.UserID, true).Return(nil).Once()

		loggedIn, token, err := svcs.Users.Login(ctx, "ash_ketchum", "pikachu123")

		require.NoError(t, err)
		assert.NoError(t, auth.ValidateToken(token))
		assert.Equal(t, token, loggedIn.ActivityToken)
		assert.True(t, loggedIn.IsOnline)
		m.users.AssertExpectations(t)
		m.tokens.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.users.On("GetByUsername", ctx, "ash_ketchum").Return(stored(), nil).Once()

		_, _, err := svcs.Users.Login(ctx, "ash_ketchum", "charizard")

		assert.ErrorIs(t, err, models.ErrUnauthorized)
		m.users.AssertNotCalled(t, "UpdateActivityToken", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown username reads as unauthorized", func(t *testing.T) {
		svcs, m := newTestServices(t)
		m.users.On("GetByUsername", ctx, "nobody").Return(nil, models.ErrNotFound).Once()

		_, _, err := svcs.Users.Login(ctx, "nobody", "whatever")

		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("Clears presence and the stored token", func(t *testing.T) {
		svcs, m := newTestServices(t)
		userID := uuid.New()
		m.users.On("SetOnline", ctx, userID, false).Return(nil).Once()
		m.tokens.On("Delete", ctx, userID).Return(nil).Once()
		m.users.On("UpdateActivityToken", ctx, userID, "").Return(nil).Once()

		err := svcs.Users.Logout(ctx, userID)

		require.NoError(t, err)
		m.users.AssertExpectations(t)
		m.tokens.AssertExpectations(t)
	})
}
