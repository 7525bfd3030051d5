package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/michael123610/codesnippet-hub/config"
	"github.com/michael123610/codesnippet-hub/models"
)

func TestRegisterIssuesToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	resp, err := svc.Register(models.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return config.JWTSecret, nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, float64(resp.User.ID), claims["user_id"])

	stored := repo.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret123")))
}

func TestRegisterConflict(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Register(models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Register(models.RegisterRequest{Username: "alice2", Email: "alice@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.IsType(t, models.ErrorConflict{}, err)

	_, err = svc.Register(models.RegisterRequest{Username: "alice", Email: "other@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.IsType(t, models.ErrorConflict{}, err)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Register(models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.Login(models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.Login(models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.Error(t, err)
	assert.IsType(t, models.ErrorUnauthorized{}, err)
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	_, err := svc.Register(models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)

	resp, err := svc.Login(models.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Username)
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo())

	_, err := svc.GetUserByID(42)
	require.Error(t, err)
	assert.IsType(t, models.ErrorNotFound{}, err)
}
