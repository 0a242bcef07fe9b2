package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/security"
	"github.com/ahmetcoskunkizilkaya/ideahub-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_Defaults(t *testing.T) {
	e := newEnv(t)

	resp, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "  Ada  ",
		Email:    " Ada@Example.COM ",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ada", resp.User.Name)
	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.Equal(t, models.RoleEmployee, resp.User.Role)
}

func TestRegister_Mentor(t *testing.T) {
	e := newEnv(t)
	id := e.register(t, "grace", models.RoleMentor)
	assert.Equal(t, models.RoleMentor, id.Role)
}

func TestRegister_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{"missing email", dto.RegisterRequest{Name: "A", Password: "secret123"}},
		{"missing name", dto.RegisterRequest{Email: "a@example.com", Password: "secret123"}},
		{"bad email", dto.RegisterRequest{Name: "A", Email: "nope", Password: "secret123"}},
		{"short password", dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "12345"}},
		{"admin self-assigned", dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123", Role: "admin"}},
		{"unknown role", dto.RegisterRequest{Name: "A", Email: "a@example.com", Password: "secret123", Role: "ceo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			_, err := e.auth.Register(context.Background(), &tt.req)
			assert.ErrorIs(t, err, services.ErrValidation)
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.register(t, "ada", "")

	_, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Other",
		Email:    "ADA@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, services.ErrDuplicateIdentity)
}

func TestLogin(t *testing.T) {
	e := newEnv(t)
	e.register(t, "ada", "")
	ctx := context.Background()

	resp, err := e.auth.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, wrongPassword := e.auth.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "nope-nope"})
	_, unknownEmail := e.auth.Login(ctx, &dto.LoginRequest{Email: "who@example.com", Password: "secret123"})
	assert.ErrorIs(t, wrongPassword, services.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestVerify_ReadsCurrentRole(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	resp, err := e.auth.Register(ctx, &dto.RegisterRequest{Name: "ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	id, err := e.auth.Verify(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, id.Role)

	e.store.SetRole(resp.User.ID, models.RoleAdmin)
	id, err = e.auth.Verify(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, id.Role)
	assert.True(t, id.IsAdmin())
}

func TestVerify_DeletedUser(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	resp, err := e.auth.Register(ctx, &dto.RegisterRequest{Name: "ada", Email: "ada@example.com", Password: "secret123"})
	require.NoError(t, err)

	e.store.DeleteUser(resp.User.ID)

	_, err = e.auth.Verify(ctx, resp.Token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestVerify_BadTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	id := e.register(t, "ada", "")

	expired, err := security.NewJWTSigner("test-secret", -time.Minute).Sign(id.UserID, id.Email, id.Role)
	require.NoError(t, err)
	_, err = e.auth.Verify(ctx, expired)
	assert.ErrorIs(t, err, services.ErrExpiredToken)

	forged, err := security.NewJWTSigner("other-secret", time.Hour).Sign(id.UserID, id.Email, id.Role)
	require.NoError(t, err)
	_, err = e.auth.Verify(ctx, forged)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	_, err = e.auth.Verify(ctx, "not-a-token")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
