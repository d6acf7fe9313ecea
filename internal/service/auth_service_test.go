package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autocare/internal/apperrors"
	"autocare/internal/repository"
)

func TestSignUpAndSignIn(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(repository.NewFixtureStore())
	ctx := context.Background()

	user, err := svc.SignUp(ctx, "Jane Roe", "Jane.Roe@Example.com", "hunter22", "(555) 987-6543")
	require.NoError(t, err)
	assert.Equal(t, "jane.roe@example.com", user.Email)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	signedIn, token, err := svc.SignIn(ctx, "jane.roe@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, signedIn.ID)
	assert.NotEmpty(t, token)
}

func TestSignInWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(repository.NewFixtureStore())
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "Jane Roe", "jane.roe@example.com", "hunter22", "")
	require.NoError(t, err)

	_, _, err = svc.SignIn(ctx, "jane.roe@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	_, _, err = svc.SignIn(ctx, "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(repository.NewFixtureStore())
	ctx := context.Background()

	// Seeded demo account already owns this address.
	_, err := svc.SignUp(ctx, "Impostor", "john.doe@example.com", "hunter22", "")
	assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
}

func TestUpdateProfile(t *testing.T) {
	svc := NewAuthService(repository.NewFixtureStore())
	ctx := context.Background()

	updated, err := svc.UpdateProfile(ctx, "user-1", "Johnathan Doe", "(555) 000-1111")
	require.NoError(t, err)
	assert.Equal(t, "Johnathan Doe", updated.Name)
	assert.Equal(t, "(555) 000-1111", updated.Phone)
	// Email is the login identity and must survive a profile update.
	assert.Equal(t, "john.doe@example.com", updated.Email)

	_, err = svc.UpdateProfile(ctx, "user-1", "  ", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpdateProfile(ctx, "user-404", "Ghost", "")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestChangePassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc := NewAuthService(repository.NewFixtureStore())
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "user-1", "wrong", "new-password")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	err = svc.ChangePassword(ctx, "user-1", "password123", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	require.NoError(t, svc.ChangePassword(ctx, "user-1", "password123", "new-password"))

	_, _, err = svc.SignIn(ctx, "john.doe@example.com", "password123")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	_, _, err = svc.SignIn(ctx, "john.doe@example.com", "new-password")
	assert.NoError(t, err)
}

func TestSignUpMissingFields(t *testing.T) {
	svc := NewAuthService(repository.NewFixtureStore())

	_, err := svc.SignUp(context.Background(), "", "someone@example.com", "hunter22", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.SignUp(context.Background(), "Someone", "someone@example.com", "", "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
