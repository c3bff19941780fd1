package services

import (
	"testing"
	"time"

	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/internal/testutil"
	"marketplace_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuthService(t *testing.T) (*AuthServiceImpl, *recordingNotifications, *clock, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	notifications := newRecordingNotifications()
	clk := &clock{t: time.Now()}
	svc := NewAuthService(repositories.NewUserRepository(), auth.NewTokenManager("test-secret", time.Hour), notifications).(*AuthServiceImpl)
	svc.now = clk.Now
	return svc, notifications, clk, db
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	svc, notifications, _, db := newTestAuthService(t)

	res, err := svc.Signup(db, &dto.SignupRequest{
		Email:    "brand@test.com",
		Password: "secret123",
		Role:     "brand",
		Name:     "Acme",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, models.UserRoleBrand, res.User.Role)
	assert.False(t, res.User.ProfileCompleted)
	assert.NotEmpty(t, notifications.verifications["brand@test.com"], "verification email should be queued")

	_, err = svc.Login(db, &dto.LoginRequest{Email: "brand@test.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(db, &dto.LoginRequest{Email: "nobody@test.com", Password: "secret123"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	login, err := svc.Login(db, &dto.LoginRequest{Email: "brand@test.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
	assert.Equal(t, res.User.ID, login.User.ID)
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	svc, _, _, db := newTestAuthService(t)

	req := &dto.SignupRequest{Email: "dup@test.com", Password: "secret123", Role: "influencer", Name: "One"}
	_, err := svc.Signup(db, req)
	require.NoError(t, err)

	_, err = svc.Signup(db, req)
	assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	svc, notifications, clk, db := newTestAuthService(t)

	res, err := svc.Signup(db, &dto.SignupRequest{Email: "v@test.com", Password: "secret123", Role: "brand", Name: "V"})
	require.NoError(t, err)
	token := notifications.verifications["v@test.com"]

	assert.ErrorIs(t, svc.VerifyEmail(db, "not-a-token"), apperrors.ErrInvalidResetToken)

	require.NoError(t, svc.VerifyEmail(db, token))
	user, err := svc.GetProfile(db, res.User.ID)
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)

	// Tokens are single use.
	assert.ErrorIs(t, svc.VerifyEmail(db, token), apperrors.ErrInvalidResetToken)

	_, err = svc.Signup(db, &dto.SignupRequest{Email: "late@test.com", Password: "secret123", Role: "brand", Name: "L"})
	require.NoError(t, err)
	clk.Advance(emailVerificationTTL + time.Minute)
	assert.ErrorIs(t, svc.VerifyEmail(db, notifications.verifications["late@test.com"]), apperrors.ErrInvalidResetToken)
}

func TestAuthService_PasswordReset(t *testing.T) {
	svc, notifications, clk, db := newTestAuthService(t)
	user := testutil.CreateUser(t, db, models.UserRoleInfluencer, "Reset Me")

	require.NoError(t, svc.ForgotPassword(db, "unknown@test.com"), "unknown emails are not revealed")
	assert.Empty(t, notifications.resets["unknown@test.com"])

	require.NoError(t, svc.ForgotPassword(db, user.Email))
	token := notifications.resets[user.Email]
	require.NotEmpty(t, token)

	err := svc.ResetPassword(db, token, "123")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	require.NoError(t, svc.ResetPassword(db, token, "brand-new-pass"))
	_, err = svc.Login(db, &dto.LoginRequest{Email: user.Email, Password: "brand-new-pass"})
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.ResetPassword(db, token, "another-pass"), apperrors.ErrInvalidResetToken)

	require.NoError(t, svc.ForgotPassword(db, user.Email))
	clk.Advance(passwordResetTTL + time.Second)
	assert.ErrorIs(t, svc.ResetPassword(db, notifications.resets[user.Email], "another-pass"), apperrors.ErrInvalidResetToken)
}

func TestAuthService_ProfileAndChangePassword(t *testing.T) {
	svc, _, _, db := newTestAuthService(t)
	user := testutil.CreateUser(t, db, models.UserRoleBrand, "Before")

	updated, err := svc.UpdateProfile(db, user.ID, &dto.UpdateProfileRequest{
		Name:        ptr("After"),
		Location:    ptr("Almaty"),
		SocialMedia: &models.SocialMedia{Instagram: "@after"},
	})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "Almaty", updated.Location)
	assert.Equal(t, "@after", updated.SocialMedia.Data().Instagram)

	err = svc.ChangePassword(db, user.ID, &dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newsecret"})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	err = svc.ChangePassword(db, user.ID, &dto.ChangePasswordRequest{CurrentPassword: testutil.DefaultPassword, NewPassword: "newsecret"})
	require.NoError(t, err)
	_, err = svc.Login(db, &dto.LoginRequest{Email: user.Email, Password: "newsecret"})
	assert.NoError(t, err)

	_, err = svc.GetProfile(db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
