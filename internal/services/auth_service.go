package services

import (
	"errors"
	"time"

	"marketplace_backend/internal/auth"
	"marketplace_backend/internal/logger"
	"marketplace_backend/internal/models"
	"marketplace_backend/internal/repositories"
	"marketplace_backend/internal/services/dto"
	"marketplace_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	emailVerificationTTL = 24 * time.Hour
	passwordResetTTL     = time.Hour
)

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(db *gorm.DB, email string) error
	ResetPassword(db *gorm.DB, token, newPassword string) error
	VerifyEmail(db *gorm.DB, token string) error
	GetProfile(db *gorm.DB, userID string) (*models.User, error)
	UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
	ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	tokens        *auth.TokenManager
	notifications NotificationService
	now           func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	notifications NotificationService,
) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		tokens:        tokens,
		notifications: notifications,
		now:           time.Now,
	}
}

func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.AuthResponse, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	rawToken, digest, err := auth.NewOpaqueToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	expires := s.now().Add(emailVerificationTTL)

	user := &models.User{
		Email:                    req.Email,
		PasswordHash:             hash,
		Role:                     models.UserRole(req.Role),
		Name:                     req.Name,
		EmailVerificationToken:   digest,
		EmailVerificationExpires: &expires,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifications.SendEmailVerification(contextOf(db), user.Email, user.Name, rawToken)

	return &dto.AuthResponse{Token: token, User: dto.NewAuthUser(user)}, nil
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{Token: token, User: dto.NewAuthUser(user)}, nil
}

// ForgotPassword succeeds for unknown addresses too, so callers cannot probe
// which emails are registered.
func (s *AuthServiceImpl) ForgotPassword(db *gorm.DB, email string) error {
	ctx := contextOf(db)

	user, err := s.userRepo.FindByEmail(db, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxInfo(ctx, "Password reset requested for unknown email")
			return nil
		}
		return apperrors.InternalError(err)
	}

	rawToken, digest, err := auth.NewOpaqueToken()
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
		"password_reset_token":   digest,
		"password_reset_expires": s.now().Add(passwordResetTTL),
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	s.notifications.SendPasswordReset(ctx, user.Email, rawToken)
	return nil
}

func (s *AuthServiceImpl) ResetPassword(db *gorm.DB, token, newPassword string) error {
	if len(newPassword) < auth.MinPasswordLength {
		return apperrors.ValidationError(map[string]string{"password": "Password must be at least 6 characters"})
	}

	user, err := s.userRepo.FindByResetToken(db, auth.HashOpaqueToken(token))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}
	if user.PasswordResetExpires == nil || !s.now().Before(*user.PasswordResetExpires) {
		return apperrors.ErrInvalidResetToken
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	err = s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
		"password_hash":          hash,
		"password_reset_token":   "",
		"password_reset_expires": nil,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, auth.HashOpaqueToken(token))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return apperrors.InternalError(err)
	}
	if user.EmailVerificationExpires == nil || !s.now().Before(*user.EmailVerificationExpires) {
		return apperrors.ErrInvalidResetToken
	}

	err = s.userRepo.UpdateFields(db, user.ID, map[string]interface{}{
		"email_verified":             true,
		"email_verification_token":   "",
		"email_verification_expires": nil,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) GetProfile(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) UpdateProfile(db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Avatar != nil {
		fields["avatar"] = *req.Avatar
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if req.Website != nil {
		fields["website"] = *req.Website
	}
	if req.Location != nil {
		fields["location"] = *req.Location
	}
	if req.Phone != nil {
		fields["phone"] = *req.Phone
	}
	if req.SocialMedia != nil {
		fields["social_media"] = datatypes.NewJSONType(*req.SocialMedia)
	}

	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(db, userID, fields); err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, apperrors.InternalError(err)
		}
	}

	return s.GetProfile(db, userID)
}

func (s *AuthServiceImpl) ChangePassword(db *gorm.DB, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.GetProfile(db, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return apperrors.ErrWrongPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.UpdateFields(db, userID, map[string]interface{}{"password_hash": hash}); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
