package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/mail"
	"github.com/spec-kit/realty-service/internal/repository"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

// AuthService coordinates the credential lifecycle: registration, account
// activation, login, and the forgot/reset password flow.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	mailer     mail.Mailer
	bcryptCost int
	baseURL    string
}

// AuthDependencies encapsulates collaborator requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
	Mailer   mail.Mailer
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes, cfg.Auth.PasswordResetTTLMinutes),
		mailer:     deps.Mailer,
		bcryptCost: cfg.Auth.BcryptCost,
		baseURL:    cfg.App.PublicBaseURL,
	}
}

// Register creates a new inactive account and sends the activation mail.
// The mail send is a single attempt after the insert; a failure surfaces as
// an internal error while the account stays persisted.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail()
	} else if err != pgx.ErrNoRows {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     false,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The pre-check races with a concurrent register; the unique
		// constraint on email is the authority.
		if isUniqueViolation(err) {
			return nil, apperrors.NewDuplicateEmail()
		}
		return nil, apperrors.MapError(err)
	}

	subject, body := mail.ActivationMessage(s.baseURL, user.ID)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// Login authenticates an active account and issues a session token. Unknown
// email, wrong password and inactive account all map to the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewInvalidCredentials()
	}
	if !user.IsActive {
		return "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, expiresAt, err := s.tokenMgr.GenerateSessionToken(user)
	if err != nil {
		return "", time.Time{}, apperrors.MapError(err)
	}
	return token, expiresAt, nil
}

// Activate flips an inactive account to active.
func (s *AuthService) Activate(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, apperrors.MapError(err)
	}
	if user.IsActive {
		return nil, apperrors.NewAlreadyActive()
	}

	user.IsActive = true
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// ForgotPassword issues a reset token, persists it on the account and mails
// the reset link.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user")
		}
		return apperrors.MapError(err)
	}

	token, expiresAt, err := s.tokenMgr.GenerateResetToken(user.ID)
	if err != nil {
		return apperrors.MapError(err)
	}

	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiresAt
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}

	subject, body := mail.PasswordResetMessage(s.baseURL, token)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
// The token must carry a valid signature, be unexpired, and match the token
// persisted on the account; consuming it clears the stored fields so a
// replay fails.
func (s *AuthService) ResetPassword(ctx context.Context, tokenStr, newPassword string) error {
	claims, err := s.tokenMgr.ParseToken(tokenStr)
	if err != nil || claims.Purpose != auth.PurposeReset {
		return apperrors.NewInvalidResetToken()
	}
	userID, err := claims.UserID()
	if err != nil {
		return apperrors.NewInvalidResetToken()
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewInvalidResetToken()
		}
		return apperrors.MapError(err)
	}
	if user.ResetToken == nil || *user.ResetToken != tokenStr || !user.HasPendingReset(time.Now()) {
		return apperrors.NewInvalidResetToken()
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.MapError(err)
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	if err := s.users.Update(ctx, user); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
