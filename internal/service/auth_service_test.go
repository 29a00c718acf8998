package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/auth"
	"github.com/spec-kit/realty-service/internal/config"
	"github.com/spec-kit/realty-service/internal/domain"
	apperrors "github.com/spec-kit/realty-service/pkg/util"
)

func testConfig() config.Config {
	return config.Config{
		App: config.AppConfig{PublicBaseURL: "http://localhost:4000"},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 60,
			BcryptCost:              4,
		},
	}
}

func newAuthFixture() (*AuthService, *fakeUserRepo, *fakeMailer) {
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := NewAuthService(testConfig(), AuthDependencies{UserRepo: users, Mailer: mailer})
	return svc, users, mailer
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	return apperrors.ToDomainError(err).Code
}

func TestRegisterCreatesInactiveAccountAndSendsMail(t *testing.T) {
	svc, _, mailer := newAuthFixture()

	user, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.IsActive {
		t.Error("new account must start inactive")
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password stored in plaintext")
	}
	if err := auth.ComparePassword(user.PasswordHash, "hunter22"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if mailer.sentCount() != 1 {
		t.Errorf("sent %d mails, want 1", mailer.sentCount())
	}
	if !strings.Contains(mailer.sent[0].Body, "/api/activate/") {
		t.Errorf("activation mail missing link: %q", mailer.sent[0].Body)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, users, _ := newAuthFixture()

	if _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter22"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Other", "dana@example.com", "different")
	if code := errCode(t, err); code != "DUPLICATE_EMAIL" {
		t.Errorf("code = %q, want DUPLICATE_EMAIL", code)
	}
	if users.count() != 1 {
		t.Errorf("user count = %d, want 1", users.count())
	}
}

// blindUserRepo never sees existing rows on the email pre-check, simulating
// a concurrent register that slips between the check and the insert.
type blindUserRepo struct {
	*fakeUserRepo
}

func (r *blindUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func TestRegisterConcurrentDuplicateMapsToDuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewAuthService(testConfig(), AuthDependencies{
		UserRepo: &blindUserRepo{fakeUserRepo: users},
		Mailer:   &fakeMailer{},
	})
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "Other", "dana@example.com", "different")
	if code := errCode(t, err); code != "DUPLICATE_EMAIL" {
		t.Errorf("code = %q, want DUPLICATE_EMAIL (unique violation must not leak as 500)", code)
	}
	if users.count() != 1 {
		t.Errorf("user count = %d, want 1", users.count())
	}
}

func TestRegisterMailFailureSurfacesButKeepsAccount(t *testing.T) {
	svc, users, mailer := newAuthFixture()
	mailer.fail = true

	_, err := svc.Register(context.Background(), "Dana", "dana@example.com", "hunter22")
	if code := errCode(t, err); code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", code)
	}
	if users.count() != 1 {
		t.Errorf("user count = %d, want 1 (row stays after mail failure)", users.count())
	}
}

func TestLoginLifecycle(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Before activation the account cannot log in, and the error is
	// indistinguishable from a bad password or unknown email.
	_, _, err = svc.Login(ctx, "dana@example.com", "hunter22")
	inactiveCode := errCode(t, err)
	_, _, err = svc.Login(ctx, "dana@example.com", "wrong")
	wrongPassCode := errCode(t, err)
	_, _, err = svc.Login(ctx, "nobody@example.com", "hunter22")
	unknownCode := errCode(t, err)
	if inactiveCode != "INVALID_CREDENTIALS" || inactiveCode != wrongPassCode || inactiveCode != unknownCode {
		t.Errorf("login failures differ: %q %q %q", inactiveCode, wrongPassCode, unknownCode)
	}

	activated, err := svc.Activate(ctx, user.ID)
	if err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !activated.IsActive {
		t.Error("account not active after activation")
	}

	if _, err := svc.Activate(ctx, user.ID); errCode(t, err) != "ALREADY_ACTIVE" {
		t.Error("second activation must report ALREADY_ACTIVE")
	}

	token, expiresAt, err := svc.Login(ctx, "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login after activation: %v", err)
	}
	if token == "" {
		t.Error("empty session token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("token expiry %v not in the future", expiresAt)
	}

	claims, err := svc.TokenManager().ParseToken(token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Purpose != auth.PurposeSession {
		t.Errorf("purpose = %q, want session", claims.Purpose)
	}
}

func TestActivateUnknownUser(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if _, err := svc.Activate(context.Background(), 999); errCode(t, err) != "NOT_FOUND" {
		t.Error("activating unknown account must report NOT_FOUND")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, mailer := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Activate(ctx, user.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}

	if err := svc.ForgotPassword(ctx, "dana@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if mailer.sentCount() != 2 {
		t.Fatalf("sent %d mails, want 2 (activation + reset)", mailer.sentCount())
	}

	stored, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.ResetToken == nil {
		t.Fatal("reset token not persisted")
	}
	token := *stored.ResetToken

	if err := svc.ResetPassword(ctx, token, "new-password"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, _, err := svc.Login(ctx, "dana@example.com", "new-password"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, _, err := svc.Login(ctx, "dana@example.com", "hunter22"); err == nil {
		t.Error("old password still accepted")
	}

	// Single use: replaying the consumed token must fail.
	if err := svc.ResetPassword(ctx, token, "another"); errCode(t, err) != "INVALID_RESET_TOKEN" {
		t.Error("replayed reset token must report INVALID_RESET_TOKEN")
	}
}

func TestResetPasswordRejectsExpiredStoredToken(t *testing.T) {
	svc, users, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Activate(ctx, user.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if err := svc.ForgotPassword(ctx, "dana@example.com"); err != nil {
		t.Fatalf("forgot password: %v", err)
	}

	stored, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if stored.ResetToken == nil {
		t.Fatal("reset token not persisted")
	}
	token := *stored.ResetToken

	// Backdate the stored expiry; the JWT itself is still within its TTL,
	// but the account-side window has closed.
	expired := time.Now().Add(-time.Minute)
	stored.ResetTokenExpiresAt = &expired
	if err := users.Update(ctx, stored); err != nil {
		t.Fatalf("backdate expiry: %v", err)
	}

	if err := svc.ResetPassword(ctx, token, "new-password"); errCode(t, err) != "INVALID_RESET_TOKEN" {
		t.Error("expired stored token must report INVALID_RESET_TOKEN")
	}
	if _, _, err := svc.Login(ctx, "dana@example.com", "hunter22"); err != nil {
		t.Errorf("password must be unchanged after rejected reset: %v", err)
	}
}

func TestResetPasswordRejectsSessionToken(t *testing.T) {
	svc, _, _ := newAuthFixture()
	ctx := context.Background()

	user, err := svc.Register(ctx, "Dana", "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Activate(ctx, user.ID); err != nil {
		t.Fatalf("activate: %v", err)
	}
	token, _, err := svc.Login(ctx, "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.ResetPassword(ctx, token, "new-password"); errCode(t, err) != "INVALID_RESET_TOKEN" {
		t.Error("session token must not pass as reset token")
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture()
	if err := svc.ForgotPassword(context.Background(), "nobody@example.com"); errCode(t, err) != "NOT_FOUND" {
		t.Error("unknown email must report NOT_FOUND")
	}
}
