package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sauravsingh6568/paonflowers-sub000/internal/apperr"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/config"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/identity"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/otp"
	"github.com/sauravsingh6568/paonflowers-sub000/internal/sms"
)

const smsBodyFormat = "Your Paon Flowers verification code is %s. It expires in %d minutes."

// Service owns the phone-number login lifecycle: issuing one-time codes,
// verifying them, minting session tokens and maintaining the profile state.
type Service struct {
	cfg    config.Config
	users  identity.Repository
	codes  otp.Repository
	sender sms.Sender
	tokens *TokenManager
	logger *slog.Logger
}

// NewService wires the OTP authentication service.
func NewService(cfg config.Config, users identity.Repository, codes otp.Repository, sender sms.Sender, tokens *TokenManager, logger *slog.Logger) *Service {
	return &Service{cfg: cfg, users: users, codes: codes, sender: sender, tokens: tokens, logger: logger}
}

// SendCode generates a fresh 6-digit code, persists it with the configured
// TTL and dispatches it to the phone. Previously issued unexpired codes are
// left untouched; only the most recent one will verify.
func (s *Service) SendCode(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if !validPhone(phone) {
		return apperr.Validation(map[string]string{"phone": "must be E.164: a leading + followed by 10-15 digits"})
	}

	code, err := otp.GenerateCode()
	if err != nil {
		s.logger.Error("generate code", "error", err)
		return apperr.Internal()
	}

	now := time.Now().UTC()
	record := otp.Code{
		Phone:     phone,
		Code:      code,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.OTPTTL),
	}
	if err := s.codes.Insert(ctx, record); err != nil {
		s.logger.Error("persist code", "error", err)
		return apperr.Internal()
	}

	body := fmt.Sprintf(smsBodyFormat, code, int(s.cfg.OTPTTL.Minutes()))
	if err := s.sender.Send(ctx, phone, body); err != nil {
		s.logger.Error("dispatch code", "phone", phone, "error", err)
		return apperr.DispatchFailed()
	}
	return nil
}

// VerifyResult is returned on a successful code verification.
type VerifyResult struct {
	Token string
	User  identity.User
}

// VerifyCode checks the supplied code against the most recently issued record
// for the phone. Success consumes every outstanding code for the number, then
// resolves the identity (creating it on first contact) and issues a session
// token. Every failure collapses into the same undifferentiated error.
func (s *Service) VerifyCode(ctx context.Context, phone, code string) (VerifyResult, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)

	fields := map[string]string{}
	if !validPhone(phone) {
		fields["phone"] = "must be E.164: a leading + followed by 10-15 digits"
	}
	if !validCode(code) {
		fields["code"] = "must be a 6-digit code"
	}
	if len(fields) > 0 {
		return VerifyResult{}, apperr.Validation(fields)
	}

	record, err := s.codes.LatestByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return VerifyResult{}, apperr.InvalidCode()
		}
		s.logger.Error("load code", "error", err)
		return VerifyResult{}, apperr.Internal()
	}

	now := time.Now().UTC()
	if record.Expired(now) || record.Attempts >= s.cfg.OTPMaxAttempts {
		return VerifyResult{}, apperr.InvalidCode()
	}
	if record.Code != code {
		if err := s.codes.IncrementAttempts(ctx, record.ID); err != nil {
			s.logger.Warn("record failed attempt", "error", err)
		}
		return VerifyResult{}, apperr.InvalidCode()
	}

	// Sole invalidation mechanism: success purges every record for the phone.
	if err := s.codes.DeleteByPhone(ctx, phone); err != nil {
		s.logger.Error("purge codes", "error", err)
		return VerifyResult{}, apperr.Internal()
	}

	role := identity.RoleStandard
	if s.cfg.AdminPhone != "" && phone == s.cfg.AdminPhone {
		role = identity.RoleAdministrator
	}
	user, created, err := s.users.InsertOrGet(ctx, identity.User{
		Phone:     phone,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error("resolve identity", "error", err)
		return VerifyResult{}, apperr.Internal()
	}
	if created {
		s.logger.Info("identity created", "user_id", user.ID, "role", string(user.Role))
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("issue token", "error", err)
		return VerifyResult{}, apperr.Internal()
	}
	return VerifyResult{Token: token, User: user}, nil
}

// Me returns the current user, or found=false if the record has since been
// removed from the store.
func (s *Service) Me(ctx context.Context, userID string) (identity.User, bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return identity.User{}, false, nil
		}
		s.logger.Error("load user", "error", err)
		return identity.User{}, false, apperr.Internal()
	}
	return user, true, nil
}

// UpdateProfile persists the profile fields and unconditionally marks the
// profile complete.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update identity.ProfileUpdate) (identity.User, error) {
	update.Name = strings.TrimSpace(update.Name)
	update.Email = strings.TrimSpace(update.Email)
	update.Location = strings.TrimSpace(update.Location)

	fields := map[string]string{}
	if utf8.RuneCountInString(update.Name) < 2 {
		fields["name"] = "must be at least 2 characters"
	}
	if update.Email != "" && !validEmail(update.Email) {
		fields["email"] = "must be a valid email address"
	}
	if update.Location != "" && utf8.RuneCountInString(update.Location) < 2 {
		fields["location"] = "must be at least 2 characters"
	}
	if len(fields) > 0 {
		return identity.User{}, apperr.Validation(fields)
	}

	user, err := s.users.UpdateProfile(ctx, userID, update)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return identity.User{}, apperr.Unauthorized("user not found")
		}
		s.logger.Error("update profile", "error", err)
		return identity.User{}, apperr.Internal()
	}
	return user, nil
}
