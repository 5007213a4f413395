package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/events"
	"github.com/ldelvaux/pcforge/internal/hash"
	"github.com/ldelvaux/pcforge/internal/logging"
	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/repo"
	"github.com/ldelvaux/pcforge/internal/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Producer  *events.Producer
}

type RegisterRequest struct {
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	AddressID *uint  `json:"address_id,omitempty"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.Email) == "" ||
		req.Password == "" {
		return nil, fmt.Errorf("%w: name, first_name, email and password are required", ErrValidation)
	}

	taken, err := s.Repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		l.Warn("register_failed", "status", 409, "reason", "email already registered")
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	if req.AddressID != nil {
		if _, err := s.Repo.GetAddress(ctx, *req.AddressID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: address %d does not exist", ErrValidation, *req.AddressID)
			}
			return nil, err
		}
	}

	role, err := s.Repo.GetRoleByName(ctx, models.RoleClient)
	if err != nil {
		return nil, err
	}

	digest, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		FirstName:    req.FirstName,
		Email:        req.Email,
		PasswordHash: digest,
		AddressID:    req.AddressID,
		RoleID:       role.ID,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	user.Role = role

	event := map[string]any{
		"type":   "user_registered",
		"userID": user.ID,
		"email":  user.Email,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	return user, nil
}

// Login checks the bcrypt digest and issues a signed bearer token. Accounts
// flagged by the migration pass are refused until their password is reset.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
		}
		return "", nil, err
	}

	if user.MustResetPassword {
		l.Warn("login_failed", "status", 401, "reason", "password reset required", "userID", user.ID)
		return "", nil, fmt.Errorf("%w: password reset required", ErrUnauthorized)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		return "", nil, fmt.Errorf("%w: invalid email or password", ErrUnauthorized)
	}

	roleName := models.RoleClient
	if user.Role != nil {
		roleName = user.Role.Name
	}

	token, err := tokens.SignAccessToken(
		strconv.FormatUint(uint64(user.ID), 10),
		user.Email,
		roleName,
		s.JWTSecret,
		time.Now(),
	)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return "", nil, err
	}

	event := map[string]any{
		"type":   "user_logged_in",
		"userID": user.ID,
		"email":  user.Email,
	}
	if err := s.Producer.PublishEvent(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), event); err != nil {
		l.Error("kafka_publish_error", "error", err)
	}

	return token, user, nil
}

// MigrateLegacyDigests is the one-time pass replacing the old per-login
// fallback: accounts still carrying a non-bcrypt digest are flagged for a
// password reset.
func (s *AuthService) MigrateLegacyDigests(ctx context.Context) (int, error) {
	flagged, err := s.Repo.FlagLegacyDigests(ctx, func(digest string) bool {
		return !hash.IsBcryptDigest(digest)
	})
	if err != nil {
		return len(flagged), err
	}

	l := logging.FromContext(ctx).With("svc", "auth.migrate_digests")
	l.Info("legacy_digests_flagged", "count", len(flagged))
	return len(flagged), nil
}
