package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/hash"
	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/repo"
)

type UserService struct {
	Repo *repo.GormRepo
}

type UpsertUserRequest struct {
	ID        uint   `json:"id,omitempty"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	AddressID *uint  `json:"address_id,omitempty"`
	RoleID    uint   `json:"role_id"`
}

func (s *UserService) validate(ctx context.Context, req UpsertUserRequest, creating bool) error {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: name, first_name and email are required", ErrValidation)
	}
	if creating && req.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if _, err := s.Repo.GetRole(ctx, req.RoleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: role %d is not in the allowed set", ErrValidation, req.RoleID)
		}
		return err
	}
	if req.AddressID != nil {
		if _, err := s.Repo.GetAddress(ctx, *req.AddressID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: address %d does not exist", ErrValidation, *req.AddressID)
			}
			return err
		}
	}
	return nil
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, offset, limit int) (int64, []models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}

func (s *UserService) CreateUser(ctx context.Context, req UpsertUserRequest) (*models.User, error) {
	if err := s.validate(ctx, req, true); err != nil {
		return nil, err
	}

	taken, err := s.Repo.EmailTaken(ctx, req.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	digest, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		FirstName:    req.FirstName,
		Email:        req.Email,
		PasswordHash: digest,
		AddressID:    req.AddressID,
		RoleID:       req.RoleID,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, user.ID)
}

// UpdateUser rewrites the record at pathID. The body id must match the path,
// and only an admin may move a user to another role.
func (s *UserService) UpdateUser(ctx context.Context, pathID uint, req UpsertUserRequest, callerIsAdmin bool) (*models.User, error) {
	if req.ID != pathID {
		return nil, fmt.Errorf("%w: id mismatch", ErrValidation)
	}
	if err := s.validate(ctx, req, false); err != nil {
		return nil, err
	}

	current, err := s.Repo.GetUser(ctx, pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, pathID)
		}
		return nil, err
	}
	if !callerIsAdmin && req.RoleID != current.RoleID {
		return nil, fmt.Errorf("%w: only an admin can change roles", ErrForbidden)
	}

	taken, err := s.Repo.EmailTaken(ctx, req.Email, pathID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	}

	current.Name = req.Name
	current.FirstName = req.FirstName
	current.Email = req.Email
	current.AddressID = req.AddressID
	current.RoleID = req.RoleID
	if req.Password != "" {
		digest, err := hash.HashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		current.PasswordHash = digest
		current.MustResetPassword = false
	}

	if err := s.Repo.SaveUser(ctx, current); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, pathID)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: user %d was modified concurrently", ErrConflict, pathID)
		}
		return nil, err
	}
	return s.GetUser(ctx, pathID)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
