package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/repo"
)

type AddressService struct {
	Repo *repo.GormRepo
}

type UpsertAddressRequest struct {
	ID         uint   `json:"id,omitempty"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	PostalCode string `json:"postal_code"`
}

func (req UpsertAddressRequest) validate() error {
	if strings.TrimSpace(req.Street) == "" ||
		strings.TrimSpace(req.Number) == "" ||
		strings.TrimSpace(req.PostalCode) == "" {
		return fmt.Errorf("%w: street, number and postal_code are required", ErrValidation)
	}
	return nil
}

func (s *AddressService) GetAddress(ctx context.Context, id uint) (*models.Address, error) {
	addr, err := s.Repo.GetAddress(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: address %d", ErrNotFound, id)
		}
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) ListAddresses(ctx context.Context, offset, limit int) (int64, []models.Address, error) {
	return s.Repo.ListAddresses(ctx, offset, limit)
}

func (s *AddressService) CreateAddress(ctx context.Context, req UpsertAddressRequest) (*models.Address, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	addr := &models.Address{
		Street:     req.Street,
		Number:     req.Number,
		PostalCode: req.PostalCode,
	}
	if err := s.Repo.CreateAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) UpdateAddress(ctx context.Context, pathID uint, req UpsertAddressRequest) (*models.Address, error) {
	if req.ID != pathID {
		return nil, fmt.Errorf("%w: id mismatch", ErrValidation)
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	addr := &models.Address{
		ID:         pathID,
		Street:     req.Street,
		Number:     req.Number,
		PostalCode: req.PostalCode,
	}
	if err := s.Repo.SaveAddress(ctx, addr); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: address %d", ErrNotFound, pathID)
		}
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) DeleteAddress(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteAddress(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: address %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
