package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/repo"
)

type ConfigurationService struct {
	Repo *repo.GormRepo
}

type UpsertConfigurationRequest struct {
	ID           uint   `json:"id,omitempty"`
	Name         string `json:"name"`
	ComponentIDs []uint `json:"component_ids"`
}

// ConfigurationView is a configuration with its derived totals. The totals
// are recomputed on every read, never stored.
type ConfigurationView struct {
	models.Configuration
	TotalPrice   decimal.Decimal `json:"total_price"`
	AverageScore int             `json:"average_score"`
}

func viewOf(cfg *models.Configuration) *ConfigurationView {
	return &ConfigurationView{
		Configuration: *cfg,
		TotalPrice:    TotalPrice(cfg.Components),
		AverageScore:  AverageScore(cfg.Components),
	}
}

func (s *ConfigurationService) resolveComponents(ctx context.Context, ids []uint) ([]models.Component, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: at least one component is required", ErrValidation)
	}

	found, err := s.Repo.FindComponents(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Component, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	var missing []string
	components := make([]models.Component, 0, len(ids))
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		c, ok := byID[id]
		if !ok {
			missing = append(missing, fmt.Sprint(id))
			continue
		}
		components = append(components, c)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: unknown component ids: %s", ErrValidation, strings.Join(missing, ", "))
	}
	return components, nil
}

func (s *ConfigurationService) GetConfiguration(ctx context.Context, id, callerID uint, isAdmin bool) (*ConfigurationView, error) {
	cfg, err := s.Repo.GetConfiguration(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: configuration %d", ErrNotFound, id)
		}
		return nil, err
	}
	if cfg.UserID != callerID && !isAdmin {
		return nil, fmt.Errorf("%w: configuration %d", ErrForbidden, id)
	}
	return viewOf(cfg), nil
}

func (s *ConfigurationService) ListConfigurations(ctx context.Context, userID uint, offset, limit int) (int64, []ConfigurationView, error) {
	total, items, err := s.Repo.ListConfigurations(ctx, userID, offset, limit)
	if err != nil {
		return 0, nil, err
	}

	views := make([]ConfigurationView, 0, len(items))
	for i := range items {
		views = append(views, *viewOf(&items[i]))
	}
	return total, views, nil
}

func (s *ConfigurationService) CreateConfiguration(ctx context.Context, callerID uint, req UpsertConfigurationRequest) (*ConfigurationView, error) {
	if len(strings.TrimSpace(req.Name)) < 3 {
		return nil, fmt.Errorf("%w: name must be at least 3 characters", ErrValidation)
	}

	components, err := s.resolveComponents(ctx, req.ComponentIDs)
	if err != nil {
		return nil, err
	}

	cfg := &models.Configuration{
		Name:       req.Name,
		UserID:     callerID,
		Components: components,
	}
	if err := s.Repo.CreateConfiguration(ctx, cfg); err != nil {
		return nil, err
	}
	return viewOf(cfg), nil
}

func (s *ConfigurationService) UpdateConfiguration(ctx context.Context, pathID, callerID uint, isAdmin bool, req UpsertConfigurationRequest) (*ConfigurationView, error) {
	if req.ID != pathID {
		return nil, fmt.Errorf("%w: id mismatch", ErrValidation)
	}
	if len(strings.TrimSpace(req.Name)) < 3 {
		return nil, fmt.Errorf("%w: name must be at least 3 characters", ErrValidation)
	}

	current, err := s.Repo.GetConfiguration(ctx, pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: configuration %d", ErrNotFound, pathID)
		}
		return nil, err
	}
	if current.UserID != callerID && !isAdmin {
		return nil, fmt.Errorf("%w: configuration %d", ErrForbidden, pathID)
	}

	components, err := s.resolveComponents(ctx, req.ComponentIDs)
	if err != nil {
		return nil, err
	}

	current.Name = req.Name
	current.Components = components
	if err := s.Repo.SaveConfiguration(ctx, current); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: configuration %d", ErrNotFound, pathID)
		}
		return nil, err
	}
	return viewOf(current), nil
}

func (s *ConfigurationService) DeleteConfiguration(ctx context.Context, id, callerID uint, isAdmin bool) error {
	current, err := s.Repo.GetConfiguration(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: configuration %d", ErrNotFound, id)
		}
		return err
	}
	if current.UserID != callerID && !isAdmin {
		return fmt.Errorf("%w: configuration %d", ErrForbidden, id)
	}

	if err := s.Repo.DeleteConfiguration(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: configuration %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}
