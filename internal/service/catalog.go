package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/events"
	"github.com/ldelvaux/pcforge/internal/logging"
	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/repo"
	"github.com/ldelvaux/pcforge/internal/search"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *events.Producer
	ES       *elasticsearch.Client
	Index    string
}

type UpsertComponentRequest struct {
	ID    uint   `json:"id,omitempty"`
	Type  string `json:"type"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Price string `json:"price"`
	Stock int    `json:"stock"`
	Score int    `json:"score"`
}

func (req UpsertComponentRequest) component() (*models.Component, error) {
	typ := strings.ToLower(strings.TrimSpace(req.Type))
	valid := false
	for _, t := range models.ComponentTypes() {
		if typ == t {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: unknown component type %q", ErrValidation, req.Type)
	}
	if strings.TrimSpace(req.Brand) == "" || strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("%w: brand and model are required", ErrValidation)
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("%w: stock must be >= 0", ErrValidation)
	}
	if req.Score < 0 || req.Score > 100 {
		return nil, fmt.Errorf("%w: score must be in [0,100]", ErrValidation)
	}

	return &models.Component{
		ID:    req.ID,
		Type:  typ,
		Brand: req.Brand,
		Model: req.Model,
		Price: price.Round(2),
		Stock: req.Stock,
		Score: req.Score,
	}, nil
}

func (s *CatalogService) GetComponent(ctx context.Context, id uint) (*models.Component, error) {
	comp, err := s.Repo.GetComponent(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: component %d", ErrNotFound, id)
		}
		return nil, err
	}
	return comp, nil
}

func (s *CatalogService) ListComponents(ctx context.Context, f repo.ComponentFilter, offset, limit int) (int64, []models.Component, error) {
	return s.Repo.ListComponents(ctx, f, offset, limit)
}

func (s *CatalogService) CreateComponent(ctx context.Context, req UpsertComponentRequest) (*models.Component, error) {
	comp, err := req.component()
	if err != nil {
		return nil, err
	}
	comp.ID = 0

	if err := s.Repo.CreateComponent(ctx, comp); err != nil {
		return nil, err
	}

	s.index(ctx, comp)
	s.publish(ctx, map[string]any{
		"type":        "component_created",
		"componentID": comp.ID,
		"brand":       comp.Brand,
		"model":       comp.Model,
	})
	return comp, nil
}

func (s *CatalogService) UpdateComponent(ctx context.Context, pathID uint, req UpsertComponentRequest) (*models.Component, error) {
	if req.ID != pathID {
		return nil, fmt.Errorf("%w: id mismatch", ErrValidation)
	}
	comp, err := req.component()
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SaveComponent(ctx, comp); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: component %d", ErrNotFound, pathID)
		}
		return nil, err
	}

	s.index(ctx, comp)
	s.publish(ctx, map[string]any{
		"type":        "component_updated",
		"componentID": comp.ID,
	})
	return comp, nil
}

func (s *CatalogService) DeleteComponent(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteComponent(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: component %d", ErrNotFound, id)
		}
		return err
	}

	if s.ES != nil {
		if err := search.RemoveComponent(ctx, s.ES, s.Index, id); err != nil {
			logging.FromContext(ctx).Error("es_remove_error", "error", err)
		}
	}
	s.publish(ctx, map[string]any{
		"type":        "component_deleted",
		"componentID": id,
	})
	return nil
}

func (s *CatalogService) index(ctx context.Context, comp *models.Component) {
	if s.ES == nil {
		return
	}
	if err := search.IndexComponent(ctx, s.ES, s.Index, comp); err != nil {
		logging.FromContext(ctx).Error("es_index_error", "error", err, "componentID", comp.ID)
	}
}

func (s *CatalogService) publish(ctx context.Context, event map[string]any) {
	key := fmt.Sprint(event["componentID"])
	if err := s.Producer.PublishEvent(ctx, events.TopicComponentEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}
