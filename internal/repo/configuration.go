package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/models"
)

func (r *GormRepo) GetConfiguration(ctx context.Context, id uint) (*models.Configuration, error) {
	var cfg models.Configuration
	if err := r.DB.WithContext(ctx).
		Preload("Components").
		First(&cfg, id).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *GormRepo) ListConfigurations(ctx context.Context, userID uint, offset, limit int) (int64, []models.Configuration, error) {
	q := r.DB.WithContext(ctx).Model(&models.Configuration{})
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Configuration
	if err := q.Preload("Components").
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateConfiguration(ctx context.Context, cfg *models.Configuration) error {
	return r.DB.WithContext(ctx).Create(cfg).Error
}

// SaveConfiguration rewrites the name and the component set.
func (r *GormRepo) SaveConfiguration(ctx context.Context, cfg *models.Configuration) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Configuration{}).
			Where("id = ?", cfg.ID).
			Update("name", cfg.Name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var exists int64
			if err := tx.Model(&models.Configuration{}).
				Where("id = ?", cfg.ID).Count(&exists).Error; err != nil {
				return err
			}
			if exists == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.Model(cfg).Association("Components").Replace(cfg.Components)
	})
}

func (r *GormRepo) DeleteConfiguration(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg := models.Configuration{ID: id}
		if err := tx.Model(&cfg).Association("Components").Clear(); err != nil {
			return err
		}
		res := tx.Delete(&models.Configuration{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
