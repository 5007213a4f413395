package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/models"
)

// ComponentFilter narrows the catalog listing. Zero values mean "no filter".
type ComponentFilter struct {
	Type    string
	Brand   string
	InStock bool
}

func (r *GormRepo) GetComponent(ctx context.Context, id uint) (*models.Component, error) {
	var comp models.Component
	if err := r.DB.WithContext(ctx).First(&comp, id).Error; err != nil {
		return nil, err
	}
	return &comp, nil
}

func (r *GormRepo) ListComponents(ctx context.Context, f ComponentFilter, offset, limit int) (int64, []models.Component, error) {
	q := r.DB.WithContext(ctx).Model(&models.Component{})
	if f.Type != "" {
		q = q.Where("type = ?", strings.ToLower(f.Type))
	}
	if f.Brand != "" {
		q = q.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(f.Brand)+"%")
	}
	if f.InStock {
		q = q.Where("stock > 0")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Component
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) FindComponents(ctx context.Context, ids []uint) ([]models.Component, error) {
	var items []models.Component
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateComponent(ctx context.Context, comp *models.Component) error {
	return r.DB.WithContext(ctx).Create(comp).Error
}

func (r *GormRepo) SaveComponent(ctx context.Context, comp *models.Component) error {
	res := r.DB.WithContext(ctx).Model(&models.Component{}).
		Where("id = ?", comp.ID).
		Select("type", "brand", "model", "price", "stock", "score").
		Updates(comp)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := r.DB.WithContext(ctx).Model(&models.Component{}).
			Where("id = ?", comp.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *GormRepo) DeleteComponent(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Component{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
