package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/models"
)

func (r *GormRepo) GetAddress(ctx context.Context, id uint) (*models.Address, error) {
	var addr models.Address
	if err := r.DB.WithContext(ctx).First(&addr, id).Error; err != nil {
		return nil, err
	}
	return &addr, nil
}

func (r *GormRepo) ListAddresses(ctx context.Context, offset, limit int) (int64, []models.Address, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Address{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var items []models.Address
	if err := r.DB.WithContext(ctx).Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}

func (r *GormRepo) CreateAddress(ctx context.Context, addr *models.Address) error {
	return r.DB.WithContext(ctx).Create(addr).Error
}

func (r *GormRepo) SaveAddress(ctx context.Context, addr *models.Address) error {
	res := r.DB.WithContext(ctx).Model(&models.Address{}).
		Where("id = ?", addr.ID).
		Select("street", "number", "postal_code").
		Updates(addr)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var exists int64
		if err := r.DB.WithContext(ctx).Model(&models.Address{}).
			Where("id = ?", addr.ID).Count(&exists).Error; err != nil {
			return err
		}
		if exists == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

func (r *GormRepo) DeleteAddress(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Address{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
