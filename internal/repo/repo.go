package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ldelvaux/pcforge/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// Migrate creates the schema and seeds the fixed role set.
func (r *GormRepo) Migrate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).AutoMigrate(
		&models.Role{},
		&models.Address{},
		&models.User{},
		&models.Component{},
		&models.Configuration{},
		&models.Order{},
	); err != nil {
		return err
	}

	roles := []models.Role{
		{Name: models.RoleAdmin},
		{Name: models.RoleClient},
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&roles).Error
}
