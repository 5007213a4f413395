package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ldelvaux/pcforge/internal/hash"
	"github.com/ldelvaux/pcforge/internal/models"
	"github.com/ldelvaux/pcforge/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	r := repo.New(db)
	require.NoError(t, r.Migrate(context.Background()))
	return r
}

func seedUser(t *testing.T, r *repo.GormRepo, email, password, roleName string) *models.User {
	t.Helper()

	role, err := r.GetRoleByName(context.Background(), roleName)
	require.NoError(t, err)

	digest, err := hash.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Name:         "Test",
		FirstName:    "User",
		Email:        email,
		PasswordHash: digest,
		RoleID:       role.ID,
	}
	require.NoError(t, r.CreateUser(context.Background(), user))
	return user
}

func seedComponent(t *testing.T, r *repo.GormRepo, typ, brand, model, price string, stock, score int) *models.Component {
	t.Helper()

	comp := &models.Component{
		Type:  typ,
		Brand: brand,
		Model: model,
		Price: decimal.RequireFromString(price),
		Stock: stock,
		Score: score,
	}
	require.NoError(t, r.CreateComponent(context.Background(), comp))
	return comp
}
