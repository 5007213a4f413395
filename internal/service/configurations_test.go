package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldelvaux/pcforge/internal/models"
)

func TestCreateConfigurationDerivedTotals(t *testing.T) {
	r := newTestRepo(t)
	svc := &ConfigurationService{Repo: r}
	owner := seedUser(t, r, "owner@example.org", "password", models.RoleClient)

	cpu := seedComponent(t, r, models.TypeCPU, "AMD", "Ryzen 7 7800X3D", "399.99", 5, 92)
	gpu := seedComponent(t, r, models.TypeGPU, "NVIDIA", "RTX 4070", "599.00", 3, 85)

	view, err := svc.CreateConfiguration(context.Background(), owner.ID, UpsertConfigurationRequest{
		Name:         "gaming rig",
		ComponentIDs: []uint{cpu.ID, gpu.ID},
	})
	require.NoError(t, err)
	require.Equal(t, "998.99", view.TotalPrice.StringFixed(2))
	require.Equal(t, 89, view.AverageScore) // round(177/2)
	require.Len(t, view.Components, 2)
}

func TestCreateConfigurationUnknownComponents(t *testing.T) {
	r := newTestRepo(t)
	svc := &ConfigurationService{Repo: r}
	owner := seedUser(t, r, "owner@example.org", "password", models.RoleClient)
	cpu := seedComponent(t, r, models.TypeCPU, "Intel", "i5-13600K", "289.00", 4, 80)

	_, err := svc.CreateConfiguration(context.Background(), owner.ID, UpsertConfigurationRequest{
		Name:         "half real",
		ComponentIDs: []uint{cpu.ID, 9998, 9999},
	})
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "9998")
	require.Contains(t, err.Error(), "9999")
}

func TestCreateConfigurationShortName(t *testing.T) {
	r := newTestRepo(t)
	svc := &ConfigurationService{Repo: r}
	owner := seedUser(t, r, "owner@example.org", "password", models.RoleClient)
	cpu := seedComponent(t, r, models.TypeCPU, "Intel", "i3-13100", "139.00", 4, 60)

	_, err := svc.CreateConfiguration(context.Background(), owner.ID, UpsertConfigurationRequest{
		Name:         "ab",
		ComponentIDs: []uint{cpu.ID},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestConfigurationOwnershipChecks(t *testing.T) {
	r := newTestRepo(t)
	svc := &ConfigurationService{Repo: r}
	owner := seedUser(t, r, "owner@example.org", "password", models.RoleClient)
	other := seedUser(t, r, "other@example.org", "password", models.RoleClient)
	admin := seedUser(t, r, "admin@example.org", "password", models.RoleAdmin)
	cpu := seedComponent(t, r, models.TypeCPU, "AMD", "Ryzen 5 7600", "229.00", 4, 75)

	view, err := svc.CreateConfiguration(context.Background(), owner.ID, UpsertConfigurationRequest{
		Name:         "office box",
		ComponentIDs: []uint{cpu.ID},
	})
	require.NoError(t, err)

	_, err = svc.GetConfiguration(context.Background(), view.ID, other.ID, false)
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetConfiguration(context.Background(), view.ID, admin.ID, true)
	require.NoError(t, err)

	err = svc.DeleteConfiguration(context.Background(), view.ID, other.ID, false)
	require.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteConfiguration(context.Background(), view.ID, owner.ID, false)
	require.NoError(t, err)
}

func TestUpdateConfigurationIDMismatch(t *testing.T) {
	r := newTestRepo(t)
	svc := &ConfigurationService{Repo: r}
	owner := seedUser(t, r, "owner@example.org", "password", models.RoleClient)
	cpu := seedComponent(t, r, models.TypeCPU, "AMD", "Ryzen 9 7900", "429.00", 2, 88)

	view, err := svc.CreateConfiguration(context.Background(), owner.ID, UpsertConfigurationRequest{
		Name:         "workstation",
		ComponentIDs: []uint{cpu.ID},
	})
	require.NoError(t, err)

	_, err = svc.UpdateConfiguration(context.Background(), view.ID, owner.ID, false, UpsertConfigurationRequest{
		ID:           view.ID + 1,
		Name:         "workstation v2",
		ComponentIDs: []uint{cpu.ID},
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateConfigurationReplacesComponents(t *testing.T) {
	r := newTestRepo(t)
	svc := &ConfigurationService{Repo: r}
	owner := seedUser(t, r, "owner@example.org", "password", models.RoleClient)
	cpu := seedComponent(t, r, models.TypeCPU, "Intel", "i7-14700K", "409.00", 3, 90)
	psu := seedComponent(t, r, models.TypePSU, "Corsair", "RM850x", "129.99", 6, 70)

	view, err := svc.CreateConfiguration(context.Background(), owner.ID, UpsertConfigurationRequest{
		Name:         "base build",
		ComponentIDs: []uint{cpu.ID},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateConfiguration(context.Background(), view.ID, owner.ID, false, UpsertConfigurationRequest{
		ID:           view.ID,
		Name:         "base build",
		ComponentIDs: []uint{psu.ID},
	})
	require.NoError(t, err)
	require.Len(t, updated.Components, 1)
	require.Equal(t, psu.ID, updated.Components[0].ID)
	require.Equal(t, "129.99", updated.TotalPrice.StringFixed(2))
}

func TestDeleteConfigurationAbsent(t *testing.T) {
	r := newTestRepo(t)
	svc := &ConfigurationService{Repo: r}
	user := seedUser(t, r, "owner@example.org", "password", models.RoleClient)

	err := svc.DeleteConfiguration(context.Background(), 12345, user.ID, true)
	require.ErrorIs(t, err, ErrNotFound)
}
