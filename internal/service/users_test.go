package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldelvaux/pcforge/internal/hash"
	"github.com/ldelvaux/pcforge/internal/models"
)

func TestUpdateUserIDMismatch(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	user := seedUser(t, r, "laura@example.org", "password", models.RoleClient)

	_, err := svc.UpdateUser(context.Background(), user.ID, UpsertUserRequest{
		ID:        user.ID + 1,
		Name:      user.Name,
		FirstName: user.FirstName,
		Email:     user.Email,
		RoleID:    user.RoleID,
	}, false)
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUserRoleChangeNeedsAdmin(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	user := seedUser(t, r, "laura@example.org", "password", models.RoleClient)

	adminRole, err := r.GetRoleByName(context.Background(), models.RoleAdmin)
	require.NoError(t, err)

	req := UpsertUserRequest{
		ID:        user.ID,
		Name:      user.Name,
		FirstName: user.FirstName,
		Email:     user.Email,
		RoleID:    adminRole.ID,
	}

	_, err = svc.UpdateUser(context.Background(), user.ID, req, false)
	require.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateUser(context.Background(), user.ID, req, true)
	require.NoError(t, err)
	require.Equal(t, adminRole.ID, updated.RoleID)
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	user := seedUser(t, r, "laura@example.org", "password", models.RoleClient)
	oldDigest := user.PasswordHash

	updated, err := svc.UpdateUser(context.Background(), user.ID, UpsertUserRequest{
		ID:        user.ID,
		Name:      user.Name,
		FirstName: user.FirstName,
		Email:     user.Email,
		RoleID:    user.RoleID,
		Password:  "a brand new password",
	}, false)
	require.NoError(t, err)
	require.NotEqual(t, oldDigest, updated.PasswordHash)
	require.True(t, hash.CheckPassword(updated.PasswordHash, "a brand new password"))
}

func TestUpdateUserEmailConflict(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}
	seedUser(t, r, "taken@example.org", "password", models.RoleClient)
	user := seedUser(t, r, "laura@example.org", "password", models.RoleClient)

	_, err := svc.UpdateUser(context.Background(), user.ID, UpsertUserRequest{
		ID:        user.ID,
		Name:      user.Name,
		FirstName: user.FirstName,
		Email:     "taken@example.org",
		RoleID:    user.RoleID,
	}, false)
	require.ErrorIs(t, err, ErrConflict)
}

func TestDeleteUserAbsent(t *testing.T) {
	r := newTestRepo(t)
	svc := &UserService{Repo: r}

	err := svc.DeleteUser(context.Background(), 999)
	require.ErrorIs(t, err, ErrNotFound)
}
