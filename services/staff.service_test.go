package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/logging"
	"github.com/UmangSachdeva/StaffPortal/models"
	"github.com/UmangSachdeva/StaffPortal/repository"
)

func newStaffService(t *testing.T) (*StaffService, *repository.MemoryStaffRepo) {
	repo := repository.NewMemoryStaffRepo()
	return NewStaffService(repo, newAuthorizer(t), logging.Discard()), repo
}

func TestStaffCreateAndList(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStaffService(t)

	emp, err := svc.Create(ctx, admin, models.CreateStaffRequest{Username: " emma ", Password: "password123"})
	require.NoError(t, err)
	require.Equal(t, "emma", emp.Username)
	require.Equal(t, models.RoleEmployee, emp.Role)
	require.True(t, strings.HasPrefix(emp.StaffID, "EMP-"))
	require.NotEqual(t, "password123", emp.Password)
	require.NoError(t, helpers.CheckPassword(emp.Password, "password123"))

	adm, err := svc.Create(ctx, admin, models.CreateStaffRequest{Username: "root", Password: "password123", Role: "admin"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(adm.StaffID, "ADM-"))

	_, err = svc.Create(ctx, admin, models.CreateStaffRequest{Username: "emma", Password: "password456"})
	require.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = svc.Create(ctx, admin, models.CreateStaffRequest{Username: "x", Password: "short"})
	require.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = svc.Create(ctx, admin, models.CreateStaffRequest{Username: "cust", Password: "password123", Role: "customer"})
	require.True(t, apperror.Is(err, apperror.KindValidation))

	employees, err := svc.List(ctx, admin, models.RoleEmployee, helpers.Page{})
	require.NoError(t, err)
	require.Len(t, employees, 1)
	require.Equal(t, emp.ID, employees[0].ID)

	admins, err := svc.List(ctx, admin, models.RoleAdmin, helpers.Page{})
	require.NoError(t, err)
	require.Len(t, admins, 1)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func TestStaffRequiresAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStaffService(t)

	for _, caller := range []models.Identity{employee, customerC1} {
		_, err := svc.Create(ctx, caller, models.CreateStaffRequest{Username: "emma", Password: "password123"})
		require.True(t, apperror.Is(err, apperror.KindForbidden))

		_, err = svc.List(ctx, caller, models.RoleEmployee, helpers.Page{})
		require.True(t, apperror.Is(err, apperror.KindForbidden))

		_, err = svc.Delete(ctx, caller, "any")
		require.True(t, apperror.Is(err, apperror.KindForbidden))
	}
}

func TestStaffUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStaffService(t)

	emp, err := svc.Create(ctx, admin, models.CreateStaffRequest{Username: "emma", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, admin, emp.ID, models.UpdateStaffRequest{})
	require.True(t, apperror.Is(err, apperror.KindValidation))

	name, password, role := "emma.w", "newpassword1", "admin"
	updated, err := svc.Update(ctx, admin, emp.ID, models.UpdateStaffRequest{
		Username: &name,
		Password: &password,
		Role:     &role,
	})
	require.NoError(t, err)
	require.Equal(t, "emma.w", updated.Username)
	require.Equal(t, models.RoleAdmin, updated.Role)
	require.NoError(t, helpers.CheckPassword(updated.Password, "newpassword1"))

	_, err = svc.Update(ctx, admin, "missing", models.UpdateStaffRequest{Username: &name})
	require.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestStaffKeepsLastAdmin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newStaffService(t)

	only, err := svc.Create(ctx, admin, models.CreateStaffRequest{Username: "root", Password: "password123", Role: "admin"})
	require.NoError(t, err)

	demote := "employee"
	_, err = svc.Update(ctx, admin, only.ID, models.UpdateStaffRequest{Role: &demote})
	require.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = svc.Delete(ctx, admin, only.ID)
	require.True(t, apperror.Is(err, apperror.KindConflict))

	self := models.Identity{ID: only.ID, Role: models.RoleAdmin}
	_, err = svc.Delete(ctx, self, only.ID)
	require.True(t, apperror.Is(err, apperror.KindForbidden))

	second, err := svc.Create(ctx, admin, models.CreateStaffRequest{Username: "root2", Password: "password123", Role: "admin"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, self, second.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, deleted.ID)

	_, err = svc.Get(ctx, admin, second.ID)
	require.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	svc, repo := newStaffService(t)

	require.NoError(t, svc.EnsureAdmin(ctx, "root", "password123"))
	require.NoError(t, svc.EnsureAdmin(ctx, "other", "password123"))

	admins, err := repo.Find(ctx, repository.NewStaffOptions().SetRoles(models.RoleAdmin))
	require.NoError(t, err)
	require.Len(t, admins, 1)
	require.Equal(t, "root", admins[0].Username)
}
