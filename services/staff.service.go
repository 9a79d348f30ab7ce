package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/auth"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
	"github.com/UmangSachdeva/StaffPortal/repository"
)

// StaffService is the admin-only management of employee and admin accounts.
type StaffService struct {
	repo   repository.StaffRepository
	authz  *auth.Authorizer
	logger *slog.Logger
	now    func() time.Time
}

func NewStaffService(repo repository.StaffRepository, authz *auth.Authorizer, logger *slog.Logger) *StaffService {
	return &StaffService{
		repo:   repo,
		authz:  authz,
		logger: logger,
		now:    time.Now,
	}
}

func (s *StaffService) List(ctx context.Context, caller models.Identity, role models.Role, page helpers.Page) ([]*models.Staff, error) {
	if err := s.authz.Authorize(caller, auth.ObjectStaff, auth.ActionManage); err != nil {
		return nil, err
	}

	staff, err := s.repo.Find(ctx, repository.NewStaffOptions().SetRoles(role).SetPage(page))
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}

	return staff, nil
}

func (s *StaffService) Get(ctx context.Context, caller models.Identity, id string) (*models.Staff, error) {
	if err := s.authz.Authorize(caller, auth.ObjectStaff, auth.ActionManage); err != nil {
		return nil, err
	}

	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}

	return member, nil
}

func (s *StaffService) Create(ctx context.Context, caller models.Identity, req models.CreateStaffRequest) (*models.Staff, error) {
	if err := s.authz.Authorize(caller, auth.ObjectStaff, auth.ActionManage); err != nil {
		return nil, err
	}

	member, err := s.create(ctx, req)
	if err != nil {
		return nil, err
	}

	s.logger.Info("staff member created",
		"staff_id", member.StaffID,
		"role", member.Role,
		"created_by", caller.ID,
	)

	return member, nil
}

func (s *StaffService) create(ctx context.Context, req models.CreateStaffRequest) (*models.Staff, error) {
	req.Username = strings.TrimSpace(req.Username)
	if err := helpers.Validate(&req); err != nil {
		return nil, err
	}

	role := models.RoleEmployee
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	hashed, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC().Truncate(time.Millisecond)
	member := &models.Staff{
		StaffID:   newStaffID(role),
		Username:  req.Username,
		Password:  hashed,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}

	return member, nil
}

func (s *StaffService) Update(ctx context.Context, caller models.Identity, id string, req models.UpdateStaffRequest) (*models.Staff, error) {
	if err := s.authz.Authorize(caller, auth.ObjectStaff, auth.ActionManage); err != nil {
		return nil, err
	}

	if req.Username == nil && req.Password == nil && req.Role == nil {
		return nil, apperror.Validation("Nothing to update.")
	}
	if req.Username != nil {
		trimmed := strings.TrimSpace(*req.Username)
		req.Username = &trimmed
	}
	if err := helpers.Validate(&req); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update staff: %w", err)
	}

	update := repository.StaffUpdate{
		Username:  req.Username,
		UpdatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	if req.Role != nil {
		role := models.Role(*req.Role)
		if current.Role == models.RoleAdmin && role != models.RoleAdmin {
			if err := s.keepOneAdmin(ctx); err != nil {
				return nil, err
			}
		}
		update.Role = &role
	}

	if req.Password != nil {
		hashed, err := helpers.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		update.PasswordHash = &hashed
	}

	member, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update staff: %w", err)
	}

	s.logger.Info("staff member updated", "staff_id", member.StaffID, "updated_by", caller.ID)

	return member, nil
}

func (s *StaffService) Delete(ctx context.Context, caller models.Identity, id string) (*models.Staff, error) {
	if err := s.authz.Authorize(caller, auth.ObjectStaff, auth.ActionManage); err != nil {
		return nil, err
	}

	if id == caller.ID {
		return nil, apperror.Forbidden("You cannot delete your own account.")
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete staff: %w", err)
	}
	if current.Role == models.RoleAdmin {
		if err := s.keepOneAdmin(ctx); err != nil {
			return nil, err
		}
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete staff: %w", err)
	}

	s.logger.Info("staff member deleted", "staff_id", deleted.StaffID, "deleted_by", caller.ID)

	return deleted, nil
}

// EnsureAdmin creates the given admin account when the store holds no admin yet.
func (s *StaffService) EnsureAdmin(ctx context.Context, username, password string) error {
	admins, err := s.repo.Count(ctx, repository.NewStaffOptions().SetRoles(models.RoleAdmin))
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins > 0 {
		return nil
	}

	member, err := s.create(ctx, models.CreateStaffRequest{
		Username: username,
		Password: password,
		Role:     string(models.RoleAdmin),
	})
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	s.logger.Info("seeded admin account", "staff_id", member.StaffID, "username", member.Username)

	return nil
}

func (s *StaffService) keepOneAdmin(ctx context.Context) error {
	admins, err := s.repo.Count(ctx, repository.NewStaffOptions().SetRoles(models.RoleAdmin))
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if admins <= 1 {
		return apperror.Conflict("At least one admin account must remain.")
	}
	return nil
}

func newStaffID(role models.Role) string {
	prefix := "EMP"
	if role == models.RoleAdmin {
		prefix = "ADM"
	}
	return prefix + "-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
