package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
	"github.com/UmangSachdeva/StaffPortal/repository"
	"github.com/UmangSachdeva/StaffPortal/utils"
)

const accountNumberAttempts = 3

var (
	errBadCustomerLogin = apperror.InvalidCredential("Invalid username, account number or password.")
	errBadStaffLogin    = apperror.InvalidCredential("Invalid username or password.")
)

// AuthService signs customers and staff in and out and resolves bearer tokens.
type AuthService struct {
	customers repository.CustomerRepository
	staff     repository.StaffRepository
	denylist  repository.TokenDenylist
	tokens    *utils.TokenManager
	logger    *slog.Logger
	now       func() time.Time

	// compared against when the username is unknown so both paths cost one bcrypt check
	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(store *repository.Store, tokens *utils.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		customers: store.Customers,
		staff:     store.Staff,
		denylist:  store.Tokens,
		tokens:    tokens,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterCustomerRequest) (*models.Customer, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Username = strings.TrimSpace(req.Username)
	if err := helpers.Validate(&req); err != nil {
		return nil, err
	}

	if _, err := s.customers.FindByUsername(ctx, req.Username); err == nil {
		return nil, apperror.Conflict("Username already exists")
	} else if !apperror.Is(err, apperror.KindNotFound) {
		return nil, fmt.Errorf("register customer: %w", err)
	}

	hashed, err := helpers.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := &models.Customer{
		FullName:  req.FullName,
		Username:  req.Username,
		IDNumber:  req.IDNumber,
		Password:  hashed,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	// a conflict here is almost always a colliding account number, so draw again
	for attempt := 1; ; attempt++ {
		customer.ID = ""
		customer.AccountNumber = newAccountNumber()

		err = s.customers.Create(ctx, customer)
		if err == nil {
			break
		}
		if !apperror.Is(err, apperror.KindConflict) || attempt == accountNumberAttempts {
			return nil, fmt.Errorf("register customer: %w", err)
		}
	}

	s.logger.Info("customer registered", "customer_id", customer.ID, "username", customer.Username)

	return customer, nil
}

func (s *AuthService) Login(ctx context.Context, req models.CustomerLoginRequest) (*models.TokenResponse, error) {
	if err := helpers.Validate(&req); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if apperror.Is(err, apperror.KindNotFound) {
		s.burnPasswordCheck(req.Password)
		return nil, errBadCustomerLogin
	}
	if err != nil {
		return nil, fmt.Errorf("customer login: %w", err)
	}

	if err := checkPassword(customer.Password, req.Password, errBadCustomerLogin); err != nil {
		return nil, err
	}
	if customer.AccountNumber != req.AccountNumber {
		return nil, errBadCustomerLogin
	}

	return s.issue(models.Identity{
		ID:       customer.ID,
		Role:     models.RoleCustomer,
		Username: customer.Username,
	})
}

// StaffLogin signs in an employee or admin. userType must match the stored role,
// so an admin has to sign in as admin.
func (s *AuthService) StaffLogin(ctx context.Context, req models.StaffLoginRequest) (*models.TokenResponse, error) {
	if err := helpers.Validate(&req); err != nil {
		return nil, err
	}

	member, err := s.staff.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if apperror.Is(err, apperror.KindNotFound) {
		s.burnPasswordCheck(req.Password)
		return nil, errBadStaffLogin
	}
	if err != nil {
		return nil, fmt.Errorf("staff login: %w", err)
	}

	if err := checkPassword(member.Password, req.Password, errBadStaffLogin); err != nil {
		return nil, err
	}
	if member.Role != models.Role(req.UserType) {
		return nil, errBadStaffLogin
	}

	return s.issue(models.Identity{
		ID:       member.ID,
		Role:     member.Role,
		Username: member.Username,
	})
}

// Authenticate resolves an Authorization header to the caller it was issued to.
func (s *AuthService) Authenticate(ctx context.Context, header string) (models.Identity, error) {
	token, err := utils.BearerToken(header)
	if err != nil {
		return models.Identity{}, err
	}

	identity, err := s.tokens.VerifyToken(token)
	if err != nil {
		return models.Identity{}, err
	}

	revoked, err := s.denylist.IsRevoked(ctx, identity.TokenID)
	if err != nil {
		return models.Identity{}, fmt.Errorf("check token: %w", err)
	}
	if revoked {
		return models.Identity{}, apperror.InvalidCredential("Token has been revoked.")
	}

	return identity, nil
}

func (s *AuthService) Logout(ctx context.Context, identity models.Identity) error {
	if err := s.denylist.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	s.logger.Info("signed out", "user_id", identity.ID, "role", identity.Role)

	return nil
}

func (s *AuthService) issue(identity models.Identity) (*models.TokenResponse, error) {
	token, expiresAt, err := s.tokens.GenerateToken(identity)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("signed in", "user_id", identity.ID, "role", identity.Role)

	return &models.TokenResponse{Token: token, ExpiresAt: expiresAt.Unix()}, nil
}

// checkPassword reports a mismatch as rejected, hiding which credential field was wrong.
func checkPassword(hashed, password string, rejected error) error {
	err := helpers.CheckPassword(hashed, password)
	if errors.Is(err, helpers.ErrPasswordMismatch) {
		return rejected
	}
	if err != nil {
		return fmt.Errorf("check password: %w", err)
	}
	return nil
}

func (s *AuthService) burnPasswordCheck(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = helpers.HashPassword(uuid.NewString())
	})
	_ = helpers.CheckPassword(s.dummyHash, password)
}

// newAccountNumber draws a ten digit account number.
func newAccountNumber() string {
	return fmt.Sprintf("%010d", uuid.New().ID())
}
