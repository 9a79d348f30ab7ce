package repository

import (
	"context"
	"errors"
	"time"

	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
)

// ErrNotPending is returned by UpdatePending when no pending transaction matched.
// The caller decides whether that means missing or already decided.
var ErrNotPending = errors.New("transaction is not pending")

// Data store abstraction for transactions
type TransactionRepository interface {
	Create(ctx context.Context, t *models.Transaction) error
	FindByID(ctx context.Context, id string) (*models.Transaction, error)
	Find(ctx context.Context, opts ...*TransactionOptions) ([]*models.Transaction, error)
	Count(ctx context.Context, opts ...*TransactionOptions) (int64, error)
	// UpdatePending applies u only if the stored status is still pending.
	UpdatePending(ctx context.Context, id string, u TransactionUpdate) (*models.Transaction, error)
	Delete(ctx context.Context, id string) (*models.Transaction, error)
}

type TransactionUpdate struct {
	Status             models.TransactionStatus
	ReviewedBy         string
	RecipientReference *string
	CustomerReference  *string
	SwiftCode          *string
	UpdatedAt          time.Time
}

type StaffRepository interface {
	Create(ctx context.Context, s *models.Staff) error
	FindByID(ctx context.Context, id string) (*models.Staff, error)
	FindByUsername(ctx context.Context, username string) (*models.Staff, error)
	Find(ctx context.Context, opts ...*StaffOptions) ([]*models.Staff, error)
	Count(ctx context.Context, opts ...*StaffOptions) (int64, error)
	Update(ctx context.Context, id string, u StaffUpdate) (*models.Staff, error)
	Delete(ctx context.Context, id string) (*models.Staff, error)
}

type StaffUpdate struct {
	Username     *string
	PasswordHash *string
	Role         *models.Role
	UpdatedAt    time.Time
}

type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	FindByUsername(ctx context.Context, username string) (*models.Customer, error)
}

// TokenDenylist records bearer credentials revoked before their expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles the repositories backed by one document store.
type Store struct {
	Transactions TransactionRepository
	Staff        StaffRepository
	Customers    CustomerRepository
	Tokens       TokenDenylist
	Health       Pinger

	close func(ctx context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// TransactionOptions represent options that can be used to configure a Find operation
type TransactionOptions struct {
	// filters transactions whose status is any of these
	Statuses []models.TransactionStatus
	// filters transactions owned by this customer
	CustomerID *string
	Page       helpers.Page
}

func NewTransactionOptions() *TransactionOptions {
	return &TransactionOptions{}
}

func (o *TransactionOptions) SetStatuses(v ...models.TransactionStatus) *TransactionOptions {
	o.Statuses = v
	return o
}

func (o *TransactionOptions) SetCustomerID(v string) *TransactionOptions {
	o.CustomerID = &v
	return o
}

func (o *TransactionOptions) SetPage(v helpers.Page) *TransactionOptions {
	o.Page = v
	return o
}

func (o *TransactionOptions) matches(t *models.Transaction) bool {
	if o.CustomerID != nil && t.CustomerID != *o.CustomerID {
		return false
	}
	if len(o.Statuses) == 0 {
		return true
	}
	for _, s := range o.Statuses {
		if t.Status == s {
			return true
		}
	}
	return false
}

type StaffOptions struct {
	Roles []models.Role
	Page  helpers.Page
}

func NewStaffOptions() *StaffOptions {
	return &StaffOptions{}
}

func (o *StaffOptions) SetRoles(v ...models.Role) *StaffOptions {
	o.Roles = v
	return o
}

func (o *StaffOptions) SetPage(v helpers.Page) *StaffOptions {
	o.Page = v
	return o
}

func (o *StaffOptions) matches(s *models.Staff) bool {
	if len(o.Roles) == 0 {
		return true
	}
	for _, r := range o.Roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func firstTransactionOptions(opts []*TransactionOptions) *TransactionOptions {
	if len(opts) == 0 || opts[0] == nil {
		return NewTransactionOptions()
	}
	return opts[0]
}

func firstStaffOptions(opts []*StaffOptions) *StaffOptions {
	if len(opts) == 0 || opts[0] == nil {
		return NewStaffOptions()
	}
	return opts[0]
}
