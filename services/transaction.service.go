package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/UmangSachdeva/StaffPortal/apperror"
	"github.com/UmangSachdeva/StaffPortal/auth"
	"github.com/UmangSachdeva/StaffPortal/helpers"
	"github.com/UmangSachdeva/StaffPortal/models"
	"github.com/UmangSachdeva/StaffPortal/repository"
)

// TransactionService owns the payment lifecycle: pending on creation, then one
// staff decision to approved or denied, after which the record is final.
type TransactionService struct {
	repo     repository.TransactionRepository
	authz    *auth.Authorizer
	logger   *slog.Logger
	currency string
	now      func() time.Time
}

func NewTransactionService(repo repository.TransactionRepository, authz *auth.Authorizer, logger *slog.Logger, currency string) *TransactionService {
	return &TransactionService{
		repo:     repo,
		authz:    authz,
		logger:   logger,
		currency: strings.ToUpper(currency),
		now:      time.Now,
	}
}

func (s *TransactionService) WithClock(now func() time.Time) *TransactionService {
	s.now = now
	return s
}

func (s *TransactionService) Create(ctx context.Context, caller models.Identity, req models.CreateTransactionRequest) (*models.Transaction, error) {
	if err := s.authz.Authorize(caller, auth.ObjectTransaction, auth.ActionCreate); err != nil {
		return nil, err
	}

	if err := helpers.Validate(&req); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.Validation("amount must be greater than zero")
	}
	if req.Amount.GreaterThan(models.MaxAmount) {
		return nil, apperror.Validation(fmt.Sprintf("amount must not exceed %s", models.MaxAmount.String()))
	}
	amount, ok := req.Amount.Rescaled()
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("amount must have at most %d decimal places", models.AmountScale))
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperror.Validation("description is required")
	}

	txType := strings.TrimSpace(req.Type)
	if txType == "" {
		txType = models.DefaultTransactionType
	}
	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.currency
	}

	now := s.timestamp()
	tx := &models.Transaction{
		CustomerID:         caller.ID,
		Amount:             amount,
		Currency:           currency,
		Description:        description,
		Type:               txType,
		RecipientReference: req.RecipientReference,
		CustomerReference:  req.CustomerReference,
		SwiftCode:          strings.ToUpper(req.SwiftCode),
		Status:             models.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	s.logger.Info("transaction created",
		"transaction_id", tx.ID,
		"customer_id", tx.CustomerID,
		"amount", tx.Amount.String(),
		"currency", tx.Currency,
	)

	return tx, nil
}

func (s *TransactionService) ListPending(ctx context.Context, caller models.Identity, page helpers.Page) (*models.TransactionPage, error) {
	return s.List(ctx, caller, page, models.StatusPending)
}

func (s *TransactionService) ListVerified(ctx context.Context, caller models.Identity, page helpers.Page) (*models.TransactionPage, error) {
	return s.List(ctx, caller, page, models.StatusApproved, models.StatusDenied)
}

// List returns every customer's transactions, optionally restricted to statuses. Staff only.
func (s *TransactionService) List(ctx context.Context, caller models.Identity, page helpers.Page, statuses ...models.TransactionStatus) (*models.TransactionPage, error) {
	if err := s.authz.Authorize(caller, auth.ObjectTransaction, auth.ActionList); err != nil {
		return nil, err
	}

	for _, st := range statuses {
		if !st.Valid() {
			return nil, apperror.InvalidStatus(fmt.Sprintf("Unknown status %q.", st))
		}
	}

	opts := repository.NewTransactionOptions().SetStatuses(statuses...).SetPage(page)
	return s.page(ctx, opts)
}

func (s *TransactionService) ListByCustomer(ctx context.Context, caller models.Identity, customerID string, page helpers.Page) (*models.TransactionPage, error) {
	if customerID == "" {
		return nil, apperror.Validation("Customer ID is required.")
	}

	if err := s.authz.AuthorizeOwner(caller, customerID, auth.ObjectTransaction, auth.ActionRead); err != nil {
		return nil, apperror.Forbidden("Access denied: cannot view other customer's transactions")
	}

	opts := repository.NewTransactionOptions().SetCustomerID(customerID).SetPage(page)
	return s.page(ctx, opts)
}

func (s *TransactionService) page(ctx context.Context, opts *repository.TransactionOptions) (*models.TransactionPage, error) {
	data, err := s.repo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	total := int64(len(data))
	if opts.Page.Limit > 0 {
		if total, err = s.repo.Count(ctx, opts); err != nil {
			return nil, fmt.Errorf("count transactions: %w", err)
		}
	}

	return &models.TransactionPage{
		Data:  data,
		Total: total,
		Page:  opts.Page.Page,
		Limit: opts.Page.Limit,
	}, nil
}

func (s *TransactionService) GetOne(ctx context.Context, caller models.Identity, id string) (*models.Transaction, error) {
	if id == "" {
		return nil, apperror.Validation("Transaction ID is required.")
	}

	tx, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	if err := s.authz.AuthorizeOwner(caller, tx.CustomerID, auth.ObjectTransaction, auth.ActionRead); err != nil {
		return nil, err
	}

	return tx, nil
}

// UpdateStatus records a staff decision on a pending transaction. The write is
// conditional on the stored status still being pending, so of two concurrent
// decisions exactly one succeeds and the other reports AlreadyFinalized.
func (s *TransactionService) UpdateStatus(ctx context.Context, caller models.Identity, id string, req models.ReviewRequest) (*models.Transaction, error) {
	if err := s.authz.Authorize(caller, auth.ObjectTransaction, auth.ActionReview); err != nil {
		return nil, err
	}

	target, ok := models.ParseDecision(req.Status)
	if !ok {
		return nil, apperror.InvalidStatus("Invalid status. Must be 'approved' or 'denied'.")
	}

	if err := helpers.Validate(&req); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	if current.Status.Terminal() {
		return nil, alreadyFinalized(current)
	}

	update := repository.TransactionUpdate{
		Status:             target,
		ReviewedBy:         caller.ID,
		RecipientReference: req.RecipientReference,
		CustomerReference:  req.CustomerReference,
		SwiftCode:          upperPtr(req.SwiftCode),
		UpdatedAt:          s.nextUpdatedAt(current.UpdatedAt),
	}

	updated, err := s.repo.UpdatePending(ctx, id, update)
	if errors.Is(err, repository.ErrNotPending) {
		// lost a race: report what happened to the record in the meantime
		latest, ferr := s.repo.FindByID(ctx, id)
		if ferr != nil {
			return nil, fmt.Errorf("update transaction: %w", ferr)
		}
		return nil, alreadyFinalized(latest)
	}
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	s.logger.Info("transaction reviewed",
		"transaction_id", updated.ID,
		"status", updated.Status,
		"reviewed_by", caller.ID,
	)

	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, caller models.Identity, id string) (*models.Transaction, error) {
	if err := s.authz.Authorize(caller, auth.ObjectTransaction, auth.ActionDelete); err != nil {
		return nil, err
	}

	if id == "" {
		return nil, apperror.Validation("Please provide an ID to delete.")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete transaction: %w", err)
	}

	s.logger.Info("transaction deleted", "transaction_id", id, "deleted_by", caller.ID)

	return deleted, nil
}

// timestamps are kept at the store's millisecond precision
func (s *TransactionService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// nextUpdatedAt is strictly after prev even when the clock has not advanced.
func (s *TransactionService) nextUpdatedAt(prev time.Time) time.Time {
	now := s.timestamp()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func alreadyFinalized(tx *models.Transaction) error {
	return apperror.AlreadyFinalized(fmt.Sprintf("Transaction has already been %s.", tx.Status))
}

func upperPtr(v *string) *string {
	if v == nil {
		return nil
	}
	u := strings.ToUpper(*v)
	return &u
}
