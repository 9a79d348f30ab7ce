package models

import "time"

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "pending"
	StatusApproved TransactionStatus = "approved"
	StatusDenied   TransactionStatus = "denied"
)

const DefaultTransactionType = "payment"

// Valid reports whether s is one of the three lifecycle states.
func (s TransactionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed out of s.
func (s TransactionStatus) Terminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// ParseDecision accepts only the statuses a reviewer may move a pending transaction to.
func ParseDecision(v string) (TransactionStatus, bool) {
	s := TransactionStatus(v)
	if s.Terminal() {
		return s, true
	}
	return "", false
}

// Transaction is a customer payment awaiting or past staff review.
// customerId is taken from the authenticated caller and never changes.
type Transaction struct {
	ID                 string            `json:"id" bson:"_id,omitempty"`
	CustomerID         string            `json:"customerId" bson:"customerId"`
	Amount             Amount            `json:"amount" bson:"amount"`
	Currency           string            `json:"currency" bson:"currency"`
	Description        string            `json:"description" bson:"description"`
	Type               string            `json:"type" bson:"type"`
	RecipientReference string            `json:"recipientReference,omitempty" bson:"recipientReference,omitempty"`
	CustomerReference  string            `json:"customerReference,omitempty" bson:"customerReference,omitempty"`
	SwiftCode          string            `json:"swiftCode,omitempty" bson:"swiftCode,omitempty"`
	Status             TransactionStatus `json:"status" bson:"status"`
	ReviewedBy         string            `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	CreatedAt          time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt" bson:"updatedAt"`
}

type CreateTransactionRequest struct {
	Amount             *Amount `json:"amount" validate:"required"`
	Currency           string  `json:"currency" validate:"omitempty,len=3,alpha"`
	Description        string  `json:"description" validate:"required,max=256"`
	Type               string  `json:"type" validate:"omitempty,max=32"`
	RecipientReference string  `json:"recipientReference" validate:"omitempty,max=64"`
	CustomerReference  string  `json:"customerReference" validate:"omitempty,max=64"`
	SwiftCode          string  `json:"swiftCode" validate:"omitempty,bic"`
}

// ReviewRequest is the body of a staff status decision. Status is checked by the
// lifecycle rules rather than the validator so that a bad target reports InvalidStatus.
type ReviewRequest struct {
	Status             string  `json:"status"`
	RecipientReference *string `json:"recipientReference" validate:"omitempty,max=64"`
	CustomerReference  *string `json:"customerReference" validate:"omitempty,max=64"`
	SwiftCode          *string `json:"swiftCode" validate:"omitempty,bic"`
}

type TransactionPage struct {
	Data  []*Transaction `json:"data"`
	Total int64          `json:"total"`
	Page  int64          `json:"page"`
	Limit int64          `json:"limit"`
}
