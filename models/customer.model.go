package models

import "time"

type Customer struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	FullName      string    `json:"fullName" bson:"fullName"`
	Username      string    `json:"username" bson:"username"`
	IDNumber      string    `json:"idNumber" bson:"idNumber"`
	AccountNumber string    `json:"accountNumber" bson:"accountNumber"`
	Password      string    `json:"-" bson:"password"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

type RegisterCustomerRequest struct {
	FullName string `json:"fullName" validate:"required,min=3,max=100"`
	Username string `json:"username" validate:"required,min=3,max=50,alphanum"`
	IDNumber string `json:"idNumber" validate:"required,numeric,len=13"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type CustomerLoginRequest struct {
	Username      string `json:"username" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required,numeric"`
	Password      string `json:"password" validate:"required"`
}
