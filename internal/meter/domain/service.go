package domain

import (
	"context"
	"time"
)

// Gateway is the narrow contract the purchase processor depends on.
type Gateway interface {
	// Find returns the account with its owner attached, or nil when the
	// identifier is unknown.
	Find(ctx context.Context, identifier string) (*Account, error)
	CreditBalance(ctx context.Context, identifier string, deltaKwh float64) error
}

// Service adds the administrative surface on top of the Gateway.
type Service interface {
	Gateway

	Create(ctx context.Context, req CreateRequest) (*Response, error)
	List(ctx context.Context) ([]Response, error)
	GetByIdentifier(ctx context.Context, identifier string) (*Response, error)
	SetStatus(ctx context.Context, identifier string, status Status) error
}

type CreateRequest struct {
	Identifier string `json:"identifier"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type Response struct {
	ID                   string     `json:"id"`
	Identifier           string     `json:"identifier"`
	Status               Status     `json:"status"`
	AccumulatedCreditKwh float64    `json:"accumulated_credit_kwh"`
	LastPurchaseAt       *time.Time `json:"last_purchase_at,omitempty"`
	OwnerName            string     `json:"owner_name"`
	Phone                string     `json:"phone,omitempty"`
	Address              string     `json:"address,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}
