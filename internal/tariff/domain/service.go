package domain

import (
	"context"
	"time"
)

type Service interface {
	// ActiveSchedule returns the active tiers ordered by ascending ordinal,
	// validated against the partition invariant.
	ActiveSchedule(ctx context.Context) ([]Tier, error)
	List(ctx context.Context) ([]Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, req UpdateRequest) (*Response, error)
	GetByOrdinal(ctx context.Context, ordinal int) (*Response, error)
}

type CreateRequest struct {
	Ordinal       int     `json:"ordinal"`
	LowerBoundKwh float64 `json:"lower_bound_kwh"`
	UpperBoundKwh float64 `json:"upper_bound_kwh"`
	UnitPrice     float64 `json:"unit_price"`
	Description   string  `json:"description"`
	Active        *bool   `json:"active"`
}

type UpdateRequest struct {
	Ordinal       int      `json:"ordinal"`
	LowerBoundKwh *float64 `json:"lower_bound_kwh,omitempty"`
	UpperBoundKwh *float64 `json:"upper_bound_kwh,omitempty"`
	UnitPrice     *float64 `json:"unit_price,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Active        *bool    `json:"active,omitempty"`
}

type Response struct {
	ID            string    `json:"id"`
	Ordinal       int       `json:"ordinal"`
	LowerBoundKwh float64   `json:"lower_bound_kwh"`
	UpperBoundKwh float64   `json:"upper_bound_kwh"`
	UnitPrice     float64   `json:"unit_price"`
	Description   string    `json:"description"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
