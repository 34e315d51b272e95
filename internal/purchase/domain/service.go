package domain

import (
	"context"
	"time"

	"github.com/sunugrid/voltara/pkg/db/pagination"
)

type Service interface {
	// ProcessPurchase runs one purchase attempt end to end. Business
	// failures (bad input, unknown or inactive meter, unusable tariff
	// schedule) come back inside the result with a nil error; a non-nil
	// error always means an infrastructure failure the caller may retry.
	ProcessPurchase(ctx context.Context, req ProcessRequest) (*ProcessResult, error)
	GetByReference(ctx context.Context, reference string) (*Transaction, error)
	History(ctx context.Context, req HistoryRequest) (*HistoryPage, error)
}

type ProcessRequest struct {
	MeterIdentifier string  `json:"meter"`
	Amount          float64 `json:"amount"`
	OriginIP        string  `json:"-"`
	OriginLabel     string  `json:"origin_label"`
}

// BreakdownLine mirrors one engine allocation line for persistence and
// API responses.
type BreakdownLine struct {
	TierOrdinal int     `json:"tier_ordinal"`
	UnitPrice   float64 `json:"unit_price"`
	Kwh         float64 `json:"kwh"`
	Amount      float64 `json:"amount"`
}

type ProcessResult struct {
	Outcome          Outcome         `json:"outcome"`
	Reference        string          `json:"reference"`
	RechargeCode     string          `json:"recharge_code,omitempty"`
	MeterIdentifier  string          `json:"meter_identifier"`
	ClientName       string          `json:"client_name,omitempty"`
	AmountPaid       float64         `json:"amount_paid"`
	EnergyKwh        float64         `json:"energy_kwh"`
	FinalTierOrdinal *int            `json:"final_tier_ordinal,omitempty"`
	FinalUnitPrice   *float64        `json:"final_unit_price,omitempty"`
	Breakdown        []BreakdownLine `json:"breakdown,omitempty"`
	FailureReason    *FailureReason  `json:"failure_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (r *ProcessResult) Failed() bool {
	return r.Outcome == OutcomeFailed
}

type HistoryRequest struct {
	MeterIdentifier string `form:"meter" json:"meter,omitempty"`
	pagination.Pagination
}

type HistoryPage struct {
	Transactions []Transaction       `json:"transactions"`
	PageInfo     pagination.PageInfo `json:"page_info"`
}
