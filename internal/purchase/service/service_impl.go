package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sunugrid/voltara/internal/clock"
	"github.com/sunugrid/voltara/internal/config"
	journaldomain "github.com/sunugrid/voltara/internal/journal/domain"
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
	obsmetrics "github.com/sunugrid/voltara/internal/observability/metrics"
	purchasedomain "github.com/sunugrid/voltara/internal/purchase/domain"
	"github.com/sunugrid/voltara/internal/purchase/refcode"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
	"github.com/sunugrid/voltara/internal/tariff/engine"
	"github.com/sunugrid/voltara/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    purchasedomain.Repository
	Tariffs tariffdomain.Service
	Gateway meterdomain.Gateway
	Journal journaldomain.Service
	Vending *config.VendingConfigHolder
	Metrics *obsmetrics.Metrics `optional:"true"`
}

// Service orchestrates one purchase attempt: validate, check the meter,
// allocate energy across the tariff schedule, persist the transaction,
// credit the meter, journal the attempt. Every attempt, failed or not,
// leaves exactly one transaction row and one journal entry behind.
type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    purchasedomain.Repository
	tariffs tariffdomain.Service
	gateway meterdomain.Gateway
	journal journaldomain.Service
	vending *config.VendingConfigHolder
	metrics *obsmetrics.Metrics
}

func New(p Params) purchasedomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("purchase.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		tariffs: p.Tariffs,
		gateway: p.Gateway,
		journal: p.Journal,
		vending: p.Vending,
		metrics: p.Metrics,
	}
}

func (s *Service) ProcessPurchase(ctx context.Context, req purchasedomain.ProcessRequest) (*purchasedomain.ProcessResult, error) {
	req.MeterIdentifier = strings.TrimSpace(req.MeterIdentifier)
	if strings.TrimSpace(req.OriginLabel) == "" {
		req.OriginLabel = s.vending.Get().DefaultOriginLabel
	}

	// Bad input is still a first-class audit record; no meter or tariff
	// lookup happens on this path.
	if req.MeterIdentifier == "" || req.Amount <= 0 {
		return s.fail(ctx, req, nil, purchasedomain.ReasonInvalidArgument)
	}

	account, err := s.gateway.Find(ctx, req.MeterIdentifier)
	if err != nil {
		return nil, fmt.Errorf("meter lookup: %w", err)
	}
	if account == nil {
		return s.fail(ctx, req, nil, purchasedomain.ReasonMeterNotFound)
	}
	if account.Status != meterdomain.StatusActive {
		return s.fail(ctx, req, account, purchasedomain.ReasonMeterInactive)
	}

	tiers, err := s.tariffs.ActiveSchedule(ctx)
	if err != nil {
		if errors.Is(err, tariffdomain.ErrNoApplicableTariff) || errors.Is(err, tariffdomain.ErrInvalidSchedule) {
			return s.fail(ctx, req, account, purchasedomain.ReasonNoApplicableTariff)
		}
		return nil, fmt.Errorf("tariff schedule: %w", err)
	}

	allocation, err := engine.Allocate(req.Amount, tiers)
	if err != nil {
		if errors.Is(err, tariffdomain.ErrNoApplicableTariff) || errors.Is(err, tariffdomain.ErrInvalidSchedule) {
			return s.fail(ctx, req, account, purchasedomain.ReasonNoApplicableTariff)
		}
		return nil, fmt.Errorf("tariff allocation: %w", err)
	}

	txn, err := s.buildTransaction(req, account, allocation)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, txn); err != nil {
		return nil, fmt.Errorf("persist transaction: %w", err)
	}

	if err := s.gateway.CreditBalance(ctx, req.MeterIdentifier, allocation.TotalKwh); err != nil {
		return nil, fmt.Errorf("credit balance: %w", err)
	}

	if err := s.journal.Append(ctx, entryFrom(txn)); err != nil {
		return nil, fmt.Errorf("journal append: %w", err)
	}

	s.metrics.ObservePurchase(string(purchasedomain.OutcomeSuccess), "", allocation.TotalKwh)
	s.log.Info("purchase completed",
		zap.String("reference", txn.Reference),
		zap.String("meter", txn.MeterIdentifier),
		zap.Float64("amount", txn.AmountPaid),
		zap.Float64("kwh", txn.EnergyKwh),
		zap.Intp("final_tier", txn.FinalTierOrdinal),
	)

	return resultFrom(txn), nil
}

// fail records a failed attempt. The transaction row and journal entry are
// the audit trail; if either write fails the infrastructure error wins and
// no business result is returned.
func (s *Service) fail(ctx context.Context, req purchasedomain.ProcessRequest, account *meterdomain.Account, reason purchasedomain.FailureReason) (*purchasedomain.ProcessResult, error) {
	rechargeCode, err := refcode.NewRechargeCode()
	if err != nil {
		return nil, fmt.Errorf("generate recharge code: %w", err)
	}

	now := s.clock.Now()
	reasonStr := string(reason)
	txn := &purchasedomain.Transaction{
		ID:              s.genID.Generate(),
		Reference:       refcode.NewReference(now),
		RechargeCode:    rechargeCode,
		MeterIdentifier: req.MeterIdentifier,
		AmountPaid:      req.Amount,
		EnergyKwh:       0,
		OriginIP:        req.OriginIP,
		OriginLabel:     req.OriginLabel,
		Outcome:         purchasedomain.OutcomeFailed,
		FailureReason:   &reasonStr,
		CreatedAt:       now,
	}
	if account != nil && account.Owner != nil {
		txn.ClientName = account.Owner.DisplayName()
	}

	if err := s.repo.Insert(ctx, s.db, txn); err != nil {
		return nil, fmt.Errorf("persist failed transaction: %w", err)
	}
	if err := s.journal.Append(ctx, entryFrom(txn)); err != nil {
		return nil, fmt.Errorf("journal append: %w", err)
	}

	s.metrics.ObservePurchase(string(purchasedomain.OutcomeFailed), reasonStr, 0)
	s.log.Warn("purchase failed",
		zap.String("reference", txn.Reference),
		zap.String("meter", req.MeterIdentifier),
		zap.Float64("amount", req.Amount),
		zap.String("reason", reasonStr),
	)

	return resultFrom(txn), nil
}

func (s *Service) buildTransaction(req purchasedomain.ProcessRequest, account *meterdomain.Account, allocation *engine.Result) (*purchasedomain.Transaction, error) {
	rechargeCode, err := refcode.NewRechargeCode()
	if err != nil {
		return nil, fmt.Errorf("generate recharge code: %w", err)
	}

	breakdown := make([]purchasedomain.BreakdownLine, 0, len(allocation.Breakdown))
	for _, line := range allocation.Breakdown {
		breakdown = append(breakdown, purchasedomain.BreakdownLine(line))
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return nil, fmt.Errorf("encode breakdown: %w", err)
	}

	now := s.clock.Now()
	finalOrdinal := allocation.FinalTier.Ordinal
	finalPrice := allocation.FinalTier.UnitPrice

	txn := &purchasedomain.Transaction{
		ID:               s.genID.Generate(),
		Reference:        refcode.NewReference(now),
		RechargeCode:     rechargeCode,
		MeterIdentifier:  req.MeterIdentifier,
		AmountPaid:       req.Amount,
		EnergyKwh:        allocation.TotalKwh,
		FinalTierOrdinal: &finalOrdinal,
		FinalUnitPrice:   &finalPrice,
		OriginIP:         req.OriginIP,
		OriginLabel:      req.OriginLabel,
		Outcome:          purchasedomain.OutcomeSuccess,
		Breakdown:        datatypes.JSON(breakdownJSON),
		CreatedAt:        now,
	}
	if account.Owner != nil {
		txn.ClientName = account.Owner.DisplayName()
	}
	return txn, nil
}

func (s *Service) GetByReference(ctx context.Context, reference string) (*purchasedomain.Transaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, purchasedomain.ErrInvalidReference
	}

	txn, err := s.repo.FindByReference(ctx, s.db, reference)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, purchasedomain.ErrNotFound
	}
	return txn, nil
}

func (s *Service) History(ctx context.Context, req purchasedomain.HistoryRequest) (*purchasedomain.HistoryPage, error) {
	p := req.Pagination.Normalize()
	txns, total, err := s.repo.List(ctx, s.db, strings.TrimSpace(req.MeterIdentifier), p)
	if err != nil {
		return nil, err
	}

	return &purchasedomain.HistoryPage{
		Transactions: txns,
		PageInfo:     pagination.BuildPageInfo(p, total),
	}, nil
}

func entryFrom(txn *purchasedomain.Transaction) journaldomain.Entry {
	return journaldomain.Entry{
		Reference:        txn.Reference,
		RechargeCode:     txn.RechargeCode,
		MeterIdentifier:  txn.MeterIdentifier,
		ClientName:       txn.ClientName,
		AmountPaid:       txn.AmountPaid,
		EnergyKwh:        txn.EnergyKwh,
		FinalTierOrdinal: txn.FinalTierOrdinal,
		FinalUnitPrice:   txn.FinalUnitPrice,
		Outcome:          string(txn.Outcome),
		FailureReason:    txn.FailureReason,
		OriginIP:         txn.OriginIP,
		OriginLabel:      txn.OriginLabel,
		CreatedAt:        txn.CreatedAt,
	}
}

func resultFrom(txn *purchasedomain.Transaction) *purchasedomain.ProcessResult {
	result := &purchasedomain.ProcessResult{
		Outcome:          txn.Outcome,
		Reference:        txn.Reference,
		MeterIdentifier:  txn.MeterIdentifier,
		ClientName:       txn.ClientName,
		AmountPaid:       txn.AmountPaid,
		EnergyKwh:        txn.EnergyKwh,
		FinalTierOrdinal: txn.FinalTierOrdinal,
		FinalUnitPrice:   txn.FinalUnitPrice,
		CreatedAt:        txn.CreatedAt,
	}

	if txn.Outcome == purchasedomain.OutcomeSuccess {
		result.RechargeCode = txn.RechargeCode
		if len(txn.Breakdown) > 0 {
			var breakdown []purchasedomain.BreakdownLine
			if err := json.Unmarshal(txn.Breakdown, &breakdown); err == nil {
				result.Breakdown = breakdown
			}
		}
	}
	if txn.FailureReason != nil {
		reason := purchasedomain.FailureReason(*txn.FailureReason)
		result.FailureReason = &reason
	}
	return result
}
