package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sunugrid/voltara/internal/clock"
	tariffdomain "github.com/sunugrid/voltara/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  tariffdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  tariffdomain.Repository
}

func New(p Params) tariffdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("tariff.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) ActiveSchedule(ctx context.Context) ([]tariffdomain.Tier, error) {
	tiers, err := s.repo.ActiveTiers(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if err := tariffdomain.ValidateSchedule(tiers); err != nil {
		s.log.Error("active tariff schedule is unusable",
			zap.Int("tiers", len(tiers)),
			zap.Error(err),
		)
		return nil, err
	}
	return tiers, nil
}

func (s *Service) List(ctx context.Context) ([]tariffdomain.Response, error) {
	tiers, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]tariffdomain.Response, 0, len(tiers))
	for i := range tiers {
		resp = append(resp, *toResponse(&tiers[i]))
	}
	return resp, nil
}

func (s *Service) Create(ctx context.Context, req tariffdomain.CreateRequest) (*tariffdomain.Response, error) {
	if req.Ordinal <= 0 {
		return nil, tariffdomain.ErrInvalidOrdinal
	}
	if req.UnitPrice <= 0 {
		return nil, tariffdomain.ErrInvalidUnitPrice
	}
	if req.LowerBoundKwh < 0 {
		return nil, tariffdomain.ErrInvalidBounds
	}
	if req.UpperBoundKwh != 0 && req.UpperBoundKwh <= req.LowerBoundKwh {
		return nil, tariffdomain.ErrInvalidBounds
	}

	existing, err := s.repo.FindByOrdinal(ctx, s.db, req.Ordinal)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, tariffdomain.ErrDuplicateOrdinal
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	now := s.clock.Now()
	tier := &tariffdomain.Tier{
		ID:            s.genID.Generate(),
		Ordinal:       req.Ordinal,
		LowerBoundKwh: req.LowerBoundKwh,
		UpperBoundKwh: req.UpperBoundKwh,
		UnitPrice:     req.UnitPrice,
		Description:   strings.TrimSpace(req.Description),
		Active:        active,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, tier); err != nil {
		return nil, err
	}

	return toResponse(tier), nil
}

func (s *Service) Update(ctx context.Context, req tariffdomain.UpdateRequest) (*tariffdomain.Response, error) {
	tier, err := s.repo.FindByOrdinal(ctx, s.db, req.Ordinal)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, tariffdomain.ErrNotFound
	}

	if req.LowerBoundKwh != nil {
		if *req.LowerBoundKwh < 0 {
			return nil, tariffdomain.ErrInvalidBounds
		}
		tier.LowerBoundKwh = *req.LowerBoundKwh
	}
	if req.UpperBoundKwh != nil {
		tier.UpperBoundKwh = *req.UpperBoundKwh
	}
	if tier.UpperBoundKwh != 0 && tier.UpperBoundKwh <= tier.LowerBoundKwh {
		return nil, tariffdomain.ErrInvalidBounds
	}
	if req.UnitPrice != nil {
		if *req.UnitPrice <= 0 {
			return nil, tariffdomain.ErrInvalidUnitPrice
		}
		tier.UnitPrice = *req.UnitPrice
	}
	if req.Description != nil {
		tier.Description = strings.TrimSpace(*req.Description)
	}
	if req.Active != nil {
		tier.Active = *req.Active
	}

	tier.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, tier); err != nil {
		return nil, err
	}

	return toResponse(tier), nil
}

func (s *Service) GetByOrdinal(ctx context.Context, ordinal int) (*tariffdomain.Response, error) {
	tier, err := s.repo.FindByOrdinal(ctx, s.db, ordinal)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, tariffdomain.ErrNotFound
	}
	return toResponse(tier), nil
}

func toResponse(t *tariffdomain.Tier) *tariffdomain.Response {
	return &tariffdomain.Response{
		ID:            t.ID.String(),
		Ordinal:       t.Ordinal,
		LowerBoundKwh: t.LowerBoundKwh,
		UpperBoundKwh: t.UpperBoundKwh,
		UnitPrice:     t.UnitPrice,
		Description:   t.Description,
		Active:        t.Active,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}
