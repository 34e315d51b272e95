package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sunugrid/voltara/internal/clock"
	"github.com/sunugrid/voltara/internal/config"
	journaldomain "github.com/sunugrid/voltara/internal/journal/domain"
	"github.com/sunugrid/voltara/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Repo    journaldomain.Repository
	Vending *config.VendingConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	repo    journaldomain.Repository
	vending *config.VendingConfigHolder
}

func New(p Params) journaldomain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("journal.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		repo:    p.Repo,
		vending: p.Vending,
	}
}

func (s *Service) Append(ctx context.Context, entry journaldomain.Entry) error {
	if entry.ID == 0 {
		entry.ID = s.genID.Generate()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.clock.Now()
	}
	return s.repo.Append(ctx, s.db, &entry)
}

func (s *Service) Statistics(ctx context.Context, req journaldomain.StatsRequest) (*journaldomain.Statistics, error) {
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return nil, journaldomain.ErrInvalidRange
	}

	summary, err := s.repo.Summary(ctx, s.db, req.From, req.To)
	if err != nil {
		return nil, err
	}

	topN := s.vending.Get().StatsTopMeters
	topMeters, err := s.repo.TopMeters(ctx, s.db, req.From, req.To, topN)
	if err != nil {
		return nil, err
	}

	tiers, err := s.repo.TierBreakdown(ctx, s.db, req.From, req.To)
	if err != nil {
		return nil, err
	}

	return &journaldomain.Statistics{
		Summary:   *summary,
		TopMeters: topMeters,
		Tiers:     tiers,
		From:      req.From,
		To:        req.To,
	}, nil
}

func (s *Service) List(ctx context.Context, req journaldomain.ListRequest) (*journaldomain.Page, error) {
	p := req.Pagination.Normalize()
	entries, total, err := s.repo.List(ctx, s.db, strings.TrimSpace(req.Filter), p)
	if err != nil {
		return nil, err
	}

	return &journaldomain.Page{
		Entries:  entries,
		PageInfo: pagination.BuildPageInfo(p, total),
	}, nil
}

func (s *Service) Purge(ctx context.Context) (int64, error) {
	retention := s.vending.Get().JournalRetentionDays
	cutoff := s.clock.Now().AddDate(0, 0, -retention)

	removed, err := s.repo.DeleteOlderThan(ctx, s.db, cutoff)
	if err != nil {
		return 0, err
	}

	s.log.Info("journal retention purge",
		zap.Int("retention_days", retention),
		zap.Time("cutoff", cutoff),
		zap.Int64("removed", removed),
	)
	return removed, nil
}
