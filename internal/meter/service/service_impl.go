package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sunugrid/voltara/internal/clock"
	meterdomain "github.com/sunugrid/voltara/internal/meter/domain"
	"github.com/sunugrid/voltara/pkg/db"
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
	Repo  meterdomain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  meterdomain.Repository
}

func New(p Params) meterdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("meter.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Find(ctx context.Context, identifier string) (*meterdomain.Account, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, meterdomain.ErrInvalidIdentifier
	}
	return s.repo.FindByIdentifier(ctx, s.db, identifier)
}

func (s *Service) CreditBalance(ctx context.Context, identifier string, deltaKwh float64) error {
	if deltaKwh <= 0 {
		return meterdomain.ErrInvalidDelta
	}
	return s.repo.CreditBalance(ctx, s.db, strings.TrimSpace(identifier), deltaKwh, s.clock.Now())
}

func (s *Service) Create(ctx context.Context, req meterdomain.CreateRequest) (*meterdomain.Response, error) {
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		return nil, meterdomain.ErrInvalidIdentifier
	}

	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if firstName == "" || lastName == "" {
		return nil, meterdomain.ErrInvalidClient
	}

	now := s.clock.Now()
	client := &meterdomain.Client{
		ID:        s.genID.Generate(),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     strings.TrimSpace(req.Phone),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: now,
		UpdatedAt: now,
	}
	account := &meterdomain.Account{
		ID:         s.genID.Generate(),
		Identifier: identifier,
		ClientID:   client.ID,
		Status:     meterdomain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
		Owner:      client,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.InsertClient(ctx, tx, client); err != nil {
			return err
		}
		return s.repo.Insert(ctx, tx, account)
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, meterdomain.ErrDuplicate
		}
		return nil, err
	}

	return toResponse(account), nil
}

func (s *Service) List(ctx context.Context) ([]meterdomain.Response, error) {
	accounts, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	resp := make([]meterdomain.Response, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, *toResponse(&accounts[i]))
	}
	return resp, nil
}

func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (*meterdomain.Response, error) {
	account, err := s.Find(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, meterdomain.ErrNotFound
	}
	return toResponse(account), nil
}

func (s *Service) SetStatus(ctx context.Context, identifier string, status meterdomain.Status) error {
	if !status.Valid() {
		return meterdomain.ErrInvalidStatus
	}
	return s.repo.SetStatus(ctx, s.db, strings.TrimSpace(identifier), status, s.clock.Now())
}

func toResponse(a *meterdomain.Account) *meterdomain.Response {
	resp := &meterdomain.Response{
		ID:                   a.ID.String(),
		Identifier:           a.Identifier,
		Status:               a.Status,
		AccumulatedCreditKwh: a.AccumulatedCreditKwh,
		LastPurchaseAt:       a.LastPurchaseAt,
		CreatedAt:            a.CreatedAt,
	}
	if a.Owner != nil {
		resp.OwnerName = a.Owner.DisplayName()
		resp.Phone = a.Owner.Phone
		resp.Address = a.Owner.Address
	}
	return resp
}
