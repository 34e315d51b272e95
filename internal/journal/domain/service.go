package domain

import (
	"context"
	"time"

	"github.com/sunugrid/voltara/pkg/db/pagination"
)

type Service interface {
	Append(ctx context.Context, entry Entry) error
	Statistics(ctx context.Context, req StatsRequest) (*Statistics, error)
	List(ctx context.Context, req ListRequest) (*Page, error)
	// Purge deletes entries older than the configured retention window and
	// returns the number of rows removed.
	Purge(ctx context.Context) (int64, error)
}

type StatsRequest struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

type Statistics struct {
	Summary   Summary       `json:"summary"`
	TopMeters []MeterVolume `json:"top_meters"`
	Tiers     []TierVolume  `json:"tiers"`
	From      *time.Time    `json:"from,omitempty"`
	To        *time.Time    `json:"to,omitempty"`
}

type ListRequest struct {
	Filter string `form:"filter" json:"filter,omitempty"`
	pagination.Pagination
}

type Page struct {
	Entries  []Entry             `json:"entries"`
	PageInfo pagination.PageInfo `json:"page_info"`
}
