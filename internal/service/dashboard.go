package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/repository"
)

const (
	recentEntriesLimit   = 50
	eligibleEntriesLimit = 20
)

type DashboardEntryRepository interface {
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.EntryStatus) (int64, error)
	SumConfirmedAmount(ctx context.Context) (int64, error)
	ListNewest(ctx context.Context, limit, offset int) ([]domain.Entry, error)
	ListNewestByStatus(ctx context.Context, status domain.EntryStatus, limit int) ([]domain.Entry, error)
}

type DashboardWinnerRepository interface {
	Current(ctx context.Context) (domain.Winner, error)
}

type DashboardStats struct {
	TotalEntries     int64 `json:"totalEntries"`
	ConfirmedEntries int64 `json:"confirmedEntries"`
	PendingEntries   int64 `json:"pendingEntries"`
	FailedEntries    int64 `json:"failedEntries"`
	TotalRevenue     int64 `json:"totalRevenue"`
	EligibleForDraw  int64 `json:"eligibleForDraw"`
}

type Dashboard struct {
	Stats           DashboardStats `json:"stats"`
	CurrentWinner   *domain.Winner `json:"currentWinner"`
	RecentEntries   []domain.Entry `json:"recentEntries"`
	EligibleEntries []domain.Entry `json:"eligibleEntries"`
}

type DashboardService struct {
	entries DashboardEntryRepository
	winners DashboardWinnerRepository
}

func NewDashboardService(entries DashboardEntryRepository, winners DashboardWinnerRepository) *DashboardService {
	return &DashboardService{
		entries: entries,
		winners: winners,
	}
}

// Load fans the independent read-only aggregates out concurrently and
// joins them before responding. No ordering dependency exists between
// the queries.
func (s *DashboardService) Load(ctx context.Context) (Dashboard, error) {
	var dashboard Dashboard

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		total, err := s.entries.CountAll(gctx)
		dashboard.Stats.TotalEntries = total
		return err
	})
	g.Go(func() error {
		confirmed, err := s.entries.CountByStatus(gctx, domain.EntryConfirmed)
		dashboard.Stats.ConfirmedEntries = confirmed
		dashboard.Stats.EligibleForDraw = confirmed
		return err
	})
	g.Go(func() error {
		pending, err := s.entries.CountByStatus(gctx, domain.EntryPending)
		dashboard.Stats.PendingEntries = pending
		return err
	})
	g.Go(func() error {
		failed, err := s.entries.CountByStatus(gctx, domain.EntryFailed)
		dashboard.Stats.FailedEntries = failed
		return err
	})
	g.Go(func() error {
		revenue, err := s.entries.SumConfirmedAmount(gctx)
		dashboard.Stats.TotalRevenue = revenue
		return err
	})
	g.Go(func() error {
		winner, err := s.winners.Current(gctx)
		if err != nil {
			if errors.Is(err, repository.ErrWinnerNotFound) {
				return nil
			}
			return err
		}
		dashboard.CurrentWinner = &winner
		return nil
	})
	g.Go(func() error {
		recent, err := s.entries.ListNewest(gctx, recentEntriesLimit, 0)
		dashboard.RecentEntries = recent
		return err
	})
	g.Go(func() error {
		eligible, err := s.entries.ListNewestByStatus(gctx, domain.EntryConfirmed, eligibleEntriesLimit)
		dashboard.EligibleEntries = eligible
		return err
	})

	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("dashboard fan-out -> %w", err)
	}

	return dashboard, nil
}
