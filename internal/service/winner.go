package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/repository"
)

var (
	ErrWinnerAlreadySelected = errors.New("winner already selected")
	ErrNoEligibleEntries     = errors.New("no eligible entries found for winner selection")
	ErrNoWinner              = repository.ErrWinnerNotFound
)

type WinnerRepo interface {
	Create(ctx context.Context, entryID uint) (domain.Winner, error)
	Current(ctx context.Context) (domain.Winner, error)
	Clear(ctx context.Context) error
}

type WinnerEntryRepository interface {
	FindAllByStatus(ctx context.Context, status domain.EntryStatus) ([]domain.Entry, error)
}

type WinnerService struct {
	winners WinnerRepo
	entries WinnerEntryRepository
	draw    func(n int) int
}

func NewWinnerService(winners WinnerRepo, entries WinnerEntryRepository) *WinnerService {
	return &WinnerService{
		winners: winners,
		entries: entries,
		draw:    rand.Intn,
	}
}

// Select draws one winner uniformly from the CONFIRMED entries. The
// existence check is advisory; the winner table's unique constraint
// settles concurrent draws, and the loser surfaces as AlreadySelected.
func (s *WinnerService) Select(ctx context.Context) (domain.WinnerDetails, error) {
	_, err := s.winners.Current(ctx)
	if err == nil {
		return domain.WinnerDetails{}, ErrWinnerAlreadySelected
	}
	if !errors.Is(err, repository.ErrWinnerNotFound) {
		return domain.WinnerDetails{}, fmt.Errorf("s.winners.Current -> %w", err)
	}

	eligible, err := s.entries.FindAllByStatus(ctx, domain.EntryConfirmed)
	if err != nil {
		return domain.WinnerDetails{}, fmt.Errorf("s.entries.FindAllByStatus -> %w", err)
	}
	if len(eligible) == 0 {
		return domain.WinnerDetails{}, ErrNoEligibleEntries
	}

	winning := eligible[s.draw(len(eligible))]

	if _, err = s.winners.Create(ctx, winning.ID); err != nil {
		if errors.Is(err, repository.ErrWinnerExists) {
			return domain.WinnerDetails{}, ErrWinnerAlreadySelected
		}

		return domain.WinnerDetails{}, fmt.Errorf("s.winners.Create -> %w", err)
	}

	return domain.WinnerDetails{
		Name:    winning.User.Name,
		Token:   winning.Token,
		Email:   winning.User.Email,
		Phone:   winning.User.Phone,
		Address: winning.User.Address,
		State:   winning.User.State,
		Pincode: winning.User.Pincode,
	}, nil
}

func (s *WinnerService) Current(ctx context.Context) (domain.Winner, error) {
	winner, err := s.winners.Current(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrWinnerNotFound) {
			return domain.Winner{}, ErrNoWinner
		}

		return domain.Winner{}, fmt.Errorf("s.winners.Current -> %w", err)
	}

	return winner, nil
}

// Clear deletes all winner records so a fresh draw can happen.
// No winner history is kept.
func (s *WinnerService) Clear(ctx context.Context) error {
	if err := s.winners.Clear(ctx); err != nil {
		return fmt.Errorf("s.winners.Clear -> %w", err)
	}

	return nil
}
