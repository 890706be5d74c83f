package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/repository/dao"
)

var (
	ErrWinnerExists   = dao.ErrWinnerExists
	ErrWinnerNotFound = dao.ErrWinnerNotFound
)

type WinnerDAO interface {
	Insert(ctx context.Context, winner dao.Winner) (dao.Winner, error)
	FindCurrent(ctx context.Context) (dao.Winner, error)
	DeleteAll(ctx context.Context) error
}

type WinnerRepository struct {
	dao WinnerDAO
}

func NewWinnerRepository(dao WinnerDAO) *WinnerRepository {
	return &WinnerRepository{
		dao: dao,
	}
}

func (r *WinnerRepository) Create(ctx context.Context, entryID uint) (domain.Winner, error) {
	created, err := r.dao.Insert(ctx, dao.Winner{
		EntryID:     entryID,
		AnnouncedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, dao.ErrWinnerExists) {
			return domain.Winner{}, ErrWinnerExists
		}

		return domain.Winner{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *WinnerRepository) Current(ctx context.Context) (domain.Winner, error) {
	found, err := r.dao.FindCurrent(ctx)
	if err != nil {
		if errors.Is(err, dao.ErrWinnerNotFound) {
			return domain.Winner{}, ErrWinnerNotFound
		}

		return domain.Winner{}, fmt.Errorf("r.dao.FindCurrent -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *WinnerRepository) Clear(ctx context.Context) error {
	if err := r.dao.DeleteAll(ctx); err != nil {
		return fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return nil
}

func (r *WinnerRepository) daoToDomain(w dao.Winner) domain.Winner {
	return domain.Winner{
		ID:      w.ID,
		EntryID: w.EntryID,
		Entry: domain.Entry{
			ID:     w.Entry.ID,
			UserID: w.Entry.UserID,
			User: domain.User{
				ID:      w.Entry.User.ID,
				Name:    w.Entry.User.Name,
				Email:   w.Entry.User.Email,
				Phone:   w.Entry.User.Phone,
				Address: w.Entry.User.Address,
				State:   w.Entry.User.State,
				Pincode: w.Entry.User.Pincode,
			},
			Token:        w.Entry.Token,
			Amount:       w.Entry.Amount,
			Status:       domain.EntryStatus(w.Entry.Status),
			EntryNumber:  w.Entry.EntryNumber,
			TotalEntries: w.Entry.TotalEntries,
		},
		AnnouncedAt: w.AnnouncedAt,
		CreatedAt:   w.CreatedAt,
	}
}
