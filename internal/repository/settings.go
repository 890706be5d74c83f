package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/repository/dao"
)

var ErrSettingsNotFound = dao.ErrSettingsNotFound

type RaffleSettingsDAO interface {
	FindLatest(ctx context.Context) (dao.RaffleSettings, error)
	Insert(ctx context.Context, settings dao.RaffleSettings) (dao.RaffleSettings, error)
}

type RaffleSettingsRepository struct {
	dao RaffleSettingsDAO
}

func NewRaffleSettingsRepository(dao RaffleSettingsDAO) *RaffleSettingsRepository {
	return &RaffleSettingsRepository{
		dao: dao,
	}
}

func (r *RaffleSettingsRepository) Latest(ctx context.Context) (domain.RaffleSettings, error) {
	found, err := r.dao.FindLatest(ctx)
	if err != nil {
		if errors.Is(err, dao.ErrSettingsNotFound) {
			return domain.RaffleSettings{}, ErrSettingsNotFound
		}

		return domain.RaffleSettings{}, fmt.Errorf("r.dao.FindLatest -> %w", err)
	}

	return r.daoToDomain(found), nil
}

// EnsureDefault seeds the settings row from config on first boot. It is a
// no-op when any settings row already exists.
func (r *RaffleSettingsRepository) EnsureDefault(ctx context.Context, settings domain.RaffleSettings) error {
	_, err := r.dao.FindLatest(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, dao.ErrSettingsNotFound) {
		return fmt.Errorf("r.dao.FindLatest -> %w", err)
	}

	_, err = r.dao.Insert(ctx, dao.RaffleSettings{
		IsActive:   settings.IsActive,
		EntryPrice: settings.EntryPrice,
		MaxEntries: settings.MaxEntries,
		EndDate:    settings.EndDate,
	})
	if err != nil {
		return fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return nil
}

// Replace appends a new settings row, which becomes effective
// immediately because the newest row wins.
func (r *RaffleSettingsRepository) Replace(ctx context.Context, settings domain.RaffleSettings) (domain.RaffleSettings, error) {
	created, err := r.dao.Insert(ctx, dao.RaffleSettings{
		IsActive:   settings.IsActive,
		EntryPrice: settings.EntryPrice,
		MaxEntries: settings.MaxEntries,
		EndDate:    settings.EndDate,
	})
	if err != nil {
		return domain.RaffleSettings{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RaffleSettingsRepository) daoToDomain(s dao.RaffleSettings) domain.RaffleSettings {
	return domain.RaffleSettings{
		ID:         s.ID,
		IsActive:   s.IsActive,
		EntryPrice: s.EntryPrice,
		MaxEntries: s.MaxEntries,
		EndDate:    s.EndDate,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
