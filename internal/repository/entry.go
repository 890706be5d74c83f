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
	ErrTokenExists   = dao.ErrTokenExists
	ErrEntryNotFound = dao.ErrEntryNotFound
)

type EntryDAO interface {
	Insert(ctx context.Context, entry dao.Entry) (dao.Entry, error)
	FindByToken(ctx context.Context, token string) (dao.Entry, error)
	FindByOrderID(ctx context.Context, orderID string) ([]dao.Entry, error)
	UpdateStatusByOrderID(ctx context.Context, orderID, status, paymentID string) (int64, error)
	UpdateStatusByIDs(ctx context.Context, ids []uint, status string) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	SumAmountByStatus(ctx context.Context, status string) (int64, error)
	ListNewest(ctx context.Context, limit, offset int) ([]dao.Entry, error)
	ListNewestByStatus(ctx context.Context, status string, limit int) ([]dao.Entry, error)
	FindAllByStatus(ctx context.Context, status string) ([]dao.Entry, error)
	FindByStatusOlderThan(ctx context.Context, status string, cutoff time.Time) ([]dao.Entry, error)
}

type EntryRepository struct {
	dao EntryDAO
}

func NewEntryRepository(dao EntryDAO) *EntryRepository {
	return &EntryRepository{
		dao: dao,
	}
}

func (r *EntryRepository) Create(ctx context.Context, entry domain.Entry) (domain.Entry, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(entry))
	if err != nil {
		if errors.Is(err, dao.ErrTokenExists) {
			return domain.Entry{}, ErrTokenExists
		}

		return domain.Entry{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

// TokenInUse is the pre-insert collision check for the generation loop.
// The unique index remains the authoritative guard.
func (r *EntryRepository) TokenInUse(ctx context.Context, token string) (bool, error) {
	_, err := r.dao.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, dao.ErrEntryNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("r.dao.FindByToken -> %w", err)
	}

	return true, nil
}

func (r *EntryRepository) FindByOrderID(ctx context.Context, orderID string) ([]domain.Entry, error) {
	found, err := r.dao.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOrderID -> %w", err)
	}

	return r.daosToDomains(found), nil
}

func (r *EntryRepository) UpdateStatusByOrderID(ctx context.Context, orderID string, status domain.EntryStatus, paymentID string) (int64, error) {
	affected, err := r.dao.UpdateStatusByOrderID(ctx, orderID, string(status), paymentID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.UpdateStatusByOrderID -> %w", err)
	}

	return affected, nil
}

func (r *EntryRepository) UpdateStatusByIDs(ctx context.Context, ids []uint, status domain.EntryStatus) error {
	if err := r.dao.UpdateStatusByIDs(ctx, ids, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatusByIDs -> %w", err)
	}

	return nil
}

func (r *EntryRepository) CountAll(ctx context.Context) (int64, error) {
	count, err := r.dao.CountAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAll -> %w", err)
	}

	return count, nil
}

func (r *EntryRepository) CountByStatus(ctx context.Context, status domain.EntryStatus) (int64, error) {
	count, err := r.dao.CountByStatus(ctx, string(status))
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByStatus -> %w", err)
	}

	return count, nil
}

func (r *EntryRepository) SumConfirmedAmount(ctx context.Context) (int64, error) {
	total, err := r.dao.SumAmountByStatus(ctx, string(domain.EntryConfirmed))
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumAmountByStatus -> %w", err)
	}

	return total, nil
}

func (r *EntryRepository) ListNewest(ctx context.Context, limit, offset int) ([]domain.Entry, error) {
	found, err := r.dao.ListNewest(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListNewest -> %w", err)
	}

	return r.daosToDomains(found), nil
}

func (r *EntryRepository) ListNewestByStatus(ctx context.Context, status domain.EntryStatus, limit int) ([]domain.Entry, error) {
	found, err := r.dao.ListNewestByStatus(ctx, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListNewestByStatus -> %w", err)
	}

	return r.daosToDomains(found), nil
}

func (r *EntryRepository) FindAllByStatus(ctx context.Context, status domain.EntryStatus) ([]domain.Entry, error) {
	found, err := r.dao.FindAllByStatus(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllByStatus -> %w", err)
	}

	return r.daosToDomains(found), nil
}

func (r *EntryRepository) FindPendingOlderThan(ctx context.Context, cutoff time.Time) ([]domain.Entry, error) {
	found, err := r.dao.FindByStatusOlderThan(ctx, string(domain.EntryPending), cutoff)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByStatusOlderThan -> %w", err)
	}

	return r.daosToDomains(found), nil
}

func (r *EntryRepository) domainToDao(e domain.Entry) dao.Entry {
	return dao.Entry{
		ID:              e.ID,
		UserID:          e.UserID,
		Token:           e.Token,
		Amount:          e.Amount,
		Status:          string(e.Status),
		PaymentID:       e.PaymentID,
		RazorpayOrderID: e.RazorpayOrderID,
		EntryNumber:     e.EntryNumber,
		TotalEntries:    e.TotalEntries,
	}
}

func (r *EntryRepository) daoToDomain(e dao.Entry) domain.Entry {
	return domain.Entry{
		ID:              e.ID,
		UserID:          e.UserID,
		User: domain.User{
			ID:      e.User.ID,
			Name:    e.User.Name,
			Email:   e.User.Email,
			Phone:   e.User.Phone,
			Address: e.User.Address,
			State:   e.User.State,
			Pincode: e.User.Pincode,
		},
		Token:           e.Token,
		Amount:          e.Amount,
		Status:          domain.EntryStatus(e.Status),
		PaymentID:       e.PaymentID,
		RazorpayOrderID: e.RazorpayOrderID,
		EntryNumber:     e.EntryNumber,
		TotalEntries:    e.TotalEntries,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EntryRepository) daosToDomains(entries []dao.Entry) []domain.Entry {
	out := make([]domain.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, r.daoToDomain(e))
	}

	return out
}
