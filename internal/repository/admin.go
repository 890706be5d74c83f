package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/repository/dao"
)

var ErrAdminNotFound = dao.ErrAdminNotFound

type AdminDAO interface {
	FindActiveByUsername(ctx context.Context, username string) (dao.Admin, error)
}

type AdminRepository struct {
	dao AdminDAO
}

func NewAdminRepository(dao AdminDAO) *AdminRepository {
	return &AdminRepository{
		dao: dao,
	}
}

func (r *AdminRepository) FindActiveByUsername(ctx context.Context, username string) (domain.Admin, error) {
	found, err := r.dao.FindActiveByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, dao.ErrAdminNotFound) {
			return domain.Admin{}, ErrAdminNotFound
		}

		return domain.Admin{}, fmt.Errorf("r.dao.FindActiveByUsername -> %w", err)
	}

	return domain.Admin{
		ID:        found.ID,
		Username:  found.Username,
		Password:  found.Password,
		IsActive:  found.IsActive,
		CreatedAt: found.CreatedAt,
		UpdatedAt: found.UpdatedAt,
	}, nil
}
