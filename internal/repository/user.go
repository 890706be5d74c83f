package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserPhoneExists = dao.ErrUserPhoneExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) (dao.User, error)
	UpdateContact(ctx context.Context, id uint, name, address, state, pincode string) (dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Upsert creates the entrant on first purchase and refreshes the address
// fields on repeat purchases, keyed by email-or-phone.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) (domain.User, error) {
	found, err := r.dao.FindByEmailOrPhone(ctx, user.Email, user.Phone)
	if err != nil {
		if !errors.Is(err, dao.ErrUserNotFound) {
			return domain.User{}, fmt.Errorf("r.dao.FindByEmailOrPhone -> %w", err)
		}

		created, err := r.dao.Insert(ctx, dao.User{
			Name:    user.Name,
			Email:   user.Email,
			Phone:   user.Phone,
			Address: user.Address,
			State:   user.State,
			Pincode: user.Pincode,
		})
		if err != nil {
			return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
		}

		return r.daoToDomain(created), nil
	}

	updated, err := r.dao.UpdateContact(ctx, found.ID, user.Name, user.Address, user.State, user.Pincode)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateContact -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Address:   u.Address,
		State:     u.State,
		Pincode:   u.Pincode,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
