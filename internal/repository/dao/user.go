package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrUserEmailExists = errors.New("user email already exists")
	ErrUserPhoneExists = errors.New("user phone already exists")
	ErrUserNotFound    = errors.New("user not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Name    string `gorm:"not null"`
	Email   string `gorm:"unique;not null"`
	Phone   string `gorm:"unique;not null"`
	Address string `gorm:"not null"`
	State   string `gorm:"not null"`
	Pincode string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			if strings.Contains(err.Message, `unique constraint "uni_users_email"`) {
				return User{}, ErrUserEmailExists
			}
			if strings.Contains(err.Message, `unique constraint "uni_users_phone"`) {
				return User{}, ErrUserPhoneExists
			}
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByEmailOrPhone matches the identity keys used for the upsert path
// at checkout: either field matching means the same entrant.
func (d *UserDAO) FindByEmailOrPhone(ctx context.Context, email, phone string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).
		Where("email = ? OR phone = ?", email, phone).
		First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// UpdateContact refreshes the mutable fields on a repeat entry. Email and
// phone are identity keys and stay untouched.
func (d *UserDAO) UpdateContact(ctx context.Context, id uint, name, address, state, pincode string) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(map[string]any{
		"name":    name,
		"address": address,
		"state":   state,
		"pincode": pincode,
	})
	if result.Error != nil {
		return User{}, result.Error
	}

	return d.FindByID(ctx, id)
}
