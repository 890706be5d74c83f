package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSettingsNotFound = errors.New("raffle settings not found")

type RaffleSettings struct {
	ID uint `gorm:"primaryKey"`

	IsActive   bool  `gorm:"not null;default:true"`
	EntryPrice int64 `gorm:"not null;default:10000"`
	MaxEntries *int64
	EndDate    *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type RaffleSettingsDAO struct {
	db *gorm.DB
}

func NewRaffleSettingsDAO(db *gorm.DB) *RaffleSettingsDAO {
	return &RaffleSettingsDAO{
		db: db,
	}
}

// FindLatest returns the newest settings row. Admin tooling appends new
// rows instead of mutating old ones, so latest wins.
func (d *RaffleSettingsDAO) FindLatest(ctx context.Context) (RaffleSettings, error) {
	var settings RaffleSettings

	result := d.db.WithContext(ctx).Order("created_at DESC").First(&settings)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return RaffleSettings{}, ErrSettingsNotFound
		}

		return RaffleSettings{}, result.Error
	}

	return settings, nil
}

func (d *RaffleSettingsDAO) Insert(ctx context.Context, settings RaffleSettings) (RaffleSettings, error) {
	result := d.db.WithContext(ctx).Create(&settings)
	if result.Error != nil {
		return RaffleSettings{}, result.Error
	}

	return settings, nil
}
