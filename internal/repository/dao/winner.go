package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrWinnerExists   = errors.New("winner already selected")
	ErrWinnerNotFound = errors.New("winner not found")
)

// Winner allows at most one live row. DrawLock is a constant column with
// a unique index, so a second concurrent insert loses at the database
// rather than in the check-then-create race.
type Winner struct {
	ID uint `gorm:"primaryKey"`

	EntryID uint  `gorm:"not null"`
	Entry   Entry `gorm:"foreignKey:EntryID"`

	DrawLock    int16     `gorm:"not null;default:1;uniqueIndex:idx_winners_draw_lock"`
	AnnouncedAt time.Time `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type WinnerDAO struct {
	db *gorm.DB
}

func NewWinnerDAO(db *gorm.DB) *WinnerDAO {
	return &WinnerDAO{
		db: db,
	}
}

func (d *WinnerDAO) Insert(ctx context.Context, winner Winner) (Winner, error) {
	winner.DrawLock = 1

	result := d.db.WithContext(ctx).Create(&winner)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Winner{}, ErrWinnerExists
		}

		return Winner{}, result.Error
	}

	return winner, nil
}

func (d *WinnerDAO) FindCurrent(ctx context.Context) (Winner, error) {
	var winner Winner

	result := d.db.WithContext(ctx).
		Preload("Entry").
		Preload("Entry.User").
		Order("created_at DESC").
		First(&winner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Winner{}, ErrWinnerNotFound
		}

		return Winner{}, result.Error
	}

	return winner, nil
}

func (d *WinnerDAO) DeleteAll(ctx context.Context) error {
	result := d.db.WithContext(ctx).Where("1 = 1").Delete(&Winner{})

	return result.Error
}
