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
	// ErrTokenExists signals a token collision at insert time. The unique
	// index is the authoritative guard; callers regenerate and retry.
	ErrTokenExists   = errors.New("entry token already exists")
	ErrEntryNotFound = errors.New("entry not found")
)

type Entry struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID"`

	Token  string `gorm:"unique;not null"`
	Amount int64  `gorm:"not null"`
	Status string `gorm:"not null;default:PENDING;index"`

	PaymentID       string
	RazorpayOrderID string `gorm:"index"`

	EntryNumber  int `gorm:"not null;default:1"`
	TotalEntries int `gorm:"not null;default:1"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EntryDAO struct {
	db *gorm.DB
}

func NewEntryDAO(db *gorm.DB) *EntryDAO {
	return &EntryDAO{
		db: db,
	}
}

func (d *EntryDAO) Insert(ctx context.Context, entry Entry) (Entry, error) {
	result := d.db.WithContext(ctx).Create(&entry)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_entries_token"`) {
			return Entry{}, ErrTokenExists
		}

		return Entry{}, result.Error
	}

	return entry, nil
}

func (d *EntryDAO) FindByToken(ctx context.Context, token string) (Entry, error) {
	var entry Entry

	result := d.db.WithContext(ctx).First(&entry, "token = ?", token)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Entry{}, ErrEntryNotFound
		}

		return Entry{}, result.Error
	}

	return entry, nil
}

func (d *EntryDAO) FindByOrderID(ctx context.Context, orderID string) ([]Entry, error) {
	var entries []Entry

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("razorpay_order_id = ?", orderID).
		Order("entry_number ASC").
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// UpdateStatusByOrderID transitions every entry of one gateway order in a
// single statement. Setting the status unconditionally keeps repeated
// verification calls idempotent.
func (d *EntryDAO) UpdateStatusByOrderID(ctx context.Context, orderID, status, paymentID string) (int64, error) {
	result := d.db.WithContext(ctx).Model(&Entry{}).
		Where("razorpay_order_id = ?", orderID).
		Updates(map[string]any{
			"status":     status,
			"payment_id": paymentID,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *EntryDAO) UpdateStatusByIDs(ctx context.Context, ids []uint, status string) error {
	if len(ids) == 0 {
		return nil
	}

	result := d.db.WithContext(ctx).Model(&Entry{}).
		Where("id IN ?", ids).
		Update("status", status)

	return result.Error
}

func (d *EntryDAO) CountAll(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Entry{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EntryDAO) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Entry{}).
		Where("status = ?", status).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EntryDAO) SumAmountByStatus(ctx context.Context, status string) (int64, error) {
	var total int64

	result := d.db.WithContext(ctx).Model(&Entry{}).
		Where("status = ?", status).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	return total, nil
}

func (d *EntryDAO) ListNewest(ctx context.Context, limit, offset int) ([]Entry, error) {
	var entries []Entry

	result := d.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *EntryDAO) ListNewestByStatus(ctx context.Context, status string, limit int) ([]Entry, error) {
	var entries []Entry

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *EntryDAO) FindAllByStatus(ctx context.Context, status string) ([]Entry, error) {
	var entries []Entry

	result := d.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", status).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// FindByStatusOlderThan feeds the reconciliation sweep: pending entries
// whose payment never completed within the cutoff window.
func (d *EntryDAO) FindByStatusOlderThan(ctx context.Context, status string, cutoff time.Time) ([]Entry, error) {
	var entries []Entry

	result := d.db.WithContext(ctx).
		Where("status = ? AND created_at < ?", status, cutoff).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
