package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type PaymentLog struct {
	ID uint `gorm:"primaryKey"`

	EntryID         uint `gorm:"index"`
	RazorpayOrderID string
	Amount          int64  `gorm:"not null"`
	Status          string `gorm:"not null"`
	GatewayResponse string `gorm:"type:jsonb"`

	CreatedAt time.Time `gorm:"not null"`
}

type PaymentLogDAO struct {
	db *gorm.DB
}

func NewPaymentLogDAO(db *gorm.DB) *PaymentLogDAO {
	return &PaymentLogDAO{
		db: db,
	}
}

func (d *PaymentLogDAO) Insert(ctx context.Context, log PaymentLog) (PaymentLog, error) {
	result := d.db.WithContext(ctx).Create(&log)
	if result.Error != nil {
		return PaymentLog{}, result.Error
	}

	return log, nil
}

func (d *PaymentLogDAO) FindByEntryID(ctx context.Context, entryID uint) ([]PaymentLog, error) {
	var logs []PaymentLog

	result := d.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("created_at ASC").
		Find(&logs)
	if result.Error != nil {
		return nil, result.Error
	}

	return logs, nil
}
