package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/repository/dao"
)

type PaymentLogDAO interface {
	Insert(ctx context.Context, log dao.PaymentLog) (dao.PaymentLog, error)
	FindByEntryID(ctx context.Context, entryID uint) ([]dao.PaymentLog, error)
}

type PaymentLogRepository struct {
	dao PaymentLogDAO
}

func NewPaymentLogRepository(dao PaymentLogDAO) *PaymentLogRepository {
	return &PaymentLogRepository{
		dao: dao,
	}
}

// Append writes one audit row. The gateway payload is stored as opaque
// JSON and never read back by the core lifecycle.
func (r *PaymentLogRepository) Append(ctx context.Context, log domain.PaymentLog) (domain.PaymentLog, error) {
	payload := []byte("{}")
	if log.GatewayResponse != nil {
		encoded, err := json.Marshal(log.GatewayResponse)
		if err != nil {
			return domain.PaymentLog{}, fmt.Errorf("json.Marshal -> %w", err)
		}
		payload = encoded
	}

	created, err := r.dao.Insert(ctx, dao.PaymentLog{
		EntryID:         log.EntryID,
		RazorpayOrderID: log.RazorpayOrderID,
		Amount:          log.Amount,
		Status:          string(log.Status),
		GatewayResponse: string(payload),
	})
	if err != nil {
		return domain.PaymentLog{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	log.ID = created.ID
	log.CreatedAt = created.CreatedAt

	return log, nil
}
