package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/gateway/razorpay"
)

// OrderCreator is the gateway capability the checkout consumes.
type OrderCreator interface {
	CreateOrder(ctx context.Context, orderReq razorpay.OrderRequest) (razorpay.Order, error)
}

// GatewayInitiator creates a gateway order and PENDING entries tagged
// with its id. All entries of one purchase share the order id and total,
// which is what lets verification confirm them as a batch.
type GatewayInitiator struct {
	gateway OrderCreator
	entries EntryCreator
	logs    PaymentLogAppender
}

func NewGatewayInitiator(gateway OrderCreator, entries EntryCreator, logs PaymentLogAppender) *GatewayInitiator {
	return &GatewayInitiator{
		gateway: gateway,
		entries: entries,
		logs:    logs,
	}
}

func (g *GatewayInitiator) Initiate(ctx context.Context, user domain.User, tokens []string, settings domain.RaffleSettings) (CheckoutResult, error) {
	numberOfEntries := len(tokens)
	totalAmount := settings.EntryPrice * int64(numberOfEntries)

	order, err := g.gateway.CreateOrder(ctx, razorpay.OrderRequest{
		Amount:   totalAmount,
		Currency: "INR",
		Receipt:  "receipt_" + uuid.NewString(),
		Notes: map[string]string{
			"user_id":           fmt.Sprint(user.ID),
			"number_of_entries": fmt.Sprint(numberOfEntries),
		},
	})
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("g.gateway.CreateOrder -> %w", err)
	}

	created := make([]domain.Entry, 0, numberOfEntries)
	issued := make([]string, 0, numberOfEntries)
	for i, token := range tokens {
		entry, err := createEntryWithRetry(ctx, g.entries, domain.Entry{
			UserID:          user.ID,
			Token:           token,
			Amount:          settings.EntryPrice,
			Status:          domain.EntryPending,
			RazorpayOrderID: order.ID,
			EntryNumber:     i + 1,
			TotalEntries:    numberOfEntries,
		})
		if err != nil {
			return CheckoutResult{}, err
		}
		created = append(created, entry)
		issued = append(issued, entry.Token)

		if _, err = g.logs.Append(ctx, domain.PaymentLog{
			EntryID:         entry.ID,
			RazorpayOrderID: order.ID,
			Amount:          settings.EntryPrice,
			Status:          domain.PaymentInitiated,
			GatewayResponse: map[string]any{
				"order_id":      order.ID,
				"amount":        order.Amount,
				"currency":      order.Currency,
				"entry_number":  i + 1,
				"total_entries": numberOfEntries,
			},
		}); err != nil {
			return CheckoutResult{}, fmt.Errorf("g.logs.Append -> %w", err)
		}
	}

	return CheckoutResult{
		OrderID:         order.ID,
		Amount:          totalAmount,
		Currency:        "INR",
		Tokens:          issued,
		Entries:         created,
		NumberOfEntries: numberOfEntries,
	}, nil
}

// DirectConfirmInitiator is demo mode: no gateway is configured, so
// entries are created already CONFIRMED with synthetic payment ids.
type DirectConfirmInitiator struct {
	entries EntryCreator
	logs    PaymentLogAppender
}

func NewDirectConfirmInitiator(entries EntryCreator, logs PaymentLogAppender) *DirectConfirmInitiator {
	return &DirectConfirmInitiator{
		entries: entries,
		logs:    logs,
	}
}

func (d *DirectConfirmInitiator) Initiate(ctx context.Context, user domain.User, tokens []string, settings domain.RaffleSettings) (CheckoutResult, error) {
	numberOfEntries := len(tokens)
	totalAmount := settings.EntryPrice * int64(numberOfEntries)
	demoPaymentID := "demo_" + uuid.NewString()

	created := make([]domain.Entry, 0, numberOfEntries)
	issued := make([]string, 0, numberOfEntries)
	for i, token := range tokens {
		entry, err := createEntryWithRetry(ctx, d.entries, domain.Entry{
			UserID:       user.ID,
			Token:        token,
			Amount:       settings.EntryPrice,
			Status:       domain.EntryConfirmed,
			PaymentID:    fmt.Sprintf("%s_%d", demoPaymentID, i+1),
			EntryNumber:  i + 1,
			TotalEntries: numberOfEntries,
		})
		if err != nil {
			return CheckoutResult{}, err
		}
		created = append(created, entry)
		issued = append(issued, entry.Token)

		if _, err = d.logs.Append(ctx, domain.PaymentLog{
			EntryID: entry.ID,
			Amount:  settings.EntryPrice,
			Status:  domain.PaymentSuccess,
			GatewayResponse: map[string]any{
				"mode":          "demo",
				"timestamp":     time.Now().UnixMilli(),
				"entry_number":  i + 1,
				"total_entries": numberOfEntries,
			},
		}); err != nil {
			return CheckoutResult{}, fmt.Errorf("d.logs.Append -> %w", err)
		}
	}

	return CheckoutResult{
		OrderID:         demoPaymentID,
		Amount:          totalAmount,
		Currency:        "INR",
		Tokens:          issued,
		Entries:         created,
		NumberOfEntries: numberOfEntries,
		DemoMode:        true,
	}, nil
}
