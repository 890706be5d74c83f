package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/pkg/raffletoken"
	"github.com/snapdraw/raffle-api/internal/repository"
)

var (
	ErrRaffleInactive    = errors.New("raffle is not currently active")
	ErrRaffleEnded       = errors.New("raffle has ended")
	ErrCapacityExceeded  = errors.New("maximum entries reached")
	ErrInvalidEntryCount = errors.New("number of entries must be between 1 and 60")
	ErrTokenGeneration   = errors.New("could not reserve a unique token")
)

// MaxEntriesPerOrder bounds one purchase, not the whole raffle.
const MaxEntriesPerOrder = 60

const tokenRetryLimit = 10

type CheckoutUserRepository interface {
	Upsert(ctx context.Context, user domain.User) (domain.User, error)
}

type CheckoutEntryRepository interface {
	Create(ctx context.Context, entry domain.Entry) (domain.Entry, error)
	TokenInUse(ctx context.Context, token string) (bool, error)
	CountByStatus(ctx context.Context, status domain.EntryStatus) (int64, error)
}

type SettingsRepository interface {
	Latest(ctx context.Context) (domain.RaffleSettings, error)
}

type PaymentLogAppender interface {
	Append(ctx context.Context, log domain.PaymentLog) (domain.PaymentLog, error)
}

// CheckoutResult is what the client needs to finish (or skip) payment.
type CheckoutResult struct {
	OrderID         string
	Amount          int64
	Currency        string
	Tokens          []string
	Entries         []domain.Entry
	NumberOfEntries int
	DemoMode        bool
}

// PaymentInitiator is the strategy split between gateway-backed checkout
// and demo mode. One implementation is selected at startup, so tests can
// substitute either without environment mutation.
type PaymentInitiator interface {
	Initiate(ctx context.Context, user domain.User, tokens []string, settings domain.RaffleSettings) (CheckoutResult, error)
}

type CheckoutService struct {
	users     CheckoutUserRepository
	entries   CheckoutEntryRepository
	settings  SettingsRepository
	initiator PaymentInitiator
}

func NewCheckoutService(users CheckoutUserRepository, entries CheckoutEntryRepository, settings SettingsRepository, initiator PaymentInitiator) *CheckoutService {
	return &CheckoutService{
		users:     users,
		entries:   entries,
		settings:  settings,
		initiator: initiator,
	}
}

// CreateOrder runs the checkout lifecycle: upsert the entrant, check
// raffle eligibility, reserve tokens, then hand off to the configured
// payment initiator.
func (s *CheckoutService) CreateOrder(ctx context.Context, user domain.User, numberOfEntries int) (CheckoutResult, error) {
	if numberOfEntries < 1 || numberOfEntries > MaxEntriesPerOrder {
		return CheckoutResult{}, ErrInvalidEntryCount
	}

	upserted, err := s.users.Upsert(ctx, user)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("s.users.Upsert -> %w", err)
	}

	settings, err := s.settings.Latest(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return CheckoutResult{}, ErrRaffleInactive
		}

		return CheckoutResult{}, fmt.Errorf("s.settings.Latest -> %w", err)
	}

	if !settings.IsActive {
		return CheckoutResult{}, ErrRaffleInactive
	}
	if settings.Ended(time.Now()) {
		return CheckoutResult{}, ErrRaffleEnded
	}
	if settings.MaxEntries != nil {
		confirmed, err := s.entries.CountByStatus(ctx, domain.EntryConfirmed)
		if err != nil {
			return CheckoutResult{}, fmt.Errorf("s.entries.CountByStatus -> %w", err)
		}
		if confirmed >= *settings.MaxEntries {
			return CheckoutResult{}, ErrCapacityExceeded
		}
	}

	tokens, err := s.reserveTokens(ctx, numberOfEntries)
	if err != nil {
		return CheckoutResult{}, err
	}

	result, err := s.initiator.Initiate(ctx, upserted, tokens, settings)
	if err != nil {
		return CheckoutResult{}, fmt.Errorf("s.initiator.Initiate -> %w", err)
	}

	return result, nil
}

// reserveTokens generates one token per requested ticket, re-rolling on
// ledger collision. The entry table's unique index remains authoritative
// at insert time; createEntryWithRetry covers that race.
func (s *CheckoutService) reserveTokens(ctx context.Context, numberOfEntries int) ([]string, error) {
	tokens := make([]string, 0, numberOfEntries)
	for i := 1; i <= numberOfEntries; i++ {
		reserved := false
		for attempt := 0; attempt < tokenRetryLimit; attempt++ {
			token := raffletoken.Generate(i)
			inUse, err := s.entries.TokenInUse(ctx, token)
			if err != nil {
				return nil, fmt.Errorf("s.entries.TokenInUse -> %w", err)
			}
			if !inUse {
				tokens = append(tokens, token)
				reserved = true
				break
			}
		}
		if !reserved {
			return nil, ErrTokenGeneration
		}
	}

	return tokens, nil
}

// EntryCreator is the slice of the entry ledger the initiators write
// through.
type EntryCreator interface {
	Create(ctx context.Context, entry domain.Entry) (domain.Entry, error)
}

// createEntryWithRetry inserts an entry, regenerating the token when a
// concurrent checkout claimed it between reservation and insert. Callers
// must read the token back from the returned entry.
func createEntryWithRetry(ctx context.Context, entries EntryCreator, entry domain.Entry) (domain.Entry, error) {
	for attempt := 0; attempt < tokenRetryLimit; attempt++ {
		created, err := entries.Create(ctx, entry)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, repository.ErrTokenExists) {
			return domain.Entry{}, fmt.Errorf("entries.Create -> %w", err)
		}

		entry.Token = raffletoken.Generate(entry.EntryNumber)
	}

	return domain.Entry{}, ErrTokenGeneration
}
