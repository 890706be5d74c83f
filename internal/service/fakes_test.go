package service

import (
	"context"
	"sync"
	"time"

	"github.com/snapdraw/raffle-api/internal/domain"
	"github.com/snapdraw/raffle-api/internal/repository"
)

// fakeEntryStore backs every entry-facing interface the services consume.
type fakeEntryStore struct {
	mu      sync.Mutex
	nextID  uint
	entries []domain.Entry
}

func newFakeEntryStore() *fakeEntryStore {
	return &fakeEntryStore{}
}

func (f *fakeEntryStore) Create(_ context.Context, entry domain.Entry) (domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.entries {
		if existing.Token == entry.Token {
			return domain.Entry{}, repository.ErrTokenExists
		}
	}

	f.nextID++
	entry.ID = f.nextID
	entry.CreatedAt = time.Now()
	f.entries = append(f.entries, entry)

	return entry, nil
}

func (f *fakeEntryStore) TokenInUse(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.entries {
		if existing.Token == token {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeEntryStore) FindByOrderID(_ context.Context, orderID string) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Entry
	for _, entry := range f.entries {
		if entry.RazorpayOrderID == orderID {
			out = append(out, entry)
		}
	}

	return out, nil
}

func (f *fakeEntryStore) UpdateStatusByOrderID(_ context.Context, orderID string, status domain.EntryStatus, paymentID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var affected int64
	for i := range f.entries {
		if f.entries[i].RazorpayOrderID == orderID {
			f.entries[i].Status = status
			f.entries[i].PaymentID = paymentID
			affected++
		}
	}

	return affected, nil
}

func (f *fakeEntryStore) UpdateStatusByIDs(_ context.Context, ids []uint, status domain.EntryStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idSet := make(map[uint]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	for i := range f.entries {
		if idSet[f.entries[i].ID] {
			f.entries[i].Status = status
		}
	}

	return nil
}

func (f *fakeEntryStore) CountAll(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(len(f.entries)), nil
}

func (f *fakeEntryStore) CountByStatus(_ context.Context, status domain.EntryStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for _, entry := range f.entries {
		if entry.Status == status {
			count++
		}
	}

	return count, nil
}

func (f *fakeEntryStore) SumConfirmedAmount(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var total int64
	for _, entry := range f.entries {
		if entry.Status == domain.EntryConfirmed {
			total += entry.Amount
		}
	}

	return total, nil
}

func (f *fakeEntryStore) ListNewest(_ context.Context, limit, _ int) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.Entry, len(f.entries))
	copy(out, f.entries)
	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (f *fakeEntryStore) ListNewestByStatus(ctx context.Context, status domain.EntryStatus, limit int) ([]domain.Entry, error) {
	all, err := f.FindAllByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}

func (f *fakeEntryStore) FindAllByStatus(_ context.Context, status domain.EntryStatus) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Entry
	for _, entry := range f.entries {
		if entry.Status == status {
			out = append(out, entry)
		}
	}

	return out, nil
}

func (f *fakeEntryStore) FindPendingOlderThan(_ context.Context, cutoff time.Time) ([]domain.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []domain.Entry
	for _, entry := range f.entries {
		if entry.Status == domain.EntryPending && entry.CreatedAt.Before(cutoff) {
			out = append(out, entry)
		}
	}

	return out, nil
}

type fakeUserStore struct {
	nextID uint
	users  map[string]domain.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]domain.User)}
}

func (f *fakeUserStore) Upsert(_ context.Context, user domain.User) (domain.User, error) {
	if existing, ok := f.users[user.Email]; ok {
		user.ID = existing.ID
	} else {
		f.nextID++
		user.ID = f.nextID
	}
	f.users[user.Email] = user

	return user, nil
}

type fakeSettingsStore struct {
	settings *domain.RaffleSettings
}

func (f *fakeSettingsStore) Latest(_ context.Context) (domain.RaffleSettings, error) {
	if f.settings == nil {
		return domain.RaffleSettings{}, repository.ErrSettingsNotFound
	}

	return *f.settings, nil
}

type fakeLogStore struct {
	mu   sync.Mutex
	logs []domain.PaymentLog
}

func (f *fakeLogStore) Append(_ context.Context, log domain.PaymentLog) (domain.PaymentLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	log.ID = uint(len(f.logs) + 1)
	f.logs = append(f.logs, log)

	return log, nil
}

type fakeWinnerStore struct {
	winner *domain.Winner
}

func (f *fakeWinnerStore) Create(_ context.Context, entryID uint) (domain.Winner, error) {
	if f.winner != nil {
		return domain.Winner{}, repository.ErrWinnerExists
	}

	f.winner = &domain.Winner{
		ID:          1,
		EntryID:     entryID,
		AnnouncedAt: time.Now().UTC(),
	}

	return *f.winner, nil
}

func (f *fakeWinnerStore) Current(_ context.Context) (domain.Winner, error) {
	if f.winner == nil {
		return domain.Winner{}, repository.ErrWinnerNotFound
	}

	return *f.winner, nil
}

func (f *fakeWinnerStore) Clear(_ context.Context) error {
	f.winner = nil

	return nil
}
