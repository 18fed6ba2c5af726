package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wayfinder/business/quota"
	"wayfinder/domain"
)

// QuotaStore is the process-local quota backend: a mutex-guarded map. The
// lock spans the read-check-write of ConsumeIfAvailable, which is the whole
// concurrency contract.
type QuotaStore struct {
	mu      sync.Mutex
	records map[string]*domain.UserQuota
}

var _ quota.Store = (*QuotaStore)(nil)

func NewQuotaStore() *QuotaStore {
	return &QuotaStore{
		records: make(map[string]*domain.UserQuota),
	}
}

func (s *QuotaStore) Get(ctx context.Context, userID string) (int, bool, error) {
	if err := ctx.Err(); err != nil {
		return 0, false, fmt.Errorf("context error: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return 0, false, nil
	}
	return rec.RemainingCredits, true, nil
}

func (s *QuotaStore) ConsumeIfAvailable(ctx context.Context, userID string, amount int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("context error: %w", err)
	}
	if amount <= 0 {
		return false, fmt.Errorf("amount must be positive, got %d", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[userID]
	if !ok {
		return false, nil
	}
	if rec.RemainingCredits < amount {
		return false, nil
	}

	rec.RemainingCredits -= amount
	rec.LastUpdatedAt = time.Now()
	return true, nil
}

func (s *QuotaStore) Set(ctx context.Context, userID string, value int) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	if value < 0 {
		return fmt.Errorf("value must not be negative, got %d", value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if rec, ok := s.records[userID]; ok {
		rec.RemainingCredits = value
		rec.LastUpdatedAt = now
		return nil
	}

	s.records[userID] = &domain.UserQuota{
		UserID:           userID,
		RemainingCredits: value,
		CreatedAt:        now,
		LastUpdatedAt:    now,
	}
	return nil
}
