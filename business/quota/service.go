package quota

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"wayfinder/pkg/logger"
)

// Service composes the entitlement check and the quota store into a single
// admission decision. The store is the only shared mutable state in the
// system; everything else here is derived bookkeeping.
type Service struct {
	store            Store
	entitlement      EntitlementChecker
	defaultFreeQuota int

	// users currently known to sit at zero credits; exposed as a snapshot
	// so no other component ever read-modifies the gauge directly
	zeroUsers sync.Map
	zeroCount atomic.Int64
}

func NewService(store Store, entitlement EntitlementChecker, defaultFreeQuota int) *Service {
	return &Service{
		store:            store,
		entitlement:      entitlement,
		defaultFreeQuota: defaultFreeQuota,
	}
}

// InitializeIfNeeded creates the quota record for first-time non-premium
// users. Safe to call redundantly: an existing record is left untouched.
func (s *Service) InitializeIfNeeded(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	if s.entitlement.IsPremium(ctx, userID) {
		return nil
	}

	_, ok, err := s.store.Get(ctx, userID)
	if err != nil {
		// treat an unreadable record as absent; Set is an idempotent
		// overwrite so initializing again is harmless
		logger.Warn("quota lookup failed during init", "user_id", userID, "error", err)
	}
	if ok {
		return nil
	}

	if err := s.store.Set(ctx, userID, s.defaultFreeQuota); err != nil {
		return fmt.Errorf("initialize quota for user %s: %w", userID, err)
	}

	logger.Debug("quota initialized", "user_id", userID, "credits", s.defaultFreeQuota)
	return nil
}

// TryConsume charges the request. Premium users pass without touching the
// store. Anonymous requests carry no identity to meter and pass uncharged.
// Any store error denies the request: an error is never read as success.
func (s *Service) TryConsume(ctx context.Context, userID string, amount int) bool {
	if userID == "" {
		AdmissionsGranted.WithLabelValues("anonymous").Inc()
		return true
	}
	if s.entitlement.IsPremium(ctx, userID) {
		AdmissionsGranted.WithLabelValues("premium").Inc()
		return true
	}

	ok, err := s.store.ConsumeIfAvailable(ctx, userID, amount)
	if err != nil {
		logger.Error("quota consume failed, denying request", "user_id", userID, "error", err)
		AdmissionsDenied.WithLabelValues("store_error").Inc()
		return false
	}
	if !ok {
		s.markZero(userID)
		AdmissionsDenied.WithLabelValues("exhausted").Inc()
		return false
	}

	if remaining := s.Remaining(ctx, userID); remaining == 0 {
		s.markZero(userID)
	}

	AdmissionsGranted.WithLabelValues("charged").Inc()
	return true
}

// Remaining returns 0 when the record is absent or the store is unreachable,
// so callers can treat "unknown" as "exhausted".
func (s *Service) Remaining(ctx context.Context, userID string) int {
	if userID == "" {
		return 0
	}

	remaining, ok, err := s.store.Get(ctx, userID)
	if err != nil {
		logger.Warn("quota lookup failed", "user_id", userID, "error", err)
		return 0
	}
	if !ok {
		return 0
	}

	return remaining
}

// Reset overwrites the user's credits; used by the externally triggered daily
// reset and by admin tooling.
func (s *Service) Reset(ctx context.Context, userID string, credits int) error {
	if credits < 0 {
		return fmt.Errorf("credits must not be negative, got %d", credits)
	}

	if err := s.store.Set(ctx, userID, credits); err != nil {
		return fmt.Errorf("reset quota for user %s: %w", userID, err)
	}

	if credits > 0 {
		s.clearZero(userID)
	}

	logger.Info("quota reset", "user_id", userID, "credits", credits)
	return nil
}

// DefaultFreeQuota is the allotment given to first-time non-premium users.
func (s *Service) DefaultFreeQuota() int {
	return s.defaultFreeQuota
}

// ZeroQuotaUsers reports how many users are currently known to be exhausted.
func (s *Service) ZeroQuotaUsers() int64 {
	return s.zeroCount.Load()
}

func (s *Service) markZero(userID string) {
	if _, loaded := s.zeroUsers.LoadOrStore(userID, struct{}{}); !loaded {
		s.zeroCount.Add(1)
	}
}

func (s *Service) clearZero(userID string) {
	if _, loaded := s.zeroUsers.LoadAndDelete(userID); loaded {
		s.zeroCount.Add(-1)
	}
}
