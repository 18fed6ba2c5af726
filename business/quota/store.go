package quota

import "context"

// Store holds per-user remaining-credit counters. Implementations must make
// ConsumeIfAvailable linearizable: with K credits and N concurrent one-credit
// consumers, exactly K succeed and the counter never goes negative.
type Store interface {
	// Get returns the remaining credits for the user. ok is false when no
	// record exists.
	Get(ctx context.Context, userID string) (remaining int, ok bool, err error)

	// ConsumeIfAvailable atomically decrements the counter by amount when
	// remaining >= amount. It returns false without mutation when the record
	// is absent or the balance is insufficient. amount must be positive.
	ConsumeIfAvailable(ctx context.Context, userID string, amount int) (bool, error)

	// Set overwrites the counter; used for first-time initialization and
	// external resets. value must not be negative.
	Set(ctx context.Context, userID string, value int) error
}
