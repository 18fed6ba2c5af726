package quota

import "context"

// EntitlementChecker answers whether a user currently holds unlimited access.
// Implementations must default to false on any missing or ambiguous signal.
type EntitlementChecker interface {
	IsPremium(ctx context.Context, userID string) bool
}

type ctxKey string

const premiumCtxKey ctxKey = "premium_entitlement"

// WithPremium marks the request context with the caller's premium entitlement.
// Set by the auth middleware from verified token claims.
func WithPremium(ctx context.Context, premium bool) context.Context {
	return context.WithValue(ctx, premiumCtxKey, premium)
}

// ClaimsEntitlement reads the entitlement the auth middleware stored on the
// request context. Anonymous users and requests without the marker are never
// premium.
type ClaimsEntitlement struct{}

func (ClaimsEntitlement) IsPremium(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	premium, ok := ctx.Value(premiumCtxKey).(bool)
	return ok && premium
}
