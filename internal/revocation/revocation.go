// Package revocation tracks bearer tokens invalidated before their
// natural expiry, so a stolen-but-logged-out token cannot be replayed.
package revocation

import (
	"context"
	"time"
)

// Revoker is the capability the auth gate depends on. The in-memory
// implementation is correct for a single instance only; multi-instance
// deployments must use the redis implementation so all instances share
// one revocation set.
type Revoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
