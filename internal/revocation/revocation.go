// Package revocation holds session tokens that were logged out before their
// natural expiry. Entries are keyed by the SHA-256 of the token and carry the
// token's own expiry, after which they may be forgotten.
package revocation

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"
)

type Store interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Sweeper is implemented by stores that need explicit removal of expired entries.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

func Key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func RunSweeper(ctx context.Context, sweeper Sweeper, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sweeper.Sweep(ctx)
			if err != nil {
				slog.Error("revocation sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Debug("revocation sweep", "removed", removed)
			}
		}
	}
}
