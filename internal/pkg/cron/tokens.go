package cron

import (
	"context"
	"log/slog"
	"time"
)

// RefreshTokenStore deletes refresh tokens that can no longer be used.
type RefreshTokenStore interface {
	DeleteStaleRefreshTokens(ctx context.Context, before time.Time) (int64, error)
}

// RevocationList forgets revocations recorded before a point in time.
type RevocationList interface {
	PruneRevokedTokens(before time.Time) int
}

// TokenJobs keeps the refresh token table and the in-memory revocation list small.
type TokenJobs struct {
	store     RefreshTokenStore
	revoked   RevocationList
	retention time.Duration
	now       func() time.Time
}

// NewTokenJobs creates token cleanup jobs. Tokens expired or revoked more than
// retention ago are removed.
func NewTokenJobs(store RefreshTokenStore, revoked RevocationList, retention time.Duration) *TokenJobs {
	return &TokenJobs{
		store:     store,
		revoked:   revoked,
		retention: retention,
		now:       time.Now,
	}
}

func (j *TokenJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("cleanup_refresh_tokens", interval, j.CleanupRefreshTokens)
}

// CleanupRefreshTokens removes stale rows and prunes the revocation list.
func (j *TokenJobs) CleanupRefreshTokens(ctx context.Context) error {
	cutoff := j.now().Add(-j.retention)

	deleted, err := j.store.DeleteStaleRefreshTokens(ctx, cutoff)
	if err != nil {
		return err
	}
	pruned := j.revoked.PruneRevokedTokens(cutoff)

	if deleted > 0 || pruned > 0 {
		slog.Info("Refresh tokens cleaned up", "deleted", deleted, "pruned", pruned, "cutoff", cutoff)
	}
	return nil
}
