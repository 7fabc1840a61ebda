package db

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

// StartRevocationCleaner deletes expired revocation entries with interval.
// A revoked token past its natural expiry is rejected by signature
// validation anyway, so its revocation row is dead weight.
func StartRevocationCleaner(
	ctx context.Context,
	db *sql.DB,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				res, err := db.ExecContext(ctx, `
                    DELETE FROM revoked_tokens
                     WHERE expires_at < now()
                `)
				if err != nil {
					log.Error("failed to clean expired revocations", zap.Error(err))
					continue
				}
				if rows, _ := res.RowsAffected(); rows > 0 {
					log.Info("cleaned expired revocations", zap.Int64("removed", rows))
				}
			}
		}
	}()
}
