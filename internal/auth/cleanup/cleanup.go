package cleanup

import (
	"context"
	"time"

	"github.com/epakhin/teamdeck/authd/internal/common/logger"
	"github.com/epakhin/teamdeck/authd/internal/observability/metrics"
)

type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// StartCredentialSweep deletes expired refresh credentials on a fixed
// interval until the context is cancelled. Rotation never waits for this:
// expired rows are also removed on use.
func StartCredentialSweep(ctx context.Context, store ExpiredDeleter, interval time.Duration, log *logger.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := store.DeleteExpired(ctx)
			if err != nil {
				log.Errorf("credential sweep failed: %v", err)
				continue
			}
			if deleted > 0 {
				metrics.CredentialsSweptDeleted.Add(float64(deleted))
				log.Infof("credential sweep: deleted %d expired credentials", deleted)
			}
		}
	}
}
