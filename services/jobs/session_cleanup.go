package jobs

import (
	"context"
	"log"
	"time"

	"legal_editor_app_go/services"
)

// DefaultSessionIdleTimeout closes editor sessions nobody has touched for a day
const DefaultSessionIdleTimeout = 24 * time.Hour

// CleanupIdleSessions closes sessions idle for longer than maxIdle and
// deletes the exports they archived
func CleanupIdleSessions(ctx context.Context, docs *services.DocumentService, storage services.StorageProvider, maxIdle time.Duration) int {
	log.Println("Starting idle session cleanup job...")
	closed := docs.CleanupIdleSessions(maxIdle)

	deleted := 0
	for _, session := range closed {
		deleted += services.DeleteArchivedExports(ctx, storage, session.Exports())
	}
	log.Printf("Idle session cleanup completed (%d closed, %d exports deleted, %d open)", len(closed), deleted, docs.Count())
	return len(closed)
}

// StartSessionCleanup runs CleanupIdleSessions every interval until the
// returned stop function is called
func StartSessionCleanup(docs *services.DocumentService, storage services.StorageProvider, interval, maxIdle time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				CleanupIdleSessions(ctx, docs, storage, maxIdle)
			case <-ctx.Done():
				return
			}
		}
	}()
	return cancel
}
