package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/authgate/authgate/internal/models"
)

// StartExpirySweeper removes expired sessions from the table with interval.
// Correctness never depends on the sweep: Resolve checks expiry lazily on
// every call. The sweep only bounds the table's memory footprint.
func (m *Manager) StartExpirySweeper(ctx context.Context, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := m.sweep(); removed > 0 {
					log.Info("cleaned expired sessions", zap.Int("removed", removed))
				}
			}
		}
	}()
}

// sweep deletes every expired record and returns how many were removed.
func (m *Manager) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, sess := range m.sessions {
		if !now.Before(sess.ExpiresAt) {
			sess.State = models.StateDestroyed
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
