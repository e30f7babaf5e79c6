package session

import (
	"context"
	"time"

	"github.com/lox/weatherdash/internal/metrics"
	"github.com/lox/weatherdash/internal/models"
)

// refreshKey captures everything the background refresh depends on. The
// zero value means "not armed".
type refreshKey struct {
	city string
	unit models.Unit
}

type refreshTimer struct {
	key    refreshKey
	cancel context.CancelFunc
}

// rearmLocked makes the refresh timer match the current state: cancelled when
// there is no tracked city, a fetch is loading, an error is showing, or the
// session is closed or not yet ready; otherwise running for the tracked city.
// A timer whose dependencies have not changed keeps its schedule. s.mu must
// be held.
func (s *Session) rearmLocked() {
	var want refreshKey
	if s.ready && !s.closed && !s.opts.NoRefresh && s.trackedCity != "" && !s.loading && s.err == "" {
		want = refreshKey{city: s.trackedCity, unit: s.unit}
	}
	if want == s.refresh.key {
		return
	}

	if s.refresh.cancel != nil {
		s.refresh.cancel()
	}
	s.refresh = refreshTimer{key: want}
	if want == (refreshKey{}) {
		return
	}

	ctx, cancel := context.WithCancel(s.life)
	s.refresh.cancel = cancel
	s.wg.Add(1)
	go s.runRefresh(ctx, want.city, s.opts.RefreshInterval)
}

func (s *Session) runRefresh(ctx context.Context, city string, interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.RefreshTicksTotal.Inc()
			// The fetch runs on the session lifetime, not the timer's, so
			// re-arming mid-flight doesn't abort it.
			s.FetchCurrentConditions(s.life, city, FetchOptions{Silent: true})
		}
	}
}

// refreshArmed reports whether a refresh timer is active, and for which city.
func (s *Session) refreshArmed() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh.key.city, s.refresh.key != (refreshKey{})
}
