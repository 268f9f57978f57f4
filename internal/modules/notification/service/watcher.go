package service

import (
	"context"
	"time"
)

// StartRenewalWatcher runs the renewal scan loop. A burst of insurance edits
// collapses into one scan: each signal restarts the debounce timer, so only
// the last scheduled scan after the burst executes. The ticker picks up day
// rollovers and re-emits reminders whose notifications were dismissed between
// signals.
func (s *notificationService) StartRenewalWatcher(ctx context.Context) {
	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	ticker := time.NewTicker(s.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.changed:
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.debounce)
			pending = true
		case <-timer.C:
			pending = false
			s.RunRenewalScan(ctx)
		case <-ticker.C:
			s.RunRenewalScan(ctx)
		case <-ctx.Done():
			return
		}
	}
}
