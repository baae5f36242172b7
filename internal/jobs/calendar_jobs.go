package jobs

import (
	"context"

	"homywork-server/internal/logger"
)

// SyncCalendars refreshes every active external calendar feed, mirroring
// blocked dates into the availability table. Runs nightly.
func (jr *JobRunner) SyncCalendars() {
	jr.runWithRecovery("SyncCalendars", func() {
		ctx := context.Background()

		refreshed, err := jr.services.CalendarSync.SyncAllActive(ctx)
		if err != nil {
			logger.Error("Failed to sync calendars", "error", err)
			return
		}

		logger.Info("Synced external calendars", "feeds_refreshed", refreshed)
	})
}
