package jobs

import (
	"context"

	"homywork-server/internal/logger"
)

// ProcessPayouts transfers host payouts for bookings whose stay has started.
// Runs every six hours by default; safe to trigger manually in parallel
// because each booking is claimed before its transfer is created.
func (jr *JobRunner) ProcessPayouts() {
	jr.runWithRecovery("ProcessPayouts", func() {
		ctx := context.Background()

		summary, err := jr.services.Payout.ProcessScheduledPayouts(ctx)
		if err != nil {
			logger.Error("Failed to process payouts", "error", err)
			return
		}

		logger.Info("Processed scheduled payouts",
			"total", summary.Total,
			"processed", summary.Processed,
			"failed", summary.Failed)
	})
}
