package jobs

import (
	"context"
	"fmt"
	"time"

	"resourcehub-backend/internal/logger"
)

// CompletePastBookings flips approved bookings whose end time has passed to
// completed. Completed bookings stop blocking their interval, so this also
// keeps the conflict window tidy.
func (jr *JobRunner) CompletePastBookings() {
	jr.runWithRecovery("CompletePastBookings", func() {
		ctx := context.Background()
		count, err := jr.store.BookingRepository.MarkCompletedBefore(ctx, jr.clock.Now())
		if err != nil {
			logger.Error("Failed to complete past bookings", "error", err)
			return
		}
		logger.Info("Marked past bookings completed", "count", count)
	})
}

// ExpireStaleWaitlist retires active waitlist entries whose requested
// interval has already ended; they can never be promoted.
func (jr *JobRunner) ExpireStaleWaitlist() {
	jr.runWithRecovery("ExpireStaleWaitlist", func() {
		ctx := context.Background()
		count, err := jr.store.WaitlistRepository.CancelExpired(ctx, jr.clock.Now())
		if err != nil {
			logger.Error("Failed to expire stale waitlist entries", "error", err)
			return
		}
		logger.Info("Expired stale waitlist entries", "count", count)
	})
}

// SendUpcomingReminders emails requesters about approved bookings starting
// within the next 24 hours.
func (jr *JobRunner) SendUpcomingReminders() {
	jr.runWithRecovery("SendUpcomingReminders", func() {
		ctx := context.Background()
		now := jr.clock.Now()
		bookings, err := jr.store.BookingRepository.ListApprovedStartingBetween(ctx, now, now.Add(24*time.Hour))
		if err != nil {
			logger.Error("Failed to load upcoming bookings", "error", err)
			return
		}

		sent := 0
		for _, b := range bookings {
			requester, err := jr.store.UserRepository.GetByID(ctx, b.RequesterID)
			if err != nil {
				logger.Warn("Skipping reminder, requester lookup failed",
					"booking_id", b.ID, "requester_id", b.RequesterID, "error", err)
				continue
			}
			resource, err := jr.store.ResourceRepository.GetByID(ctx, b.ResourceID)
			if err != nil {
				logger.Warn("Skipping reminder, resource lookup failed",
					"booking_id", b.ID, "resource_id", b.ResourceID, "error", err)
				continue
			}

			body := fmt.Sprintf(
				"Reminder: your booking for %q starts %s and ends %s.",
				resource.Title,
				b.Start.Format("Mon, Jan 2 2006 3:04 PM"),
				b.End.Format("Mon, Jan 2 2006 3:04 PM"))
			if err := jr.services.Email.Send(ctx, requester.Email, requester.Name, "Upcoming booking reminder", body); err != nil {
				logger.Error("Failed to send reminder", "booking_id", b.ID, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent upcoming booking reminders", "count", sent)
	})
}
