package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resourcehub-backend/internal/availability"
	"resourcehub-backend/internal/clock"
	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/logger"
	"resourcehub-backend/internal/recurrence"
	"resourcehub-backend/internal/repository"
)

type bookingService struct {
	resourceRepo    repository.ResourceRepository
	bookingRepo     repository.BookingRepository
	waitlistRepo    repository.WaitlistRepository
	userRepo        repository.UserRepository
	noteRepo        repository.NotificationRepository
	emailSvc        EmailService
	clock           clock.Clock
	recurrenceCount int
}

func NewBookingService(
	resourceRepo repository.ResourceRepository,
	bookingRepo repository.BookingRepository,
	waitlistRepo repository.WaitlistRepository,
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	emailSvc EmailService,
	clk clock.Clock,
	recurrenceCount int,
) BookingService {
	if recurrenceCount < recurrence.MinCount {
		recurrenceCount = recurrence.DefaultCount
	}
	return &bookingService{
		resourceRepo:    resourceRepo,
		bookingRepo:     bookingRepo,
		waitlistRepo:    waitlistRepo,
		userRepo:        userRepo,
		noteRepo:        noteRepo,
		emailSvc:        emailSvc,
		clock:           clk,
		recurrenceCount: recurrenceCount,
	}
}

// rulesFor maps a resource's rule columns into the validator's shape.
func rulesFor(res *domain.Resource) availability.Rules {
	return availability.Rules{
		MinDurationMinutes: res.MinBookingMinutes,
		MaxDurationMinutes: res.MaxBookingMinutes,
		IncrementMinutes:   res.IncrementMinutes,
		BufferMinutes:      res.BufferMinutes,
		AdvanceHorizonDays: res.AdvanceHorizonDays,
		MinLeadTimeHours:   res.MinLeadTimeHours,
	}
}

// initialStatus applies the approval policy shared by fresh bookings and
// waitlist promotions: restricted resources require a manual decision
// unless the requester owns the resource or is an admin.
func initialStatus(res *domain.Resource, requester *domain.User) domain.BookingStatus {
	requiresManualApproval := res.IsRestricted &&
		res.OwnerID != requester.ID &&
		!requester.IsAdmin()
	if requiresManualApproval {
		return domain.BookingStatusPending
	}
	return domain.BookingStatusApproved
}

func humanize(t time.Time) string {
	return t.Format("Mon, Jan 2 2006 3:04 PM")
}

func (s *bookingService) RequestBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	resource, err := s.resourceRepo.GetByID(ctx, req.ResourceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResourceUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("load resource: %w", err)
	}
	if resource.Status != domain.ResourceStatusPublished {
		return nil, ErrResourceUnavailable
	}

	requester, err := s.userRepo.GetByID(ctx, req.RequesterID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("load requester: %w", err)
	}

	freq, err := recurrence.ParseFrequency(req.Frequency)
	if err != nil {
		return nil, err
	}

	schedule := availability.ParseSchedule(resource.AvailabilitySchedule)
	if verr := availability.ValidateBookingTimes(req.Start, req.End, schedule, rulesFor(resource), s.clock.Now()); verr != nil {
		return nil, verr
	}

	occurrences := recurrence.Expand(req.Start, req.End, freq, s.recurrenceCount)
	rule := recurrence.Rule(freq, s.recurrenceCount)

	// Occurrences are checked in order so the first conflicting index can
	// be surfaced; any conflict rejects the whole batch.
	for i, occ := range occurrences {
		conflicted, err := s.bookingRepo.HasConflict(ctx, resource.ID, occ.Start, occ.End, 0)
		if err != nil {
			return nil, fmt.Errorf("conflict check: %w", err)
		}
		if conflicted {
			return s.handleConflict(ctx, resource, requester, req, occurrences, i)
		}
	}

	status := initialStatus(resource, requester)
	seriesID := ""
	if len(occurrences) > 1 {
		seriesID = uuid.NewString()
	}
	bookings := make([]*domain.Booking, 0, len(occurrences))
	for _, occ := range occurrences {
		bookings = append(bookings, &domain.Booking{
			ResourceID:     resource.ID,
			RequesterID:    requester.ID,
			Start:          occ.Start,
			End:            occ.End,
			Status:         status,
			RecurrenceRule: rule,
			SeriesID:       seriesID,
			Notes:          req.Notes,
		})
	}

	// The series insert re-checks every occurrence under the resource lock;
	// a concurrent request may have taken the slot since the scan above.
	if idx, err := s.bookingRepo.CreateSeries(ctx, bookings); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return s.handleConflict(ctx, resource, requester, req, occurrences, idx)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.notifyBookingCreated(ctx, resource, requester, bookings, status)

	created := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		created = append(created, *b)
	}
	return &BookingResult{Bookings: created}, nil
}

// handleConflict turns a detected conflict into either a waitlist entry or
// a ConflictError. Waitlisting is only offered when the request reduced to
// a single occurrence.
func (s *bookingService) handleConflict(
	ctx context.Context,
	resource *domain.Resource,
	requester *domain.User,
	req BookingRequest,
	occurrences []recurrence.Occurrence,
	index int,
) (*BookingResult, error) {
	occ := occurrences[index]
	single := len(occurrences) == 1

	if req.JoinWaitlistOnConflict {
		if !single {
			return nil, ErrWaitlistRecurring
		}
		entry, err := s.joinWaitlist(ctx, resource, requester, occ.Start, occ.End)
		if err != nil {
			return nil, err
		}
		return &BookingResult{WaitlistEntry: entry}, nil
	}

	return nil, &ConflictError{
		OccurrenceIndex:  index,
		Start:            occ.Start,
		End:              occ.End,
		WaitlistEligible: single,
	}
}

func (s *bookingService) joinWaitlist(ctx context.Context, resource *domain.Resource, requester *domain.User, start, end time.Time) (*domain.WaitlistEntry, error) {
	exists, err := s.waitlistRepo.HasActiveEntry(ctx, resource.ID, requester.ID, start, end)
	if err != nil {
		return nil, fmt.Errorf("waitlist lookup: %w", err)
	}
	if exists {
		return nil, ErrAlreadyWaitlisted
	}

	entry := &domain.WaitlistEntry{
		ResourceID:  resource.ID,
		RequesterID: requester.ID,
		Start:       start,
		End:         end,
		Status:      domain.WaitlistStatusActive,
	}
	if err := s.waitlistRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create waitlist entry: %w", err)
	}

	s.notify(ctx, requester.ID, "Waitlist joined", fmt.Sprintf(
		"You have been added to the waitlist for %q on %s - %s. "+
			"We will automatically complete the booking if the time becomes available.",
		resource.Title, humanize(start), humanize(end)))
	if resource.OwnerID != requester.ID {
		s.notify(ctx, resource.OwnerID, "Waitlist activity", fmt.Sprintf(
			"%s joined the waitlist for %q (%s - %s).",
			requester.Name, resource.Title, humanize(start), humanize(end)))
	}
	return entry, nil
}

func (s *bookingService) notifyBookingCreated(ctx context.Context, resource *domain.Resource, requester *domain.User, bookings []*domain.Booking, status domain.BookingStatus) {
	first := bookings[0]
	countSummary := "a single reservation"
	if len(bookings) > 1 {
		countSummary = fmt.Sprintf("%d occurrences", len(bookings))
	}

	requesterSubject := "Booking request received"
	outcome := "submitted for approval"
	if status == domain.BookingStatusApproved {
		requesterSubject = "Booking confirmed"
		outcome = "approved"
	}
	s.notify(ctx, requester.ID, requesterSubject, fmt.Sprintf(
		"Your booking for %q on %s - %s (%s) has been %s.",
		resource.Title, humanize(first.Start), humanize(first.End), countSummary, outcome))

	if resource.OwnerID != requester.ID {
		ownerSubject := "Resource booked"
		verb := "booked"
		if status == domain.BookingStatusPending {
			ownerSubject = "New booking request"
			verb = "requested a booking for"
		}
		s.notify(ctx, resource.OwnerID, ownerSubject, fmt.Sprintf(
			"%s has %s %q starting %s. Total occurrences: %d.",
			requester.Name, verb, resource.Title, humanize(first.Start), len(bookings)))
	}
}

func (s *bookingService) Get(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error) {
	booking, resource, actor, err := s.loadBookingContext(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.RequesterID != actorID && resource.OwnerID != actorID && !actor.IsAdmin() {
		return nil, ErrUnauthorized
	}
	return booking, nil
}

func (s *bookingService) ListMine(ctx context.Context, userID int32) ([]domain.Booking, error) {
	return s.bookingRepo.ListByRequester(ctx, userID)
}

func (s *bookingService) ListForOwner(ctx context.Context, ownerID int32, status domain.BookingStatus) ([]domain.Booking, error) {
	return s.bookingRepo.ListForOwner(ctx, ownerID, status)
}

func (s *bookingService) loadBookingContext(ctx context.Context, actorID, bookingID int32) (*domain.Booking, *domain.Resource, *domain.User, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, nil, err
	}
	resource, err := s.resourceRepo.GetByID(ctx, booking.ResourceID)
	if err != nil {
		return nil, nil, nil, err
	}
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil, nil, ErrUnauthorized
	}
	if err != nil {
		return nil, nil, nil, err
	}
	return booking, resource, actor, nil
}

// canDecide reports whether the actor may approve or reject requests for
// the resource: its owner, staff, or an admin.
func canDecide(resource *domain.Resource, actor *domain.User) bool {
	return actor.IsAdmin() || actor.CanApprove() || resource.OwnerID == actor.ID
}

func (s *bookingService) Approve(ctx context.Context, actorID, bookingID int32, notes string) (*domain.Booking, error) {
	booking, resource, actor, err := s.loadBookingContext(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}
	if !canDecide(resource, actor) {
		return nil, ErrUnauthorized
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusApproved, notes, &actorID); err != nil {
		return nil, fmt.Errorf("approve booking: %w", err)
	}
	booking.Status = domain.BookingStatusApproved
	booking.DecisionNotes = notes
	booking.DecisionBy = &actorID

	body := fmt.Sprintf("Your booking for %q starting %s has been approved.", resource.Title, humanize(booking.Start))
	if notes != "" {
		body += "\n\nNotes from reviewer: " + notes
	}
	s.notify(ctx, booking.RequesterID, "Booking approved", body)
	return booking, nil
}

func (s *bookingService) Reject(ctx context.Context, actorID, bookingID int32, notes string) (*domain.Booking, error) {
	booking, resource, actor, err := s.loadBookingContext(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}
	if !canDecide(resource, actor) {
		return nil, ErrUnauthorized
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusRejected, notes, &actorID); err != nil {
		return nil, fmt.Errorf("reject booking: %w", err)
	}
	booking.Status = domain.BookingStatusRejected
	booking.DecisionNotes = notes
	booking.DecisionBy = &actorID

	body := fmt.Sprintf("Your booking for %q starting %s was declined. Please choose a different time.", resource.Title, humanize(booking.Start))
	if notes != "" {
		body += "\n\nNotes from reviewer: " + notes
	}
	s.notify(ctx, booking.RequesterID, "Booking rejected", body)

	// The freed interval may satisfy queued requests.
	s.promoteWaitlist(ctx, resource)
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error) {
	booking, resource, actor, err := s.loadBookingContext(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}
	canCancel := booking.RequesterID == actorID || resource.OwnerID == actorID || actor.IsAdmin()
	if !canCancel {
		return nil, ErrUnauthorized
	}
	if !booking.Status.Blocking() {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled, "", nil); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	booking.Status = domain.BookingStatusCancelled

	s.notify(ctx, booking.RequesterID, "Booking cancelled", fmt.Sprintf(
		"Your booking for %q starting %s was cancelled.", resource.Title, humanize(booking.Start)))
	if resource.OwnerID != booking.RequesterID {
		s.notify(ctx, resource.OwnerID, "Booking cancelled", fmt.Sprintf(
			"The booking for %q starting %s was cancelled by %s.", resource.Title, humanize(booking.Start), actor.Name))
	}

	s.promoteWaitlist(ctx, resource)
	return booking, nil
}

func (s *bookingService) Complete(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error) {
	booking, resource, actor, err := s.loadBookingContext(ctx, actorID, bookingID)
	if err != nil {
		return nil, err
	}
	allowed := booking.RequesterID == actorID || resource.OwnerID == actorID || actor.IsAdmin()
	if !allowed {
		return nil, ErrUnauthorized
	}
	if booking.Status != domain.BookingStatusApproved || booking.End.After(s.clock.Now()) {
		return nil, ErrInvalidTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.BookingStatusCompleted, "", nil); err != nil {
		return nil, fmt.Errorf("complete booking: %w", err)
	}
	booking.Status = domain.BookingStatusCompleted
	return booking, nil
}

// promoteWaitlist scans the resource's active waitlist oldest-first after a
// slot frees up. Each entry is re-tested with the same conflict predicate
// bookings use; the first clear entry becomes a booking and the scan keeps
// going, since one freed slot can satisfy several non-overlapping entries.
// Per-entry failures are logged and skipped so one bad entry cannot stall
// the queue.
func (s *bookingService) promoteWaitlist(ctx context.Context, resource *domain.Resource) {
	entries, err := s.waitlistRepo.ListActiveByResource(ctx, resource.ID)
	if err != nil {
		logger.Error("Failed to load waitlist entries", "resource_id", resource.ID, "error", err)
		return
	}

	for _, entry := range entries {
		conflicted, err := s.bookingRepo.HasConflict(ctx, resource.ID, entry.Start, entry.End, 0)
		if err != nil {
			logger.Error("Waitlist conflict check failed", "entry_id", entry.ID, "error", err)
			continue
		}
		if conflicted {
			continue
		}

		requester, err := s.userRepo.GetByID(ctx, entry.RequesterID)
		if errors.Is(err, repository.ErrNotFound) {
			// Orphaned entry; retire it instead of failing the scan.
			if _, cancelErr := s.waitlistRepo.Cancel(ctx, entry.ID); cancelErr != nil {
				logger.Error("Failed to cancel orphaned waitlist entry", "entry_id", entry.ID, "error", cancelErr)
			}
			continue
		}
		if err != nil {
			logger.Error("Failed to load waitlist requester", "entry_id", entry.ID, "error", err)
			continue
		}

		status := initialStatus(resource, requester)
		booking := &domain.Booking{
			ResourceID:  resource.ID,
			RequesterID: requester.ID,
			Start:       entry.Start,
			End:         entry.End,
			Status:      status,
		}
		if _, err := s.bookingRepo.CreateSeries(ctx, []*domain.Booking{booking}); err != nil {
			if errors.Is(err, repository.ErrConflict) {
				// Lost the slot to a concurrent writer; leave the entry active.
				continue
			}
			logger.Error("Failed to promote waitlist entry", "entry_id", entry.ID, "error", err)
			continue
		}

		if err := s.waitlistRepo.MarkPromoted(ctx, entry.ID, booking.ID); err != nil {
			logger.Error("Failed to mark waitlist entry promoted", "entry_id", entry.ID, "booking_id", booking.ID, "error", err)
		}

		outcome := "confirmed"
		if status == domain.BookingStatusPending {
			outcome = "converted to a pending request"
		}
		s.notify(ctx, requester.ID, "Waitlist slot available", fmt.Sprintf(
			"Good news! Your waitlist request for %q on %s - %s has been %s. "+
				"Visit your dashboard to review the details.",
			resource.Title, humanize(entry.Start), humanize(entry.End), outcome))

		if resource.OwnerID != requester.ID {
			ownerSubject := "Waitlist booking confirmed"
			ownerOutcome := "automatically approved"
			if status == domain.BookingStatusPending {
				ownerSubject = "Waitlist request awaiting review"
				ownerOutcome = "queued for your review"
			}
			s.notify(ctx, resource.OwnerID, ownerSubject, fmt.Sprintf(
				"The waitlist entry for %q requested by %s (%s - %s) has been %s.",
				resource.Title, requester.Name, humanize(entry.Start), humanize(entry.End), ownerOutcome))
		}
	}
}

func (s *bookingService) ListMyWaitlist(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error) {
	return s.waitlistRepo.ListActiveByRequester(ctx, userID)
}

func (s *bookingService) CancelWaitlistEntry(ctx context.Context, actorID, entryID int32) error {
	entry, err := s.waitlistRepo.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.RequesterID != actorID {
		actor, err := s.userRepo.GetByID(ctx, actorID)
		if err != nil || !actor.IsAdmin() {
			return ErrUnauthorized
		}
	}
	cancelled, err := s.waitlistRepo.Cancel(ctx, entryID)
	if err != nil {
		return fmt.Errorf("cancel waitlist entry: %w", err)
	}
	if !cancelled {
		return ErrInvalidTransition
	}
	return nil
}

// notify records an in-app notification and mirrors it to email. Both are
// fire-and-forget: the booking path never fails because delivery did.
func (s *bookingService) notify(ctx context.Context, userID int32, subject, body string) {
	note := &domain.Notification{UserID: userID, Subject: subject, Body: body}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		logger.Error("Failed to record notification", "user_id", userID, "error", err)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		logger.Warn("Notification recipient lookup failed", "user_id", userID, "error", err)
		return
	}
	if err := s.emailSvc.Send(ctx, user.Email, user.Name, subject, body); err != nil {
		logger.Error("Failed to send notification email", "user_id", userID, "error", err)
	}
}
