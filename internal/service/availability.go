package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resourcehub-backend/internal/availability"
	"resourcehub-backend/internal/clock"
	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/repository"
)

type availabilityService struct {
	resourceRepo repository.ResourceRepository
	bookingRepo  repository.BookingRepository
	clock        clock.Clock
	maxDaysAhead int32
}

func NewAvailabilityService(
	resourceRepo repository.ResourceRepository,
	bookingRepo repository.BookingRepository,
	clk clock.Clock,
	maxDaysAhead int,
) AvailabilityService {
	if maxDaysAhead <= 0 {
		maxDaysAhead = 7
	}
	return &availabilityService{
		resourceRepo: resourceRepo,
		bookingRepo:  bookingRepo,
		clock:        clk,
		maxDaysAhead: int32(maxDaysAhead),
	}
}

// NextSlot returns the first conflict-free, schedule-open interval of the
// requested duration, or nil when the scan horizon holds none. Duration
// zero falls back to the resource's minimum booking length.
func (s *availabilityService) NextSlot(ctx context.Context, resourceID, durationMinutes int32) (*Slot, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResourceUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("load resource: %w", err)
	}
	if resource.Status != domain.ResourceStatusPublished {
		return nil, ErrResourceUnavailable
	}

	if durationMinutes <= 0 {
		durationMinutes = resource.MinBookingMinutes
	}

	active, err := s.bookingRepo.ListActiveByResource(ctx, resourceID)
	if err != nil {
		return nil, fmt.Errorf("load active bookings: %w", err)
	}
	existing := make([]availability.Interval, 0, len(active))
	for _, b := range active {
		existing = append(existing, availability.Interval{Start: b.Start, End: b.End})
	}

	schedule := availability.ParseSchedule(resource.AvailabilitySchedule)
	start, found := availability.NextSlot(schedule, existing, availability.SlotRequest{
		DurationMinutes: durationMinutes,
		BufferMinutes:   resource.BufferMinutes,
		LeadTimeHours:   resource.MinLeadTimeHours,
		MaxDaysAhead:    s.maxDaysAhead,
	}, s.clock.Now())
	if !found {
		return nil, nil
	}
	return &Slot{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}, nil
}

func (s *availabilityService) ScheduleSummary(ctx context.Context, resourceID int32) ([]string, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResourceUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("load resource: %w", err)
	}
	return availability.ParseSchedule(resource.AvailabilitySchedule).DisplayLines(), nil
}

func (s *availabilityService) RulesSummary(ctx context.Context, resourceID int32) (map[string]string, error) {
	resource, err := s.resourceRepo.GetByID(ctx, resourceID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrResourceUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("load resource: %w", err)
	}

	summary := make(map[string]string)
	if resource.MinBookingMinutes > 0 {
		summary["min_duration"] = fmt.Sprintf("%d minutes", resource.MinBookingMinutes)
	}
	if resource.MaxBookingMinutes > 0 {
		summary["max_duration"] = fmt.Sprintf("%.1f hours", float64(resource.MaxBookingMinutes)/60)
	}
	if resource.IncrementMinutes > 0 {
		summary["increment"] = fmt.Sprintf("%d minutes", resource.IncrementMinutes)
	}
	if resource.BufferMinutes > 0 {
		summary["buffer"] = fmt.Sprintf("%d minutes between bookings", resource.BufferMinutes)
	}
	if resource.MinLeadTimeHours > 0 {
		summary["lead_time"] = fmt.Sprintf("%d hours advance notice", resource.MinLeadTimeHours)
	}
	if resource.AdvanceHorizonDays > 0 {
		summary["advance_limit"] = fmt.Sprintf("%d days ahead", resource.AdvanceHorizonDays)
	}
	return summary, nil
}
