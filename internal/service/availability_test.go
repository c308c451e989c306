package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub-backend/internal/availability"
	"resourcehub-backend/internal/clock"
	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/repository"
)

const weekdaySchedule = `{"monday":[{"start":"09:00","end":"17:00"}],"tuesday":[{"start":"09:00","end":"17:00"}],` +
	`"wednesday":[{"start":"09:00","end":"17:00"}],"thursday":[{"start":"09:00","end":"17:00"}],` +
	`"friday":[{"start":"09:00","end":"17:00"}]}`

func TestAvailabilityService_NextSlot(t *testing.T) {
	ctx := context.Background()

	scheduledResource := func() *domain.Resource {
		r := testResource(1, false)
		r.AvailabilitySchedule = weekdaySchedule
		return r
	}

	t.Run("FindsFirstFreeSlot", func(t *testing.T) {
		resources := new(MockResourceRepo)
		bookings := new(MockBookingRepo)
		svc := NewAvailabilityService(resources, bookings, clock.NewFixed(testNow), 7)

		resources.On("GetByID", ctx, int32(10)).Return(scheduledResource(), nil)
		bookings.On("ListActiveByResource", ctx, int32(10)).Return([]domain.Booking{
			{Start: testNow.Add(time.Hour), End: testNow.Add(3 * time.Hour)},
		}, nil)

		slot, err := svc.NextSlot(ctx, 10, 60)
		require.NoError(t, err)
		require.NotNil(t, slot)
		// Monday 9:00-11:00 is taken, so the hour starting at 11:00 wins.
		assert.Equal(t, testNow.Add(3*time.Hour), slot.Start)
		assert.Equal(t, time.Hour, slot.End.Sub(slot.Start))
	})

	t.Run("ZeroDurationFallsBackToMinimum", func(t *testing.T) {
		resources := new(MockResourceRepo)
		bookings := new(MockBookingRepo)
		svc := NewAvailabilityService(resources, bookings, clock.NewFixed(testNow), 7)

		resources.On("GetByID", ctx, int32(10)).Return(scheduledResource(), nil)
		bookings.On("ListActiveByResource", ctx, int32(10)).Return([]domain.Booking{}, nil)

		slot, err := svc.NextSlot(ctx, 10, 0)
		require.NoError(t, err)
		require.NotNil(t, slot)
		assert.Equal(t, time.Duration(domain.DefaultMinBookingMinutes)*time.Minute, slot.End.Sub(slot.Start))
	})

	t.Run("NoScheduleMeansNoSlot", func(t *testing.T) {
		resources := new(MockResourceRepo)
		bookings := new(MockBookingRepo)
		svc := NewAvailabilityService(resources, bookings, clock.NewFixed(testNow), 7)

		resources.On("GetByID", ctx, int32(10)).Return(testResource(1, false), nil)
		bookings.On("ListActiveByResource", ctx, int32(10)).Return([]domain.Booking{}, nil)

		slot, err := svc.NextSlot(ctx, 10, 60)
		require.NoError(t, err)
		assert.Nil(t, slot)
	})

	t.Run("UnpublishedResource", func(t *testing.T) {
		resources := new(MockResourceRepo)
		bookings := new(MockBookingRepo)
		svc := NewAvailabilityService(resources, bookings, clock.NewFixed(testNow), 7)

		r := testResource(1, false)
		r.Status = domain.ResourceStatusArchived
		resources.On("GetByID", ctx, int32(10)).Return(r, nil)

		_, err := svc.NextSlot(ctx, 10, 60)
		assert.ErrorIs(t, err, ErrResourceUnavailable)
	})
}

func TestAvailabilityService_ScheduleSummary(t *testing.T) {
	ctx := context.Background()
	resources := new(MockResourceRepo)
	bookings := new(MockBookingRepo)
	svc := NewAvailabilityService(resources, bookings, clock.NewFixed(testNow), 7)

	t.Run("ScheduledResource", func(t *testing.T) {
		r := testResource(1, false)
		r.AvailabilitySchedule = availability.TemplateSchedule("business")
		resources.On("GetByID", ctx, int32(10)).Return(r, nil).Once()

		lines, err := svc.ScheduleSummary(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, lines, 7)
	})

	t.Run("UnconstrainedResource", func(t *testing.T) {
		resources.On("GetByID", ctx, int32(10)).Return(testResource(1, false), nil).Once()

		lines, err := svc.ScheduleSummary(ctx, 10)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "No schedule defined")
	})
}

func TestAvailabilityService_RulesSummary(t *testing.T) {
	ctx := context.Background()
	resources := new(MockResourceRepo)
	bookings := new(MockBookingRepo)
	svc := NewAvailabilityService(resources, bookings, clock.NewFixed(testNow), 7)

	t.Run("DefaultRules", func(t *testing.T) {
		resources.On("GetByID", ctx, int32(10)).Return(testResource(1, false), nil).Once()

		summary, err := svc.RulesSummary(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "30 minutes", summary["min_duration"])
		assert.Equal(t, "8.0 hours", summary["max_duration"])
		assert.Equal(t, "30 minutes", summary["increment"])
		assert.Equal(t, "90 days ahead", summary["advance_limit"])
		// Zero-valued rules stay out of the summary.
		assert.NotContains(t, summary, "buffer")
		assert.NotContains(t, summary, "lead_time")
	})

	t.Run("BufferAndLeadTime", func(t *testing.T) {
		r := testResource(1, false)
		r.BufferMinutes = 15
		r.MinLeadTimeHours = 4
		resources.On("GetByID", ctx, int32(10)).Return(r, nil).Once()

		summary, err := svc.RulesSummary(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, "15 minutes between bookings", summary["buffer"])
		assert.Equal(t, "4 hours advance notice", summary["lead_time"])
	})

	t.Run("MissingResource", func(t *testing.T) {
		resources.On("GetByID", ctx, int32(99)).Return(nil, repository.ErrNotFound).Once()

		_, err := svc.RulesSummary(ctx, 99)
		assert.ErrorIs(t, err, ErrResourceUnavailable)
	})
}
