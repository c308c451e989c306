package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRules() Rules {
	return Rules{
		MinDurationMinutes: 30,
		MaxDurationMinutes: 480,
		IncrementMinutes:   30,
		AdvanceHorizonDays: 90,
	}
}

func TestValidateBookingTimes(t *testing.T) {
	schedule := ParseSchedule(businessHours)
	require.NotNil(t, schedule)
	now := at(time.Monday, 8, 0)

	t.Run("AcceptsValidInterval", func(t *testing.T) {
		err := ValidateBookingTimes(at(time.Monday, 10, 0), at(time.Monday, 11, 0), schedule, defaultRules(), now)
		assert.Nil(t, err)
	})

	t.Run("EndMustFollowStart", func(t *testing.T) {
		err := ValidateBookingTimes(at(time.Monday, 11, 0), at(time.Monday, 10, 0), schedule, defaultRules(), now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonInvalidRange, err.Code)

		err = ValidateBookingTimes(at(time.Monday, 10, 0), at(time.Monday, 10, 0), schedule, defaultRules(), now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonInvalidRange, err.Code)
	})

	t.Run("TooShort", func(t *testing.T) {
		err := ValidateBookingTimes(at(time.Monday, 10, 0), at(time.Monday, 10, 15), schedule, defaultRules(), now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonTooShort, err.Code)
		assert.Equal(t, "Booking must be at least 30 minutes long", err.Message)
	})

	t.Run("TooLong", func(t *testing.T) {
		rules := defaultRules()
		rules.MaxDurationMinutes = 120
		err := ValidateBookingTimes(at(time.Monday, 9, 0), at(time.Monday, 12, 0), schedule, rules, now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonTooLong, err.Code)
	})

	t.Run("OffIncrementRejected", func(t *testing.T) {
		// 75 minutes is over the minimum but not a multiple of 30.
		err := ValidateBookingTimes(at(time.Monday, 10, 0), at(time.Monday, 11, 15), schedule, defaultRules(), now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonBadIncrement, err.Code)
		assert.Equal(t, "Booking duration must be in 30-minute increments", err.Message)
	})

	t.Run("SubMinuteRemainderRejected", func(t *testing.T) {
		// 30 minutes 30 seconds must not truncate down to a clean 30.
		end := at(time.Monday, 10, 30).Add(30 * time.Second)
		err := ValidateBookingTimes(at(time.Monday, 10, 0), end, schedule, defaultRules(), now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonBadIncrement, err.Code)
	})

	t.Run("OnIncrementAccepted", func(t *testing.T) {
		err := ValidateBookingTimes(at(time.Monday, 10, 0), at(time.Monday, 11, 30), schedule, defaultRules(), now)
		assert.Nil(t, err)
	})

	t.Run("LeadTime", func(t *testing.T) {
		rules := defaultRules()
		rules.MinLeadTimeHours = 4
		err := ValidateBookingTimes(at(time.Monday, 10, 0), at(time.Monday, 11, 0), schedule, rules, now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonLeadTime, err.Code)

		// Exactly at the lead-time boundary is allowed.
		err = ValidateBookingTimes(at(time.Monday, 12, 0), at(time.Monday, 13, 0), schedule, rules, now)
		assert.Nil(t, err)
	})

	t.Run("BeyondHorizon", func(t *testing.T) {
		rules := defaultRules()
		rules.AdvanceHorizonDays = 7
		farStart := at(time.Monday, 10, 0).AddDate(0, 0, 14)
		err := ValidateBookingTimes(farStart, farStart.Add(time.Hour), schedule, rules, now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonBeyondHorizon, err.Code)
	})

	t.Run("ClosedAtStart", func(t *testing.T) {
		err := ValidateBookingTimes(at(time.Monday, 8, 0), at(time.Monday, 9, 30), schedule, defaultRules(), now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonClosedAtStart, err.Code)
	})

	t.Run("ClosedBeforeEnd", func(t *testing.T) {
		err := ValidateBookingTimes(at(time.Monday, 16, 30), at(time.Monday, 17, 30), schedule, defaultRules(), now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonClosedBeforeEnd, err.Code)
	})

	t.Run("ClosedWithinSpan", func(t *testing.T) {
		split := ParseSchedule(`{"monday":[{"start":"09:00","end":"12:00"},{"start":"13:00","end":"17:00"}]}`)
		require.NotNil(t, split)
		err := ValidateBookingTimes(at(time.Monday, 11, 0), at(time.Monday, 14, 0), split, defaultRules(), now)
		require.NotNil(t, err)
		assert.Equal(t, ReasonClosedWithin, err.Code)
	})

	t.Run("NilScheduleSkipsScheduleChecks", func(t *testing.T) {
		err := ValidateBookingTimes(at(time.Sunday, 3, 0), at(time.Sunday, 4, 0), nil, defaultRules(), now)
		assert.Nil(t, err)
	})

	t.Run("ZeroRulesDisableChecks", func(t *testing.T) {
		err := ValidateBookingTimes(at(time.Monday, 10, 0), at(time.Monday, 10, 1), nil, Rules{}, now)
		assert.Nil(t, err)
	})
}
