package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"resourcehub-backend/internal/availability"
	"resourcehub-backend/internal/domain"
	"resourcehub-backend/internal/security"
	"resourcehub-backend/internal/service"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) RequestBooking(ctx context.Context, req service.BookingRequest) (*service.BookingResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BookingResult), args.Error(1)
}
func (m *MockBookingService) Get(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, actorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListMine(ctx context.Context, userID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListForOwner(ctx context.Context, ownerID int32, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingService) Approve(ctx context.Context, actorID, bookingID int32, notes string) (*domain.Booking, error) {
	args := m.Called(ctx, actorID, bookingID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Reject(ctx context.Context, actorID, bookingID int32, notes string) (*domain.Booking, error) {
	args := m.Called(ctx, actorID, bookingID, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Cancel(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, actorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) Complete(ctx context.Context, actorID, bookingID int32) (*domain.Booking, error) {
	args := m.Called(ctx, actorID, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListMyWaitlist(ctx context.Context, userID int32) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}
func (m *MockBookingService) CancelWaitlistEntry(ctx context.Context, actorID, entryID int32) error {
	args := m.Called(ctx, actorID, entryID)
	return args.Error(0)
}

func authedRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	claims := &security.UserClaims{UserID: 2}
	return r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
}

func TestBookingHandler_Create(t *testing.T) {
	start := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	body := `{"resource_id":10,"start_datetime":"2026-03-02T10:00:00Z","end_datetime":"2026-03-02T11:00:00Z"}`

	t.Run("Created", func(t *testing.T) {
		svc := new(MockBookingService)
		h := &bookingHandler{bookings: svc}
		svc.On("RequestBooking", mock.Anything, mock.MatchedBy(func(req service.BookingRequest) bool {
			return req.ResourceID == 10 && req.RequesterID == 2 && req.Start.Equal(start)
		})).Return(&service.BookingResult{Bookings: []domain.Booking{{ID: 100}}}, nil)

		w := httptest.NewRecorder()
		h.create(w, authedRequest(http.MethodPost, "/api/bookings", body))

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("ConflictCarriesWaitlistFlag", func(t *testing.T) {
		svc := new(MockBookingService)
		h := &bookingHandler{bookings: svc}
		svc.On("RequestBooking", mock.Anything, mock.Anything).Return(nil, &service.ConflictError{
			OccurrenceIndex:  0,
			WaitlistEligible: true,
		})

		w := httptest.NewRecorder()
		h.create(w, authedRequest(http.MethodPost, "/api/bookings", body))

		assert.Equal(t, http.StatusConflict, w.Code)
		var resp conflictResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "booking_conflict", resp.Code)
		assert.True(t, resp.WaitlistEligible)
	})

	t.Run("RuleViolationIs422", func(t *testing.T) {
		svc := new(MockBookingService)
		h := &bookingHandler{bookings: svc}
		svc.On("RequestBooking", mock.Anything, mock.Anything).Return(nil, &availability.ValidationError{
			Code:    availability.ReasonTooShort,
			Message: "Booking must be at least 30 minutes long",
		})

		w := httptest.NewRecorder()
		h.create(w, authedRequest(http.MethodPost, "/api/bookings", body))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(availability.ReasonTooShort), resp.Code)
	})

	t.Run("WaitlistRedirectIsAccepted", func(t *testing.T) {
		svc := new(MockBookingService)
		h := &bookingHandler{bookings: svc}
		svc.On("RequestBooking", mock.Anything, mock.Anything).Return(&service.BookingResult{
			WaitlistEntry: &domain.WaitlistEntry{ID: 501},
		}, nil)

		w := httptest.NewRecorder()
		h.create(w, authedRequest(http.MethodPost, "/api/bookings", body))

		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("MissingFieldsRejected", func(t *testing.T) {
		svc := new(MockBookingService)
		h := &bookingHandler{bookings: svc}

		w := httptest.NewRecorder()
		h.create(w, authedRequest(http.MethodPost, "/api/bookings", `{"resource_id":10}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "RequestBooking", mock.Anything, mock.Anything)
	})
}
