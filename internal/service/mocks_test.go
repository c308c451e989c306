package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"resourcehub-backend/internal/domain"
)

// MockResourceRepo
type MockResourceRepo struct {
	mock.Mock
}

func (m *MockResourceRepo) Create(ctx context.Context, resource *domain.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}
func (m *MockResourceRepo) GetByID(ctx context.Context, id int32) (*domain.Resource, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Resource), args.Error(1)
}
func (m *MockResourceRepo) ListPublished(ctx context.Context) ([]domain.Resource, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Resource), args.Error(1)
}
func (m *MockResourceRepo) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Resource, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Resource), args.Error(1)
}
func (m *MockResourceRepo) Update(ctx context.Context, resource *domain.Resource) error {
	args := m.Called(ctx, resource)
	return args.Error(0)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByRequester(ctx context.Context, requesterID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListForOwner(ctx context.Context, ownerID int32, status domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListActiveByResource(ctx context.Context, resourceID int32) ([]domain.Booking, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) HasConflict(ctx context.Context, resourceID int32, start, end time.Time, excludeID int32) (bool, error) {
	args := m.Called(ctx, resourceID, start, end, excludeID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBookingRepo) CreateSeries(ctx context.Context, bookings []*domain.Booking) (int, error) {
	args := m.Called(ctx, bookings)
	return args.Int(0), args.Error(1)
}
func (m *MockBookingRepo) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus, decisionNotes string, decisionBy *int32) error {
	args := m.Called(ctx, id, status, decisionNotes, decisionBy)
	return args.Error(0)
}
func (m *MockBookingRepo) MarkCompletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBookingRepo) ListApprovedStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockWaitlistRepo
type MockWaitlistRepo struct {
	mock.Mock
}

func (m *MockWaitlistRepo) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockWaitlistRepo) GetByID(ctx context.Context, id int32) (*domain.WaitlistEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WaitlistEntry), args.Error(1)
}
func (m *MockWaitlistRepo) ListActiveByResource(ctx context.Context, resourceID int32) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, resourceID)
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}
func (m *MockWaitlistRepo) ListActiveByRequester(ctx context.Context, requesterID int32) ([]domain.WaitlistEntry, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.WaitlistEntry), args.Error(1)
}
func (m *MockWaitlistRepo) HasActiveEntry(ctx context.Context, resourceID, requesterID int32, start, end time.Time) (bool, error) {
	args := m.Called(ctx, resourceID, requesterID, start, end)
	return args.Bool(0), args.Error(1)
}
func (m *MockWaitlistRepo) MarkPromoted(ctx context.Context, id, bookingID int32) error {
	args := m.Called(ctx, id, bookingID)
	return args.Error(0)
}
func (m *MockWaitlistRepo) Cancel(ctx context.Context, id int32) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
func (m *MockWaitlistRepo) CancelExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, toEmail, toName, subject, body string) error {
	args := m.Called(ctx, toEmail, toName, subject, body)
	return args.Error(0)
}
