package postgres

import (
	"database/sql"

	"resourcehub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ResourceRepository
	repository.BookingRepository
	repository.WaitlistRepository
	repository.UserRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ResourceRepository:     NewResourceRepository(db),
		BookingRepository:      NewBookingRepository(db),
		WaitlistRepository:     NewWaitlistRepository(db),
		UserRepository:         NewUserRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
