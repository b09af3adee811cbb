package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"toolshare-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.ToolRepository
	repository.RentalRepository
	repository.AvailabilityRepository
	repository.ReviewRepository
	repository.MessageRepository
	repository.ProfileRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		ToolRepository:         NewToolRepository(db),
		RentalRepository:       NewRentalRepository(db),
		AvailabilityRepository: NewAvailabilityRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		MessageRepository:      NewMessageRepository(db),
		ProfileRepository:      NewProfileRepository(db),
	}
}
