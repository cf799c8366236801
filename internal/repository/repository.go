package repository

import (
	"context"
	"database/sql"
	"time"

	"mine_evacuation/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// StateRepo keeps the latest monitor state for the API.
type StateRepo interface {
	Save(ctx context.Context, s models.SystemState) error
	Load(ctx context.Context) (models.SystemState, error)
}

// EventRepo is the insert-only, queryable event index.
type EventRepo interface {
	Append(ctx context.Context, e models.AlertEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.AlertEvent, error)
}

// Journal is the append-only text event log.
type Journal interface {
	Append(ctx context.Context, at time.Time, text string) error
}

type Repository struct {
	StateRepo StateRepo
	EventRepo EventRepo
	Journal   Journal
	Auth      Authorization
}

func NewRepository(db *sql.DB, journal Journal) *Repository {
	return &Repository{
		StateRepo: NewStateMemory(),
		EventRepo: NewEventSQLite(db),
		Journal:   journal,
		Auth:      NewUserRepository(db),
	}
}
