// Package repository implements persistence for users and events.
// Postgres is the production store (pgx directly, no ORM); an in-memory
// store backs tests and local development.
package repository

import (
	"context"
	"errors"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is at full capacity")

// ErrAlreadyRegistered is returned when a user registers twice for the same event.
var ErrAlreadyRegistered = errors.New("already registered for this event")

// ErrEmailTaken is returned when the email is already in use by another account.
var ErrEmailTaken = errors.New("email already registered")

// ErrMatricNumberTaken is returned when the matric number is already in use.
var ErrMatricNumberTaken = errors.New("matric number already registered")

// UserRepository is the credential store. Plaintext passwords never reach
// this layer; User.PasswordHash is the only secret it holds.
type UserRepository interface {
	// Create persists a new user, assigning its id and creation time.
	// Fails with ErrEmailTaken or ErrMatricNumberTaken on uniqueness
	// violations.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail returns the user with the given email or ErrNotFound.
	// Emails are matched exactly as stored (case-sensitive).
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// EventRepository is the event store.
type EventRepository interface {
	// Create persists a new event, assigning its id and creation time.
	Create(ctx context.Context, event *model.Event) error

	// List returns all events, newest first, with the organizer expanded
	// to a user summary.
	List(ctx context.Context) ([]model.EventWithOrganizer, error)

	// ListByAttendee returns all events the given user is registered for.
	ListByAttendee(ctx context.Context, userID string) ([]model.Event, error)

	// RegisterAttendee appends userID to the event's attendee list.
	// The duplicate and capacity checks are atomic with respect to other
	// registrations on the same event, so the attendee list can never
	// exceed capacity or contain the same user twice.
	// Fails with ErrNotFound, ErrAlreadyRegistered, or ErrEventFull.
	RegisterAttendee(ctx context.Context, eventID, userID string) error
}
