// Package model defines the core domain types for the campus events service.
package model

import "time"

// Roles a user can hold. Accounts registered without an explicit role
// default to RoleStudent.
const (
	RoleStudent = "student"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

// User represents a registered account.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose the hash in JSON
	Role         string    `json:"role"`
	MatricNumber string    `json:"matricNumber,omitempty"`
	Department   string    `json:"department,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Event represents a campus event with a fixed attendee capacity.
// Attendees holds user ids in registration order and never contains
// duplicates or more than Capacity entries.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	OrganizerID string    `json:"organizer"`
	Capacity    int       `json:"capacity"`
	Attendees   []string  `json:"attendees"`
	Categories  []string  `json:"categories"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Remaining returns the number of free attendee slots.
func (e *Event) Remaining() int {
	return e.Capacity - len(e.Attendees)
}

// IsFull returns true when no slots remain.
func (e *Event) IsFull() bool {
	return len(e.Attendees) >= e.Capacity
}

// Organizer is the subset of a user embedded in event listings.
type Organizer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// EventWithOrganizer is an event whose organizer reference has been expanded
// to a user summary. The outer Organizer field shadows the embedded
// OrganizerID in the JSON encoding.
type EventWithOrganizer struct {
	Event
	Organizer Organizer `json:"organizer"`
}

// RegisterRequest is the payload for account registration. Only email and
// password are mandatory; the rest mirrors the optional profile fields
// on User.
type RegisterRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	Role         string `json:"role" validate:"omitempty,oneof=student staff admin"`
	MatricNumber string `json:"matricNumber"`
	Department   string `json:"department"`
}

// LoginRequest is the payload for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" validate:"required"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Capacity    int       `json:"capacity" validate:"gte=0"`
	Categories  []string  `json:"categories"`
}

// AuthResponse is returned by both registration and login.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// MessageResponse is a confirmation envelope for operations with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
