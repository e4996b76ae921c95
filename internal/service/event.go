package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
)

// ErrForbidden is returned when a student tries to create an event.
var ErrForbidden = errors.New("only staff and admins can create events")

// ErrInvalidEvent marks event payloads that fail field validation, so
// handlers can tell a client error from a store failure.
var ErrInvalidEvent = errors.New("invalid event")

// EventService orchestrates event creation and registration.
type EventService struct {
	events repository.EventRepository
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(events repository.EventRepository) *EventService {
	return &EventService{events: events}
}

// Create validates the request, enforces the role gate, and persists a new
// event with an empty attendee list owned by organizerID.
func (s *EventService) Create(ctx context.Context, organizerID, role string, req model.CreateEventRequest) (*model.Event, error) {
	if role == model.RoleStudent {
		return nil, ErrForbidden
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, fmt.Errorf("%w: event title is required", ErrInvalidEvent)
	}
	if req.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must be a non-negative integer", ErrInvalidEvent)
	}
	if req.Capacity > 100_000 {
		return nil, fmt.Errorf("%w: capacity cannot exceed 100,000", ErrInvalidEvent)
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Location:    req.Location,
		OrganizerID: organizerID,
		Capacity:    req.Capacity,
		Attendees:   []string{},
		Categories:  req.Categories,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// Register adds userID to the event's attendee list. The duplicate and
// capacity checks happen atomically in the store.
func (s *EventService) Register(ctx context.Context, eventID, userID string) error {
	if eventID == "" {
		return repository.ErrNotFound
	}

	err := s.events.RegisterAttendee(ctx, eventID, userID)
	if err != nil {
		// Surface domain errors directly so handlers can set correct HTTP status.
		if errors.Is(err, repository.ErrNotFound) ||
			errors.Is(err, repository.ErrEventFull) ||
			errors.Is(err, repository.ErrAlreadyRegistered) {
			return err
		}
		return fmt.Errorf("register for event: %w", err)
	}
	return nil
}

// List returns all events with their organizers expanded.
func (s *EventService) List(ctx context.Context) ([]model.EventWithOrganizer, error) {
	return s.events.List(ctx)
}

// ListForUser returns the events the given user is registered for.
func (s *EventService) ListForUser(ctx context.Context, userID string) ([]model.Event, error) {
	return s.events.ListByAttendee(ctx, userID)
}
