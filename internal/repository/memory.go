package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

// MemoryUserRepository is a map-backed UserRepository for tests and local
// development without Postgres.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*model.User // keyed by id
}

// NewMemoryUserRepository constructs an empty MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
		if user.MatricNumber != "" && existing.MatricNumber == user.MatricNumber {
			return ErrMatricNumberTaken
		}
	}

	user.ID = uuid.New().String()
	user.CreatedAt = time.Now().UTC()

	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			found := *u
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) getByID(id string) (*model.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	return u, ok
}

// MemoryEventRepository is a map-backed EventRepository. The store mutex
// serialises RegisterAttendee, upholding the capacity invariant under
// concurrent registration attempts.
type MemoryEventRepository struct {
	mu     sync.Mutex
	events map[string]*model.Event
	users  *MemoryUserRepository // for organizer expansion in List
}

// NewMemoryEventRepository constructs an empty MemoryEventRepository backed
// by the given user store.
func NewMemoryEventRepository(users *MemoryUserRepository) *MemoryEventRepository {
	return &MemoryEventRepository{events: make(map[string]*model.Event), users: users}
}

func (r *MemoryEventRepository) Create(_ context.Context, event *model.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()
	if event.Attendees == nil {
		event.Attendees = []string{}
	}
	if event.Categories == nil {
		event.Categories = []string{}
	}

	stored := copyEvent(event)
	r.events[event.ID] = stored
	return nil
}

func (r *MemoryEventRepository) List(_ context.Context) ([]model.EventWithOrganizer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	events := make([]model.EventWithOrganizer, 0, len(r.events))
	for _, e := range r.events {
		ev := model.EventWithOrganizer{Event: *copyEvent(e)}
		ev.Organizer = model.Organizer{ID: e.OrganizerID}
		if u, ok := r.users.getByID(e.OrganizerID); ok {
			ev.Organizer.FirstName = u.FirstName
			ev.Organizer.LastName = u.LastName
			ev.Organizer.Email = u.Email
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (r *MemoryEventRepository) ListByAttendee(_ context.Context, userID string) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var events []model.Event
	for _, e := range r.events {
		for _, id := range e.Attendees {
			if id == userID {
				events = append(events, *copyEvent(e))
				break
			}
		}
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (r *MemoryEventRepository) RegisterAttendee(_ context.Context, eventID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event, ok := r.events[eventID]
	if !ok {
		return ErrNotFound
	}
	for _, id := range event.Attendees {
		if id == userID {
			return ErrAlreadyRegistered
		}
	}
	if len(event.Attendees) >= event.Capacity {
		return ErrEventFull
	}
	event.Attendees = append(event.Attendees, userID)
	return nil
}

// copyEvent returns a deep copy so callers never alias stored slices.
func copyEvent(e *model.Event) *model.Event {
	c := *e
	c.Attendees = append([]string(nil), e.Attendees...)
	c.Categories = append([]string(nil), e.Categories...)
	if c.Attendees == nil {
		c.Attendees = []string{}
	}
	if c.Categories == nil {
		c.Categories = []string{}
	}
	return &c
}
