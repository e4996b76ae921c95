package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

func newTestStores(t *testing.T) (*MemoryUserRepository, *MemoryEventRepository) {
	t.Helper()
	users := NewMemoryUserRepository()
	return users, NewMemoryEventRepository(users)
}

func createUser(t *testing.T, users *MemoryUserRepository, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, PasswordHash: "x", Role: model.RoleStudent}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func createEvent(t *testing.T, events *MemoryEventRepository, capacity int) *model.Event {
	t.Helper()
	e := &model.Event{Title: "Tech Fair", OrganizerID: "org-1", Capacity: capacity}
	require.NoError(t, events.Create(context.Background(), e))
	return e
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()
	users, _ := newTestStores(t)
	ctx := context.Background()

	createUser(t, users, "a@campus.edu")

	err := users.Create(ctx, &model.User{Email: "a@campus.edu", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserCreate_DuplicateMatricNumber(t *testing.T) {
	t.Parallel()
	users, _ := newTestStores(t)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Email: "a@campus.edu", MatricNumber: "MAT001"}))

	err := users.Create(ctx, &model.User{Email: "b@campus.edu", MatricNumber: "MAT001"})
	assert.ErrorIs(t, err, ErrMatricNumberTaken)

	// Absent matric numbers never collide.
	require.NoError(t, users.Create(ctx, &model.User{Email: "c@campus.edu"}))
	require.NoError(t, users.Create(ctx, &model.User{Email: "d@campus.edu"}))
}

func TestUserGetByEmail_CaseSensitive(t *testing.T) {
	t.Parallel()
	users, _ := newTestStores(t)
	ctx := context.Background()

	createUser(t, users, "Alice@campus.edu")

	_, err := users.GetByEmail(ctx, "alice@campus.edu")
	assert.ErrorIs(t, err, ErrNotFound)

	u, err := users.GetByEmail(ctx, "Alice@campus.edu")
	require.NoError(t, err)
	assert.Equal(t, "Alice@campus.edu", u.Email)
}

func TestRegisterAttendee_UnknownEvent(t *testing.T) {
	t.Parallel()
	_, events := newTestStores(t)

	err := events.RegisterAttendee(context.Background(), "no-such-event", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterAttendee_Duplicate(t *testing.T) {
	t.Parallel()
	_, events := newTestStores(t)
	ctx := context.Background()

	e := createEvent(t, events, 5)

	require.NoError(t, events.RegisterAttendee(ctx, e.ID, "u1"))
	err := events.RegisterAttendee(ctx, e.ID, "u1")
	assert.ErrorIs(t, err, ErrAlreadyRegistered)

	listed, err := events.ListByAttendee(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, []string{"u1"}, listed[0].Attendees)
}

func TestRegisterAttendee_FullEventUnchanged(t *testing.T) {
	t.Parallel()
	_, events := newTestStores(t)
	ctx := context.Background()

	e := createEvent(t, events, 2)
	require.NoError(t, events.RegisterAttendee(ctx, e.ID, "u1"))
	require.NoError(t, events.RegisterAttendee(ctx, e.ID, "u2"))

	err := events.RegisterAttendee(ctx, e.ID, "u3")
	assert.ErrorIs(t, err, ErrEventFull)

	all, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, []string{"u1", "u2"}, all[0].Attendees)
}

func TestRegisterAttendee_ZeroCapacity(t *testing.T) {
	t.Parallel()
	_, events := newTestStores(t)

	e := createEvent(t, events, 0)
	err := events.RegisterAttendee(context.Background(), e.ID, "u1")
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestRegisterAttendee_PreservesArrivalOrder(t *testing.T) {
	t.Parallel()
	_, events := newTestStores(t)
	ctx := context.Background()

	e := createEvent(t, events, 10)
	want := make([]string, 0, 10)
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("user-%02d", i)
		require.NoError(t, events.RegisterAttendee(ctx, e.ID, id))
		want = append(want, id)
	}

	all, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, want, all[0].Attendees)
}

// Fifty distinct users race for ten seats: exactly ten registrations must
// succeed, the rest fail with ErrEventFull, and the final attendee list holds
// exactly ten unique ids.
func TestRegisterAttendee_ConcurrentCapacity(t *testing.T) {
	t.Parallel()
	_, events := newTestStores(t)
	ctx := context.Background()

	const (
		capacity = 10
		racers   = 50
	)
	e := createEvent(t, events, capacity)

	results := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = events.RegisterAttendee(ctx, e.ID, fmt.Sprintf("user-%02d", i))
		}(i)
	}
	wg.Wait()

	var succeeded, full int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrEventFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, racers-capacity, full)

	all, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	attendees := all[0].Attendees
	assert.Len(t, attendees, capacity)
	seen := make(map[string]bool, len(attendees))
	for _, id := range attendees {
		assert.False(t, seen[id], "duplicate attendee %s", id)
		seen[id] = true
	}
}

func TestList_ExpandsOrganizer(t *testing.T) {
	t.Parallel()
	users, events := newTestStores(t)
	ctx := context.Background()

	organizer := &model.User{
		FirstName: "Ada", LastName: "Lovelace",
		Email: "ada@campus.edu", Role: model.RoleStaff,
	}
	require.NoError(t, users.Create(ctx, organizer))

	e := &model.Event{Title: "Guest Lecture", OrganizerID: organizer.ID, Capacity: 100}
	require.NoError(t, events.Create(ctx, e))

	all, err := events.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, organizer.ID, all[0].Organizer.ID)
	assert.Equal(t, "Ada", all[0].Organizer.FirstName)
	assert.Equal(t, "Lovelace", all[0].Organizer.LastName)
	assert.Equal(t, "ada@campus.edu", all[0].Organizer.Email)
}

func TestListByAttendee_OnlyRegisteredEvents(t *testing.T) {
	t.Parallel()
	_, events := newTestStores(t)
	ctx := context.Background()

	attended := createEvent(t, events, 5)
	createEvent(t, events, 5) // not registered

	require.NoError(t, events.RegisterAttendee(ctx, attended.ID, "u1"))

	listed, err := events.ListByAttendee(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, attended.ID, listed[0].ID)

	none, err := events.ListByAttendee(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, none)
}
