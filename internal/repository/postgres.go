package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
)

const uniqueViolation = "23505"

// PostgresUserRepository persists users in PostgreSQL.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

// NewPostgresUserRepository constructs a PostgresUserRepository.
func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user. Uniqueness of email and matric number is
// enforced by the database's unique indexes.
func (r *PostgresUserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = uuid.New().String()
	user.CreatedAt = time.Now().UTC()

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, first_name, last_name, email, password_hash, role, matric_number, department, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, $9)`,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash,
		user.Role, user.MatricNumber, user.Department, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "matric") {
				return ErrMatricNumberTaken
			}
			return ErrEmailTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail returns a single user or ErrNotFound.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var (
		u      model.User
		matric *string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, first_name, last_name, email, password_hash, role, matric_number, department, created_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash, &u.Role, &matric, &u.Department, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if matric != nil {
		u.MatricNumber = *matric
	}
	return &u, nil
}

// PostgresEventRepository persists events and their attendee lists.
type PostgresEventRepository struct {
	db *pgxpool.Pool
}

// NewPostgresEventRepository constructs a PostgresEventRepository.
func NewPostgresEventRepository(db *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

// Create inserts a new event with an empty attendee list.
func (r *PostgresEventRepository) Create(ctx context.Context, event *model.Event) error {
	event.ID = uuid.New().String()
	event.CreatedAt = time.Now().UTC()
	if event.Attendees == nil {
		event.Attendees = []string{}
	}
	if event.Categories == nil {
		event.Categories = []string{}
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, description, date, time, location, organizer_id, capacity, categories, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		event.ID, event.Title, event.Description, event.Date, event.Time, event.Location,
		event.OrganizerID, event.Capacity, event.Categories, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns all events ordered by creation time descending, with the
// organizer joined in and attendee lists attached.
func (r *PostgresEventRepository) List(ctx context.Context) ([]model.EventWithOrganizer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.title, e.description, e.date, e.time, e.location, e.organizer_id,
		        e.capacity, e.categories, e.created_at,
		        u.first_name, u.last_name, u.email
		 FROM events e
		 JOIN users u ON u.id = e.organizer_id
		 ORDER BY e.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.EventWithOrganizer
	for rows.Next() {
		var ev model.EventWithOrganizer
		if err := rows.Scan(
			&ev.ID, &ev.Title, &ev.Description, &ev.Date, &ev.Time, &ev.Location, &ev.OrganizerID,
			&ev.Capacity, &ev.Categories, &ev.CreatedAt,
			&ev.Organizer.FirstName, &ev.Organizer.LastName, &ev.Organizer.Email,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Organizer.ID = ev.OrganizerID
		ev.Attendees = []string{}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachAttendees(ctx, events); err != nil {
		return nil, err
	}
	return events, nil
}

// attachAttendees loads attendee lists for the given events in one query.
func (r *PostgresEventRepository) attachAttendees(ctx context.Context, events []model.EventWithOrganizer) error {
	if len(events) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT event_id, user_id
		 FROM event_attendees
		 ORDER BY event_id, position ASC`,
	)
	if err != nil {
		return fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	byEvent := make(map[string][]string)
	for rows.Next() {
		var eventID, userID string
		if err := rows.Scan(&eventID, &userID); err != nil {
			return fmt.Errorf("scan attendee: %w", err)
		}
		byEvent[eventID] = append(byEvent[eventID], userID)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range events {
		if attendees, ok := byEvent[events[i].ID]; ok {
			events[i].Attendees = attendees
		}
	}
	return nil
}

// ListByAttendee returns all events the given user is registered for,
// oldest registration first.
func (r *PostgresEventRepository) ListByAttendee(ctx context.Context, userID string) ([]model.Event, error) {
	rows, err := r.db.Query(ctx,
		`SELECT e.id, e.title, e.description, e.date, e.time, e.location, e.organizer_id,
		        e.capacity, e.categories, e.created_at
		 FROM events e
		 JOIN event_attendees a ON a.event_id = e.id
		 WHERE a.user_id = $1
		 ORDER BY a.position ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list events for user: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Date, &e.Time, &e.Location, &e.OrganizerID,
			&e.Capacity, &e.Categories, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Attendees = []string{}
		events = append(events, e)
	}
	return events, rows.Err()
}

// RegisterAttendee performs a concurrency-safe registration inside a
// transaction. SELECT ... FOR UPDATE takes a row-level lock on the event,
// serialising concurrent registrations on the same event so the duplicate
// and capacity checks cannot interleave with another insert.
func (r *PostgresEventRepository) RegisterAttendee(ctx context.Context, eventID, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var capacity int
	err = tx.QueryRow(ctx,
		`SELECT capacity FROM events WHERE id = $1 FOR UPDATE`,
		eventID,
	).Scan(&capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock event row: %w", err)
	}

	var registered bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&registered)
	if err != nil {
		return fmt.Errorf("check duplicate: %w", err)
	}
	if registered {
		err = ErrAlreadyRegistered
		return err
	}

	var count int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_attendees WHERE event_id = $1`,
		eventID,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("count attendees: %w", err)
	}
	if count >= capacity {
		err = ErrEventFull
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO event_attendees (event_id, user_id, created_at)
		 VALUES ($1, $2, $3)`,
		eventID, userID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert attendee: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
