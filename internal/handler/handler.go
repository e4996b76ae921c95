// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer, plus the auth
// middleware that guards protected routes.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/Shivanand-hulikatti/campus-events/internal/model"
	"github.com/Shivanand-hulikatti/campus-events/internal/repository"
	"github.com/Shivanand-hulikatti/campus-events/internal/service"
)

var validate = validator.New()

// Handler holds all HTTP handlers for the campus events API.
type Handler struct {
	auth   *service.AuthService
	events *service.EventService
	log    zerolog.Logger
}

// New constructs a Handler.
func New(auth *service.AuthService, events *service.EventService, log zerolog.Logger) *Handler {
	return &Handler{auth: auth, events: events, log: log}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func decodeJSON(r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, 1<<20) // 1 MB limit
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// validationMessage turns the first validator error into a client-readable
// message.
func validationMessage(err error) string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) || len(vErrs) == 0 {
		return "invalid request"
	}
	ve := vErrs[0]
	field := strings.ToLower(ve.Field()[:1]) + ve.Field()[1:]
	switch ve.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " is not a valid email address"
	case "min":
		return field + " is too short"
	case "gte":
		return field + " must be non-negative"
	case "oneof":
		return field + " must be one of: " + ve.Param()
	}
	return field + " is invalid"
}

// ─── Auth handlers ────────────────────────────────────────────────────────────

// RegisterUser handles POST /api/register
// Creates a new account and returns it with a fresh bearer token.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, tok, err := h.auth.Register(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailTaken):
			writeError(w, http.StatusBadRequest, "email already registered")
		case errors.Is(err, repository.ErrMatricNumberTaken):
			writeError(w, http.StatusBadRequest, "matric number already registered")
		default:
			h.log.Error().Err(err).Msg("register user")
			writeError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, model.AuthResponse{User: user, Token: tok})
}

// Login handles POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	user, tok, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		h.log.Error().Err(err).Msg("login")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, model.AuthResponse{User: user, Token: tok})
}

// ─── Event handlers ───────────────────────────────────────────────────────────

// CreateEvent handles POST /api/events (staff and admins only).
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied")
		return
	}

	var req model.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	event, err := h.events.Create(r.Context(), claims.UserID, claims.Role, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			writeError(w, http.StatusForbidden, "Only staff and admins can create events")
		case errors.Is(err, service.ErrInvalidEvent):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Msg("create event")
			writeError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /api/events
// Returns all events with the organizer expanded to a user summary.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list events")
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	// Return an empty array rather than null for better client compatibility.
	if events == nil {
		events = []model.EventWithOrganizer{}
	}

	writeJSON(w, http.StatusOK, events)
}

// RegisterForEvent handles POST /api/events/{id}/register
// Performs a concurrency-safe registration for the authenticated user.
func (h *Handler) RegisterForEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied")
		return
	}
	id := chi.URLParam(r, "id")

	if err := h.events.Register(r.Context(), id, claims.UserID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, "Event not found")
		case errors.Is(err, repository.ErrAlreadyRegistered):
			writeError(w, http.StatusBadRequest, "Already registered for this event")
		case errors.Is(err, repository.ErrEventFull):
			writeError(w, http.StatusBadRequest, "Event is at full capacity")
		default:
			h.log.Error().Err(err).Str("event_id", id).Msg("register for event")
			writeError(w, http.StatusInternalServerError, "server error")
		}
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: "Successfully registered for event"})
}

// ListUserEvents handles GET /api/user/events
// Returns the events the authenticated user is registered for.
func (h *Handler) ListUserEvents(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied")
		return
	}

	events, err := h.events.ListForUser(r.Context(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Msg("list user events")
		writeError(w, http.StatusInternalServerError, "failed to list events")
		return
	}

	if events == nil {
		events = []model.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
