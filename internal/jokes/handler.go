package jokes

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dadlab/jokeboard/internal/domain"
	"github.com/dadlab/jokeboard/internal/pkg/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

// Pagination constants.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Handler handles HTTP requests for the jokes module.
type Handler struct {
	service   *Service
	validator *validator.Validate
}

// NewHandler creates a new jokes handler.
func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
	}
}

// RegisterPublicRoutes registers routes that need no authentication.
func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/jokes/random", h.Random)
}

// RegisterProtectedRoutes registers routes for authenticated users.
func (h *Handler) RegisterProtectedRoutes(r chi.Router) {
	r.Post("/jokes/submit", h.Submit)
	r.Get("/jokes", h.List)
}

// RegisterModeratorRoutes registers routes that require a moderating role.
func (h *Handler) RegisterModeratorRoutes(r chi.Router) {
	r.Put("/jokes/moderate", h.Moderate)
}

// SubmitRequest represents the request body for submitting a joke.
type SubmitRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// SubmitResponse reports the outcome of a submission.
type SubmitResponse struct {
	Success bool   `json:"success"`
	JokeID  string `json:"joke_id,omitempty"`
	Message string `json:"message"`
}

// Submit handles POST /jokes/submit.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	joke, err := h.service.Submit(r.Context(), req.Content, httputil.GetUserID(r.Context()))
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, SubmitResponse{
		Success: true,
		JokeID:  joke.ID,
		Message: "Joke submitted successfully.",
	})
}

// ModerateRequest represents the request body for moderating a joke.
type ModerateRequest struct {
	JokeID    string `json:"joke_id" validate:"required"`
	NewStatus string `json:"new_status" validate:"required,oneof=APPROVED REJECTED PENDING"`
}

// ModerateResponse reports the outcome of a moderation decision.
type ModerateResponse struct {
	Message         string `json:"message"`
	ModeratedJokeID string `json:"moderated_joke_id"`
	NewStatus       string `json:"new_status"`
}

// Moderate handles PUT /jokes/moderate.
func (h *Handler) Moderate(w http.ResponseWriter, r *http.Request) {
	var req ModerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid json")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		httputil.ValidationError(w, err)
		return
	}

	joke, err := h.service.Moderate(r.Context(), req.JokeID, domain.JokeStatus(req.NewStatus))
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, ModerateResponse{
		Message:         "Dad joke has been successfully moderated.",
		ModeratedJokeID: joke.ID,
		NewStatus:       string(joke.Status),
	})
}

// Random handles GET /jokes/random.
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	joke, err := h.service.Random(r.Context())
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, joke)
}

// List handles GET /jokes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	filter := Filter{Limit: DefaultListLimit}

	if v := r.URL.Query().Get("status"); v != "" {
		status := domain.JokeStatus(v)
		if !status.IsValid() {
			httputil.Error(w, http.StatusBadRequest, "invalid status filter")
			return
		}
		filter.Status = &status
	}

	if v := r.URL.Query().Get("mine"); v == "true" {
		userID := httputil.GetUserID(r.Context())
		filter.SubmittedBy = &userID
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 || limit > MaxListLimit {
			httputil.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			httputil.Error(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = offset
	}

	jokes, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.handleServiceError(r, w, err)
		return
	}

	httputil.Success(w, http.StatusOK, jokes)
}

func (h *Handler) handleServiceError(r *http.Request, w http.ResponseWriter, err error) {
	httputil.HandleError(r.Context(), w, err, []httputil.ErrorMapping{
		{Error: ErrJokeNotFound, Status: http.StatusNotFound},
		{Error: ErrInvalidStatus, Status: http.StatusBadRequest},
		{Error: ErrEmptyContent, Status: http.StatusBadRequest},
	})
}
