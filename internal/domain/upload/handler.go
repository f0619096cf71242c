package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phexara/phexara-api/internal/pkg/errorhandler"
	"github.com/phexara/phexara-api/internal/pkg/response"
)

// Handler handles upload HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates upload handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Sign handles POST /api/upload. A missing or malformed connection string is
// reported per request as 500 with the configuration message.
func (h *Handler) Sign(w http.ResponseWriter, r *http.Request) {
	signed, err := h.service.Sign(r.Context())
	if err != nil {
		errorhandler.HandleUpstreamError(r.Context(), w, err)
		return
	}

	response.OK(w, signed)
}

// Routes returns the /api/upload router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Sign)
	return r
}
