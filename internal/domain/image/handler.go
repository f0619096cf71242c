package image

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phexara/phexara-api/internal/pkg/errorhandler"
	"github.com/phexara/phexara-api/internal/pkg/response"
	"github.com/phexara/phexara-api/internal/pkg/validator"
)

// Handler handles image HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates image handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /api/images
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	limitRaw := query.Get("limit")
	if limitRaw == "" {
		limitRaw = query.Get("pageSize")
	}

	result, err := h.service.List(r.Context(), ListParams{
		Page:  ParsePage(query.Get("page")),
		Limit: APIBounds.ParseSize(limitRaw),
		Tag:   NormalizeTag(query.Get("tag")),
	})
	if err != nil {
		errorhandler.HandleUpstreamError(r.Context(), w, err)
		return
	}

	response.WithMeta(w, result.Images, response.Metadata{
		Page:    result.Page,
		Limit:   result.Limit,
		Total:   result.Total,
		HasMore: result.HasMore,
	})
}

// Create handles POST /api/images
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateImageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	req.Normalize()
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	img, err := h.service.Create(r.Context(), req.ToNewImage())
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields):
			response.BadRequest(w, ErrMissingFields.Error())
		default:
			errorhandler.HandleUpstreamError(r.Context(), w, err)
		}
		return
	}

	response.Created(w, img)
}

// Get handles GET /api/images/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	img, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	response.OK(w, img)
}

// Update handles PUT /api/images/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := ParseID(id); err != nil {
		response.BadRequest(w, ErrInvalidID.Error())
		return
	}

	var req UpdateImageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	req.Normalize()
	if errs := validator.Validate(&req); errs != nil {
		errorhandler.LogValidationError(r.Context(), errs)
		response.ValidationError(w, errs)
		return
	}

	img, err := h.service.Update(r.Context(), id, req.Prompt, req.Tags)
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	response.Message(w, "Updated successfully", img)
}

// Delete handles DELETE /api/images/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeLookupError(w, r, err)
		return
	}

	response.Message(w, "Deleted successfully", nil)
}

func (h *Handler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrInvalidID):
		response.BadRequest(w, ErrInvalidID.Error())
	case errors.Is(err, ErrMissingFields):
		response.BadRequest(w, ErrMissingFields.Error())
	case errors.Is(err, ErrImageNotFound):
		response.NotFound(w, "Image not found")
	default:
		errorhandler.HandleUpstreamError(r.Context(), w, err)
	}
}
