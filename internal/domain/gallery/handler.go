package gallery

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phexara/phexara-api/internal/domain/image"
	"github.com/phexara/phexara-api/internal/pkg/errorhandler"
	"github.com/phexara/phexara-api/internal/pkg/response"
)

// BrowseResponse is one page of the public gallery.
type BrowseResponse struct {
	Data     []*image.Image    `json:"data"`
	Metadata response.Metadata `json:"metadata"`
	Tags     []string          `json:"tags"`
}

// Handler serves the public browsing surface
type Handler struct {
	images  *image.Service
	siteURL string
}

// NewHandler creates gallery handler
func NewHandler(images *image.Service, siteURL string) *Handler {
	return &Handler{images: images, siteURL: siteURL}
}

// Browse handles GET /api/gallery
func (h *Handler) Browse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	sizeRaw := query.Get("pageSize")
	if sizeRaw == "" {
		sizeRaw = query.Get("limit")
	}

	result, err := h.images.Browse(r.Context(), image.ListParams{
		Page:  image.ParsePage(query.Get("page")),
		Limit: image.GalleryBounds.ParseSize(sizeRaw),
		Tag:   image.NormalizeTag(query.Get("tag")),
	})
	if err != nil {
		errorhandler.HandleUpstreamError(r.Context(), w, err)
		return
	}

	response.OK(w, BrowseResponse{
		Data: result.Images,
		Metadata: response.Metadata{
			Page:    result.Page,
			Limit:   result.Limit,
			Total:   result.Total,
			HasMore: result.HasMore,
		},
		Tags: result.UniqueTags(),
	})
}

// Tags handles GET /api/gallery/tags
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.images.Tags(r.Context())
	if err != nil {
		errorhandler.HandleUpstreamError(r.Context(), w, err)
		return
	}
	response.Data(w, tags)
}

// Detail handles GET /api/gallery/{id}
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	img, err := h.images.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, image.ErrInvalidID):
			response.BadRequest(w, image.ErrInvalidID.Error())
		case errors.Is(err, image.ErrImageNotFound):
			response.NotFound(w, "Image not found")
		default:
			errorhandler.HandleUpstreamError(r.Context(), w, err)
		}
		return
	}
	response.OK(w, img)
}

// Routes returns the /api/gallery router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Browse)
	r.Get("/tags", h.Tags)
	r.Get("/{id}", h.Detail)

	return r
}
