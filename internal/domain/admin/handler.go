package admin

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/phexara/phexara-api/internal/domain/image"
	"github.com/phexara/phexara-api/internal/pkg/logger"
	"github.com/phexara/phexara-api/internal/pkg/validator"
)

// Handler serves the admin pages. Access control is done by the credential
// gate in front of the prefix.
type Handler struct {
	images *image.Service
	prefix string

	baseTemplate *template.Template
	templates    map[string]*template.Template
}

// NewHandler creates admin handler. prefix is the mount path used in links.
func NewHandler(images *image.Service, prefix string) *Handler {
	h := &Handler{
		images:    images,
		prefix:    strings.TrimSuffix(prefix, "/"),
		templates: make(map[string]*template.Template),
	}

	h.baseTemplate = template.Must(template.New("base").Parse(BaseTemplate))
	h.loadTemplates()

	return h
}

func (h *Handler) loadTemplates() {
	templates := map[string]string{
		"manage": ManageTemplate,
		"upload": UploadTemplate,
		"edit":   EditTemplate,
	}

	for name, content := range templates {
		tmpl, err := template.New(name).Parse(content)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Failed to parse admin template")
			continue
		}
		h.templates[name] = tmpl
	}
}

// Manage handles GET /admin/manage?page=N. Pages 1..N are shown together,
// the way "load more" grows the list.
func (h *Handler) Manage(w http.ResponseWriter, r *http.Request) {
	pages := image.ParsePage(r.URL.Query().Get("page"))

	feed, err := h.images.LoadPages(r.Context(), "", image.AdminBounds.Default, pages)
	if err != nil {
		logger.LogError(r.Context(), err, "admin manage load failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.render(w, r, http.StatusOK, "manage", managePage{
		Title:    "Manage Gallery",
		Prefix:   h.prefix,
		Images:   feed.Images(),
		Total:    feed.Total(),
		HasMore:  !feed.Done(),
		NextPage: feed.NextPage(),
	})
}

// UploadForm handles GET /admin/upload
func (h *Handler) UploadForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "upload", uploadPage{Title: "Upload", Prefix: h.prefix})
}

// Upload handles POST /admin/upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	form := uploadFormFromRequest(r)
	page := uploadPage{Title: "Upload", Prefix: h.prefix, Form: form}

	req, ok := form.ToCreateRequest()
	if !ok {
		page.Error = "Width and height must be numbers"
		h.render(w, r, http.StatusBadRequest, "upload", page)
		return
	}

	req.Normalize()
	if errs := validator.Validate(req); errs != nil {
		page.Error = formatFieldErrors(errs)
		h.render(w, r, http.StatusBadRequest, "upload", page)
		return
	}

	img, err := h.images.Create(r.Context(), req.ToNewImage())
	if err != nil {
		logger.LogError(r.Context(), err, "admin upload save failed")
		page.Error = err.Error()
		status := http.StatusInternalServerError
		if errors.Is(err, image.ErrMissingFields) {
			status = http.StatusBadRequest
		}
		h.render(w, r, status, "upload", page)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("%s/edit/%s", h.prefix, img.ID), http.StatusSeeOther)
}

// EditForm handles GET /admin/edit/{id}
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	img, err := h.images.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "edit", editPage{
		Title:  "Edit Image",
		Prefix: h.prefix,
		Image:  img,
		Form:   editFormFromImage(img),
	})
}

// Edit handles POST /admin/edit/{id}
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	form := EditForm{
		Prompt: r.PostFormValue("prompt"),
		Tags:   r.PostFormValue("tags"),
	}

	tags := image.ParseTagList(form.Tags)
	_, err := h.images.Update(r.Context(), id, strings.TrimSpace(form.Prompt), &tags)
	if err == nil {
		http.Redirect(w, r, h.prefix+"/manage", http.StatusSeeOther)
		return
	}
	if !errors.Is(err, image.ErrMissingFields) {
		h.lookupError(w, r, err)
		return
	}

	img, getErr := h.images.Get(r.Context(), id)
	if getErr != nil {
		h.lookupError(w, r, getErr)
		return
	}
	h.render(w, r, http.StatusBadRequest, "edit", editPage{
		Title:  "Edit Image",
		Prefix: h.prefix,
		Error:  "Prompt is required",
		Image:  img,
		Form:   form,
	})
}

// Delete handles POST /admin/delete/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.images.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.lookupError(w, r, err)
		return
	}
	http.Redirect(w, r, h.prefix+"/manage", http.StatusSeeOther)
}

func (h *Handler) lookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, image.ErrInvalidID):
		http.Error(w, image.ErrInvalidID.Error(), http.StatusBadRequest)
	case errors.Is(err, image.ErrImageNotFound):
		http.Error(w, "Image not found", http.StatusNotFound)
	default:
		logger.LogError(r.Context(), err, "admin request failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, name string, data interface{}) {
	tmpl, ok := h.templates[name]
	if !ok {
		log.Warn().Str("template", name).Msg("Template not found")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	var contentBuf bytes.Buffer
	if err := tmpl.Execute(&contentBuf, data); err != nil {
		logger.LogError(r.Context(), err, "admin template failed", "template", name)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	var htmlBuf bytes.Buffer
	if err := h.baseTemplate.Execute(&htmlBuf, map[string]interface{}{
		"Title":   pageTitle(data),
		"Content": template.HTML(contentBuf.String()),
	}); err != nil {
		logger.LogError(r.Context(), err, "admin layout failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	w.Write(htmlBuf.Bytes())
}

func pageTitle(data interface{}) string {
	switch p := data.(type) {
	case managePage:
		return p.Title
	case uploadPage:
		return p.Title
	case editPage:
		return p.Title
	default:
		return "Admin"
	}
}

func formatFieldErrors(errs map[string]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+errs[field])
	}
	return "Missing required fields (" + strings.Join(parts, "; ") + ")"
}

// Routes returns the admin router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, h.prefix+"/manage", http.StatusFound)
	})
	r.Get("/manage", h.Manage)
	r.Get("/upload", h.UploadForm)
	r.Post("/upload", h.Upload)
	r.Get("/edit/{id}", h.EditForm)
	r.Post("/edit/{id}", h.Edit)
	r.Post("/delete/{id}", h.Delete)

	return r
}
