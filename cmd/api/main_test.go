package main

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/phexara/phexara-api/internal/config"
	"github.com/phexara/phexara-api/internal/domain/image"
	"github.com/phexara/phexara-api/internal/domain/upload"
	"github.com/phexara/phexara-api/internal/pkg/cloudinary"
)

type emptyRepo struct{ calls int }

func (e *emptyRepo) Create(ctx context.Context, n *image.NewImage) (*image.Image, error) {
	e.calls++
	return nil, errors.New("read only")
}

func (e *emptyRepo) GetByID(ctx context.Context, id uuid.UUID) (*image.Image, error) {
	e.calls++
	return nil, image.ErrImageNotFound
}

func (e *emptyRepo) List(ctx context.Context, q image.ListQuery) ([]*image.Image, int, error) {
	e.calls++
	return []*image.Image{}, 0, nil
}

func (e *emptyRepo) Update(ctx context.Context, id uuid.UUID, prompt string, tags *[]string) (*image.Image, error) {
	e.calls++
	return nil, image.ErrImageNotFound
}

func (e *emptyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	e.calls++
	return image.ErrImageNotFound
}

func (e *emptyRepo) ListTags(ctx context.Context) ([]string, error) {
	e.calls++
	return []string{}, nil
}

func testRouter(t *testing.T) (http.Handler, *emptyRepo) {
	t.Helper()

	cfg := &config.Config{
		AdminUser:       "admin",
		AdminPass:       "pw",
		AdminPathPrefix: "/admin",
		AllowedOrigins:  []string{"*"},
		SiteURL:         "https://phexara.test",
		CloudinaryURL:   "cloudinary://k:s@c",
	}
	repo := &emptyRepo{}
	images := image.NewService(repo, nil)

	return newRouter(cfg, routerDeps{
		images:   images,
		uploads:  upload.NewService(cloudinary.NewSigner(cfg.CloudinaryURL)),
		registry: prometheus.NewRegistry(),
	}), repo
}

func request(h http.Handler, method, target, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if auth != "" {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth)))
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_PublicRoutes(t *testing.T) {
	h, _ := testRouter(t)

	for _, target := range []string{"/health", "/api/images", "/api/gallery", "/api/gallery/tags", "/sitemap.xml", "/metrics"} {
		if rr := request(h, http.MethodGet, target, ""); rr.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", target, rr.Code)
		}
	}

	if rr := request(h, http.MethodPost, "/api/upload", ""); rr.Code != http.StatusOK {
		t.Errorf("POST /api/upload: expected 200, got %d", rr.Code)
	}
}

func TestRouter_AdminGate(t *testing.T) {
	h, _ := testRouter(t)

	rr := request(h, http.MethodGet, "/admin/manage", "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
	if !strings.HasPrefix(rr.Header().Get("WWW-Authenticate"), "Basic ") {
		t.Fatal("expected a basic challenge")
	}

	if rr := request(h, http.MethodGet, "/admin/manage", "admin:wrong"); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong credentials, got %d", rr.Code)
	}

	rr = request(h, http.MethodGet, "/admin/manage", "admin:pw")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Manage Gallery") {
		t.Fatal("expected the manage page")
	}
}

func TestRouter_InvalidIDNeverReachesStore(t *testing.T) {
	h, repo := testRouter(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		if rr := request(h, method, "/api/images/123", ""); rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", method, rr.Code)
		}
	}
	if repo.calls != 0 {
		t.Fatalf("expected no store calls, got %d", repo.calls)
	}
}

func TestRouter_MetricsRecordRoutes(t *testing.T) {
	h, _ := testRouter(t)

	request(h, http.MethodGet, "/api/gallery", "")
	rr := request(h, http.MethodGet, "/metrics", "")

	if !strings.Contains(rr.Body.String(), "gallery_http_requests_total") {
		t.Fatal("expected http metrics in exposition")
	}
}
