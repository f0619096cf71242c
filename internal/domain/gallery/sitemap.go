package gallery

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/phexara/phexara-api/internal/pkg/errorhandler"
	"github.com/phexara/phexara-api/internal/pkg/logger"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapPageSize  = 100
)

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// Sitemap handles GET /sitemap.xml. It walks every gallery page so each
// record gets its own detail entry.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	feed, err := h.images.LoadPages(r.Context(), "", sitemapPageSize, 0)
	if err != nil {
		errorhandler.HandleUpstreamError(r.Context(), w, err)
		return
	}

	now := time.Now().UTC().Format(time.RFC3339)
	set := urlSet{
		Xmlns: sitemapNamespace,
		URLs: []sitemapURL{
			{Loc: h.siteURL, LastMod: now},
			{Loc: h.siteURL + "/gallery", LastMod: now},
		},
	}
	for _, img := range feed.Images() {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:     h.siteURL + "/gallery/" + img.ID.String(),
			LastMod: img.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(xml.Header))

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		logger.LogError(r.Context(), err, "sitemap encode failed")
	}
}
