package image

import (
	"context"

	"github.com/phexara/phexara-api/internal/pkg/logger"
)

// Service handles image business logic
type Service struct {
	repo  Repository
	cache ListCache
}

// NewService creates image service. cache may be nil.
func NewService(repo Repository, cache ListCache) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
	}
}

// Create persists a record after the browser finished the direct upload.
func (s *Service) Create(ctx context.Context, img *NewImage) (*Image, error) {
	if img == nil || img.PublicID == "" || img.URL == "" || img.Prompt == "" {
		return nil, ErrMissingFields
	}
	img.Tags = NormalizeTags(img.Tags)

	created, err := s.repo.Create(ctx, img)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return created, nil
}

// Get returns one record. Malformed ids never reach the store.
func (s *Service) Get(ctx context.Context, rawID string) (*Image, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Update replaces the prompt, and the tags when tags is non-nil. An empty
// list clears them.
func (s *Service) Update(ctx context.Context, rawID, prompt string, tags *[]string) (*Image, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}
	if prompt == "" {
		return nil, ErrMissingFields
	}

	if tags != nil {
		normalized := NormalizeTags(*tags)
		if normalized == nil {
			normalized = []string{}
		}
		tags = &normalized
	}

	updated, err := s.repo.Update(ctx, id, prompt, tags)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return updated, nil
}

// Delete removes the record. The hosted asset is left on the media host.
func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

// List returns one page straight from the store.
func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	p = p.normalized()

	pageIndex := p.Page - 1
	images, total, err := s.repo.List(ctx, ListQuery{
		PageIndex: pageIndex,
		PageSize:  p.Limit,
		Tag:       p.Tag,
	})
	if err != nil {
		return nil, err
	}

	_, end := RowRange(pageIndex, p.Limit)
	return &ListResult{
		Images:  images,
		Page:    p.Page,
		Limit:   p.Limit,
		Total:   total,
		HasMore: HasMore(end, total),
	}, nil
}

// Browse is List behind the short-lived cache used by the public surface.
// Cache failures are logged and fall through to the store; a page is only
// written back when the generation read before the store call is known.
func (s *Service) Browse(ctx context.Context, p ListParams) (*ListResult, error) {
	p = p.normalized()
	if s.cache == nil {
		return s.List(ctx, p)
	}

	cached, gen, ok, err := s.cache.Get(ctx, p)
	if err != nil {
		logger.LogWarn(ctx, "gallery cache read failed", "error", err.Error())
		return s.List(ctx, p)
	}
	if ok {
		return cached, nil
	}

	result, err := s.List(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, gen, p, result); err != nil {
		logger.LogWarn(ctx, "gallery cache write failed", "error", err.Error())
	}
	return result, nil
}

// Tags returns every distinct tag in the store, sorted.
func (s *Service) Tags(ctx context.Context) ([]string, error) {
	return s.repo.ListTags(ctx)
}

// LoadPages accumulates pages 1..pages for tag into a Feed, stopping early
// once no more rows remain. pages <= 0 loads everything.
func (s *Service) LoadPages(ctx context.Context, tag string, limit, pages int) (*Feed, error) {
	feed := NewFeed(tag)
	for !feed.Done() && (pages <= 0 || feed.LoadedPages() < pages) {
		result, err := s.List(ctx, ListParams{Page: feed.NextPage(), Limit: limit, Tag: feed.Tag()})
		if err != nil {
			return nil, err
		}
		feed.Append(result)
	}
	return feed, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		logger.LogWarn(ctx, "gallery cache invalidation failed", "error", err.Error())
	}
}
