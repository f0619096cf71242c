package image

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// fakeRepo is an in-memory Repository ordered the way the SQL one is.
type fakeRepo struct {
	images []*Image
	clock  time.Time
	calls  int

	createCalls int
	listErr     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeRepo) add(prompt string, tags ...string) *Image {
	f.clock = f.clock.Add(time.Minute)
	var t pq.StringArray
	if len(tags) > 0 {
		t = pq.StringArray(tags)
	}
	img := &Image{
		ID:        uuid.New(),
		PublicID:  "pub-" + prompt,
		URL:       "https://res.example.com/" + prompt + ".png",
		Prompt:    prompt,
		Tags:      t,
		CreatedAt: f.clock,
	}
	f.images = append(f.images, img)
	return img
}

func (f *fakeRepo) Create(ctx context.Context, n *NewImage) (*Image, error) {
	f.calls++
	f.createCalls++
	f.clock = f.clock.Add(time.Minute)
	img := &Image{
		ID:        uuid.New(),
		PublicID:  n.PublicID,
		URL:       n.URL,
		ThumbURL:  n.ThumbURL,
		Prompt:    n.Prompt,
		Tags:      pq.StringArray(n.Tags),
		Width:     n.Width,
		Height:    n.Height,
		CreatedAt: f.clock,
	}
	f.images = append(f.images, img)
	copied := *img
	return &copied, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	f.calls++
	for _, img := range f.images {
		if img.ID == id {
			copied := *img
			return &copied, nil
		}
	}
	return nil, ErrImageNotFound
}

func (f *fakeRepo) List(ctx context.Context, q ListQuery) ([]*Image, int, error) {
	f.calls++
	if f.listErr != nil {
		return nil, 0, f.listErr
	}

	var matched []*Image
	for _, img := range f.images {
		if q.Tag == "" || hasTag(img, q.Tag) {
			matched = append(matched, img)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	start, end := RowRange(q.PageIndex, q.PageSize)
	page := []*Image{}
	for i := start; i <= end && i < len(matched); i++ {
		page = append(page, matched[i])
	}
	return page, len(matched), nil
}

func (f *fakeRepo) Update(ctx context.Context, id uuid.UUID, prompt string, tags *[]string) (*Image, error) {
	f.calls++
	for _, img := range f.images {
		if img.ID == id {
			img.Prompt = prompt
			if tags != nil {
				img.Tags = pq.StringArray(*tags)
			}
			copied := *img
			return &copied, nil
		}
	}
	return nil, ErrImageNotFound
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.calls++
	for i, img := range f.images {
		if img.ID == id {
			f.images = append(f.images[:i], f.images[i+1:]...)
			return nil
		}
	}
	return ErrImageNotFound
}

func (f *fakeRepo) ListTags(ctx context.Context) ([]string, error) {
	f.calls++
	seen := map[string]struct{}{}
	for _, img := range f.images {
		for _, t := range img.Tags {
			seen[t] = struct{}{}
		}
	}
	return sortedKeys(seen), nil
}

func hasTag(img *Image, tag string) bool {
	for _, t := range img.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
