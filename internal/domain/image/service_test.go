package image

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestServiceList_OffsetPagination(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 30; i++ {
		repo.add(fmt.Sprintf("p%02d", i))
	}
	svc := NewService(repo, nil)

	first, err := svc.List(context.Background(), ListParams{Page: 1, Limit: 24})
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(first.Images) != 24 || !first.HasMore || first.Total != 30 {
		t.Fatalf("page 1: got %d rows, hasMore=%v, total=%d", len(first.Images), first.HasMore, first.Total)
	}

	second, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 24})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(second.Images) != 6 || second.HasMore {
		t.Fatalf("page 2: got %d rows, hasMore=%v", len(second.Images), second.HasMore)
	}

	// newest first
	if first.Images[0].Prompt != "p29" || second.Images[5].Prompt != "p00" {
		t.Fatalf("unexpected order: first=%s last=%s", first.Images[0].Prompt, second.Images[5].Prompt)
	}
}

func TestServiceList_TagFilter(t *testing.T) {
	repo := newFakeRepo()
	cat := repo.add("one", "cat")
	repo.add("two", "dog")
	both := repo.add("three", "cat", "dog")
	svc := NewService(repo, nil)

	result, err := svc.List(context.Background(), ListParams{Page: 1, Limit: 20, Tag: "cat"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Images) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(result.Images))
	}
	if result.Images[0].ID != both.ID || result.Images[1].ID != cat.ID {
		t.Fatal("expected the cat,dog row first and the cat row second")
	}
	if result.HasMore {
		t.Fatal("expected no more rows")
	}
}

func TestServiceList_DefaultsInvalidPage(t *testing.T) {
	repo := newFakeRepo()
	repo.add("only")
	svc := NewService(repo, nil)

	result, err := svc.List(context.Background(), ListParams{Page: 0, Limit: 0})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Page != 1 || result.Limit != APIBounds.Default {
		t.Fatalf("expected page 1 limit %d, got page %d limit %d", APIBounds.Default, result.Page, result.Limit)
	}
}

func TestServiceUpdate_OnlyPromptAndTags(t *testing.T) {
	repo := newFakeRepo()
	orig := repo.add("before", "old")
	svc := NewService(repo, nil)

	tags := []string{" New ", "TAGS", ""}
	updated, err := svc.Update(context.Background(), orig.ID.String(), "after", &tags)
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Prompt != "after" {
		t.Fatalf("prompt not updated: %s", updated.Prompt)
	}
	if len(updated.Tags) != 2 || updated.Tags[0] != "new" || updated.Tags[1] != "tags" {
		t.Fatalf("unexpected tags: %v", updated.Tags)
	}
	if updated.URL != orig.URL || updated.PublicID != orig.PublicID || !updated.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatal("media fields and created_at must not change")
	}
}

func TestServiceDelete_MissingIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	img := repo.add("gone")
	svc := NewService(repo, nil)

	if err := svc.Delete(context.Background(), img.ID.String()); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), img.ID.String()); !errors.Is(err, ErrImageNotFound) {
		t.Fatalf("second delete: expected ErrImageNotFound, got %v", err)
	}
}

func TestService_InvalidIDSkipsStore(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	for _, id := range []string{"", "123", "not-a-uuid", "{6ba7b810-9dad-11d1-80b4-00c04fd430c8}", "urn:uuid:6ba7b810-9dad-11d1-80b4-00c04fd430c8"} {
		if _, err := svc.Get(ctx, id); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("get %q: expected ErrInvalidID, got %v", id, err)
		}
		if _, err := svc.Update(ctx, id, "p", nil); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("update %q: expected ErrInvalidID, got %v", id, err)
		}
		if err := svc.Delete(ctx, id); !errors.Is(err, ErrInvalidID) {
			t.Fatalf("delete %q: expected ErrInvalidID, got %v", id, err)
		}
	}

	if repo.calls != 0 {
		t.Fatalf("expected no store calls, got %d", repo.calls)
	}
}

func TestServiceCreate_RequiresFields(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	cases := []*NewImage{
		{URL: "u", Prompt: "p"},
		{PublicID: "id", Prompt: "p"},
		{PublicID: "id", URL: "u"},
	}
	for i, c := range cases {
		if _, err := svc.Create(context.Background(), c); !errors.Is(err, ErrMissingFields) {
			t.Fatalf("case %d: expected ErrMissingFields, got %v", i, err)
		}
	}
	if repo.createCalls != 0 {
		t.Fatalf("expected no inserts, got %d", repo.createCalls)
	}
}

func TestServiceLoadPages_AppendsUntilExhausted(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 7; i++ {
		repo.add(fmt.Sprintf("p%d", i))
	}
	svc := NewService(repo, nil)

	feed, err := svc.LoadPages(context.Background(), "", 3, 0)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(feed.Images()) != 7 || !feed.Done() || feed.LoadedPages() != 3 {
		t.Fatalf("got %d images, done=%v, pages=%d", len(feed.Images()), feed.Done(), feed.LoadedPages())
	}

	partial, err := svc.LoadPages(context.Background(), "", 3, 2)
	if err != nil {
		t.Fatalf("load partial: %v", err)
	}
	if len(partial.Images()) != 6 || partial.Done() {
		t.Fatalf("got %d images, done=%v", len(partial.Images()), partial.Done())
	}
}

func TestServiceUpdate_NilTagsKeepsStored(t *testing.T) {
	repo := newFakeRepo()
	orig := repo.add("before", "cat", "dog")
	svc := NewService(repo, nil)

	updated, err := svc.Update(context.Background(), orig.ID.String(), "after", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Tags) != 2 || updated.Tags[0] != "cat" || updated.Tags[1] != "dog" {
		t.Fatalf("tags must be kept, got %v", updated.Tags)
	}

	empty := []string{" ", ""}
	cleared, err := svc.Update(context.Background(), orig.ID.String(), "after", &empty)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if cleared.Tags == nil || len(cleared.Tags) != 0 {
		t.Fatalf("expected tags cleared to an empty list, got %#v", cleared.Tags)
	}
}

func TestServiceList_FoldsTagFilter(t *testing.T) {
	repo := newFakeRepo()
	repo.add("a", "cat")
	repo.add("b", "dog")
	svc := NewService(repo, nil)

	result, err := svc.List(context.Background(), ListParams{Page: 1, Limit: 24, Tag: "  CAT "})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if result.Total != 1 || result.Images[0].Prompt != "a" {
		t.Fatalf("expected only the cat row, got %+v", result)
	}
}
