package service

import (
	"errors"
	"testing"
	"time"
)

func TestTagServiceListOrdersByName(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTagService(gdb)

	for _, name := range []string{"Zed", "Alpha", "Beta"} {
		if _, err := svc.Create(name); err != nil {
			t.Fatalf("create tag %s: %v", name, err)
		}
	}

	list, err := svc.List()
	if err != nil {
		t.Fatalf("list tags: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Alpha" || list[1].Name != "Beta" || list[2].Name != "Zed" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestTagServiceCreateRequiresName(t *testing.T) {
	gdb := setupServiceTestDB(t)

	if _, err := NewTagService(gdb).Create("  "); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestTagServiceDeleteDetachesPosts(t *testing.T) {
	gdb := setupServiceTestDB(t)
	f := seedServiceFixture(t, gdb)
	svc := NewTagService(gdb)

	tag, err := svc.Create("tutorial")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	input := f.input("tagged", time.Now())
	input.TagIDs = []uint{tag.ID}
	post, err := f.posts.Create(input)
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	usage, err := svc.Usage()
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 1 || usage[0].Count != 1 {
		t.Fatalf("unexpected usage %+v", usage)
	}

	if err := svc.Delete(tag.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	stored, err := f.posts.Get(post.ID)
	if err != nil {
		t.Fatalf("post should survive tag deletion: %v", err)
	}
	if len(stored.Tags) != 0 {
		t.Fatalf("expected no tags, got %+v", stored.Tags)
	}

	if err := svc.Delete(tag.ID); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}

func TestTagServiceRename(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewTagService(gdb)

	tag, err := svc.Create("golang")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	renamed, err := svc.Rename(tag.ID, "Go")
	if err != nil {
		t.Fatalf("rename tag: %v", err)
	}
	if renamed.Name != "Go" {
		t.Fatalf("expected new name, got %q", renamed.Name)
	}
	if _, err := svc.Rename(999, "x"); !errors.Is(err, ErrTagNotFound) {
		t.Fatalf("expected ErrTagNotFound, got %v", err)
	}
}
