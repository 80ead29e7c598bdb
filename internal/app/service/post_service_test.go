package service

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/common"
	"inkwell/internal/domain/model"

	"go.uber.org/zap"
)

func seedPost(repo *fakePostRepo, id, authorID string) *model.Post {
	post := &model.Post{
		ID:       id,
		Title:    "Seed Title",
		Slug:     "seed-title",
		Content:  "seed content long enough",
		AuthorID: authorID,
		Category: "general",
		Status:   model.PostStatusPublished,
	}
	repo.posts[id] = post
	return post
}

func testUser(id string, role model.Role) *model.User {
	return &model.User{ID: id, Username: "u-" + id, Role: role}
}

func TestPostGetByIDCountsView(t *testing.T) {
	repo := newFakePostRepo()
	seedPost(repo, "p1", "author").ViewCount = 3
	svc := NewPostService(zap.NewNop(), repo, nil)

	post, err := svc.GetByID(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if post.ViewCount != 4 {
		t.Fatalf("view count = %d, want 4", post.ViewCount)
	}
	if repo.viewBumps != 1 {
		t.Fatalf("view increments = %d, want 1", repo.viewBumps)
	}

	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("missing post should yield ErrNotFound, got %v", err)
	}
}

func TestPostUpdateOwnerOnly(t *testing.T) {
	repo := newFakePostRepo()
	seedPost(repo, "p1", "owner")
	svc := NewPostService(zap.NewNop(), repo, nil)
	newTitle := "Another Title"

	_, err := svc.Update(context.Background(), testUser("stranger", model.RoleUser), "p1", UpdatePostRequest{Title: &newTitle})
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("non-owner update should yield ErrForbidden, got %v", err)
	}

	// Admins may delete foreign posts but not edit them.
	_, err = svc.Update(context.Background(), testUser("admin", model.RoleAdmin), "p1", UpdatePostRequest{Title: &newTitle})
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("admin update of another's post should yield ErrForbidden, got %v", err)
	}
}

func TestPostDelete(t *testing.T) {
	repo := newFakePostRepo()
	seedPost(repo, "p1", "owner")
	seedPost(repo, "p2", "owner")
	svc := NewPostService(zap.NewNop(), repo, nil)

	err := svc.Delete(context.Background(), testUser("stranger", model.RoleUser), "p1")
	if !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("non-owner delete should yield ErrForbidden, got %v", err)
	}

	if err := svc.Delete(context.Background(), testUser("owner", model.RoleUser), "p1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(context.Background(), testUser("admin", model.RoleAdmin), "p2"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(repo.deletedIDs) != 2 {
		t.Fatalf("deleted ids = %v, want two deletions", repo.deletedIDs)
	}
}

func TestPostLikeKeepsCounting(t *testing.T) {
	repo := newFakePostRepo()
	seedPost(repo, "p1", "owner")
	svc := NewPostService(zap.NewNop(), repo, nil)
	actor := testUser("fan", model.RoleUser)

	first, err := svc.Like(context.Background(), actor, "p1")
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	second, err := svc.Like(context.Background(), actor, "p1")
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if first != 1 || second != 2 {
		t.Fatalf("like counts = %d, %d; repeat likes must keep counting", first, second)
	}

	if _, err := svc.Like(context.Background(), actor, "missing"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("liking a missing post should yield ErrNotFound, got %v", err)
	}
}

func TestPostListPagination(t *testing.T) {
	repo := newFakePostRepo()
	seedPost(repo, "p1", "owner")
	repo.total = 15
	svc := NewPostService(zap.NewNop(), repo, nil)

	_, pagination, err := svc.List(context.Background(), ListPostsQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if pagination.Page != 1 || pagination.Limit != 10 {
		t.Fatalf("defaults = page %d limit %d, want 1 and 10", pagination.Page, pagination.Limit)
	}
	if pagination.Total != 15 || pagination.Pages != 2 {
		t.Fatalf("pagination = %+v, want total 15 pages 2", pagination)
	}
}

func TestPostListForwardsFilters(t *testing.T) {
	repo := newFakePostRepo()
	svc := NewPostService(zap.NewNop(), repo, nil)

	_, _, err := svc.List(context.Background(), ListPostsQuery{
		Category: "go",
		Tag:      "testing",
		AuthorID: "author-1",
		Status:   "published",
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	f := repo.lastFilter
	if f.Category != "go" || f.Tag != "testing" || f.AuthorID != "author-1" || f.Status != model.PostStatusPublished {
		t.Fatalf("filter not forwarded: %+v", f)
	}
}

func TestPostCreateValidation(t *testing.T) {
	svc := NewPostService(zap.NewNop(), newFakePostRepo(), nil)
	actor := testUser("author", model.RoleUser)

	cases := []CreatePostRequest{
		{Title: "x", Content: "long enough content", Category: "go"},
		{Title: "Valid Title", Content: "short", Category: "go"},
		{Title: "Valid Title", Content: "long enough content", Category: ""},
		{Title: "Valid Title", Content: "long enough content", Category: "go", Status: "archived"},
	}
	for _, req := range cases {
		if _, err := svc.Create(context.Background(), actor, req); !errors.Is(err, common.ErrValidation) {
			t.Fatalf("Create(%+v) should yield ErrValidation, got %v", req, err)
		}
	}
}
