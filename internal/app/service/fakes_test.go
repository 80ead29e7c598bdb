package service

import (
	"context"
	"database/sql"
	"fmt"

	"inkwell/internal/common"
	"inkwell/internal/domain/model"
	"inkwell/internal/domain/repository"
)

type fakeUserRepo struct {
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email || u.Username == user.Username {
			return fmt.Errorf("duplicate user: %w", common.ErrConflict)
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakePostRepo struct {
	posts       map[string]*model.Post
	tags        map[string][]string
	total      int
	viewBumps  int
	deletedIDs []string
	lastFilter repository.PostFilter
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[string]*model.Post{}, tags: map[string][]string{}}
}

func (r *fakePostRepo) Create(_ context.Context, _ *sql.Tx, post *model.Post) error {
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) Update(_ context.Context, _ *sql.Tx, post *model.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.posts, id)
	r.deletedIDs = append(r.deletedIDs, id)
	return nil
}

func (r *fakePostRepo) FindByID(_ context.Context, id string) (*model.Post, error) {
	if p, ok := r.posts[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakePostRepo) List(_ context.Context, limit, offset int, filter repository.PostFilter) ([]model.Post, int, error) {
	r.lastFilter = filter
	out := []model.Post{}
	for _, p := range r.posts {
		out = append(out, *p)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	total := r.total
	if total == 0 {
		total = len(r.posts)
	}
	_ = offset
	return out, total, nil
}

func (r *fakePostRepo) ReplaceTags(_ context.Context, _ *sql.Tx, postID string, tags []string) error {
	r.tags[postID] = append([]string{}, tags...)
	return nil
}

func (r *fakePostRepo) GetTags(_ context.Context, postID string) ([]string, error) {
	if tags, ok := r.tags[postID]; ok {
		return tags, nil
	}
	return []string{}, nil
}

func (r *fakePostRepo) IncrementViewCount(_ context.Context, id string) error {
	if p, ok := r.posts[id]; ok {
		p.ViewCount++
		r.viewBumps++
		return nil
	}
	return common.ErrNotFound
}

func (r *fakePostRepo) IncrementLikeCount(_ context.Context, id string) (int, error) {
	if p, ok := r.posts[id]; ok {
		p.LikeCount++
		return p.LikeCount, nil
	}
	return 0, common.ErrNotFound
}

type fakeCommentRepo struct {
	comments map[string]*model.Comment
	likes    map[string]map[string]struct{}
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: map[string]*model.Comment{},
		likes:    map[string]map[string]struct{}{},
	}
}

func (r *fakeCommentRepo) Create(_ context.Context, c *model.Comment) error {
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id string) (*model.Comment, error) {
	if c, ok := r.comments[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, common.ErrNotFound
}

func (r *fakeCommentRepo) ListByPost(_ context.Context, postID string, limit, offset int) ([]model.Comment, int, error) {
	out := []model.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	total := len(out)
	if len(out) > limit {
		out = out[:limit]
	}
	_ = offset
	return out, total, nil
}

func (r *fakeCommentRepo) Update(_ context.Context, c *model.Comment) error {
	if _, ok := r.comments[c.ID]; !ok {
		return common.ErrNotFound
	}
	copied := *c
	r.comments[c.ID] = &copied
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.comments[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) AddLike(_ context.Context, commentID, userID string) error {
	if r.likes[commentID] == nil {
		r.likes[commentID] = map[string]struct{}{}
	}
	r.likes[commentID][userID] = struct{}{}
	return nil
}

func (r *fakeCommentRepo) RemoveLike(_ context.Context, commentID, userID string) error {
	delete(r.likes[commentID], userID)
	return nil
}

func (r *fakeCommentRepo) GetLikes(_ context.Context, commentID string) ([]string, error) {
	out := []string{}
	for userID := range r.likes[commentID] {
		out = append(out, userID)
	}
	return out, nil
}
