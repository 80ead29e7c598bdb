package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"inkwell/internal/app/policy"
	"inkwell/internal/common"
	"inkwell/internal/domain/model"
	"inkwell/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required,min=2,max=100"`
	Content    string   `json:"content" validate:"required,min=10"`
	Category   string   `json:"category" validate:"required"`
	Tags       []string `json:"tags"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published"`
	CoverImage string   `json:"coverImage"`
}

// UpdatePostRequest uses pointers so absent fields leave the post untouched.
type UpdatePostRequest struct {
	Title      *string   `json:"title" validate:"omitempty,min=2,max=100"`
	Content    *string   `json:"content" validate:"omitempty,min=10"`
	Category   *string   `json:"category"`
	Tags       *[]string `json:"tags"`
	Status     *string   `json:"status" validate:"omitempty,oneof=draft published"`
	CoverImage *string   `json:"coverImage"`
}

type ListPostsQuery struct {
	Page     int
	Limit    int
	Category string
	Tag      string
	AuthorID string
	Status   string
}

type PostService struct {
	logger *zap.Logger
	posts  repository.PostRepository
	db     *sql.DB
}

func NewPostService(logger *zap.Logger, posts repository.PostRepository, db *sql.DB) *PostService {
	return &PostService{logger: logger, posts: posts, db: db}
}

func (s *PostService) Create(ctx context.Context, actor *model.User, req CreatePostRequest) (*model.Post, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !policy.Decide(actor.Role, actor.ID, "", policy.ActionCreate).Allowed() {
		return nil, common.ErrForbidden
	}

	status := model.PostStatus(req.Status)
	if status == "" {
		status = model.PostStatusDraft
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	now := time.Now()
	post := &model.Post{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Slug:       slug.Make(req.Title),
		Content:    req.Content,
		AuthorID:   actor.ID,
		Category:   req.Category,
		CoverImage: req.CoverImage,
		Status:     status,
		Tags:       req.Tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.posts.Create(ctx, tx, post); err != nil {
		return nil, err
	}
	if err := s.posts.ReplaceTags(ctx, tx, post.ID, post.Tags); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	post.Author = actor.Ref()
	s.logger.Info("post created", zap.String("post_id", post.ID), zap.String("author_id", actor.ID))
	return post, nil
}

// GetByID returns the post and records the view. Every fetch counts, the
// viewer's identity is irrelevant.
func (s *PostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.posts.IncrementViewCount(ctx, id); err != nil {
		return nil, err
	}
	post.ViewCount++

	tags, err := s.posts.GetTags(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return post, nil
}

func (s *PostService) List(ctx context.Context, q ListPostsQuery) ([]model.Post, Pagination, error) {
	page, limit := normalizePage(q.Page, q.Limit)
	filter := repository.PostFilter{
		Category: q.Category,
		Tag:      q.Tag,
		AuthorID: q.AuthorID,
		Status:   model.PostStatus(q.Status),
	}

	posts, total, err := s.posts.List(ctx, limit, (page-1)*limit, filter)
	if err != nil {
		return nil, Pagination{}, err
	}
	for i := range posts {
		tags, err := s.posts.GetTags(ctx, posts[i].ID)
		if err != nil {
			return nil, Pagination{}, err
		}
		posts[i].Tags = tags
	}
	return posts, newPagination(page, limit, total), nil
}

func (s *PostService) Update(ctx context.Context, actor *model.User, id string, req UpdatePostRequest) (*model.Post, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.Decide(actor.Role, actor.ID, post.AuthorID, policy.ActionUpdate).Allowed() {
		return nil, fmt.Errorf("only the author may edit this post: %w", common.ErrForbidden)
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = slug.Make(*req.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Status != nil {
		post.Status = model.PostStatus(*req.Status)
	}
	if req.CoverImage != nil {
		post.CoverImage = *req.CoverImage
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.posts.Update(ctx, tx, post); err != nil {
		return nil, err
	}
	if req.Tags != nil {
		if err := s.posts.ReplaceTags(ctx, tx, post.ID, *req.Tags); err != nil {
			return nil, err
		}
		post.Tags = *req.Tags
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	if req.Tags == nil {
		tags, err := s.posts.GetTags(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}
	post.UpdatedAt = time.Now()

	s.logger.Info("post updated", zap.String("post_id", post.ID), zap.String("actor_id", actor.ID))
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, actor *model.User, id string) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.Decide(actor.Role, actor.ID, post.AuthorID, policy.ActionDelete).Allowed() {
		return fmt.Errorf("not allowed to delete this post: %w", common.ErrForbidden)
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("post deleted", zap.String("post_id", id), zap.String("actor_id", actor.ID))
	return nil
}

// Like bumps the post's like counter. Repeat likes from the same user keep
// counting; there is no per-user like record for posts.
func (s *PostService) Like(ctx context.Context, actor *model.User, id string) (int, error) {
	if !policy.Decide(actor.Role, actor.ID, "", policy.ActionLike).Allowed() {
		return 0, common.ErrForbidden
	}
	if _, err := s.posts.FindByID(ctx, id); err != nil {
		return 0, err
	}
	return s.posts.IncrementLikeCount(ctx, id)
}
