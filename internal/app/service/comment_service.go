package service

import (
	"context"
	"fmt"
	"time"

	"inkwell/internal/app/policy"
	"inkwell/internal/common"
	"inkwell/internal/domain/model"
	"inkwell/internal/domain/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateCommentRequest struct {
	Content       string  `json:"content" validate:"required,min=1,max=500"`
	Post          string  `json:"post" validate:"required"`
	ParentComment *string `json:"parentComment"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CommentLikeResult reports the like state after a toggle.
type CommentLikeResult struct {
	Likes    int  `json:"likes"`
	HasLiked bool `json:"hasLiked"`
}

type CommentService struct {
	logger   *zap.Logger
	comments repository.CommentRepository
}

func NewCommentService(logger *zap.Logger, comments repository.CommentRepository) *CommentService {
	return &CommentService{logger: logger, comments: comments}
}

// Create stores a comment keyed by the supplied post id. The post itself is
// not checked; a comment may reference a post that no longer exists.
func (s *CommentService) Create(ctx context.Context, actor *model.User, req CreateCommentRequest) (*model.Comment, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if !policy.Decide(actor.Role, actor.ID, "", policy.ActionCreate).Allowed() {
		return nil, common.ErrForbidden
	}

	now := time.Now()
	comment := &model.Comment{
		ID:        uuid.NewString(),
		PostID:    req.Post,
		AuthorID:  actor.ID,
		ParentID:  req.ParentComment,
		Content:   req.Content,
		Likes:     []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	comment.Author = actor.Ref()
	s.logger.Info("comment created", zap.String("comment_id", comment.ID), zap.String("post_id", comment.PostID))
	return comment, nil
}

func (s *CommentService) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	likes, err := s.comments.GetLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.Likes = likes
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID string, page, limit int) ([]model.Comment, Pagination, error) {
	page, limit = normalizePage(page, limit)

	comments, total, err := s.comments.ListByPost(ctx, postID, limit, (page-1)*limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	for i := range comments {
		likes, err := s.comments.GetLikes(ctx, comments[i].ID)
		if err != nil {
			return nil, Pagination{}, err
		}
		comments[i].Likes = likes
	}
	return comments, newPagination(page, limit, total), nil
}

func (s *CommentService) Update(ctx context.Context, actor *model.User, id string, req UpdateCommentRequest) (*model.Comment, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.Decide(actor.Role, actor.ID, comment.AuthorID, policy.ActionUpdate).Allowed() {
		return nil, fmt.Errorf("only the author may edit this comment: %w", common.ErrForbidden)
	}

	comment.Content = req.Content
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	comment.UpdatedAt = time.Now()

	likes, err := s.comments.GetLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.Likes = likes
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *model.User, id string) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.Decide(actor.Role, actor.ID, comment.AuthorID, policy.ActionDelete).Allowed() {
		return fmt.Errorf("not allowed to delete this comment: %w", common.ErrForbidden)
	}
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("comment deleted", zap.String("comment_id", id), zap.String("actor_id", actor.ID))
	return nil
}

// ToggleLike flips the actor's like on a comment. Unlike post likes, comment
// likes are per-user and idempotent per direction.
func (s *CommentService) ToggleLike(ctx context.Context, actor *model.User, id string) (*CommentLikeResult, error) {
	if !policy.Decide(actor.Role, actor.ID, "", policy.ActionLike).Allowed() {
		return nil, common.ErrForbidden
	}
	if _, err := s.comments.FindByID(ctx, id); err != nil {
		return nil, err
	}

	likes, err := s.comments.GetLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	hasLiked := false
	for _, userID := range likes {
		if userID == actor.ID {
			hasLiked = true
			break
		}
	}

	if hasLiked {
		if err := s.comments.RemoveLike(ctx, id, actor.ID); err != nil {
			return nil, err
		}
	} else {
		if err := s.comments.AddLike(ctx, id, actor.ID); err != nil {
			return nil, err
		}
	}

	likes, err = s.comments.GetLikes(ctx, id)
	if err != nil {
		return nil, err
	}
	return &CommentLikeResult{Likes: len(likes), HasLiked: !hasLiked}, nil
}
