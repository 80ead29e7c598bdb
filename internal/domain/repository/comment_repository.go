package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inkwell/internal/common"
	"inkwell/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id string) (*model.Comment, error)
	ListByPost(ctx context.Context, postID string, limit, offset int) ([]model.Comment, int, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id string) error

	AddLike(ctx context.Context, commentID, userID string) error
	RemoveLike(ctx context.Context, commentID, userID string) error
	GetLikes(ctx context.Context, commentID string) ([]string, error)
}

type pgCommentRepository struct {
	db *sql.DB
}

func NewPgCommentRepository(db *sql.DB) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO comments (id, post_id, author_id, parent_id, content)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.PostID, c.AuthorID, c.ParentID, c.Content)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) FindByID(ctx context.Context, id string) (*model.Comment, error) {
	query := `
	    SELECT c.id, c.post_id, c.author_id, c.parent_id, c.content, c.created_at, c.updated_at,
	           u.username, u.avatar
	    FROM comments c
	    JOIN users u ON c.author_id = u.id
	    WHERE c.id = $1`

	comment := &model.Comment{}
	var authorUsername, authorAvatar string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.ParentID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
		&authorUsername, &authorAvatar,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCommentRepository.FindByID: %w", err)
	}
	comment.Author = &model.UserRef{ID: comment.AuthorID, Username: authorUsername, Avatar: authorAvatar}
	return comment, nil
}

func (r *pgCommentRepository) ListByPost(ctx context.Context, postID string, limit, offset int) ([]model.Comment, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgCommentRepository.ListByPost count: %w", err)
	}

	query := `
	    SELECT c.id, c.post_id, c.author_id, c.parent_id, c.content, c.created_at, c.updated_at,
	           u.username, u.avatar
	    FROM comments c
	    JOIN users u ON c.author_id = u.id
	    WHERE c.post_id = $1
	    ORDER BY c.created_at DESC
	    LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgCommentRepository.ListByPost query: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		var authorUsername, authorAvatar string
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.AuthorID, &c.ParentID, &c.Content, &c.CreatedAt, &c.UpdatedAt,
			&authorUsername, &authorAvatar,
		); err != nil {
			return nil, 0, fmt.Errorf("pgCommentRepository.ListByPost scan: %w", err)
		}
		c.Author = &model.UserRef{ID: c.AuthorID, Username: authorUsername, Avatar: authorAvatar}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgCommentRepository.ListByPost rows.Err: %w", err)
	}

	return comments, total, nil
}

func (r *pgCommentRepository) Update(ctx context.Context, c *model.Comment) error {
	query := `UPDATE comments SET content = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, c.Content, c.ID)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCommentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgCommentRepository) AddLike(ctx context.Context, commentID, userID string) error {
	query := `INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, commentID, userID); err != nil {
		return fmt.Errorf("pgCommentRepository.AddLike: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) RemoveLike(ctx context.Context, commentID, userID string) error {
	query := `DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, commentID, userID); err != nil {
		return fmt.Errorf("pgCommentRepository.RemoveLike: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) GetLikes(ctx context.Context, commentID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT user_id FROM comment_likes WHERE comment_id = $1`, commentID)
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.GetLikes query: %w", err)
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("pgCommentRepository.GetLikes scan: %w", err)
		}
		likes = append(likes, userID)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommentRepository.GetLikes rows.Err: %w", err)
	}
	return likes, nil
}
