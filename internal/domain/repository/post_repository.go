package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"inkwell/internal/common"
	"inkwell/internal/domain/model"
)

// PostFilter narrows List results; zero values mean "no filter".
type PostFilter struct {
	Category string
	Tag      string
	AuthorID string
	Status   model.PostStatus
}

type PostRepository interface {
	Create(ctx context.Context, tx *sql.Tx, post *model.Post) error
	Update(ctx context.Context, tx *sql.Tx, post *model.Post) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	List(ctx context.Context, limit, offset int, filter PostFilter) ([]model.Post, int, error)

	ReplaceTags(ctx context.Context, tx *sql.Tx, postID string, tags []string) error
	GetTags(ctx context.Context, postID string) ([]string, error)

	IncrementViewCount(ctx context.Context, id string) error
	IncrementLikeCount(ctx context.Context, id string) (int, error)
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

func (r *pgPostRepository) Create(ctx context.Context, tx *sql.Tx, p *model.Post) error {
	query := `INSERT INTO posts (id, title, slug, content, author_id, category, cover_image, status, view_count, like_count)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.ID, p.Title, p.Slug, p.Content, p.AuthorID, p.Category, p.CoverImage, p.Status, p.ViewCount, p.LikeCount)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.ID, p.Title, p.Slug, p.Content, p.AuthorID, p.Category, p.CoverImage, p.Status, p.ViewCount, p.LikeCount)
	}
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) Update(ctx context.Context, tx *sql.Tx, p *model.Post) error {
	query := `UPDATE posts SET
	            title = $1, slug = $2, content = $3, category = $4, cover_image = $5,
	            status = $6, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $7`

	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, p.Title, p.Slug, p.Content, p.Category, p.CoverImage, p.Status, p.ID)
	} else {
		_, err = r.db.ExecContext(ctx, query, p.Title, p.Slug, p.Content, p.Category, p.CoverImage, p.Status, p.ID)
	}
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id string) error {
	// Comments referencing the post are left in place; there is no cascade.
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query := `
	    SELECT p.id, p.title, p.slug, p.content, p.author_id, p.category, p.cover_image,
	           p.status, p.view_count, p.like_count, p.created_at, p.updated_at,
	           u.username, u.avatar
	    FROM posts p
	    JOIN users u ON p.author_id = u.id
	    WHERE p.id = $1`

	post := &model.Post{}
	var authorUsername, authorAvatar string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content, &post.AuthorID, &post.Category, &post.CoverImage,
		&post.Status, &post.ViewCount, &post.LikeCount, &post.CreatedAt, &post.UpdatedAt,
		&authorUsername, &authorAvatar,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	post.Author = &model.UserRef{ID: post.AuthorID, Username: authorUsername, Avatar: authorAvatar}
	return post, nil
}

func (r *pgPostRepository) List(ctx context.Context, limit, offset int, filter PostFilter) ([]model.Post, int, error) {
	var baseQuery strings.Builder
	baseQuery.WriteString(`
	    SELECT DISTINCT p.id, p.title, p.slug, p.content, p.author_id, p.category, p.cover_image,
	           p.status, p.view_count, p.like_count, p.created_at, p.updated_at,
	           u.username, u.avatar
	    FROM posts p
	    JOIN users u ON p.author_id = u.id`)

	var countQuery strings.Builder
	countQuery.WriteString(`SELECT COUNT(DISTINCT p.id) FROM posts p`)

	var conditions []string
	var args []interface{}
	argID := 1

	if filter.Tag != "" {
		join := " JOIN post_tags pt ON p.id = pt.post_id"
		baseQuery.WriteString(join)
		countQuery.WriteString(join)
		conditions = append(conditions, fmt.Sprintf("pt.tag = $%d", argID))
		args = append(args, filter.Tag)
		argID++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", argID))
		args = append(args, filter.Category)
		argID++
	}
	if filter.AuthorID != "" {
		conditions = append(conditions, fmt.Sprintf("p.author_id = $%d", argID))
		args = append(args, filter.AuthorID)
		argID++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	if len(conditions) > 0 {
		whereClause := " WHERE " + strings.Join(conditions, " AND ")
		baseQuery.WriteString(whereClause)
		countQuery.WriteString(whereClause)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery.String(), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List count: %w", err)
	}

	baseQuery.WriteString(fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, baseQuery.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List query: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		var authorUsername, authorAvatar string
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Content, &p.AuthorID, &p.Category, &p.CoverImage,
			&p.Status, &p.ViewCount, &p.LikeCount, &p.CreatedAt, &p.UpdatedAt,
			&authorUsername, &authorAvatar,
		); err != nil {
			return nil, 0, fmt.Errorf("pgPostRepository.List scan: %w", err)
		}
		p.Author = &model.UserRef{ID: p.AuthorID, Username: authorUsername, Avatar: authorAvatar}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List rows.Err: %w", err)
	}

	return posts, total, nil
}

func (r *pgPostRepository) ReplaceTags(ctx context.Context, tx *sql.Tx, postID string, tags []string) error {
	exec := r.db.ExecContext
	if tx != nil {
		exec = tx.ExecContext
	}

	if _, err := exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("pgPostRepository.ReplaceTags clear: %w", err)
	}
	for _, tag := range tags {
		if _, err := exec(ctx, `INSERT INTO post_tags (post_id, tag) VALUES ($1, $2)`, postID, tag); err != nil {
			return fmt.Errorf("pgPostRepository.ReplaceTags insert %q: %w", tag, err)
		}
	}
	return nil
}

func (r *pgPostRepository) GetTags(ctx context.Context, postID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tag FROM post_tags WHERE post_id = $1 ORDER BY tag ASC`, postID)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.GetTags query: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("pgPostRepository.GetTags scan: %w", err)
		}
		tags = append(tags, tag)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.GetTags rows.Err: %w", err)
	}
	return tags, nil
}

func (r *pgPostRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE posts SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.IncrementViewCount: %w", err)
	}
	return nil
}

func (r *pgPostRepository) IncrementLikeCount(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `UPDATE posts SET like_count = like_count + 1 WHERE id = $1 RETURNING like_count`, id).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgPostRepository.IncrementLikeCount: %w", err)
	}
	return count, nil
}
