package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/devlink/internal/domain"
)

type PostRepo struct {
	pool *pgxpool.Pool
}

func NewPostRepo(pool *pgxpool.Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, user_id, text, name, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		post.ID, post.UserID, post.Text, post.Name, post.Avatar, post.CreatedAt,
	)
	return err
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var p domain.Post
	err := r.pool.QueryRow(ctx,
		"SELECT id, user_id, text, name, avatar, created_at FROM posts WHERE id = $1", id,
	).Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Likes, err = r.ListLikes(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *PostRepo) List(ctx context.Context) ([]domain.Post, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT id, user_id, text, name, avatar, created_at FROM posts ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Likes, err = r.ListLikes(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return posts, nil
}

func (r *PostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

func (r *PostRepo) AddLike(ctx context.Context, postID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO post_likes (post_id, user_id, created_at) VALUES ($1, $2, now())",
		postID, userID,
	)
	return err
}

func (r *PostRepo) RemoveLike(ctx context.Context, postID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		"DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2",
		postID, userID,
	)
	return err
}

func (r *PostRepo) ListLikes(ctx context.Context, postID uuid.UUID) ([]domain.Like, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT user_id, created_at FROM post_likes WHERE post_id = $1 ORDER BY created_at DESC, user_id",
		postID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := []domain.Like{}
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.UserID, &l.CreatedAt); err != nil {
			return nil, err
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
