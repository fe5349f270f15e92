package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/domain"
	"github.com/vedran77/devlink/internal/repository"
)

var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("only the post author can perform this action")
	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post is not liked")
)

// Notifier broadcasts post events to connected feed clients.
type Notifier interface {
	NotifyNewPost(post *domain.Post)
	NotifyDeletedPost(postID uuid.UUID)
	NotifyLikes(postID uuid.UUID, likes []domain.Like)
}

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	notifier Notifier
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *PostService) SetNotifier(n Notifier) {
	s.notifier = n
}

type CreatePostInput struct {
	Text string `json:"text"`
}

func (s *PostService) Create(ctx context.Context, userID uuid.UUID, input CreatePostInput) (*domain.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	post := &domain.Post{
		ID:     uuid.New(),
		UserID: userID,
		Text:   input.Text,
		// Author name and avatar are frozen at creation time.
		Name:      user.Name,
		Avatar:    user.Avatar,
		Likes:     []domain.Like{},
		CreatedAt: time.Now(),
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewPost(post)
	}

	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	return posts, nil
}

func (s *PostService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrNotPostOwner
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyDeletedPost(postID)
	}

	return nil
}

// Like records the caller's like and returns the updated like list, most
// recent first.
func (s *PostService) Like(ctx context.Context, userID, postID uuid.UUID) ([]domain.Like, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.LikedBy(userID) {
		return nil, ErrAlreadyLiked
	}

	if err := s.postRepo.AddLike(ctx, postID, userID); err != nil {
		return nil, fmt.Errorf("adding like: %w", err)
	}

	likes, err := s.postRepo.ListLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyLikes(postID, likes)
	}

	return likes, nil
}

func (s *PostService) Unlike(ctx context.Context, userID, postID uuid.UUID) ([]domain.Like, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !post.LikedBy(userID) {
		return nil, ErrNotLiked
	}

	if err := s.postRepo.RemoveLike(ctx, postID, userID); err != nil {
		return nil, fmt.Errorf("removing like: %w", err)
	}

	likes, err := s.postRepo.ListLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyLikes(postID, likes)
	}

	return likes, nil
}
