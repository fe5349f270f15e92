package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	List(ctx context.Context) ([]domain.Profile, error)
	AddExperience(ctx context.Context, profileID uuid.UUID, exp *domain.Experience) error
	RemoveExperience(ctx context.Context, profileID, expID uuid.UUID) (bool, error)
	AddEducation(ctx context.Context, profileID uuid.UUID, edu *domain.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID uuid.UUID) (bool, error)
	// DeleteAccount removes the user's posts, profile and user record in a
	// single transaction.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddLike(ctx context.Context, postID, userID uuid.UUID) error
	RemoveLike(ctx context.Context, postID, userID uuid.UUID) error
	ListLikes(ctx context.Context, postID uuid.UUID) ([]domain.Like, error)
}
