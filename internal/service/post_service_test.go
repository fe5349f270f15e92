package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/domain"
	"github.com/vedran77/devlink/internal/repository/memory"
)

func newPostFixture(t *testing.T) (*PostService, uuid.UUID, uuid.UUID) {
	t.Helper()

	users := memory.NewUserRepo()
	posts := memory.NewPostRepo()

	author := &domain.User{ID: uuid.New(), Name: "A", Email: "a@x.com", Avatar: "https://example.com/a.png", CreatedAt: time.Now()}
	other := &domain.User{ID: uuid.New(), Name: "B", Email: "b@x.com", Avatar: "https://example.com/b.png", CreatedAt: time.Now()}
	ctx := context.Background()
	if err := users.Create(ctx, author); err != nil {
		t.Fatalf("seeding author: %v", err)
	}
	if err := users.Create(ctx, other); err != nil {
		t.Fatalf("seeding other user: %v", err)
	}

	return NewPostService(posts, users), author.ID, other.ID
}

func TestCreatePostDenormalizesAuthor(t *testing.T) {
	svc, authorID, _ := newPostFixture(t)

	post, err := svc.Create(context.Background(), authorID, CreatePostInput{Text: "hello"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.Name != "A" || post.Avatar == "" {
		t.Fatalf("author not denormalized: %+v", post)
	}
	if len(post.Likes) != 0 {
		t.Fatalf("new post should have no likes: %+v", post.Likes)
	}
}

func TestCreatePostUnknownUser(t *testing.T) {
	svc, _, _ := newPostFixture(t)

	_, err := svc.Create(context.Background(), uuid.New(), CreatePostInput{Text: "hello"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	svc, authorID, _ := newPostFixture(t)
	ctx := context.Background()

	older, err := svc.Create(ctx, authorID, CreatePostInput{Text: "first"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	newer, err := svc.Create(ctx, authorID, CreatePostInput{Text: "second"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	posts, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].ID != newer.ID || posts[1].ID != older.ID {
		t.Fatalf("posts not ordered newest first: %v then %v", posts[0].Text, posts[1].Text)
	}
}

func TestLikeTwiceFails(t *testing.T) {
	svc, authorID, otherID := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, CreatePostInput{Text: "hello"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	likes, err := svc.Like(ctx, otherID, post.ID)
	if err != nil {
		t.Fatalf("Like: %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != otherID {
		t.Fatalf("unexpected like list: %+v", likes)
	}

	if _, err := svc.Like(ctx, otherID, post.ID); !errors.Is(err, ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	// The failed like must not have grown the list.
	after, err := svc.GetByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if len(after.Likes) != 1 {
		t.Fatalf("like list changed on failed like: %+v", after.Likes)
	}
}

func TestUnlikeRestoresPreLikeState(t *testing.T) {
	svc, authorID, otherID := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, CreatePostInput{Text: "hello"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Like(ctx, otherID, post.ID); err != nil {
		t.Fatalf("Like: %v", err)
	}
	likes, err := svc.Unlike(ctx, otherID, post.ID)
	if err != nil {
		t.Fatalf("Unlike: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected empty like list, got %+v", likes)
	}
}

func TestUnlikeWithoutLikeFails(t *testing.T) {
	svc, authorID, otherID := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, CreatePostInput{Text: "hello"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Unlike(ctx, otherID, post.ID); !errors.Is(err, ErrNotLiked) {
		t.Fatalf("expected ErrNotLiked, got %v", err)
	}
}

func TestDeletePostOwnershipEnforced(t *testing.T) {
	svc, authorID, otherID := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.Create(ctx, authorID, CreatePostInput{Text: "hello"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, otherID, post.ID); !errors.Is(err, ErrNotPostOwner) {
		t.Fatalf("expected ErrNotPostOwner, got %v", err)
	}

	// Post must be untouched after the rejected delete.
	if got, err := svc.GetByID(ctx, post.ID); err != nil || got.Text != "hello" {
		t.Fatalf("post modified by rejected delete: %+v, %v", got, err)
	}

	if err := svc.Delete(ctx, authorID, post.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if _, err := svc.GetByID(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound after delete, got %v", err)
	}
}

func TestDeleteMissingPost(t *testing.T) {
	svc, authorID, _ := newPostFixture(t)

	if err := svc.Delete(context.Background(), authorID, uuid.New()); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}
