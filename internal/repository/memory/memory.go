// Package memory holds in-memory repository implementations used by tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/domain"
)

type UserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]domain.User
}

func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[uuid.UUID]domain.User)}
}

func (r *UserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type ProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]domain.Profile // keyed by profile ID

	// collaborators for the transactional account delete
	Users *UserRepo
	Posts *PostRepo
}

func NewProfileRepo(users *UserRepo, posts *PostRepo) *ProfileRepo {
	return &ProfileRepo{
		profiles: make(map[uuid.UUID]domain.Profile),
		Users:    users,
		Posts:    posts,
	}
}

func (r *ProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = clone(profile)
	return nil
}

func (r *ProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.profiles[profile.ID]
	if !ok {
		return nil
	}
	next := clone(profile)
	next.Experience = stored.Experience
	next.Education = stored.Education
	r.profiles[profile.ID] = next
	return nil
}

func (r *ProfileRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	var found *domain.Profile
	for _, p := range r.profiles {
		if p.UserID == userID {
			c := clone(&p)
			found = &c
			break
		}
	}
	r.mu.Unlock()

	if found == nil {
		return nil, nil
	}
	r.joinOwner(ctx, found)
	return found, nil
}

func (r *ProfileRepo) List(ctx context.Context) ([]domain.Profile, error) {
	r.mu.Lock()
	profiles := make([]domain.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		profiles = append(profiles, clone(&p))
	}
	r.mu.Unlock()

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.After(profiles[j].CreatedAt)
	})
	for i := range profiles {
		r.joinOwner(ctx, &profiles[i])
	}
	return profiles, nil
}

func (r *ProfileRepo) AddExperience(_ context.Context, profileID uuid.UUID, exp *domain.Experience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return nil
	}
	p.Experience = append([]domain.Experience{*exp}, p.Experience...)
	r.profiles[profileID] = p
	return nil
}

func (r *ProfileRepo) RemoveExperience(_ context.Context, profileID, expID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return false, nil
	}
	for i, e := range p.Experience {
		if e.ID == expID {
			p.Experience = append(p.Experience[:i:i], p.Experience[i+1:]...)
			r.profiles[profileID] = p
			return true, nil
		}
	}
	return false, nil
}

func (r *ProfileRepo) AddEducation(_ context.Context, profileID uuid.UUID, edu *domain.Education) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return nil
	}
	p.Education = append([]domain.Education{*edu}, p.Education...)
	r.profiles[profileID] = p
	return nil
}

func (r *ProfileRepo) RemoveEducation(_ context.Context, profileID, eduID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[profileID]
	if !ok {
		return false, nil
	}
	for i, e := range p.Education {
		if e.ID == eduID {
			p.Education = append(p.Education[:i:i], p.Education[i+1:]...)
			r.profiles[profileID] = p
			return true, nil
		}
	}
	return false, nil
}

func (r *ProfileRepo) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if r.Posts != nil {
		r.Posts.deleteByUser(userID)
	}

	r.mu.Lock()
	for id, p := range r.profiles {
		if p.UserID == userID {
			delete(r.profiles, id)
		}
	}
	r.mu.Unlock()

	if r.Users != nil {
		r.Users.delete(userID)
	}
	return nil
}

func (r *ProfileRepo) joinOwner(ctx context.Context, profile *domain.Profile) {
	if r.Users == nil {
		return
	}
	if u, _ := r.Users.GetByID(ctx, profile.UserID); u != nil {
		profile.User = &domain.UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	}
}

func clone(p *domain.Profile) domain.Profile {
	c := *p
	c.Skills = append([]string(nil), p.Skills...)
	c.Experience = append([]domain.Experience(nil), p.Experience...)
	c.Education = append([]domain.Education(nil), p.Education...)
	return c
}

type PostRepo struct {
	mu    sync.Mutex
	posts map[uuid.UUID]domain.Post
}

func NewPostRepo() *PostRepo {
	return &PostRepo{posts: make(map[uuid.UUID]domain.Post)}
}

func (r *PostRepo) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *post
	c.Likes = append([]domain.Like(nil), post.Likes...)
	r.posts[post.ID] = c
	return nil
}

func (r *PostRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	c := p
	c.Likes = append([]domain.Like{}, p.Likes...)
	return &c, nil
}

func (r *PostRepo) List(_ context.Context) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	posts := make([]domain.Post, 0, len(r.posts))
	for _, p := range r.posts {
		c := p
		c.Likes = append([]domain.Like{}, p.Likes...)
		posts = append(posts, c)
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (r *PostRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *PostRepo) AddLike(_ context.Context, postID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	p.Likes = append([]domain.Like{{UserID: userID, CreatedAt: time.Now()}}, p.Likes...)
	r.posts[postID] = p
	return nil
}

func (r *PostRepo) RemoveLike(_ context.Context, postID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return nil
	}
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			break
		}
	}
	r.posts[postID] = p
	return nil
}

func (r *PostRepo) ListLikes(_ context.Context, postID uuid.UUID) ([]domain.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok {
		return []domain.Like{}, nil
	}
	return append([]domain.Like{}, p.Likes...), nil
}

func (r *PostRepo) deleteByUser(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.posts {
		if p.UserID == userID {
			delete(r.posts, id)
		}
	}
}
