package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/domain"
	"github.com/vedran77/devlink/internal/repository"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrInvalidDate     = errors.New("invalid date")
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// UpsertProfileInput mirrors the profile form: skills arrive as a single
// comma-separated string, social links as flat fields.
type UpsertProfileInput struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status"`
	GithubUsername string `json:"githubusername"`
	Skills         string `json:"skills"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type ExperienceInput struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

// Upsert updates the caller's profile, creating it on first use. Only fields
// present in the input are written; everything else keeps its stored value.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, input UpsertProfileInput) (*domain.Profile, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	profile := existing
	if profile == nil {
		profile = &domain.Profile{
			ID:        uuid.New(),
			UserID:    userID,
			CreatedAt: now,
		}
	}

	if input.Company != "" {
		profile.Company = input.Company
	}
	if input.Website != "" {
		profile.Website = input.Website
	}
	if input.Location != "" {
		profile.Location = input.Location
	}
	if input.Bio != "" {
		profile.Bio = input.Bio
	}
	if input.Status != "" {
		profile.Status = input.Status
	}
	if input.GithubUsername != "" {
		profile.GithubUsername = input.GithubUsername
	}
	if input.Skills != "" {
		profile.Skills = splitSkills(input.Skills)
	}

	if input.Youtube != "" {
		profile.Social.Youtube = input.Youtube
	}
	if input.Twitter != "" {
		profile.Social.Twitter = input.Twitter
	}
	if input.Facebook != "" {
		profile.Social.Facebook = input.Facebook
	}
	if input.Linkedin != "" {
		profile.Social.Linkedin = input.Linkedin
	}
	if input.Instagram != "" {
		profile.Social.Instagram = input.Instagram
	}

	profile.UpdatedAt = now

	if existing != nil {
		if err := s.profileRepo.Update(ctx, profile); err != nil {
			return nil, fmt.Errorf("updating profile: %w", err)
		}
	} else {
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, fmt.Errorf("creating profile: %w", err)
		}
	}

	return s.GetByUserID(ctx, userID)
}

// DeleteAccount removes the caller's posts, profile and user record.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	return s.profileRepo.DeleteAccount(ctx, userID)
}

func (s *ProfileService) AddExperience(ctx context.Context, userID uuid.UUID, input ExperienceInput) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	from, to, err := parseDateRange(input.From, input.To)
	if err != nil {
		return nil, err
	}

	exp := &domain.Experience{
		ID:          uuid.New(),
		Title:       input.Title,
		Company:     input.Company,
		Location:    input.Location,
		From:        from,
		To:          to,
		Current:     input.Current,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.profileRepo.AddExperience(ctx, profile.ID, exp); err != nil {
		return nil, fmt.Errorf("adding experience: %w", err)
	}

	return s.GetByUserID(ctx, userID)
}

func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	removed, err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID)
	if err != nil {
		return nil, fmt.Errorf("removing experience: %w", err)
	}
	if !removed {
		return nil, ErrEntryNotFound
	}

	return s.GetByUserID(ctx, userID)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID uuid.UUID, input EducationInput) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	from, to, err := parseDateRange(input.From, input.To)
	if err != nil {
		return nil, err
	}

	edu := &domain.Education{
		ID:           uuid.New(),
		School:       input.School,
		Degree:       input.Degree,
		FieldOfStudy: input.FieldOfStudy,
		From:         from,
		To:           to,
		Current:      input.Current,
		Description:  input.Description,
		CreatedAt:    time.Now(),
	}

	if err := s.profileRepo.AddEducation(ctx, profile.ID, edu); err != nil {
		return nil, fmt.Errorf("adding education: %w", err)
	}

	return s.GetByUserID(ctx, userID)
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	removed, err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID)
	if err != nil {
		return nil, fmt.Errorf("removing education: %w", err)
	}
	if !removed {
		return nil, ErrEntryNotFound
	}

	return s.GetByUserID(ctx, userID)
}

func splitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parseDateRange(from, to string) (time.Time, *time.Time, error) {
	fromDate, err := parseDate(from)
	if err != nil {
		return time.Time{}, nil, ErrInvalidDate
	}

	if to == "" {
		return fromDate, nil, nil
	}

	toDate, err := parseDate(to)
	if err != nil {
		return time.Time{}, nil, ErrInvalidDate
	}
	return fromDate, &toDate, nil
}

func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
