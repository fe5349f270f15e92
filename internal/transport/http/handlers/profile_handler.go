package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/github"
	"github.com/vedran77/devlink/internal/service"
	"github.com/vedran77/devlink/internal/transport/http/middleware"
	"github.com/vedran77/devlink/pkg/validator"
)

type ProfileHandler struct {
	profileService *service.ProfileService
	githubClient   *github.Client
}

func NewProfileHandler(profileService *service.ProfileService, githubClient *github.Client) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		githubClient:   githubClient,
	}
}

// Me handles GET /api/profile/me.
func (h *ProfileHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	profile, err := h.profileService.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeFail(w, msg("There is no profile for this user"))
		} else {
			writeServerError(w, "get own profile", err)
		}
		return
	}

	writeSuccess(w, profile)
}

// Upsert handles POST /api/profile, creating or sparsely updating the
// caller's profile.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.UpsertProfileInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFail(w, msg("Invalid request body"))
		return
	}

	if errs := validator.ValidateProfile(input.Status, input.Skills); errs.HasErrors() {
		writeFail(w, errs)
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), userID, input)
	if err != nil {
		writeServerError(w, "upsert profile", err)
		return
	}

	writeSuccess(w, profile)
}

// List handles GET /api/profile. Public.
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.List(r.Context())
	if err != nil {
		writeServerError(w, "list profiles", err)
		return
	}

	writeSuccess(w, profiles)
}

// GetByUserID handles GET /api/profile/user/{id}. Public. A malformed ID is
// reported as a missing profile, not a malformed request.
func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeFail(w, []map[string]string{msg("Profile not found")})
		return
	}

	profile, err := h.profileService.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			writeFail(w, []map[string]string{msg("Profile not found")})
		} else {
			writeServerError(w, "get profile", err)
		}
		return
	}

	writeSuccess(w, profile)
}

// DeleteAccount handles DELETE /api/profile: posts, profile and user go in
// one transaction.
func (h *ProfileHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if err := h.profileService.DeleteAccount(r.Context(), userID); err != nil {
		writeServerError(w, "delete account", err)
		return
	}

	writeSuccess(w, msg("User deleted"))
}

// AddExperience handles PUT /api/profile/experience.
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.ExperienceInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFail(w, msg("Invalid request body"))
		return
	}

	if errs := validator.ValidateExperience(input.Title, input.Company, input.From); errs.HasErrors() {
		writeFail(w, errs)
		return
	}

	profile, err := h.profileService.AddExperience(r.Context(), userID, input)
	if err != nil {
		h.writeEntryError(w, "add experience", err)
		return
	}

	writeSuccess(w, profile)
}

// RemoveExperience handles DELETE /api/profile/experience/{exp_id}.
func (h *ProfileHandler) RemoveExperience(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	expID, err := uuid.Parse(r.PathValue("exp_id"))
	if err != nil {
		writeFail(w, msg("Experience not found"))
		return
	}

	profile, err := h.profileService.RemoveExperience(r.Context(), userID, expID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			writeFail(w, msg("There is no profile for this user"))
		case errors.Is(err, service.ErrEntryNotFound):
			writeFail(w, msg("Experience not found"))
		default:
			writeServerError(w, "remove experience", err)
		}
		return
	}

	writeSuccess(w, profile)
}

// AddEducation handles PUT /api/profile/education.
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.EducationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFail(w, msg("Invalid request body"))
		return
	}

	if errs := validator.ValidateEducation(input.School, input.Degree, input.FieldOfStudy, input.From); errs.HasErrors() {
		writeFail(w, errs)
		return
	}

	profile, err := h.profileService.AddEducation(r.Context(), userID, input)
	if err != nil {
		h.writeEntryError(w, "add education", err)
		return
	}

	writeSuccess(w, profile)
}

// RemoveEducation handles DELETE /api/profile/education/{edu_id}.
func (h *ProfileHandler) RemoveEducation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	eduID, err := uuid.Parse(r.PathValue("edu_id"))
	if err != nil {
		writeFail(w, msg("Education not found"))
		return
	}

	profile, err := h.profileService.RemoveEducation(r.Context(), userID, eduID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			writeFail(w, msg("There is no profile for this user"))
		case errors.Is(err, service.ErrEntryNotFound):
			writeFail(w, msg("Education not found"))
		default:
			writeServerError(w, "remove education", err)
		}
		return
	}

	writeSuccess(w, profile)
}

// GithubRepos handles GET /api/profile/github/{username}. Public.
func (h *ProfileHandler) GithubRepos(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")

	repos, err := h.githubClient.Repos(r.Context(), username)
	if err != nil {
		if errors.Is(err, github.ErrProfileNotFound) {
			writeEnvelope(w, http.StatusNotFound, envelope{Status: "fail", Data: msg("No Github profile found")})
		} else {
			writeServerError(w, "github repos", err)
		}
		return
	}

	writeSuccess(w, repos)
}

func (h *ProfileHandler) writeEntryError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound):
		writeFail(w, msg("There is no profile for this user"))
	case errors.Is(err, service.ErrInvalidDate):
		writeFail(w, msg("Invalid date"))
	default:
		writeServerError(w, op, err)
	}
}
