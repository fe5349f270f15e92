package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/vedran77/devlink/internal/service"
	"github.com/vedran77/devlink/internal/transport/http/middleware"
	"github.com/vedran77/devlink/pkg/validator"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create handles POST /api/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input service.CreatePostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeFail(w, msg("Invalid request body"))
		return
	}

	if errs := validator.ValidatePost(input.Text); errs.HasErrors() {
		writeFail(w, errs)
		return
	}

	post, err := h.postService.Create(r.Context(), userID, input)
	if err != nil {
		writeServerError(w, "create post", err)
		return
	}

	writeSuccess(w, post)
}

// List handles GET /api/posts, most recent first.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeServerError(w, "list posts", err)
		return
	}

	writeSuccess(w, posts)
}

// Get handles GET /api/posts/{id}. A malformed ID reads as a missing post.
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeFail(w, msg("Post not found"))
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeFail(w, msg("Post not found"))
		} else {
			writeServerError(w, "get post", err)
		}
		return
	}

	writeSuccess(w, post)
}

// Delete handles DELETE /api/posts/{id}. Only the author may delete.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeFail(w, msg("Post not found"))
		return
	}

	if err := h.postService.Delete(r.Context(), userID, postID); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeFail(w, msg("Post not found"))
		case errors.Is(err, service.ErrNotPostOwner):
			writeFail(w, msg("User not authorized"))
		default:
			writeServerError(w, "delete post", err)
		}
		return
	}

	writeSuccess(w, msg("Post removed"))
}

// Like handles PUT /api/posts/like/{id} and returns the updated like list.
func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeFail(w, msg("Post not found"))
		return
	}

	likes, err := h.postService.Like(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeFail(w, msg("Post not found"))
		case errors.Is(err, service.ErrAlreadyLiked):
			writeFail(w, msg("Post already liked"))
		default:
			writeServerError(w, "like post", err)
		}
		return
	}

	writeSuccess(w, likes)
}

// Unlike handles DELETE /api/posts/like/{id}.
func (h *PostHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeFail(w, msg("Post not found"))
		return
	}

	likes, err := h.postService.Unlike(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			writeFail(w, msg("Post not found"))
		case errors.Is(err, service.ErrNotLiked):
			writeFail(w, msg("Post is not liked"))
		default:
			writeServerError(w, "unlike post", err)
		}
		return
	}

	writeSuccess(w, likes)
}
