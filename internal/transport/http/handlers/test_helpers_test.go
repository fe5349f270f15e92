package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vedran77/devlink/internal/github"
	"github.com/vedran77/devlink/internal/repository/memory"
	"github.com/vedran77/devlink/internal/service"
	"github.com/vedran77/devlink/internal/transport/http/middleware"
)

const testJWTSecret = "handlers-test-secret"

type testEnv struct {
	mux      *http.ServeMux
	users    *memory.UserRepo
	posts    *memory.PostRepo
	profiles *memory.ProfileRepo
}

// newTestEnv wires the full route table over in-memory repositories, the same
// way cmd/server does over postgres.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := memory.NewUserRepo()
	posts := memory.NewPostRepo()
	profiles := memory.NewProfileRepo(users, posts)

	authService := service.NewAuthService(users, testJWTSecret, time.Hour)
	profileService := service.NewProfileService(profiles)
	postService := service.NewPostService(posts, users)

	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService, github.NewClient("", ""))
	postHandler := NewPostHandler(postService)

	auth := middleware.Auth(testJWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", authHandler.Register)
	mux.HandleFunc("POST /api/auth", authHandler.Login)
	mux.HandleFunc("GET /api/profile", profileHandler.List)
	mux.HandleFunc("GET /api/profile/user/{id}", profileHandler.GetByUserID)
	mux.Handle("GET /api/auth", auth(http.HandlerFunc(authHandler.Me)))
	mux.Handle("GET /api/profile/me", auth(http.HandlerFunc(profileHandler.Me)))
	mux.Handle("POST /api/profile", auth(http.HandlerFunc(profileHandler.Upsert)))
	mux.Handle("DELETE /api/profile", auth(http.HandlerFunc(profileHandler.DeleteAccount)))
	mux.Handle("PUT /api/profile/experience", auth(http.HandlerFunc(profileHandler.AddExperience)))
	mux.Handle("DELETE /api/profile/experience/{exp_id}", auth(http.HandlerFunc(profileHandler.RemoveExperience)))
	mux.Handle("PUT /api/profile/education", auth(http.HandlerFunc(profileHandler.AddEducation)))
	mux.Handle("DELETE /api/profile/education/{edu_id}", auth(http.HandlerFunc(profileHandler.RemoveEducation)))
	mux.Handle("POST /api/posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("GET /api/posts", auth(http.HandlerFunc(postHandler.List)))
	mux.Handle("GET /api/posts/{id}", auth(http.HandlerFunc(postHandler.Get)))
	mux.Handle("DELETE /api/posts/{id}", auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("PUT /api/posts/like/{id}", auth(http.HandlerFunc(postHandler.Like)))
	mux.Handle("DELETE /api/posts/like/{id}", auth(http.HandlerFunc(postHandler.Unlike)))

	return &testEnv{mux: mux, users: users, posts: posts, profiles: profiles}
}

type apiResponse struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	resp := httptest.NewRecorder()

	e.mux.ServeHTTP(resp, req)

	var out apiResponse
	if resp.Body.Len() > 0 {
		if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
			t.Fatalf("decoding response %q: %v", resp.Body.String(), err)
		}
	}
	return resp.Code, out
}

// register creates an account and returns its token.
func (e *testEnv) register(t *testing.T, name, email, password string) string {
	t.Helper()

	code, resp := e.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if code != http.StatusOK {
		t.Fatalf("register %s: status %d, body %s", email, code, resp.Data)
	}

	var data struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("decoding token: %v", err)
	}
	if data.Token == "" {
		t.Fatal("register returned an empty token")
	}
	return data.Token
}

func decodeMsgs(t *testing.T, data json.RawMessage) []string {
	t.Helper()

	var list []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(data, &list); err == nil {
		msgs := make([]string, len(list))
		for i, m := range list {
			msgs[i] = m.Msg
		}
		return msgs
	}

	var single struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(data, &single); err != nil {
		t.Fatalf("decoding messages from %s: %v", data, err)
	}
	return []string{single.Msg}
}

func containsMsg(msgs []string, want string) bool {
	for _, m := range msgs {
		if m == want {
			return true
		}
	}
	return false
}
