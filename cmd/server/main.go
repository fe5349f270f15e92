package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/vedran77/devlink/internal/config"
	"github.com/vedran77/devlink/internal/database"
	"github.com/vedran77/devlink/internal/github"
	postgresrepo "github.com/vedran77/devlink/internal/repository/postgres"
	"github.com/vedran77/devlink/internal/service"
	"github.com/vedran77/devlink/internal/transport/http/handlers"
	"github.com/vedran77/devlink/internal/transport/http/middleware"
	"github.com/vedran77/devlink/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	if err := database.Migrate(context.Background(), pool); err != nil {
		log.Fatal(err)
	}

	// Repositories
	userRepo := postgresrepo.NewUserRepo(pool)
	profileRepo := postgresrepo.NewProfileRepo(pool)
	postRepo := postgresrepo.NewPostRepo(pool)

	// Services
	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, tokenTTL)
	profileService := service.NewProfileService(profileRepo)
	postService := service.NewPostService(postRepo, userRepo)

	// Live feed
	hub := ws.NewHub()
	go hub.Run()
	postService.SetNotifier(ws.NewHubNotifier(hub))

	// Handlers
	githubClient := github.NewClient(cfg.GithubClientID, cfg.GithubClientSecret)
	authHandler := handlers.NewAuthHandler(authService)
	profileHandler := handlers.NewProfileHandler(profileService, githubClient)
	postHandler := handlers.NewPostHandler(postService)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})
	mux.HandleFunc("POST /api/users", authHandler.Register)
	mux.HandleFunc("POST /api/auth", authHandler.Login)
	mux.HandleFunc("GET /api/profile", profileHandler.List)
	mux.HandleFunc("GET /api/profile/user/{id}", profileHandler.GetByUserID)
	mux.HandleFunc("GET /api/profile/github/{username}", profileHandler.GithubRepos)

	// Protected - Auth
	mux.Handle("GET /api/auth", auth(http.HandlerFunc(authHandler.Me)))

	// Protected - Profile
	mux.Handle("GET /api/profile/me", auth(http.HandlerFunc(profileHandler.Me)))
	mux.Handle("POST /api/profile", auth(http.HandlerFunc(profileHandler.Upsert)))
	mux.Handle("DELETE /api/profile", auth(http.HandlerFunc(profileHandler.DeleteAccount)))
	mux.Handle("PUT /api/profile/experience", auth(http.HandlerFunc(profileHandler.AddExperience)))
	mux.Handle("DELETE /api/profile/experience/{exp_id}", auth(http.HandlerFunc(profileHandler.RemoveExperience)))
	mux.Handle("PUT /api/profile/education", auth(http.HandlerFunc(profileHandler.AddEducation)))
	mux.Handle("DELETE /api/profile/education/{edu_id}", auth(http.HandlerFunc(profileHandler.RemoveEducation)))

	// Protected - Posts
	mux.Handle("POST /api/posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("GET /api/posts", auth(http.HandlerFunc(postHandler.List)))
	mux.Handle("GET /api/posts/{id}", auth(http.HandlerFunc(postHandler.Get)))
	mux.Handle("DELETE /api/posts/{id}", auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("PUT /api/posts/like/{id}", auth(http.HandlerFunc(postHandler.Like)))
	mux.Handle("DELETE /api/posts/like/{id}", auth(http.HandlerFunc(postHandler.Unlike)))

	// Live feed (token via query param)
	mux.HandleFunc("GET /ws/feed", ws.ServeWS(hub, cfg.JWTSecret))

	// Start server with CORS and panic recovery
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(cfg.CORSOrigin)(middleware.Recover(mux))))
}
