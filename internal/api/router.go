package api

import (
	"database/sql"
	"net/http"
	"time"

	"inkwell/internal/api/handler"
	custommw "inkwell/internal/api/middleware"
	"inkwell/internal/app/service"
	"inkwell/internal/common/security"
	"inkwell/internal/domain/repository"
	"inkwell/internal/platform/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
	"go.uber.org/zap"
)

func NewRouter(logger *zap.Logger, db *sql.DB, tokens *security.TokenManager, store *storage.LocalStore) http.Handler {
	userRepo := repository.NewPgUserRepository(db)
	postRepo := repository.NewPgPostRepository(db)
	commentRepo := repository.NewPgCommentRepository(db)

	authService := service.NewAuthService(logger, userRepo, tokens)
	postService := service.NewPostService(logger, postRepo, db)
	commentService := service.NewCommentService(logger, commentRepo)

	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService, store)
	commentHandler := handler.NewCommentHandler(commentService)

	auth := custommw.NewAuth(userRepo)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Decodes the Authorization header on every request; verification
	// failures are deferred to the auth middleware on protected routes.
	r.Use(jwtauth.Verifier(tokens.JWTAuth()))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Uploaded cover images are served straight off disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(store.Dir()))))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)
				r.Get("/me", authHandler.Me)
			})
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postHandler.List)
			r.Get("/{id}", postHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)
				r.Post("/", postHandler.Create)
				r.Put("/{id}", postHandler.Update)
				r.Delete("/{id}", postHandler.Delete)
				r.Post("/{id}/like", postHandler.Like)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/post/{postId}", commentHandler.ListByPost)
			r.Get("/{id}", commentHandler.Get)

			r.Group(func(r chi.Router) {
				r.Use(auth.Required)
				r.Post("/", commentHandler.Create)
				r.Put("/{id}", commentHandler.Update)
				r.Delete("/{id}", commentHandler.Delete)
				r.Post("/{id}/like", commentHandler.ToggleLike)
			})
		})
	})

	return r
}
