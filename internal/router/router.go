package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"quizhub-backend/internal/handlers"
	"quizhub-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	authHandler *handlers.AuthHandler,
	quizHandler *handlers.QuizHandler,
	questionHandler *handlers.QuestionHandler,
	answerHandler *handlers.AnswerHandler,
	topicHandler *handlers.TopicHandler,
	resultHandler *handlers.ResultHandler,
	frontendURL string,
	storagePath string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Profile images uploaded at registration
	fileServer := http.FileServer(http.Dir(storagePath + "/profileImages"))
	r.Handle("/profileImages/*", http.StripPrefix("/profileImages/", fileServer))

	// ──── Auth Routes ────
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	// ──── Quiz Routes ────
	r.Route("/quizzes", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Get("/", quizHandler.List)
		r.Get("/{id}", quizHandler.Get)
		r.Get("/{id}/questions", questionHandler.ListByQuiz)
		r.Post("/{id}/submit", quizHandler.Submit)

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.RequireAdmin)
			r.Post("/", quizHandler.Create)
			r.Put("/{id}", quizHandler.Update)
			r.Delete("/{id}", quizHandler.Delete)
		})
	})

	// ──── Question & Answer Routes (authoring is admin only) ────
	r.Route("/questions", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Get("/{id}/answers", questionHandler.ListAnswers)

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.RequireAdmin)
			r.Post("/", questionHandler.Create)
			r.Delete("/{id}", questionHandler.Delete)
		})
	})

	r.Route("/answers", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Use(jwtAuth.RequireAdmin)
		r.Post("/", answerHandler.Create)
		r.Put("/{id}", answerHandler.Update)
		r.Delete("/{id}", answerHandler.Delete)
	})

	// ──── Topic Routes ────
	r.Route("/topics", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Get("/", topicHandler.List)

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.RequireAdmin)
			r.Post("/", topicHandler.Create)
		})
	})

	// ──── Result Routes ────
	r.Route("/results", func(r chi.Router) {
		r.Use(jwtAuth.Middleware)
		r.Get("/user", resultHandler.UserResults)
		r.Get("/leaderboard", resultHandler.Leaderboard)
		r.Get("/{id}/answers", resultHandler.UserAnswers)

		r.Group(func(r chi.Router) {
			r.Use(jwtAuth.RequireAdmin)
			r.Get("/", resultHandler.AllResults)
		})
	})

	return r
}
