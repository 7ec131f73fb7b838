package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/aliskhannn/pokemon-quiz-bot/internal/domain/entities"
)

type QuizService interface {
	RandomQuestion(ctx context.Context) (*entities.Question, error)
	StartSession(ctx context.Context, totalQuestions int) (*entities.Session, error)
	RestartSession(ctx context.Context, id string, totalQuestions int) (*entities.Session, error)
	GetSession(ctx context.Context, id string) (*entities.Session, error)
	SubmitAnswer(ctx context.Context, id string, option string) (*entities.AnswerResult, error)
	Advance(ctx context.Context, id string) (*entities.Session, error)
	EndSession(ctx context.Context, id string) error
}

type Handler struct {
	quizService      QuizService
	defaultQuestions int
	logger           *zap.Logger
}

func NewHandler(quizService QuizService, defaultQuestions int, logger *zap.Logger) *Handler {
	return &Handler{
		quizService:      quizService,
		defaultQuestions: defaultQuestions,
		logger:           logger,
	}
}

// Routes builds the router. allowedOrigins configures CORS for the browser front-end.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(securityHeaders)
	r.Use(h.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })

	r.Route("/api", func(r chi.Router) {
		r.Get("/question", h.handleRandomQuestion)

		r.Post("/sessions", h.handleStartSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetSession)
			r.Delete("/", h.handleEndSession)
			r.Post("/answer", h.handleAnswer)
			r.Post("/next", h.handleNext)
			r.Post("/restart", h.handleRestart)
		})
	})

	return r
}

// Serve runs the API on addr until ctx is cancelled.
func (h *Handler) Serve(ctx context.Context, addr string, allowedOrigins []string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h.Routes(allowedOrigins),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("http api listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		h.logger.Info("http api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		h.logger.Debug("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}
