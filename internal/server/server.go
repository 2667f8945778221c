// Package server exposes the quiz engine over HTTP. Identity is taken
// from a user_id request parameter; there is no ambient authentication
// layer here.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dohyun/jumble/internal/attempts"
	"github.com/dohyun/jumble/internal/config"
	"github.com/dohyun/jumble/internal/feedback"
	"github.com/dohyun/jumble/internal/logger"
	"github.com/dohyun/jumble/internal/quiz"
	"github.com/dohyun/jumble/internal/ranking"
	"github.com/dohyun/jumble/internal/sentencegen"
	"github.com/dohyun/jumble/internal/store"
)

// Options carries the wired services. Generator and Feedback may be nil
// when no LLM provider is configured; affected endpoints degrade.
type Options struct {
	Config    config.Config
	Logger    *logger.Logger
	Generator sentencegen.Generator
	Cache     store.SentenceCacheRepo
	Attempts  *attempts.Service
	Ranking   *ranking.Service
	Sessions  *quiz.Manager
	Feedback  *feedback.Service
}

// Server is the HTTP front of the quiz engine.
type Server struct {
	opts   Options
	log    *logger.Logger
	engine *gin.Engine
	http   *http.Server
}

// New builds the router and returns an unstarted Server.
func New(opts Options) *Server {
	if opts.Config.Mode == config.ModeRelease {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		opts: opts,
		log:  opts.Logger.With("component", "server"),
	}
	s.engine = s.buildRouter()
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Config.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(s.corsConfig()))

	r.GET("/healthcheck", s.handleHealthcheck)

	api := r.Group("/api")
	{
		api.POST("/sentences", s.handleGenerateSentences)

		api.GET("/quiz-attempts", s.handleAttemptStatus)
		api.POST("/quiz-attempts", s.handleReserveAttempt)

		api.POST("/quiz/start", s.handleStartQuiz)
		api.GET("/quiz/:id", s.handleGetQuiz)
		api.POST("/quiz/:id/answer", s.handleSubmitAnswer)
		api.POST("/quiz/:id/advance", s.handleAdvance)
		api.POST("/quiz/:id/retreat", s.handleRetreat)

		api.GET("/progress", s.handleGetProgress)
		api.POST("/progress", s.handleAccumulateProgress)

		api.GET("/ranking", s.handleRanking)

		api.POST("/analyze-answer", s.handleAnalyzeAnswer)

		api.GET("/tts", s.handleTTS)
	}

	return r
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	if len(s.opts.Config.CORSOrigins) > 0 {
		cfg.AllowOrigins = s.opts.Config.CORSOrigins
	} else {
		cfg.AllowAllOrigins = true
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return cfg
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

// Handler returns the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the session sweeper.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.opts.Sessions != nil {
		s.opts.Sessions.Close()
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// errorJSON writes a uniform error body.
func errorJSON(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"error": msg})
}
