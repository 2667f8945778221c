package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dohyun/jumble/internal/attempts"
	"github.com/dohyun/jumble/internal/feedback"
	"github.com/dohyun/jumble/internal/sentencegen"
	"github.com/dohyun/jumble/internal/store"
	"github.com/dohyun/jumble/internal/tts"
)

type generateRequest struct {
	Difficulty  string `json:"difficulty" binding:"required"`
	Environment string `json:"environment" binding:"required"`
	Count       int    `json:"count"`
}

// handleGenerateSentences produces a scrambled sentence set without a
// session, for clients that manage quiz flow themselves.
func (s *Server) handleGenerateSentences(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	difficulty, err := sentencegen.ParseDifficulty(req.Difficulty)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	sentences, err := s.generateWithFallback(c.Request.Context(), sentencegen.GenerateInput{
		Difficulty:  difficulty,
		Environment: req.Environment,
		Count:       req.Count,
	})
	if err != nil {
		errorJSON(c, http.StatusBadGateway, "sentence generation unavailable: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"difficulty":  string(difficulty),
		"environment": req.Environment,
		"sentences":   sentences,
	})
}

// generateWithFallback asks the generator first and falls back to the
// sentence cache when the generator is missing or failing. Fresh
// generations are written back to the cache; a write failure only logs.
func (s *Server) generateWithFallback(ctx context.Context, input sentencegen.GenerateInput) ([]sentencegen.Sentence, error) {
	if s.opts.Generator != nil {
		sentences, err := s.opts.Generator.Generate(ctx, input)
		if err == nil {
			s.cacheSentences(ctx, input, sentences)
			return sentences, nil
		}
		s.log.Warn("sentence generation failed, trying cache",
			"difficulty", string(input.Difficulty), "error", err)
	}

	if s.opts.Cache == nil {
		return nil, errors.New("no generator configured")
	}

	count := input.Count
	if count <= 0 {
		count = s.opts.Config.SentenceCount
	}
	cached, err := s.opts.Cache.Sample(ctx, string(input.Difficulty), input.Environment, count)
	if err != nil || len(cached) == 0 {
		return nil, errors.New("generator failed and sentence cache is empty")
	}

	sentences := make([]sentencegen.Sentence, 0, len(cached))
	for _, row := range cached {
		sentences = append(sentences, sentencegen.NewSentence(row.Sentence, row.Korean))
	}
	return sentences, nil
}

func (s *Server) cacheSentences(ctx context.Context, input sentencegen.GenerateInput, sentences []sentencegen.Sentence) {
	if s.opts.Cache == nil {
		return
	}
	rows := make([]store.SentenceCache, 0, len(sentences))
	for _, sent := range sentences {
		rows = append(rows, store.SentenceCache{
			Sentence:    sent.Original,
			Korean:      sent.Korean,
			Difficulty:  string(input.Difficulty),
			Environment: input.Environment,
		})
	}
	if err := s.opts.Cache.SaveBatch(ctx, rows); err != nil {
		s.log.Warn("sentence cache write failed", "error", err)
	}
}

// handleAttemptStatus reports today's quota for a user.
func (s *Server) handleAttemptStatus(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		errorJSON(c, http.StatusBadRequest, "user_id is required")
		return
	}
	c.JSON(http.StatusOK, s.opts.Attempts.Status(c.Request.Context(), userID))
}

type reserveRequest struct {
	UserID         string `json:"user_id" binding:"required"`
	Difficulty     string `json:"difficulty" binding:"required"`
	Environment    string `json:"environment" binding:"required"`
	TotalQuestions int    `json:"total_questions"`
}

// handleReserveAttempt consumes one daily attempt slot without creating
// a server-side session.
func (s *Server) handleReserveAttempt(c *gin.Context) {
	var req reserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	difficulty, err := sentencegen.ParseDifficulty(req.Difficulty)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.opts.Attempts.CheckAndReserve(
		c.Request.Context(), req.UserID, string(difficulty), req.Environment, req.TotalQuestions)
	if err != nil {
		var quota *attempts.ErrQuotaExceeded
		if errors.As(err, &quota) {
			errorJSON(c, http.StatusTooManyRequests, quota.Error())
			return
		}
		errorJSON(c, http.StatusInternalServerError, "reserve attempt: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"attempt":            res.Attempt,
		"remaining_attempts": res.Remaining,
	})
}

// handleGetProgress returns the user's score rows across difficulties.
func (s *Server) handleGetProgress(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		errorJSON(c, http.StatusBadRequest, "user_id is required")
		return
	}

	rows, err := s.opts.Ranking.Progress(c.Request.Context(), userID)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "load progress: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": rows})
}

type accumulateRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
	Score      int    `json:"score"`
}

// handleAccumulateProgress adds a score delta to the user's ledger row.
func (s *Server) handleAccumulateProgress(c *gin.Context) {
	var req accumulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	difficulty, err := sentencegen.ParseDifficulty(req.Difficulty)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.opts.Ranking.Accumulate(c.Request.Context(), req.UserID, difficulty, req.Score)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "accumulate: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleRanking returns the leaderboard for one difficulty, or for all
// difficulties when none is given. An unknown user_id yields null rank.
func (s *Server) handleRanking(c *gin.Context) {
	userID := c.Query("user_id")

	if raw := c.Query("difficulty"); raw != "" {
		difficulty, err := sentencegen.ParseDifficulty(raw)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err.Error())
			return
		}
		entries, userRank, err := s.opts.Ranking.Rank(c.Request.Context(), difficulty, userID)
		if err != nil {
			errorJSON(c, http.StatusInternalServerError, "ranking: "+err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"difficulty": string(difficulty),
			"rankings":   entries,
			"user_rank":  userRank,
		})
		return
	}

	boards, ranks, err := s.opts.Ranking.RankAll(c.Request.Context(), userID)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "ranking: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rankings":   boards,
		"user_ranks": ranks,
	})
}

type analyzeRequest struct {
	CorrectAnswer string `json:"correct_answer" binding:"required"`
	UserAnswer    string `json:"user_answer" binding:"required"`
	Difficulty    string `json:"difficulty"`
	Environment   string `json:"environment"`
}

// handleAnalyzeAnswer returns Korean advisory feedback on a wrong
// reconstruction. It never changes the stored correctness.
func (s *Server) handleAnalyzeAnswer(c *gin.Context) {
	if s.opts.Feedback == nil {
		errorJSON(c, http.StatusServiceUnavailable, "answer analysis is not configured")
		return
	}

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	analysis, err := s.opts.Feedback.Analyze(c.Request.Context(), feedback.Input{
		CorrectAnswer: req.CorrectAnswer,
		UserAnswer:    req.UserAnswer,
		Difficulty:    req.Difficulty,
		Environment:   req.Environment,
	})
	if err != nil {
		errorJSON(c, http.StatusBadGateway, "analyze answer: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// handleTTS returns playback URLs for a sentence.
func (s *Server) handleTTS(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		errorJSON(c, http.StatusBadRequest, "text is required")
		return
	}
	lang := c.DefaultQuery("lang", tts.DefaultLanguage)

	urls := tts.URLs(text, lang)
	if len(urls) == 0 {
		errorJSON(c, http.StatusInternalServerError, "could not build tts url")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":  urls[0],
		"urls": urls,
	})
}
