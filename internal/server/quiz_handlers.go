package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dohyun/jumble/internal/attempts"
	"github.com/dohyun/jumble/internal/quiz"
	"github.com/dohyun/jumble/internal/sentencegen"
)

type startQuizRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Difficulty  string `json:"difficulty" binding:"required"`
	Environment string `json:"environment" binding:"required"`
	Count       int    `json:"count"`
}

// handleStartQuiz reserves a daily attempt slot, generates a sentence
// set, and opens a session. The slot is consumed even if the learner
// abandons the quiz.
func (s *Server) handleStartQuiz(c *gin.Context) {
	var req startQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	difficulty, err := sentencegen.ParseDifficulty(req.Difficulty)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err.Error())
		return
	}

	count := req.Count
	if count <= 0 {
		count = s.opts.Config.SentenceCount
	}

	ctx := c.Request.Context()
	reservation, err := s.opts.Attempts.CheckAndReserve(
		ctx, req.UserID, string(difficulty), req.Environment, count)
	if err != nil {
		var quota *attempts.ErrQuotaExceeded
		if errors.As(err, &quota) {
			errorJSON(c, http.StatusTooManyRequests, quota.Error())
			return
		}
		errorJSON(c, http.StatusInternalServerError, "reserve attempt: "+err.Error())
		return
	}

	sentences, err := s.generateWithFallback(ctx, sentencegen.GenerateInput{
		Difficulty:  difficulty,
		Environment: req.Environment,
		Count:       count,
	})
	if err != nil {
		errorJSON(c, http.StatusBadGateway, "sentence generation unavailable: "+err.Error())
		return
	}

	session := quiz.NewSession(req.UserID, difficulty, req.Environment, sentences)
	s.opts.Sessions.Put(session)

	s.log.Info("quiz started",
		"session_id", session.ID,
		"user_id", req.UserID,
		"difficulty", string(difficulty),
		"sentences", len(sentences),
	)

	view := sessionView(session)
	view["remaining_attempts"] = reservation.Remaining
	c.JSON(http.StatusOK, view)
}

// handleGetQuiz returns the current state of a session.
func (s *Server) handleGetQuiz(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// handleSubmitAnswer evaluates the learner's reconstruction of the
// current sentence. Only the first submission per sentence scores.
func (s *Server) handleSubmitAnswer(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := session.SubmitAnswer(req.Answer)
	if err != nil {
		errorJSON(c, http.StatusConflict, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
		"phase":  session.Phase().String(),
	})
}

// handleAdvance moves past the current sentence. When the session
// completes, the correct count is added to the score ledger and the
// fresh rank is attached; a ledger or ranking failure is logged but
// never fails the response.
func (s *Server) handleAdvance(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}

	summary, err := session.Advance()
	if err != nil {
		errorJSON(c, http.StatusConflict, err.Error())
		return
	}

	if summary == nil {
		c.JSON(http.StatusOK, sessionView(session))
		return
	}

	resp := gin.H{
		"completed": true,
		"summary":   summary,
	}

	ctx := c.Request.Context()
	scored, err := s.opts.Ranking.Accumulate(ctx, session.UserID, session.Difficulty, summary.CorrectCount)
	if err != nil {
		s.log.Error("score accumulation failed after quiz completion",
			"session_id", session.ID, "user_id", session.UserID, "error", err)
	} else {
		resp["score"] = scored
		if _, rank, err := s.opts.Ranking.Rank(ctx, session.Difficulty, session.UserID); err != nil {
			s.log.Warn("rank refresh failed after quiz completion",
				"session_id", session.ID, "error", err)
		} else {
			resp["rank"] = rank
		}
	}

	c.JSON(http.StatusOK, resp)
}

// handleRetreat steps back one sentence.
func (s *Server) handleRetreat(c *gin.Context) {
	session, ok := s.lookupSession(c)
	if !ok {
		return
	}

	if err := session.Retreat(); err != nil {
		errorJSON(c, http.StatusConflict, err.Error())
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

func (s *Server) lookupSession(c *gin.Context) (*quiz.Session, bool) {
	session, err := s.opts.Sessions.Get(c.Param("id"))
	if err != nil {
		errorJSON(c, http.StatusNotFound, "quiz session not found")
		return nil, false
	}
	return session, true
}

// sessionView renders the learner-facing state of a session. The
// canonical sentence is withheld until its answer has been evaluated.
func sessionView(s *quiz.Session) gin.H {
	index := s.CurrentIndex()
	summary := s.Summary()

	view := gin.H{
		"session_id":      s.ID,
		"user_id":         s.UserID,
		"difficulty":      string(s.Difficulty),
		"environment":     s.Environment,
		"phase":           s.Phase().String(),
		"current_index":   index,
		"total_questions": summary.TotalQuestions,
		"correct_count":   summary.CorrectCount,
	}

	if s.Phase() == quiz.PhaseCompleted {
		return view
	}

	sentence := s.Sentences[index]
	item := gin.H{
		"index":          index,
		"korean":         sentence.Korean,
		"shuffled_words": sentence.ScrambledTokens,
		"word_count":     len(sentence.Tokens),
	}
	if result, answered := s.ResultAt(index); answered {
		item["result"] = result
	}
	view["sentence"] = item

	return view
}
