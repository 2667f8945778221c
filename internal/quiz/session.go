package quiz

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dohyun/jumble/internal/sentencegen"
)

// Phase is the session's current interaction phase.
type Phase int

const (
	// PhaseAwaitingAnswer means the current sentence has no evaluated
	// answer yet.
	PhaseAwaitingAnswer Phase = iota

	// PhaseShowingFeedback means the current sentence was evaluated and
	// the learner is looking at the result.
	PhaseShowingFeedback

	// PhaseCompleted is terminal: every sentence has been evaluated and
	// the final advance happened.
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingAnswer:
		return "awaiting_answer"
	case PhaseShowingFeedback:
		return "showing_feedback"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

var (
	// ErrAlreadyAnswered rejects a second submit for the same sentence.
	// Some clients auto-submit when all tiles are placed and also wire a
	// confirm button; only the first submission may score.
	ErrAlreadyAnswered = errors.New("answer already submitted for this sentence")

	// ErrNoFeedback rejects an advance before the current sentence was
	// evaluated.
	ErrNoFeedback = errors.New("current sentence has not been answered")

	// ErrAtStart rejects a retreat from the first sentence.
	ErrAtStart = errors.New("already at the first sentence")

	// ErrCompleted rejects any transition on a finished session.
	ErrCompleted = errors.New("session is completed")
)

// Result records one evaluated answer.
type Result struct {
	IsCorrect bool   `json:"is_correct"`
	Submitted string `json:"submitted_text"`
	Canonical string `json:"canonical_text"`
}

// Summary is the outcome of a completed session.
type Summary struct {
	CorrectCount   int `json:"correct_count"`
	TotalQuestions int `json:"total_questions"`
}

// Session drives one learner through a fixed, ordered sentence sequence:
// one answer per sentence, feedback locked in before advancing. It is
// safe for concurrent use; transitions serialize on an internal mutex.
type Session struct {
	ID          string
	UserID      string
	Difficulty  sentencegen.Difficulty
	Environment string
	Sentences   []sentencegen.Sentence
	CreatedAt   time.Time

	mu           sync.Mutex
	currentIndex int
	phase        Phase
	answers      map[int]string
	results      map[int]Result
}

// NewSession creates an in-progress session positioned at sentence 0.
func NewSession(userID string, difficulty sentencegen.Difficulty, environment string, sentences []sentencegen.Sentence) *Session {
	return &Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		Difficulty:  difficulty,
		Environment: environment,
		Sentences:   sentences,
		CreatedAt:   time.Now(),
		phase:       PhaseAwaitingAnswer,
		answers:     make(map[int]string),
		results:     make(map[int]Result),
	}
}

// SubmitAnswer evaluates text against the current sentence and moves to
// feedback. Valid only while awaiting an answer; re-submission for a
// sentence that already has a result never re-scores.
func (s *Session) SubmitAnswer(text string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseCompleted {
		return Result{}, ErrCompleted
	}
	if s.phase == PhaseShowingFeedback {
		return Result{}, ErrAlreadyAnswered
	}
	if _, done := s.results[s.currentIndex]; done {
		return Result{}, ErrAlreadyAnswered
	}

	canonical := s.Sentences[s.currentIndex].Original
	res := Result{
		IsCorrect: Evaluate(canonical, text),
		Submitted: text,
		Canonical: canonical,
	}
	s.answers[s.currentIndex] = text
	s.results[s.currentIndex] = res
	s.phase = PhaseShowingFeedback
	return res, nil
}

// Advance moves past the current sentence. Valid only while showing
// feedback. On the last sentence it completes the session and returns
// the summary; otherwise the returned summary is nil.
func (s *Session) Advance() (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseCompleted {
		return nil, ErrCompleted
	}
	if s.phase != PhaseShowingFeedback {
		return nil, ErrNoFeedback
	}

	if s.currentIndex == len(s.Sentences)-1 {
		s.phase = PhaseCompleted
		sum := s.summaryLocked()
		return &sum, nil
	}

	s.currentIndex++
	if _, done := s.results[s.currentIndex]; done {
		s.phase = PhaseShowingFeedback
	} else {
		s.phase = PhaseAwaitingAnswer
	}
	return nil, nil
}

// Retreat steps back one sentence, restoring its prior answer state:
// feedback if that sentence was already evaluated, otherwise awaiting.
func (s *Session) Retreat() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseCompleted {
		return ErrCompleted
	}
	if s.currentIndex == 0 {
		return ErrAtStart
	}

	s.currentIndex--
	if _, done := s.results[s.currentIndex]; done {
		s.phase = PhaseShowingFeedback
	} else {
		s.phase = PhaseAwaitingAnswer
	}
	return nil
}

// CurrentIndex returns the index of the sentence in play.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentIndex
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Answer returns the submitted answer for index, if any.
func (s *Session) Answer(index int) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.answers[index]
	return a, ok
}

// ResultAt returns the evaluated result for index, if any.
func (s *Session) ResultAt(index int) (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.results[index]
	return r, ok
}

// Summary reports correct and total counts so far.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() Summary {
	correct := 0
	for _, r := range s.results {
		if r.IsCorrect {
			correct++
		}
	}
	return Summary{
		CorrectCount:   correct,
		TotalQuestions: len(s.Sentences),
	}
}
