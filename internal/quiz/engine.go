package quiz

import (
	"math"

	"github.com/Kormazd/DevWeb/internal/domain"
)

// PointsPerCorrect is the fixed reward for a correctly answered question.
const PointsPerCorrect = 100

// State enumerates the engine lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	default:
		return "not-started"
	}
}

// SubmitResult tells the caller how a submission was graded and whether the
// next advance finishes the quiz, so presentation can label its control
// without querying state twice.
type SubmitResult struct {
	Correct        bool
	IsLastQuestion bool
}

// Engine drives one quiz playthrough: question sequencing, answer grading and
// result summarization. It performs no I/O; questions are supplied by the
// caller and the accumulated session can be snapshotted for persistence.
//
// Submit/advance for one question must be serialized by the caller; the engine
// rejects out-of-order calls rather than racing.
type Engine struct {
	state      State
	questions  []domain.Question
	cursor     int
	answered   bool
	score      int
	submitted  []int
	playerName string
}

func New() *Engine {
	return &Engine{state: StateNotStarted}
}

// SetPlayerName records the player identity carried in session snapshots.
func (e *Engine) SetPlayerName(name string) {
	e.playerName = name
}

// State reports the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Start begins a fresh playthrough over the given questions.
func (e *Engine) Start(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrEmptyQuestionSet
	}
	e.questions = questions
	e.cursor = 0
	e.answered = false
	e.score = 0
	e.submitted = e.submitted[:0]
	e.state = StateInProgress
	return nil
}

// Resume rebuilds an interrupted playthrough from a persisted session
// snapshot. Answers are replayed in question order to recompute the score; a
// snapshot covering every question lands directly in the completed state.
func (e *Engine) Resume(questions []domain.Question, sess domain.Session) error {
	if err := e.Start(questions); err != nil {
		return err
	}
	if len(sess.Answers) > len(questions) {
		return domain.ErrInvalidState
	}
	e.playerName = sess.PlayerName
	for _, answerID := range sess.Answers {
		if _, err := e.SubmitAnswer(answerID); err != nil {
			return err
		}
		if err := e.Advance(); err != nil {
			return err
		}
	}
	return nil
}

// CurrentQuestion returns the question at the cursor.
func (e *Engine) CurrentQuestion() (domain.Question, error) {
	if e.state != StateInProgress {
		return domain.Question{}, domain.ErrInvalidState
	}
	return e.questions[e.cursor], nil
}

// SubmitAnswer grades answerID against the current question. Each question is
// graded exactly once; a re-submission fails with ErrAlreadyAnswered and has
// no side effect.
func (e *Engine) SubmitAnswer(answerID int) (SubmitResult, error) {
	if e.state != StateInProgress {
		return SubmitResult{}, domain.ErrInvalidState
	}
	if e.answered {
		return SubmitResult{}, domain.ErrAlreadyAnswered
	}

	correct := false
	if want, ok := e.questions[e.cursor].CorrectAnswer(); ok {
		correct = want.ID == answerID
	}
	if correct {
		e.score += PointsPerCorrect
	}
	e.submitted = append(e.submitted, answerID)
	e.answered = true

	return SubmitResult{
		Correct:        correct,
		IsLastQuestion: e.cursor == len(e.questions)-1,
	}, nil
}

// Advance moves to the next question, or completes the quiz when the cursor
// sits on the last one. The current question must have been answered first.
func (e *Engine) Advance() error {
	if e.state != StateInProgress {
		return domain.ErrInvalidState
	}
	if !e.answered {
		return domain.ErrNotAnswered
	}
	if e.cursor == len(e.questions)-1 {
		e.state = StateCompleted
		return nil
	}
	e.cursor++
	e.answered = false
	return nil
}

// Summary reports the final result of a completed playthrough. The correct
// count is recomputed from the submitted answers rather than trusted from the
// running score, so the two cannot drift apart silently.
func (e *Engine) Summary() (domain.Summary, error) {
	if e.state != StateCompleted {
		return domain.Summary{}, domain.ErrInvalidState
	}

	correct := 0
	for i, answerID := range e.submitted {
		if want, ok := e.questions[i].CorrectAnswer(); ok && want.ID == answerID {
			correct++
		}
	}
	total := len(e.questions)

	return domain.Summary{
		CorrectCount:    correct,
		TotalQuestions:  total,
		Score:           e.score,
		AccuracyPercent: int(math.Round(100 * float64(correct) / float64(total))),
	}, nil
}

// Session snapshots the accumulated attempt for persistence.
func (e *Engine) Session() domain.Session {
	answers := make([]int, len(e.submitted))
	copy(answers, e.submitted)
	return domain.Session{
		PlayerName: e.playerName,
		Answers:    answers,
		Score:      e.score,
	}
}

// Restart discards the session from any state.
func (e *Engine) Restart() {
	e.state = StateNotStarted
	e.questions = nil
	e.cursor = 0
	e.answered = false
	e.score = 0
	e.submitted = nil
}
