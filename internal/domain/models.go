package domain

import "time"

// Answer represents one selectable choice of a question. Exactly one answer per
// question carries IsCorrect; the admin workflow enforces that, quiz-time code
// only reads it.
type Answer struct {
	ID        int    `json:"id,omitempty"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
	Position  int    `json:"position"`
}

// Question models an MCQ question as served by the backend. Position defines
// presentation order and is unique within the published set.
type Question struct {
	ID        int      `json:"id,omitempty"`
	Title     string   `json:"title"`
	Text      string   `json:"text"`
	Position  int      `json:"position"`
	Image     string   `json:"image,omitempty"`
	Published bool     `json:"published,omitempty"`
	Answers   []Answer `json:"answers"`
}

// CorrectAnswer returns the answer flagged correct, or false when none is.
func (q Question) CorrectAnswer() (Answer, bool) {
	for _, a := range q.Answers {
		if a.IsCorrect {
			return a, true
		}
	}
	return Answer{}, false
}

// Session is one player's quiz attempt: the name they entered, the answer IDs
// they submitted in question order, and the last computed score.
type Session struct {
	PlayerName string `json:"playerName"`
	Answers    []int  `json:"answers"`
	Score      int    `json:"score"`
}

// Summary is the frozen result of a completed session.
type Summary struct {
	CorrectCount    int `json:"correctCount"`
	TotalQuestions  int `json:"totalQuestions"`
	Score           int `json:"score"`
	AccuracyPercent int `json:"accuracyPercent"`
}

// Participation is the server-owned record of a completed session.
type Participation struct {
	PlayerName string    `json:"playerName"`
	Answers    []int     `json:"answers"`
	Score      int       `json:"score"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// ScoreEntry is one row of the public scoreboard.
type ScoreEntry struct {
	Player    string `json:"player"`
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	CreatedAt string `json:"created_at,omitempty"`
}

// QuizInfo is the lightweight quiz metadata the backend exposes to anonymous
// visitors.
type QuizInfo struct {
	Size int `json:"size"`
}
