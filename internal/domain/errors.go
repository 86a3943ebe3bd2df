package domain

import "errors"

var (
	// ErrEmptyQuestionSet is returned when a quiz is started with no questions.
	ErrEmptyQuestionSet = errors.New("empty question set")
	// ErrAlreadyAnswered is returned when the current question is answered twice.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrNotAnswered is returned when advancing past an unanswered question.
	ErrNotAnswered = errors.New("current question not answered")
	// ErrInvalidState is returned when an engine operation is called outside the
	// state it is valid in.
	ErrInvalidState = errors.New("invalid quiz state")
	// ErrQuestionNotFound indicates a requested question ID is unknown.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrNoQuestions indicates the backend returned no playable questions.
	ErrNoQuestions = errors.New("no questions available")
)
