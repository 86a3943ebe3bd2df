package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Kormazd/DevWeb/internal/domain"
)

// Well-known keys on the durable surface.
const (
	TokenKey      = "quiz_admin_token"
	PlayerNameKey = "playerName"
	AnswersKey    = "answers"
	ScoreKey      = "lastScore"
)

// KV is the durable string-keyed surface client state lives on (in-memory,
// state file, Redis, etc).
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SessionStore persists the player's quiz attempt so a process restart does
// not lose state mid-quiz.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

func (s *SessionStore) SavePlayerName(ctx context.Context, name string) error {
	return s.kv.Set(ctx, PlayerNameKey, name)
}

// PlayerName returns the stored player name, empty when none was saved.
func (s *SessionStore) PlayerName(ctx context.Context) (string, error) {
	name, _, err := s.kv.Get(ctx, PlayerNameKey)
	return name, err
}

func (s *SessionStore) SaveAnswers(ctx context.Context, answers []int) error {
	if answers == nil {
		answers = []int{}
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}
	return s.kv.Set(ctx, AnswersKey, string(raw))
}

func (s *SessionStore) Answers(ctx context.Context) ([]int, error) {
	raw, ok, err := s.kv.Get(ctx, AnswersKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []int{}, nil
	}
	var answers []int
	if err := json.Unmarshal([]byte(raw), &answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return answers, nil
}

func (s *SessionStore) SaveScore(ctx context.Context, score int) error {
	return s.kv.Set(ctx, ScoreKey, strconv.Itoa(score))
}

// Score returns the last stored score, zero when none was saved.
func (s *SessionStore) Score(ctx context.Context) (int, error) {
	raw, ok, err := s.kv.Get(ctx, ScoreKey)
	if err != nil || !ok {
		return 0, err
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse score: %w", err)
	}
	return score, nil
}

// SaveSession writes a full attempt snapshot.
func (s *SessionStore) SaveSession(ctx context.Context, sess domain.Session) error {
	if err := s.SavePlayerName(ctx, sess.PlayerName); err != nil {
		return err
	}
	if err := s.SaveAnswers(ctx, sess.Answers); err != nil {
		return err
	}
	return s.SaveScore(ctx, sess.Score)
}

// Session reads the full attempt snapshot back.
func (s *SessionStore) Session(ctx context.Context) (domain.Session, error) {
	name, err := s.PlayerName(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	answers, err := s.Answers(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	score, err := s.Score(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	return domain.Session{PlayerName: name, Answers: answers, Score: score}, nil
}

// Clear removes the attempt snapshot. The credential key is owned by the auth
// manager and left untouched.
func (s *SessionStore) Clear(ctx context.Context) error {
	for _, key := range []string{PlayerNameKey, AnswersKey, ScoreKey} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
