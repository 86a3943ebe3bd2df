package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/Kormazd/DevWeb/internal/domain"
)

// Typed wrappers over Call for the backend REST surface. Each returns the raw
// Result alongside the decoded value so callers can branch on status without
// re-parsing.

// Login exchanges the admin password for a bearer token. The login call never
// attaches a held credential and is exempt from the revocation policy.
func (c *Client) Login(ctx context.Context, password string) Result {
	return c.do(ctx, http.MethodPost, "/login", map[string]string{"password": password}, true)
}

func (c *Client) QuizInfo(ctx context.Context) (domain.QuizInfo, Result) {
	res := c.Call(ctx, http.MethodGet, "/quiz-info", nil)
	var info domain.QuizInfo
	if res.OK() {
		_ = res.Decode(&info)
	}
	return info, res
}

func (c *Client) Health(ctx context.Context) Result {
	return c.Call(ctx, http.MethodGet, "/health", nil)
}

// Questions lists questions in display order. A non-nil position filters to
// the question at that position.
func (c *Client) Questions(ctx context.Context, position *int) ([]domain.Question, Result) {
	resource := "/questions"
	if position != nil {
		resource = fmt.Sprintf("/questions?position=%d", *position)
	}
	res := c.Call(ctx, http.MethodGet, resource, nil)
	var questions []domain.Question
	if res.OK() {
		_ = res.Decode(&questions)
	}
	return questions, res
}

func (c *Client) Question(ctx context.Context, id int) (domain.Question, Result) {
	res := c.Call(ctx, http.MethodGet, fmt.Sprintf("/questions/%d", id), nil)
	var question domain.Question
	if res.OK() {
		_ = res.Decode(&question)
	}
	return question, res
}

func (c *Client) CreateQuestion(ctx context.Context, q domain.Question) (domain.Question, Result) {
	res := c.Call(ctx, http.MethodPost, "/questions", q)
	var created domain.Question
	if res.OK() {
		_ = res.Decode(&created)
	}
	return created, res
}

func (c *Client) UpdateQuestion(ctx context.Context, id int, q domain.Question) (domain.Question, Result) {
	res := c.Call(ctx, http.MethodPut, fmt.Sprintf("/questions/%d", id), q)
	var updated domain.Question
	if res.OK() {
		_ = res.Decode(&updated)
	}
	return updated, res
}

func (c *Client) DeleteQuestion(ctx context.Context, id int) Result {
	return c.Call(ctx, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil)
}

func (c *Client) SetPublished(ctx context.Context, id int, published bool) Result {
	return c.Call(ctx, http.MethodPut, fmt.Sprintf("/questions/%d/publish", id), map[string]bool{"published": published})
}

// ReorderQuestions rewrites display positions to match the given ID order.
func (c *Client) ReorderQuestions(ctx context.Context, ids []int) Result {
	return c.Call(ctx, http.MethodPost, "/questions/reorder", map[string][]int{"ids": ids})
}

func (c *Client) ExportQuestions(ctx context.Context) ([]domain.Question, Result) {
	res := c.Call(ctx, http.MethodGet, "/questions/export", nil)
	var questions []domain.Question
	if res.OK() {
		_ = res.Decode(&questions)
	}
	return questions, res
}

func (c *Client) ImportQuestions(ctx context.Context, questions []domain.Question, override bool) Result {
	resource := fmt.Sprintf("/questions/import?override=%t", override)
	return c.Call(ctx, http.MethodPost, resource, map[string][]domain.Question{"questions": questions})
}

func (c *Client) SaveParticipation(ctx context.Context, playerName string, answers []int) Result {
	return c.Call(ctx, http.MethodPost, "/participations", map[string]any{
		"playerName": playerName,
		"answers":    answers,
	})
}

func (c *Client) Participation(ctx context.Context, playerName string) (domain.Participation, Result) {
	res := c.Call(ctx, http.MethodGet, "/participations/"+url.PathEscape(playerName), nil)
	var participation domain.Participation
	if res.OK() {
		_ = res.Decode(&participation)
	}
	return participation, res
}

// Participations lists participation records, optionally bounded by from/to
// date strings as the backend understands them.
func (c *Client) Participations(ctx context.Context, from, to string) ([]domain.Participation, Result) {
	query := url.Values{}
	if from != "" {
		query.Set("from", from)
	}
	if to != "" {
		query.Set("to", to)
	}
	resource := "/participations"
	if encoded := query.Encode(); encoded != "" {
		resource += "?" + encoded
	}
	res := c.Call(ctx, http.MethodGet, resource, nil)
	var participations []domain.Participation
	if res.OK() {
		_ = res.Decode(&participations)
	}
	return participations, res
}

func (c *Client) PurgeParticipations(ctx context.Context) Result {
	return c.Call(ctx, http.MethodDelete, "/participations/all", nil)
}

func (c *Client) PostScore(ctx context.Context, player string, score, total int) Result {
	return c.Call(ctx, http.MethodPost, "/scores", map[string]any{
		"player": player,
		"score":  score,
		"total":  total,
	})
}

func (c *Client) Scores(ctx context.Context, limit int) ([]domain.ScoreEntry, Result) {
	res := c.Call(ctx, http.MethodGet, fmt.Sprintf("/scores?limit=%d", limit), nil)
	var entries []domain.ScoreEntry
	if res.OK() {
		_ = res.Decode(&entries)
	}
	return entries, res
}

// UploadedImage is the backend's answer to an image upload; one of URL or
// Path is set depending on the backend version.
type UploadedImage struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// UploadImage sends an image file as multipart form data.
func (c *Client) UploadImage(ctx context.Context, filename string, file io.Reader) (UploadedImage, Result) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err == nil {
		_, err = io.Copy(part, file)
	}
	if err == nil {
		err = writer.Close()
	}
	if err != nil {
		return UploadedImage{}, Result{Status: http.StatusInternalServerError, Data: fallbackPayload}
	}

	res := c.doRaw(ctx, http.MethodPost, "/upload-image", &buf, writer.FormDataContentType(), false)
	var uploaded UploadedImage
	if res.OK() {
		_ = res.Decode(&uploaded)
	}
	return uploaded, res
}

// LoadQuestions adapts the questions listing to a plain error-returning shape
// for cache layers.
func (c *Client) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	questions, res := c.Questions(ctx, nil)
	if !res.OK() {
		return nil, fmt.Errorf("list questions: status %d: %s", res.Status, res.ErrorMessage())
	}
	return questions, nil
}
