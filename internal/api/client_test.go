package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Kormazd/DevWeb/internal/api"
	"github.com/Kormazd/DevWeb/internal/domain"
)

type staticTokens struct {
	token string
}

func (s staticTokens) Token(_ context.Context) string {
	return s.token
}

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []api.Outcome
}

func (o *recordingObserver) OnResponse(outcome api.Outcome) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) last(t *testing.T) api.Outcome {
	t.Helper()
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.outcomes) == 0 {
		t.Fatalf("no outcome recorded")
	}
	return o.outcomes[len(o.outcomes)-1]
}

func TestCallNormalizesEveryFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"fine":true}`))
		case "/client-error":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Not found"}`))
		case "/server-error":
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
		case "/garbage":
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>not json</html>`))
		}
	}))
	defer server.Close()

	client := api.New(server.URL)

	cases := []struct {
		resource   string
		wantStatus int
		wantError  string
	}{
		{"/ok", 200, "Request failed"},
		{"/client-error", 404, "Not found"},
		{"/server-error", 500, "boom"},
		{"/garbage", 502, "Request failed"},
	}
	for _, tc := range cases {
		res := client.Call(context.Background(), http.MethodGet, tc.resource, nil)
		if res.Status != tc.wantStatus {
			t.Fatalf("%s: status = %d, want %d", tc.resource, res.Status, tc.wantStatus)
		}
		if !res.OK() && res.ErrorMessage() != tc.wantError {
			t.Fatalf("%s: error = %q, want %q", tc.resource, res.ErrorMessage(), tc.wantError)
		}
	}
}

func TestCallSurvivesUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.NewServeMux())
	server.Close() // nothing listens here anymore

	observer := &recordingObserver{}
	client := api.New(server.URL, api.WithObserver(observer), api.WithTimeout(time.Second))

	res := client.Call(context.Background(), http.MethodGet, "/questions", nil)
	if res.Status != http.StatusInternalServerError {
		t.Fatalf("expected fallback 500, got %d", res.Status)
	}
	if res.ErrorMessage() != "Request failed" {
		t.Fatalf("expected fallback payload, got %q", res.ErrorMessage())
	}
	outcome := observer.last(t)
	if !outcome.Transport || outcome.Status != 0 {
		t.Fatalf("expected transport outcome, got %+v", outcome)
	}
}

func TestBearerAttachedWhenHeld(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := api.New(server.URL, api.WithTokenSource(staticTokens{token: "tok-1"}))
	client.Call(context.Background(), http.MethodGet, "/questions", nil)
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}

	client = api.New(server.URL, api.WithTokenSource(staticTokens{}))
	client.Call(context.Background(), http.MethodGet, "/questions", nil)
	if gotAuth != "" {
		t.Fatalf("expected no bearer header without a token, got %q", gotAuth)
	}
}

func TestLoginSkipsBearerAndMarksOutcome(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer server.Close()

	observer := &recordingObserver{}
	client := api.New(server.URL,
		api.WithTokenSource(staticTokens{token: "stale"}),
		api.WithObserver(observer),
	)

	res := client.Login(context.Background(), "wrong")
	if res.Status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Status)
	}
	if gotAuth != "" {
		t.Fatalf("login must not attach the held token, got %q", gotAuth)
	}
	outcome := observer.last(t)
	if !outcome.Login {
		t.Fatalf("login outcome not marked: %+v", outcome)
	}
}

func TestObserverSeesEveryOutcome(t *testing.T) {
	statuses := []int{200, 404, 500}
	i := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(statuses[i%len(statuses)])
		w.Write([]byte(`{}`))
		i++
	}))
	defer server.Close()

	observer := &recordingObserver{}
	client := api.New(server.URL, api.WithObserver(observer))
	for range statuses {
		client.Call(context.Background(), http.MethodGet, "/health", nil)
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()
	if len(observer.outcomes) != len(statuses) {
		t.Fatalf("expected %d outcomes, got %d", len(statuses), len(observer.outcomes))
	}
	for idx, outcome := range observer.outcomes {
		if outcome.Status != statuses[idx] {
			t.Fatalf("outcome %d: status %d, want %d", idx, outcome.Status, statuses[idx])
		}
	}
}

func TestQuestionsDecodeAndPositionFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/questions" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("position") == "2" {
			json.NewEncoder(w).Encode([]domain.Question{{ID: 2, Title: "second", Position: 2}})
			return
		}
		json.NewEncoder(w).Encode([]domain.Question{
			{ID: 1, Title: "first", Position: 1},
			{ID: 2, Title: "second", Position: 2},
		})
	}))
	defer server.Close()

	client := api.New(server.URL)

	questions, res := client.Questions(context.Background(), nil)
	if !res.OK() || len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d (status %d)", len(questions), res.Status)
	}

	position := 2
	questions, res = client.Questions(context.Background(), &position)
	if !res.OK() || len(questions) != 1 || questions[0].ID != 2 {
		t.Fatalf("position filter failed: %+v (status %d)", questions, res.Status)
	}
}

func TestUploadImageSendsMultipart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"bad multipart"}`))
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"missing file"}`))
			return
		}
		defer file.Close()
		json.NewEncoder(w).Encode(api.UploadedImage{URL: "/images/" + header.Filename})
	}))
	defer server.Close()

	client := api.New(server.URL)
	uploaded, res := client.UploadImage(context.Background(), "pekka.png", strings.NewReader("fake image bytes"))
	if !res.OK() {
		t.Fatalf("upload failed: status %d", res.Status)
	}
	if uploaded.URL != "/images/pekka.png" {
		t.Fatalf("unexpected upload URL %q", uploaded.URL)
	}
}
