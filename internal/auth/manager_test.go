package auth_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Kormazd/DevWeb/internal/api"
	"github.com/Kormazd/DevWeb/internal/auth"
	"github.com/Kormazd/DevWeb/internal/infra/memory"
	"github.com/Kormazd/DevWeb/internal/store"
)

type stubGateway struct {
	result api.Result
}

func (g *stubGateway) Login(_ context.Context, _ string) api.Result {
	return g.result
}

type recordingNavigator struct {
	admin     bool
	redirects []string
}

func (n *recordingNavigator) OnAdminScreen() bool {
	return n.admin
}

func (n *recordingNavigator) RedirectToLogin(reason string) {
	n.redirects = append(n.redirects, reason)
}

type fixture struct {
	kv      *memory.KV
	nav     *recordingNavigator
	manager *auth.Manager
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		kv:  memory.NewKV(),
		nav: &recordingNavigator{admin: true},
		now: time.Unix(1700000000, 0),
	}
	f.manager = auth.NewManager(f.kv, f.nav, auth.WithClock(func() time.Time { return f.now }))
	return f
}

func (f *fixture) holdToken(t *testing.T) {
	t.Helper()
	if err := f.kv.Set(context.Background(), store.TokenKey, "tok-123"); err != nil {
		t.Fatalf("seed token: %v", err)
	}
}

func TestLoginStoresToken(t *testing.T) {
	f := newFixture(t)
	f.manager.Bind(&stubGateway{result: api.Result{
		Status: 200,
		Data:   json.RawMessage(`{"token":"tok-abc"}`),
	}})

	if !f.manager.Login(context.Background(), "secret") {
		t.Fatalf("expected login to succeed")
	}
	if !f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("expected credential to be held after login")
	}
	if got := f.manager.Token(context.Background()); got != "tok-abc" {
		t.Fatalf("expected stored token, got %q", got)
	}
}

func TestLoginFailuresReturnFalse(t *testing.T) {
	cases := []struct {
		name   string
		result api.Result
	}{
		{"rejected", api.Result{Status: 401, Data: json.RawMessage(`{"error":"Unauthorized"}`)}},
		{"no token in payload", api.Result{Status: 200, Data: json.RawMessage(`{}`)}},
		{"transport failure", api.Result{Status: 500, Data: json.RawMessage(`{"error":"Request failed"}`)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.manager.Bind(&stubGateway{result: tc.result})
			if f.manager.Login(context.Background(), "secret") {
				t.Fatalf("expected login to fail")
			}
			if f.manager.IsAuthenticated(context.Background()) {
				t.Fatalf("failed login must not store a credential")
			}
		})
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newFixture(t)
	f.holdToken(t)
	f.manager.Logout(context.Background())
	f.manager.Logout(context.Background())
	if f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("expected credential cleared")
	}
}

func TestAuthErrorClearsImmediately(t *testing.T) {
	f := newFixture(t)
	f.holdToken(t)

	// A run of successes first: the failure counter must be irrelevant here.
	f.manager.OnResponse(api.Outcome{Status: 200})
	f.manager.OnResponse(api.Outcome{Status: 401})

	if f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("401 must clear the credential immediately")
	}
	if len(f.nav.redirects) != 1 || f.nav.redirects[0] != auth.ReasonUnauthorized {
		t.Fatalf("expected one unauthorized redirect, got %v", f.nav.redirects)
	}
}

func TestServerFailuresTripAfterThree(t *testing.T) {
	f := newFixture(t)
	f.holdToken(t)

	f.manager.OnResponse(api.Outcome{Status: 503})
	f.manager.OnResponse(api.Outcome{Transport: true})
	if !f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("credential cleared before the third failure")
	}
	if len(f.nav.redirects) != 0 {
		t.Fatalf("redirect fired before the third failure: %v", f.nav.redirects)
	}

	f.manager.OnResponse(api.Outcome{Status: 500})
	if f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("third consecutive failure must clear the credential")
	}
	if len(f.nav.redirects) != 1 || f.nav.redirects[0] != auth.ReasonServerOff {
		t.Fatalf("expected one server_off redirect, got %v", f.nav.redirects)
	}
}

func TestSuccessResetsFailureCounter(t *testing.T) {
	f := newFixture(t)
	f.holdToken(t)

	f.manager.OnResponse(api.Outcome{Status: 500})
	f.manager.OnResponse(api.Outcome{Status: 500})
	f.manager.OnResponse(api.Outcome{Status: 200})
	f.manager.OnResponse(api.Outcome{Status: 500})
	f.manager.OnResponse(api.Outcome{Status: 500})

	if !f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("counter was not reset by the intervening success")
	}
}

func TestLoginOutcomesAreExempt(t *testing.T) {
	f := newFixture(t)
	f.holdToken(t)

	for i := 0; i < 5; i++ {
		f.manager.OnResponse(api.Outcome{Status: 401, Login: true})
		f.manager.OnResponse(api.Outcome{Status: 500, Login: true})
	}
	if !f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("login outcomes must not trigger revocation")
	}
}

func TestClientErrorsLeaveStateAlone(t *testing.T) {
	f := newFixture(t)
	f.holdToken(t)

	f.manager.OnResponse(api.Outcome{Status: 404})
	f.manager.OnResponse(api.Outcome{Status: 422})
	if !f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("plain 4xx must not revoke the credential")
	}
	if len(f.nav.redirects) != 0 {
		t.Fatalf("plain 4xx must not redirect: %v", f.nav.redirects)
	}
}

func TestForcedLogoutCooldown(t *testing.T) {
	f := newFixture(t)
	f.holdToken(t)

	// Several in-flight requests failing around the same moment.
	f.manager.OnResponse(api.Outcome{Status: 401})
	f.holdToken(t) // pretend a racing handler still sees a stale token
	f.manager.OnResponse(api.Outcome{Status: 401})
	f.holdToken(t)
	f.manager.OnResponse(api.Outcome{Status: 403})

	if len(f.nav.redirects) != 1 {
		t.Fatalf("expected exactly one redirect within the cooldown, got %d", len(f.nav.redirects))
	}

	// After the cooldown a new forced logout may fire again.
	f.now = f.now.Add(time.Second)
	f.holdToken(t)
	f.manager.OnResponse(api.Outcome{Status: 401})
	if len(f.nav.redirects) != 2 {
		t.Fatalf("expected a second redirect after the cooldown, got %d", len(f.nav.redirects))
	}
}

func TestNoRedirectOffAdminScreen(t *testing.T) {
	f := newFixture(t)
	f.nav.admin = false
	f.holdToken(t)

	f.manager.OnResponse(api.Outcome{Status: 401})

	if f.manager.IsAuthenticated(context.Background()) {
		t.Fatalf("credential must still be cleared off the admin screen")
	}
	if len(f.nav.redirects) != 0 {
		t.Fatalf("no redirect expected off the admin screen, got %v", f.nav.redirects)
	}
}

func TestNoRevocationWithoutCredential(t *testing.T) {
	f := newFixture(t)

	f.manager.OnResponse(api.Outcome{Status: 401})
	f.manager.OnResponse(api.Outcome{Status: 500})
	f.manager.OnResponse(api.Outcome{Status: 500})
	f.manager.OnResponse(api.Outcome{Status: 500})

	if len(f.nav.redirects) != 0 {
		t.Fatalf("policy must be inert without a held credential: %v", f.nav.redirects)
	}
}
