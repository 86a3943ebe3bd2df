package auth

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Kormazd/DevWeb/internal/api"
	"github.com/Kormazd/DevWeb/internal/store"
)

// Forced-logout reason tags surfaced to the login screen.
const (
	ReasonUnauthorized = "unauthorized"
	ReasonServerOff    = "server_off"
)

const (
	maxServerFailures = 3
	logoutCooldown    = 500 * time.Millisecond
)

// Navigator abstracts the screen layer the manager redirects through. A
// forced logout navigates only while an admin-gated screen is active;
// otherwise the credential is cleared silently.
type Navigator interface {
	OnAdminScreen() bool
	RedirectToLogin(reason string)
}

type loginGateway interface {
	Login(ctx context.Context, password string) api.Result
}

// Manager owns the bearer credential: issuance via login, storage on the
// durable KV surface, and revocation, either explicit or forced by the
// response-observer policy. It implements api.TokenSource and
// api.ResponseObserver.
type Manager struct {
	kv      store.KV
	nav     Navigator
	gateway loginGateway
	clock   func() time.Time
	log     *zap.Logger

	mu         sync.Mutex
	failures   int
	lastForced time.Time
}

type Option func(*Manager)

func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithClock injects a deterministic clock for cooldown tests.
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) { m.clock = clock }
}

func NewManager(kv store.KV, nav Navigator, opts ...Option) *Manager {
	m := &Manager{
		kv:    kv,
		nav:   nav,
		clock: time.Now,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bind wires the gateway used for the login call. Construction order forces
// this to happen after the gateway exists, since the gateway itself is built
// with the manager as token source and observer.
func (m *Manager) Bind(gw loginGateway) {
	m.gateway = gw
}

// Login exchanges the password for a credential. It returns false on any
// failure and never panics past its boundary; this is the only path that
// creates a credential.
func (m *Manager) Login(ctx context.Context, password string) bool {
	if m.gateway == nil {
		return false
	}
	res := m.gateway.Login(ctx, password)
	if !res.OK() {
		return false
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := res.Decode(&payload); err != nil || payload.Token == "" {
		return false
	}
	if err := m.kv.Set(ctx, store.TokenKey, payload.Token); err != nil {
		m.log.Warn("store credential", zap.Error(err))
		return false
	}
	m.mu.Lock()
	m.failures = 0
	m.mu.Unlock()
	return true
}

// Logout clears the credential unconditionally; safe to call when none is
// held.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.kv.Delete(ctx, store.TokenKey); err != nil {
		m.log.Warn("clear credential", zap.Error(err))
	}
}

// IsAuthenticated reports credential possession, not validity; an expired
// token reports true until a request is rejected.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	return m.Token(ctx) != ""
}

// Token implements api.TokenSource.
func (m *Manager) Token(ctx context.Context) string {
	token, _, err := m.kv.Get(ctx, store.TokenKey)
	if err != nil {
		m.log.Warn("read credential", zap.Error(err))
		return ""
	}
	return token
}

// OnResponse implements api.ResponseObserver. A 401/403 while a credential is
// held revokes it immediately; unreachable-server and 5xx outcomes revoke it
// only after maxServerFailures in a row, tolerating transient blips. Any
// success resets the failure counter. The login call is exempt.
func (m *Manager) OnResponse(outcome api.Outcome) {
	if outcome.Login {
		return
	}
	ctx := context.Background()

	if outcome.Status >= 200 && outcome.Status < 300 {
		m.mu.Lock()
		m.failures = 0
		m.mu.Unlock()
		return
	}

	if m.Token(ctx) == "" {
		return
	}

	switch {
	case outcome.Status == 401 || outcome.Status == 403:
		m.forceLogout(ctx, ReasonUnauthorized)
	case outcome.Transport || outcome.Status >= 500:
		m.mu.Lock()
		m.failures++
		tripped := m.failures >= maxServerFailures
		if tripped {
			m.failures = 0
		}
		m.mu.Unlock()
		if tripped {
			m.forceLogout(ctx, ReasonServerOff)
		}
	}
}

// forceLogout clears the credential and redirects at most once per cooldown
// window, so several in-flight failures cannot cause a redirect storm.
func (m *Manager) forceLogout(ctx context.Context, reason string) {
	now := m.clock()
	m.mu.Lock()
	if !m.lastForced.IsZero() && now.Sub(m.lastForced) < logoutCooldown {
		m.mu.Unlock()
		return
	}
	m.lastForced = now
	m.mu.Unlock()

	if err := m.kv.Delete(ctx, store.TokenKey); err != nil {
		m.log.Warn("clear credential", zap.Error(err))
	}
	m.log.Info("forced logout", zap.String("reason", reason))
	if m.nav != nil && m.nav.OnAdminScreen() {
		m.nav.RedirectToLogin(reason)
	}
}
