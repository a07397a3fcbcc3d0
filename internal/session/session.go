// Package session implements the client-side half of the session lifecycle:
// structural token inspection, local storage, and expiry-driven automatic
// logout.
//
// Clients cannot verify signatures. Everything here is a structural
// pre-check and a UX convenience so the client flips to signed-out without a
// round-trip; the server's AuthService remains the only security boundary.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"fireguard/internal/common"
)

// Kind is the expected principal kind of a stored token.
type Kind string

const (
	KindAdmin Kind = "admin"
	KindUser  Kind = "user"
)

// Payload is the decoded (unverified) claims segment of a token.
type Payload struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Type      string `json:"type"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// matches reports whether the payload carries the kind marker expected for
// this session. Admin and customer tokens are never interchangeable.
func (p *Payload) matches(kind Kind) bool {
	switch kind {
	case KindAdmin:
		return p.Role == "admin"
	case KindUser:
		return p.Type == "user"
	}
	return false
}

// DecodePayload structurally parses a token: three dot-separated segments,
// base64url-decoded middle segment, JSON claims. No signature check.
func DecodePayload(token string) (*Payload, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", common.ErrMalformedToken, len(parts))
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}

	var payload Payload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedToken, err)
	}
	return &payload, nil
}

// TokenStore persists the session token between runs (the Go analogue of the
// browser's localStorage slot).
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Manager owns one client session: the stored token and the one-shot timer
// that clears it at expiry.
//
// The timer guarantees the session transitions to signed-out at expiry even
// if nothing else touches it. Begin cancels and replaces any previous timer;
// Logout and Close disarm it so a stale timer never clears a newer session.
type Manager struct {
	kind  Kind
	store TokenStore

	// now is swappable for tests.
	now func() time.Time

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64 // incremented on every Begin/Logout; stale timers compare against it
	payload *Payload
}

// NewManager creates a Manager for one principal kind.
func NewManager(kind Kind, store TokenStore) *Manager {
	return &Manager{kind: kind, store: store, now: time.Now}
}

// Restore loads the stored token on startup. A missing, structurally
// invalid, wrong-kind, or expired token silently clears the session and
// returns nil: the caller is signed out, not facing an error. A valid token
// re-arms the expiry timer for the remaining lifetime.
func (m *Manager) Restore() (*Payload, error) {
	token, err := m.store.Load()
	if err != nil || token == "" {
		return nil, nil
	}

	payload, err := DecodePayload(token)
	if err != nil || !payload.matches(m.kind) || !m.stillValid(payload) {
		if clearErr := m.store.Clear(); clearErr != nil {
			return nil, fmt.Errorf("failed to clear invalid session: %w", clearErr)
		}
		return nil, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
	m.armLocked(payload)
	return payload, nil
}

// Begin installs a freshly issued token: validates it structurally, persists
// it, and arms the expiry timer, replacing any previous one.
func (m *Manager) Begin(token string) (*Payload, error) {
	payload, err := DecodePayload(token)
	if err != nil {
		return nil, err
	}
	if !payload.matches(m.kind) {
		return nil, common.ErrInvalidTokenType
	}
	if !m.stillValid(payload) {
		return nil, common.ErrTokenExpired
	}
	if err := m.store.Save(token); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = payload
	m.armLocked(payload)
	return payload, nil
}

// Current returns the active payload, or nil when signed out.
func (m *Manager) Current() *Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.payload
}

// Token returns the stored token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.Lock()
	signedIn := m.payload != nil
	m.mu.Unlock()
	if !signedIn {
		return ""
	}
	token, err := m.store.Load()
	if err != nil {
		return ""
	}
	return token
}

// Logout clears the session and disarms the timer. Safe to call repeatedly;
// a timer superseded by Logout never fires against the cleared state.
func (m *Manager) Logout() error {
	m.mu.Lock()
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.payload = nil
	m.mu.Unlock()

	return m.store.Clear()
}

// Close disarms the timer without touching the stored token. Used on
// teardown so a dying manager cannot clear a session a new one owns.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) stillValid(p *Payload) bool {
	return p.ExpiresAt > 0 && m.now().Unix() < p.ExpiresAt
}

// armLocked replaces the expiry timer with one firing at the payload's
// expiry. Caller holds m.mu.
func (m *Manager) armLocked(p *Payload) {
	m.gen++
	gen := m.gen
	if m.timer != nil {
		m.timer.Stop()
	}

	ttl := time.Unix(p.ExpiresAt, 0).Sub(m.now())
	m.timer = time.AfterFunc(ttl, func() {
		m.expire(gen)
	})
}

// expire clears the session when the arming generation is still current.
// A timer raced by a later Begin, Logout or Close is a no-op.
func (m *Manager) expire(gen uint64) {
	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.payload = nil
	m.mu.Unlock()

	// Best effort: an unreadable store cannot be recovered from a timer.
	_ = m.store.Clear()
}
