package session_test

import (
	"encoding/base64"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fireguard/internal/common"
	"fireguard/internal/session"
)

// makeToken builds a structurally valid token with an arbitrary signature.
// The manager never verifies signatures, so "sig" is enough.
func makeToken(t *testing.T, claims map[string]interface{}) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	raw, err := json.Marshal(claims)
	require.NoError(t, err)
	return header + "." + base64.RawURLEncoding.EncodeToString(raw) + ".sig"
}

func adminToken(t *testing.T, expiresAt time.Time) string {
	return makeToken(t, map[string]interface{}{
		"email": "admin@fireguard.com",
		"role":  "admin",
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	})
}

func userToken(t *testing.T, expiresAt time.Time) string {
	return makeToken(t, map[string]interface{}{
		"id":    "USR-001",
		"email": "test@example.com",
		"type":  "user",
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	})
}

func TestDecodePayload(t *testing.T) {
	payload, err := session.DecodePayload(adminToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "admin@fireguard.com", payload.Email)
	assert.Equal(t, "admin", payload.Role)

	_, err = session.DecodePayload("only-one-segment")
	assert.ErrorIs(t, err, common.ErrMalformedToken)

	_, err = session.DecodePayload("a.!!!not-base64!!!.c")
	assert.ErrorIs(t, err, common.ErrMalformedToken)

	notJSON := base64.RawURLEncoding.EncodeToString([]byte("plain text"))
	_, err = session.DecodePayload("a." + notJSON + ".c")
	assert.ErrorIs(t, err, common.ErrMalformedToken)
}

func TestManager_BeginAndCurrent(t *testing.T) {
	store := session.NewMemoryStore()
	manager := session.NewManager(session.KindAdmin, store)
	defer manager.Close()

	token := adminToken(t, time.Now().Add(time.Hour))
	payload, err := manager.Begin(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@fireguard.com", payload.Email)

	assert.Equal(t, payload, manager.Current())
	assert.Equal(t, token, manager.Token())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, token, saved)
}

func TestManager_BeginRejectsWrongKind(t *testing.T) {
	manager := session.NewManager(session.KindAdmin, session.NewMemoryStore())
	defer manager.Close()

	_, err := manager.Begin(userToken(t, time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, common.ErrInvalidTokenType)
	assert.Nil(t, manager.Current())
}

func TestManager_BeginRejectsExpired(t *testing.T) {
	manager := session.NewManager(session.KindUser, session.NewMemoryStore())
	defer manager.Close()

	_, err := manager.Begin(userToken(t, time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.Nil(t, manager.Current())
}

func TestManager_RestoreValidToken(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(adminToken(t, time.Now().Add(time.Hour))))

	manager := session.NewManager(session.KindAdmin, store)
	defer manager.Close()

	payload, err := manager.Restore()
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, "admin@fireguard.com", payload.Email)
}

func TestManager_RestoreClearsBadTokens(t *testing.T) {
	cases := map[string]string{
		"garbage":    "not-a-token",
		"wrong kind": userToken(t, time.Now().Add(time.Hour)),
		"expired":    adminToken(t, time.Now().Add(-time.Minute)),
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			store := session.NewMemoryStore()
			require.NoError(t, store.Save(token))

			manager := session.NewManager(session.KindAdmin, store)
			defer manager.Close()

			payload, err := manager.Restore()
			require.NoError(t, err)
			assert.Nil(t, payload)

			saved, err := store.Load()
			require.NoError(t, err)
			assert.Empty(t, saved, "invalid token must be cleared from the store")
		})
	}
}

func TestManager_RestoreEmptyStore(t *testing.T) {
	manager := session.NewManager(session.KindAdmin, session.NewMemoryStore())
	defer manager.Close()

	payload, err := manager.Restore()
	require.NoError(t, err)
	assert.Nil(t, payload)
	assert.Empty(t, manager.Token())
}

func TestManager_TimerSignsOutAtExpiry(t *testing.T) {
	store := session.NewMemoryStore()
	manager := session.NewManager(session.KindAdmin, store)
	defer manager.Close()

	_, err := manager.Begin(adminToken(t, time.Now().Add(2*time.Second)))
	require.NoError(t, err)

	// Still signed in well before expiry.
	time.Sleep(100 * time.Millisecond)
	assert.NotNil(t, manager.Current())

	// Signed out shortly after expiry without any explicit logout.
	time.Sleep(2500 * time.Millisecond)
	assert.Nil(t, manager.Current())
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestManager_LogoutDisarmsTimer(t *testing.T) {
	store := session.NewMemoryStore()
	manager := session.NewManager(session.KindAdmin, store)
	defer manager.Close()

	_, err := manager.Begin(adminToken(t, time.Now().Add(1*time.Second)))
	require.NoError(t, err)
	require.NoError(t, manager.Logout())
	assert.Nil(t, manager.Current())

	// A new session outliving the old token's expiry proves the first
	// timer was disarmed rather than left to fire.
	_, err = manager.Begin(adminToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)
	time.Sleep(1500 * time.Millisecond)
	assert.NotNil(t, manager.Current())
}

func TestManager_BeginReplacesTimer(t *testing.T) {
	store := session.NewMemoryStore()
	manager := session.NewManager(session.KindAdmin, store)
	defer manager.Close()

	_, err := manager.Begin(adminToken(t, time.Now().Add(1*time.Second)))
	require.NoError(t, err)

	// Re-login with a longer-lived token before the first expires.
	_, err = manager.Begin(adminToken(t, time.Now().Add(time.Hour)))
	require.NoError(t, err)

	time.Sleep(1500 * time.Millisecond)
	assert.NotNil(t, manager.Current(), "old timer must not clear the new session")
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := session.NewFileStore(path)

	// Missing file reads as empty, and clearing it is not an error.
	token, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.NoError(t, store.Clear())

	require.NoError(t, store.Save("tok-123"))
	token, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)

	require.NoError(t, store.Clear())
	token, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
}
