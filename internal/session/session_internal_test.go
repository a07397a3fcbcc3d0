package session

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExpiryTimerFollowsInjectedClock pins validity checks and the expiry
// timer to the same clock: with a swapped clock sitting just before a
// far-future expiry, Begin must accept the token and the timer must fire on
// the swapped clock's remaining lifetime, not the wall clock's.
func TestExpiryTimerFollowsInjectedClock(t *testing.T) {
	store := NewMemoryStore()
	manager := NewManager(KindAdmin, store)
	defer manager.Close()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	manager.now = func() time.Time { return expiresAt.Add(-100 * time.Millisecond) }

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(
		`{"email":"admin@fireguard.com","role":"admin","exp":` +
			strconv.FormatInt(expiresAt.Unix(), 10) + `}`))
	token := header + "." + claims + ".sig"

	_, err := manager.Begin(token)
	require.NoError(t, err)
	require.NotNil(t, manager.Current())

	time.Sleep(600 * time.Millisecond)
	assert.Nil(t, manager.Current(), "timer must use the injected clock's 100ms remainder")
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, saved)
}
