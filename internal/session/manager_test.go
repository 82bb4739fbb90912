package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/authgate/authgate/internal/models"
)

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestCreateOrReuse_NewSession(t *testing.T) {
	m := NewManager(time.Hour)
	ctx := context.Background()

	sess, sid, err := m.CreateOrReuse(ctx, "")
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	assert.Equal(t, sid, sess.ID)
	assert.Equal(t, models.StateUnbound, sess.State)
	assert.Nil(t, sess.User)
	assert.Equal(t, sess.CreatedAt.Add(time.Hour), sess.ExpiresAt)
}

func TestCreateOrReuse_ReusesLiveSession(t *testing.T) {
	m := NewManager(time.Hour)
	ctx := context.Background()

	_, first, err := m.CreateOrReuse(ctx, "")
	require.NoError(t, err)

	sess, second, err := m.CreateOrReuse(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, first, sess.ID)
}

func TestCreateOrReuse_ReplacesUnknownID(t *testing.T) {
	m := NewManager(time.Hour)

	sess, sid, err := m.CreateOrReuse(context.Background(), "bogus")
	require.NoError(t, err)
	assert.NotEqual(t, "bogus", sid)
	assert.Equal(t, models.StateUnbound, sess.State)
}

func TestResolve_UnknownOrEmpty(t *testing.T) {
	m := NewManager(time.Hour)
	ctx := context.Background()

	assert.Nil(t, m.Resolve(ctx, ""))
	assert.Nil(t, m.Resolve(ctx, "unknown"))
}

func TestResolve_Expired(t *testing.T) {
	m := NewManager(time.Hour)
	ctx := context.Background()

	start := time.Now()
	m.now = fixedClock(start)

	_, sid, err := m.CreateOrReuse(ctx, "")
	require.NoError(t, err)
	require.NotNil(t, m.Resolve(ctx, sid))

	// one second past the fixed expiry
	m.now = fixedClock(start.Add(time.Hour + time.Second))
	assert.Nil(t, m.Resolve(ctx, sid), "expired session must resolve to absent")
	assert.Equal(t, 0, m.Len(), "expired record is dropped on resolve")
}

func TestBind_Lifecycle(t *testing.T) {
	m := NewManager(time.Hour)
	ctx := context.Background()

	_, sid, err := m.CreateOrReuse(ctx, "")
	require.NoError(t, err)

	alice := models.PublicUser{ID: "u1", Username: "alice"}
	require.NoError(t, m.Bind(ctx, sid, alice))

	sess := m.Resolve(ctx, sid)
	require.NotNil(t, sess)
	assert.Equal(t, models.StateBound, sess.State)
	require.NotNil(t, sess.User)
	assert.Equal(t, alice, *sess.User)

	// rebinding the same identity is a no-op
	require.NoError(t, m.Bind(ctx, sid, alice))
	assert.Equal(t, alice, *m.Resolve(ctx, sid).User)

	// binding a different identity overwrites
	bob := models.PublicUser{ID: "u2", Username: "bob"}
	require.NoError(t, m.Bind(ctx, sid, bob))
	assert.Equal(t, bob, *m.Resolve(ctx, sid).User)
}

func TestBind_UnknownSession(t *testing.T) {
	m := NewManager(time.Hour)

	err := m.Bind(context.Background(), "unknown", models.PublicUser{ID: "u1", Username: "alice"})
	assert.Error(t, err)
}

func TestDestroy_TerminalAndIdempotent(t *testing.T) {
	m := NewManager(time.Hour)
	ctx := context.Background()

	_, sid, err := m.CreateOrReuse(ctx, "")
	require.NoError(t, err)

	require.NoError(t, m.Destroy(ctx, sid))
	assert.Nil(t, m.Resolve(ctx, sid))

	// destroying again is not an error: logout is idempotent
	require.NoError(t, m.Destroy(ctx, sid))
	require.NoError(t, m.Destroy(ctx, "never existed"))

	// no transition out of Destroyed
	assert.Error(t, m.Bind(ctx, sid, models.PublicUser{ID: "u1", Username: "alice"}))
}

func TestSessionIDs_Unique(t *testing.T) {
	m := NewManager(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		_, sid, err := m.CreateOrReuse(ctx, "")
		require.NoError(t, err)
		require.False(t, seen[sid], "session id reused")
		seen[sid] = true
	}
}

func TestSweep_RemovesOnlyExpired(t *testing.T) {
	m := NewManager(time.Hour)
	ctx := context.Background()

	start := time.Now()
	m.now = fixedClock(start)
	_, old, err := m.CreateOrReuse(ctx, "")
	require.NoError(t, err)

	m.now = fixedClock(start.Add(30 * time.Minute))
	_, fresh, err := m.CreateOrReuse(ctx, "")
	require.NoError(t, err)

	m.now = fixedClock(start.Add(time.Hour + time.Minute))
	removed := m.sweep()

	assert.Equal(t, 1, removed)
	assert.Nil(t, m.Resolve(ctx, old))
	assert.NotNil(t, m.Resolve(ctx, fresh))
}
