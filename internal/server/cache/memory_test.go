package cache

import (
	"context"
	"testing"
	"time"

	"github.com/dkovalev2/authgate/internal/server/models"
	"github.com/stretchr/testify/require"
)

func testEntry(email string) *Entry {
	return &Entry{
		User:       models.UserProfile{ID: "u-" + email, Email: email},
		Credential: models.CredentialRecord{UserID: "u-" + email, Password: "pw"},
	}
}

func TestMemory_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 10)

	_, ok, err := m.Get(ctx, "alice@example.com")
	require.NoError(t, err, "a miss is never an error")
	require.False(t, ok)

	require.NoError(t, m.Set(ctx, "alice@example.com", testEntry("alice@example.com")))

	got, ok, err := m.Get(ctx, "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "u-alice@example.com", got.User.ID)

	require.NoError(t, m.Delete(ctx, "alice@example.com"))

	_, ok, _ = m.Get(ctx, "alice@example.com")
	require.False(t, ok)
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(50*time.Millisecond, 10)

	require.NoError(t, m.Set(ctx, "alice@example.com", testEntry("alice@example.com")))

	_, ok, _ := m.Get(ctx, "alice@example.com")
	require.True(t, ok)

	time.Sleep(120 * time.Millisecond)

	_, ok, _ = m.Get(ctx, "alice@example.com")
	require.False(t, ok, "entry must expire after the TTL")
}

func TestMemory_CapacityEviction(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute, 2)

	require.NoError(t, m.Set(ctx, "a@example.com", testEntry("a@example.com")))
	require.NoError(t, m.Set(ctx, "b@example.com", testEntry("b@example.com")))
	require.NoError(t, m.Set(ctx, "c@example.com", testEntry("c@example.com")))

	_, okA, _ := m.Get(ctx, "a@example.com")
	_, okB, _ := m.Get(ctx, "b@example.com")
	_, okC, _ := m.Get(ctx, "c@example.com")

	require.False(t, okA, "oldest entry must be evicted at capacity")
	require.True(t, okB)
	require.True(t, okC)
}

func TestMemory_DeleteMissingKeyIsNoop(t *testing.T) {
	m := NewMemory(time.Minute, 2)
	require.NoError(t, m.Delete(context.Background(), "ghost@example.com"))
}
