package cart

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := bolt.Open(filepath.Join(t.TempDir(), "store.db"), 0o600, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := NewStore(db)
	require.NoError(t, err)
	return st
}

func TestStoreRoundTrip(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Mutate("sess-1", func(s *State) {
		s.Add(Item{ProductID: 1, Name: "Pizza Samosa (12p)", Price: 650})
		s.Add(Item{ProductID: 1})
		s.SideCartOpen = true
	})
	require.NoError(t, err)

	got, err := st.Get("sess-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.Equal(t, 1300, got.Total)
	assert.True(t, got.SideCartOpen)
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Mutate("sess-a", func(s *State) {
		s.Add(Item{ProductID: 1, Price: 650})
	})
	require.NoError(t, err)

	other, err := st.Get("sess-b")
	require.NoError(t, err)
	assert.True(t, other.Empty())
}

func TestStoreDelete(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Mutate("sess-1", func(s *State) {
		s.Add(Item{ProductID: 3, Price: 480})
	})
	require.NoError(t, err)
	require.NoError(t, st.Delete("sess-1"))

	got, err := st.Get("sess-1")
	require.NoError(t, err)
	assert.True(t, got.Empty())
	assert.Zero(t, got.Total)
}

func TestStoreRecomputesTotalOnLoad(t *testing.T) {
	st := openTestStore(t)

	// write a state with a deliberately wrong stored total
	_, err := st.Mutate("sess-1", func(s *State) {
		s.Items = []Item{{ProductID: 1, Price: 650, Quantity: 2}}
		s.Total = 1
	})
	require.NoError(t, err)

	got, err := st.Get("sess-1")
	require.NoError(t, err)
	assert.Equal(t, 1300, got.Total)
}
