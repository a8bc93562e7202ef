package survey

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUnitTopicCache(t *testing.T) {
	ctx := context.Background()

	t.Run("hits are served from memory", func(t *testing.T) {
		store := newTopicStoreMock("abc", "def")
		c := NewTopicCache(store, time.Minute)

		list, err := c.FindByIDs(ctx, []string{"abc", "def"})
		require.NoError(t, err)
		require.Len(t, list, 2)

		list, err = c.FindByIDs(ctx, []string{"def", "abc"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Len(t, store.calls, 1)
	})

	t.Run("only misses are fetched", func(t *testing.T) {
		store := newTopicStoreMock("abc", "def")
		c := NewTopicCache(store, time.Minute)

		_, err := c.FindByIDs(ctx, []string{"abc"})
		require.NoError(t, err)

		list, err := c.FindByIDs(ctx, []string{"abc", "def"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		require.Equal(t, [][]string{{"abc"}, {"def"}}, store.calls)
	})

	t.Run("unknown ids are not cached", func(t *testing.T) {
		store := newTopicStoreMock("abc")
		c := NewTopicCache(store, time.Minute)

		list, err := c.FindByIDs(ctx, []string{"zzz"})
		require.NoError(t, err)
		require.Empty(t, list)

		store.topics["zzz"] = Topic{TopicID: "zzz"}

		list, err = c.FindByIDs(ctx, []string{"zzz"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Len(t, store.calls, 2)
	})

	t.Run("expired items are fetched again", func(t *testing.T) {
		store := newTopicStoreMock("abc")
		c := NewTopicCache(store, time.Minute)

		now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return now }

		_, err := c.FindByIDs(ctx, []string{"abc"})
		require.NoError(t, err)

		now = now.Add(30 * time.Second)
		_, err = c.FindByIDs(ctx, []string{"abc"})
		require.NoError(t, err)
		require.Len(t, store.calls, 1)

		now = now.Add(time.Minute)
		_, err = c.FindByIDs(ctx, []string{"abc"})
		require.NoError(t, err)
		require.Len(t, store.calls, 2)
	})

	t.Run("store errors are returned", func(t *testing.T) {
		store := newTopicStoreMock("abc")
		store.err = context.DeadlineExceeded
		c := NewTopicCache(store, time.Minute)

		_, err := c.FindByIDs(ctx, []string{"abc"})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestUnitCodecWithTopicCache(t *testing.T) {
	store := newTopicStoreMock("abc", "def")
	codec := NewCodec(NewTopicCache(store, time.Minute))

	for i := 0; i < 3; i++ {
		actual, err := codec.Decode(context.Background(), "abc:happy|def:angry")
		require.NoError(t, err)
		require.Len(t, actual, 2)
	}

	require.Len(t, store.calls, 1)
}
