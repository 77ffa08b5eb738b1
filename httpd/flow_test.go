package httpd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlow(t *testing.T) {
	t.Run("chunks are bounded by mss", func(t *testing.T) {
		var f flow
		f.start([]byte("hello, world"))
		require.Equal(t, "hello", string(f.next(5)))
		require.Nil(t, f.next(5), "must not send while a chunk is in flight")

		f.ack(5)
		require.Equal(t, ", wor", string(f.next(5)))
		f.ack(5)
		require.Equal(t, "ld", string(f.next(5)))
		f.ack(2)
		require.True(t, f.done())
		require.Nil(t, f.next(5))
	})

	t.Run("partial acks", func(t *testing.T) {
		var f flow
		f.start([]byte("abcdef"))
		require.Equal(t, "abcd", string(f.next(4)))
		f.ack(1)
		require.Nil(t, f.next(4))
		f.ack(3)
		require.Equal(t, 4, f.cursor)
		require.Equal(t, "ef", string(f.next(4)))
	})

	t.Run("overack is clamped", func(t *testing.T) {
		var f flow
		f.start([]byte("abc"))
		_ = f.next(10)
		f.ack(100)
		require.True(t, f.done())
		require.Zero(t, f.remaining)
		require.Equal(t, 3, f.cursor)
	})

	t.Run("empty", func(t *testing.T) {
		var f flow
		f.start(nil)
		require.True(t, f.done())
		require.Nil(t, f.next(10))
	})

	t.Run("no mss", func(t *testing.T) {
		var f flow
		f.start([]byte("abc"))
		require.Equal(t, "abc", string(f.next(0)))
	})
}
