package mediator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPostgresSessionLocker(t *testing.T) {
	t.Parallel()

	t.Run("default lock id", func(t *testing.T) {
		t.Parallel()
		a := NewPostgresSessionLocker(PostgresSessionLockerOptions{})
		b := NewPostgresSessionLocker(PostgresSessionLockerOptions{})
		require.NotZero(t, a.lockID)
		// The derived key is stable across instances so every invocation
		// contends on the same advisory lock.
		require.Equal(t, a.lockID, b.lockID)
	})

	t.Run("custom lock id", func(t *testing.T) {
		t.Parallel()
		l := NewPostgresSessionLocker(PostgresSessionLockerOptions{LockID: 12345})
		require.EqualValues(t, 12345, l.lockID)
	})
}
