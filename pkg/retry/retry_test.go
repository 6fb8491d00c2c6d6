package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fast(attempts int) Config {
	return Config{MaxAttempts: attempts, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, BackoffFactor: 2}
}

func TestDo_ExitoTrasReintentos(t *testing.T) {
	calls := 0
	var retries []int
	err := Do(context.Background(), fast(5), func() error {
		calls++
		if calls < 3 {
			return errors.New("temporal")
		}
		return nil
	}, func(attempt int, _ error, _ time.Duration) { retries = append(retries, attempt) })

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, retries)
}

func TestDo_AgotaIntentos(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := Do(context.Background(), fast(3), func() error { calls++; return boom }, nil)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
}

func TestDo_Permanent(t *testing.T) {
	bad := errors.New("553 mailbox name not allowed")
	calls := 0
	err := Do(context.Background(), fast(5), func() error { calls++; return Permanent(bad) }, nil)
	assert.Equal(t, bad, err)
	assert.Equal(t, 1, calls)
}

func TestDo_Cancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	err := Do(ctx, fast(5), func() error { calls++; return nil }, nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}
