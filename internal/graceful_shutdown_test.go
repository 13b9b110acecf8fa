package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGracefulShutdownRunsTasksBeforeExit(t *testing.T) {
	ran := false
	exited := make(chan int, 1)
	gs := newGracefulShutdown(func() error {
		ran = true
		return nil
	}, func(code int) {
		exited <- code
	})

	assert.False(t, gs.ShuttingDown())

	gs.Shutdown()
	gs.Wait()

	require.True(t, ran)
	assert.True(t, gs.ShuttingDown())
	assert.Equal(t, 0, <-exited)
}

func TestGracefulShutdownFailedTaskSkipsExit(t *testing.T) {
	exited := make(chan int, 1)
	gs := newGracefulShutdown(func() error {
		return errors.New("index close failed")
	}, func(code int) {
		exited <- code
	})

	gs.Shutdown()
	gs.Wait()

	assert.True(t, gs.ShuttingDown())
	assert.Empty(t, exited)
}

func TestGracefulShutdownIsIdempotent(t *testing.T) {
	exited := make(chan int, 1)
	gs := newGracefulShutdown(nil, func(code int) {
		exited <- code
	})

	// The second call must not queue a second signal.
	gs.Shutdown()
	gs.Shutdown()
	gs.Wait()

	assert.True(t, gs.ShuttingDown())
	assert.Equal(t, 0, <-exited)
}
