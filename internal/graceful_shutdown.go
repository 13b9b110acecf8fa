package internal

import (
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// ShutdownTimeout bounds how long the shutdown tasks may run once a signal
// is received. Kubernetes sends SIGTERM 30 seconds before killing the pod.
const ShutdownTimeout = 30 * time.Second

type GracefulShutdownHandler interface {
	// Shutdown triggers the shutdown tasks without an external signal.
	Shutdown()
	// ShuttingDown reports whether a shutdown is in progress.
	ShuttingDown() bool
	// Wait blocks until the shutdown tasks have finished.
	Wait()
}

type gracefulShutdown struct {
	quit         chan os.Signal
	shuttingDown atomic.Bool
	done         sync.WaitGroup
	exit         func(code int)
}

// NewGracefulShutdown traps SIGINT/SIGTERM and runs onShutdown once a signal
// arrives. The process exits when the tasks finish, or with a failure exit
// code when they exceed ShutdownTimeout.
func NewGracefulShutdown(onShutdown func() error) GracefulShutdownHandler {
	return newGracefulShutdown(onShutdown, os.Exit)
}

func newGracefulShutdown(onShutdown func() error, exit func(code int)) GracefulShutdownHandler {
	gs := &gracefulShutdown{
		quit: make(chan os.Signal, 1),
		exit: exit,
	}
	signal.Notify(gs.quit, syscall.SIGINT, syscall.SIGTERM)
	gs.done.Add(1)

	go func() {
		defer gs.done.Done()
		sig := <-gs.quit
		gs.shuttingDown.Store(true)
		zap.S().Infow("Received signal, shutting down", "signal", sig.String())

		if onShutdown != nil {
			watchdog := time.AfterFunc(ShutdownTimeout, func() {
				zap.S().Errorw("Shutdown tasks did not complete in time", "timeout", ShutdownTimeout)
				_ = zap.S().Sync()
				gs.exit(1)
			})
			defer watchdog.Stop()

			if err := onShutdown(); err != nil {
				zap.S().Errorw("Error during shutdown", "error", err)
				return
			}
		}
		zap.S().Info("Shutdown tasks completed. Ready to exit.")
		gs.exit(0)
	}()

	return gs
}

func (gs *gracefulShutdown) ShuttingDown() bool {
	return gs.shuttingDown.Load()
}

func (gs *gracefulShutdown) Shutdown() {
	// Flip the state before queueing the signal so readiness probes turn
	// negative immediately.
	if !gs.shuttingDown.Swap(true) {
		gs.quit <- syscall.SIGTERM
	}
}

func (gs *gracefulShutdown) Wait() {
	gs.done.Wait()
}
