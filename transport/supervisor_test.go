package transport

import (
	"errors"
	"fmt"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/indigo-web/uhttpd/config"
	"github.com/stretchr/testify/require"
)

type transportMock struct {
	stopped     *atomic.Bool
	closed      bool
	bound       bool
	once        bool
	loop        time.Duration
	returnError error
}

func newMock(loop time.Duration, returnError error, once bool) *transportMock {
	return &transportMock{
		stopped:     new(atomic.Bool),
		once:        once,
		loop:        loop,
		returnError: returnError,
	}
}

func (t *transportMock) Bind(string) error {
	t.bound = true
	return nil
}

func (t *transportMock) Listen(config.NET, func(conn net.Conn)) error {
	for !t.stopped.Load() && !t.once {
		time.Sleep(t.loop)
	}

	return t.returnError
}

func (t *transportMock) Addr() net.Addr {
	return nil
}

func (t *transportMock) Stop() {
	t.stopped.Store(true)
}

func (t *transportMock) Close() {
	t.closed = true
}

func (t *transportMock) Wait() {}

func runParallel(fn func() error) chan error {
	c := make(chan error, 1)

	go func() {
		c <- fn()
	}()

	return c
}

func runAtMost(sup *Supervisor, timeout time.Duration) error {
	select {
	case err := <-runParallel(func() error {
		return sup.Run(config.Default().NET)
	}):
		return err
	case <-time.After(timeout):
		return fmt.Errorf("supervisor timeouted")
	}
}

func TestSupervisor(t *testing.T) {
	newSupervisor := func(ts ...*transportMock) *Supervisor {
		sup := NewSupervisor()
		for _, transport := range ts {
			require.NoError(t, sup.Add("", transport, nil))
			require.True(t, transport.bound)
		}

		return &sup
	}

	t.Run("die without error", func(t *testing.T) {
		sup := newSupervisor(
			newMock(10*time.Millisecond, nil, false),
			newMock(10*time.Millisecond, nil, true),
		)
		require.NoError(t, runAtMost(sup, 300*time.Millisecond))
	})

	t.Run("die with error", func(t *testing.T) {
		failure := errors.New("listener is broken")
		first, second := newMock(10*time.Millisecond, nil, false), newMock(10*time.Millisecond, failure, true)
		sup := newSupervisor(first, second)
		require.ErrorIs(t, runAtMost(sup, 300*time.Millisecond), failure)
		require.True(t, first.closed)
		require.True(t, second.closed)
	})

	t.Run("stop", func(t *testing.T) {
		sup := newSupervisor(
			newMock(10*time.Millisecond, nil, false),
			newMock(20*time.Millisecond, nil, false),
		)
		c := runParallel(func() error {
			return sup.Run(config.Default().NET)
		})
		time.Sleep(50 * time.Millisecond)
		c2 := runParallel(func() error {
			sup.Stop()
			return nil
		})

		select {
		case err := <-c2:
			require.NoError(t, err)
		case <-time.After(300 * time.Millisecond):
			require.Fail(t, "supervisor did not stop on time")
		}

		select {
		case err := <-c:
			require.NoError(t, err)
		case <-time.After(50 * time.Millisecond):
			require.Fail(t, "supervisor did not stop running on time")
		}
	})
}
