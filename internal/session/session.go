// Package session owns the process-global mutable state of an install run:
// the starting working directory, the scratch workspace and the terminal
// state. Teardown runs exactly once on every exit path, including SIGINT.
package session

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"golang.org/x/term"

	"github.com/myelo-dev/myelo-installer/internal/messages"
)

// Session is the per-run context threaded through every install step.
type Session struct {
	// StartDir is the working directory the installer was launched from.
	StartDir string
	// ScratchDir is the process-lifetime temporary workspace.
	ScratchDir string

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
	closeErr  error

	termFd    int
	termState *term.State

	sigCh  chan os.Signal
	exit   func(code int)
	notice *os.File
}

// Open creates the session: it records the starting directory, creates the
// scratch workspace and snapshots the terminal state for restore on exit.
func Open(parent context.Context) (*Session, error) {
	if parent == nil {
		parent = context.Background()
	}
	startDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	scratch, err := os.MkdirTemp("", "myelo-install-")
	if err != nil {
		return nil, fmt.Errorf(messages.SessionScratchFmt, err)
	}
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		StartDir:   startDir,
		ScratchDir: scratch,
		ctx:        ctx,
		cancel:     cancel,
		termFd:     -1,
		exit:       os.Exit,
		notice:     os.Stderr,
	}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		if state, err := term.GetState(fd); err == nil {
			s.termFd = fd
			s.termState = state
		}
	}
	return s, nil
}

// Context returns the run context; it is cancelled on interrupt so blocking
// subprocess steps stop promptly.
func (s *Session) Context() context.Context {
	return s.ctx
}

// WatchInterrupts installs the SIGINT/SIGTERM handler. A signal prints the
// abort notice, runs the same teardown as any other exit and terminates
// with a non-zero status.
func (s *Session) WatchInterrupts() {
	s.sigCh = make(chan os.Signal, 1)
	signal.Notify(s.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		if _, ok := <-s.sigCh; ok {
			s.interrupt()
		}
	}()
}

func (s *Session) interrupt() {
	_, _ = fmt.Fprintln(s.notice, messages.SessionInterruptNotice)
	s.cancel()
	_ = s.Close()
	s.exit(1)
}

// Close tears the session down: restores the starting directory and the
// terminal state, then removes the scratch workspace. Safe to call from
// multiple exit paths; only the first call does the work.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		if s.sigCh != nil {
			signal.Stop(s.sigCh)
		}
		s.cancel()
		if err := os.Chdir(s.StartDir); err != nil {
			s.closeErr = fmt.Errorf(messages.SessionRestoreDirFmt, s.StartDir, err)
		}
		if s.termState != nil {
			_ = term.Restore(s.termFd, s.termState)
		}
		if err := os.RemoveAll(s.ScratchDir); err != nil && s.closeErr == nil {
			s.closeErr = err
		}
	})
	return s.closeErr
}
