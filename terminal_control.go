//go:build !windows

// terminal_control.go - raw stdin key handling for interactive playback

package sidplayfp

import (
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"
)

// TerminalControl reads raw stdin and maps keys onto a player: space toggles
// pause, q or Ctrl-C quits. Only instantiated for interactive use, never in
// tests.
type TerminalControl struct {
	player       *SIDPlayer
	quit         chan struct{}
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	nonblockSet  bool
	oldTermState *term.State
}

func NewTerminalControl(player *SIDPlayer) *TerminalControl {
	return &TerminalControl{
		player: player,
		quit:   make(chan struct{}),
		stopCh: make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Quit is closed when the user asks to stop.
func (tc *TerminalControl) Quit() <-chan struct{} {
	return tc.quit
}

// Start puts the terminal in raw mode and reads keys in a goroutine. Call
// Stop to restore the terminal.
func (tc *TerminalControl) Start() {
	tc.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(tc.fd)
	if err != nil {
		// Not a terminal, e.g. piped stdin. Playback just runs without keys.
		close(tc.done)
		return
	}
	tc.oldTermState = oldState

	if err := syscall.SetNonblock(tc.fd, true); err != nil {
		fmt.Fprintf(os.Stderr, "terminal: failed to set nonblocking stdin: %v\n", err)
		_ = term.Restore(tc.fd, tc.oldTermState)
		tc.oldTermState = nil
		close(tc.done)
		return
	}
	tc.nonblockSet = true

	go func() {
		defer close(tc.done)
		buf := make([]byte, 1)

		for {
			select {
			case <-tc.stopCh:
				return
			default:
			}

			n, err := syscall.Read(tc.fd, buf)
			if n > 0 {
				switch buf[0] {
				case ' ':
					tc.player.SetPlaying(!tc.player.IsPlaying())
				case 'q', 'Q', 0x03: // Ctrl-C arrives as a byte in raw mode
					close(tc.quit)
					return
				}
			}
			if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK {
				time.Sleep(5 * time.Millisecond)
				continue
			}
			if err != nil {
				return
			}
			if n == 0 {
				time.Sleep(5 * time.Millisecond)
			}
		}
	}()
}

// Stop terminates the reader and restores the terminal state.
func (tc *TerminalControl) Stop() {
	tc.stopped.Do(func() {
		close(tc.stopCh)
	})
	<-tc.done
	if tc.nonblockSet {
		_ = syscall.SetNonblock(tc.fd, false)
		tc.nonblockSet = false
	}
	if tc.oldTermState != nil {
		_ = term.Restore(tc.fd, tc.oldTermState)
		tc.oldTermState = nil
	}
}
