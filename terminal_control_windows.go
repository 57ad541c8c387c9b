//go:build windows

// terminal_control_windows.go - stdin key handling without nonblocking reads

package sidplayfp

import (
	"os"
	"sync"

	"golang.org/x/term"
)

// TerminalControl maps keys onto a player: space toggles pause, q or Ctrl-C
// quits. The Windows console has no nonblocking stdin, so the reader blocks
// on os.Stdin and is simply abandoned on Stop.
type TerminalControl struct {
	player       *SIDPlayer
	quit         chan struct{}
	stopCh       chan struct{}
	stopped      sync.Once
	quitOnce     sync.Once
	oldTermState *term.State
	fd           int
}

func NewTerminalControl(player *SIDPlayer) *TerminalControl {
	return &TerminalControl{
		player: player,
		quit:   make(chan struct{}),
		stopCh: make(chan struct{}),
	}
}

func (tc *TerminalControl) Quit() <-chan struct{} {
	return tc.quit
}

func (tc *TerminalControl) Start() {
	tc.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(tc.fd)
	if err != nil {
		return
	}
	tc.oldTermState = oldState

	go func() {
		buf := make([]byte, 1)
		for {
			select {
			case <-tc.stopCh:
				return
			default:
			}

			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			switch buf[0] {
			case ' ':
				tc.player.SetPlaying(!tc.player.IsPlaying())
			case 'q', 'Q', 0x03:
				tc.quitOnce.Do(func() { close(tc.quit) })
				return
			}
		}
	}()
}

func (tc *TerminalControl) Stop() {
	tc.stopped.Do(func() {
		close(tc.stopCh)
	})
	if tc.oldTermState != nil {
		_ = term.Restore(tc.fd, tc.oldTermState)
		tc.oldTermState = nil
	}
}
