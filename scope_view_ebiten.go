//go:build !headless

// scope_view_ebiten.go - oscilloscope window for live playback

package sidplayfp

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	scopeWidth  = 640
	scopeHeight = 360
)

// ScopeView renders the player's recent output as a single trace. Runs on
// the main goroutine via ebiten.RunGame until the window closes or Q is
// pressed.
type ScopeView struct {
	player *SIDPlayer
	title  string

	canvas      *ebiten.Image
	frameBuffer []byte
	trace       []float32
	bufferMutex sync.Mutex
}

func NewScopeView(player *SIDPlayer, title string) *ScopeView {
	return &ScopeView{
		player:      player,
		title:       title,
		frameBuffer: make([]byte, scopeWidth*scopeHeight*4),
		trace:       make([]float32, scopeWidth),
	}
}

// Run opens the window and blocks until it is closed.
func (sv *ScopeView) Run() error {
	ebiten.SetWindowSize(scopeWidth, scopeHeight)
	ebiten.SetWindowTitle(sv.title)
	ebiten.SetVsyncEnabled(true)
	// Route the close button through Update so it exits the same way Q does.
	ebiten.SetWindowClosingHandled(true)
	if err := ebiten.RunGame(sv); err != nil {
		return fmt.Errorf("scope view: %w", err)
	}
	return nil
}

func (sv *ScopeView) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		sv.player.SetPlaying(!sv.player.IsPlaying())
	}
	return nil
}

func (sv *ScopeView) Draw(screen *ebiten.Image) {
	if sv.canvas == nil {
		sv.canvas = ebiten.NewImage(scopeWidth, scopeHeight)
	}

	sv.bufferMutex.Lock()
	sv.renderTrace()
	sv.canvas.WritePixels(sv.frameBuffer)
	sv.bufferMutex.Unlock()
	screen.DrawImage(sv.canvas, nil)

	pos, total := sv.player.Position()
	status := fmt.Sprintf("%s  %d/%d", sv.title, pos, total)
	if !sv.player.IsPlaying() {
		status += "  [paused]"
	}
	text.Draw(screen, status, basicfont.Face7x13, 8, scopeHeight-8,
		color.RGBA{160, 160, 160, 255})
}

func (sv *ScopeView) Layout(_, _ int) (int, int) {
	return scopeWidth, scopeHeight
}

// renderTrace repaints the framebuffer from the freshest scope snapshot.
func (sv *ScopeView) renderTrace() {
	for i := 0; i < len(sv.frameBuffer); i += 4 {
		sv.frameBuffer[i] = 0x10
		sv.frameBuffer[i+1] = 0x10
		sv.frameBuffer[i+2] = 0x18
		sv.frameBuffer[i+3] = 0xff
	}

	// Center line.
	mid := scopeHeight / 2
	for x := 0; x < scopeWidth; x++ {
		sv.plot(x, mid, 0x30, 0x30, 0x40)
	}

	sv.player.CopyScope(sv.trace)
	prevY := mid
	for x, s := range sv.trace {
		y := mid - int(s*float32(scopeHeight)*0.45)
		if y < 0 {
			y = 0
		} else if y >= scopeHeight {
			y = scopeHeight - 1
		}
		lo, hi := y, prevY
		if lo > hi {
			lo, hi = hi, lo
		}
		for yy := lo; yy <= hi; yy++ {
			sv.plot(x, yy, 0x40, 0xe0, 0x70)
		}
		prevY = y
	}
}

func (sv *ScopeView) plot(x, y int, r, g, b byte) {
	off := (y*scopeWidth + x) * 4
	sv.frameBuffer[off] = r
	sv.frameBuffer[off+1] = g
	sv.frameBuffer[off+2] = b
	sv.frameBuffer[off+3] = 0xff
}
