// Package display runs the capture-to-draw loop inside an Ebitengine window.
package display

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"screensplit/internal/capture"
	"screensplit/internal/config"
	"screensplit/internal/convert"
	"screensplit/internal/pacing"
	"screensplit/internal/x11win"
)

// concealDeadline bounds how long the mirror keeps waiting for its window to
// appear in the X tree before treating off-screen placement as failed.
const concealDeadline = 5 * time.Second

// Source produces raw frames for the mirror. *capture.Capturer is the
// production implementation.
type Source interface {
	Capture() (*capture.Frame, error)
}

// Concealer places the mirror window off screen and forges its window
// manager state. *x11win.Presenter is the production implementation.
type Concealer interface {
	Conceal(title string, width, height int) error
}

// Mirror is the capture → convert → upload → draw pipeline, driven single
// threaded by the game loop. Every piece of pipeline state lives here and
// nothing else mutates it.
type Mirror struct {
	title     string
	fps       int
	onscreen  bool
	geo       capture.Geometry
	source    Source
	pacer     *pacing.Pacer
	shader    *ebiten.Shader
	concealer Concealer // nil when running on screen

	concealed    bool
	concealStart time.Time

	pending []byte        // validated pixels captured this tick, nil otherwise
	tex     *ebiten.Image // texture of the current frame, recreated per tick
}

// NewMirror builds the pipeline around an opened capture source. The
// swizzle shader is compiled here, once for the session.
func NewMirror(cfg *config.Config, src Source, geo capture.Geometry, concealer Concealer) (*Mirror, error) {
	shader, err := newSwizzleShader()
	if err != nil {
		return nil, fmt.Errorf("compile swizzle shader: %w", err)
	}
	return &Mirror{
		title:     cfg.Title,
		fps:       cfg.FPS,
		onscreen:  !cfg.Offscreen,
		geo:       geo,
		source:    src,
		pacer:     pacing.New(cfg.FPS),
		shader:    shader,
		concealer: concealer,
	}, nil
}

// Run configures the window and blocks in the game loop until the window is
// closed or the pipeline fails. Must be called from the main goroutine.
func (m *Mirror) Run() error {
	ebiten.SetWindowTitle(m.title)
	ebiten.SetWindowSize(m.geo.Width, m.geo.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	if m.concealer != nil {
		ebiten.SetWindowDecorated(false)
	}

	// Tick well above the target rate so the scheduled wake is never far
	// away; the pacer suppresses the wakeups that arrive early.
	tps := 2 * m.fps
	if tps < 60 {
		tps = 60
	}
	ebiten.SetTPS(tps)

	return ebiten.RunGame(m)
}

// Update is one wakeup of the loop: finish startup concealment if it is
// still pending, then either run a tick or go straight back to waiting.
func (m *Mirror) Update() error {
	if m.concealer != nil && !m.concealed {
		if err := m.conceal(); err != nil {
			return err
		}
	}
	if m.onscreen && (inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ)) {
		return ebiten.Termination
	}
	return m.tick()
}

// tick captures and validates one frame when due. Early wakeups fall
// through without touching the capture source or the schedule.
func (m *Mirror) tick() error {
	if !m.pacer.Due() {
		return nil
	}
	start := time.Now()
	frame, err := m.source.Capture()
	if err != nil {
		return fmt.Errorf("capture frame: %w", err)
	}
	pix, err := convert.Pixels(frame)
	if err != nil {
		return err
	}
	m.pending = pix
	m.pacer.Finish(start)
	return nil
}

// conceal runs the one-shot off-screen placement. The window reaches the X
// tree a few loop iterations after startup, so a not-found result means try
// again on the next wakeup, up to a deadline. Everything else is fatal.
func (m *Mirror) conceal() error {
	if m.concealStart.IsZero() {
		m.concealStart = time.Now()
	}
	err := m.concealer.Conceal(m.title, m.geo.Width, m.geo.Height)
	switch {
	case err == nil:
		m.concealed = true
		return nil
	case errors.Is(err, x11win.ErrWindowNotFound) && time.Since(m.concealStart) < concealDeadline:
		return nil
	default:
		return fmt.Errorf("off-screen placement: %w", err)
	}
}

// Draw uploads the pending frame as a fresh texture and draws it over the
// full viewport through the swizzle shader.
func (m *Mirror) Draw(screen *ebiten.Image) {
	if m.pending != nil {
		if m.tex != nil {
			m.tex.Deallocate()
		}
		m.tex = ebiten.NewImage(m.geo.Width, m.geo.Height)
		m.tex.WritePixels(m.pending)
		m.pending = nil
	}
	if m.tex == nil {
		return
	}
	op := &ebiten.DrawRectShaderOptions{}
	op.Images[0] = m.tex
	screen.DrawRectShader(m.geo.Width, m.geo.Height, m.shader, op)
}

// Layout pins the render target to the capture geometry for the whole
// session regardless of what the window system reports.
func (m *Mirror) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.geo.Width, m.geo.Height
}
