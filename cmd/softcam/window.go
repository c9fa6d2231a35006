package main

import (
	"context"
	"errors"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/taigrr/softcam/pkg/input"
	"github.com/taigrr/softcam/pkg/render"
)

// Held keys repeat like a keyboard's autorepeat, counted in ticks.
const (
	repeatDelay    = 30
	repeatInterval = 3
)

// runWindow opens a resizable desktop window with a captured cursor.
// It blocks until the window closes or a quit is requested.
func runWindow(ctx context.Context, a *app, width, height int) error {
	g := &windowGame{
		ctx: ctx,
		app: a,
		fb:  render.NewFramebuffer(width, height),
	}

	ebiten.SetWindowTitle("softcam")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(a.cfg.FPS)
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type windowGame struct {
	ctx context.Context
	app *app
	fb  *render.Framebuffer

	keys         []ebiten.Key
	queue        []input.Event
	lastX, lastY int
	tracking     bool
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	g.queue = g.queue[:0]
	g.pollKeys()
	g.pollMouse()
	if !g.app.step(g.queue) {
		return ebiten.Termination
	}
	return nil
}

// pollKeys queues a KeyDown for every key pressed this tick or repeating.
func (g *windowGame) pollKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)

	g.keys = inpututil.AppendPressedKeys(g.keys[:0])
	g.keys = slices.DeleteFunc(g.keys, func(k ebiten.Key) bool {
		return !repeats(inpututil.KeyPressDuration(k))
	})
	for _, name := range keyNames(g.keys, ctrl) {
		g.queue = append(g.queue, input.KeyDown{Key: name})
	}
}

// pollMouse queues the cursor movement since the last tick.
func (g *windowGame) pollMouse() {
	x, y := ebiten.CursorPosition()
	if !g.tracking {
		g.lastX, g.lastY, g.tracking = x, y, true
		return
	}
	dx, dy := x-g.lastX, y-g.lastY
	g.lastX, g.lastY = x, y
	if dx != 0 || dy != 0 {
		g.queue = append(g.queue, input.MouseMotion{DX: float64(dx), DY: float64(dy)})
	}
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	size := screen.Bounds().Size()
	g.fb.Resize(size.X, size.Y)
	g.app.frame(g.fb)
	screen.WritePixels(g.fb.ToImage().Pix)
	ebitenutil.DebugPrint(screen, g.app.hud.Text())
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func repeats(ticks int) bool {
	return ticks == 1 || (ticks >= repeatDelay && (ticks-repeatDelay)%repeatInterval == 0)
}

// keyName maps an ebiten key ("A", "ArrowUp", "ShiftLeft") to the
// controller's key names.
func keyName(k ebiten.Key) string {
	return input.NormalizeKey(k.String())
}

// keyNames names the keys held this tick, once each. ebiten also reports
// the side-agnostic Alt, Control, Shift and Meta keys alongside their
// left/right keys; those are skipped.
func keyNames(keys []ebiten.Key, ctrl bool) []string {
	var names []string
	for _, k := range keys {
		switch k {
		case ebiten.KeyAlt, ebiten.KeyControl, ebiten.KeyShift, ebiten.KeyMeta:
			continue
		}
		name := keyName(k)
		if ctrl && len(name) == 1 {
			name = "ctrl+" + name
		}
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}
