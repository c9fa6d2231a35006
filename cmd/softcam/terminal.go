package main

import (
	"context"
	"fmt"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/softcam/pkg/input"
	"github.com/taigrr/softcam/pkg/render"
)

// Terminal cells are much coarser than pixels; scale cell deltas so a mouse
// sweep turns the camera about as far as in a window.
const (
	cellScaleX = 8
	cellScaleY = 16
)

// terminalInput converts ultraviolet events into controller events.
type terminalInput struct {
	lastX, lastY int
	tracking     bool
}

// translate returns the controller event for ev, if any.
func (t *terminalInput) translate(ev uv.Event) (input.Event, bool) {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		return input.KeyDown{Key: ev.String()}, true
	case uv.MouseMotionEvent:
		if !t.tracking {
			t.lastX, t.lastY, t.tracking = ev.X, ev.Y, true
			return nil, false
		}
		dx, dy := ev.X-t.lastX, ev.Y-t.lastY
		t.lastX, t.lastY = ev.X, ev.Y
		if dx == 0 && dy == 0 {
			return nil, false
		}
		return input.MouseMotion{DX: float64(dx * cellScaleX), DY: float64(dy * cellScaleY)}, true
	}
	return nil, false
}

func runTerminal(ctx context.Context, a *app) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	fb := render.NewFramebuffer(render.TerminalSize(width, height))

	// The event goroutine only forwards; all state lives in the frame loop.
	events := make(chan uv.Event, 256)
	go func() {
		for ev := range term.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var tin terminalInput
	targetDuration := a.frameDuration()
	queue := make([]input.Event, 0, 64)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()

		queue = queue[:0]
	drain:
		for {
			select {
			case ev := <-events:
				if size, ok := ev.(uv.WindowSizeEvent); ok {
					width, height = size.Width, size.Height
					term.Erase()
					term.Resize(width, height)
					fb.Resize(render.TerminalSize(width, height))
					continue
				}
				if iev, ok := tin.translate(ev); ok {
					queue = append(queue, iev)
				}
			default:
				break drain
			}
		}

		if !a.step(queue) {
			return nil
		}

		a.frame(fb)
		fb.Draw(term, uv.Rect(0, 0, width, height))
		if err := term.Display(); err != nil {
			return fmt.Errorf("display: %w", err)
		}
		a.hud.Render(width)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
