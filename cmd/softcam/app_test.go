package main

import (
	"bytes"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/taigrr/softcam/pkg/config"
	"github.com/taigrr/softcam/pkg/input"
	"github.com/taigrr/softcam/pkg/render"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	a, err := newApp(config.Default(), logger)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}
	return a, &buf
}

func TestAppStep(t *testing.T) {
	a, logs := newTestApp(t)

	ok := a.step([]input.Event{
		input.KeyDown{Key: "z"},
		input.KeyDown{Key: "h"},
		input.MouseMotion{DX: 10},
	})
	if !ok {
		t.Fatal("step stopped without a quit")
	}
	if a.camera.Position.Z >= 0 {
		t.Errorf("camera did not move forward: %v", a.camera.Position)
	}
	if !strings.Contains(logs.String(), "yaw=0") {
		t.Errorf("dump not logged: %q", logs.String())
	}

	before := a.camera.Position
	if a.step([]input.Event{input.Quit{}, input.KeyDown{Key: "z"}}) {
		t.Error("step continued after quit")
	}
	if a.camera.Position != before {
		t.Error("events after quit were applied")
	}
}

func TestAppFrame(t *testing.T) {
	a, _ := newTestApp(t)
	fb := render.NewFramebuffer(800, 600)

	stats := a.frame(fb)
	if stats.TrianglesDrawn != 12 || stats.TrianglesRejected != 0 {
		t.Errorf("stats = %+v, want the default cube fully drawn", stats)
	}
	if stats.LinesDrawn == 0 {
		t.Error("no grid lines drawn")
	}
	if fb.GetPixel(400, 300) == render.ColorBlack {
		t.Error("cube not visible at the screen center")
	}
	if text := a.hud.Text(); !strings.Contains(text, "tris 12/12") {
		t.Errorf("HUD text = %q", text)
	}
}

func TestNewAppBadScene(t *testing.T) {
	cfg := config.Default()
	cfg.Scene = filepath.Join(t.TempDir(), "missing.glb")
	if _, err := newApp(cfg, slog.Default()); err == nil {
		t.Error("expected error for missing scene")
	}
}

func TestRunSnapshot(t *testing.T) {
	a, _ := newTestApp(t)
	path := filepath.Join(t.TempDir(), "snap.png")

	if err := runSnapshot(a, 320, 240, path); err != nil {
		t.Fatalf("runSnapshot: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("snapshot size = %v", b)
	}

	if err := runSnapshot(a, 0, 10, path); err == nil {
		t.Error("expected error for empty snapshot")
	}
}

func TestTerminalInputMouse(t *testing.T) {
	var tin terminalInput

	if _, ok := tin.translate(uv.MouseMotionEvent{X: 10, Y: 5}); ok {
		t.Error("first motion should only set the baseline")
	}
	ev, ok := tin.translate(uv.MouseMotionEvent{X: 12, Y: 4})
	if !ok {
		t.Fatal("second motion not translated")
	}
	want := input.MouseMotion{DX: 2 * cellScaleX, DY: -1 * cellScaleY}
	if ev != want {
		t.Errorf("motion = %+v, want %+v", ev, want)
	}
	if _, ok := tin.translate(uv.MouseMotionEvent{X: 12, Y: 4}); ok {
		t.Error("zero motion translated")
	}
}

func TestTerminalInputKey(t *testing.T) {
	var tin terminalInput
	ev, ok := tin.translate(uv.KeyPressEvent{Code: 'z', Text: "z"})
	if !ok {
		t.Fatal("key press not translated")
	}
	kd, isKey := ev.(input.KeyDown)
	if !isKey {
		t.Fatalf("event = %T, want KeyDown", ev)
	}
	if a, _ := input.DefaultKeymap().Lookup(kd.Key); a != input.ActionForward {
		t.Errorf("key %q maps to %v, want forward", kd.Key, a)
	}
}

func TestRepeats(t *testing.T) {
	tests := []struct {
		ticks int
		want  bool
	}{
		{0, false},
		{1, true},
		{2, false},
		{repeatDelay - 1, false},
		{repeatDelay, true},
		{repeatDelay + 1, false},
		{repeatDelay + repeatInterval, true},
	}
	for _, tc := range tests {
		if got := repeats(tc.ticks); got != tc.want {
			t.Errorf("repeats(%d) = %v, want %v", tc.ticks, got, tc.want)
		}
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		ctrl bool
		want []string
	}{
		{"left shift", []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShift}, false, []string{"shift"}},
		{"both shifts", []ebiten.Key{ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight}, false, []string{"shift"}},
		{"letter and arrow", []ebiten.Key{ebiten.KeyZ, ebiten.KeyArrowUp}, false, []string{"z", "up"}},
		{"ctrl+c", []ebiten.Key{ebiten.KeyControlLeft, ebiten.KeyControl, ebiten.KeyC}, true, []string{"controlleft", "ctrl+c"}},
		{"alt and meta", []ebiten.Key{ebiten.KeyAlt, ebiten.KeyMeta}, false, nil},
		{"space", []ebiten.Key{ebiten.KeySpace}, false, []string{"space"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keyNames(tc.keys, tc.ctrl); !slices.Equal(got, tc.want) {
				t.Errorf("keyNames(%v) = %q, want %q", tc.keys, got, tc.want)
			}
		})
	}
}

func TestKeyNamesShiftMovesOnce(t *testing.T) {
	a, _ := newTestApp(t)
	var events []input.Event
	for _, name := range keyNames([]ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShift}, false) {
		events = append(events, input.KeyDown{Key: name})
	}
	a.step(events)
	if got := a.camera.Position.Y; got != -input.DefaultMoveStep {
		t.Errorf("y = %v after one shift press, want %v", got, -input.DefaultMoveStep)
	}
}

func TestHUDShowsMotion(t *testing.T) {
	cfg := config.Default()
	cfg.Smoothing = true
	a, err := newApp(cfg, slog.Default())
	if err != nil {
		t.Fatal(err)
	}
	fb := render.NewFramebuffer(80, 60)

	a.step([]input.Event{input.KeyDown{Key: "z"}})
	a.frame(fb)
	if text := a.hud.Text(); !strings.HasSuffix(text, "~") {
		t.Errorf("HUD text %q lacks the motion marker", text)
	}

	a.step([]input.Event{input.KeyDown{Key: "r"}})
	a.frame(fb)
	if text := a.hud.Text(); strings.HasSuffix(text, "~") {
		t.Errorf("HUD text %q still marks motion after reset", text)
	}
}

func TestNewAppLogsBindings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if _, err := newApp(config.Default(), logger); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"action=reset keys=[r]", "action=forward keys=\"[up w z]\"", "scene extent"} {
		if !strings.Contains(out, want) {
			t.Errorf("startup log lacks %q:\n%s", want, out)
		}
	}
}
